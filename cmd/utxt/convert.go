package main

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"runtime"
	"slices"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/wippyai/utxt/errors"
	"github.com/wippyai/utxt/transcoder"
)

func newConvertCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "convert --to ENC [FILE...]",
		Short: "Converts files to another Unicode encoding.",
		Long: "Converts files to another Unicode encoding.\n\n" +
			"Without --from the input encoding is taken from the byte order mark, and input\n" +
			"without a mark is read as utf-8. With --from the mark is not consulted.\n" +
			"Output goes to standard output, to --output for a single file, or to --out-dir\n" +
			"under the input's base name. Use - (or no file) for standard input.",
		RunE: a.runConvert,
	}

	f := cmd.Flags()
	encodingVar(f, "to", "Output encoding, e.g. utf-8, utf-16le, ucs-4be.")
	encodingVar(f, "from", "Input encoding. Overrides byte order mark detection.")
	f.Bool("skip-bom", false, "Drop the input's byte order mark.")
	f.Bool("bom", false, "Start the output with a byte order mark. Implies --skip-bom.")
	f.StringP("output", "o", "", "Output file, for a single input.")
	f.String("out-dir", "", "Directory for converted files.")
	f.IntP("jobs", "j", runtime.NumCPU(), "Files converted in parallel.")
	return cmd
}

// convertOptions is a parsed convert command line.
type convertOptions struct {
	to      transcoder.Encoding
	from    transcoder.Encoding
	hasFrom bool
	flags   transcoder.Flags
	bom     bool
}

func (a *app) convertOptions() (convertOptions, error) {
	var o convertOptions
	to, ok, err := a.encodingFlag("to")
	if err != nil {
		return o, err
	}
	if !ok {
		return o, errors.New(errors.PhaseConfig, errors.KindInvalidInput).
			Path("to").
			Detail("an output encoding is required").
			Build()
	}
	o.to = to

	if o.from, o.hasFrom, err = a.encodingFlag("from"); err != nil {
		return o, err
	}
	o.bom = a.v.GetBool("bom")
	if o.bom || a.v.GetBool("skip-bom") {
		o.flags |= transcoder.SkipBOM
	}
	return o, nil
}

// convert produces the output bytes for one input.
func (o convertOptions) convert(in []byte) []byte {
	var out []byte
	if o.bom {
		out = transcoder.BOM(o.to)
	}

	if !o.hasFrom {
		if out == nil {
			return transcoder.EncodeAs(o.to, in, o.flags)
		}
		return append(out, transcoder.EncodeAs(o.to, in, o.flags)...)
	}

	if o.flags.Has(transcoder.SkipBOM) {
		// only a mark of the declared encoding is recognized as one
		if bom := transcoder.Detect(in); bom.Encoding == o.from {
			in = in[bom.Len:]
		}
	}
	return transcoder.AppendTranscode(out, in, o.from, o.to)
}

func (a *app) runConvert(cmd *cobra.Command, args []string) error {
	o, err := a.convertOptions()
	if err != nil {
		return err
	}
	if len(args) == 0 {
		args = []string{stdinName}
	}

	output, outDir := a.v.GetString("output"), a.v.GetString("out-dir")
	switch {
	case output != "" && outDir != "":
		return errors.InvalidInput(errors.PhaseConfig, "--output and --out-dir are exclusive")
	case output != "" && len(args) > 1:
		return errors.InvalidInput(errors.PhaseConfig, "--output takes a single input, use --out-dir")
	}

	if outDir != "" {
		if err := checkOutputNames(args); err != nil {
			return err
		}
	}

	// every "-" argument converts the same bytes
	var stdinData []byte
	if slices.Contains(args, stdinName) {
		if stdinData, err = io.ReadAll(a.stdin); err != nil {
			return errors.IO("read", "stdin", err)
		}
	}

	jobs := a.v.GetInt("jobs")
	if jobs < 1 {
		jobs = 1
	}

	results := make([][]byte, len(args))
	var g errgroup.Group
	g.SetLimit(jobs)
	for i, name := range args {
		i, name := i, name
		g.Go(func() error {
			return withInput(name, bytes.NewReader(stdinData), func(data []byte) error {
				out := o.convert(data)
				a.log.Debug("converted",
					zap.String("file", name),
					zap.Int("in", len(data)),
					zap.Int("out", len(out)),
					zap.Stringer("to", o.to))

				switch {
				case output != "":
					return writeFile(output, out)
				case outDir != "":
					return writeFile(filepath.Join(outDir, outputName(name)), out)
				}
				results[i] = out
				return nil
			})
		})
	}
	if err := g.Wait(); err != nil {
		return err
	}

	if output != "" || outDir != "" {
		return nil
	}
	for _, out := range results {
		if err := a.writeText(a.stdout, out, o.to); err != nil {
			return err
		}
	}
	return nil
}

// checkOutputNames rejects inputs that would write the same file in
// --out-dir.
func checkOutputNames(args []string) error {
	seen := make(map[string]string, len(args))
	for _, name := range args {
		out := outputName(name)
		if prev, ok := seen[out]; ok {
			return errors.InvalidInput(errors.PhaseConfig,
				fmt.Sprintf("%s and %s both write %s", prev, name, out))
		}
		seen[out] = name
	}
	return nil
}

func outputName(name string) string {
	if name == stdinName {
		return "stdin"
	}
	return filepath.Base(name)
}

func writeFile(path string, data []byte) error {
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return errors.IO("write", path, err)
	}
	return nil
}
