package main

import (
	"fmt"
	"strconv"

	"github.com/cespare/xxhash/v2"
	"github.com/spf13/cobra"

	"github.com/wippyai/utxt/transcoder"
)

func newInspectCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "inspect FILE...",
		Short: "Reports the encoding, size and well-formedness of each file.",
		Long: "Reports the detected encoding, code point count and malformed units of each file.\n\n" +
			"The digest is an xxhash of the decoded text, so the same text stored in two\n" +
			"different encodings gets the same digest.",
		Args: cobra.MinimumNArgs(1),
		RunE: a.runInspect,
	}
	encodingVar(cmd.Flags(), "from", "Decode as this encoding instead of detecting it.")
	return cmd
}

// inspection is a transcoder.Report plus a digest of the decoded text.
type inspection struct {
	transcoder.Report
	Digest uint64
}

func inspect(data []byte) inspection {
	r := transcoder.Inspect(data)
	body := data[r.BOMLen:]
	return inspection{
		Report: r,
		Digest: xxhash.Sum64(transcoder.Transcode(body, r.Encoding, transcoder.UTF8)),
	}
}

// inspectAs decodes all of data as enc; a BOM counts as content.
func inspectAs(data []byte, enc transcoder.Encoding) inspection {
	return inspection{
		Report: transcoder.InspectAs(data, enc),
		Digest: xxhash.Sum64(transcoder.Transcode(data, enc, transcoder.UTF8)),
	}
}

func (a *app) runInspect(cmd *cobra.Command, args []string) error {
	from, hasFrom, err := a.encodingFlag("from")
	if err != nil {
		return err
	}
	for _, name := range args {
		err := withInput(name, a.stdin, func(data []byte) error {
			res := inspect(data)
			if hasFrom {
				res = inspectAs(data, from)
			}
			return a.printInspection(name, res)
		})
		if err != nil {
			return err
		}
	}
	return nil
}

func (a *app) printInspection(name string, res inspection) error {
	first := "-"
	if res.FirstInvalid >= 0 {
		first = strconv.Itoa(res.FirstInvalid)
	}
	_, err := fmt.Fprintf(a.stdout,
		"%s\n  encoding     %s\n  bom          %d\n  size         %d\n  code points  %d\n"+
			"  invalid      %d\n  first bad    %s\n  truncated    %t\n  xxhash       %016x\n",
		name, res.Encoding, res.BOMLen, res.Size, res.CodePoints,
		res.Invalid, first, res.Truncated, res.Digest)
	return err
}
