package main

import (
	"io"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/wippyai/utxt/errors"
	"github.com/wippyai/utxt/hostmod"
	"github.com/wippyai/utxt/transcoder"
)

// EnvPrefix prefixes environment overrides, e.g. UTXT_TO=utf-16le.
const EnvPrefix = "UTXT"

// app carries what every subcommand shares. Flag values are read through
// v so that config files and the environment can supply them too.
type app struct {
	v      *viper.Viper
	log    *zap.Logger
	stdin  io.Reader
	stdout io.Writer
	stderr io.Writer
	// isTerminal is replaced in tests.
	isTerminal func(w io.Writer) bool
}

func newRootCmd(stdin io.Reader, stdout, stderr io.Writer) *cobra.Command {
	a := &app{
		v:          viper.New(),
		log:        zap.NewNop(),
		stdin:      stdin,
		stdout:     stdout,
		stderr:     stderr,
		isTerminal: isTerminal,
	}

	root := &cobra.Command{
		Use:   "utxt",
		Short: "utxt detects, converts and inspects Unicode text encodings.",
		Long: "`utxt` works with UTF-8, UTF-16LE, UTF-16BE, UTF-32LE and UTF-32BE text.\n\n" +
			"Input encodings are taken from the byte order mark unless given explicitly.\n" +
			"Undecodable input is replaced with U+FFFD, never rejected.\n" +
			"Flags can also be set in a config file or as " + EnvPrefix + "_<FLAG> environment variables.",
		SilenceUsage:      true,
		SilenceErrors:     true,
		PersistentPreRunE: a.setup,
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			_ = a.log.Sync()
		},
	}
	root.SetIn(stdin)
	root.SetOut(stdout)
	root.SetErr(stderr)

	pf := root.PersistentFlags()
	pf.String("config", "", "Config file (yaml, json or toml).")
	pf.String("log-level", "warn", "Log level: debug, info, warn or error.")

	root.AddCommand(
		newDetectCmd(a),
		newConvertCmd(a),
		newInspectCmd(a),
		newInteractiveCmd(a),
	)
	return root
}

func (a *app) setup(cmd *cobra.Command, args []string) error {
	a.v.SetEnvPrefix(EnvPrefix)
	a.v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	a.v.AutomaticEnv()

	if err := a.v.BindPFlags(cmd.Flags()); err != nil {
		return errors.Wrap(errors.PhaseConfig, errors.KindInvalidInput, err, "bind flags")
	}
	if path := a.v.GetString("config"); path != "" {
		a.v.SetConfigFile(path)
		if err := a.v.ReadInConfig(); err != nil {
			return errors.IO("read config", path, err)
		}
	}

	log, err := newLogger(a.v.GetString("log-level"), a.stderr)
	if err != nil {
		return err
	}
	a.log = log
	transcoder.SetLogger(log.Named("transcoder"))
	hostmod.SetLogger(log.Named("hostmod"))
	return nil
}

func newLogger(level string, w io.Writer) (*zap.Logger, error) {
	lvl, err := zapcore.ParseLevel(level)
	if err != nil {
		return nil, errors.New(errors.PhaseConfig, errors.KindInvalidInput).
			Path("log-level").
			Value(level).
			Cause(err).
			Detail("unknown log level %q", level).
			Build()
	}
	enc := zapcore.NewConsoleEncoder(zap.NewDevelopmentEncoderConfig())
	return zap.New(zapcore.NewCore(enc, zapcore.Lock(zapcore.AddSync(w)), lvl)), nil
}

// encodingFlag parses the encoding named by a flag. An unset flag yields
// ok == false.
func (a *app) encodingFlag(name string) (enc transcoder.Encoding, ok bool, err error) {
	v := a.v.GetString(name)
	if v == "" {
		return 0, false, nil
	}
	enc, err = transcoder.ParseEncoding(v)
	if err != nil {
		if e, isErr := err.(*errors.Error); isErr {
			e.Path = []string{name}
		}
		return 0, false, err
	}
	return enc, true, nil
}
