package main

import (
	"github.com/spf13/pflag"

	"github.com/wippyai/utxt/transcoder"
)

// encodingValue is a flag holding an encoding name or alias. It keeps the
// name as typed so viper sees the same string from flags, env and config.
type encodingValue struct {
	name string
}

var _ pflag.Value = (*encodingValue)(nil)

func (e *encodingValue) String() string { return e.name }

func (e *encodingValue) Set(s string) error {
	if _, err := transcoder.ParseEncoding(s); err != nil {
		return err
	}
	e.name = s
	return nil
}

func (e *encodingValue) Type() string { return "encoding" }

func encodingVar(fs *pflag.FlagSet, name, usage string) {
	fs.Var(&encodingValue{}, name, usage)
}
