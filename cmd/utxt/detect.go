package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/wippyai/utxt/transcoder"
)

func newDetectCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "detect FILE...",
		Short: "Prints the encoding announced by each file's byte order mark.",
		Long: "Prints the encoding announced by each file's byte order mark and the length of the mark.\n" +
			"Files without a recognized mark are reported as utf-8 with a zero length. Use - for standard input.",
		Args: cobra.MinimumNArgs(1),
		RunE: a.runDetect,
	}
}

func (a *app) runDetect(cmd *cobra.Command, args []string) error {
	for _, name := range args {
		err := withInput(name, a.stdin, func(data []byte) error {
			bom := transcoder.Detect(data)
			_, err := fmt.Fprintf(a.stdout, "%s\t%s\tbom=%d\n", name, bom.Encoding, bom.Len)
			return err
		})
		if err != nil {
			return err
		}
	}
	return nil
}
