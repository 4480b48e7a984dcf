package main

import (
	"encoding/hex"
	"io"
	"os"

	"golang.org/x/term"

	"github.com/wippyai/utxt/errors"
	"github.com/wippyai/utxt/transcoder"
)

func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}

// writeText writes converted text to w. A terminal only gets UTF-8 as is;
// anything else is shown as a hex dump.
func (a *app) writeText(w io.Writer, data []byte, enc transcoder.Encoding) error {
	if enc != transcoder.UTF8 && a.isTerminal(w) {
		data = []byte(hex.Dump(data))
	}
	if _, err := w.Write(data); err != nil {
		return errors.IO("write", "stdout", err)
	}
	return nil
}
