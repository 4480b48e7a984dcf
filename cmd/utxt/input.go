package main

import (
	"io"
	"os"

	"github.com/edsrzf/mmap-go"

	"github.com/wippyai/utxt/errors"
)

// stdinName selects standard input in place of a file.
const stdinName = "-"

// input is the read-only contents of one input file. Regular files are
// memory-mapped so the engine reads them without a copy.
type input struct {
	name string
	data []byte
	mm   mmap.MMap
}

func openInput(name string, stdin io.Reader) (*input, error) {
	if name == stdinName {
		data, err := io.ReadAll(stdin)
		if err != nil {
			return nil, errors.IO("read", "stdin", err)
		}
		return &input{name: name, data: data}, nil
	}

	f, err := os.Open(name)
	if err != nil {
		return nil, errors.IO("open", name, err)
	}
	defer f.Close()

	stat, err := f.Stat()
	if err != nil {
		return nil, errors.IO("stat", name, err)
	}
	// zero-length mappings are rejected by the OS
	if stat.Size() == 0 {
		return &input{name: name}, nil
	}
	if !stat.Mode().IsRegular() {
		data, err := io.ReadAll(f)
		if err != nil {
			return nil, errors.IO("read", name, err)
		}
		return &input{name: name, data: data}, nil
	}

	mm, err := mmap.Map(f, mmap.RDONLY, 0)
	if err != nil {
		return nil, errors.IO("mmap", name, err)
	}
	return &input{name: name, data: []byte(mm), mm: mm}, nil
}

// Close releases the mapping. data must not be used afterwards.
func (in *input) Close() error {
	if in.mm == nil {
		return nil
	}
	err := in.mm.Unmap()
	in.mm, in.data = nil, nil
	if err != nil {
		return errors.IO("unmap", in.name, err)
	}
	return nil
}

// withInput opens name, runs fn on its contents and closes it.
func withInput(name string, stdin io.Reader, fn func(data []byte) error) (err error) {
	in, err := openInput(name, stdin)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := in.Close(); err == nil {
			err = cerr
		}
	}()
	return fn(in.data)
}
