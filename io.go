package main

import (
	"errors"
	"io"
	"os"
	"syscall"

	"github.com/mattn/go-isatty"
)

// openInput opens filePath for reading. An empty path or "-" means stdin,
// which is never closed by the returned closer.
func openInput(filePath string, stdin io.Reader) (io.ReadCloser, error) {
	if filePath == "" || filePath == "-" {
		return io.NopCloser(stdin), nil
	}
	file, err := os.Open(filePath)
	if err != nil {
		return nil, err
	}
	return file, nil
}

// openPreviewInput is openInput for the TUI. The TUI owns the terminal, so an
// interactive stdin counts as no input at all.
func openPreviewInput(filePath string, stdin io.Reader) (io.ReadCloser, error) {
	if filePath == "" || filePath == "-" {
		if isTerminal(stdin) {
			return nil, ErrNoInput
		}
	}
	return openInput(filePath, stdin)
}

func isTerminal(r io.Reader) bool {
	f, ok := r.(*os.File)
	if !ok {
		return false
	}
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}

// isBrokenPipe reports whether err comes from a reader closing stdout early,
// as `nyaaan file | head` does.
func isBrokenPipe(err error) bool {
	return err != nil && (errors.Is(err, syscall.EPIPE) || errors.Is(err, io.ErrClosedPipe))
}
