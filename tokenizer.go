package main

import (
	"bufio"
	"errors"
	"io"
	"unicode/utf8"

	tea "github.com/charmbracelet/bubbletea"
)

type lineMsg struct {
	source *tokenizer
	line   string
	done   bool
	err    error
}

// tokenizer hands out input one line at a time. A line keeps its trailing
// newline; the last line may have none. Lines that are not valid UTF-8 are
// read errors.
type tokenizer struct {
	reader *bufio.Reader
	done   bool
}

func newTokenizer(r io.Reader) *tokenizer {
	return &tokenizer{reader: bufio.NewReader(r)}
}

func (t *tokenizer) next() (string, bool, error) {
	if t.done {
		return "", true, nil
	}

	line, err := t.reader.ReadString('\n')
	if err != nil && !errors.Is(err, io.EOF) {
		t.done = true
		return "", true, &IOError{Op: "read", Err: err}
	}
	if !utf8.ValidString(line) {
		t.done = true
		return "", true, &IOError{Op: "read", Err: ErrInvalidUTF8}
	}
	if err != nil {
		t.done = true
		return line, true, nil
	}
	return line, false, nil
}

func tokenizeCmd(t *tokenizer) tea.Cmd {
	return func() tea.Msg {
		line, done, err := t.next()
		return lineMsg{source: t, line: line, done: done, err: err}
	}
}
