package main

import (
	"bufio"
	"io"
	"unicode"
)

// segment is one unit of transformed output: a generated replacement for a
// word run, or a single passthrough character.
type segment struct {
	text string
	word bool
}

// transformer is the word-run state machine. wordLen > 0 means InWord.
// The counter survives across feed calls so a word split over two chunks is
// replaced as one.
type transformer struct {
	nyaaan  Nyaaan
	wordLen int
}

func newTransformer(n Nyaaan) *transformer {
	return &transformer{nyaaan: n}
}

// isWordRune reports whether r is alphabetic or numeric. Other_Alphabetic
// covers vowel signs and similar marks that belong to the letter before them.
func isWordRune(r rune) bool {
	return unicode.IsLetter(r) || unicode.IsNumber(r) || unicode.Is(unicode.Other_Alphabetic, r)
}

func (t *transformer) feed(chunk string, emit func(segment) error) error {
	for _, r := range chunk {
		if isWordRune(r) {
			t.wordLen++
			continue
		}
		if err := t.flush(emit); err != nil {
			return err
		}
		if err := emit(segment{text: string(r)}); err != nil {
			return err
		}
	}
	return nil
}

// flush emits the replacement for the pending word run, if any.
func (t *transformer) flush(emit func(segment) error) error {
	if t.wordLen == 0 {
		return nil
	}
	s := segment{text: t.nyaaan.Generate(t.wordLen), word: true}
	t.wordLen = 0
	return emit(s)
}

// Transform copies r to w, replacing every run of letters and digits with a
// generated string of the same rune length. Output is flushed line by line.
func Transform(n Nyaaan, r io.Reader, w io.Writer) error {
	out := bufio.NewWriter(w)
	emit := func(s segment) error {
		if _, err := out.WriteString(s.text); err != nil {
			return &IOError{Op: "write", Err: err}
		}
		return nil
	}
	flushOut := func() error {
		if err := out.Flush(); err != nil {
			return &IOError{Op: "write", Err: err}
		}
		return nil
	}

	tr := newTransformer(n)
	tok := newTokenizer(r)
	for {
		line, done, err := tok.next()
		if err != nil {
			return err
		}
		if err := tr.feed(line, emit); err != nil {
			return err
		}
		if done {
			break
		}
		if err := flushOut(); err != nil {
			return err
		}
	}
	if err := tr.flush(emit); err != nil {
		return err
	}
	return flushOut()
}
