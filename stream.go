package main

import (
	"io"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
)

// previewLine is one input line next to its transformed form.
type previewLine struct {
	source   string
	segments []segment
}

// previewStream pulls input lazily, one line per command, and remembers every
// line seen so far so the viewer can step back through them.
type previewStream struct {
	nyaaan      Nyaaan
	tokenizer   *tokenizer
	transformer *transformer
	inputCloser io.Closer
	reopen      func() (io.ReadCloser, error)

	lines       []previewLine
	idx         int
	done        bool
	waitingLine bool
	err         error
}

// newPreviewStream reads from reader. reopen is used by Restart; pass nil for
// inputs that cannot be replayed, such as stdin.
func newPreviewStream(n Nyaaan, reader io.ReadCloser, reopen func() (io.ReadCloser, error)) *previewStream {
	return &previewStream{
		nyaaan:      n,
		tokenizer:   newTokenizer(reader),
		transformer: newTransformer(n),
		inputCloser: reader,
		reopen:      reopen,
		idx:         -1,
	}
}

func (s *previewStream) Init() tea.Cmd {
	return s.requestLine()
}

func (s *previewStream) Handle(msg tea.Msg) tea.Cmd {
	lm, ok := msg.(lineMsg)
	if !ok {
		return nil
	}
	// A read still in flight from before a restart belongs to a closed input.
	if lm.source != s.tokenizer {
		return nil
	}
	s.waitingLine = false
	if lm.err != nil {
		s.err = lm.err
		s.done = true
		s.closeInput()
		return nil
	}

	var segs []segment
	collect := func(seg segment) error {
		segs = append(segs, seg)
		return nil
	}
	_ = s.transformer.feed(lm.line, collect)
	if lm.done {
		_ = s.transformer.flush(collect)
		s.done = true
		s.closeInput()
	}
	if lm.line != "" || len(segs) > 0 {
		s.lines = append(s.lines, previewLine{
			source:   strings.TrimSuffix(lm.line, "\n"),
			segments: segs,
		})
		s.idx = len(s.lines) - 1
	}
	return nil
}

func (s *previewStream) Current() (previewLine, bool) {
	if s.idx < 0 || s.idx >= len(s.lines) {
		return previewLine{}, false
	}
	return s.lines[s.idx], true
}

// Next moves forward through lines already read, then asks for a new one.
func (s *previewStream) Next() tea.Cmd {
	if s.idx < len(s.lines)-1 {
		s.idx++
		return nil
	}
	if s.done {
		return nil
	}
	return s.requestLine()
}

func (s *previewStream) Prev() {
	if s.idx > 0 {
		s.idx--
	}
}

func (s *previewStream) Restart() tea.Cmd {
	if s.reopen == nil {
		return nil
	}
	s.resetState()
	reader, err := s.reopen()
	if err != nil {
		s.err = err
		s.done = true
		return nil
	}
	s.inputCloser = reader
	s.tokenizer = newTokenizer(reader)
	return s.requestLine()
}

func (s *previewStream) SupportsRestart() bool {
	return s.reopen != nil
}

func (s *previewStream) CanAdvance() bool {
	return s.idx < len(s.lines)-1 || !s.done
}

func (s *previewStream) Err() error {
	return s.err
}

func (s *previewStream) Pos() int {
	return s.idx
}

func (s *previewStream) Total() (bool, int) {
	if s.done {
		return true, len(s.lines)
	}
	return false, 0
}

func (s *previewStream) requestLine() tea.Cmd {
	if s.waitingLine || s.tokenizer == nil {
		return nil
	}
	s.waitingLine = true
	return tokenizeCmd(s.tokenizer)
}

func (s *previewStream) closeInput() {
	if s.inputCloser != nil {
		_ = s.inputCloser.Close()
		s.inputCloser = nil
	}
}

func (s *previewStream) resetState() {
	s.closeInput()
	s.transformer = newTransformer(s.nyaaan)
	s.tokenizer = nil
	s.lines = nil
	s.idx = -1
	s.done = false
	s.waitingLine = false
	s.err = nil
}
