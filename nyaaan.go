package main

import (
	"strings"
	"unicode/utf8"
)

// Nyaaan is a replacement pattern: prefix, a single infix rune repeated to
// fill, and a suffix. It is never modified after construction.
type Nyaaan struct {
	prefix []rune
	infix  rune
	suffix []rune
}

// NewNyaaan builds a pattern from its three parts.
func NewNyaaan(prefix string, infix rune, suffix string) Nyaaan {
	return Nyaaan{
		prefix: []rune(prefix),
		infix:  infix,
		suffix: []rune(suffix),
	}
}

// FromSeed splits seed into prefix and infix. The last code point of seed is
// the infix and everything before it is the prefix; suffix is kept as is.
func FromSeed(seed, suffix string) (Nyaaan, error) {
	last, size := utf8.DecodeLastRuneInString(seed)
	if size == 0 {
		return Nyaaan{}, &ConfigError{Field: "seed", Err: ErrEmptySeed}
	}
	return NewNyaaan(seed[:len(seed)-size], last, suffix), nil
}

// Prefix returns the fixed leading part.
func (n Nyaaan) Prefix() string { return string(n.prefix) }

// Infix returns the rune repeated to pad replacements.
func (n Nyaaan) Infix() rune { return n.infix }

// Suffix returns the fixed trailing part.
func (n Nyaaan) Suffix() string { return string(n.suffix) }

// Generate returns a string of exactly length runes.
func (n Nyaaan) Generate(length int) string {
	if length <= 0 {
		return ""
	}
	var b strings.Builder
	b.Grow(length * utf8.UTFMax)
	written := 0
	put := func(r rune) {
		if written < length {
			b.WriteRune(r)
			written++
		}
	}
	for _, r := range n.prefix {
		put(r)
	}
	for i, count := 0, n.infixLen(length); i < count; i++ {
		put(n.infix)
	}
	for _, r := range n.suffix {
		put(r)
	}
	return b.String()
}

func (n Nyaaan) infixLen(length int) int {
	p, s := len(n.prefix), len(n.suffix)
	switch {
	case length <= p:
		return 0
	case length <= p+s:
		return 1
	default:
		return length - p - s
	}
}

// String renders the canonical form with a three-rune infix, e.g. "nyaaan".
func (n Nyaaan) String() string {
	return string(n.prefix) + strings.Repeat(string(n.infix), 3) + string(n.suffix)
}
