package main

import (
	"errors"
	"fmt"
)

var (
	// ErrEmptySeed is returned when the template seed has no characters.
	ErrEmptySeed = errors.New("seed must not be empty")
	// ErrIO marks failures reading input or writing output.
	ErrIO = errors.New("i/o failure")
	// ErrInvalidUTF8 is returned when input is not valid UTF-8 text.
	ErrInvalidUTF8 = errors.New("stream did not contain valid UTF-8")
	// ErrNoInput is returned when the preview would read an interactive stdin.
	ErrNoInput = errors.New("no input provided")
	// ErrParsingConfig is returned when environment variables cannot be parsed.
	ErrParsingConfig = errors.New("failed to parse environment variables into config")
)

// ConfigError reports an invalid template configuration.
type ConfigError struct {
	Field string
	Err   error
}

func (e *ConfigError) Error() string {
	return fmt.Sprintf("invalid %s: %v", e.Field, e.Err)
}

func (e *ConfigError) Unwrap() error {
	return e.Err
}

// IOError wraps a read or write failure hit while transforming a stream.
type IOError struct {
	Op  string
	Err error
}

func (e *IOError) Error() string {
	return fmt.Sprintf("%s: %v", e.Op, e.Err)
}

func (e *IOError) Unwrap() error {
	return e.Err
}

// Is lets errors.Is(err, ErrIO) match any IOError.
func (e *IOError) Is(target error) bool {
	return target == ErrIO
}
