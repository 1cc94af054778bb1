package main

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
)

type logFormat string

const (
	formatText logFormat = "text"
	formatJSON logFormat = "json"
)

type logOption func(*logConfig)

type logConfig struct {
	level  slog.Level
	format logFormat
	output io.Writer
}

func withLevel(l slog.Level) logOption {
	return func(c *logConfig) { c.level = l }
}

func withFormat(f logFormat) logOption {
	return func(c *logConfig) { c.format = f }
}

// withOutput ignores nil writers.
func withOutput(w io.Writer) logOption {
	return func(c *logConfig) {
		if w != nil {
			c.output = w
		}
	}
}

func newLogger(opts ...logOption) *slog.Logger {
	cfg := &logConfig{
		level:  slog.LevelWarn,
		format: formatText,
		output: os.Stderr,
	}
	for _, opt := range opts {
		opt(cfg)
	}

	handlerOpts := &slog.HandlerOptions{Level: cfg.level}
	var h slog.Handler
	if cfg.format == formatJSON {
		h = slog.NewJSONHandler(cfg.output, handlerOpts)
	} else {
		h = slog.NewTextHandler(cfg.output, handlerOpts)
	}
	return slog.New(h)
}

func parseLogLevel(s string) (slog.Level, error) {
	var l slog.Level
	if err := l.UnmarshalText([]byte(s)); err != nil {
		return 0, fmt.Errorf("invalid log level %q: %w", s, err)
	}
	return l, nil
}

func parseLogFormat(s string) (logFormat, error) {
	switch f := logFormat(strings.ToLower(s)); f {
	case formatText, formatJSON:
		return f, nil
	default:
		return "", fmt.Errorf("invalid log format %q: must be %q or %q", s, formatText, formatJSON)
	}
}
