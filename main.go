package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"

	tea "github.com/charmbracelet/bubbletea"
)

var version = "dev"

func main() {
	os.Exit(run(os.Args[1:], os.Stdin, os.Stdout, os.Stderr))
}

// run is the whole command line tool. It returns the process exit status.
func run(args []string, stdin io.Reader, stdout, stderr io.Writer) int {
	cfg, err := loadConfig()
	if err != nil {
		fmt.Fprintln(stderr, "nyaaan:", err)
		return 1
	}

	fs := flag.NewFlagSet("nyaaan", flag.ContinueOnError)
	fs.SetOutput(stderr)
	fs.Usage = func() {
		fmt.Fprintln(fs.Output(), "usage: nyaaan [flags] [file ...]")
		fs.PrintDefaults()
	}
	var (
		nya         string
		n           string
		preview     bool
		lpm         int
		verbose     bool
		showVersion bool
	)
	fs.StringVar(&nya, "nya", cfg.Nya, "seed: last character is repeated, the rest is the prefix")
	fs.StringVar(&n, "n", cfg.N, "suffix appended after the repeated character")
	fs.BoolVar(&preview, "preview", false, "show the transformation line by line in an interactive viewer")
	fs.IntVar(&lpm, "lpm", 120, "preview speed in lines per minute")
	fs.BoolVar(&verbose, "v", false, "log debug output to stderr")
	fs.BoolVar(&showVersion, "version", false, "print version and exit")
	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return 0
		}
		return 2
	}
	if showVersion {
		fmt.Fprintf(stdout, "nyaaan %s\n", version)
		return 0
	}

	logger, err := buildLogger(cfg, verbose, stderr)
	if err != nil {
		fmt.Fprintln(stderr, "nyaaan:", err)
		return 1
	}

	nyaaan, err := FromSeed(nya, n)
	if err != nil {
		fmt.Fprintln(stderr, "nyaaan:", err)
		return 1
	}
	logger.Debug("template ready",
		slog.String("prefix", nyaaan.Prefix()),
		slog.String("infix", string(nyaaan.Infix())),
		slog.String("suffix", nyaaan.Suffix()),
	)

	if preview {
		err = runPreview(nyaaan, fs.Args(), lpm, stdin, stdout)
	} else {
		err = nyaanizeAll(logger, nyaaan, fs.Args(), stdin, stdout)
	}
	if err != nil {
		if isBrokenPipe(err) {
			logger.Debug("output closed early", slog.Any("error", err))
			return 0
		}
		fmt.Fprintln(stderr, "nyaaan:", err)
		return 1
	}
	return 0
}

func buildLogger(cfg config, verbose bool, stderr io.Writer) (*slog.Logger, error) {
	level, err := parseLogLevel(cfg.LogLevel)
	if err != nil {
		return nil, err
	}
	if verbose {
		level = slog.LevelDebug
	}
	format, err := parseLogFormat(cfg.LogFormat)
	if err != nil {
		return nil, err
	}
	return newLogger(withLevel(level), withFormat(format), withOutput(stderr)), nil
}

// nyaanizeAll transforms each file in order, or stdin when files is empty.
// The first failure stops the run; output already written stays.
func nyaanizeAll(logger *slog.Logger, n Nyaaan, files []string, stdin io.Reader, stdout io.Writer) error {
	if len(files) == 0 {
		logger.Debug("reading stdin")
		if err := Transform(n, stdin, stdout); err != nil {
			return fmt.Errorf("failed to nyaaan: %w", err)
		}
		return nil
	}
	for _, file := range files {
		if err := nyaanizeFile(logger, n, file, stdin, stdout); err != nil {
			return err
		}
	}
	return nil
}

func nyaanizeFile(logger *slog.Logger, n Nyaaan, file string, stdin io.Reader, stdout io.Writer) error {
	input, err := openInput(file, stdin)
	if err != nil {
		return fmt.Errorf("failed to open: %s: %w", file, err)
	}
	defer input.Close()

	logger.Debug("reading file", slog.String("file", file))
	if err := Transform(n, input, stdout); err != nil {
		return fmt.Errorf("failed to nyaaan: %s: %w", file, err)
	}
	return nil
}

func runPreview(n Nyaaan, files []string, lpm int, stdin io.Reader, stdout io.Writer) error {
	if len(files) > 1 {
		return errors.New("preview takes at most one file")
	}
	var file string
	if len(files) == 1 {
		file = files[0]
	}

	reader, err := openPreviewInput(file, stdin)
	if err != nil {
		if errors.Is(err, ErrNoInput) {
			return fmt.Errorf("%w: pipe text in or pass a file", err)
		}
		return fmt.Errorf("failed to open: %s: %w", file, err)
	}

	var reopen func() (io.ReadCloser, error)
	if file != "" && file != "-" {
		reopen = func() (io.ReadCloser, error) { return openInput(file, stdin) }
	}
	stream := newPreviewStream(n, reader, reopen)
	defer stream.closeInput()

	p := tea.NewProgram(newModel(stream, lpm),
		tea.WithInputTTY(),
		tea.WithOutput(stdout),
		tea.WithAltScreen(),
	)
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("preview: %w", err)
	}
	return stream.Err()
}
