package main

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"syscall"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func runCLI(t *testing.T, stdin string, args ...string) (int, string, string) {
	t.Helper()
	var stdout, stderr bytes.Buffer
	code := run(args, strings.NewReader(stdin), &stdout, &stderr)
	return code, stdout.String(), stderr.String()
}

func writeTemp(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestRunStdin(t *testing.T) {
	clearConfigEnv(t)
	code, out, errOut := runCLI(t, "abcde\nxyz")
	assert.Equal(t, 0, code)
	assert.Equal(t, "nyaan\nnya", out)
	assert.Empty(t, errOut)
}

func TestRunFlags(t *testing.T) {
	clearConfigEnv(t)
	code, out, _ := runCLI(t, "hello world\n", "-nya", "mo", "-n", "")
	assert.Equal(t, 0, code)
	assert.Equal(t, "moooo moooo\n", out)
}

func TestRunEnvDefaults(t *testing.T) {
	clearConfigEnv(t)
	t.Setenv("NYAAAN_NYA", "wo")
	t.Setenv("NYAAAN_N", "f")

	code, out, _ := runCLI(t, "bark")
	assert.Equal(t, 0, code)
	assert.Equal(t, "woof", out)

	code, out, _ = runCLI(t, "bark", "-n", "w")
	assert.Equal(t, 0, code)
	assert.Equal(t, "woow", out, "flags override the environment")
}

func TestRunFiles(t *testing.T) {
	clearConfigEnv(t)
	a := writeTemp(t, "a.txt", "hello world\n")
	b := writeTemp(t, "b.rs", "fn main() {}\n")

	code, out, errOut := runCLI(t, "", a, b)
	assert.Equal(t, 0, code)
	assert.Equal(t, "nyaan nyaan\nny nyan() {}\n", out)
	assert.Empty(t, errOut)
}

func TestRunDashReadsStdin(t *testing.T) {
	clearConfigEnv(t)
	a := writeTemp(t, "a.txt", "one\n")

	code, out, _ := runCLI(t, "two\n", a, "-")
	assert.Equal(t, 0, code)
	assert.Equal(t, "nya\nnya\n", out)
}

func TestRunMissingFileStopsRun(t *testing.T) {
	clearConfigEnv(t)
	a := writeTemp(t, "a.txt", "first\n")
	missing := filepath.Join(t.TempDir(), "missing.txt")
	c := writeTemp(t, "c.txt", "never\n")

	code, out, errOut := runCLI(t, "", a, missing, c)
	assert.Equal(t, 1, code)
	assert.Equal(t, "nyaan\n", out, "output for earlier files is kept")
	assert.Contains(t, errOut, "failed to open: "+missing)
}

func TestRunEmptySeed(t *testing.T) {
	clearConfigEnv(t)
	code, out, errOut := runCLI(t, "abc", "-nya", "")
	assert.Equal(t, 1, code)
	assert.Empty(t, out)
	assert.Contains(t, errOut, "seed must not be empty")
}

func TestRunVersion(t *testing.T) {
	clearConfigEnv(t)
	code, out, _ := runCLI(t, "", "-version")
	assert.Equal(t, 0, code)
	assert.Equal(t, "nyaaan dev\n", out)
}

func TestRunVersionWithEmptySeed(t *testing.T) {
	clearConfigEnv(t)
	code, out, errOut := runCLI(t, "", "-nya", "", "-version")
	assert.Equal(t, 0, code)
	assert.Equal(t, "nyaaan dev\n", out)
	assert.Empty(t, errOut)
}

func TestRunInvalidUTF8(t *testing.T) {
	clearConfigEnv(t)
	bad := writeTemp(t, "bad.txt", "ok\n\xff\xfe!\n")

	code, out, errOut := runCLI(t, "", bad)
	assert.Equal(t, 1, code)
	assert.Equal(t, "ny\n", out)
	assert.Contains(t, errOut, "failed to nyaaan: "+bad)
	assert.Contains(t, errOut, ErrInvalidUTF8.Error())
}

func TestRunBadFlag(t *testing.T) {
	clearConfigEnv(t)
	code, _, errOut := runCLI(t, "", "-bogus")
	assert.Equal(t, 2, code)
	assert.Contains(t, errOut, "usage: nyaaan")
}

func TestRunHelp(t *testing.T) {
	clearConfigEnv(t)
	code, _, errOut := runCLI(t, "", "-h")
	assert.Equal(t, 0, code)
	assert.Contains(t, errOut, "-nya")
}

func TestRunBadLogFormat(t *testing.T) {
	clearConfigEnv(t)
	t.Setenv("NYAAAN_LOG_FORMAT", "xml")
	code, _, errOut := runCLI(t, "abc")
	assert.Equal(t, 1, code)
	assert.Contains(t, errOut, "invalid log format")
}

func TestRunVerboseLogsToStderr(t *testing.T) {
	clearConfigEnv(t)
	code, out, errOut := runCLI(t, "abc", "-v")
	assert.Equal(t, 0, code)
	assert.Equal(t, "nya", out)
	assert.Contains(t, errOut, "template ready")
	assert.Contains(t, errOut, "reading stdin")
}

func TestRunPreviewTooManyFiles(t *testing.T) {
	clearConfigEnv(t)
	code, _, errOut := runCLI(t, "", "-preview", "a", "b")
	assert.Equal(t, 1, code)
	assert.Contains(t, errOut, "at most one file")
}

func TestRunWriteFailure(t *testing.T) {
	clearConfigEnv(t)
	var stderr bytes.Buffer
	code := run(nil, strings.NewReader("abc\n"), failingWriter{err: errors.New("disk full")}, &stderr)
	assert.Equal(t, 1, code)
	assert.Contains(t, stderr.String(), "failed to nyaaan")
	assert.Contains(t, stderr.String(), "disk full")
}

func TestRunBrokenPipeIsQuiet(t *testing.T) {
	clearConfigEnv(t)
	var stderr bytes.Buffer
	code := run(nil, strings.NewReader("abc\n"), failingWriter{err: syscall.EPIPE}, &stderr)
	assert.Equal(t, 0, code)
	assert.Empty(t, stderr.String())
}
