package cmd

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"runtime"
	"testing"

	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// execute runs the root command with fresh persistent flags and returns stdout
func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	t.Setenv("HOME", t.TempDir())

	rootCmd.PersistentFlags().VisitAll(func(f *pflag.Flag) {
		_ = f.Value.Set(f.DefValue)
		f.Changed = false
	})

	var out, diag bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&diag)
	rootCmd.SetArgs(args)

	err := rootCmd.ExecuteContext(context.Background())
	return out.String(), err
}

func TestConfigShowFlags(t *testing.T) {
	out, err := execute(t, "config", "show", "--unit", "ms", "--clock", "boot_time", "--strict")
	require.NoError(t, err)

	assert.Contains(t, out, "unit: ms\n")
	assert.Contains(t, out, "clock: boot_time\n")
	assert.Contains(t, out, "strict: true\n")
}

func TestConfigShowPrecedence(t *testing.T) {
	path := filepath.Join(t.TempDir(), "ivtimer.yaml")
	require.NoError(t, os.WriteFile(path, []byte("unit: us\nverbosity: errors\nbackend: portable\n"), 0o644))
	t.Setenv("IVTIMER_VERBOSITY", "debug")

	out, err := execute(t, "config", "show", "--config", path, "--backend", "system")
	require.NoError(t, err)

	assert.Contains(t, out, "# source: "+path+"\n")
	assert.Contains(t, out, "unit: us\n", "file overrides default")
	assert.Contains(t, out, "verbosity: debug\n", "env overrides file")
	assert.Contains(t, out, "backend: system\n", "flag overrides file")
}

func TestConfigShowRejectsUnknownUnit(t *testing.T) {
	_, err := execute(t, "config", "show", "--unit", "fortnights")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "fortnights")
}

func TestDemo(t *testing.T) {
	out, err := execute(t, "demo", "--sleep", "1ms,2ms", "--unit", "ms")
	require.NoError(t, err)

	assert.Contains(t, out, "Running 'Test 1'\nRAW:\n START: ")
	assert.Contains(t, out, "Running 'Test 2'\n")
	assert.Contains(t, out, "EXPECTED: 0.001 sec\n")
	assert.Contains(t, out, " ms\n")
	assert.Contains(t, out, "FINAL TEST\nTest 1: ")
	assert.Contains(t, out, "# Test 1 (ms), Test 2 (ms)\n")
}

func TestRunPropagatesExitCode(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("needs a POSIX shell")
	}

	out, err := execute(t, "run", "--name", "fail", "--", "sh", "-c", "exit 4")
	require.Error(t, err)

	var exitErr *exitError
	require.ErrorAs(t, err, &exitErr)
	assert.Equal(t, 4, exitErr.code)
	assert.Equal(t, "command exited with status 4", exitErr.Error())
	assert.Contains(t, out, "fail: ")
}

func TestRunKilledBySignalExitsWithShellStatus(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("needs a POSIX shell")
	}

	_, err := execute(t, "run", "--", "sh", "-c", "kill -TERM $$")
	require.Error(t, err)

	var exitErr *exitError
	require.ErrorAs(t, err, &exitErr)
	assert.Equal(t, 143, exitErr.code)
	assert.Equal(t, "command killed by SIGTERM", exitErr.Error())
}

func TestRunRejectsBadOutput(t *testing.T) {
	_, err := execute(t, "run", "-o", "xml", "--", "true")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "xml")
}

func TestClocks(t *testing.T) {
	out, err := execute(t, "clocks", "--backend", "portable")
	require.NoError(t, err)

	assert.Contains(t, out, "Backend: portable\n")
	assert.Contains(t, out, "monotonic_raw")
	assert.Contains(t, out, "unsupported", "portable backend has no thread CPU clock")
}
