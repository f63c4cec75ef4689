// Package observe times external commands with an interval
package observe

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/exec"

	"github.com/psantana5/ivtimer/pkg/timer"
)

// Command describes the process to time
type Command struct {
	Name   string
	Args   []string
	Dir    string
	Stdin  io.Reader
	Stdout io.Writer
	Stderr io.Writer
}

// Execution is what Run learned about the finished process
type Execution struct {
	PID          int
	ExitCode     int
	Signal       string // set when the process was killed by a signal
	SignalNumber int
}

// ShellExitCode is the status a shell would report: the exit code, or
// 128 plus the signal number for a killed process
func (e *Execution) ShellExitCode() int {
	if e.SignalNumber > 0 {
		return 128 + e.SignalNumber
	}
	return e.ExitCode
}

// Run starts iv, spawns the command, waits for it and stops iv. A non-zero
// exit is reported in Execution, not as an error. iv is only stopped when
// the process was actually started.
func Run(ctx context.Context, iv *timer.Interval, c Command) (*Execution, error) {
	if c.Name == "" {
		return nil, fmt.Errorf("no command specified")
	}

	cmd := exec.CommandContext(ctx, c.Name, c.Args...)
	cmd.Dir = c.Dir
	cmd.Stdin = c.Stdin
	cmd.Stdout = orDefault(c.Stdout, os.Stdout)
	cmd.Stderr = orDefault(c.Stderr, os.Stderr)
	setProcessGroup(cmd)

	if err := iv.Start(); err != nil {
		return nil, err
	}
	if err := cmd.Start(); err != nil {
		return nil, fmt.Errorf("failed to start %s: %w", c.Name, err)
	}

	res := &Execution{PID: cmd.Process.Pid}
	waitErr := cmd.Wait()

	if err := iv.Stop(); err != nil {
		return res, err
	}

	if waitErr != nil {
		var exitErr *exec.ExitError
		if !errors.As(waitErr, &exitErr) {
			return res, fmt.Errorf("wait for %s: %w", c.Name, waitErr)
		}
		res.ExitCode = exitErr.ExitCode()
		res.Signal, res.SignalNumber = exitSignal(exitErr)
	}
	return res, nil
}

func orDefault(w, def io.Writer) io.Writer {
	if w == nil {
		return def
	}
	return w
}
