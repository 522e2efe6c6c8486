// Package process runs external commands with context cancellation.
// On cancellation the whole process group is killed, so tools that fork
// helpers (say, shell wrappers) do not outlive the run.
package process

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"os/exec"
	"strings"
	"time"
)

// ErrCommandFailed is returned when a command exits unsuccessfully.
var ErrCommandFailed = errors.New("command failed")

// waitDelay bounds how long Wait blocks on I/O after the process is killed.
const waitDelay = 5 * time.Second

// maxStderr caps the stderr kept for error messages.
const maxStderr = 4 << 10

// Command describes one external invocation.
type Command struct {
	Name   string
	Args   []string
	Dir    string
	Stdout io.Writer // nil discards output
}

// String renders the command line for logs.
func (c Command) String() string {
	return strings.TrimSpace(c.Name + " " + strings.Join(c.Args, " "))
}

// Runner abstracts command execution to enable testing without real subprocesses.
type Runner interface {
	Run(ctx context.Context, cmd Command) error
}

// ExecRunner implements Runner using os/exec.
type ExecRunner struct{}

// Run starts the command in its own process group and waits for it.
// A failed exit wraps ErrCommandFailed with the tail of stderr;
// cancellation returns the context error.
func (ExecRunner) Run(ctx context.Context, c Command) error {
	cmd := exec.CommandContext(ctx, c.Name, c.Args...) // #nosec G204 -- command comes from user config
	cmd.Dir = c.Dir
	cmd.Stdout = c.Stdout

	var stderr bytes.Buffer
	cmd.Stderr = &tailWriter{buf: &stderr, max: maxStderr}

	setProcessGroup(cmd)
	cmd.Cancel = func() error {
		if cmd.Process == nil {
			return nil
		}
		KillProcessGroup(cmd.Process.Pid)
		return cmd.Process.Kill()
	}
	cmd.WaitDelay = waitDelay

	err := cmd.Run()
	if err == nil {
		return nil
	}
	if ctxErr := ctx.Err(); ctxErr != nil {
		return fmt.Errorf("%s: %w", c.Name, ctxErr)
	}

	msg := strings.TrimSpace(stderr.String())
	if msg == "" {
		return fmt.Errorf("%w: %s: %v", ErrCommandFailed, c.Name, err)
	}
	return fmt.Errorf("%w: %s: %v: %s", ErrCommandFailed, c.Name, err, msg)
}

// LookPath resolves a command name to an executable path.
func LookPath(name string) (string, error) {
	return exec.LookPath(name)
}

// tailWriter keeps at most max bytes, dropping the oldest.
type tailWriter struct {
	buf *bytes.Buffer
	max int
}

func (w *tailWriter) Write(p []byte) (int, error) {
	n := len(p)
	w.buf.Write(p)
	if over := w.buf.Len() - w.max; over > 0 {
		w.buf.Next(over)
	}
	return n, nil
}
