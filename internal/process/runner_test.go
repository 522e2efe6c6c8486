//go:build !windows

package process

// Notes:
// - ExecRunner: we run /bin/sh with small scripts to cover success, stdout
//   capture, failure with stderr, and cancellation. Process-group kill of
//   grandchildren is observed only through the canceled run returning promptly.
// - KillProcessGroup: only invalid PIDs are tested; killing real groups from
//   a unit test is unsafe.
// These are acceptable gaps: we test observable behavior, not syscall internals.

import (
	"bytes"
	"context"
	"errors"
	"os/exec"
	"strings"
	"testing"
	"time"
)

func requireShell(t *testing.T) {
	t.Helper()
	if _, err := exec.LookPath("sh"); err != nil {
		t.Skip("sh not available")
	}
}

// ---------------------------------------------------------------------------
// TestExecRunner - Real subprocess execution
// ---------------------------------------------------------------------------

func TestExecRunner_CapturesStdout(t *testing.T) {
	t.Parallel()
	requireShell(t)

	var out bytes.Buffer
	err := ExecRunner{}.Run(context.Background(), Command{
		Name:   "sh",
		Args:   []string{"-c", "printf 'plain text'"},
		Stdout: &out,
	})
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}
	if out.String() != "plain text" {
		t.Errorf("stdout = %q, want %q", out.String(), "plain text")
	}
}

func TestExecRunner_FailureIncludesStderr(t *testing.T) {
	t.Parallel()
	requireShell(t)

	err := ExecRunner{}.Run(context.Background(), Command{
		Name: "sh",
		Args: []string{"-c", "echo 'cannot open file' >&2; exit 3"},
	})
	if !errors.Is(err, ErrCommandFailed) {
		t.Fatalf("Run() error = %v, want ErrCommandFailed", err)
	}
	if !strings.Contains(err.Error(), "cannot open file") {
		t.Errorf("error %q should include stderr", err)
	}
}

func TestExecRunner_Canceled(t *testing.T) {
	t.Parallel()
	requireShell(t)

	ctx, cancel := context.WithTimeout(context.Background(), 100*time.Millisecond)
	defer cancel()

	start := time.Now()
	err := ExecRunner{}.Run(ctx, Command{Name: "sh", Args: []string{"-c", "sleep 30 & sleep 30"}})
	if !errors.Is(err, context.DeadlineExceeded) {
		t.Fatalf("Run() error = %v, want DeadlineExceeded", err)
	}
	if elapsed := time.Since(start); elapsed > 10*time.Second {
		t.Errorf("canceled run took %v", elapsed)
	}
}

func TestExecRunner_MissingBinary(t *testing.T) {
	t.Parallel()

	err := ExecRunner{}.Run(context.Background(), Command{Name: "tex2speech-no-such-binary"})
	if err == nil {
		t.Fatal("Run() error = nil for missing binary")
	}
}

// ---------------------------------------------------------------------------
// TestCommand_String / TestTailWriter / TestKillProcessGroup
// ---------------------------------------------------------------------------

func TestCommand_String(t *testing.T) {
	t.Parallel()

	c := Command{Name: "say", Args: []string{"-f", "a.txt", "-o", "a.aac"}}
	if got := c.String(); got != "say -f a.txt -o a.aac" {
		t.Errorf("String() = %q", got)
	}
	if got := (Command{Name: "detex"}).String(); got != "detex" {
		t.Errorf("String() without args = %q", got)
	}
}

func TestTailWriter_KeepsTail(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	w := &tailWriter{buf: &buf, max: 4}
	n, err := w.Write([]byte("abcdef"))
	if err != nil || n != 6 {
		t.Fatalf("Write() = %d, %v", n, err)
	}
	if _, err := w.Write([]byte("gh")); err != nil {
		t.Fatal(err)
	}
	if buf.String() != "efgh" {
		t.Errorf("tail = %q, want %q", buf.String(), "efgh")
	}
}

func TestKillProcessGroup_InvalidPID(t *testing.T) {
	t.Parallel()

	// Must not panic. PID 0 and negatives are ignored because
	// kill(-0) would target our own process group.
	KillProcessGroup(0)
	KillProcessGroup(-1)
	KillProcessGroup(999999999)
}
