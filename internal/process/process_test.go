package process

// Notes:
// - Commands are run through sh, so the run tests skip on Windows.
// - KillProcessGroup is only called with an invalid PID directly: PID 0 or a
//   real PID would target live processes.

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"testing"
	"time"
)

func requireShell(t *testing.T) {
	t.Helper()
	if runtime.GOOS == "windows" {
		t.Skip("requires sh")
	}
	if _, err := LookPath("sh"); err != nil {
		t.Skip("sh not on PATH")
	}
}

// ---------------------------------------------------------------------------
// TestRun - Output, exit status and working directory
// ---------------------------------------------------------------------------

func TestRun_Success(t *testing.T) {
	t.Parallel()
	requireShell(t)

	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "main.tex"), []byte("x"), 0o600); err != nil {
		t.Fatalf("setup: %v", err)
	}

	res, err := Run(context.Background(), dir, "sh", "-c", "ls; echo oops >&2")
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}
	if !strings.Contains(res.Output, "main.tex") {
		t.Errorf("Output = %q, want listing of dir", res.Output)
	}
	if !strings.Contains(res.Output, "oops") {
		t.Errorf("Output = %q, want stderr included", res.Output)
	}
}

func TestRun_ExitFailure(t *testing.T) {
	t.Parallel()
	requireShell(t)

	res, err := Run(context.Background(), t.TempDir(), "sh", "-c", "echo '! Undefined control sequence.'; exit 1")
	if err == nil {
		t.Fatal("Run() error = nil, want exit error")
	}
	if !strings.Contains(res.Output, "Undefined control sequence") {
		t.Errorf("Output = %q, want command output kept on failure", res.Output)
	}
}

func TestRun_NotFound(t *testing.T) {
	t.Parallel()

	_, err := Run(context.Background(), t.TempDir(), "newman-no-such-command-xyz")
	if !errors.Is(err, ErrCommandNotFound) {
		t.Errorf("Run() error = %v, want ErrCommandNotFound", err)
	}
}

func TestRun_Canceled(t *testing.T) {
	t.Parallel()
	requireShell(t)

	ctx, cancel := context.WithTimeout(context.Background(), 100*time.Millisecond)
	defer cancel()

	start := time.Now()
	_, err := Run(ctx, t.TempDir(), "sh", "-c", "sleep 30 & sleep 30")
	if !errors.Is(err, context.DeadlineExceeded) {
		t.Errorf("Run() error = %v, want context.DeadlineExceeded", err)
	}
	if elapsed := time.Since(start); elapsed > 10*time.Second {
		t.Errorf("Run() took %v after cancel, want prompt return", elapsed)
	}
}

func TestKillProcessGroup_InvalidPID(t *testing.T) {
	t.Parallel()

	KillProcessGroup(999999999)
}
