// Package process runs external commands in their own process group so a
// canceled run takes its children down with it.
package process

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os/exec"
	"time"
)

// ErrCommandNotFound indicates the command is not on PATH.
var ErrCommandNotFound = errors.New("command not found")

// waitDelay bounds how long Run waits for output pipes after a kill.
const waitDelay = 2 * time.Second

// Result is the outcome of one command run.
type Result struct {
	Output   string // combined stdout and stderr
	Duration time.Duration
}

// Run executes name with args in dir and waits for it to exit.
// When ctx is done the whole process group is killed and ctx.Err() is returned.
func Run(ctx context.Context, dir, name string, args ...string) (*Result, error) {
	cmd := exec.CommandContext(ctx, name, args...) // #nosec G204 -- command comes from config
	cmd.Dir = dir

	var out bytes.Buffer
	cmd.Stdout = &out
	cmd.Stderr = &out

	setProcessGroup(cmd)
	cmd.Cancel = func() error {
		if cmd.Process != nil {
			KillProcessGroup(cmd.Process.Pid)
		}
		return nil
	}
	cmd.WaitDelay = waitDelay

	start := time.Now()
	err := cmd.Run()
	res := &Result{Output: out.String(), Duration: time.Since(start)}

	if err != nil {
		if ctx.Err() != nil {
			return res, ctx.Err()
		}
		if errors.Is(err, exec.ErrNotFound) {
			return res, fmt.Errorf("%w: %s", ErrCommandNotFound, name)
		}
		return res, fmt.Errorf("running %s: %w", name, err)
	}
	return res, nil
}

// LookPath resolves name on PATH.
func LookPath(name string) (string, error) {
	path, err := exec.LookPath(name)
	if err != nil {
		return "", fmt.Errorf("%w: %s", ErrCommandNotFound, name)
	}
	return path, nil
}
