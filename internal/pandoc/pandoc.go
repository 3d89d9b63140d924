// Package pandoc converts DOCX documents to flat LaTeX by invoking the
// pandoc CLI.
package pandoc

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
)

// DefaultBinary is the converter looked up on PATH when none is configured.
const DefaultBinary = "pandoc"

// Sentinel errors for conversion failures.
var (
	ErrEmptyPath         = errors.New("document path cannot be empty")
	ErrInvalidExtension  = errors.New("document must have .docx extension")
	ErrFileNotFound      = errors.New("document not found")
	ErrConverterNotFound = errors.New("markup converter not found")
	ErrConversion        = errors.New("markup conversion failed")
)

// CommandRunner abstracts command execution to enable testing without real subprocesses.
type CommandRunner interface {
	Run(ctx context.Context, name string, args ...string) (stdout []byte, stderr string, err error)
}

// ExecRunner implements CommandRunner using os/exec.
type ExecRunner struct{}

func (r *ExecRunner) Run(ctx context.Context, name string, args ...string) ([]byte, string, error) {
	cmd := exec.CommandContext(ctx, name, args...) // #nosec G204 -- binary comes from config

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	err := cmd.Run()
	return stdout.Bytes(), stderr.String(), err
}

// Converter turns a DOCX file into LaTeX with `pandoc <path> -f docx -t latex`.
type Converter struct {
	Runner CommandRunner
	Binary string
}

// NewConverter creates a Converter with a real command runner.
// An empty binary selects DefaultBinary.
func NewConverter(binary string) *Converter {
	if binary == "" {
		binary = DefaultBinary
	}
	return &Converter{Runner: &ExecRunner{}, Binary: binary}
}

// ToLaTeX converts the document at path and returns the raw converter output.
// The output is not validated here; decoding is the caller's job.
func (c *Converter) ToLaTeX(ctx context.Context, path string) ([]byte, error) {
	if err := validatePath(path); err != nil {
		return nil, err
	}

	stdout, stderr, err := c.Runner.Run(ctx, c.Binary, path, "-f", "docx", "-t", "latex")
	if err != nil {
		return nil, c.wrapRunError(ctx, err, stderr)
	}

	return stdout, nil
}

// Version returns the first line of `<binary> --version`.
func (c *Converter) Version(ctx context.Context) (string, error) {
	stdout, stderr, err := c.Runner.Run(ctx, c.Binary, "--version")
	if err != nil {
		return "", c.wrapRunError(ctx, err, stderr)
	}

	first, _, _ := strings.Cut(string(stdout), "\n")
	return strings.TrimSpace(first), nil
}

// wrapRunError classifies a runner failure.
func (c *Converter) wrapRunError(ctx context.Context, err error, stderr string) error {
	if ctx.Err() != nil {
		return ctx.Err()
	}
	if errors.Is(err, exec.ErrNotFound) {
		return fmt.Errorf("%w: %s", ErrConverterNotFound, c.Binary)
	}
	if stderr = strings.TrimSpace(stderr); stderr != "" {
		return fmt.Errorf("%w: %s: %v", ErrConversion, stderr, err)
	}
	return fmt.Errorf("%w: %v", ErrConversion, err)
}

// LookPath resolves binary on PATH.
func LookPath(binary string) (string, error) {
	path, err := exec.LookPath(binary)
	if err != nil {
		return "", fmt.Errorf("%w: %s", ErrConverterNotFound, binary)
	}
	return path, nil
}

// validatePath checks that path names an existing .docx file.
func validatePath(path string) error {
	if path == "" {
		return ErrEmptyPath
	}
	if !strings.EqualFold(filepath.Ext(path), ".docx") {
		return fmt.Errorf("%w: %s", ErrInvalidExtension, path)
	}
	info, err := os.Stat(path)
	if err != nil {
		if os.IsNotExist(err) {
			return fmt.Errorf("%w: %s", ErrFileNotFound, path)
		}
		return fmt.Errorf("checking document: %w", err)
	}
	if info.IsDir() {
		return fmt.Errorf("%w: %s is a directory", ErrFileNotFound, path)
	}
	return nil
}
