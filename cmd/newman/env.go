package main

import (
	"context"
	"io"
	"os"
	"time"

	"github.com/alnah/go-newman"
	"github.com/alnah/go-newman/internal/pandoc"
	"github.com/alnah/go-newman/internal/process"
)

// Environment holds injectable dependencies for testability.
type Environment struct {
	Now     func() time.Time
	Stdout  io.Writer
	Stderr  io.Writer
	Getenv  func(string) string
	Environ func() []string

	// Markup replaces the configured pandoc binary when set.
	Markup newman.MarkupConverter

	// LookPath resolves external tools for doctor.
	LookPath func(string) (string, error)

	// ConverterVersion reports the version line of the converter binary.
	ConverterVersion func(ctx context.Context, binary string) (string, error)
}

// DefaultEnv returns the production environment.
func DefaultEnv() *Environment {
	return &Environment{
		Now:      time.Now,
		Stdout:   os.Stdout,
		Stderr:   os.Stderr,
		Getenv:   os.Getenv,
		Environ:  os.Environ,
		LookPath: process.LookPath,
		ConverterVersion: func(ctx context.Context, binary string) (string, error) {
			return pandoc.NewConverter(binary).Version(ctx)
		},
	}
}
