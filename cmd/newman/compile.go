package main

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"time"

	"github.com/alnah/go-newman"
	"github.com/alnah/go-newman/internal/fileutil"
	"github.com/alnah/go-newman/internal/process"
	"github.com/alnah/go-newman/internal/watch"
)

// runCompile typesets the project, once or on every change.
func runCompile(ctx context.Context, args []string, env *Environment) error {
	flags, positional, err := parseCompileFlags(args, env.Stderr)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrUsage, err)
	}
	if len(positional) > 0 {
		return fmt.Errorf("%w: compile takes no arguments, got %q", ErrUsage, positional[0])
	}

	cfg, _, err := loadConfig(flags.common, env)
	if err != nil {
		return err
	}
	if flags.debounce != "" {
		d, err := time.ParseDuration(flags.debounce)
		if err != nil || d < 0 {
			return fmt.Errorf("%w: invalid --debounce %q", ErrUsage, flags.debounce)
		}
		cfg.Typesetter.Debounce = d
	}
	if err := validateConfig(cfg); err != nil {
		return err
	}

	master := filepath.Join(flags.project.dir, cfg.Project.Master)
	if !fileutil.FileExists(master) {
		return fmt.Errorf("%w: %s", newman.ErrMasterNotFound, master)
	}

	logger := newLogger(flags.common, env)
	w := watch.New(watch.Options{
		Root:     flags.project.dir,
		BuildDir: cfg.Typesetter.BuildDir,
		Command:  cfg.Typesetter.Command,
		Args:     cfg.Typesetter.Args,
		Debounce: cfg.Typesetter.Debounce,
	}, logger)

	err = w.Compile(ctx)
	if flags.once {
		return err
	}
	if errors.Is(err, process.ErrCommandNotFound) {
		return err
	}

	if !flags.common.quiet {
		fmt.Fprintf(env.Stdout, "watching %s (Ctrl+C to stop)\n", flags.project.dir)
	}
	if err := w.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
		return err
	}
	return nil
}
