package main

import (
	"context"
	"fmt"

	"github.com/alnah/go-newman"
)

// runCreate scaffolds a new project from the configured template.
func runCreate(_ context.Context, args []string, env *Environment) error {
	flags, positional, err := parseCreateFlags(args, env.Stderr)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrUsage, err)
	}
	if len(positional) != 1 {
		printCreateUsage(env.Stderr)
		return fmt.Errorf("%w: create takes exactly one project directory", ErrUsage)
	}
	root := positional[0]

	cfg, _, err := loadConfig(flags.common, env)
	if err != nil {
		return err
	}
	if flags.template != "" {
		cfg.Template.Path = flags.template
	}
	if err := validateConfig(cfg); err != nil {
		return err
	}

	conv, err := newConverter(cfg, env)
	if err != nil {
		return err
	}
	loader, err := newman.NewTemplateLoader(cfg.Template.Path)
	if err != nil {
		return err
	}

	logger := newLogger(flags.common, env)
	p, err := newman.CreateProject(root, loader,
		newman.WithLayout(projectLayout(cfg)),
		newman.WithConverter(conv),
		newman.WithLogger(logger.Logger),
	)
	if err != nil {
		return err
	}

	if !flags.common.quiet {
		s := newStyles(env.Stdout)
		fmt.Fprintf(env.Stdout, "%s created project in %s\n", s.success.Render("✓"), p.Root())
		fmt.Fprintln(env.Stdout, s.dim.Render("  next: newman update -C "+p.Root()+" <issue.docx>"))
	}
	return nil
}
