package main

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/alnah/go-newman"
	"github.com/alnah/go-newman/internal/hints"
)

// runUpdate converts DOCX files into fragments of an existing project.
func runUpdate(ctx context.Context, args []string, env *Environment) error {
	flags, paths, err := parseUpdateFlags(args, env.Stderr)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrUsage, err)
	}
	if len(paths) == 0 {
		printUpdateUsage(env.Stderr)
		return fmt.Errorf("%w: update needs at least one .docx file", ErrUsage)
	}
	if flags.workers < 0 {
		return fmt.Errorf("%w: --workers must not be negative, got %d", ErrUsage, flags.workers)
	}

	cfg, envCfg, err := loadConfig(flags.common, env)
	if err != nil {
		return err
	}
	if cfg.Converter.Timeout, err = resolveTimeout(flags.timeout, cfg.Converter.Timeout); err != nil {
		return err
	}
	if flags.keepPreamble {
		cfg.Split.KeepPreamble = true
	}
	if err := validateConfig(cfg); err != nil {
		return err
	}

	workers := flags.workers
	if workers == 0 {
		workers = envCfg.Workers
	}

	conv, err := newConverter(cfg, env)
	if err != nil {
		return err
	}
	logger := newLogger(flags.common, env)
	p, err := newman.OpenProject(flags.project.dir,
		newman.WithLayout(projectLayout(cfg)),
		newman.WithConverter(conv),
		newman.WithLogger(logger.Logger),
	)
	if err != nil {
		return err
	}

	start := env.Now()
	var reports []newman.PartReport
	if len(paths) == 1 {
		report, _ := p.UpdatePart(ctx, paths[0])
		reports = []newman.PartReport{*report}
	} else {
		reports = p.UpdateParts(ctx, paths, workers)
	}

	printReports(env.Stdout, reports, p.Layout(), cfg.Split.Prefixes, flags.common.quiet)
	if flags.common.verbose {
		fmt.Fprintf(env.Stdout, "done in %s\n", env.Now().Sub(start).Round(time.Millisecond))
	}

	return firstFailure(reports)
}

// printReports writes one status line per part, with hints for parts that
// need attention.
func printReports(w io.Writer, reports []newman.PartReport, layout newman.Layout, prefixes []string, quiet bool) {
	s := newStyles(w)
	for _, r := range reports {
		switch {
		case r.Err != nil:
			fmt.Fprintf(w, "%s %s: %v%s\n", s.failure.Render("✗"), r.Part, r.Err, hintFor(r.Err))
		case quiet:
			continue
		case !r.Inserted:
			fmt.Fprintf(w, "%s %s: %d articles, %d images; master not updated%s\n",
				s.warning.Render("!"), r.Part, len(r.Fragments), len(r.Media),
				hints.ForSentinelMissing(layout.Master, layout.Sentinel))
		case len(r.Fragments) == 0:
			fmt.Fprintf(w, "%s %s: no articles%s\n", s.warning.Render("!"), r.Part, hints.ForNoMarkers(prefixes))
		default:
			fmt.Fprintf(w, "%s %s: %d articles, %d images\n",
				s.success.Render("✓"), r.Part, len(r.Fragments), len(r.Media))
		}
	}
}

// firstFailure summarizes failed parts, wrapping the first error so the
// exit code reflects its cause.
func firstFailure(reports []newman.PartReport) error {
	var first error
	failed := 0
	for _, r := range reports {
		if r.Err != nil {
			failed++
			if first == nil {
				first = r.Err
			}
		}
	}
	if first == nil {
		return nil
	}
	return fmt.Errorf("%d of %d parts failed: %w", failed, len(reports), first)
}
