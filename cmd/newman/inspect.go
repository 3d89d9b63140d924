package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/alnah/go-newman/internal/docinfo"
	"github.com/alnah/go-newman/internal/media"
)

// inspectResult describes what update would produce for a document.
type inspectResult struct {
	Part       string           `json:"part"`
	Paragraphs int              `json:"paragraphs"`
	Tables     int              `json:"tables"`
	Empty      int              `json:"empty_paragraphs"`
	Markers    []string         `json:"markers"`
	Media      []string         `json:"media"`
	Articles   []inspectArticle `json:"articles"`
}

type inspectArticle struct {
	File  string `json:"file"`
	First string `json:"first_line"`
}

// runInspect dry-runs the conversion of one document without touching any
// project.
func runInspect(ctx context.Context, args []string, env *Environment) error {
	flags, positional, err := parseInspectFlags(args, env.Stderr)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrUsage, err)
	}
	if len(positional) != 1 {
		printInspectUsage(env.Stderr)
		return fmt.Errorf("%w: inspect takes exactly one .docx file", ErrUsage)
	}
	path := positional[0]

	cfg, _, err := loadConfig(flags.common, env)
	if err != nil {
		return err
	}
	if cfg.Converter.Timeout, err = resolveTimeout(flags.timeout, cfg.Converter.Timeout); err != nil {
		return err
	}
	if err := validateConfig(cfg); err != nil {
		return err
	}
	conv, err := newConverter(cfg, env)
	if err != nil {
		return err
	}

	res, err := conv.ConvertFile(ctx, path)
	if err != nil {
		return err
	}
	summary, err := docinfo.Inspect(path, cfg.Split.Prefixes)
	if err != nil {
		return err
	}
	images, err := media.List(path)
	if err != nil {
		return err
	}

	out := &inspectResult{
		Part:       res.Part,
		Paragraphs: summary.Paragraphs,
		Tables:     summary.Tables,
		Empty:      summary.Empty,
		Markers:    nonNil(summary.Markers),
		Media:      nonNil(images),
		Articles:   make([]inspectArticle, len(res.Articles)),
	}
	for i, a := range res.Articles {
		out.Articles[i] = inspectArticle{File: a.FileName(), First: firstLine(a.Body)}
	}

	if flags.json {
		enc := json.NewEncoder(env.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(out)
	}
	printInspectResult(env.Stdout, out)
	return nil
}

func printInspectResult(w io.Writer, r *inspectResult) {
	s := newStyles(w)
	fmt.Fprintln(w, s.title.Render("Part "+r.Part))
	fmt.Fprintf(w, "  %d paragraphs (%d empty), %d tables, %d images\n",
		r.Paragraphs, r.Empty, r.Tables, len(r.Media))
	fmt.Fprintf(w, "  %d markers found in document body\n", len(r.Markers))
	fmt.Fprintln(w)

	if len(r.Articles) == 0 {
		fmt.Fprintln(w, s.warning.Render("No articles"))
		return
	}
	fmt.Fprintf(w, "Articles (%d)\n", len(r.Articles))
	for _, a := range r.Articles {
		fmt.Fprintf(w, "  %s  %s\n", a.File, s.dim.Render(a.First))
	}
}

// firstLine returns the first line of body, shortened for display.
func firstLine(body string) string {
	const maxRunes = 72
	line, _, _ := strings.Cut(body, "\n")
	if r := []rune(line); len(r) > maxRunes {
		return string(r[:maxRunes-1]) + "…"
	}
	return line
}

func nonNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}
