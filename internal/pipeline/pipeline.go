package pipeline

import (
	"fmt"
	"regexp"
)

// Default rule parameters, matching pandoc's DOCX to LaTeX output.
var (
	// DefaultRemoveTags are commands deleted together with their argument.
	DefaultRemoveTags = []string{"ul", "hl", "pandocbounded"}

	// DefaultImageExtensions are stripped from rewritten image references.
	DefaultImageExtensions = []string{"png", "jpg", "jpeg", "pdf", "webp", "wmf", "emf"}
)

// LaTeX command names: letters only.
var commandName = regexp.MustCompile(`^[A-Za-z]+$`)

// Rewrite is a user-supplied pattern and replacement pair.
// Replace follows regexp.Regexp.ReplaceAllString template syntax ($1, ${name}).
type Rewrite struct {
	Pattern string
	Replace string
}

// Options parameterizes the configurable stages.
// Nil slices select the defaults; an explicitly empty RemoveTags disables
// tag removal while the stage still runs.
type Options struct {
	RemoveTags      []string
	ImageExtensions []string
	Rewrites        []Rewrite
}

// Stage is one named rewrite of the document text.
// Apply must be total and free of side effects.
type Stage struct {
	Name  string
	Apply func(text, part string) string
}

// Pipeline is the fixed, ordered sequence of rewrites applied to one Part.
// It holds only compiled patterns and is safe for concurrent use.
type Pipeline struct {
	stages []Stage
}

// New compiles every rule and builds the stage table.
// A rule that fails to compile returns ErrInvalidPattern; this is meant to
// happen at startup, before any document is read.
func New(opts Options) (*Pipeline, error) {
	tags := opts.RemoveTags
	if tags == nil {
		tags = DefaultRemoveTags
	}
	for _, tag := range tags {
		if !commandName.MatchString(tag) {
			return nil, fmt.Errorf("%w: tag name %q must be letters only", ErrInvalidPattern, tag)
		}
	}

	exts := opts.ImageExtensions
	if exts == nil {
		exts = DefaultImageExtensions
	}
	images, err := newImageRewriter(exts)
	if err != nil {
		return nil, err
	}

	rewrites, err := compileRewrites(opts.Rewrites)
	if err != nil {
		return nil, err
	}

	// Order matters: bold groups must exist before the short-group collapse,
	// lists are restructured before outline numbers are respaced, envelopes are
	// collapsed before superscripts are renamed.
	return &Pipeline{stages: []Stage{
		{Name: "bold", Apply: textOnly(replaceBold)},
		{Name: "short-emphasis", Apply: textOnly(collapseShortBold)},
		{Name: "lists", Apply: textOnly(RestructureLists)},
		{Name: "number-spacing", Apply: textOnly(fixNumberSpacing)},
		{Name: "balanced-tags", Apply: textOnly(removeTags(tags))},
		{Name: "tables", Apply: textOnly(commentOutTables)},
		{Name: "quotes", Apply: textOnly(replaceQuotes)},
		{Name: "envelopes", Apply: textOnly(replaceEnvelopes)},
		{Name: "tightlist", Apply: textOnly(removeTightLists)},
		{Name: "unindent", Apply: textOnly(unindent)},
		{Name: "bullets", Apply: textOnly(replaceBullets)},
		{Name: "images", Apply: images.Rewrite},
		{Name: "scripts", Apply: textOnly(replaceScripts)},
		{Name: "mailto", Apply: textOnly(simplifyMailto)},
		{Name: "rewrites", Apply: textOnly(applyRewrites(rewrites))},
	}}, nil
}

// Run applies every stage once, in order, to text.
// part scopes rewritten figure paths.
func (p *Pipeline) Run(text, part string) string {
	for _, s := range p.stages {
		text = s.Apply(text, part)
	}
	return text
}

// Stages returns the stage names in execution order.
func (p *Pipeline) Stages() []string {
	names := make([]string, len(p.stages))
	for i, s := range p.stages {
		names[i] = s.Name
	}
	return names
}

// textOnly adapts a rewrite that does not depend on the part name.
func textOnly(fn func(string) string) func(string, string) string {
	return func(text, _ string) string {
		return fn(text)
	}
}

// compiledRewrite is a Rewrite with its pattern compiled.
type compiledRewrite struct {
	pattern *regexp.Regexp
	replace string
}

// compileRewrites compiles user rewrites in order. The first pattern that
// fails to compile aborts construction.
func compileRewrites(rewrites []Rewrite) ([]compiledRewrite, error) {
	compiled := make([]compiledRewrite, 0, len(rewrites))
	for i, rw := range rewrites {
		if rw.Pattern == "" {
			return nil, fmt.Errorf("%w: rewrite %d: empty pattern", ErrInvalidPattern, i)
		}
		re, err := regexp.Compile(rw.Pattern)
		if err != nil {
			return nil, fmt.Errorf("%w: rewrite %d: %v", ErrInvalidPattern, i, err)
		}
		compiled = append(compiled, compiledRewrite{pattern: re, replace: rw.Replace})
	}
	return compiled, nil
}

// applyRewrites runs compiled rewrites in order.
func applyRewrites(rewrites []compiledRewrite) func(string) string {
	return func(text string) string {
		for _, rw := range rewrites {
			text = rw.pattern.ReplaceAllString(text, rw.replace)
		}
		return text
	}
}
