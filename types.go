package newman

import (
	"fmt"
	"path"
	"time"
)

// defaultTimeout bounds one markup conversion.
const defaultTimeout = 2 * time.Minute

// Input contains the converter output of one Part.
type Input struct {
	Part   string // required, names the fragment and media directories
	Markup string // required, flat LaTeX as produced by the markup converter
}

// Result is the ordered list of articles of one Part.
type Result struct {
	Part     string
	Articles []Article
}

// Article is one fragment of a Part.
type Article struct {
	Index int // 1-based, in order of appearance
	Body  string
}

// FileName returns the fragment file name: the zero-padded three-digit index.
func (a Article) FileName() string {
	return fmt.Sprintf("%03d.tex", a.Index)
}

// InputLine returns the \input statement that includes the article from the
// master document. sourceDir is relative to the project root.
func (a Article) InputLine(sourceDir, part string) string {
	return `\input{` + path.Join(sourceDir, part, a.FileName()) + `}`
}

// Option configures a Converter.
type Option func(*Converter)

// converterConfig holds the rule parameters applied in NewConverter.
type converterConfig struct {
	timeout      time.Duration
	prefixes     []string
	removeTags   []string
	imageExts    []string
	rewrites     []Rewrite
	keepPreamble bool
}

// Rewrite is an extra pattern and replacement applied after every built-in
// rewrite. Replace uses regexp template syntax ($1, ${name}).
type Rewrite struct {
	Pattern string
	Replace string
}

// WithTimeout bounds each markup conversion.
// Panics if d <= 0 (programming error).
func WithTimeout(d time.Duration) Option {
	if d <= 0 {
		panic("newman: timeout must be positive")
	}
	return func(c *Converter) {
		c.cfg.timeout = d
	}
}

// WithMarkupConverter replaces the pandoc converter used by ConvertFile.
func WithMarkupConverter(m MarkupConverter) Option {
	return func(c *Converter) {
		c.markup = m
	}
}

// WithPrefixes sets the classification prefixes that open an article.
func WithPrefixes(prefixes ...string) Option {
	return func(c *Converter) {
		c.cfg.prefixes = append([]string{}, prefixes...)
	}
}

// WithRemovedTags sets the commands deleted with their braced argument.
// Calling it with no tags disables tag removal.
func WithRemovedTags(tags ...string) Option {
	return func(c *Converter) {
		c.cfg.removeTags = append([]string{}, tags...)
	}
}

// WithImageExtensions sets the extensions stripped from figure references.
func WithImageExtensions(exts ...string) Option {
	return func(c *Converter) {
		c.cfg.imageExts = append([]string{}, exts...)
	}
}

// WithRewrites appends extra rewrites, applied in order after the built-in
// ones.
func WithRewrites(rewrites ...Rewrite) Option {
	return func(c *Converter) {
		c.cfg.rewrites = append(c.cfg.rewrites, rewrites...)
	}
}

// WithKeepPreamble emits text before the first marker as its own leading
// article instead of dropping it.
func WithKeepPreamble(keep bool) Option {
	return func(c *Converter) {
		c.cfg.keepPreamble = keep
	}
}
