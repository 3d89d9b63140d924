package newman

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/alnah/go-newman/internal/fileutil"
	"github.com/alnah/go-newman/internal/pandoc"
	"github.com/alnah/go-newman/internal/pipeline"
)

// MarkupConverter turns a DOCX file into flat LaTeX.
type MarkupConverter interface {
	ToLaTeX(ctx context.Context, path string) ([]byte, error)
}

// Compile-time interface implementation check.
var _ MarkupConverter = (*pandoc.Converter)(nil)

// Converter runs the rewrite pipeline and the article splitter.
// It holds only compiled rules and is safe for concurrent use.
type Converter struct {
	cfg      converterConfig
	markup   MarkupConverter
	pipeline *pipeline.Pipeline
	splitter *pipeline.Splitter
}

// NewConverter compiles every rule. A rule that does not compile returns
// ErrInvalidPattern before any document is read.
func NewConverter(opts ...Option) (*Converter, error) {
	c := &Converter{
		cfg: converterConfig{timeout: defaultTimeout},
	}

	for _, opt := range opts {
		opt(c)
	}

	if c.markup == nil {
		c.markup = pandoc.NewConverter(pandoc.DefaultBinary)
	}

	rewrites := make([]pipeline.Rewrite, len(c.cfg.rewrites))
	for i, rw := range c.cfg.rewrites {
		rewrites[i] = pipeline.Rewrite{Pattern: rw.Pattern, Replace: rw.Replace}
	}

	p, err := pipeline.New(pipeline.Options{
		RemoveTags:      c.cfg.removeTags,
		ImageExtensions: c.cfg.imageExts,
		Rewrites:        rewrites,
	})
	if err != nil {
		return nil, fmt.Errorf("building pipeline: %w", err)
	}
	c.pipeline = p

	prefixes := c.cfg.prefixes
	if prefixes == nil {
		prefixes = pipeline.DefaultPrefixes
	}
	policy := pipeline.PreambleDrop
	if c.cfg.keepPreamble {
		policy = pipeline.PreambleKeep
	}
	s, err := pipeline.NewSplitter(prefixes, policy)
	if err != nil {
		return nil, fmt.Errorf("building splitter: %w", err)
	}
	c.splitter = s

	return c, nil
}

// Split decodes input.Markup, rewrites it and cuts it into articles.
// Recovers from internal panics to prevent crashes from propagating to callers.
func (c *Converter) Split(ctx context.Context, input Input) (result *Result, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("internal error: %v", r)
		}
	}()

	if err := validateInput(input); err != nil {
		return nil, err
	}
	if ctx.Err() != nil {
		return nil, ctx.Err()
	}

	text, err := pipeline.Decode([]byte(input.Markup))
	if err != nil {
		return nil, fmt.Errorf("part %q: %w", input.Part, err)
	}

	text = c.pipeline.Run(text, input.Part)
	if ctx.Err() != nil {
		return nil, ctx.Err()
	}
	if strings.TrimSpace(text) == "" {
		return &Result{Part: input.Part, Articles: []Article{}}, nil
	}

	bodies := c.splitter.Split(text)
	res := &Result{Part: input.Part, Articles: make([]Article, len(bodies))}
	for i, body := range bodies {
		res.Articles[i] = Article{Index: i + 1, Body: body}
	}
	return res, nil
}

// ConvertFile runs the markup converter on a DOCX file and splits the
// output. The part name is the file name without its extension.
func (c *Converter) ConvertFile(ctx context.Context, path string) (*Result, error) {
	part := fileutil.Stem(path)
	if err := validatePartName(part); err != nil {
		return nil, err
	}

	convCtx, cancel := context.WithTimeout(ctx, c.cfg.timeout)
	defer cancel()

	raw, err := c.markup.ToLaTeX(convCtx, path)
	if err != nil {
		if errors.Is(err, context.Canceled) && ctx.Err() != nil {
			return nil, ctx.Err()
		}
		return nil, fmt.Errorf("%w: %w", ErrMarkupConversion, err)
	}

	return c.Split(ctx, Input{Part: part, Markup: string(raw)})
}

// Stages returns the rewrite stage names in execution order.
func (c *Converter) Stages() []string {
	return c.pipeline.Stages()
}

// validateInput checks that required fields are present and valid.
//
// This is a TRUST BOUNDARY for direct library users who build Input manually.
// Project updates derive the part name from the document file name and
// converge here as well.
func validateInput(input Input) error {
	if err := validatePartName(input.Part); err != nil {
		return err
	}
	return nil
}

// validatePartName rejects names that cannot be a single path component.
func validatePartName(part string) error {
	if err := fileutil.ValidateName(part); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidPartName, err)
	}
	return nil
}
