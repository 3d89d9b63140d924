package pipeline

import (
	"fmt"
	"regexp"
	"strings"
)

// MarkerCommand is the canonical classification marker: \id{<code>}{}.
const MarkerCommand = `\id`

// DefaultPrefixes are the classification code prefixes that open an article:
// the English, Kazakh and Russian spellings of the same subject index.
var DefaultPrefixes = []string{"IRSTI", "ҒТАМР", "МРНТИ", "ГРНТИ"}

// PreamblePolicy decides what happens to text before the first marker.
type PreamblePolicy int

const (
	// PreambleDrop discards text before the first marker.
	PreambleDrop PreamblePolicy = iota

	// PreambleKeep emits non-blank text before the first marker as its own
	// leading article.
	PreambleKeep
)

// Splitter partitions transformed text into articles at classification
// markers.
type Splitter struct {
	wrapped  *regexp.Regexp
	marker   *regexp.Regexp
	preamble PreamblePolicy
}

// NewSplitter compiles the marker patterns for the given prefixes.
func NewSplitter(prefixes []string, preamble PreamblePolicy) (*Splitter, error) {
	if len(prefixes) == 0 {
		return nil, fmt.Errorf("%w: no classification prefixes", ErrInvalidPattern)
	}

	quoted := make([]string, len(prefixes))
	for i, p := range prefixes {
		if strings.TrimSpace(p) == "" {
			return nil, fmt.Errorf("%w: empty classification prefix", ErrInvalidPattern)
		}
		quoted[i] = regexp.QuoteMeta(p)
	}
	alternatives := strings.Join(quoted, "|")

	// Optional bold group, prefix, code, optional stray closing brace
	wrapped, err := regexp.Compile(`\s*(?:\{\\bfseries\s+)?((?:` + alternatives + `)[0-9. ]*)\}?`)
	if err != nil {
		return nil, fmt.Errorf("%w: marker pattern: %v", ErrInvalidPattern, err)
	}

	marker, err := regexp.Compile(regexp.QuoteMeta(MarkerCommand) + `\{(?:` + alternatives + `)[0-9 .,]*\}\{\}`)
	if err != nil {
		return nil, fmt.Errorf("%w: split pattern: %v", ErrInvalidPattern, err)
	}

	return &Splitter{wrapped: wrapped, marker: marker, preamble: preamble}, nil
}

// Normalize rewrites every marker occurrence, with the formatting noise
// around it, into the canonical \id{<prefix code>}{} form.
func (s *Splitter) Normalize(text string) string {
	matches := s.wrapped.FindAllStringSubmatchIndex(text, -1)
	if len(matches) == 0 {
		return text
	}

	var b strings.Builder
	b.Grow(len(text))
	last := 0
	for _, m := range matches {
		// Already canonical: keep as is so Normalize is idempotent
		if strings.HasSuffix(text[:m[0]], MarkerCommand+"{") {
			continue
		}
		b.WriteString(text[last:m[0]])
		b.WriteString(MarkerCommand + "{" + strings.TrimSpace(text[m[2]:m[3]]) + "}{}")
		last = m[1]
	}
	b.WriteString(text[last:])
	return b.String()
}

// Split normalizes text and cuts it at marker start offsets. Each article
// begins with its own marker and runs up to the next one; the last runs to
// end of text. Text without markers is one article holding the whole
// trimmed text, even when that is empty. Every article is trimmed.
func (s *Splitter) Split(text string) []string {
	normalized := s.Normalize(text)

	starts := s.markerStarts(normalized)
	if len(starts) == 0 {
		return []string{strings.TrimSpace(normalized)}
	}

	articles := make([]string, 0, len(starts)+1)
	if s.preamble == PreambleKeep {
		if pre := strings.TrimSpace(normalized[:starts[0]]); pre != "" {
			articles = append(articles, pre)
		}
	}
	for i := 1; i < len(starts); i++ {
		articles = append(articles, strings.TrimSpace(normalized[starts[i-1]:starts[i]]))
	}
	articles = append(articles, strings.TrimSpace(normalized[starts[len(starts)-1]:]))

	return articles
}

// markerStarts returns the start offset of every canonical marker in order.
func (s *Splitter) markerStarts(text string) []int {
	locs := s.marker.FindAllStringIndex(text, -1)
	starts := make([]int, len(locs))
	for i, loc := range locs {
		starts[i] = loc[0]
	}
	return starts
}
