// Package docinfo summarizes the body of a DOCX document without converting it.
package docinfo

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/fumiama/go-docx"
)

// ErrParse indicates the document body could not be read.
var ErrParse = errors.New("cannot parse document")

// Summary counts the top-level body items of a document.
type Summary struct {
	Paragraphs int
	Tables     int
	Empty      int // paragraphs without text

	// Markers are the paragraphs that start with a classification prefix,
	// in document order.
	Markers []string
}

// Inspect parses the document at path and counts its body items.
// A paragraph is a marker when its trimmed text starts with one of prefixes.
func Inspect(path string, prefixes []string) (*Summary, error) {
	f, err := os.Open(path) // #nosec G304 -- user-provided document
	if err != nil {
		return nil, fmt.Errorf("opening document: %w", err)
	}
	defer func() { _ = f.Close() }()

	info, err := f.Stat()
	if err != nil {
		return nil, fmt.Errorf("checking document: %w", err)
	}

	doc, err := docx.Parse(f, info.Size())
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrParse, path, err)
	}

	s := &Summary{}
	for _, item := range doc.Document.Body.Items {
		switch it := item.(type) {
		case *docx.Paragraph:
			s.Paragraphs++
			text := paragraphText(it)
			if text == "" {
				s.Empty++
				continue
			}
			if hasPrefix(text, prefixes) {
				s.Markers = append(s.Markers, text)
			}
		case *docx.Table:
			s.Tables++
		}
	}
	return s, nil
}

func paragraphText(para *docx.Paragraph) string {
	var buf strings.Builder
	for _, child := range para.Children {
		run, ok := child.(*docx.Run)
		if !ok {
			continue
		}
		for _, rc := range run.Children {
			if t, ok := rc.(*docx.Text); ok {
				buf.WriteString(t.Text)
			}
		}
	}
	return strings.TrimSpace(buf.String())
}

func hasPrefix(text string, prefixes []string) bool {
	for _, p := range prefixes {
		if p != "" && strings.HasPrefix(text, p) {
			return true
		}
	}
	return false
}
