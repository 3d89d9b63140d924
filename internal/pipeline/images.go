package pipeline

import (
	"fmt"
	"regexp"
	"strings"
)

// FigureCommand is the two-argument macro images are rewritten to.
// The project template defines it relative to the media directory.
const FigureCommand = `\fig`

// imageRewriter rewrites \includegraphics[...]{media/NAME.ext} into
// \fig{<part>/NAME}{}. Assets are extracted under their original names, so
// the extension carries no information downstream.
type imageRewriter struct {
	pattern *regexp.Regexp
}

// newImageRewriter compiles the image pattern for the given extensions.
func newImageRewriter(extensions []string) (*imageRewriter, error) {
	if len(extensions) == 0 {
		return nil, fmt.Errorf("%w: no image extensions", ErrInvalidPattern)
	}

	quoted := make([]string, len(extensions))
	for i, ext := range extensions {
		ext = strings.TrimPrefix(ext, ".")
		if ext == "" {
			return nil, fmt.Errorf("%w: empty image extension", ErrInvalidPattern)
		}
		quoted[i] = regexp.QuoteMeta(ext)
	}

	expr := `\\includegraphics(?:\[[^\]]*\])?\{media/([^}/\\]+?)(?:\.(?:` + strings.Join(quoted, "|") + `))?\}`
	re, err := regexp.Compile(expr)
	if err != nil {
		return nil, fmt.Errorf("%w: image pattern: %v", ErrInvalidPattern, err)
	}
	return &imageRewriter{pattern: re}, nil
}

// Rewrite applies the image rule, scoping every figure under part.
func (r *imageRewriter) Rewrite(text, part string) string {
	// $ in the part name must not be read as a group reference
	replacement := FigureCommand + "{" + strings.ReplaceAll(part, "$", "$$") + "/$1}{}"
	return r.pattern.ReplaceAllString(text, replacement)
}
