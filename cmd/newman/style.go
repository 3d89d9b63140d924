package main

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/charmbracelet/lipgloss"

	"github.com/alnah/go-newman"
	"github.com/alnah/go-newman/internal/config"
	"github.com/alnah/go-newman/internal/hints"
	"github.com/alnah/go-newman/internal/pandoc"
	"github.com/alnah/go-newman/internal/process"
)

// Palette
const (
	colorGreen  = "#A9DC76"
	colorRed    = "#FF6188"
	colorOrange = "#FC9867"
	colorDim    = "#727072"
	colorTitle  = "#FF6188"
)

// styles renders status lines for one writer. Colors are dropped when the
// writer is not a terminal.
type styles struct {
	success lipgloss.Style
	failure lipgloss.Style
	warning lipgloss.Style
	dim     lipgloss.Style
	title   lipgloss.Style
}

func newStyles(w io.Writer) styles {
	r := lipgloss.NewRenderer(w)
	return styles{
		success: r.NewStyle().Foreground(lipgloss.Color(colorGreen)),
		failure: r.NewStyle().Foreground(lipgloss.Color(colorRed)),
		warning: r.NewStyle().Foreground(lipgloss.Color(colorOrange)),
		dim:     r.NewStyle().Foreground(lipgloss.Color(colorDim)),
		title:   r.NewStyle().Bold(true).Foreground(lipgloss.Color(colorTitle)),
	}
}

// printError writes err with the hint matching its cause.
func printError(w io.Writer, err error) {
	s := newStyles(w)
	fmt.Fprintln(w, s.failure.Render("error:")+" "+err.Error()+hintFor(err))
}

// hintFor returns an actionable hint for well-known failures.
func hintFor(err error) string {
	switch {
	case errors.Is(err, newman.ErrConverterNotFound):
		return hints.ForConverterNotFound(pandoc.DefaultBinary)
	case errors.Is(err, process.ErrCommandNotFound):
		return hints.ForTypesetterNotFound(config.DefaultTypesetter)
	case errors.Is(err, context.DeadlineExceeded):
		return hints.ForTimeout()
	case errors.Is(err, config.ErrConfigNotFound):
		return hints.ForConfigNotFound(config.SearchPaths(config.AppDir))
	case errors.Is(err, newman.ErrProjectExists):
		return hints.ForProjectExists()
	}
	return ""
}
