// Package logging wraps charmbracelet/log with the events newman reports.
package logging

import (
	"io"
	"time"

	"github.com/charmbracelet/log"
)

// Logger wraps charm/log for structured logging
type Logger struct {
	*log.Logger
}

// New creates a logger at Info level.
func New(w io.Writer) *Logger {
	return NewWithLevel(w, log.InfoLevel)
}

// NewWithLevel creates a logger with a specific level
func NewWithLevel(w io.Writer, level log.Level) *Logger {
	l := log.NewWithOptions(w, log.Options{
		ReportTimestamp: true,
		TimeFormat:      time.DateTime,
		Level:           level,
	})
	return &Logger{Logger: l}
}

// Discard returns a logger that discards all output
func Discard() *Logger {
	return New(io.Discard)
}

// LevelFor picks the CLI log level. quiet wins over verbose.
func LevelFor(verbose, quiet bool) log.Level {
	switch {
	case quiet:
		return log.ErrorLevel
	case verbose:
		return log.DebugLevel
	default:
		return log.InfoLevel
	}
}

// PartStarted logs the start of a part update
func (l *Logger) PartStarted(part, source string) {
	l.Info("updating part",
		"part", part,
		"source", source)
}

// ArticlesWritten logs the fragments written for a part
func (l *Logger) ArticlesWritten(part string, count int, dir string) {
	l.Info("articles written",
		"part", part,
		"count", count,
		"dir", dir)
}

// MediaExtracted logs the assets copied out of a document
func (l *Logger) MediaExtracted(part string, count int, dir string) {
	l.Debug("media extracted",
		"part", part,
		"count", count,
		"dir", dir)
}

// SentinelMissing warns that inputs could not be inserted into the master
func (l *Logger) SentinelMissing(master, sentinel string) {
	l.Warn("sentinel not found, master left unchanged",
		"master", master,
		"sentinel", sentinel)
}

// PartFailed logs an update that did not complete
func (l *Logger) PartFailed(part string, err error) {
	l.Error("part failed",
		"part", part,
		"error", err)
}

// ChangeDetected logs a file event that triggers a rebuild
func (l *Logger) ChangeDetected(path, op string) {
	l.Debug("change detected",
		"path", path,
		"op", op)
}

// CompileFinished logs a successful typesetter run
func (l *Logger) CompileFinished(duration time.Duration) {
	l.Info("compile finished",
		"duration", duration.Round(time.Millisecond))
}

// CompileFailed logs a failed typesetter run
func (l *Logger) CompileFailed(err error, output string) {
	l.Error("compile failed",
		"error", err,
		"output", output)
}
