package main

import (
	"context"
	"errors"
	"os"

	"github.com/alnah/go-newman"
	"github.com/alnah/go-newman/internal/assets"
	"github.com/alnah/go-newman/internal/config"
	"github.com/alnah/go-newman/internal/docinfo"
	"github.com/alnah/go-newman/internal/media"
	"github.com/alnah/go-newman/internal/pandoc"
	"github.com/alnah/go-newman/internal/process"
	"github.com/alnah/go-newman/internal/watch"
)

// Exit codes for newman CLI.
// Follows Unix conventions: 0=success, 1=general, 2=usage, and custom codes < 126.
const (
	ExitSuccess = 0 // Successful run
	ExitGeneral = 1 // General/unexpected error
	ExitUsage   = 2 // Invalid flags, config, or validation
	ExitIO      = 3 // File not found, permission denied
	ExitTool    = 4 // pandoc or typesetter errors
)

// exitCodeFor returns the appropriate exit code for an error.
// It uses errors.Is to check wrapped errors, so callers must use fmt.Errorf("%w", err).
func exitCodeFor(err error) int {
	if err == nil {
		return ExitSuccess
	}

	// Usage/config/validation errors (exit 2)
	if errors.Is(err, ErrUsage) ||
		errors.Is(err, config.ErrConfigNotFound) ||
		errors.Is(err, config.ErrConfigParse) ||
		errors.Is(err, config.ErrEmptyConfigName) ||
		errors.Is(err, config.ErrInvalidConfig) ||
		errors.Is(err, config.ErrFieldTooLong) ||
		errors.Is(err, newman.ErrInvalidPattern) ||
		errors.Is(err, newman.ErrInvalidPartName) ||
		errors.Is(err, pandoc.ErrEmptyPath) ||
		errors.Is(err, pandoc.ErrInvalidExtension) ||
		errors.Is(err, assets.ErrInvalidBasePath) ||
		errors.Is(err, assets.ErrIncompleteTemplate) ||
		errors.Is(err, assets.ErrSentinelMissing) {
		return ExitUsage
	}

	// I/O errors (exit 3), checked before tool errors: a missing document
	// is reported through the converter
	if errors.Is(err, os.ErrNotExist) ||
		errors.Is(err, os.ErrPermission) ||
		errors.Is(err, pandoc.ErrFileNotFound) ||
		errors.Is(err, newman.ErrMasterNotFound) ||
		errors.Is(err, newman.ErrWriteFragment) ||
		errors.Is(err, newman.ErrProjectExists) ||
		errors.Is(err, media.ErrOpenArchive) ||
		errors.Is(err, media.ErrUnsafeEntry) ||
		errors.Is(err, media.ErrEntryTooLarge) ||
		errors.Is(err, docinfo.ErrParse) {
		return ExitIO
	}

	// External tool errors (exit 4)
	if errors.Is(err, newman.ErrMarkupConversion) ||
		errors.Is(err, process.ErrCommandNotFound) ||
		errors.Is(err, watch.ErrCompile) ||
		errors.Is(err, context.DeadlineExceeded) {
		return ExitTool
	}

	return ExitGeneral
}
