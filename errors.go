package newman

import (
	"errors"

	"github.com/alnah/go-newman/internal/pandoc"
	"github.com/alnah/go-newman/internal/pipeline"
)

// Sentinel errors for library operations.
var (
	ErrInvalidPartName  = errors.New("invalid part name")
	ErrMarkupConversion = errors.New("markup conversion failed")
	ErrWriteFragment    = errors.New("failed to write article fragment")

	// Decoding and rule compilation errors.
	ErrInvalidEncoding = pipeline.ErrInvalidEncoding
	ErrInvalidPattern  = pipeline.ErrInvalidPattern

	// Converter lookup errors, wrapped by ErrMarkupConversion.
	ErrConverterNotFound = pandoc.ErrConverterNotFound

	// Project errors.
	ErrMasterNotFound = errors.New("master document not found")
	ErrProjectExists  = errors.New("project directory is not empty")
)
