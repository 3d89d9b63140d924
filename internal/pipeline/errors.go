package pipeline

import "errors"

// Sentinel errors for pipeline construction and decoding.
var (
	// ErrInvalidPattern indicates a rewrite rule could not be compiled.
	// It is a configuration error: no document is processed.
	ErrInvalidPattern = errors.New("invalid rewrite pattern")

	// ErrInvalidEncoding indicates converter output is not valid UTF-8.
	ErrInvalidEncoding = errors.New("markup is not valid UTF-8")
)
