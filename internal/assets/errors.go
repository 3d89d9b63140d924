package assets

import "errors"

// Sentinel errors for template operations.
var (
	// ErrInvalidBasePath indicates the configured template path is not a valid directory.
	ErrInvalidBasePath = errors.New("invalid template path")

	// ErrIncompleteTemplate indicates the template has no master document.
	ErrIncompleteTemplate = errors.New("template missing master document")

	// ErrSentinelMissing indicates the master document has no sentinel line.
	ErrSentinelMissing = errors.New("template master has no sentinel line")

	// ErrAssetRead indicates an I/O error occurred while reading a template file.
	ErrAssetRead = errors.New("failed to read template")

	// ErrPathTraversal indicates a template entry that would escape the destination.
	ErrPathTraversal = errors.New("path traversal detected")
)
