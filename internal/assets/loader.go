package assets

import (
	"embed"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
)

//go:embed all:template
var embedded embed.FS

// TemplateLoader defines the contract for loading a project template.
type TemplateLoader interface {
	// Template returns the template tree rooted at the project root.
	Template() (fs.FS, error)
}

// EmbeddedLoader loads the built-in template.
type EmbeddedLoader struct{}

// NewEmbeddedLoader creates an EmbeddedLoader.
func NewEmbeddedLoader() *EmbeddedLoader {
	return &EmbeddedLoader{}
}

// Template returns the embedded template tree.
func (e *EmbeddedLoader) Template() (fs.FS, error) {
	sub, err := fs.Sub(embedded, "template")
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrAssetRead, err)
	}
	return sub, nil
}

// FilesystemLoader loads a template from a directory on the filesystem.
type FilesystemLoader struct {
	basePath string
}

// NewFilesystemLoader creates a FilesystemLoader for the given base path.
// Returns ErrInvalidBasePath if the path is not a valid, readable directory.
func NewFilesystemLoader(basePath string) (*FilesystemLoader, error) {
	if basePath == "" {
		return nil, fmt.Errorf("%w: empty path", ErrInvalidBasePath)
	}

	// Clean and resolve to absolute path
	absPath, err := filepath.Abs(basePath)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidBasePath, err)
	}

	// Resolve symlinks in base path for consistent comparisons
	if realPath, err := filepath.EvalSymlinks(absPath); err == nil {
		absPath = realPath
	}

	// Verify it's a readable directory
	info, err := os.Stat(absPath)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: directory does not exist: %s", ErrInvalidBasePath, absPath)
		}
		return nil, fmt.Errorf("%w: %v", ErrInvalidBasePath, err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("%w: not a directory: %s", ErrInvalidBasePath, absPath)
	}

	// Verify read access by attempting to read directory
	if _, err := os.ReadDir(absPath); err != nil {
		return nil, fmt.Errorf("%w: cannot read directory: %v", ErrInvalidBasePath, err)
	}

	return &FilesystemLoader{basePath: absPath}, nil
}

// Template returns the directory tree.
func (f *FilesystemLoader) Template() (fs.FS, error) {
	return os.DirFS(f.basePath), nil
}

// BasePath returns the resolved template directory.
func (f *FilesystemLoader) BasePath() string {
	return f.basePath
}

// NewLoader returns the embedded loader for an empty path, a
// FilesystemLoader otherwise.
func NewLoader(path string) (TemplateLoader, error) {
	if path == "" {
		return NewEmbeddedLoader(), nil
	}
	return NewFilesystemLoader(path)
}

// Compile-time interface checks.
var (
	_ TemplateLoader = (*EmbeddedLoader)(nil)
	_ TemplateLoader = (*FilesystemLoader)(nil)
)
