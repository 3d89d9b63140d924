package assets

import (
	"bufio"
	"bytes"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
)

// Validate checks that master exists in the template and contains a line
// whose trimmed form equals sentinel.
func Validate(fsys fs.FS, master, sentinel string) error {
	data, err := fs.ReadFile(fsys, filepath.ToSlash(master))
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return fmt.Errorf("%w: %s", ErrIncompleteTemplate, master)
		}
		return fmt.Errorf("%w: %v", ErrAssetRead, err)
	}

	sc := bufio.NewScanner(bytes.NewReader(data))
	for sc.Scan() {
		if strings.TrimSpace(sc.Text()) == sentinel {
			return nil
		}
	}
	if err := sc.Err(); err != nil {
		return fmt.Errorf("%w: %v", ErrAssetRead, err)
	}
	return fmt.Errorf("%w: %q in %s", ErrSentinelMissing, sentinel, master)
}

// Copy writes every file of the template below dest, creating directories
// as needed, and returns the written paths relative to dest.
// Existing files are overwritten; symlinks in the template are refused.
func Copy(fsys fs.FS, dest string) ([]string, error) {
	var written []string

	err := fs.WalkDir(fsys, ".", func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return fmt.Errorf("%w: %v", ErrAssetRead, err)
		}
		if d.Type()&fs.ModeSymlink != 0 {
			return fmt.Errorf("%w: symlink in template: %s", ErrPathTraversal, path)
		}
		if !fs.ValidPath(path) {
			return fmt.Errorf("%w: %s", ErrPathTraversal, path)
		}

		target := filepath.Join(dest, filepath.FromSlash(path))
		if d.IsDir() {
			return os.MkdirAll(target, 0o750)
		}

		data, err := fs.ReadFile(fsys, path)
		if err != nil {
			return fmt.Errorf("%w: %v", ErrAssetRead, err)
		}
		if err := os.WriteFile(target, data, 0o644); err != nil { // #nosec G306 -- project sources are shared
			return fmt.Errorf("writing %s: %w", target, err)
		}
		written = append(written, path)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return written, nil
}
