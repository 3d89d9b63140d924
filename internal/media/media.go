// Package media copies embedded assets out of a DOCX archive.
package media

import (
	"archive/zip"
	"errors"
	"fmt"
	"io"
	"os"
	"path"
	"path/filepath"
	"sort"
	"strings"
)

// Prefix is the archive directory holding embedded images.
const Prefix = "word/media/"

// MaxEntrySize caps a single extracted asset (256MB).
var MaxEntrySize int64 = 256 << 20

// Sentinel errors for asset extraction.
var (
	ErrOpenArchive   = errors.New("cannot open document archive")
	ErrUnsafeEntry   = errors.New("archive entry has no usable file name")
	ErrEntryTooLarge = errors.New("archive entry exceeds maximum size")
)

// List returns the base names of every media entry, sorted.
func List(docxPath string) ([]string, error) {
	r, err := zip.OpenReader(docxPath)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrOpenArchive, docxPath, err)
	}
	defer func() { _ = r.Close() }()

	var names []string
	for _, f := range mediaEntries(&r.Reader) {
		name, err := entryName(f.Name)
		if err != nil {
			return nil, err
		}
		names = append(names, name)
	}
	sort.Strings(names)
	return names, nil
}

// Extract copies every media entry into destDir under its base name,
// creating destDir if needed. Directory components inside the archive are
// dropped; a later entry with the same base name overwrites an earlier one.
// Returns the written names, sorted.
func Extract(docxPath, destDir string) ([]string, error) {
	r, err := zip.OpenReader(docxPath)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrOpenArchive, docxPath, err)
	}
	defer func() { _ = r.Close() }()

	if err := os.MkdirAll(destDir, 0o750); err != nil {
		return nil, fmt.Errorf("creating media directory: %w", err)
	}

	seen := make(map[string]bool)
	for _, f := range mediaEntries(&r.Reader) {
		name, err := entryName(f.Name)
		if err != nil {
			return nil, err
		}
		if err := extractEntry(f, filepath.Join(destDir, name)); err != nil {
			return nil, err
		}
		seen[name] = true
	}

	names := make([]string, 0, len(seen))
	for name := range seen {
		names = append(names, name)
	}
	sort.Strings(names)
	return names, nil
}

// mediaEntries returns the regular file entries under Prefix, in archive order.
func mediaEntries(r *zip.Reader) []*zip.File {
	var entries []*zip.File
	for _, f := range r.File {
		if !strings.HasPrefix(f.Name, Prefix) || f.FileInfo().IsDir() {
			continue
		}
		entries = append(entries, f)
	}
	return entries
}

// entryName reduces an archive path to a base name safe to join to a directory.
func entryName(name string) (string, error) {
	base := path.Base(strings.ReplaceAll(name, `\`, "/"))
	if base == "." || base == ".." || base == "/" || strings.ContainsRune(base, 0) {
		return "", fmt.Errorf("%w: %q", ErrUnsafeEntry, name)
	}
	return base, nil
}

func extractEntry(f *zip.File, dest string) error {
	if f.UncompressedSize64 > uint64(MaxEntrySize) {
		return fmt.Errorf("%w: %s (%d bytes)", ErrEntryTooLarge, f.Name, f.UncompressedSize64)
	}

	src, err := f.Open()
	if err != nil {
		return fmt.Errorf("opening %s: %w", f.Name, err)
	}
	defer func() { _ = src.Close() }()

	out, err := os.Create(dest) // #nosec G304 -- dest is destDir joined with a base name
	if err != nil {
		return fmt.Errorf("creating %s: %w", dest, err)
	}

	// Declared sizes can lie; the copy itself is bounded too
	n, copyErr := io.CopyN(out, src, MaxEntrySize+1)
	closeErr := out.Close()
	if copyErr != nil && !errors.Is(copyErr, io.EOF) {
		return fmt.Errorf("extracting %s: %w", f.Name, copyErr)
	}
	if n > MaxEntrySize {
		_ = os.Remove(dest)
		return fmt.Errorf("%w: %s", ErrEntryTooLarge, f.Name)
	}
	if closeErr != nil {
		return fmt.Errorf("closing %s: %w", dest, closeErr)
	}
	return nil
}
