package assets

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"runtime"
	"sort"
	"strings"
	"testing"
	"testing/fstest"
)

const sentinel = "% Main content"

// ---------------------------------------------------------------------------
// TestEmbeddedLoader - Built-in template content
// ---------------------------------------------------------------------------

func TestEmbeddedLoader_Template(t *testing.T) {
	t.Parallel()

	fsys, err := NewEmbeddedLoader().Template()
	if err != nil {
		t.Fatalf("Template() error = %v", err)
	}

	if err := Validate(fsys, "main.tex", sentinel); err != nil {
		t.Errorf("Validate(embedded) error = %v", err)
	}

	sty, err := fs.ReadFile(fsys, "newman.sty")
	if err != nil {
		t.Fatalf("reading newman.sty: %v", err)
	}
	for _, macro := range []string{`\newcommand{\id}`, `\newcommand{\fig}`, `\newcommand{\tsp}`, `\newcommand{\tsb}`, `\newcommand{\envelope}`, `\graphicspath{{media/}}`} {
		if !strings.Contains(string(sty), macro) {
			t.Errorf("newman.sty missing %s", macro)
		}
	}

	for _, dir := range []string{"src", "media"} {
		info, err := fs.Stat(fsys, dir)
		if err != nil || !info.IsDir() {
			t.Errorf("template missing %s/ directory: %v", dir, err)
		}
	}
}

// ---------------------------------------------------------------------------
// TestNewFilesystemLoader - Base path validation
// ---------------------------------------------------------------------------

func TestNewFilesystemLoader(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	file := filepath.Join(dir, "file.txt")
	if err := os.WriteFile(file, nil, 0o600); err != nil {
		t.Fatalf("setup: %v", err)
	}

	tests := []struct {
		name    string
		path    string
		wantErr error
	}{
		{"valid directory", dir, nil},
		{"empty path", "", ErrInvalidBasePath},
		{"missing directory", filepath.Join(dir, "none"), ErrInvalidBasePath},
		{"file not directory", file, ErrInvalidBasePath},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			_, err := NewFilesystemLoader(tt.path)
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("NewFilesystemLoader(%q) error = %v, want %v", tt.path, err, tt.wantErr)
			}
		})
	}
}

func TestNewLoader(t *testing.T) {
	t.Parallel()

	l, err := NewLoader("")
	if err != nil {
		t.Fatalf("NewLoader(\"\") error = %v", err)
	}
	if _, ok := l.(*EmbeddedLoader); !ok {
		t.Errorf("NewLoader(\"\") = %T, want *EmbeddedLoader", l)
	}

	dir := t.TempDir()
	l, err = NewLoader(dir)
	if err != nil {
		t.Fatalf("NewLoader(dir) error = %v", err)
	}
	fl, ok := l.(*FilesystemLoader)
	if !ok {
		t.Fatalf("NewLoader(dir) = %T, want *FilesystemLoader", l)
	}
	if !filepath.IsAbs(fl.BasePath()) {
		t.Errorf("BasePath() = %q, want absolute", fl.BasePath())
	}
}

// ---------------------------------------------------------------------------
// TestValidate - Master document and sentinel checks
// ---------------------------------------------------------------------------

func TestValidate(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		files   fstest.MapFS
		wantErr error
	}{
		{
			name:  "sentinel present",
			files: fstest.MapFS{"main.tex": {Data: []byte("\\begin{document}\n% Main content\n\\end{document}\n")}},
		},
		{
			name:  "sentinel with surrounding spaces",
			files: fstest.MapFS{"main.tex": {Data: []byte("  % Main content  \n")}},
		},
		{
			name:    "sentinel inside longer line",
			files:   fstest.MapFS{"main.tex": {Data: []byte("x % Main content\n")}},
			wantErr: ErrSentinelMissing,
		},
		{
			name:    "no master",
			files:   fstest.MapFS{"other.tex": {Data: []byte(sentinel)}},
			wantErr: ErrIncompleteTemplate,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if err := Validate(tt.files, "main.tex", sentinel); !errors.Is(err, tt.wantErr) {
				t.Errorf("Validate() error = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

// ---------------------------------------------------------------------------
// TestCopy - Template tree written below destination
// ---------------------------------------------------------------------------

func TestCopy(t *testing.T) {
	t.Parallel()

	fsys := fstest.MapFS{
		"main.tex":         {Data: []byte(sentinel + "\n")},
		"newman.sty":       {Data: []byte(`\ProvidesPackage{newman}`)},
		"src/.gitkeep":     {Data: nil},
		"media/logo/a.png": {Data: []byte("png")},
	}
	dest := filepath.Join(t.TempDir(), "issue")

	written, err := Copy(fsys, dest)
	if err != nil {
		t.Fatalf("Copy() error = %v", err)
	}

	sort.Strings(written)
	want := []string{"main.tex", "media/logo/a.png", "newman.sty", "src/.gitkeep"}
	if strings.Join(written, ",") != strings.Join(want, ",") {
		t.Errorf("Copy() wrote %v, want %v", written, want)
	}

	got, err := os.ReadFile(filepath.Join(dest, "media", "logo", "a.png"))
	if err != nil || string(got) != "png" {
		t.Errorf("nested file = %q, %v", got, err)
	}
}

func TestCopy_EmbeddedTemplate(t *testing.T) {
	t.Parallel()

	fsys, err := NewEmbeddedLoader().Template()
	if err != nil {
		t.Fatalf("Template() error = %v", err)
	}
	dest := t.TempDir()

	if _, err := Copy(fsys, dest); err != nil {
		t.Fatalf("Copy() error = %v", err)
	}
	if err := Validate(os.DirFS(dest), "main.tex", sentinel); err != nil {
		t.Errorf("copied template invalid: %v", err)
	}
}

func TestCopy_RefusesSymlink(t *testing.T) {
	t.Parallel()
	if runtime.GOOS == "windows" {
		t.Skip("symlinks need privileges on Windows")
	}

	src := t.TempDir()
	if err := os.WriteFile(filepath.Join(src, "main.tex"), []byte(sentinel), 0o600); err != nil {
		t.Fatalf("setup: %v", err)
	}
	if err := os.Symlink("/etc/passwd", filepath.Join(src, "leak.tex")); err != nil {
		t.Fatalf("setup: %v", err)
	}

	loader, err := NewFilesystemLoader(src)
	if err != nil {
		t.Fatalf("NewFilesystemLoader() error = %v", err)
	}
	fsys, _ := loader.Template()

	_, err = Copy(fsys, t.TempDir())
	if !errors.Is(err, ErrPathTraversal) {
		t.Errorf("Copy() error = %v, want ErrPathTraversal", err)
	}
}
