package main

import (
	"archive/zip"
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/fumiama/go-docx"
)

// ---------------------------------------------------------------------------
// Test Infrastructure - Fake environment and documents
// ---------------------------------------------------------------------------

// fakeMarkup returns canned LaTeX keyed by document base name.
type fakeMarkup struct {
	outputs map[string]string
}

func (f *fakeMarkup) ToLaTeX(_ context.Context, path string) ([]byte, error) {
	out, ok := f.outputs[filepath.Base(path)]
	if !ok {
		return nil, errors.New("no canned output for " + filepath.Base(path))
	}
	return []byte(out), nil
}

// testEnv returns an environment with captured output, a fixed clock and
// the given variables. Tools in tools resolve on the fake PATH.
func testEnv(vars map[string]string, tools ...string) (*Environment, *bytes.Buffer, *bytes.Buffer) {
	stdout := &bytes.Buffer{}
	stderr := &bytes.Buffer{}
	known := make(map[string]bool, len(tools))
	for _, tool := range tools {
		known[tool] = true
	}

	env := &Environment{
		Now:    func() time.Time { return time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC) },
		Stdout: stdout,
		Stderr: stderr,
		Getenv: func(k string) string { return vars[k] },
		Environ: func() []string {
			kv := make([]string, 0, len(vars))
			for k, v := range vars {
				kv = append(kv, k+"="+v)
			}
			return kv
		},
		LookPath: func(name string) (string, error) {
			if known[name] {
				return "/usr/bin/" + name, nil
			}
			return "", errors.New("not found: " + name)
		},
		ConverterVersion: func(_ context.Context, binary string) (string, error) {
			return binary + " 3.1.11", nil
		},
	}
	return env, stdout, stderr
}

// writeDocx creates a one paragraph .docx and adds the given files under
// word/media/.
func writeDocx(t *testing.T, dir, name string, media ...string) string {
	t.Helper()

	var doc bytes.Buffer
	d := docx.New().WithDefaultTheme()
	d.AddParagraph().AddText("IRSTI 06.81.23")
	if _, err := d.WriteTo(&doc); err != nil {
		t.Fatalf("writing document: %v", err)
	}

	zr, err := zip.NewReader(bytes.NewReader(doc.Bytes()), int64(doc.Len()))
	if err != nil {
		t.Fatalf("reading document: %v", err)
	}
	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)
	for _, f := range zr.File {
		if err := zw.Copy(f); err != nil {
			t.Fatalf("zip copy: %v", err)
		}
	}
	for _, m := range media {
		w, err := zw.Create("word/media/" + m)
		if err != nil {
			t.Fatalf("zip create: %v", err)
		}
		if _, err := w.Write([]byte("image-bytes")); err != nil {
			t.Fatalf("zip write: %v", err)
		}
	}
	if err := zw.Close(); err != nil {
		t.Fatalf("zip close: %v", err)
	}

	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, buf.Bytes(), 0o644); err != nil {
		t.Fatalf("writing docx: %v", err)
	}
	return path
}

func readFile(t *testing.T, path string) string {
	t.Helper()
	data, err := os.ReadFile(path) // #nosec G304 -- test path
	if err != nil {
		t.Fatalf("reading %s: %v", path, err)
	}
	return string(data)
}

func assertContains(t *testing.T, got, want string) {
	t.Helper()
	if !strings.Contains(got, want) {
		t.Errorf("output should contain %q, got:\n%s", want, got)
	}
}
