package main

// Notes:
// - create/update/inspect/config run end to end through runMain with a fake
//   markup converter, so pandoc is never invoked.
// - compile is covered by internal/watch; here we only test argument and
//   project checks.
// - doctor uses a fake PATH; the temp directory check touches the real
//   os.TempDir.
// These are acceptable gaps: we test observable behavior, not implementation details.

import (
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/alnah/go-newman"
)

const issueLaTeX = "Cover page\n\nIRSTI 06.81.23\nFirst article\n\n" +
	"IRSTI 11.25.67\nSecond article\n\\includegraphics{media/image1.png}\n"

// newCLIProject creates a project in a temp dir through the create command.
func newCLIProject(t *testing.T) string {
	t.Helper()
	root := filepath.Join(t.TempDir(), "journal")
	env, _, stderr := testEnv(nil)
	if code := runMain([]string{"newman", "create", root}, env); code != ExitSuccess {
		t.Fatalf("create exit = %d, stderr: %s", code, stderr.String())
	}
	return root
}

// ---------------------------------------------------------------------------
// TestRunCreate - Project scaffolding
// ---------------------------------------------------------------------------

func TestRunCreate(t *testing.T) {
	t.Parallel()

	root := filepath.Join(t.TempDir(), "journal")
	env, stdout, _ := testEnv(nil)

	code := runMain([]string{"newman", "create", root}, env)

	if code != ExitSuccess {
		t.Fatalf("exit = %d, want %d", code, ExitSuccess)
	}
	assertContains(t, stdout.String(), "created project in "+root)
	assertContains(t, readFile(t, filepath.Join(root, "main.tex")), "% Main content")
	for _, dir := range []string{"src", "media"} {
		if info, err := os.Stat(filepath.Join(root, dir)); err != nil || !info.IsDir() {
			t.Errorf("%s should be a directory", dir)
		}
	}
}

func TestRunCreate_Errors(t *testing.T) {
	t.Parallel()

	t.Run("non-empty directory", func(t *testing.T) {
		t.Parallel()
		root := t.TempDir()
		if err := os.WriteFile(filepath.Join(root, "x"), nil, 0o644); err != nil {
			t.Fatal(err)
		}
		env, _, stderr := testEnv(nil)

		code := runMain([]string{"newman", "create", root}, env)

		if code != ExitIO {
			t.Errorf("exit = %d, want %d", code, ExitIO)
		}
		assertContains(t, stderr.String(), "error:")
	})

	t.Run("template without master", func(t *testing.T) {
		t.Parallel()
		tmpl := t.TempDir()
		env, _, _ := testEnv(nil)

		code := runMain([]string{"newman", "create", "-t", tmpl, filepath.Join(t.TempDir(), "p")}, env)

		if code != ExitUsage {
			t.Errorf("exit = %d, want %d", code, ExitUsage)
		}
	})

	t.Run("quiet prints nothing", func(t *testing.T) {
		t.Parallel()
		env, stdout, _ := testEnv(nil)

		code := runMain([]string{"newman", "create", "-q", filepath.Join(t.TempDir(), "p")}, env)

		if code != ExitSuccess {
			t.Fatalf("exit = %d, want %d", code, ExitSuccess)
		}
		if stdout.Len() != 0 {
			t.Errorf("stdout = %q, want empty", stdout.String())
		}
	})
}

// ---------------------------------------------------------------------------
// TestRunUpdate - Fragments, media and master insertion
// ---------------------------------------------------------------------------

func TestRunUpdate(t *testing.T) {
	t.Parallel()

	root := newCLIProject(t)
	docx := writeDocx(t, t.TempDir(), "issue1.docx", "image1.png")

	env, stdout, stderr := testEnv(nil)
	env.Markup = &fakeMarkup{outputs: map[string]string{"issue1.docx": issueLaTeX}}

	code := runMain([]string{"newman", "update", "-C", root, docx}, env)

	if code != ExitSuccess {
		t.Fatalf("exit = %d, want %d (stderr: %s)", code, ExitSuccess, stderr.String())
	}
	assertContains(t, stdout.String(), "issue1: 2 articles, 1 images")

	first := readFile(t, filepath.Join(root, "src", "issue1", "001.tex"))
	if !strings.HasPrefix(first, `\id{IRSTI 06.81.23}{}`) {
		t.Errorf("001.tex = %q, want marker first", first)
	}
	if strings.Contains(first, "Cover page") {
		t.Error("preamble should be dropped by default")
	}
	if _, err := os.Stat(filepath.Join(root, "media", "issue1", "image1.png")); err != nil {
		t.Errorf("image not extracted: %v", err)
	}

	master := readFile(t, filepath.Join(root, "main.tex"))
	assertContains(t, master, "% Main content\n\\input{src/issue1/001.tex}\n\\input{src/issue1/002.tex}\n")
}

func TestRunUpdate_KeepPreamble(t *testing.T) {
	t.Parallel()

	root := newCLIProject(t)
	docx := writeDocx(t, t.TempDir(), "issue1.docx")

	env, stdout, _ := testEnv(nil)
	env.Markup = &fakeMarkup{outputs: map[string]string{"issue1.docx": issueLaTeX}}

	code := runMain([]string{"newman", "update", "--keep-preamble", "-C", root, docx}, env)

	if code != ExitSuccess {
		t.Fatalf("exit = %d, want %d", code, ExitSuccess)
	}
	assertContains(t, stdout.String(), "issue1: 3 articles")
	assertContains(t, readFile(t, filepath.Join(root, "src", "issue1", "001.tex")), "Cover page")
}

func TestRunUpdate_Batch(t *testing.T) {
	t.Parallel()

	root := newCLIProject(t)
	dir := t.TempDir()
	good := writeDocx(t, dir, "partA.docx")
	bad := writeDocx(t, dir, "partB.docx")

	env, stdout, stderr := testEnv(map[string]string{"NEWMAN_WORKERS": "2"})
	env.Markup = &fakeMarkup{outputs: map[string]string{"partA.docx": issueLaTeX}}

	code := runMain([]string{"newman", "update", "-C", root, good, bad}, env)

	if code != ExitTool {
		t.Errorf("exit = %d, want %d (stderr: %s)", code, ExitTool, stderr.String())
	}
	assertContains(t, stdout.String(), "✓ partA: 2 articles")
	assertContains(t, stdout.String(), "✗ partB:")
	assertContains(t, stderr.String(), "1 of 2 parts failed")

	master := readFile(t, filepath.Join(root, "main.tex"))
	assertContains(t, master, `\input{src/partA/001.tex}`)
	if strings.Contains(master, "partB") {
		t.Error("failed part should not be inserted")
	}
}

func TestRunUpdate_NoMarkers(t *testing.T) {
	t.Parallel()

	root := newCLIProject(t)
	docx := writeDocx(t, t.TempDir(), "notes.docx")

	env, stdout, _ := testEnv(nil)
	env.Markup = &fakeMarkup{outputs: map[string]string{"notes.docx": "Just one text\n"}}

	code := runMain([]string{"newman", "update", "-C", root, docx}, env)

	if code != ExitSuccess {
		t.Fatalf("exit = %d, want %d", code, ExitSuccess)
	}
	assertContains(t, stdout.String(), "notes: 1 articles")
}

// ---------------------------------------------------------------------------
// TestRunInspect - Dry run output
// ---------------------------------------------------------------------------

func TestRunInspect(t *testing.T) {
	t.Parallel()

	docx := writeDocx(t, t.TempDir(), "issue1.docx", "image1.png")

	t.Run("json", func(t *testing.T) {
		t.Parallel()
		env, stdout, stderr := testEnv(nil)
		env.Markup = &fakeMarkup{outputs: map[string]string{"issue1.docx": issueLaTeX}}

		code := runMain([]string{"newman", "inspect", "--json", docx}, env)

		if code != ExitSuccess {
			t.Fatalf("exit = %d, want %d (stderr: %s)", code, ExitSuccess, stderr.String())
		}
		var got inspectResult
		if err := json.Unmarshal(stdout.Bytes(), &got); err != nil {
			t.Fatalf("invalid JSON: %v\n%s", err, stdout.String())
		}
		if got.Part != "issue1" {
			t.Errorf("Part = %q, want issue1", got.Part)
		}
		if len(got.Articles) != 2 {
			t.Fatalf("Articles = %d, want 2", len(got.Articles))
		}
		if got.Articles[0].File != "001.tex" || got.Articles[0].First != `\id{IRSTI 06.81.23}{}` {
			t.Errorf("Articles[0] = %+v", got.Articles[0])
		}
		if len(got.Media) != 1 || got.Media[0] != "image1.png" {
			t.Errorf("Media = %v, want [image1.png]", got.Media)
		}
		if len(got.Markers) != 1 {
			t.Errorf("Markers = %v, want one document marker", got.Markers)
		}
	})

	t.Run("text", func(t *testing.T) {
		t.Parallel()
		env, stdout, _ := testEnv(nil)
		env.Markup = &fakeMarkup{outputs: map[string]string{"issue1.docx": issueLaTeX}}

		code := runMain([]string{"newman", "inspect", docx}, env)

		if code != ExitSuccess {
			t.Fatalf("exit = %d, want %d", code, ExitSuccess)
		}
		assertContains(t, stdout.String(), "Part issue1")
		assertContains(t, stdout.String(), "Articles (2)")
		assertContains(t, stdout.String(), "002.tex")
	})

	t.Run("not a docx", func(t *testing.T) {
		t.Parallel()
		env, _, _ := testEnv(nil)
		env.Markup = &fakeMarkup{}

		code := runMain([]string{"newman", "inspect", "notes.txt"}, env)

		if code == ExitSuccess {
			t.Error("inspect of a non-docx should fail")
		}
	})
}

// ---------------------------------------------------------------------------
// TestRunConfig - Effective configuration output
// ---------------------------------------------------------------------------

func TestRunConfig(t *testing.T) {
	t.Parallel()

	env, stdout, _ := testEnv(map[string]string{"NEWMAN_TYPESETTER": "latexmk"})

	code := runMain([]string{"newman", "config"}, env)

	if code != ExitSuccess {
		t.Fatalf("exit = %d, want %d", code, ExitSuccess)
	}
	assertContains(t, stdout.String(), "command: latexmk")
	assertContains(t, stdout.String(), "Main content")
}

func TestRunConfig_FromFile(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "journal.yaml")
	data := "split:\n  keepPreamble: true\nconverter:\n  binary: pandoc3\n"
	if err := os.WriteFile(path, []byte(data), 0o644); err != nil {
		t.Fatal(err)
	}
	env, stdout, stderr := testEnv(map[string]string{"NEWMAN_CONFIG": path})

	code := runMain([]string{"newman", "config"}, env)

	if code != ExitSuccess {
		t.Fatalf("exit = %d, want %d (stderr: %s)", code, ExitSuccess, stderr.String())
	}
	assertContains(t, stdout.String(), "binary: pandoc3")
	assertContains(t, stdout.String(), "keepPreamble: true")
}

// ---------------------------------------------------------------------------
// TestFirstFailure - Batch error aggregation
// ---------------------------------------------------------------------------

func TestFirstFailure(t *testing.T) {
	t.Parallel()

	if err := firstFailure([]newman.PartReport{{Part: "a"}}); err != nil {
		t.Errorf("firstFailure() = %v, want nil", err)
	}

	err := firstFailure([]newman.PartReport{
		{Part: "a"},
		{Part: "b", Err: newman.ErrMarkupConversion},
		{Part: "c", Err: newman.ErrWriteFragment},
	})
	if !errors.Is(err, newman.ErrMarkupConversion) {
		t.Errorf("firstFailure() = %v, want wrapped ErrMarkupConversion", err)
	}
	if errors.Is(err, newman.ErrWriteFragment) {
		t.Error("only the first failure should be wrapped")
	}
	assertContains(t, err.Error(), "2 of 3 parts failed")
}

// ---------------------------------------------------------------------------
// TestFirstLine - Article preview
// ---------------------------------------------------------------------------

func TestFirstLine(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"single line", "abc", "abc"},
		{"first of many", "one\ntwo", "one"},
		{"empty", "", ""},
		{"long cyrillic shortened", strings.Repeat("Ж", 80), strings.Repeat("Ж", 71) + "…"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if got := firstLine(tt.input); got != tt.want {
				t.Errorf("firstLine() = %q, want %q", got, tt.want)
			}
		})
	}
}
