package main

// Notes:
// - runMain: we test dispatch and exit codes. Commands that convert files run
//   against a fake markup converter and real temp directories.
// - isCommand: we test command name matching.
// - Signal handling is not exercised here.
// These are acceptable gaps: we test observable behavior, not implementation details.

import (
	"path/filepath"
	"testing"
)

// ---------------------------------------------------------------------------
// TestRunMain - Command dispatch and exit codes
// ---------------------------------------------------------------------------

func TestRunMain(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name       string
		args       []string
		wantCode   int
		wantStdout string
		wantStderr string
	}{
		{"no command", []string{"newman"}, ExitUsage, "", "Usage: newman"},
		{"version", []string{"newman", "version"}, ExitSuccess, "newman dev", ""},
		{"version flag", []string{"newman", "--version"}, ExitSuccess, "newman dev", ""},
		{"help", []string{"newman", "help"}, ExitSuccess, "Commands:", ""},
		{"help command", []string{"newman", "help", "update"}, ExitSuccess, "Usage: newman update", ""},
		{"help unknown command", []string{"newman", "help", "nope"}, ExitUsage, "", "unknown command: nope"},
		{"unknown command", []string{"newman", "convert"}, ExitUsage, "", "unknown command: convert"},
		{"command help flag", []string{"newman", "create", "--help"}, ExitSuccess, "", "Usage: newman create"},
		{"bad flag", []string{"newman", "update", "--bogus"}, ExitUsage, "", "unknown flag"},
		{"create without dir", []string{"newman", "create"}, ExitUsage, "", "exactly one project directory"},
		{"update without files", []string{"newman", "update"}, ExitUsage, "", "at least one .docx"},
		{"inspect without file", []string{"newman", "inspect"}, ExitUsage, "", "exactly one .docx"},
		{"bad timeout", []string{"newman", "update", "--timeout", "soon", "a.docx"}, ExitUsage, "", "invalid --timeout"},
		{"negative workers", []string{"newman", "update", "-w", "-1", "a.docx"}, ExitUsage, "", "must not be negative"},
		{"compile extra argument", []string{"newman", "compile", "main.tex"}, ExitUsage, "", "takes no arguments"},
		{"missing config", []string{"newman", "config", "-c", "./nope.yaml"}, ExitUsage, "", "error:"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			env, stdout, stderr := testEnv(nil)

			code := runMain(tt.args, env)

			if code != tt.wantCode {
				t.Errorf("runMain() = %d, want %d (stderr: %s)", code, tt.wantCode, stderr.String())
			}
			if tt.wantStdout != "" {
				assertContains(t, stdout.String(), tt.wantStdout)
			}
			if tt.wantStderr != "" {
				assertContains(t, stderr.String(), tt.wantStderr)
			}
		})
	}
}

func TestRunMain_UpdateMissingMaster(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	env, _, stderr := testEnv(nil)

	code := runMain([]string{"newman", "update", "-C", dir, filepath.Join(dir, "a.docx")}, env)

	if code != ExitIO {
		t.Errorf("runMain() = %d, want %d (stderr: %s)", code, ExitIO, stderr.String())
	}
}

func TestRunMain_CompileMissingMaster(t *testing.T) {
	t.Parallel()

	env, _, _ := testEnv(nil)

	code := runMain([]string{"newman", "compile", "--once", "-C", t.TempDir()}, env)

	if code != ExitIO {
		t.Errorf("runMain() = %d, want %d", code, ExitIO)
	}
}

// ---------------------------------------------------------------------------
// TestIsCommand - Command name matching
// ---------------------------------------------------------------------------

func TestIsCommand(t *testing.T) {
	t.Parallel()

	for _, name := range []string{"create", "update", "compile", "inspect", "doctor", "config", "version", "help"} {
		if !isCommand(name) {
			t.Errorf("isCommand(%q) = false, want true", name)
		}
	}
	for _, name := range []string{"", "convert", "Update", "--help"} {
		if isCommand(name) {
			t.Errorf("isCommand(%q) = true, want false", name)
		}
	}
}
