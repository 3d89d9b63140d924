package main

import (
	"bytes"
	"io"
	"strings"
	"testing"
)

// ---------------------------------------------------------------------------
// TestUsage - Every command documents its flags
// ---------------------------------------------------------------------------

func TestUsage(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		print func(io.Writer)
		want  []string
	}{
		{"main", printUsage, []string{"create", "update", "compile", "inspect", "doctor", "config"}},
		{"create", printCreateUsage, []string{"newman create <dir>", "--template", "--config"}},
		{"update", printUpdateUsage, []string{"--project", "--workers", "--timeout", "--keep-preamble"}},
		{"compile", printCompileUsage, []string{"--once", "--debounce"}},
		{"inspect", printInspectUsage, []string{"--json", "--timeout"}},
		{"doctor", printDoctorUsage, []string{"--json"}},
		{"config", printConfigUsage, []string{"--config", "--quiet"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			var buf bytes.Buffer
			tt.print(&buf)
			for _, w := range tt.want {
				if !strings.Contains(buf.String(), w) {
					t.Errorf("usage should mention %q", w)
				}
			}
		})
	}
}

func TestRunHelp(t *testing.T) {
	t.Parallel()

	for _, name := range []string{"create", "update", "compile", "inspect", "doctor", "config", "version", "help"} {
		env, stdout, _ := testEnv(nil)
		if code := runHelp([]string{name}, env); code != ExitSuccess {
			t.Errorf("runHelp(%q) = %d, want %d", name, code, ExitSuccess)
		}
		if !strings.Contains(stdout.String(), "Usage: newman "+name) {
			t.Errorf("runHelp(%q) output = %q", name, stdout.String())
		}
	}
}
