package pipeline

import "testing"

// ---------------------------------------------------------------------------
// TestRemoveBalanced - Depth-aware command removal
// ---------------------------------------------------------------------------

func TestRemoveBalanced(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		command  string
		input    string
		expected string
	}{
		{"simple", "ul", `a\ul{b}c`, "ac"},
		{"nested braces", "hl", `x\hl{a {b} {c {d}}}y`, "xy"},
		{"several occurrences", "ul", `\ul{1} and \ul{2}`, " and "},
		{"adjacent occurrences", "ul", `\ul{1}\ul{2}z`, "z"},
		{"other command untouched", "ul", `\textbf{x}`, `\textbf{x}`},
		{"prefix without brace untouched", "ul", `\ulcorner x`, `\ulcorner x`},
		{"unbalanced consumes to end", "pandocbounded", `keep \pandocbounded{lost {forever`, "keep "},
		{"multibyte content", "hl", `Қ\hl{Әә}Ұ`, "ҚҰ"},
		{"empty text", "ul", "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if got := RemoveBalanced(tt.input, tt.command); got != tt.expected {
				t.Errorf("RemoveBalanced(%q, %q) = %q, want %q", tt.input, tt.command, got, tt.expected)
			}
		})
	}
}

func TestRemoveBalanced_Idempotent(t *testing.T) {
	t.Parallel()

	inputs := []string{
		`plain text with {braces}`,
		`a\ul{b {c}}d\ul{e}`,
		`\hl{unterminated`,
		"",
	}

	for _, in := range inputs {
		once := RemoveBalanced(in, "ul")
		twice := RemoveBalanced(once, "ul")
		if once != twice {
			t.Errorf("RemoveBalanced not idempotent for %q: %q then %q", in, once, twice)
		}
	}
}
