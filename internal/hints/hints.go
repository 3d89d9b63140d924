// Package hints provides actionable error hints for common failure scenarios.
// Hints are formatted consistently as "\n  hint: <text>" for appending to error messages.
package hints

import (
	"strings"

	"github.com/alnah/go-newman/internal/fileutil"
)

// IsInContainer detects if running inside a Docker container or similar.
// Checks for /.dockerenv file which Docker creates automatically.
var IsInContainer = func() bool {
	return fileutil.FileExists("/.dockerenv")
}

// ForConverterNotFound returns hints for a missing markup converter.
func ForConverterNotFound(binary string) string {
	hints := []string{"install pandoc (https://pandoc.org/installing.html)"}
	if IsInContainer() {
		hints = append(hints, "add pandoc to the container image")
	}
	hints = append(hints, "or set converter.binary to the full path of "+binary)
	return formatHints(hints)
}

// ForTypesetterNotFound returns hints for a missing typesetter command.
func ForTypesetterNotFound(command string) string {
	if command == "tectonic" {
		return format("install tectonic (https://tectonic-typesetting.github.io) or set typesetter.command")
	}
	return format("check that " + command + " is on PATH or set typesetter.command")
}

// ForTimeout returns a hint about increasing timeout for slow operations.
func ForTimeout() string {
	return format("for large documents, use --timeout flag")
}

// ForConfigNotFound returns hints for config file not found errors.
// Suggests --config flag and creating a config in the user config directory.
func ForConfigNotFound(searchedPaths []string) string {
	hint := "use --config /path/to/file.yaml"

	// Find a user config path to suggest
	for _, p := range searchedPaths {
		if strings.Contains(p, "newman") {
			hint += " or create " + p
			break
		}
	}

	return format(hint)
}

// ForSentinelMissing explains why no \input lines were added to the master.
func ForSentinelMissing(master, sentinel string) string {
	return format("add a line containing only " + quote(sentinel) + " to " + master + ", then run update again")
}

// ForProjectExists returns a hint for create on a non-empty directory.
func ForProjectExists() string {
	return format("choose a new directory, or use update to add parts to an existing project")
}

// ForNoMarkers explains a part that produced a single article.
func ForNoMarkers(prefixes []string) string {
	if len(prefixes) == 0 {
		return ""
	}
	return format("no classification marker found; expected a line starting with " + strings.Join(prefixes, ", "))
}

func quote(s string) string {
	return `"` + s + `"`
}

// format creates a single hint string with consistent formatting.
func format(hint string) string {
	if hint == "" {
		return ""
	}
	return "\n  hint: " + hint
}

// formatHints joins multiple hints with consistent formatting.
func formatHints(hints []string) string {
	if len(hints) == 0 {
		return ""
	}
	return format(strings.Join(hints, "; "))
}
