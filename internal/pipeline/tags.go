package pipeline

import "strings"

// RemoveBalanced deletes every occurrence of \command{...} from text,
// including its argument up to the matching closing brace. Nested braces
// inside the argument are tracked by depth, so they do not end the match.
//
// An opening token without a matching close consumes the rest of the text.
// This is silent degradation rather than an error: the converter is known to
// emit unbalanced groups and the remaining stages must still run.
func RemoveBalanced(text, command string) string {
	open := `\` + command + "{"

	var b strings.Builder
	b.Grow(len(text))

	for {
		start := strings.Index(text, open)
		if start < 0 {
			b.WriteString(text)
			break
		}
		b.WriteString(text[:start])
		text = text[closingBrace(text, start+len(open)):]
	}

	return b.String()
}

// closingBrace returns the offset just past the brace that closes a group
// whose opening brace sits right before from, or len(text) if none does.
// Braces are ASCII, so scanning bytes never splits a multi-byte rune.
func closingBrace(text string, from int) int {
	depth := 1
	for i := from; i < len(text); i++ {
		switch text[i] {
		case '{':
			depth++
		case '}':
			depth--
			if depth == 0 {
				return i + 1
			}
		}
	}
	return len(text)
}
