package pipeline

import (
	"regexp"
	"strings"
	"unicode"
)

// LaTeX commands produced by or targeted at the rewrites.
const (
	boldCommand     = `\textbf{`
	boldGroup       = `{\bfseries `
	envelopeGlyph   = "\U0001F582"
	envelopeCommand = `\envelope `
	tightList       = `\tightlist`
	tableOpen       = `\begin{longtable}[]{@{}`
	tableClose      = `\end{longtable}`
	commentPrefix   = "%% "
)

// Precompiled regex patterns for the fixed rewrites.
var (
	// {\bfseries X} where X is a single non-space, non-digit character
	shortBoldGroup = regexp.MustCompile(`\{\\bfseries ([^\s0-9])\}`)

	// Outline numbers like "1.2.3." right after a line break
	outlineNumber = regexp.MustCompile(`\n((?:\d+\.)+)\s*`)

	// ". " followed by a digit, introduced by the converter inside codes
	dotSpaceDigit = regexp.MustCompile(`\.( )(\d)`)

	// Bullet glyph at line start, leading whitespace preserved
	lineBullet = regexp.MustCompile(`(?m)^(\s*)•`)

	// Script position commands with flat content
	superscript = regexp.MustCompile(`\\textsuperscript\{([^}]*)\}`)
	subscript   = regexp.MustCompile(`\\textsubscript\{([^}]*)\}`)

	// \href{mailto:EMAIL}{\nolinkurl{EMAIL}}
	mailtoLink = regexp.MustCompile(`\\href\{mailto:([^}]+)\}\{\\nolinkurl\{[^}]+\}\}`)

	// Compress multiple blank lines to max 2
	multipleBlankLines = regexp.MustCompile(`\n{3,}`)
)

// replaceBold rewrites \textbf{ into a {\bfseries group. The group is closed
// by whatever brace closed the original command; braces are not balanced here.
func replaceBold(text string) string {
	return strings.ReplaceAll(text, boldCommand, boldGroup)
}

// collapseShortBold unwraps bold groups around one stray character.
// Digits stay bold so emphasized figure numbers survive.
func collapseShortBold(text string) string {
	return shortBoldGroup.ReplaceAllString(text, "$1")
}

// fixNumberSpacing leaves exactly one space after outline numbers, then
// joins ". <digit>" into ".<digit>". The second rule must see the output of
// the first, so both run as separate global passes.
func fixNumberSpacing(text string) string {
	text = outlineNumber.ReplaceAllString(text, "\n$1 ")
	return dotSpaceDigit.ReplaceAllString(text, ".$2")
}

// removeTags deletes every balanced occurrence of each command.
func removeTags(commands []string) func(string) string {
	return func(text string) string {
		for _, cmd := range commands {
			text = RemoveBalanced(text, cmd)
		}
		return text
	}
}

// commentOutTables prefixes every line of a longtable environment, including
// its open and close lines, with a LaTeX comment marker.
func commentOutTables(text string) string {
	lines := strings.Split(text, "\n")
	insideTable := false

	for i, line := range lines {
		switch {
		case strings.HasPrefix(line, tableOpen):
			insideTable = true
			lines[i] = commentPrefix + line
		case insideTable && strings.HasPrefix(line, tableClose):
			insideTable = false
			lines[i] = commentPrefix + line
		case insideTable:
			lines[i] = commentPrefix + line
		}
	}

	return strings.Join(lines, "\n")
}

// replaceQuotes substitutes quote escape commands with straight quotes.
func replaceQuotes(text string) string {
	text = strings.ReplaceAll(text, `\textquotesingle`, "'")
	return strings.ReplaceAll(text, `\textquotedbl`, `"`)
}

// replaceEnvelopes turns the envelope pictograph into \envelope, then drops
// the superscript and bold wrappers the converter puts around it.
func replaceEnvelopes(text string) string {
	text = strings.ReplaceAll(text, envelopeGlyph, envelopeCommand)
	text = strings.ReplaceAll(text, `\textsuperscript{`+envelopeCommand+`}`, envelopeCommand)
	return strings.ReplaceAll(text, boldGroup+envelopeCommand+`}`, envelopeCommand)
}

func removeTightLists(text string) string {
	return strings.ReplaceAll(text, tightList, "")
}

// unindent strips leading whitespace from every line.
func unindent(text string) string {
	lines := strings.Split(text, "\n")
	for i, line := range lines {
		lines[i] = strings.TrimLeftFunc(line, unicode.IsSpace)
	}
	return strings.Join(lines, "\n")
}

// replaceBullets turns a leading bullet glyph into a dash.
func replaceBullets(text string) string {
	return lineBullet.ReplaceAllString(text, "$1-")
}

// replaceScripts renames superscript and subscript commands to \tsp and \tsb.
func replaceScripts(text string) string {
	text = superscript.ReplaceAllString(text, `\tsp{$1}`)
	return subscript.ReplaceAllString(text, `\tsb{$1}`)
}

// simplifyMailto collapses a mailto link displaying its own address to the
// bare address.
func simplifyMailto(text string) string {
	return mailtoLink.ReplaceAllString(text, "$1")
}

// compressBlankLines limits consecutive blank lines to 2 maximum.
func compressBlankLines(content string) string {
	return multipleBlankLines.ReplaceAllString(content, "\n\n")
}
