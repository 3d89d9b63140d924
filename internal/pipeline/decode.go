package pipeline

import (
	"fmt"
	"regexp"
	"strings"
	"unicode/utf8"

	"golang.org/x/text/unicode/norm"
)

const byteOrderMark = "\uFEFF"

// Line ending normalization
var crlfOrCR = regexp.MustCompile(`\r\n?`)

// Decode turns raw converter output into pipeline text.
// Invalid UTF-8 fails fast with ErrInvalidEncoding; there is no partial recovery.
// A leading byte order mark is dropped, line endings become \n and the text
// is NFC-normalized so classification prefixes compare byte for byte.
func Decode(raw []byte) (string, error) {
	if !utf8.Valid(raw) {
		return "", fmt.Errorf("%w: invalid sequence at byte %d", ErrInvalidEncoding, firstInvalidByte(raw))
	}

	text := strings.TrimPrefix(string(raw), byteOrderMark)
	text = normalizeLineEndings(text)
	return norm.NFC.String(text), nil
}

// normalizeLineEndings converts \r\n and \r to \n.
func normalizeLineEndings(content string) string {
	return crlfOrCR.ReplaceAllString(content, "\n")
}

// firstInvalidByte returns the offset of the first byte that does not start
// a valid UTF-8 sequence, or -1 if raw is valid.
func firstInvalidByte(raw []byte) int {
	for i := 0; i < len(raw); {
		r, size := utf8.DecodeRune(raw[i:])
		if r == utf8.RuneError && size <= 1 {
			return i
		}
		i += size
	}
	return -1
}
