package normalize

import (
	"regexp"
	"strings"

	"golang.org/x/text/encoding/unicode"
)

// ansiSequence matches CSI colour and cursor-control codes.
var ansiSequence = regexp.MustCompile(`\x1B\[[0-9;]*[a-zA-Z]`)

// Decode converts captured bytes to text. Invalid UTF-8 is replaced with
// U+FFFD and never causes an error.
func Decode(b []byte) string {
	out, err := unicode.UTF8.NewDecoder().Bytes(b)
	if err != nil {
		return strings.ToValidUTF8(string(b), "\uFFFD")
	}
	return string(out)
}

// Sanitize removes ANSI escape sequences and zero-width formatting
// characters (U+200B..U+200D, U+FEFF). Sanitize(Sanitize(s)) == Sanitize(s).
func Sanitize(s string) string {
	// Zero-width characters go first: one sitting inside an escape sequence
	// would otherwise hide it from the pattern until a second pass.
	s = strings.Map(func(r rune) rune {
		if isZeroWidth(r) {
			return -1
		}
		return r
	}, s)

	// Removing one sequence can splice together another ("\x1B[\x1B[0m31m").
	for {
		out := ansiSequence.ReplaceAllString(s, "")
		if out == s {
			return out
		}
		s = out
	}
}

func isZeroWidth(r rune) bool {
	return (r >= '\u200B' && r <= '\u200D') || r == '\uFEFF'
}
