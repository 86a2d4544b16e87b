package utils

import (
	"regexp"
	"strings"
	"unicode"

	"golang.org/x/text/unicode/norm"
)

var unsafeFilenameChars = regexp.MustCompile(`[^A-Za-z0-9_.-]`)

// SecureFilename turns an uploaded filename into a flat, ASCII-only name that
// is safe to use as an object key. Path separators become word breaks, runs of
// whitespace collapse into a single underscore and any leading or trailing
// dots and underscores are trimmed. The result may be empty.
func SecureFilename(filename string) string {
	decomposed := norm.NFKD.String(filename)

	var b strings.Builder
	for _, r := range decomposed {
		if r > unicode.MaxASCII {
			continue
		}
		if r == '/' || r == '\\' {
			r = ' '
		}
		b.WriteRune(r)
	}

	joined := strings.Join(strings.Fields(b.String()), "_")

	return strings.Trim(unsafeFilenameChars.ReplaceAllString(joined, ""), "._")
}
