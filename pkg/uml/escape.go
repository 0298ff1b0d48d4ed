package uml

import (
	"strings"
	"unicode"
)

// Escape renders raw text into the record-label text grammar.
//
// Literal carriage-return, line-feed, and tab characters become their
// two-character escape sequences. Every other character that is not a
// word character is backslash-escaped; word characters (letters in the
// Unicode sense, digits, underscore) pass through untouched.
func Escape(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	for _, r := range s {
		switch r {
		case '\r':
			b.WriteString(`\r`)
		case '\n':
			b.WriteString(`\n`)
		case '\t':
			b.WriteString(`\t`)
		default:
			if unicode.IsLetter(r) || unicode.IsDigit(r) || r == '_' {
				b.WriteRune(r)
			} else {
				b.WriteByte('\\')
				b.WriteRune(r)
			}
		}
	}
	return b.String()
}
