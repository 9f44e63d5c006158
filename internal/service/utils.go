package service

import (
	"strings"
	"unicode"
)

// cleanText trims user-supplied text, drops invalid UTF-8 sequences (which
// Postgres rejects) and removes control characters other than newlines
// and tabs.
func cleanText(s string) string {
	s = strings.ToValidUTF8(s, "")
	s = strings.Map(func(r rune) rune {
		if r == '\n' || r == '\t' {
			return r
		}
		if unicode.IsControl(r) {
			return -1
		}
		return r
	}, s)
	return strings.TrimSpace(s)
}
