package stringutils

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

// SanitizeUnicodeString removes NUL, C0/C1 control characters and invalid runes, keeping tab, CR and LF.
func SanitizeUnicodeString(s string) string {
	if utf8.ValidString(s) && !hasControlChars(s) {
		return s
	}

	var builder strings.Builder
	builder.Grow(len(s))

	for _, r := range s {
		if r == utf8.RuneError || isControl(r) {
			continue
		}
		if unicode.IsPrint(r) || unicode.IsSpace(r) {
			builder.WriteRune(r)
		}
	}

	return builder.String()
}

// NormalizeMessage sanitizes a chat message and trims surrounding whitespace.
func NormalizeMessage(s string) string {
	return strings.TrimSpace(SanitizeUnicodeString(s))
}

// Truncate shortens s to at most n bytes on a rune boundary, appending "..." when cut.
func Truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	cut := n
	for cut > 0 && !utf8.RuneStart(s[cut]) {
		cut--
	}
	return s[:cut] + "..."
}

func isControl(r rune) bool {
	if r < 32 && r != '\t' && r != '\n' && r != '\r' {
		return true
	}
	return r == 127 || (r >= 128 && r <= 159)
}

func hasControlChars(s string) bool {
	for _, r := range s {
		if isControl(r) {
			return true
		}
	}
	return false
}
