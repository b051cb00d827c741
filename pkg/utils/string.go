package utils

import "strings"

// Truncate shortens s to at most maxLen runes, appending an ellipsis when
// anything was cut. Operates on runes so multi-byte content is never split.
func Truncate(s string, maxLen int) string {
	runes := []rune(s)
	if len(runes) <= maxLen {
		return s
	}
	return string(runes[:maxLen]) + "..."
}

// CollapseWhitespace flattens runs of whitespace (including newlines) into
// single spaces so multi-line content fits on one display row.
func CollapseWhitespace(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
