package utils

import "unicode/utf8"

// Truncate shortens s to at most maxLen runes, appending "..." when text was
// cut. Used for question and answer previews in history listings.
func Truncate(s string, maxLen int) string {
	if utf8.RuneCountInString(s) <= maxLen {
		return s
	}
	return string([]rune(s)[:maxLen]) + "..."
}
