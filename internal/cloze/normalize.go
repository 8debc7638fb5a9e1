package cloze

import "strings"

// NormalizeAnswer trims whitespace and lowercases the value unless matching is case sensitive.
func NormalizeAnswer(value string, caseSensitive bool) string {
	value = strings.TrimSpace(value)
	if caseSensitive {
		return value
	}
	return strings.ToLower(value)
}
