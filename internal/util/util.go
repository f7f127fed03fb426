// Package util provides small helpers for decoding host-supplied event args.
package util

import "strings"

// TrimQuotes removes leading and trailing double quotes from a string.
func TrimQuotes(s string) string {
	return strings.Trim(s, `"`)
}

// ParseFlag interprets a host-supplied boolean argument. Anything other
// than an affirmative value is false.
func ParseFlag(s string) bool {
	switch strings.ToLower(strings.TrimSpace(TrimQuotes(s))) {
	case "1", "true", "yes":
		return true
	}
	return false
}
