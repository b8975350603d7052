package extraction

import "strings"

// Normalize collapses every run of whitespace (newlines and tabs included)
// to a single space and trims the ends.
func Normalize(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
