package extraction

import (
	"strings"

	"golang.org/x/text/cases"
)

// MatchesFilter admits a title when filter is empty or occurs in the title,
// ignoring case.
func MatchesFilter(title, filter string) bool {
	if filter == "" {
		return true
	}
	fold := cases.Fold()
	return strings.Contains(fold.String(title), fold.String(filter))
}
