package strings

import (
	"strings"
)

// DefaultDescriptionMaxLen is the column width table output truncates
// free-form text to.
const DefaultDescriptionMaxLen = 60

// minTruncateLen leaves room for one character plus "...".
const minTruncateLen = 4

// TruncateDescription collapses a string onto a single line and truncates it
// to maxLen runes, appending "..." when anything was cut. Newlines and runs
// of whitespace become single spaces so the result fits a table cell.
func TruncateDescription(s string, maxLen int) string {
	if maxLen < minTruncateLen {
		maxLen = minTruncateLen
	}

	s = strings.Join(strings.Fields(s), " ")

	// Rune-based slicing so multi-byte characters are never split.
	runes := []rune(s)
	if len(runes) > maxLen {
		return string(runes[:maxLen-3]) + "..."
	}
	return s
}
