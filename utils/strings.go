package utils

import "strings"

// StringJoin concatenates items with delim between each pair. Kept as a
// small wrapper so callers do not import strings for a single join.
func StringJoin(items []string, delim string) string {
	return strings.Join(items, delim)
}
