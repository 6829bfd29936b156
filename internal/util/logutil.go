package util

import "strings"

// TruncateForLog caps a string at limit characters for use in log previews.
// Input is trimmed first and an ellipsis marks the cut.
func TruncateForLog(s string, limit int) string {
	if limit <= 0 {
		return ""
	}
	s = strings.TrimSpace(s)
	runes := []rune(s)
	if len(runes) <= limit {
		return s
	}
	return string(runes[:limit]) + "..."
}
