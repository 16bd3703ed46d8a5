package util

import "strings"

// TruncateForLog shortens s to at most limit runes for log previews. Prompts
// and AI responses can be large; only a prefix is worth logging.
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
