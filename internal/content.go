package internal

import (
	"strings"
	"unicode/utf8"
)

// nonTextPlaceholder substitutes for tool result content that has no
// textual representation.
const nonTextPlaceholder = "[non-text result]"

// ToolResultText extracts a textual representation from a tool result's
// content blocks:
//  1. Join the text of every block that carries one.
//  2. If blocks exist but none are text-shaped, return a placeholder
//     instead of failing.
//  3. Empty content yields the empty string.
func ToolResultText(result ToolResultData) string {
	var parts []string
	for _, block := range result.Content {
		if block.Text != "" {
			parts = append(parts, block.Text)
		}
	}
	if len(parts) == 0 {
		if len(result.Content) > 0 {
			return nonTextPlaceholder
		}
		return ""
	}
	return strings.Join(parts, "\n")
}

// truncateText shortens s to at most limit runes, appending an ellipsis
// when anything was cut.
func truncateText(s string, limit int) string {
	if limit <= 0 || utf8.RuneCountInString(s) <= limit {
		return s
	}
	runes := []rune(s)
	return string(runes[:limit]) + "..."
}
