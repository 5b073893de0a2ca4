package formatter

import "strings"

// SplitIngredients splits comma separated ingredient text into trimmed list items.
// Empty fragments are kept as empty items.
func SplitIngredients(text string) []string {
	parts := strings.Split(text, ",")
	for i, p := range parts {
		parts[i] = strings.TrimSpace(p)
	}
	return parts
}
