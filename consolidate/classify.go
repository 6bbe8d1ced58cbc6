package consolidate

import (
	"regexp"
	"strings"
)

// listItemPatterns matches the common ways a handwritten or typed line
// announces itself as a list item.
var listItemPatterns = []*regexp.Regexp{
	regexp.MustCompile(`^[\x{2022}\-\*\x{2192}\x{25BA}\x{25E6}\x{2023}]\s`), // Bullet points
	regexp.MustCompile(`^\d+[\.\)]\s`),                                      // Numbered: 1. or 1)
	regexp.MustCompile(`^[a-zA-Z][\.\)]\s`),                                 // Lettered: a. or a)
	regexp.MustCompile(`^[ivxIVX]+[\.\)]\s`),                                // Roman numerals
}

// isListItem reports whether a line of text starts with a list marker
func isListItem(text string) bool {
	trimmed := strings.TrimLeft(text, " \t")
	for _, p := range listItemPatterns {
		if p.MatchString(trimmed) {
			return true
		}
	}
	return false
}
