package refine

import (
	"strings"

	"golang.org/x/text/unicode/norm"
)

// Relation labels assigned by layout inference.
const (
	RelationLeadsTo   = "leads_to"
	RelationDependsOn = "depends_on"
	RelationRelatesTo = "relates_to"
)

// Canonicalize normalizes a label for deduplication matching: Unicode
// NFKC, lowercase, trimmed, internal whitespace runs collapsed, trailing
// punctuation stripped. Corrections maps known OCR misreads to their
// intended words (matched per whole word, after lowercasing); pass nil
// for none. The result is never used for display.
func Canonicalize(label string, corrections map[string]string) string {
	s := norm.NFKC.String(label)
	s = strings.ToLower(s)
	s = strings.TrimSpace(s)
	s = strings.TrimRight(s, ".,:;!?")

	words := strings.Fields(s)
	for i, w := range words {
		if fixed, ok := corrections[w]; ok {
			words[i] = fixed
		}
	}
	return strings.Join(words, " ")
}
