package lookalike

import (
	"strings"
	"unicode"
)

// MaxForms caps a lookalike set.
const MaxForms = 8

// Normalize cleans a proposed set for word: forms are trimmed and
// lowercased; empty forms, forms equal to word, forms containing anything
// but letters, spaces, hyphens or apostrophes, and repeats are dropped. At
// most MaxForms are kept, in input order.
func Normalize(word string, forms []string) []string {
	word = strings.ToLower(strings.TrimSpace(word))
	seen := make(map[string]bool, len(forms))
	var out []string
	for _, f := range forms {
		f = strings.ToLower(strings.TrimSpace(f))
		if f == "" || f == word || seen[f] || !wordLike(f) {
			continue
		}
		seen[f] = true
		out = append(out, f)
		if len(out) == MaxForms {
			break
		}
	}
	return out
}

func wordLike(s string) bool {
	for _, r := range s {
		if !unicode.IsLetter(r) && r != ' ' && r != '-' && r != '\'' {
			return false
		}
	}
	return true
}
