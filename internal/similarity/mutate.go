package similarity

import (
	"math/rand/v2"
	"strings"
	"unicode"
)

const (
	vowels     = "aeiou"
	consonants = "bcdfghjklmnpqrstvwxyz"
)

// MaxMutationAttempts bounds the retries spent on a single variant.
const MaxMutationAttempts = 10

// Mutate generates up to n distinct variants of word by replacing one ASCII
// letter with another of the same class (vowel for vowel, consonant for
// consonant). A variant that needs more than MaxMutationAttempts tries ends
// generation early, so the result may be shorter than n.
func Mutate(word string, n int, rng *rand.Rand) []string {
	return mutate(word, n, rng, nil)
}

// mutate is Mutate with an extra set of normalized texts to reject.
func mutate(word string, n int, rng *rand.Rand, reject map[string]bool) []string {
	runes := []rune(word)
	var positions []int
	for i, r := range runes {
		if letterClass(r) != "" {
			positions = append(positions, i)
		}
	}
	if n <= 0 || len(positions) == 0 {
		return nil
	}

	seen := map[string]bool{normalize(word): true}
	var out []string
	for len(out) < n {
		variant, ok := mutateOnce(runes, positions, rng, func(s string) bool {
			norm := normalize(s)
			return seen[norm] || reject[norm]
		})
		if !ok {
			break
		}
		seen[normalize(variant)] = true
		out = append(out, variant)
	}
	return out
}

func mutateOnce(runes []rune, positions []int, rng *rand.Rand, taken func(string) bool) (string, bool) {
	buf := make([]rune, len(runes))
	for attempt := 0; attempt < MaxMutationAttempts; attempt++ {
		copy(buf, runes)
		pos := positions[rng.IntN(len(positions))]
		class := letterClass(buf[pos])
		repl := rune(class[rng.IntN(len(class))])
		if unicode.IsUpper(buf[pos]) {
			repl = unicode.ToUpper(repl)
		}
		buf[pos] = repl

		candidate := string(buf)
		if !taken(candidate) {
			return candidate, true
		}
	}
	return "", false
}

// letterClass returns the replacement alphabet for r, or "" when r is not
// an ASCII letter.
func letterClass(r rune) string {
	lower := unicode.ToLower(r)
	switch {
	case strings.ContainsRune(vowels, lower):
		return vowels
	case strings.ContainsRune(consonants, lower):
		return consonants
	default:
		return ""
	}
}
