package similarity

import (
	"math/rand/v2"
	"strings"

	"github.com/abhisek/vocabdrill/internal/wordlist"
)

// picker accumulates candidates while enforcing the exclusion rules: never
// the target itself, never the target's translation, never a repeated text.
type picker struct {
	targetKey string
	seen      map[string]bool
	out       []Candidate
	count     int
}

func newPicker(target wordlist.Word, count int) *picker {
	p := &picker{
		targetKey: target.Key(),
		seen:      map[string]bool{normalize(target.Translation): true},
		count:     count,
	}
	return p
}

func (p *picker) full() bool {
	return len(p.out) >= p.count
}

func (p *picker) addWord(w wordlist.Word) bool {
	if w.Key() == p.targetKey {
		return false
	}
	return p.add(FromWord(w))
}

func (p *picker) add(c Candidate) bool {
	if p.full() {
		return false
	}
	norm := normalize(c.Text())
	if norm == "" || p.seen[norm] {
		return false
	}
	p.seen[norm] = true
	p.out = append(p.out, c)
	return true
}

func normalize(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

// SameLevel samples up to count distractors uniformly without replacement
// from the target's own level.
func SameLevel(target wordlist.Word, levelPool []wordlist.Word, count int, rng *rand.Rand) []Candidate {
	return sample(target, levelPool, count, rng)
}

// CrossLevel samples up to count distractors uniformly without replacement
// from every level of the active language.
func CrossLevel(target wordlist.Word, languagePool []wordlist.Word, count int, rng *rand.Rand) []Candidate {
	return sample(target, languagePool, count, rng)
}

func sample(target wordlist.Word, pool []wordlist.Word, count int, rng *rand.Rand) []Candidate {
	if count <= 0 || len(pool) == 0 {
		return nil
	}
	shuffled := make([]wordlist.Word, len(pool))
	copy(shuffled, pool)
	rng.Shuffle(len(shuffled), func(i, j int) {
		shuffled[i], shuffled[j] = shuffled[j], shuffled[i]
	})

	p := newPicker(target, count)
	for _, w := range shuffled {
		if p.full() {
			break
		}
		p.addWord(w)
	}
	return p.out
}
