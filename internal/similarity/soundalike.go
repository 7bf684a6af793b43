package similarity

import (
	"math/rand/v2"
	"sort"

	"github.com/abhisek/vocabdrill/internal/wordlist"
)

// SoundAlike picks up to count distractors that look or sound like the
// target's translation. Sources are used in order until count is reached:
//
//  1. the curated set for the translation, shuffled;
//  2. pool words ranked by Score (zero scores dropped, pool order breaks ties);
//  3. mutations of the translation.
//
// curated may be nil.
func SoundAlike(target wordlist.Word, pool []wordlist.Word, curated Curated, count int, rng *rand.Rand) []Candidate {
	if count <= 0 {
		return nil
	}
	p := newPicker(target, count)

	if curated != nil {
		group := append([]string(nil), curated.Lookalikes(target.Translation)...)
		rng.Shuffle(len(group), func(i, j int) {
			group[i], group[j] = group[j], group[i]
		})
		for _, w := range group {
			if p.full() {
				break
			}
			p.add(SyntheticWord{Form: w})
		}
	}

	if !p.full() {
		for _, w := range rankByScore(target, pool) {
			if p.full() {
				break
			}
			p.addWord(w)
		}
	}

	if !p.full() {
		for _, v := range mutate(target.Translation, count-len(p.out), rng, p.seen) {
			p.add(SyntheticWord{Form: v})
		}
	}
	return p.out
}

type scoredWord struct {
	word  wordlist.Word
	score int
}

// rankByScore returns pool words with a positive Score against the target's
// translation, best first. The sort is stable so pool order breaks ties.
func rankByScore(target wordlist.Word, pool []wordlist.Word) []wordlist.Word {
	var scored []scoredWord
	for _, w := range pool {
		if w.Key() == target.Key() {
			continue
		}
		if s := Score(target.Translation, w.Translation); s > 0 {
			scored = append(scored, scoredWord{word: w, score: s})
		}
	}
	sort.SliceStable(scored, func(i, j int) bool {
		return scored[i].score > scored[j].score
	})

	out := make([]wordlist.Word, len(scored))
	for i, s := range scored {
		out[i] = s.word
	}
	return out
}
