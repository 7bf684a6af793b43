// Package similarity picks distractor candidates for a target word.
//
// Three strategies exist, chosen by quiz stage: uniform sampling from the
// target's own level, uniform sampling across every level of the language,
// and a sound-alike strategy that prefers curated lookalike sets, then
// orthographically similar pool words, then synthetic mutations of the
// target. No strategy ever errors: a short pool yields fewer candidates.
package similarity

import "github.com/abhisek/vocabdrill/internal/wordlist"

// Candidate is a distractor option. It is either a RealWord taken from the
// vocabulary pool or a SyntheticWord produced by curation or mutation.
type Candidate interface {
	// Text returns the displayable translated form.
	Text() string
	// IsSynthetic reports whether the candidate has no vocabulary entry.
	IsSynthetic() bool
}

// RealWord is a distractor drawn from the vocabulary pool.
type RealWord struct {
	Key           string
	Translation   string
	Pronunciation string
}

func (w RealWord) Text() string      { return w.Translation }
func (w RealWord) IsSynthetic() bool { return false }

// SyntheticWord is a distractor with no vocabulary entry behind it.
type SyntheticWord struct {
	Form string
}

func (w SyntheticWord) Text() string      { return w.Form }
func (w SyntheticWord) IsSynthetic() bool { return true }

// FromWord converts a vocabulary entry into a RealWord candidate.
func FromWord(w wordlist.Word) RealWord {
	return RealWord{Key: w.Key(), Translation: w.Translation, Pronunciation: w.Pronunciation}
}

// Texts returns the display texts of the candidates in order.
func Texts(cs []Candidate) []string {
	out := make([]string, len(cs))
	for i, c := range cs {
		out[i] = c.Text()
	}
	return out
}
