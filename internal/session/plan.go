package session

import "github.com/abhisek/vocabdrill/internal/wordlist"

// DefaultBatchSize is the number of words drilled in one round.
const DefaultBatchSize = 20

// Plan is the ordered play list of a round. The order is fixed once built.
type Plan struct {
	Words []wordlist.Word

	// DueCount is how many leading words were due for review; the rest are
	// random filler from the pool.
	DueCount int
}

// Len returns the number of words in the plan.
func (p *Plan) Len() int {
	if p == nil {
		return 0
	}
	return len(p.Words)
}
