package session

import (
	"math/rand/v2"

	"github.com/abhisek/vocabdrill/internal/spacedrep"
	"github.com/abhisek/vocabdrill/internal/wordlist"
)

// Planner builds the play list for a round.
type Planner interface {
	// BuildPlan selects up to count words from pool.
	BuildPlan(sched *spacedrep.Scheduler, pool []wordlist.Word, count int) *Plan
}

// DefaultPlanner puts due words first and fills the rest with a uniform
// shuffle of the remaining pool.
type DefaultPlanner struct {
	Rand *rand.Rand
}

// NewPlanner creates a new DefaultPlanner. A nil rng is replaced by a
// randomly seeded one.
func NewPlanner(rng *rand.Rand) *DefaultPlanner {
	if rng == nil {
		rng = rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
	}
	return &DefaultPlanner{Rand: rng}
}

// SelectReviewBatch returns the ordered words for a round of count words
// (DefaultBatchSize when count <= 0).
func SelectReviewBatch(sched *spacedrep.Scheduler, pool []wordlist.Word, count int, rng *rand.Rand) []wordlist.Word {
	return NewPlanner(rng).BuildPlan(sched, pool, count).Words
}

// BuildPlan selects due words ordered by the scheduler (most overdue, then
// lowest stage), then fills any remaining slots with not-yet-selected pool
// words in random order. Words repeating an earlier key are ignored.
func (p *DefaultPlanner) BuildPlan(sched *spacedrep.Scheduler, pool []wordlist.Word, count int) *Plan {
	if count <= 0 {
		count = DefaultBatchSize
	}

	byKey := make(map[string]wordlist.Word, len(pool))
	var keys []string
	for _, w := range pool {
		if _, dup := byKey[w.Key()]; dup {
			continue
		}
		byKey[w.Key()] = w
		keys = append(keys, w.Key())
	}

	plan := &Plan{}
	selected := make(map[string]bool, count)

	for _, key := range sched.DueWords(keys, sched.Now()) {
		if len(plan.Words) >= count {
			break
		}
		plan.Words = append(plan.Words, byKey[key])
		selected[key] = true
	}
	plan.DueCount = len(plan.Words)

	if len(plan.Words) >= count {
		return plan
	}

	var rest []string
	for _, key := range keys {
		if !selected[key] {
			rest = append(rest, key)
		}
	}
	p.Rand.Shuffle(len(rest), func(i, j int) {
		rest[i], rest[j] = rest[j], rest[i]
	})
	for _, key := range rest {
		if len(plan.Words) >= count {
			break
		}
		plan.Words = append(plan.Words, byKey[key])
	}
	return plan
}
