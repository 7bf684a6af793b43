package session

import (
	"math"

	"github.com/abhisek/vocabdrill/internal/spacedrep"
	"github.com/abhisek/vocabdrill/internal/wordlist"
)

// Stats summarizes learner progress over a whole word pool.
type Stats struct {
	Total           int
	New             int
	InProgress      int
	Mastered        int
	AvgStage        float64
	JourneyProgress int // percent, rounded

	// StageDistribution counts words per stage; index 0 is unused.
	StageDistribution [spacedrep.MaxStage + 1]int
}

// PoolStats computes progress statistics over pool. It reads the scheduler
// without creating records for unseen words.
func PoolStats(sched *spacedrep.Scheduler, pool []wordlist.Word) Stats {
	var st Stats
	if len(pool) == 0 {
		return st
	}

	var stageSum int
	var journey float64
	for _, w := range pool {
		wp := sched.Lookup(w.Key())
		switch {
		case wp.TotalAttempts == 0:
			st.New++
		case wp.Mastered:
			st.Mastered++
		default:
			st.InProgress++
		}
		stageSum += wp.Stage
		journey += float64(wp.Stage) / spacedrep.MaxStage * 100
		st.StageDistribution[wp.Stage]++
	}

	st.Total = len(pool)
	st.AvgStage = float64(stageSum) / float64(st.Total)
	st.JourneyProgress = int(math.Round(journey / float64(st.Total)))
	return st
}
