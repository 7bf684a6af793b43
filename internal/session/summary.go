package session

import (
	"time"

	"github.com/abhisek/vocabdrill/internal/wordlist"
)

// RoundSummary holds the data displayed on the summary screen.
type RoundSummary struct {
	SessionID string
	Language  string
	Level     wordlist.Level
	Duration  time.Duration
	Score     RoundScore
	Band      string
	Pool      Stats

	// Mastered lists keys that reached mastery during the round.
	Mastered []string

	// Downgraded lists keys that lost a stage during the round.
	Downgraded []string
}

// BuildSummary scores the round and computes statistics over the level's
// full word pool.
func BuildSummary(state *SessionState) *RoundSummary {
	score := ScoreRound(state.Answers)

	sum := &RoundSummary{
		SessionID: state.SessionID,
		Level:     state.Level,
		Duration:  state.Scheduler.Now().Sub(state.StartTime),
		Score:     score,
		Band:      PerformanceBand(score.TotalScore),
		Pool:      PoolStats(state.Scheduler, state.Pool()),
	}
	if state.Language != nil {
		sum.Language = state.Language.ID
	}

	seen := make(map[string]bool)
	for _, tr := range state.Transitions {
		switch {
		case tr.IsMastery():
			sum.Mastered = append(sum.Mastered, tr.Key)
		case tr.IsDowngrade() && !seen[tr.Key]:
			seen[tr.Key] = true
			sum.Downgraded = append(sum.Downgraded, tr.Key)
		}
	}
	return sum
}
