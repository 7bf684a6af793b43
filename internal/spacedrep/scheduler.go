package spacedrep

import (
	"sort"
	"time"
)

// Scheduler manages per-word stage progression and review timing for one
// learner. It is not safe for concurrent use.
type Scheduler struct {
	words map[string]*WordProgress
	now   func() time.Time
}

// NewScheduler creates a scheduler, loading word progress from the snapshot.
// A nil clock defaults to time.Now.
func NewScheduler(snap *Snapshot, clock func() time.Time) *Scheduler {
	if clock == nil {
		clock = time.Now
	}
	s := &Scheduler{
		words: make(map[string]*WordProgress),
		now:   clock,
	}
	if snap != nil {
		s.loadFromSnapshot(snap)
	}
	return s
}

// Now returns the scheduler's current time.
func (s *Scheduler) Now() time.Time {
	return s.now()
}

// GetWordData returns the progress record for key, creating the default
// record on first access.
func (s *Scheduler) GetWordData(key string) *WordProgress {
	wp, ok := s.words[key]
	if !ok {
		wp = NewWordProgress(key, s.now())
		s.words[key] = wp
	}
	return wp
}

// Lookup returns a copy of the progress for key, or the default record when
// the word has never been seen. It never inserts.
func (s *Scheduler) Lookup(key string) WordProgress {
	if wp, ok := s.words[key]; ok {
		return *wp
	}
	return *NewWordProgress(key, s.now())
}

// Has reports whether key has a progress record.
func (s *Scheduler) Has(key string) bool {
	_, ok := s.words[key]
	return ok
}

// UpdateWord applies an answer outcome to the word and returns the updated
// record plus the transition to surface, if any.
func (s *Scheduler) UpdateWord(key string, correct bool) (*WordProgress, *Transition) {
	wp := s.GetWordData(key)
	now := s.now()

	prevStage := wp.Stage
	wasMastered := wp.Mastered

	wp.TotalAttempts++
	reviewed := now
	wp.LastReviewed = &reviewed

	if correct {
		wp.CorrectAttempts++
		wp.CorrectStreak++

		wp.Stage = clampStage(wp.Stage + 1)
		if wp.Stage >= MasteryStage {
			wp.Mastered = true
		}

		wp.Interval = nextInterval(wp.Repetitions, wp.Interval, wp.Easiness)
		wp.Repetitions++
		wp.NextReview = now.AddDate(0, 0, wp.Interval)
		wp.Easiness = max(MinEasiness, wp.Easiness+EasinessBonus)
	} else {
		wp.CorrectStreak = 0

		wp.Stage = clampStage(wp.Stage - 1)
		if wp.Stage < MasteryStage {
			wp.Mastered = false
		}

		wp.Repetitions = 0
		wp.Interval = FirstInterval
		wp.NextReview = now
		wp.Easiness = max(MinEasiness, wp.Easiness-EasinessPenalty)
	}

	switch {
	case wp.Stage < prevStage:
		return wp, &Transition{Kind: TransitionDowngrade, Key: key, From: prevStage, To: wp.Stage}
	case correct && !wasMastered && wp.Stage >= MasteryStage:
		return wp, &Transition{Kind: TransitionMastery, Key: key, From: prevStage, To: wp.Stage}
	default:
		return wp, nil
	}
}

// DueWords returns the keys that are due at now, most overdue first, then
// lowest stage first; remaining ties keep input order. Unseen keys are due
// immediately and are evaluated without being inserted.
func (s *Scheduler) DueWords(keys []string, now time.Time) []string {
	type dueWord struct {
		key     string
		overdue time.Duration
		stage   int
	}
	var due []dueWord

	for _, key := range keys {
		var wp WordProgress
		if existing, ok := s.words[key]; ok {
			wp = *existing
		} else {
			wp = *NewWordProgress(key, now)
		}
		if wp.IsDue(now) {
			due = append(due, dueWord{key: key, overdue: now.Sub(wp.NextReview), stage: wp.Stage})
		}
	}

	sort.SliceStable(due, func(i, j int) bool {
		if due[i].overdue != due[j].overdue {
			return due[i].overdue > due[j].overdue
		}
		return due[i].stage < due[j].stage
	})

	out := make([]string, len(due))
	for i, d := range due {
		out[i] = d.key
	}
	return out
}

// AllProgress returns a copy of every tracked record (for stats/UI).
func (s *Scheduler) AllProgress() map[string]WordProgress {
	result := make(map[string]WordProgress, len(s.words))
	for key, wp := range s.words {
		result[key] = *wp
	}
	return result
}

// Reset forgets all progress.
func (s *Scheduler) Reset() {
	s.words = make(map[string]*WordProgress)
}
