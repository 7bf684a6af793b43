package spacedrep

import "time"

// Snapshot is the persistable form of a scheduler's state. Timestamps are
// stored as RFC3339Nano strings so a save/load round trip is lossless.
type Snapshot struct {
	Words map[string]*ProgressData `json:"words"`
}

// ProgressData is the serialized form of WordProgress.
type ProgressData struct {
	Key             string  `json:"key"`
	Stage           int     `json:"stage"`
	Easiness        float64 `json:"easiness"`
	Interval        int     `json:"interval"`
	Repetitions     int     `json:"repetitions"`
	NextReview      string  `json:"next_review"`
	LastReviewed    *string `json:"last_reviewed,omitempty"`
	CorrectStreak   int     `json:"correct_streak"`
	TotalAttempts   int     `json:"total_attempts"`
	CorrectAttempts int     `json:"correct_attempts"`
	Mastered        bool    `json:"mastered"`
}

// SnapshotData exports the current progress for persistence.
func (s *Scheduler) SnapshotData() *Snapshot {
	snap := &Snapshot{Words: make(map[string]*ProgressData, len(s.words))}
	for key, wp := range s.words {
		pd := &ProgressData{
			Key:             wp.Key,
			Stage:           wp.Stage,
			Easiness:        wp.Easiness,
			Interval:        wp.Interval,
			Repetitions:     wp.Repetitions,
			NextReview:      wp.NextReview.Format(time.RFC3339Nano),
			CorrectStreak:   wp.CorrectStreak,
			TotalAttempts:   wp.TotalAttempts,
			CorrectAttempts: wp.CorrectAttempts,
			Mastered:        wp.Mastered,
		}
		if wp.LastReviewed != nil {
			lr := wp.LastReviewed.Format(time.RFC3339Nano)
			pd.LastReviewed = &lr
		}
		snap.Words[key] = pd
	}
	return snap
}

func (s *Scheduler) loadFromSnapshot(snap *Snapshot) {
	for key, pd := range snap.Words {
		if pd == nil {
			continue
		}
		nextReview, err := time.Parse(time.RFC3339Nano, pd.NextReview)
		if err != nil {
			continue
		}
		wp := &WordProgress{
			Key:             key,
			Stage:           pd.Stage,
			Easiness:        pd.Easiness,
			Interval:        pd.Interval,
			Repetitions:     pd.Repetitions,
			NextReview:      nextReview,
			CorrectStreak:   pd.CorrectStreak,
			TotalAttempts:   pd.TotalAttempts,
			CorrectAttempts: pd.CorrectAttempts,
			Mastered:        pd.Mastered,
		}
		if pd.LastReviewed != nil {
			if lr, err := time.Parse(time.RFC3339Nano, *pd.LastReviewed); err == nil {
				wp.LastReviewed = &lr
			}
		}
		wp.clamp()
		s.words[key] = wp
	}
}
