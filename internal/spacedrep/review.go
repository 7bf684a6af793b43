package spacedrep

import "time"

// WordProgress holds the spaced repetition state for a single word.
type WordProgress struct {
	Key             string     `json:"key"`
	Stage           int        `json:"stage"`
	Easiness        float64    `json:"easiness"`
	Interval        int        `json:"interval"`
	Repetitions     int        `json:"repetitions"`
	NextReview      time.Time  `json:"next_review"`
	LastReviewed    *time.Time `json:"last_reviewed,omitempty"`
	CorrectStreak   int        `json:"correct_streak"`
	TotalAttempts   int        `json:"total_attempts"`
	CorrectAttempts int        `json:"correct_attempts"`
	Mastered        bool       `json:"mastered"`
}

// NewWordProgress returns the default record for a word seen for the first
// time: stage 1, due immediately.
func NewWordProgress(key string, now time.Time) *WordProgress {
	return &WordProgress{
		Key:        key,
		Stage:      MinStage,
		Easiness:   DefaultEasiness,
		Interval:   FirstInterval,
		NextReview: now,
	}
}

// IsDue returns true if the word is due for review (at or past the review time).
func (wp *WordProgress) IsDue(now time.Time) bool {
	return !now.Before(wp.NextReview)
}

// OverdueDays returns how many days past due the word is. Returns 0 if not yet due.
func (wp *WordProgress) OverdueDays(now time.Time) float64 {
	if now.Before(wp.NextReview) {
		return 0
	}
	return now.Sub(wp.NextReview).Hours() / 24.0
}

// IsNew reports whether the word has never been answered.
func (wp *WordProgress) IsNew() bool {
	return wp.TotalAttempts == 0
}

// Accuracy returns the fraction of correct attempts, 0 for a new word.
func (wp *WordProgress) Accuracy() float64 {
	if wp.TotalAttempts == 0 {
		return 0
	}
	return float64(wp.CorrectAttempts) / float64(wp.TotalAttempts)
}

// ReviewStatus describes a word's review status for display.
type ReviewStatus string

const (
	ReviewNew      ReviewStatus = "new"
	ReviewNotDue   ReviewStatus = "not_due"
	ReviewDue      ReviewStatus = "due"
	ReviewMastered ReviewStatus = "mastered"
)

// Status returns the review status for UI display.
func (wp *WordProgress) Status(now time.Time) ReviewStatus {
	switch {
	case wp.IsNew():
		return ReviewNew
	case wp.IsDue(now):
		return ReviewDue
	case wp.Mastered:
		return ReviewMastered
	default:
		return ReviewNotDue
	}
}

// DaysUntilReview returns the number of days until the next review.
// Returns 0 if already due.
func (wp *WordProgress) DaysUntilReview(now time.Time) int {
	if wp.IsDue(now) {
		return 0
	}
	return int(wp.NextReview.Sub(now).Hours()/24.0) + 1
}

// clamp forces persisted values back into their valid ranges.
func (wp *WordProgress) clamp() {
	wp.Stage = clampStage(wp.Stage)
	if wp.Easiness < MinEasiness {
		wp.Easiness = MinEasiness
	}
	if wp.Interval < 0 {
		wp.Interval = 0
	}
	if wp.Repetitions < 0 {
		wp.Repetitions = 0
	}
	if wp.CorrectAttempts > wp.TotalAttempts {
		wp.TotalAttempts = wp.CorrectAttempts
	}
}
