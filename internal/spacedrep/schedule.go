package spacedrep

import "math"

// Stage bounds. Stage 1 is the easiest presentation, stage 9 the hardest.
const (
	MinStage = 1
	MaxStage = 9
)

// MasteryStage is the stage at which a word counts as mastered.
const MasteryStage = 8

// Easiness factor parameters.
const (
	DefaultEasiness = 2.5
	MinEasiness     = 1.3
	EasinessBonus   = 0.1 // added on every correct answer
	EasinessPenalty = 0.2 // subtracted on every incorrect answer
)

// SM-2 intervals in days for the first two consecutive correct answers.
const (
	FirstInterval  = 1
	SecondInterval = 6
)

// nextInterval returns the review interval after a correct answer, given
// the streak and easiness before the answer is applied.
func nextInterval(repetitions, interval int, easiness float64) int {
	switch repetitions {
	case 0:
		return FirstInterval
	case 1:
		return SecondInterval
	default:
		return int(math.Round(float64(interval) * easiness))
	}
}

func clampStage(stage int) int {
	if stage < MinStage {
		return MinStage
	}
	if stage > MaxStage {
		return MaxStage
	}
	return stage
}
