package mastery

import "github.com/abhisek/vocabdrill/internal/wordlist"

// LevelState is a level's position in the learner's journey.
type LevelState string

const (
	StateLocked    LevelState = "locked"
	StateAvailable LevelState = "available"
	StateCurrent   LevelState = "current"
	StateCompleted LevelState = "completed"
)

// Target returns how many words must be mastered to complete a level.
func Target(level wordlist.Level) int {
	switch level {
	case wordlist.LevelBronze:
		return 20
	case wordlist.LevelSilver:
		return 30
	case wordlist.LevelGold:
		return 50
	default:
		return 0
	}
}

// previous returns the level that gates l, or "" for the first level.
func previous(l wordlist.Level) wordlist.Level {
	levels := wordlist.AllLevels()
	for i, lv := range levels {
		if lv == l && i > 0 {
			return levels[i-1]
		}
	}
	return ""
}

// Icon returns the glyph shown next to a level.
func (s LevelState) Icon() string {
	switch s {
	case StateCompleted:
		return "★"
	case StateCurrent:
		return "▶"
	case StateAvailable:
		return "○"
	default:
		return "🔒"
	}
}

// Label returns the display label of the state.
func (s LevelState) Label() string {
	switch s {
	case StateCompleted:
		return "Completed"
	case StateCurrent:
		return "Current"
	case StateAvailable:
		return "Available"
	default:
		return "Locked"
	}
}
