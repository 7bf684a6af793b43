package session

import (
	"time"

	"github.com/abhisek/vocabdrill/internal/wordlist"
)

// MaxHighScores caps the high-score list.
const MaxHighScores = 10

// PodiumSize is how many top ranks get the fanfare.
const PodiumSize = 3

// HighScore is one entry of the high-score list.
type HighScore struct {
	Score     int            `json:"score"`
	Accuracy  int            `json:"accuracy"`
	Language  string         `json:"language"`
	Level     wordlist.Level `json:"level"`
	Timestamp time.Time      `json:"timestamp"`
}

// HighScore converts the summary into a high-score entry.
func (s *RoundSummary) HighScore(at time.Time) HighScore {
	return HighScore{
		Score:     s.Score.TotalScore,
		Accuracy:  s.Score.Accuracy,
		Language:  s.Language,
		Level:     s.Level,
		Timestamp: at,
	}
}

// InsertHighScore places entry into a best-first list and caps it at
// MaxHighScores. Entries with an equal score keep older ones ahead. Returns
// the new list and the entry's zero-based rank, or -1 if it did not place.
// The input slice is not modified.
func InsertHighScore(list []HighScore, entry HighScore) ([]HighScore, int) {
	pos := len(list)
	for i, hs := range list {
		if entry.Score > hs.Score {
			pos = i
			break
		}
	}

	if pos >= MaxHighScores {
		out := make([]HighScore, min(len(list), MaxHighScores))
		copy(out, list)
		return out, -1
	}

	out := make([]HighScore, 0, len(list)+1)
	out = append(out, list[:pos]...)
	out = append(out, entry)
	out = append(out, list[pos:]...)
	if len(out) > MaxHighScores {
		out = out[:MaxHighScores]
	}
	return out, pos
}

// IsPodium reports whether a rank from InsertHighScore is in the top three.
func IsPodium(rank int) bool {
	return rank >= 0 && rank < PodiumSize
}
