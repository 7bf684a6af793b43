package wordlist

import "strings"

// Level is a vocabulary difficulty band.
type Level string

const (
	LevelBronze Level = "bronze"
	LevelSilver Level = "silver"
	LevelGold   Level = "gold"
)

// AllLevels returns all levels in progression order.
func AllLevels() []Level {
	return []Level{LevelBronze, LevelSilver, LevelGold}
}

// ParseLevel converts a user-supplied level name into a Level.
func ParseLevel(s string) (Level, error) {
	l := Level(strings.ToLower(strings.TrimSpace(s)))
	for _, known := range AllLevels() {
		if l == known {
			return l, nil
		}
	}
	return "", &UnknownLevelError{Name: s}
}

// LevelDisplayName returns a human-readable name for a level.
func LevelDisplayName(l Level) string {
	switch l {
	case LevelBronze:
		return "Bronze"
	case LevelSilver:
		return "Silver"
	case LevelGold:
		return "Gold"
	default:
		return string(l)
	}
}

// Word is a single vocabulary entry. Source is the canonical source-language
// form and doubles as the progress key.
type Word struct {
	Source        string `json:"source"`
	Translation   string `json:"translation"`
	Pronunciation string `json:"pronunciation,omitempty"`
}

// Key returns the progress key for the word.
func (w Word) Key() string {
	return w.Source
}

// Language is a target language and its leveled word lists.
type Language struct {
	ID     string           `json:"id"`
	Name   string           `json:"name"`
	Flag   string           `json:"flag,omitempty"`
	Levels map[Level][]Word `json:"levels"`
}

// Words returns the words of one level, or nil when the level is empty.
func (l *Language) Words(level Level) []Word {
	return l.Levels[level]
}

// AllWords returns every word of the language in level order.
func (l *Language) AllWords() []Word {
	var out []Word
	for _, lv := range AllLevels() {
		out = append(out, l.Levels[lv]...)
	}
	return out
}

// WordCount returns the number of words across all levels.
func (l *Language) WordCount() int {
	n := 0
	for _, words := range l.Levels {
		n += len(words)
	}
	return n
}
