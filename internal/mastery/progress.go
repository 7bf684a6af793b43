package mastery

import "github.com/abhisek/vocabdrill/internal/wordlist"

// Progress tracks mastered-word counts per level for one language.
type Progress struct {
	Language string
	counts   map[wordlist.Level]int
}

// NewProgress creates level progress from persisted counters. A nil map
// starts every level at zero.
func NewProgress(language string, counts map[wordlist.Level]int) *Progress {
	p := &Progress{Language: language, counts: make(map[wordlist.Level]int)}
	for lv, n := range counts {
		p.Set(lv, n)
	}
	return p
}

// Set overwrites the mastered count of a level. Negative counts are clamped to 0.
func (p *Progress) Set(level wordlist.Level, mastered int) {
	p.counts[level] = max(0, mastered)
}

// Count returns the mastered count of a level.
func (p *Progress) Count(level wordlist.Level) int {
	return p.counts[level]
}

// Counts returns a copy of all counters.
func (p *Progress) Counts() map[wordlist.Level]int {
	out := make(map[wordlist.Level]int, len(p.counts))
	for lv, n := range p.counts {
		out[lv] = n
	}
	return out
}

// Fraction returns the completed share of a level's target in [0, 1].
func (p *Progress) Fraction(level wordlist.Level) float64 {
	target := Target(level)
	if target == 0 {
		return 0
	}
	return min(1, float64(p.Count(level))/float64(target))
}

// IsComplete reports whether the level's target has been reached.
func (p *Progress) IsComplete(level wordlist.Level) bool {
	return p.Count(level) >= Target(level)
}

// IsUnlocked reports whether a level can be played. Bronze is always open;
// each later level opens once the previous one is complete.
func (p *Progress) IsUnlocked(level wordlist.Level) bool {
	prev := previous(level)
	if prev == "" {
		return level == wordlist.LevelBronze
	}
	return p.IsComplete(prev)
}

// SuggestedLevel returns the first level whose target is not yet reached.
func (p *Progress) SuggestedLevel() wordlist.Level {
	if p.Count(wordlist.LevelBronze) < Target(wordlist.LevelBronze) {
		return wordlist.LevelBronze
	}
	if p.Count(wordlist.LevelSilver) < Target(wordlist.LevelSilver) {
		return wordlist.LevelSilver
	}
	return wordlist.LevelGold
}

// LevelState resolves a level's display state.
func (p *Progress) LevelState(level wordlist.Level) LevelState {
	switch {
	case !p.IsUnlocked(level):
		return StateLocked
	case level == p.SuggestedLevel():
		return StateCurrent
	case p.IsComplete(level):
		return StateCompleted
	default:
		return StateAvailable
	}
}
