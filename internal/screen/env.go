package screen

import (
	"context"
	"math/rand/v2"
	"time"

	"go.uber.org/zap"

	"github.com/abhisek/vocabdrill/internal/mastery"
	"github.com/abhisek/vocabdrill/internal/session"
	"github.com/abhisek/vocabdrill/internal/similarity"
	"github.com/abhisek/vocabdrill/internal/spacedrep"
	"github.com/abhisek/vocabdrill/internal/store"
	"github.com/abhisek/vocabdrill/internal/wordlist"
)

// Env carries the collaborators screens share. Repos may be nil, in which
// case nothing is persisted.
type Env struct {
	Language *wordlist.Language

	// Level fixes the drill level. Empty suggests one from level progress.
	Level wordlist.Level

	BatchSize int
	Curated   similarity.Curated

	Progress   store.ProgressRepo
	HighScores store.HighScoreRepo
	Levels     store.LevelRepo
	Events     store.EventRepo

	Log   *zap.Logger
	Clock func() time.Time

	// Rand seeds quiz assembly; nil uses a random source.
	Rand *rand.Rand
}

// Now returns the env clock's time.
func (e *Env) Now() time.Time {
	if e.Clock == nil {
		return time.Now()
	}
	return e.Clock()
}

// Logger returns the env logger or a no-op one.
func (e *Env) Logger() *zap.Logger {
	if e.Log == nil {
		return zap.NewNop()
	}
	return e.Log
}

// LoadScheduler restores the language's word progress.
func (e *Env) LoadScheduler(ctx context.Context) (*spacedrep.Scheduler, error) {
	var snap *spacedrep.Snapshot
	if e.Progress != nil {
		var err error
		snap, err = e.Progress.Load(ctx, e.Language.ID)
		if err != nil {
			return nil, err
		}
	}
	return spacedrep.NewScheduler(snap, e.Clock), nil
}

// LoadLevels restores the language's level counters.
func (e *Env) LoadLevels(ctx context.Context) (*mastery.Progress, error) {
	var counts map[wordlist.Level]int
	if e.Levels != nil {
		var err error
		counts, err = e.Levels.Load(ctx, e.Language.ID)
		if err != nil {
			return nil, err
		}
	}
	return mastery.NewProgress(e.Language.ID, counts), nil
}

// LoadHighScores returns the stored high-score list.
func (e *Env) LoadHighScores(ctx context.Context) ([]session.HighScore, error) {
	if e.HighScores == nil {
		return nil, nil
	}
	return e.HighScores.List(ctx)
}

// DrillLevel resolves the level to play.
func (e *Env) DrillLevel(levels *mastery.Progress) wordlist.Level {
	if e.Level != "" {
		return e.Level
	}
	return levels.SuggestedLevel()
}
