package quiz

import (
	"time"

	"github.com/abhisek/vocabdrill/internal/spacedrep"
)

// DistractorSource selects the similarity strategy used for a stage.
type DistractorSource string

const (
	SourceSameLevel  DistractorSource = "same-level"
	SourceCrossLevel DistractorSource = "cross-level"
	SourceSoundAlike DistractorSource = "sound-alike"
)

// StageConfig holds the presentation parameters for one stage.
type StageConfig struct {
	Stage     int
	Name      string
	Options   int
	TimeLimit time.Duration // 0 means untimed
	Audio     bool
	Source    DistractorSource
}

// SpeedyTimeLimit is the answer window for the timed stage.
const SpeedyTimeLimit = 5 * time.Second

var stages = [...]StageConfig{
	{Stage: 1, Name: "Duo Pick", Options: 2, Source: SourceSameLevel},
	{Stage: 2, Name: "Trio Choice", Options: 3, Source: SourceSameLevel},
	{Stage: 3, Name: "Quad Quest", Options: 4, Source: SourceSameLevel},
	{Stage: 4, Name: "Speedy Four", Options: 4, TimeLimit: SpeedyTimeLimit, Source: SourceSameLevel},
	{Stage: 5, Name: "Audio Duo", Options: 2, Audio: true, Source: SourceSameLevel},
	{Stage: 6, Name: "Audio Trio", Options: 3, Audio: true, Source: SourceSameLevel},
	{Stage: 7, Name: "Audio Quad", Options: 4, Audio: true, Source: SourceSameLevel},
	{Stage: 8, Name: "Wild Card", Options: 4, Audio: true, Source: SourceCrossLevel},
	{Stage: 9, Name: "Sound Clash", Options: 4, Audio: true, Source: SourceSoundAlike},
}

// Stage returns the configuration for a stage, clamped into [1, 9].
func Stage(stage int) StageConfig {
	stage = max(spacedrep.MinStage, min(stage, spacedrep.MaxStage))
	return stages[stage-1]
}

// AllStages returns every stage configuration in order.
func AllStages() []StageConfig {
	out := make([]StageConfig, len(stages))
	copy(out, stages[:])
	return out
}

// StageName returns the display name of a stage.
func StageName(stage int) string {
	return Stage(stage).Name
}
