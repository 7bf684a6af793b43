package session

import (
	"time"

	"github.com/abhisek/vocabdrill/internal/mastery"
	sess "github.com/abhisek/vocabdrill/internal/session"
)

const (
	// countdownInterval is the refresh rate of the answer countdown.
	countdownInterval = 100 * time.Millisecond

	// AudioStepDuration is how long each option is announced during
	// audio playback.
	AudioStepDuration = 1200 * time.Millisecond
)

// sessionInitMsg is sent when progress is loaded and the round planned.
type sessionInitMsg struct {
	State  *sess.SessionState
	Levels *mastery.Progress
	Err    error
}

// countdownTickMsg refreshes the answer countdown. Gen ties the tick to
// the question that started it.
type countdownTickMsg struct {
	Gen int
}

// audioStepMsg announces option Pos of the playback sequence. Pos equal
// to the sequence length ends playback.
type audioStepMsg struct {
	Gen int
	Pos int
}

// feedbackDoneMsg is sent when the learner dismisses answer feedback.
type feedbackDoneMsg struct{}

// sessionEndMsg is sent to trigger the round end flow.
type sessionEndMsg struct{}
