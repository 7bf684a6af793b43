package session

import (
	"time"

	"github.com/google/uuid"

	"github.com/abhisek/vocabdrill/internal/quiz"
	"github.com/abhisek/vocabdrill/internal/spacedrep"
	"github.com/abhisek/vocabdrill/internal/wordlist"
)

// SessionPhase represents the current phase of a round.
type SessionPhase int

const (
	PhaseActive   SessionPhase = iota // A question is on screen
	PhaseFeedback                     // Showing the outcome of the last answer
	PhaseSummary                      // Round finished
)

// Config carries the collaborators a round needs.
type Config struct {
	Scheduler *spacedrep.Scheduler
	Assembler *quiz.Assembler

	// Planner defaults to a DefaultPlanner sharing the assembler's rng.
	Planner Planner

	// BatchSize defaults to DefaultBatchSize.
	BatchSize int
}

// SessionState tracks the runtime state of one round.
type SessionState struct {
	// SessionID is the UUID for this round.
	SessionID string

	Language *wordlist.Language
	Level    wordlist.Level

	// Plan is the play list built at start.
	Plan *Plan

	// Index is the position in Plan.Words of the next word to ask.
	Index int

	// CurrentQuiz is the active question (nil between questions).
	CurrentQuiz *quiz.Quiz

	// Answers holds telemetry for every answered question in order.
	Answers []Answer

	// TotalCorrect is the count of correct answers so far.
	TotalCorrect int

	// Transitions holds every stage transition surfaced during the round.
	Transitions []*spacedrep.Transition

	// LastResult is the outcome of the most recent answer.
	LastResult *AnswerResult

	// StartTime is when the round began.
	StartTime time.Time

	Phase SessionPhase

	Scheduler *spacedrep.Scheduler
	Assembler *quiz.Assembler
}

// AnswerResult reports the effect of one answer.
type AnswerResult struct {
	Word       wordlist.Word
	Quiz       *quiz.Quiz
	Correct    bool
	TimedOut   bool
	Progress   spacedrep.WordProgress
	Transition *spacedrep.Transition
}

// NewSessionState starts a round: it plans the play list from the
// assembler's language level and assigns a fresh session ID.
func NewSessionState(cfg Config) *SessionState {
	planner := cfg.Planner
	if planner == nil {
		planner = NewPlanner(cfg.Assembler.Rand)
	}

	var pool []wordlist.Word
	if cfg.Assembler.Language != nil {
		pool = cfg.Assembler.Language.Words(cfg.Assembler.Level)
	}

	return &SessionState{
		SessionID: uuid.NewString(),
		Language:  cfg.Assembler.Language,
		Level:     cfg.Assembler.Level,
		Plan:      planner.BuildPlan(cfg.Scheduler, pool, cfg.BatchSize),
		StartTime: cfg.Scheduler.Now(),
		Phase:     PhaseActive,
		Scheduler: cfg.Scheduler,
		Assembler: cfg.Assembler,
	}
}

// Pool returns the round's full word pool.
func (s *SessionState) Pool() []wordlist.Word {
	if s.Language == nil {
		return nil
	}
	return s.Language.Words(s.Level)
}

// Remaining returns how many words are left to ask.
func (s *SessionState) Remaining() int {
	return max(0, s.Plan.Len()-s.Index)
}
