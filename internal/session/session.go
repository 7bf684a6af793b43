package session

import "github.com/abhisek/vocabdrill/internal/quiz"

// NextQuiz builds the question for the next planned word at the word's
// current stage. Returns nil and moves to PhaseSummary when the plan is
// exhausted.
func NextQuiz(state *SessionState) *quiz.Quiz {
	if state.Index >= state.Plan.Len() {
		state.CurrentQuiz = nil
		state.Phase = PhaseSummary
		return nil
	}

	word := state.Plan.Words[state.Index]
	stage := state.Scheduler.GetWordData(word.Key()).Stage
	state.CurrentQuiz = state.Assembler.Build(word, stage)
	state.Phase = PhaseActive
	return state.CurrentQuiz
}

// HandleAnswer grades choice against the current question, updates the
// scheduler and records telemetry. choice is quiz.TimeoutChoice when the
// answer window expired. latency may be seconds or milliseconds.
// Returns nil when no question is active.
func HandleAnswer(state *SessionState, choice int, latency float64) *AnswerResult {
	q := state.CurrentQuiz
	if q == nil {
		return nil
	}

	correct := q.Check(choice)
	progress, transition := state.Scheduler.UpdateWord(q.Word.Key(), correct)

	state.Answers = append(state.Answers, Answer{
		Key:      q.Word.Key(),
		Correct:  correct,
		Latency:  NormalizeLatency(latency),
		Stage:    q.Stage,
		TimedOut: choice == quiz.TimeoutChoice,
	})
	if correct {
		state.TotalCorrect++
	}
	if transition != nil {
		state.Transitions = append(state.Transitions, transition)
	}

	result := &AnswerResult{
		Word:       q.Word,
		Quiz:       q,
		Correct:    correct,
		TimedOut:   choice == quiz.TimeoutChoice,
		Progress:   *progress,
		Transition: transition,
	}
	state.LastResult = result
	state.CurrentQuiz = nil
	state.Index++
	state.Phase = PhaseFeedback
	return result
}

// Done reports whether every planned word has been answered.
func Done(state *SessionState) bool {
	return state.CurrentQuiz == nil && state.Index >= state.Plan.Len()
}
