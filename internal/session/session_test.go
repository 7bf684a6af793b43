package session

import (
	"math/rand/v2"
	"testing"

	"github.com/abhisek/vocabdrill/internal/quiz"
	"github.com/abhisek/vocabdrill/internal/similarity"
	"github.com/abhisek/vocabdrill/internal/spacedrep"
	"github.com/abhisek/vocabdrill/internal/wordlist"
)

func testState(t *testing.T) (*SessionState, *testClock) {
	t.Helper()
	lang, err := wordlist.MustBuiltin().Language("spanish")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	sched, clock := newTestScheduler()
	asm := quiz.NewAssembler(lang, wordlist.LevelBronze, similarity.BuiltinGroups(), rand.New(rand.NewPCG(5, 6)))
	return NewSessionState(Config{Scheduler: sched, Assembler: asm}), clock
}

func TestNewSessionState(t *testing.T) {
	state, _ := testState(t)
	if state.SessionID == "" {
		t.Error("SessionID is empty")
	}
	if state.Plan.Len() != DefaultBatchSize {
		t.Errorf("Plan.Len() = %d, want %d", state.Plan.Len(), DefaultBatchSize)
	}
	if state.Phase != PhaseActive {
		t.Errorf("Phase = %v, want PhaseActive", state.Phase)
	}
}

func TestRound_AllCorrect(t *testing.T) {
	state, _ := testState(t)

	for i := 0; i < DefaultBatchSize; i++ {
		q := NextQuiz(state)
		if q == nil {
			t.Fatalf("NextQuiz returned nil at %d", i)
		}
		if q.Stage != 1 {
			t.Errorf("first sight of %q at stage %d, want 1", q.Word.Key(), q.Stage)
		}
		res := HandleAnswer(state, q.CorrectIndex, 1500)
		if !res.Correct || res.Progress.Stage != 2 {
			t.Errorf("%q: correct=%v stage=%d, want true/2", q.Word.Key(), res.Correct, res.Progress.Stage)
		}
		if state.Phase != PhaseFeedback {
			t.Errorf("Phase = %v, want PhaseFeedback", state.Phase)
		}
	}

	if q := NextQuiz(state); q != nil {
		t.Errorf("NextQuiz after the last word = %+v, want nil", q)
	}
	if !Done(state) || state.Phase != PhaseSummary {
		t.Error("round should be done")
	}

	sum := BuildSummary(state)
	if sum.Score.Accuracy != 100 {
		t.Errorf("Accuracy = %d, want 100", sum.Score.Accuracy)
	}
	if sum.Score.AvgResponseTime != 1.5 {
		t.Errorf("AvgResponseTime = %v, want 1.5 (milliseconds normalized)", sum.Score.AvgResponseTime)
	}
	if sum.Pool.InProgress != 20 || sum.Pool.New != 0 {
		t.Errorf("Pool = %+v, want 20 in progress", sum.Pool)
	}
	if sum.Language != "spanish" || sum.Level != wordlist.LevelBronze {
		t.Errorf("got %s/%s, want spanish/bronze", sum.Language, sum.Level)
	}
}

func TestRound_TimeoutIsIncorrect(t *testing.T) {
	state, _ := testState(t)
	word := state.Plan.Words[0]
	state.Scheduler.GetWordData(word.Key()).Stage = 4

	q := NextQuiz(state)
	if q.Stage != 4 || !q.Timed() {
		t.Fatalf("got stage %d timed=%v, want timed stage 4", q.Stage, q.Timed())
	}

	res := HandleAnswer(state, quiz.TimeoutChoice, 5)
	if res.Correct || !res.TimedOut {
		t.Errorf("correct=%v timedOut=%v, want false/true", res.Correct, res.TimedOut)
	}
	if !res.Transition.IsDowngrade() || res.Transition.From != 4 || res.Transition.To != 3 {
		t.Errorf("Transition = %+v, want downgrade 4->3", res.Transition)
	}
}

func TestRound_MasteryTransitionReported(t *testing.T) {
	state, _ := testState(t)
	word := state.Plan.Words[0]
	wp := state.Scheduler.GetWordData(word.Key())
	wp.Stage = spacedrep.MasteryStage - 1

	q := NextQuiz(state)
	res := HandleAnswer(state, q.CorrectIndex, 2)
	if !res.Transition.IsMastery() {
		t.Fatalf("Transition = %+v, want mastery", res.Transition)
	}

	// Finish the round with wrong answers.
	for q := NextQuiz(state); q != nil; q = NextQuiz(state) {
		HandleAnswer(state, (q.CorrectIndex+1)%len(q.Options), 2)
	}

	sum := BuildSummary(state)
	if len(sum.Mastered) != 1 || sum.Mastered[0] != word.Key() {
		t.Errorf("Mastered = %v, want [%s]", sum.Mastered, word.Key())
	}
	if sum.Score.Correct != 1 {
		t.Errorf("Correct = %d, want 1", sum.Score.Correct)
	}
}

func TestHandleAnswer_NoActiveQuiz(t *testing.T) {
	state, _ := testState(t)
	if res := HandleAnswer(state, 0, 1); res != nil {
		t.Errorf("HandleAnswer without a quiz = %+v, want nil", res)
	}
	if len(state.Answers) != 0 {
		t.Error("answer recorded without a quiz")
	}
}

func TestSummary_HighScore(t *testing.T) {
	state, _ := testState(t)
	q := NextQuiz(state)
	HandleAnswer(state, q.CorrectIndex, 1)

	hs := BuildSummary(state).HighScore(baseTime)
	if hs.Language != "spanish" || hs.Level != wordlist.LevelBronze || !hs.Timestamp.Equal(baseTime) {
		t.Errorf("HighScore = %+v", hs)
	}
	if hs.Accuracy != 100 {
		t.Errorf("Accuracy = %d, want 100", hs.Accuracy)
	}
}
