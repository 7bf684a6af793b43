package session

import (
	"fmt"
	"math/rand/v2"
	"testing"
	"time"

	"github.com/abhisek/vocabdrill/internal/spacedrep"
	"github.com/abhisek/vocabdrill/internal/wordlist"
)

var baseTime = time.Date(2025, 1, 1, 12, 0, 0, 0, time.UTC)

type testClock struct{ now time.Time }

func (c *testClock) Now() time.Time { return c.now }

func newTestScheduler() (*spacedrep.Scheduler, *testClock) {
	clock := &testClock{now: baseTime}
	return spacedrep.NewScheduler(nil, clock.Now), clock
}

func testRand() *rand.Rand {
	return rand.New(rand.NewPCG(42, 99))
}

func makePool(n int) []wordlist.Word {
	pool := make([]wordlist.Word, n)
	for i := range pool {
		pool[i] = wordlist.Word{Source: fmt.Sprintf("w%02d", i), Translation: fmt.Sprintf("t%02d", i)}
	}
	return pool
}

// answerCorrect pushes a word's next review into the future.
func answerCorrect(s *spacedrep.Scheduler, key string, times int) {
	for i := 0; i < times; i++ {
		s.UpdateWord(key, true)
	}
}

func assertNoDuplicates(t *testing.T, words []wordlist.Word) {
	t.Helper()
	seen := map[string]bool{}
	for _, w := range words {
		if seen[w.Key()] {
			t.Errorf("duplicate word %q in batch", w.Key())
		}
		seen[w.Key()] = true
	}
}

func TestSelectReviewBatch_AllNewWords(t *testing.T) {
	sched, _ := newTestScheduler()
	pool := makePool(30)

	got := SelectReviewBatch(sched, pool, 0, testRand())
	if len(got) != DefaultBatchSize {
		t.Fatalf("got %d words, want %d", len(got), DefaultBatchSize)
	}
	assertNoDuplicates(t, got)
	// New words are all due at the same instant and stage, so input order holds.
	for i, w := range got {
		if w.Key() != pool[i].Key() {
			t.Errorf("got[%d] = %q, want %q", i, w.Key(), pool[i].Key())
		}
	}
}

func TestSelectReviewBatch_SmallPool(t *testing.T) {
	sched, _ := newTestScheduler()
	pool := makePool(5)
	for _, w := range pool {
		answerCorrect(sched, w.Key(), 1)
	}

	got := SelectReviewBatch(sched, pool, 20, testRand())
	if len(got) != 5 {
		t.Errorf("got %d words, want the whole pool of 5", len(got))
	}
	assertNoDuplicates(t, got)
}

func TestSelectReviewBatch_DueFirstThenFiller(t *testing.T) {
	sched, clock := newTestScheduler()
	pool := makePool(10)

	// Everything but w03 and w07 is reviewed and pushed a day out.
	for _, w := range pool {
		if w.Key() != "w03" && w.Key() != "w07" {
			answerCorrect(sched, w.Key(), 1)
		}
	}
	// w07 is made more overdue than w03.
	sched.GetWordData("w07").NextReview = baseTime.Add(-48 * time.Hour)
	sched.GetWordData("w03").NextReview = baseTime.Add(-time.Hour)
	clock.now = baseTime.Add(time.Hour)

	plan := NewPlanner(testRand()).BuildPlan(sched, pool, 6)
	if plan.Len() != 6 {
		t.Fatalf("got %d words, want 6", plan.Len())
	}
	if plan.DueCount != 2 {
		t.Errorf("DueCount = %d, want 2", plan.DueCount)
	}
	if plan.Words[0].Key() != "w07" || plan.Words[1].Key() != "w03" {
		t.Errorf("due words = %q, %q, want w07, w03", plan.Words[0].Key(), plan.Words[1].Key())
	}
	assertNoDuplicates(t, plan.Words)
}

func TestSelectReviewBatch_OverdueBeatsStage(t *testing.T) {
	sched, _ := newTestScheduler()
	pool := makePool(4)
	for _, w := range pool {
		answerCorrect(sched, w.Key(), 1)
	}

	far := sched.GetWordData("w02")
	far.Stage = 6
	far.NextReview = baseTime.Add(-5 * 24 * time.Hour)
	near := sched.GetWordData("w00")
	near.Stage = 1
	near.NextReview = baseTime.Add(-2 * 24 * time.Hour)

	got := SelectReviewBatch(sched, pool, 4, testRand())
	if len(got) != 4 {
		t.Fatalf("got %d words, want 4", len(got))
	}
	if got[0].Key() != "w02" || got[1].Key() != "w00" {
		t.Errorf("due words = %q, %q, want w02, w00", got[0].Key(), got[1].Key())
	}
	assertNoDuplicates(t, got)
}

func TestSelectReviewBatch_CapsDueSet(t *testing.T) {
	sched, _ := newTestScheduler()
	pool := makePool(25)
	got := SelectReviewBatch(sched, pool, 20, testRand())
	if len(got) != 20 {
		t.Errorf("got %d words, want 20", len(got))
	}
}

func TestSelectReviewBatch_CollapsesDuplicateKeys(t *testing.T) {
	sched, _ := newTestScheduler()
	pool := append(makePool(3), wordlist.Word{Source: "w01", Translation: "other"})
	got := SelectReviewBatch(sched, pool, 10, testRand())
	if len(got) != 3 {
		t.Errorf("got %d words, want 3", len(got))
	}
	assertNoDuplicates(t, got)
}

func TestSelectReviewBatch_FillerIsShuffled(t *testing.T) {
	sched, _ := newTestScheduler()
	pool := makePool(20)
	for _, w := range pool {
		answerCorrect(sched, w.Key(), 1)
	}

	rng := testRand()
	firsts := map[string]bool{}
	for i := 0; i < 50; i++ {
		firsts[SelectReviewBatch(sched, pool, 20, rng)[0].Key()] = true
	}
	if len(firsts) < 5 {
		t.Errorf("filler order looks fixed: only %d distinct first words", len(firsts))
	}
}

func TestSelectReviewBatch_EmptyPool(t *testing.T) {
	sched, _ := newTestScheduler()
	if got := SelectReviewBatch(sched, nil, 20, testRand()); len(got) != 0 {
		t.Errorf("got %d words, want 0", len(got))
	}
}
