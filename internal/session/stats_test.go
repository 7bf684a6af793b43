package session

import (
	"testing"

	"github.com/abhisek/vocabdrill/internal/wordlist"
)

func TestPoolStats_Empty(t *testing.T) {
	sched, _ := newTestScheduler()
	if got := PoolStats(sched, nil); got != (Stats{}) {
		t.Errorf("PoolStats(empty) = %+v, want zero value", got)
	}
}

func TestPoolStats_Mixed(t *testing.T) {
	sched, _ := newTestScheduler()
	pool := makePool(4)

	// w00: new (stage 1)
	// w01: stage 3, in progress
	answerCorrect(sched, "w01", 2)
	// w02: stage 8, mastered
	answerCorrect(sched, "w02", 7)
	// w03: attempted once incorrectly, stays at stage 1
	sched.UpdateWord("w03", false)

	st := PoolStats(sched, pool)
	if st.Total != 4 || st.New != 1 || st.InProgress != 2 || st.Mastered != 1 {
		t.Errorf("counts = %+v, want total 4, new 1, in progress 2, mastered 1", st)
	}
	if st.AvgStage != 13.0/4 {
		t.Errorf("AvgStage = %v, want %v", st.AvgStage, 13.0/4)
	}
	// mean(1/9, 3/9, 8/9, 1/9) * 100 = 36.1 -> 36
	if st.JourneyProgress != 36 {
		t.Errorf("JourneyProgress = %d, want 36", st.JourneyProgress)
	}
	if st.StageDistribution[1] != 2 || st.StageDistribution[3] != 1 || st.StageDistribution[8] != 1 {
		t.Errorf("StageDistribution = %v", st.StageDistribution)
	}
}

func TestPoolStats_DoesNotCreateRecords(t *testing.T) {
	sched, _ := newTestScheduler()
	PoolStats(sched, []wordlist.Word{{Source: "ghost", Translation: "szellem"}})
	if sched.Has("ghost") {
		t.Error("PoolStats created a progress record")
	}
}

func TestPoolStats_AllMastered(t *testing.T) {
	sched, _ := newTestScheduler()
	pool := makePool(3)
	for _, w := range pool {
		answerCorrect(sched, w.Key(), 8)
	}
	st := PoolStats(sched, pool)
	if st.JourneyProgress != 100 || st.Mastered != 3 {
		t.Errorf("got journey %d mastered %d, want 100 and 3", st.JourneyProgress, st.Mastered)
	}
}
