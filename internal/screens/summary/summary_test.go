package summary

import (
	"strings"
	"testing"
	"time"

	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/vocabdrill/internal/mastery"
	"github.com/abhisek/vocabdrill/internal/router"
	"github.com/abhisek/vocabdrill/internal/screen"
	"github.com/abhisek/vocabdrill/internal/session"
	"github.com/abhisek/vocabdrill/internal/wordlist"
)

func testSummary() *session.RoundSummary {
	sum := &session.RoundSummary{
		SessionID: "round-1",
		Language:  "hungarian",
		Level:     wordlist.LevelBronze,
		Duration:  95 * time.Second,
		Score: session.RoundScore{
			Answered:        10,
			Correct:         8,
			Accuracy:        80,
			AvgResponseTime: 2.4,
			AccuracyScore:   480,
			SpeedScore:      150,
			TimeScore:       170,
			TotalScore:      800,
		},
		Band:       session.PerformanceBand(800),
		Mastered:   []string{"kutya"},
		Downgraded: []string{"macska"},
	}
	sum.Pool.Total = 20
	sum.Pool.Mastered = 1
	sum.Pool.JourneyProgress = 35
	sum.Pool.StageDistribution[1] = 12
	sum.Pool.StageDistribution[4] = 7
	sum.Pool.StageDistribution[9] = 1
	return sum
}

func keyPress(r rune) tea.KeyPressMsg {
	return tea.KeyPressMsg{Code: r, Text: string(r)}
}

func specialKey(code rune) tea.KeyPressMsg {
	return tea.KeyPressMsg{Code: code}
}

func TestSummaryScreen_Title(t *testing.T) {
	s := New(nil, testSummary(), -1, nil, nil)
	if s.Title() != "Round Summary" {
		t.Errorf("Title = %q", s.Title())
	}
}

func TestSummaryScreen_View(t *testing.T) {
	levels := mastery.NewProgress("hungarian", map[wordlist.Level]int{wordlist.LevelBronze: 5})
	s := New(nil, testSummary(), 0, levels, nil)
	view := s.View(100, 40)

	for _, want := range []string{
		"Round complete!",
		"Exceptional!",
		"800 / 1000",
		"New best score!",
		"Accuracy: 80%",
		"kutya",
		"macska",
		"Mastered 5/20",
		"Sound Clash",
	} {
		if !strings.Contains(view, want) {
			t.Errorf("view missing %q", want)
		}
	}
}

func TestSummaryScreen_RankLine(t *testing.T) {
	tests := []struct {
		rank int
		want string
	}{
		{-1, ""},
		{0, "New best score!"},
		{2, "#3 on the podium!"},
		{6, "High score #7"},
	}
	for _, tt := range tests {
		s := New(nil, testSummary(), tt.rank, nil, nil)
		got := s.rankLine()
		if tt.want == "" && got != "" || !strings.Contains(got, tt.want) {
			t.Errorf("rank %d: rankLine = %q, want %q", tt.rank, got, tt.want)
		}
	}
}

func TestSummaryScreen_EnterGoesHome(t *testing.T) {
	s := New(nil, testSummary(), -1, nil, nil)
	_, cmd := s.Update(specialKey(tea.KeyEnter))
	if cmd == nil {
		t.Fatal("expected a command")
	}
	if _, ok := cmd().(router.PopToRootMsg); !ok {
		t.Error("expected PopToRootMsg")
	}
}

type stubScreen struct{ screen.Screen }

func TestSummaryScreen_PlayAgain(t *testing.T) {
	next := &stubScreen{}
	s := New(nil, testSummary(), -1, nil, func() screen.Screen { return next })

	_, cmd := s.Update(keyPress('p'))
	if cmd == nil {
		t.Fatal("expected a command")
	}
	msg, ok := cmd().(router.ReplaceScreenMsg)
	if !ok || msg.Screen != screen.Screen(next) {
		t.Errorf("expected ReplaceScreenMsg with the new round, got %#v", msg)
	}

	noAgain := New(nil, testSummary(), -1, nil, nil)
	if _, cmd := noAgain.Update(keyPress('p')); cmd != nil {
		t.Error("play again without a factory should do nothing")
	}
}

func TestStageHistogram(t *testing.T) {
	var st session.Stats
	out := StageHistogram(st, 60)
	if got := strings.Count(out, "\n"); got != 9 {
		t.Errorf("expected 9 stage rows, got %d", got)
	}
}
