package scores

import (
	"context"
	"fmt"
	"strings"
	"testing"
	"time"

	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/vocabdrill/internal/router"
	"github.com/abhisek/vocabdrill/internal/screen"
	"github.com/abhisek/vocabdrill/internal/session"
	"github.com/abhisek/vocabdrill/internal/store"
	"github.com/abhisek/vocabdrill/internal/wordlist"
)

func specialKey(code rune) tea.KeyPressMsg {
	return tea.KeyPressMsg{Code: code}
}

func testEnv(t *testing.T) (*screen.Env, *store.Store) {
	t.Helper()
	st, err := store.Open(fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name()))
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	t.Cleanup(func() { st.Close() })
	env := &screen.Env{
		Language:   &wordlist.Language{ID: "hungarian", Name: "Hungarian"},
		HighScores: st.HighScoreRepo(),
		Events:     st.EventRepo(),
	}
	return env, st
}

func loaded(t *testing.T, s *ScoresScreen) {
	t.Helper()
	s.Update(s.Init()())
	if !s.loaded {
		t.Fatal("expected scores to load")
	}
}

func TestScoresScreen_Empty(t *testing.T) {
	env, _ := testEnv(t)
	s := New(env)
	if !strings.Contains(s.View(80, 20), "Loading") {
		t.Error("expected loading view before init")
	}
	loaded(t, s)
	if !strings.Contains(s.View(100, 20), "No high scores yet") {
		t.Error("expected empty-state hint")
	}
}

func TestScoresScreen_HighScores(t *testing.T) {
	env, st := testEnv(t)
	at := time.Date(2025, 3, 1, 9, 0, 0, 0, time.UTC)
	list := []session.HighScore{
		{Score: 910, Accuracy: 95, Language: "hungarian", Level: wordlist.LevelSilver, Timestamp: at},
		{Score: 700, Accuracy: 80, Language: "hungarian", Level: wordlist.LevelBronze, Timestamp: at},
		{Score: 512, Accuracy: 70, Language: "spanish", Level: wordlist.LevelBronze, Timestamp: at},
		{Score: 300, Accuracy: 50, Language: "hungarian", Level: wordlist.LevelBronze, Timestamp: at},
	}
	if err := st.HighScoreRepo().Replace(context.Background(), list); err != nil {
		t.Fatal(err)
	}

	s := New(env)
	loaded(t, s)
	view := s.View(100, 30)
	for _, want := range []string{"910", "Hungarian", "Silver", "spanish", "4."} {
		if !strings.Contains(view, want) {
			t.Errorf("view missing %q", want)
		}
	}
}

func TestScoresScreen_RecentRounds(t *testing.T) {
	env, st := testEnv(t)
	ctx := context.Background()
	for _, sc := range []int{420, 650} {
		if err := st.EventRepo().AppendSessionEvent(ctx, store.SessionEventData{
			SessionID:       fmt.Sprintf("round-%d", sc),
			Action:          "end",
			Language:        "hungarian",
			Level:           "bronze",
			QuestionsServed: 10,
			CorrectAnswers:  7,
			Score:           sc,
			DurationSecs:    75,
		}); err != nil {
			t.Fatal(err)
		}
	}

	s := New(env)
	loaded(t, s)
	s.Update(specialKey(tea.KeyTab))
	if s.tab != tabRecent {
		t.Fatal("Tab should switch to recent rounds")
	}
	view := s.View(100, 30)
	for _, want := range []string{"650 pts", "420 pts", "1:15", "70%"} {
		if !strings.Contains(view, want) {
			t.Errorf("view missing %q", want)
		}
	}

	s.Update(specialKey(tea.KeyDown))
	s.Update(specialKey(tea.KeyDown))
	if s.selected != 1 {
		t.Errorf("selected = %d, want 1 (clamped)", s.selected)
	}
}

func TestScoresScreen_EscPops(t *testing.T) {
	env, _ := testEnv(t)
	s := New(env)
	_, cmd := s.Update(specialKey(tea.KeyEscape))
	if cmd == nil {
		t.Fatal("expected a command")
	}
	if _, ok := cmd().(router.PopScreenMsg); !ok {
		t.Error("expected PopScreenMsg")
	}
}

func TestRankLabel(t *testing.T) {
	if rankLabel(0) != "🥇" || rankLabel(2) != "🥉" {
		t.Error("podium ranks should get medals")
	}
	if rankLabel(4) != "5." {
		t.Errorf("rankLabel(4) = %q", rankLabel(4))
	}
}
