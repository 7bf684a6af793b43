package home

import (
	"context"
	"fmt"
	"testing"
	"time"

	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/vocabdrill/internal/router"
	"github.com/abhisek/vocabdrill/internal/screen"
	"github.com/abhisek/vocabdrill/internal/screens/levels"
	"github.com/abhisek/vocabdrill/internal/screens/scores"
	sessionscreen "github.com/abhisek/vocabdrill/internal/screens/session"
	"github.com/abhisek/vocabdrill/internal/session"
	"github.com/abhisek/vocabdrill/internal/spacedrep"
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
	now := time.Date(2025, 3, 1, 9, 0, 0, 0, time.UTC)
	return &screen.Env{
		Language: &wordlist.Language{
			ID:   "hungarian",
			Name: "Hungarian",
			Levels: map[wordlist.Level][]wordlist.Word{
				wordlist.LevelBronze: {
					{Source: "kutya", Translation: "dog"},
					{Source: "macska", Translation: "cat"},
					{Source: "ház", Translation: "house"},
				},
			},
		},
		Progress:   st.ProgressRepo(),
		Levels:     st.LevelRepo(),
		HighScores: st.HighScoreRepo(),
		Clock:      func() time.Time { return now },
	}, st
}

func TestHomeScreen_Title(t *testing.T) {
	env, _ := testEnv(t)
	h := New(env)
	if h.Title() != "Home" {
		t.Errorf("Title = %q, want %q", h.Title(), "Home")
	}
}

func TestHomeScreen_Menu(t *testing.T) {
	env, _ := testEnv(t)
	h := New(env)

	tests := []struct {
		downs int
		check func(tea.Msg) bool
	}{
		{0, func(m tea.Msg) bool {
			p, ok := m.(router.PushScreenMsg)
			_, isDrill := p.Screen.(*sessionscreen.SessionScreen)
			return ok && isDrill
		}},
		{1, func(m tea.Msg) bool {
			p, ok := m.(router.PushScreenMsg)
			_, isLevels := p.Screen.(*levels.LevelsScreen)
			return ok && isLevels
		}},
		{2, func(m tea.Msg) bool {
			p, ok := m.(router.PushScreenMsg)
			_, isScores := p.Screen.(*scores.ScoresScreen)
			return ok && isScores
		}},
		{3, func(m tea.Msg) bool {
			_, ok := m.(tea.QuitMsg)
			return ok
		}},
	}
	for _, tt := range tests {
		h.menu.Selected = 0
		for i := 0; i < tt.downs; i++ {
			h.Update(specialKey(tea.KeyDown))
		}
		_, cmd := h.Update(specialKey(tea.KeyEnter))
		if cmd == nil {
			t.Fatalf("item %d: expected a command", tt.downs)
		}
		if !tt.check(cmd()) {
			t.Errorf("item %q did the wrong thing", h.menuLabels[tt.downs])
		}
	}
}

func TestLoadDashboard(t *testing.T) {
	env, st := testEnv(t)
	ctx := context.Background()

	sched := spacedrep.NewScheduler(nil, env.Clock)
	sched.UpdateWord("kutya", true)
	if err := st.ProgressRepo().Save(ctx, "hungarian", sched.SnapshotData()); err != nil {
		t.Fatal(err)
	}
	if err := st.HighScoreRepo().Replace(ctx, []session.HighScore{
		{Score: 640, Accuracy: 90, Language: "hungarian", Level: wordlist.LevelBronze, Timestamp: env.Now()},
	}); err != nil {
		t.Fatal(err)
	}

	d, err := LoadDashboard(ctx, env)
	if err != nil {
		t.Fatal(err)
	}
	if d.Total != 3 || d.Mastered != 0 {
		t.Errorf("dashboard = %+v", d)
	}
	if d.Due != 0 {
		t.Errorf("Due = %d, unseen and freshly reviewed words are not due", d.Due)
	}
	if !d.HasBest || d.BestScore != 640 {
		t.Errorf("best = %d/%v, want 640", d.BestScore, d.HasBest)
	}
	if d.Level != wordlist.LevelBronze {
		t.Errorf("Level = %q, want bronze", d.Level)
	}
}

func TestHomeScreen_RefreshesOnResume(t *testing.T) {
	env, _ := testEnv(t)
	h := New(env)
	h.Update(h.Init()())
	if !h.loaded {
		t.Fatal("dashboard should load on init")
	}

	_, cmd := h.Update(router.RootResumedMsg{})
	if cmd == nil {
		t.Fatal("resuming should reload the dashboard")
	}
	if _, ok := cmd().(dashboardMsg); !ok {
		t.Error("expected a dashboard reload")
	}
}

func TestHomeScreen_View(t *testing.T) {
	env, _ := testEnv(t)
	h := New(env)
	h.Update(h.Init()())
	for _, size := range [][2]int{{120, 40}, {70, 16}} {
		if h.View(size[0], size[1]) == "" {
			t.Errorf("empty view at %dx%d", size[0], size[1])
		}
	}
	if got := h.HeaderInfo().Level; got != "Bronze" {
		t.Errorf("header level = %q", got)
	}
}
