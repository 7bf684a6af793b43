package levels

import (
	"context"
	"fmt"
	"strings"
	"testing"

	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/vocabdrill/internal/mastery"
	"github.com/abhisek/vocabdrill/internal/router"
	"github.com/abhisek/vocabdrill/internal/screen"
	sessionscreen "github.com/abhisek/vocabdrill/internal/screens/session"
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
	lang := &wordlist.Language{
		ID:   "hungarian",
		Name: "Hungarian",
		Levels: map[wordlist.Level][]wordlist.Word{
			wordlist.LevelBronze: {{Source: "kutya", Translation: "dog"}, {Source: "macska", Translation: "cat"}},
			wordlist.LevelSilver: {{Source: "barát", Translation: "friend"}, {Source: "ablak", Translation: "window"}},
		},
	}
	return &screen.Env{
		Language: lang,
		Progress: st.ProgressRepo(),
		Levels:   st.LevelRepo(),
	}, st
}

func loaded(t *testing.T, s *LevelsScreen) {
	t.Helper()
	s.Update(s.Init()())
	if s.progress == nil {
		t.Fatalf("levels not loaded: %s", s.errMsg)
	}
}

func TestLevelsScreen_StartsAtSuggestedLevel(t *testing.T) {
	env, st := testEnv(t)
	if err := st.LevelRepo().Set(context.Background(), "hungarian", wordlist.LevelBronze, 20); err != nil {
		t.Fatal(err)
	}

	s := New(env)
	loaded(t, s)
	if got := s.levels[s.cursor]; got != wordlist.LevelSilver {
		t.Errorf("cursor on %q, want silver", got)
	}
	if s.progress.LevelState(wordlist.LevelBronze) != mastery.StateCompleted {
		t.Error("bronze should show as completed")
	}
}

func TestLevelsScreen_View(t *testing.T) {
	env, _ := testEnv(t)
	s := New(env)
	loaded(t, s)

	view := s.View(100, 30)
	for _, want := range []string{"Bronze", "Silver", "Gold", "Current", "Locked", "2 total"} {
		if !strings.Contains(view, want) {
			t.Errorf("view missing %q", want)
		}
	}
}

func TestLevelsScreen_LockedLevel(t *testing.T) {
	env, _ := testEnv(t)
	s := New(env)
	loaded(t, s)

	s.Update(specialKey(tea.KeyDown))
	_, cmd := s.Update(specialKey(tea.KeyEnter))
	if cmd != nil {
		t.Fatal("a locked level must not start a round")
	}
	if !strings.Contains(s.notice, "Master 20 more Bronze words") {
		t.Errorf("notice = %q", s.notice)
	}
}

func TestLevelsScreen_PlayLevel(t *testing.T) {
	env, _ := testEnv(t)
	s := New(env)
	loaded(t, s)

	_, cmd := s.Update(specialKey(tea.KeyEnter))
	if cmd == nil {
		t.Fatal("expected a command")
	}
	msg, ok := cmd().(router.PushScreenMsg)
	if !ok {
		t.Fatal("expected PushScreenMsg")
	}
	if _, ok := msg.Screen.(*sessionscreen.SessionScreen); !ok {
		t.Errorf("pushed %T, want a drill", msg.Screen)
	}
	if env.Level != "" {
		t.Error("selecting a level must not change the shared env")
	}
}

func TestLevelsScreen_EscPops(t *testing.T) {
	env, _ := testEnv(t)
	s := New(env)
	_, cmd := s.Update(specialKey(tea.KeyEscape))
	if _, ok := cmd().(router.PopScreenMsg); !ok {
		t.Error("expected PopScreenMsg")
	}
}

func TestLockedHint(t *testing.T) {
	p := mastery.NewProgress("hungarian", map[wordlist.Level]int{wordlist.LevelBronze: 20, wordlist.LevelSilver: 12})
	if got := lockedHint(p, wordlist.LevelGold); got != "Master 18 more Silver words to unlock Gold." {
		t.Errorf("lockedHint = %q", got)
	}
	if got := lockedHint(p, wordlist.LevelBronze); got != "" {
		t.Errorf("bronze is never locked, got %q", got)
	}
}
