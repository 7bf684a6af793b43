package app

import (
	"testing"

	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/vocabdrill/internal/router"
	"github.com/abhisek/vocabdrill/internal/screen"
	"github.com/abhisek/vocabdrill/internal/ui/layout"
	"github.com/abhisek/vocabdrill/internal/wordlist"
)

type stubScreen struct {
	title   string
	escapes bool
	got     []tea.Msg
}

func (s *stubScreen) Init() tea.Cmd { return nil }
func (s *stubScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	s.got = append(s.got, msg)
	return s, nil
}
func (s *stubScreen) View(int, int) string { return s.title }
func (s *stubScreen) Title() string        { return s.title }
func (s *stubScreen) HandlesEscape() bool  { return s.escapes }
func (s *stubScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{{Key: "X", Description: "Stub"}}
}

func testEnv() *screen.Env {
	return &screen.Env{Language: &wordlist.Language{ID: "hungarian", Name: "Hungarian"}}
}

func specialKey(code rune) tea.KeyPressMsg {
	return tea.KeyPressMsg{Code: code}
}

func TestEscPopsScreen(t *testing.T) {
	m := newAppModel(testEnv(), false)
	m.router.Push(&stubScreen{title: "stub"})

	_, cmd := m.Update(specialKey(tea.KeyEscape))
	if cmd == nil {
		t.Fatal("expected a command")
	}
	if _, ok := cmd().(router.PopScreenMsg); !ok {
		t.Error("expected PopScreenMsg")
	}
}

func TestEscAtRootIsIgnored(t *testing.T) {
	m := newAppModel(testEnv(), false)
	if _, cmd := m.Update(specialKey(tea.KeyEscape)); cmd != nil {
		t.Error("Esc at the root should do nothing")
	}
}

func TestEscapeHandlerGetsEsc(t *testing.T) {
	m := newAppModel(testEnv(), false)
	s := &stubScreen{title: "drill", escapes: true}
	m.router.Push(s)

	m.Update(specialKey(tea.KeyEscape))
	if len(s.got) != 1 {
		t.Fatalf("screen should receive Esc, got %d messages", len(s.got))
	}
	if m.router.Depth() != 2 {
		t.Error("screen handling Esc must not be popped")
	}
}

func TestCtrlCQuits(t *testing.T) {
	m := newAppModel(testEnv(), false)
	_, cmd := m.Update(tea.KeyPressMsg{Code: 'c', Mod: tea.ModCtrl})
	if cmd == nil {
		t.Fatal("expected a command")
	}
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Error("expected QuitMsg")
	}
}

func TestStartRoundPushesDrill(t *testing.T) {
	m := newAppModel(testEnv(), true)
	if m.router.Depth() != 2 {
		t.Fatalf("depth = %d, want 2", m.router.Depth())
	}
	if m.router.Active().Title() != "Drill" {
		t.Errorf("active = %q", m.router.Active().Title())
	}
}

func TestFooterHints(t *testing.T) {
	m := newAppModel(testEnv(), false)
	s := &stubScreen{title: "stub"}
	hints := m.footerHints(s)
	if len(hints) != 2 || hints[0].Key != "X" || hints[1].Key != "Ctrl+C" {
		t.Errorf("hints = %+v", hints)
	}
}

func TestView(t *testing.T) {
	m := newAppModel(testEnv(), false)
	next, _ := m.Update(tea.WindowSizeMsg{Width: 100, Height: 30})
	if next.(AppModel).View().Content == nil {
		t.Error("expected content after resize")
	}
}
