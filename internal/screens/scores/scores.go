package scores

import (
	"context"
	"fmt"
	"strings"

	"charm.land/bubbles/v2/key"
	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/vocabdrill/internal/router"
	"github.com/abhisek/vocabdrill/internal/screen"
	"github.com/abhisek/vocabdrill/internal/session"
	"github.com/abhisek/vocabdrill/internal/store"
	"github.com/abhisek/vocabdrill/internal/ui/keys"
	"github.com/abhisek/vocabdrill/internal/ui/layout"
	"github.com/abhisek/vocabdrill/internal/ui/theme"
	"github.com/abhisek/vocabdrill/internal/wordlist"
)

// recentLimit caps the rounds shown in the history tab.
const recentLimit = 20

var tabKey = key.NewBinding(key.WithKeys("tab"), key.WithHelp("Tab", "High scores / Recent"))

type tab int

const (
	tabHighScores tab = iota
	tabRecent
)

type scoresLoadedMsg struct {
	HighScores []session.HighScore
	Rounds     []store.SessionSummaryRecord
	Err        error
}

// ScoresScreen displays the high-score table and recent rounds.
type ScoresScreen struct {
	env      *screen.Env
	scores   []session.HighScore
	rounds   []store.SessionSummaryRecord
	tab      tab
	selected int
	loaded   bool
	errMsg   string
}

var _ screen.Screen = (*ScoresScreen)(nil)
var _ screen.KeyHintProvider = (*ScoresScreen)(nil)

// New creates a new ScoresScreen.
func New(env *screen.Env) *ScoresScreen {
	return &ScoresScreen{env: env}
}

func (s *ScoresScreen) Init() tea.Cmd {
	env := s.env
	return func() tea.Msg {
		ctx := context.Background()

		list, err := env.LoadHighScores(ctx)
		if err != nil {
			return scoresLoadedMsg{Err: err}
		}
		var rounds []store.SessionSummaryRecord
		if env.Events != nil {
			rounds, err = env.Events.QuerySessionSummaries(ctx, store.QueryOpts{Limit: recentLimit})
			if err != nil {
				return scoresLoadedMsg{HighScores: list}
			}
		}
		return scoresLoadedMsg{HighScores: list, Rounds: rounds}
	}
}

func (s *ScoresScreen) Title() string {
	return "High Scores"
}

func (s *ScoresScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "Tab", Description: "Switch"},
		{Key: "↑↓", Description: "Navigate"},
		{Key: "Esc", Description: "Back"},
	}
}

func (s *ScoresScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case scoresLoadedMsg:
		if msg.Err != nil {
			s.errMsg = msg.Err.Error()
		} else {
			s.scores = msg.HighScores
			s.rounds = msg.Rounds
		}
		s.loaded = true
		return s, nil

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, keys.Default.Back):
			return s, func() tea.Msg { return router.PopScreenMsg{} }
		case key.Matches(msg, tabKey):
			if s.tab == tabHighScores {
				s.tab = tabRecent
			} else {
				s.tab = tabHighScores
			}
			s.selected = 0
		case key.Matches(msg, keys.Default.Up):
			if s.selected > 0 {
				s.selected--
			}
		case key.Matches(msg, keys.Default.Down):
			if s.selected < s.rowCount()-1 {
				s.selected++
			}
		}
	}
	return s, nil
}

func (s *ScoresScreen) rowCount() int {
	if s.tab == tabRecent {
		return len(s.rounds)
	}
	return len(s.scores)
}

func (s *ScoresScreen) View(width, height int) string {
	if s.errMsg != "" {
		return layout.Centered(width, lipgloss.NewStyle().Foreground(theme.Error),
			fmt.Sprintf("\n\nError: %s", s.errMsg))
	}
	if !s.loaded {
		return layout.Centered(width, theme.Muted, "\n\n  Loading scores...")
	}

	var b strings.Builder
	b.WriteString("\n")
	b.WriteString(s.renderTabs(width))
	b.WriteString("\n\n")

	if s.tab == tabRecent {
		b.WriteString(s.renderRounds(width))
	} else {
		b.WriteString(s.renderHighScores(width))
	}
	return b.String()
}

func (s *ScoresScreen) renderTabs(width int) string {
	active := lipgloss.NewStyle().Foreground(theme.Primary).Bold(true).Underline(true)
	label := func(t tab, name string) string {
		if s.tab == t {
			return active.Render(name)
		}
		return theme.Muted.Render(name)
	}
	return lipgloss.PlaceHorizontal(width, lipgloss.Center,
		label(tabHighScores, "HIGH SCORES")+"    "+label(tabRecent, "RECENT ROUNDS"))
}

func (s *ScoresScreen) renderHighScores(width int) string {
	if len(s.scores) == 0 {
		return layout.Centered(width, theme.Hint, "No high scores yet. Finish a round to get on the board!")
	}

	var b strings.Builder
	header := fmt.Sprintf("%-4s %6s %5s  %-10s %-7s %s", "#", "SCORE", "ACC", "LANGUAGE", "LEVEL", "DATE")
	b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, theme.Muted.Render(header)))
	b.WriteString("\n")

	for i, hs := range s.scores {
		line := fmt.Sprintf("%-4s %6d %4d%%  %-10s %-7s %s",
			rankLabel(i), hs.Score, hs.Accuracy, truncate(s.languageName(hs.Language), 10),
			wordlist.LevelDisplayName(hs.Level), hs.Timestamp.Local().Format("Jan 02 15:04"))

		style := lipgloss.NewStyle().Foreground(theme.RankColor(i))
		if session.IsPodium(i) {
			style = style.Bold(true)
		}
		if i == s.selected {
			style = style.Background(theme.BgCard)
		}
		b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, style.Render(line)))
		b.WriteString("\n")
	}
	return b.String()
}

func (s *ScoresScreen) renderRounds(width int) string {
	if len(s.rounds) == 0 {
		return layout.Centered(width, theme.Hint, "No rounds yet. Start practicing!")
	}

	var b strings.Builder
	for i, r := range s.rounds {
		var accuracy float64
		if r.QuestionsServed > 0 {
			accuracy = float64(r.CorrectAnswers) / float64(r.QuestionsServed) * 100
		}

		prefix := "  "
		if i == s.selected {
			prefix = "> "
		}
		line := fmt.Sprintf("%s%s  %d:%02d  %-7s %2d words  %3.0f%%  %4d pts",
			prefix, r.Timestamp.Local().Format("Jan 02, 2006"),
			r.DurationSecs/60, r.DurationSecs%60,
			wordlist.LevelDisplayName(wordlist.Level(r.Level)),
			r.QuestionsServed, accuracy, r.Score)

		style := lipgloss.NewStyle().Foreground(theme.Text)
		if i == s.selected {
			style = style.Foreground(theme.Primary).Bold(true)
		}
		b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, style.Render(line)))
		b.WriteString("\n")
	}
	return b.String()
}

func (s *ScoresScreen) languageName(id string) string {
	if s.env != nil && s.env.Language != nil && s.env.Language.ID == id {
		return s.env.Language.Name
	}
	return id
}

func rankLabel(i int) string {
	switch i {
	case 0:
		return "🥇"
	case 1:
		return "🥈"
	case 2:
		return "🥉"
	}
	return fmt.Sprintf("%d.", i+1)
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n-1]) + "…"
}
