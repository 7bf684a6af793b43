package levels

import (
	"context"
	"fmt"
	"image/color"
	"strings"

	"charm.land/bubbles/v2/key"
	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/vocabdrill/internal/mastery"
	"github.com/abhisek/vocabdrill/internal/router"
	"github.com/abhisek/vocabdrill/internal/screen"
	sessionscreen "github.com/abhisek/vocabdrill/internal/screens/session"
	"github.com/abhisek/vocabdrill/internal/screens/summary"
	"github.com/abhisek/vocabdrill/internal/session"
	"github.com/abhisek/vocabdrill/internal/ui/components"
	"github.com/abhisek/vocabdrill/internal/ui/keys"
	"github.com/abhisek/vocabdrill/internal/ui/layout"
	"github.com/abhisek/vocabdrill/internal/ui/theme"
	"github.com/abhisek/vocabdrill/internal/wordlist"
)

type levelsLoadedMsg struct {
	Progress *mastery.Progress
	Stats    map[wordlist.Level]session.Stats
	Err      error
}

// LevelsScreen shows the bronze, silver and gold gates and starts a round
// at the chosen level.
type LevelsScreen struct {
	env      *screen.Env
	levels   []wordlist.Level
	cursor   int
	progress *mastery.Progress
	stats    map[wordlist.Level]session.Stats
	notice   string
	errMsg   string
}

var _ screen.Screen = (*LevelsScreen)(nil)
var _ screen.KeyHintProvider = (*LevelsScreen)(nil)

// New creates a new LevelsScreen.
func New(env *screen.Env) *LevelsScreen {
	return &LevelsScreen{env: env, levels: wordlist.AllLevels()}
}

func (s *LevelsScreen) Init() tea.Cmd {
	env := s.env
	return func() tea.Msg {
		ctx := context.Background()
		sched, err := env.LoadScheduler(ctx)
		if err != nil {
			return levelsLoadedMsg{Err: err}
		}
		progress, err := env.LoadLevels(ctx)
		if err != nil {
			return levelsLoadedMsg{Err: err}
		}
		stats := make(map[wordlist.Level]session.Stats)
		for _, lv := range wordlist.AllLevels() {
			stats[lv] = session.PoolStats(sched, env.Language.Words(lv))
		}
		return levelsLoadedMsg{Progress: progress, Stats: stats}
	}
}

func (s *LevelsScreen) Title() string {
	return "Levels"
}

func (s *LevelsScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "↑↓", Description: "Navigate"},
		{Key: "Enter", Description: "Play level"},
		{Key: "Esc", Description: "Back"},
	}
}

func (s *LevelsScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case levelsLoadedMsg:
		if msg.Err != nil {
			s.errMsg = msg.Err.Error()
			return s, nil
		}
		s.progress = msg.Progress
		s.stats = msg.Stats
		s.cursor = s.indexOf(s.progress.SuggestedLevel())
		return s, nil

	case tea.KeyMsg:
		s.notice = ""
		switch {
		case key.Matches(msg, keys.Default.Back):
			return s, func() tea.Msg { return router.PopScreenMsg{} }
		case key.Matches(msg, keys.Default.Up):
			if s.cursor > 0 {
				s.cursor--
			}
		case key.Matches(msg, keys.Default.Down):
			if s.cursor < len(s.levels)-1 {
				s.cursor++
			}
		case key.Matches(msg, keys.Default.Select):
			return s, s.selectLevel()
		}
	}
	return s, nil
}

// selectLevel starts a round at the level under the cursor, if unlocked.
func (s *LevelsScreen) selectLevel() tea.Cmd {
	if s.progress == nil {
		return nil
	}
	level := s.levels[s.cursor]
	if !s.progress.IsUnlocked(level) {
		s.notice = lockedHint(s.progress, level)
		return nil
	}
	if len(s.env.Language.Words(level)) == 0 {
		s.notice = fmt.Sprintf("%s has no %s words yet.", s.env.Language.Name, wordlist.LevelDisplayName(level))
		return nil
	}

	env := *s.env
	env.Level = level
	return func() tea.Msg {
		return router.PushScreenMsg{Screen: sessionscreen.New(&env)}
	}
}

func (s *LevelsScreen) indexOf(level wordlist.Level) int {
	for i, lv := range s.levels {
		if lv == level {
			return i
		}
	}
	return 0
}

func (s *LevelsScreen) View(width, height int) string {
	if s.errMsg != "" {
		return layout.Centered(width, lipgloss.NewStyle().Foreground(theme.Error),
			fmt.Sprintf("\n\nError: %s", s.errMsg))
	}
	if s.progress == nil {
		return layout.Centered(width, theme.Muted, "\n\n  Loading levels...")
	}

	var b strings.Builder
	b.WriteString("\n")
	for i, lv := range s.levels {
		b.WriteString(s.renderLevelRow(lv, i == s.cursor, width))
		b.WriteString("\n")
	}
	b.WriteString("\n")
	b.WriteString(layout.Divider(width, 70))
	b.WriteString("\n")
	b.WriteString(s.renderDetail(s.levels[s.cursor], width))

	if s.notice != "" {
		b.WriteString("\n")
		b.WriteString(layout.Centered(width, lipgloss.NewStyle().Foreground(theme.Warning), s.notice))
	}
	return b.String()
}

// renderLevelRow renders one gate with its mastery bar.
func (s *LevelsScreen) renderLevelRow(level wordlist.Level, selected bool, width int) string {
	state := s.progress.LevelState(level)

	nameStyle := lipgloss.NewStyle().Foreground(levelColor(level)).Bold(true)
	labelStyle := lipgloss.NewStyle().Foreground(theme.TextDim)
	switch {
	case selected:
		labelStyle = lipgloss.NewStyle().Foreground(theme.Primary)
	case state == mastery.StateLocked:
		nameStyle = lipgloss.NewStyle().Foreground(theme.TextDim)
	case state == mastery.StateCompleted:
		labelStyle = lipgloss.NewStyle().Foreground(theme.Success)
	}

	cursor := "  "
	if selected {
		cursor = "▸ "
	}

	barWidth := max(10, min(width-40, 40))
	bar := components.NewProgressBar(
		fmt.Sprintf("%3d/%-3d", s.progress.Count(level), mastery.Target(level)),
		s.progress.Fraction(level), false, barWidth)
	bar.Fill = levelColor(level)

	return fmt.Sprintf("  %s%s %s %s  %s",
		cursor,
		state.Icon(),
		nameStyle.Render(fmt.Sprintf("%-7s", wordlist.LevelDisplayName(level))),
		bar.View(),
		labelStyle.Render(fmt.Sprintf("%9s", state.Label())),
	)
}

// renderDetail shows pool statistics for the selected level.
func (s *LevelsScreen) renderDetail(level wordlist.Level, width int) string {
	st := s.stats[level]
	var b strings.Builder

	b.WriteString(lipgloss.NewStyle().Foreground(levelColor(level)).Bold(true).
		Render(fmt.Sprintf("  %s words", wordlist.LevelDisplayName(level))))
	b.WriteString("\n")
	b.WriteString(theme.Muted.Render(fmt.Sprintf(
		"  %d total · %d new · %d learning · %d mastered · avg stage %.1f · journey %d%%",
		st.Total, st.New, st.InProgress, st.Mastered, st.AvgStage, st.JourneyProgress)))
	b.WriteString("\n\n")

	if st.Total > 0 {
		b.WriteString(summary.StageHistogram(st, min(width-4, 64)))
	}
	if s.progress.LevelState(level) == mastery.StateLocked {
		b.WriteString(theme.Hint.Render("  " + lockedHint(s.progress, level)))
	}
	return b.String()
}

// lockedHint tells the learner what opens a locked level.
func lockedHint(p *mastery.Progress, level wordlist.Level) string {
	levels := wordlist.AllLevels()
	for i, lv := range levels {
		if lv == level && i > 0 {
			prev := levels[i-1]
			need := mastery.Target(prev) - p.Count(prev)
			return fmt.Sprintf("Master %d more %s words to unlock %s.",
				need, wordlist.LevelDisplayName(prev), wordlist.LevelDisplayName(level))
		}
	}
	return ""
}

func levelColor(level wordlist.Level) color.Color {
	switch level {
	case wordlist.LevelGold:
		return theme.Gold
	case wordlist.LevelSilver:
		return theme.Silver
	default:
		return theme.Bronze
	}
}
