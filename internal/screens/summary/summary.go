package summary

import (
	"fmt"
	"image/color"
	"strings"

	"charm.land/bubbles/v2/key"
	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/vocabdrill/internal/mastery"
	"github.com/abhisek/vocabdrill/internal/quiz"
	"github.com/abhisek/vocabdrill/internal/router"
	"github.com/abhisek/vocabdrill/internal/screen"
	"github.com/abhisek/vocabdrill/internal/session"
	"github.com/abhisek/vocabdrill/internal/spacedrep"
	"github.com/abhisek/vocabdrill/internal/ui/components"
	"github.com/abhisek/vocabdrill/internal/ui/keys"
	"github.com/abhisek/vocabdrill/internal/ui/layout"
	"github.com/abhisek/vocabdrill/internal/ui/theme"
	"github.com/abhisek/vocabdrill/internal/wordlist"
)

var playAgainKey = key.NewBinding(key.WithKeys("p"), key.WithHelp("P", "Play again"))

// SummaryScreen displays the result of a finished round.
type SummaryScreen struct {
	env     *screen.Env
	summary *session.RoundSummary
	rank    int
	levels  *mastery.Progress
	again   func() screen.Screen
}

var _ screen.Screen = (*SummaryScreen)(nil)
var _ screen.KeyHintProvider = (*SummaryScreen)(nil)
var _ screen.HeaderProvider = (*SummaryScreen)(nil)
var _ screen.EscapeHandler = (*SummaryScreen)(nil)

// New creates a SummaryScreen. rank is the high-score rank from
// session.InsertHighScore (-1 when the round did not place). again builds
// the screen for another round; nil hides that option.
func New(env *screen.Env, summary *session.RoundSummary, rank int, levels *mastery.Progress, again func() screen.Screen) *SummaryScreen {
	return &SummaryScreen{env: env, summary: summary, rank: rank, levels: levels, again: again}
}

func (s *SummaryScreen) Init() tea.Cmd {
	return nil
}

func (s *SummaryScreen) Title() string {
	return "Round Summary"
}

func (s *SummaryScreen) HandlesEscape() bool { return true }

func (s *SummaryScreen) HeaderInfo() layout.HeaderInfo {
	info := layout.HeaderInfo{
		Level:    wordlist.LevelDisplayName(s.summary.Level),
		Mastered: s.summary.Pool.Mastered,
	}
	if s.env != nil && s.env.Language != nil {
		info.Language = s.env.Language.Name
	}
	return info
}

func (s *SummaryScreen) KeyHints() []layout.KeyHint {
	hints := []layout.KeyHint{{Key: "Enter", Description: "Home"}}
	if s.again != nil {
		hints = append(hints, keys.Hints(playAgainKey)...)
	}
	return hints
}

func (s *SummaryScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	kmsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return s, nil
	}
	switch {
	case key.Matches(kmsg, keys.Default.Select), key.Matches(kmsg, keys.Default.Back):
		return s, func() tea.Msg { return router.PopToRootMsg{} }
	case key.Matches(kmsg, playAgainKey) && s.again != nil:
		next := s.again()
		return s, func() tea.Msg { return router.ReplaceScreenMsg{Screen: next} }
	}
	return s, nil
}

func (s *SummaryScreen) View(width, height int) string {
	sum := s.summary
	if sum == nil {
		return ""
	}
	sc := sum.Score

	var b strings.Builder

	b.WriteString(layout.Centered(width, theme.Title, "Round complete!"))
	b.WriteString("\n")
	b.WriteString(layout.Centered(width, lipgloss.NewStyle().Foreground(bandColor(sc.TotalScore)).Bold(true), sum.Band))
	b.WriteString("\n\n")

	b.WriteString(layout.Centered(width, lipgloss.NewStyle().Foreground(theme.Text).Bold(true),
		fmt.Sprintf("Score  %d / 1000", sc.TotalScore)))
	b.WriteString("\n")
	if line := s.rankLine(); line != "" {
		b.WriteString(layout.Centered(width, lipgloss.NewStyle().Foreground(theme.RankColor(s.rank)).Bold(true), line))
		b.WriteString("\n")
	}
	b.WriteString("\n")

	mins := int(sum.Duration.Minutes())
	secs := int(sum.Duration.Seconds()) % 60
	b.WriteString(layout.Centered(width, theme.Body,
		fmt.Sprintf("Words: %d    Correct: %d    Accuracy: %d%%    Avg: %.1fs    Time: %d:%02d",
			sc.Answered, sc.Correct, sc.Accuracy, sc.AvgResponseTime, mins, secs)))
	b.WriteString("\n")
	b.WriteString(layout.Centered(width, theme.Muted,
		fmt.Sprintf("accuracy %.0f/600 · speed %.0f/200 · pace %.0f/200",
			sc.AccuracyScore, sc.SpeedScore, sc.TimeScore)))
	b.WriteString("\n\n")

	if len(sum.Mastered) > 0 {
		b.WriteString(layout.Centered(width, lipgloss.NewStyle().Foreground(theme.Accent),
			"★ Mastered: "+strings.Join(sum.Mastered, ", ")))
		b.WriteString("\n")
	}
	if len(sum.Downgraded) > 0 {
		b.WriteString(layout.Centered(width, lipgloss.NewStyle().Foreground(theme.Warning),
			"Needs practice: "+strings.Join(sum.Downgraded, ", ")))
		b.WriteString("\n")
	}

	b.WriteString(layout.Centered(width, theme.Muted, "Journey"))
	b.WriteString("\n")
	b.WriteString(layout.Divider(width, 60))
	b.WriteString("\n")
	barWidth := min(width-8, 60)
	b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center,
		components.NewProgressBar(
			fmt.Sprintf("%-8s", wordlist.LevelDisplayName(sum.Level)),
			float64(sum.Pool.JourneyProgress)/100, true, barWidth).View()))
	b.WriteString("\n")
	if s.levels != nil {
		bar := components.NewProgressBar(
			fmt.Sprintf("Mastered %d/%d", s.levels.Count(sum.Level), mastery.Target(sum.Level)),
			s.levels.Fraction(sum.Level), false, barWidth)
		bar.Fill = theme.Accent
		b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, bar.View()))
		b.WriteString("\n")
	}
	b.WriteString("\n")
	b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, StageHistogram(sum.Pool, min(width-8, 60))))

	return b.String()
}

func (s *SummaryScreen) rankLine() string {
	switch {
	case s.rank == 0:
		return "🏆 New best score!"
	case session.IsPodium(s.rank):
		return fmt.Sprintf("🏅 #%d on the podium!", s.rank+1)
	case s.rank > 0:
		return fmt.Sprintf("High score #%d", s.rank+1)
	}
	return ""
}

// StageHistogram renders one bar per stage showing how many pool words sit
// there.
func StageHistogram(st session.Stats, width int) string {
	peak := 0
	for _, n := range st.StageDistribution[spacedrep.MinStage:] {
		peak = max(peak, n)
	}

	labelWidth := 16
	barWidth := max(4, width-labelWidth-6)

	var b strings.Builder
	for stage := spacedrep.MinStage; stage <= spacedrep.MaxStage; stage++ {
		n := st.StageDistribution[stage]
		filled := 0
		if peak > 0 {
			filled = n * barWidth / peak
		}
		label := theme.Muted.Render(fmt.Sprintf("%d %-13s", stage, quiz.StageName(stage)))
		bar := lipgloss.NewStyle().Foreground(theme.StageColor(stage)).Render(strings.Repeat("█", filled))
		b.WriteString(fmt.Sprintf("%s %s %s\n", label, bar, theme.Body.Render(fmt.Sprint(n))))
	}
	return b.String()
}

func bandColor(score int) color.Color {
	switch {
	case score >= 800:
		return theme.Accent
	case score >= 600:
		return theme.Success
	case score >= 400:
		return theme.Secondary
	default:
		return theme.TextDim
	}
}
