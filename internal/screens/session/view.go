package session

import (
	"fmt"
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/abhisek/vocabdrill/internal/quiz"
	"github.com/abhisek/vocabdrill/internal/spacedrep"
	"github.com/abhisek/vocabdrill/internal/ui/components"
	"github.com/abhisek/vocabdrill/internal/ui/layout"
	"github.com/abhisek/vocabdrill/internal/ui/theme"
)

// renderQuestionView renders the active question display.
func (s *SessionScreen) renderQuestionView(width int) string {
	state := s.state
	q := state.CurrentQuiz
	if q == nil {
		return layout.Centered(width, theme.Muted, "\n\n  Preparing next word...")
	}

	var b strings.Builder
	b.WriteString(s.renderInfoLine(width, q))
	b.WriteString("\n")
	b.WriteString(lipgloss.NewStyle().Foreground(theme.Border).Render(strings.Repeat("─", max(0, width-4))))
	b.WriteString("\n\n")

	prompt := "What does this mean?"
	if q.AudioMode {
		prompt = "Listen, then pick the option that means:"
	}
	b.WriteString(layout.Centered(width, theme.Muted, prompt))
	b.WriteString("\n\n")
	b.WriteString(layout.Centered(width, lipgloss.NewStyle().Foreground(theme.Text).Bold(true), q.Question))
	b.WriteString("\n")
	if p := q.Word.Pronunciation; p != "" {
		b.WriteString(layout.Centered(width, theme.Hint, "/"+p+"/"))
		b.WriteString("\n")
	}
	b.WriteString("\n")

	if q.Timed() {
		b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center,
			components.Countdown(s.remaining, q.TimeLimit, min(width-8, 50))))
		b.WriteString("\n\n")
	}

	b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, s.choices.View()))

	if q.AudioMode {
		b.WriteString("\n")
		b.WriteString(layout.Centered(width, lipgloss.NewStyle().Foreground(theme.Accent), s.audioCaption(q)))
	}
	return b.String()
}

// audioCaption shows the option being played, or a replay hint.
func (s *SessionScreen) audioCaption(q *quiz.Quiz) string {
	if p := s.choices.Playing; p >= 0 && p < len(q.AudioSequence) {
		return fmt.Sprintf("♪ %s: %q", quiz.OptionLabel(p), q.AudioSequence[p])
	}
	return "Press R to hear the options again"
}

func (s *SessionScreen) renderInfoLine(width int, q *quiz.Quiz) string {
	state := s.state
	stage := lipgloss.NewStyle().
		Foreground(theme.StageColor(q.Stage)).
		Bold(true).
		Render(fmt.Sprintf("  Stage %d · %s", q.Stage, q.StageName))

	right := theme.Muted.Render(fmt.Sprintf("Word %d/%d  %s %d",
		state.Index+1,
		state.Plan.Len(),
		lipgloss.NewStyle().Foreground(theme.Success).Render("✓"),
		state.TotalCorrect,
	))

	pad := width - lipgloss.Width(stage) - lipgloss.Width(right) - 4
	if pad <= 0 {
		return stage
	}
	return stage + strings.Repeat(" ", pad) + right
}

// renderFeedback shows the outcome of the last answer and any stage change.
func (s *SessionScreen) renderFeedback(width int) string {
	res := s.state.LastResult
	if res == nil {
		return ""
	}

	var b strings.Builder
	b.WriteString("\n\n")

	switch {
	case res.Correct:
		b.WriteString(layout.Centered(width, theme.Correct, "Correct!"))
	case res.TimedOut:
		b.WriteString(layout.Centered(width, theme.Incorrect, "Time's up!"))
	default:
		b.WriteString(layout.Centered(width, theme.Incorrect, "Not quite"))
	}
	b.WriteString("\n\n")

	b.WriteString(layout.Centered(width, lipgloss.NewStyle().Foreground(theme.Text),
		fmt.Sprintf("%s = %s", res.Word.Source, res.Word.Translation)))
	b.WriteString("\n\n")
	b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, s.choices.View()))
	b.WriteString("\n")

	if tr := res.Transition; tr != nil {
		b.WriteString(renderTransition(width, tr))
		b.WriteString("\n\n")
	} else {
		b.WriteString(layout.Centered(width, theme.Muted,
			fmt.Sprintf("Next time: stage %d · %s", res.Progress.Stage, quiz.StageName(res.Progress.Stage))))
		b.WriteString("\n\n")
	}

	b.WriteString(layout.Centered(width, theme.Muted, "Press any key to continue..."))
	return b.String()
}

func renderTransition(width int, tr *spacedrep.Transition) string {
	switch {
	case tr.IsMastery():
		return layout.Centered(width, lipgloss.NewStyle().Foreground(theme.Accent).Bold(true),
			fmt.Sprintf("★ %q mastered! ★", tr.Key))
	case tr.IsDowngrade():
		return layout.Centered(width, lipgloss.NewStyle().Foreground(theme.Warning).Bold(true),
			fmt.Sprintf("Back to stage %d · %s", tr.To, quiz.StageName(tr.To)))
	}
	return ""
}

// renderQuitConfirm renders the quit confirmation dialog.
func renderQuitConfirm(width int) string {
	var b strings.Builder
	b.WriteString("\n\n\n")
	b.WriteString(layout.Centered(width, lipgloss.NewStyle().Foreground(theme.Text).Bold(true), "End round early?"))
	b.WriteString("\n")
	b.WriteString(layout.Centered(width, theme.Muted, "Your answers so far will be saved."))
	b.WriteString("\n\n")
	b.WriteString(layout.Centered(width, lipgloss.NewStyle().Foreground(theme.Success), "[Y] Yes, end round"))
	b.WriteString("\n")
	b.WriteString(layout.Centered(width, lipgloss.NewStyle().Foreground(theme.Primary), "[N] No, keep going"))
	return b.String()
}

// renderLoading renders the loading state.
func renderLoading(width int) string {
	return layout.Centered(width, theme.Muted, "\n\n\n  Preparing your round...")
}

// renderError renders an error message.
func renderError(width int, errMsg string) string {
	return layout.Centered(width, lipgloss.NewStyle().Foreground(theme.Error),
		fmt.Sprintf("\n\n\n  Error: %s\n\n  Press any key to go back.", errMsg))
}
