package components

import (
	"fmt"
	"strings"
	"time"

	"charm.land/lipgloss/v2"

	"github.com/abhisek/vocabdrill/internal/ui/theme"
)

// Choices renders the numbered options of a question.
type Choices struct {
	Options  []string
	Selected int

	// Playing is the option currently announced by audio playback, or -1.
	Playing int

	// Reveal marks Correct in green and Chosen, when different, in red.
	Reveal  bool
	Correct int
	Chosen  int
}

// NewChoices creates an unrevealed option list with the first option
// selected.
func NewChoices(options []string) Choices {
	return Choices{Options: options, Playing: -1, Chosen: -1}
}

// Move shifts the selection by delta, staying in range.
func (c Choices) Move(delta int) Choices {
	c.Selected = max(0, min(len(c.Options)-1, c.Selected+delta))
	return c
}

// View renders one line per option.
func (c Choices) View() string {
	var b strings.Builder
	for i, opt := range c.Options {
		prefix := "  "
		if i == c.Selected && !c.Reveal {
			prefix = "▸ "
		}
		if i == c.Playing {
			prefix = "♪ "
		}
		line := fmt.Sprintf("%s%d)  %s", prefix, i+1, opt)

		var style lipgloss.Style
		switch {
		case c.Reveal && i == c.Correct:
			style = theme.Correct
		case c.Reveal && i == c.Chosen:
			style = theme.Incorrect
		case c.Reveal:
			style = theme.Muted
		case i == c.Playing:
			style = lipgloss.NewStyle().Foreground(theme.Accent).Bold(true)
		case i == c.Selected:
			style = theme.Selected
		default:
			style = theme.Unselected
		}
		b.WriteString(style.Render(line) + "\n")
	}
	return b.String()
}

// Countdown renders the remaining answer time as a draining bar.
func Countdown(remaining, total time.Duration, width int) string {
	if total <= 0 {
		return ""
	}
	remaining = max(0, remaining)
	frac := float64(remaining) / float64(total)

	bar := NewProgressBar("", frac, false, width-8)
	switch {
	case frac <= 0.2:
		bar.Fill = theme.Error
	case frac <= 0.5:
		bar.Fill = theme.Warning
	default:
		bar.Fill = theme.Success
	}
	secs := lipgloss.NewStyle().Foreground(theme.Text).Bold(true).
		Render(fmt.Sprintf(" %4.1fs", remaining.Seconds()))
	return bar.View() + secs
}
