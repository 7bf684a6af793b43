package home

import (
	"fmt"
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/abhisek/vocabdrill/internal/ui/theme"
	"github.com/abhisek/vocabdrill/internal/wordlist"
)

const titleFull = `╦  ╦╔═╗╔═╗╔═╗╔╗   ╔╦╗╦═╗╦╦  ╦
╚╗╔╝║ ║║  ╠═╣╠╩╗   ║║╠╦╝║║  ║
 ╚╝ ╚═╝╚═╝╩ ╩╚═╝  ═╩╝╩╚═╩╩═╝╩═╝`

const titleCompact = "V O C A B · D R I L L"

// contentWidth returns the uniform inner width used for all sections.
func contentWidth(frameWidth int) int {
	// cabinet border (2) + inner padding (4)
	return max(20, min(frameWidth-6, 60))
}

func renderTitle(language string, cw int, compact bool) string {
	style := lipgloss.NewStyle().Foreground(theme.Gold).Bold(true)
	title := titleFull
	if compact {
		title = titleCompact
	}
	sub := lipgloss.NewStyle().Foreground(theme.Secondary).Render(language + " vocabulary")
	return lipgloss.NewStyle().
		Width(cw).
		Align(lipgloss.Center).
		Render(style.Render(title) + "\n" + sub)
}

// renderStatsBar renders the dashboard in a double-bordered box.
func renderStatsBar(d Dashboard, cw int, compact bool) string {
	masteredStyle := lipgloss.NewStyle().Foreground(theme.Gold).Bold(true)
	levelStyle := lipgloss.NewStyle().Foreground(theme.Secondary).Bold(true)
	dueStyle := lipgloss.NewStyle().Foreground(theme.Warning).Bold(true)
	dimStyle := lipgloss.NewStyle().Foreground(theme.TextDim)

	level := "-"
	if d.Level != "" {
		level = wordlist.LevelDisplayName(d.Level)
	}
	best := dimStyle.Render("no scores yet")
	if d.HasBest {
		best = masteredStyle.Render(fmt.Sprintf("best %d", d.BestScore))
	}

	var stats string
	if compact {
		stats = fmt.Sprintf("%s %s %s",
			masteredStyle.Render(fmt.Sprintf("★%d", d.Mastered)),
			levelStyle.Render(level),
			dueText(d.Due, true, dueStyle, dimStyle),
		)
	} else {
		stats = fmt.Sprintf("%s  %s  %s\n%s",
			masteredStyle.Render(fmt.Sprintf("★ %d/%d MASTERED", d.Mastered, d.Total)),
			levelStyle.Render(strings.ToUpper(level)),
			dueText(d.Due, false, dueStyle, dimStyle),
			best,
		)
	}

	return lipgloss.NewStyle().
		Border(lipgloss.DoubleBorder()).
		BorderForeground(theme.Secondary).
		Width(cw - 2).
		Align(lipgloss.Center).
		Padding(0, 1).
		Render(stats)
}

func dueText(due int, compact bool, active, dim lipgloss.Style) string {
	if due == 0 {
		if compact {
			return dim.Render("⟳0")
		}
		return dim.Render("⟳ NONE DUE")
	}
	if compact {
		return active.Render(fmt.Sprintf("⟳%d", due))
	}
	return active.Render(fmt.Sprintf("⟳ %d DUE", due))
}

const buttonWidth = 22

// renderMenu renders each menu item as a fixed-width button.
func renderMenu(items []string, selected int, cw int) string {
	selectedBtn := lipgloss.NewStyle().
		Width(buttonWidth).
		Align(lipgloss.Center).
		Bold(true).
		Foreground(theme.BgDark).
		Background(theme.Gold).
		Border(lipgloss.RoundedBorder()).
		BorderForeground(theme.Gold).
		Padding(0, 1)

	normalBtn := lipgloss.NewStyle().
		Width(buttonWidth).
		Align(lipgloss.Center).
		Foreground(theme.Text).
		Border(lipgloss.RoundedBorder()).
		BorderForeground(theme.Border).
		Padding(0, 1)

	var buttons []string
	for i, label := range items {
		if i == selected {
			buttons = append(buttons, selectedBtn.Render("▸ "+label))
		} else {
			buttons = append(buttons, normalBtn.Render(label))
		}
	}

	return lipgloss.NewStyle().
		Width(cw).
		Align(lipgloss.Center).
		Render(strings.Join(buttons, "\n"))
}

// renderMenuCompact renders menu items as plain lines for small terminals
// where bordered buttons would overflow.
func renderMenuCompact(items []string, selected int, cw int) string {
	var lines []string
	for i, label := range items {
		if i == selected {
			lines = append(lines, lipgloss.NewStyle().
				Foreground(theme.BgDark).
				Background(theme.Gold).
				Bold(true).
				Render(" ▸ "+label+" "))
		} else {
			lines = append(lines, lipgloss.NewStyle().
				Foreground(theme.Text).
				Render("   "+label))
		}
	}

	return lipgloss.NewStyle().
		Width(cw).
		Align(lipgloss.Center).
		Render(strings.Join(lines, "\n"))
}

func renderMascotBox(variant MascotVariant, cw int) string {
	return lipgloss.NewStyle().
		Width(cw).
		Align(lipgloss.Center).
		Render(RenderMascot(variant))
}

// renderCabinetFrame wraps content in a double-border frame centered in
// the given area.
func renderCabinetFrame(content string, width, height int) string {
	return lipgloss.NewStyle().
		Border(lipgloss.DoubleBorder()).
		BorderForeground(theme.Primary).
		Width(width - 2).
		Height(height - 2).
		Align(lipgloss.Center, lipgloss.Center).
		Render(content)
}
