package home

import (
	"charm.land/lipgloss/v2"

	"github.com/abhisek/vocabdrill/internal/ui/theme"
)

// MascotVariant selects which mascot art to display.
type MascotVariant int

const (
	MascotIdle        MascotVariant = iota
	MascotCelebrating               // every word mastered
	MascotAlert                     // reviews piling up
)

const mascotIdle = `┌───────┐
│ ◉   ◉ │
│   ‿   │
│ a ↔ á │
└───────┘`

const mascotCelebrating = `┌───────┐
│ ★   ★ │
│   ◡   │
│ a ↔ á │
└─╥───╥─┘
  ╚═══╝`

const mascotAlert = `┌───────┐
│ ◉   ◉ │ !
│   ○   │
│ a ↔ á │
└───────┘`

// RenderMascot returns the mascot art for the given variant.
func RenderMascot(variant MascotVariant) string {
	art := mascotIdle
	fg := theme.Primary

	switch variant {
	case MascotCelebrating:
		art = mascotCelebrating
		fg = theme.Gold
	case MascotAlert:
		art = mascotAlert
		fg = theme.Warning
	}

	return lipgloss.NewStyle().
		Foreground(fg).
		Render(art)
}
