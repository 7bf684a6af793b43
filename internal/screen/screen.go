package screen

import (
	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/vocabdrill/internal/ui/layout"
)

// Screen is one page of the drill application.
type Screen interface {
	// Init returns an initial command when the screen is first created.
	Init() tea.Cmd

	// Update handles messages and returns updated screen + command.
	Update(msg tea.Msg) (Screen, tea.Cmd)

	// View renders the screen content (excluding header/footer).
	View(width, height int) string

	// Title returns the screen name for the header.
	Title() string
}

// KeyHintProvider is an optional interface that screens can implement
// to provide custom footer key hints.
type KeyHintProvider interface {
	KeyHints() []layout.KeyHint
}

// HeaderProvider is an optional interface for screens that show learner
// status in the header.
type HeaderProvider interface {
	HeaderInfo() layout.HeaderInfo
}

// EscapeHandler is implemented by screens that handle Esc themselves
// instead of letting the app pop them.
type EscapeHandler interface {
	HandlesEscape() bool
}
