// Package keys defines the key bindings shared by the drill screens.
package keys

import (
	"fmt"

	"charm.land/bubbles/v2/key"

	"github.com/abhisek/vocabdrill/internal/ui/layout"
)

// Map holds every binding the screens react to.
type Map struct {
	Up      key.Binding
	Down    key.Binding
	Select  key.Binding
	Back    key.Binding
	Quit    key.Binding
	Replay  key.Binding
	Yes     key.Binding
	No      key.Binding
	Options [4]key.Binding
}

// Default is the key map used by all screens.
var Default = Map{
	Up:     key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("↑/k", "up")),
	Down:   key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("↓/j", "down")),
	Select: key.NewBinding(key.WithKeys("enter"), key.WithHelp("Enter", "select")),
	Back:   key.NewBinding(key.WithKeys("esc"), key.WithHelp("Esc", "back")),
	Quit:   key.NewBinding(key.WithKeys("ctrl+c"), key.WithHelp("Ctrl+C", "quit")),
	Replay: key.NewBinding(key.WithKeys("r"), key.WithHelp("R", "replay audio")),
	Yes:    key.NewBinding(key.WithKeys("y", "Y"), key.WithHelp("Y", "yes")),
	No:     key.NewBinding(key.WithKeys("n", "N", "esc"), key.WithHelp("N", "no")),
	Options: [4]key.Binding{
		key.NewBinding(key.WithKeys("1", "a"), key.WithHelp("1", "option 1")),
		key.NewBinding(key.WithKeys("2", "b"), key.WithHelp("2", "option 2")),
		key.NewBinding(key.WithKeys("3", "c"), key.WithHelp("3", "option 3")),
		key.NewBinding(key.WithKeys("4", "d"), key.WithHelp("4", "option 4")),
	},
}

// OptionIndex returns the zero-based option a key picks, or -1.
func (m Map) OptionIndex(msg fmt.Stringer) int {
	for i, b := range m.Options {
		if key.Matches(msg, b) {
			return i
		}
	}
	return -1
}

// Hints converts bindings into footer hints.
func Hints(bindings ...key.Binding) []layout.KeyHint {
	out := make([]layout.KeyHint, 0, len(bindings))
	for _, b := range bindings {
		h := b.Help()
		out = append(out, layout.KeyHint{Key: h.Key, Description: h.Desc})
	}
	return out
}
