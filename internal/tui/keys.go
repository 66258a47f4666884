package tui

import "github.com/charmbracelet/bubbles/key"

// KeyMap defines the game's control keys. Everything else is typed input.
type KeyMap struct {
	Quit      key.Binding
	Retry     key.Binding
	Mute      key.Binding
	Backspace key.Binding
}

// DefaultKeyMap returns the default key bindings.
func DefaultKeyMap() KeyMap {
	return KeyMap{
		Quit: key.NewBinding(
			key.WithKeys("ctrl+c", "esc"),
			key.WithHelp("esc", "quit"),
		),
		Retry: key.NewBinding(
			key.WithKeys("enter", "r"),
			key.WithHelp("enter", "try again"),
		),
		Mute: key.NewBinding(
			key.WithKeys("tab"),
			key.WithHelp("tab", "mute"),
		),
		Backspace: key.NewBinding(
			key.WithKeys("backspace", "ctrl+h"),
			key.WithHelp("backspace", "erase"),
		),
	}
}
