package tui

import "github.com/charmbracelet/bubbles/key"

// KeyMap defines the practice screen key bindings with built-in help text.
type KeyMap struct {
	Key       key.Binding
	Hint      key.Binding
	Reset     key.Binding
	Quit      key.Binding
	ForceQuit key.Binding
}

// DefaultKeyMap returns the default key bindings. The straight key is
// emulated: space toggles key-down and key-up, so press duration is the time
// between the two taps.
func DefaultKeyMap() KeyMap {
	return KeyMap{
		Key: key.NewBinding(
			key.WithKeys(" "),
			key.WithHelp("space", "key down/up"),
		),
		Hint: key.NewBinding(
			key.WithKeys("h"),
			key.WithHelp("h", "hint"),
		),
		Reset: key.NewBinding(
			key.WithKeys("r"),
			key.WithHelp("r", "reset attempt"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q"),
			key.WithHelp("q", "quit"),
		),
		ForceQuit: key.NewBinding(
			key.WithKeys("ctrl+c"),
			key.WithHelp("ctrl+c", "force quit"),
		),
	}
}

// ShortHelp implements help.KeyMap.
func (k KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Key, k.Hint, k.Reset, k.Quit}
}

// FullHelp implements help.KeyMap.
func (k KeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Key, k.Hint, k.Reset},
		{k.Quit, k.ForceQuit},
	}
}
