package notes

import "github.com/charmbracelet/bubbles/key"

// KeyMap defines the keybindings of the notes TUI.
type KeyMap struct {
	NextWindow  key.Binding
	Up          key.Binding
	Down        key.Binding
	CloseWindow key.Binding
	Help        key.Binding
	Quit        key.Binding
}

// DefaultKeyMap is the default set of keybindings.
var DefaultKeyMap = KeyMap{
	NextWindow: key.NewBinding(
		key.WithKeys("tab"),
		key.WithHelp("tab", "next window"),
	),
	Up: key.NewBinding(
		key.WithKeys("up", "k"),
		key.WithHelp("↑/k", "up"),
	),
	Down: key.NewBinding(
		key.WithKeys("down", "j"),
		key.WithHelp("↓/j", "down"),
	),
	CloseWindow: key.NewBinding(
		key.WithKeys("x"),
		key.WithHelp("x", "close window"),
	),
	Help: key.NewBinding(
		key.WithKeys("?"),
		key.WithHelp("?", "help"),
	),
	Quit: key.NewBinding(
		key.WithKeys("q", "ctrl+c"),
		key.WithHelp("q", "quit"),
	),
}

// ShortHelp returns keybindings to be shown in the compact help view.
func (k KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.NextWindow, k.Help, k.Quit}
}

// FullHelp returns keybindings for the full help view.
func (k KeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down, k.NextWindow},
		{k.CloseWindow, k.Help, k.Quit},
	}
}
