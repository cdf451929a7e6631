package tui

import "github.com/charmbracelet/bubbles/key"

// KeyMap defines all keyboard shortcuts.
type KeyMap struct {
	// Focus
	NextBand key.Binding
	PrevBand key.Binding

	// Actions
	Drill  key.Binding
	Back   key.Binding
	Finish key.Binding

	// Application
	Help key.Binding
	Quit key.Binding
}

// DefaultKeyMap returns the default key bindings.
func DefaultKeyMap() KeyMap {
	return KeyMap{
		NextBand: key.NewBinding(
			key.WithKeys("tab", "right", "l"),
			key.WithHelp("→/l", "next band"),
		),
		PrevBand: key.NewBinding(
			key.WithKeys("shift+tab", "left", "h"),
			key.WithHelp("←/h", "previous band"),
		),
		Drill: key.NewBinding(
			key.WithKeys("enter", " "),
			key.WithHelp("enter", "drill in"),
		),
		Back: key.NewBinding(
			key.WithKeys("backspace", "esc", "b"),
			key.WithHelp("esc/b", "back"),
		),
		Finish: key.NewBinding(
			key.WithKeys("f"),
			key.WithHelp("f", "skip animation"),
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
}

// ShortHelp implements help.KeyMap.
func (k KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.NextBand, k.Drill, k.Back, k.Help, k.Quit}
}

// FullHelp implements help.KeyMap.
func (k KeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.NextBand, k.PrevBand},
		{k.Drill, k.Back, k.Finish},
		{k.Help, k.Quit},
	}
}
