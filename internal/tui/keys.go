package tui

import "github.com/charmbracelet/bubbles/key"

type keyMap struct {
	Next key.Binding
	Prev key.Binding
	Back key.Binding
	Quit key.Binding
}

var keys = keyMap{
	Next: key.NewBinding(
		key.WithKeys("enter", "tab"),
		key.WithHelp("enter", "next"),
	),
	Prev: key.NewBinding(
		key.WithKeys("shift+tab"),
		key.WithHelp("shift+tab", "back"),
	),
	Back: key.NewBinding(
		key.WithKeys("esc"),
		key.WithHelp("esc", "cancel"),
	),
	Quit: key.NewBinding(
		key.WithKeys("ctrl+c"),
		key.WithHelp("ctrl+c", "quit"),
	),
}

func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Next, k.Prev, k.Back}
}

func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Next, k.Prev},
		{k.Back, k.Quit},
	}
}
