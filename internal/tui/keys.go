package tui

import "github.com/charmbracelet/bubbles/v2/key"

// KeyMap defines the key bindings of the parameter form
type KeyMap struct {
	NextScreen key.Binding
	PrevScreen key.Binding
	Up         key.Binding
	Down       key.Binding

	Edit     key.Binding
	Cancel   key.Binding
	Toggle   key.Binding
	Prev     key.Binding
	Next     key.Binding
	Reset    key.Binding
	ResetAll key.Binding

	Save   key.Binding
	Import key.Binding
	Help   key.Binding
	Quit   key.Binding
}

// DefaultKeyMap returns the default key bindings
func DefaultKeyMap() KeyMap {
	return KeyMap{
		NextScreen: key.NewBinding(
			key.WithKeys("tab"),
			key.WithHelp("tab", "next screen"),
		),
		PrevScreen: key.NewBinding(
			key.WithKeys("shift+tab"),
			key.WithHelp("shift+tab", "previous screen"),
		),
		Up: key.NewBinding(
			key.WithKeys("up", "k"),
			key.WithHelp("↑/k", "up"),
		),
		Down: key.NewBinding(
			key.WithKeys("down", "j"),
			key.WithHelp("↓/j", "down"),
		),
		Edit: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "edit / apply"),
		),
		Cancel: key.NewBinding(
			key.WithKeys("esc"),
			key.WithHelp("esc", "cancel edit"),
		),
		Toggle: key.NewBinding(
			key.WithKeys("space", " "),
			key.WithHelp("space", "toggle"),
		),
		Prev: key.NewBinding(
			key.WithKeys("left", "h", "-"),
			key.WithHelp("←/h/-", "previous / decrease"),
		),
		Next: key.NewBinding(
			key.WithKeys("right", "l", "+"),
			key.WithHelp("→/l/+", "next / increase"),
		),
		Reset: key.NewBinding(
			key.WithKeys("r"),
			key.WithHelp("r", "reset to default"),
		),
		ResetAll: key.NewBinding(
			key.WithKeys("R"),
			key.WithHelp("R", "reset all"),
		),
		Save: key.NewBinding(
			key.WithKeys("ctrl+s"),
			key.WithHelp("ctrl+s", "save"),
		),
		Import: key.NewBinding(
			key.WithKeys("ctrl+o"),
			key.WithHelp("ctrl+o", "load file"),
		),
		Help: key.NewBinding(
			key.WithKeys("?"),
			key.WithHelp("?", "keys"),
		),
		Quit: key.NewBinding(
			key.WithKeys("ctrl+c", "q"),
			key.WithHelp("q", "quit"),
		),
	}
}

// HelpGroups returns the bindings grouped for the help dialog.
func (k KeyMap) HelpGroups() [][]key.Binding {
	return [][]key.Binding{
		{k.NextScreen, k.PrevScreen, k.Up, k.Down},
		{k.Edit, k.Cancel, k.Toggle, k.Prev, k.Next, k.Reset, k.ResetAll},
		{k.Save, k.Import, k.Help, k.Quit},
	}
}
