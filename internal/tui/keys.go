package tui

import "github.com/charmbracelet/bubbles/key"

type KeyMap struct {
	Left     key.Binding
	Right    key.Binding
	Cycle    key.Binding
	Time     key.Binding
	Nickname key.Binding
	Save     key.Binding
	Delete   key.Binding
	Refresh  key.Binding
	Help     key.Binding
	Quit     key.Binding
}

func DefaultKeyMap() KeyMap {
	return KeyMap{
		Left: key.NewBinding(
			key.WithKeys("left", "h"),
			key.WithHelp("←/h", "previous day"),
		),
		Right: key.NewBinding(
			key.WithKeys("right", "l"),
			key.WithHelp("→/l", "next day"),
		),
		Cycle: key.NewBinding(
			key.WithKeys(" ", "enter"),
			key.WithHelp("space", "cycle status"),
		),
		Time: key.NewBinding(
			key.WithKeys("t"),
			key.WithHelp("t", "set time"),
		),
		Nickname: key.NewBinding(
			key.WithKeys("n"),
			key.WithHelp("n", "display name"),
		),
		Save: key.NewBinding(
			key.WithKeys("s"),
			key.WithHelp("s", "publish"),
		),
		Delete: key.NewBinding(
			key.WithKeys("d"),
			key.WithHelp("d", "delete record"),
		),
		Refresh: key.NewBinding(
			key.WithKeys("r"),
			key.WithHelp("r", "refresh"),
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

// ShortHelp implements help.KeyMap
func (k KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Cycle, k.Save, k.Help, k.Quit}
}

// FullHelp implements help.KeyMap
func (k KeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Left, k.Right, k.Cycle, k.Time},
		{k.Nickname, k.Save, k.Delete, k.Refresh},
		{k.Help, k.Quit},
	}
}
