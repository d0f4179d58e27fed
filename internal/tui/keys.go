package tui

import "github.com/charmbracelet/bubbles/key"

type keyMap struct {
	Up         key.Binding
	Down       key.Binding
	Next       key.Binding
	MoveUp     key.Binding
	MoveDown   key.Binding
	ToggleDone key.Binding
	Remove     key.Binding
	NextTag    key.Binding
	Copy       key.Binding
	NextView   key.Binding
	PrevView   key.Binding
	Filter     key.Binding
	Clear      key.Binding
	Help       key.Binding
	Quit       key.Binding
}

func defaultKeyMap() keyMap {
	return keyMap{
		Up:         key.NewBinding(key.WithKeys("up"), key.WithHelp("↑", "up")),
		Down:       key.NewBinding(key.WithKeys("down"), key.WithHelp("↓", "down")),
		Next:       key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "next")),
		MoveUp:     key.NewBinding(key.WithKeys("alt+up"), key.WithHelp("alt+↑", "move up")),
		MoveDown:   key.NewBinding(key.WithKeys("alt+down"), key.WithHelp("alt+↓", "move down")),
		ToggleDone: key.NewBinding(key.WithKeys("ctrl+d"), key.WithHelp("ctrl+d", "done")),
		Remove:     key.NewBinding(key.WithKeys("ctrl+x"), key.WithHelp("ctrl+x", "remove")),
		NextTag:    key.NewBinding(key.WithKeys("ctrl+t"), key.WithHelp("ctrl+t", "tag")),
		Copy:       key.NewBinding(key.WithKeys("ctrl+y"), key.WithHelp("ctrl+y", "copy")),
		NextView:   key.NewBinding(key.WithKeys("tab"), key.WithHelp("tab", "view")),
		PrevView:   key.NewBinding(key.WithKeys("shift+tab")),
		Filter: key.NewBinding(
			key.WithKeys("alt+1", "alt+2", "alt+3", "alt+4", "alt+5", "alt+6", "alt+7", "alt+8", "alt+9"),
			key.WithHelp("alt+1-9", "filter"),
		),
		Clear: key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "clear filter")),
		Help:  key.NewBinding(key.WithKeys("f1"), key.WithHelp("f1", "help")),
		Quit:  key.NewBinding(key.WithKeys("ctrl+c"), key.WithHelp("ctrl+c", "quit")),
	}
}

// ShortHelp implements help.KeyMap.
func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Next, k.MoveUp, k.MoveDown, k.ToggleDone, k.Remove, k.NextTag, k.NextView, k.Help, k.Quit}
}

// FullHelp implements help.KeyMap.
func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down, k.Next},
		{k.MoveUp, k.MoveDown, k.ToggleDone, k.Remove},
		{k.NextTag, k.Copy, k.Filter, k.Clear},
		{k.NextView, k.Help, k.Quit},
	}
}
