package main

import "github.com/charmbracelet/bubbles/key"

type homeKeyMap struct {
	Up, Down key.Binding
	Open     key.Binding
	New      key.Binding
	Delete   key.Binding
	Quit     key.Binding
}

func defaultHomeKeyMap() homeKeyMap {
	return homeKeyMap{
		Up:     key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("↑/k", "up")),
		Down:   key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("↓/j", "down")),
		Open:   key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "open")),
		New:    key.NewBinding(key.WithKeys("n"), key.WithHelp("n", "new")),
		Delete: key.NewBinding(key.WithKeys("d"), key.WithHelp("d", "delete")),
		Quit:   key.NewBinding(key.WithKeys("q", "ctrl+q", "ctrl+c"), key.WithHelp("q", "quit")),
	}
}

// docKeyMap holds the document screen bindings the focused field does not
// consume. ctrl+c stays with the field as copy.
type docKeyMap struct {
	Back      key.Binding
	CloseTab  key.Binding
	Transform key.Binding
	Preview   key.Binding
	MoveUp    key.Binding
	MoveDown  key.Binding
	Quit      key.Binding
}

func defaultDocKeyMap() docKeyMap {
	return docKeyMap{
		Back:      key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "documents")),
		CloseTab:  key.NewBinding(key.WithKeys("ctrl+w"), key.WithHelp("ctrl+w", "close")),
		Transform: key.NewBinding(key.WithKeys("ctrl+k"), key.WithHelp("ctrl+k", "turn into")),
		Preview:   key.NewBinding(key.WithKeys("ctrl+p"), key.WithHelp("ctrl+p", "preview")),
		MoveUp:    key.NewBinding(key.WithKeys("alt+up", "ctrl+up"), key.WithHelp("alt+↑", "move block up")),
		MoveDown:  key.NewBinding(key.WithKeys("alt+down", "ctrl+down"), key.WithHelp("alt+↓", "move block down")),
		Quit:      key.NewBinding(key.WithKeys("ctrl+q"), key.WithHelp("ctrl+q", "quit")),
	}
}
