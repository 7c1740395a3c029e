package state

import "github.com/charmbracelet/bubbles/key"

type keyMap struct {
	Dialog   key.Binding
	Toast    key.Binding
	Banner   key.Binding
	Sheet    key.Binding
	Error    key.Binding
	Yes      key.Binding
	No       key.Binding
	Dismiss  key.Binding
	CloseAll key.Binding
	Quit     key.Binding
}

func defaultKeyMap() keyMap {
	return keyMap{
		Dialog:   key.NewBinding(key.WithKeys("d"), key.WithHelp("d", "dialog")),
		Toast:    key.NewBinding(key.WithKeys("t"), key.WithHelp("t", "toast")),
		Banner:   key.NewBinding(key.WithKeys("b"), key.WithHelp("b", "banner")),
		Sheet:    key.NewBinding(key.WithKeys("s"), key.WithHelp("s", "sheet")),
		Error:    key.NewBinding(key.WithKeys("e"), key.WithHelp("e", "error")),
		Yes:      key.NewBinding(key.WithKeys("y", "Y", "enter"), key.WithHelp("y", "yes")),
		No:       key.NewBinding(key.WithKeys("n", "N"), key.WithHelp("n", "no")),
		Dismiss:  key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "dismiss")),
		CloseAll: key.NewBinding(key.WithKeys("c"), key.WithHelp("c", "close all")),
		Quit:     key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
	}
}
