package tui

import "github.com/charmbracelet/bubbles/key"

type keyMap struct {
	Prev  key.Binding
	Next  key.Binding
	Click key.Binding
	Cycle key.Binding
	Style key.Binding
	Copy  key.Binding
	Quit  key.Binding
}

var keys = keyMap{
	Prev:  key.NewBinding(key.WithKeys("left", "h"), key.WithHelp("←", "previous page")),
	Next:  key.NewBinding(key.WithKeys("right", "l"), key.WithHelp("→", "next page")),
	Click: key.NewBinding(key.WithKeys(" ", "enter"), key.WithHelp("space", "hold page")),
	Cycle: key.NewBinding(key.WithKeys("tab"), key.WithHelp("tab", "next style")),
	Style: key.NewBinding(key.WithKeys("1", "2", "3", "4", "5", "6"), key.WithHelp("1-6", "style")),
	Copy:  key.NewBinding(key.WithKeys("c"), key.WithHelp("c", "copy")),
	Quit:  key.NewBinding(key.WithKeys("q", "esc", "ctrl+c"), key.WithHelp("q", "quit")),
}

func (k keyMap) help() []key.Binding {
	return []key.Binding{k.Prev, k.Next, k.Click, k.Cycle, k.Style, k.Copy, k.Quit}
}
