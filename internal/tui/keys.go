package tui

import "github.com/charmbracelet/bubbles/key"

type keyMap struct {
	submit key.Binding
	next   key.Binding
	prev   key.Binding
	cancel key.Binding
	quit   key.Binding
}

var keys = keyMap{
	submit: key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "sign in")),
	next:   key.NewBinding(key.WithKeys("tab", "down"), key.WithHelp("tab", "next field")),
	prev:   key.NewBinding(key.WithKeys("shift+tab", "up"), key.WithHelp("shift+tab", "previous field")),
	cancel: key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "cancel")),
	quit:   key.NewBinding(key.WithKeys("ctrl+c")),
}

func helpLine(bindings ...key.Binding) string {
	parts := make([]string, 0, len(bindings))
	for _, b := range bindings {
		h := b.Help()
		parts = append(parts, h.Key+": "+h.Desc)
	}
	return joinHelp(parts)
}
