package ui

import "github.com/charmbracelet/bubbles/key"

// keyMap defines the [key.Binding] mapping for the TUI.
type keyMap struct {
	up      key.Binding
	down    key.Binding
	section key.Binding
	enter   key.Binding
	back    key.Binding
	search  key.Binding
	play    key.Binding
	save    key.Binding
	follow  key.Binding
	quit    key.Binding
}

func newKeyMap() keyMap {
	return keyMap{
		up:      key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("↑/k", "up")),
		down:    key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("↓/j", "down")),
		section: key.NewBinding(key.WithKeys("tab"), key.WithHelp("tab", "next section")),
		enter:   key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "select")),
		back:    key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "back")),
		search:  key.NewBinding(key.WithKeys("/"), key.WithHelp("/", "search")),
		play:    key.NewBinding(key.WithKeys("p"), key.WithHelp("p", "play/stop preview")),
		save:    key.NewBinding(key.WithKeys("s"), key.WithHelp("s", "save/remove")),
		follow:  key.NewBinding(key.WithKeys("f"), key.WithHelp("f", "follow/unfollow")),
		quit:    key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
	}
}

func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.quit}
}

func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.up, k.down, k.section, k.enter},
		{k.back, k.search, k.play},
		{k.save, k.follow, k.quit},
	}
}
