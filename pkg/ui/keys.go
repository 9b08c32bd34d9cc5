// Package ui provides the Bubble Tea TUI for the trade console.
package ui

import "github.com/charmbracelet/bubbles/key"

// KeyMap defines all keybindings for the TUI.
type KeyMap struct {
	Quit        key.Binding
	Dashboard   key.Binding
	Trading     key.Binding
	Marketplace key.Binding
	Analytics   key.Binding
	Insights    key.Binding
	Up          key.Binding
	Down        key.Binding
	Approve     key.Binding
	Reject      key.Binding
	Filter      key.Binding
	StoreFilter key.Binding
	Role        key.Binding
	ClearErrors key.Binding
	Help        key.Binding
}

// DefaultKeyMap returns the default keybindings.
func DefaultKeyMap() KeyMap {
	return KeyMap{
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
		Dashboard: key.NewBinding(
			key.WithKeys("1"),
			key.WithHelp("1", "dashboard"),
		),
		Trading: key.NewBinding(
			key.WithKeys("2"),
			key.WithHelp("2", "trading"),
		),
		Marketplace: key.NewBinding(
			key.WithKeys("3"),
			key.WithHelp("3", "marketplace"),
		),
		Analytics: key.NewBinding(
			key.WithKeys("4"),
			key.WithHelp("4", "analytics"),
		),
		Insights: key.NewBinding(
			key.WithKeys("5"),
			key.WithHelp("5", "ai insights"),
		),
		Up: key.NewBinding(
			key.WithKeys("up", "k"),
			key.WithHelp("↑/k", "scroll up"),
		),
		Down: key.NewBinding(
			key.WithKeys("down", "j"),
			key.WithHelp("↓/j", "scroll down"),
		),
		Approve: key.NewBinding(
			key.WithKeys("a"),
			key.WithHelp("a", "approve"),
		),
		Reject: key.NewBinding(
			key.WithKeys("r"),
			key.WithHelp("r", "reject"),
		),
		Filter: key.NewBinding(
			key.WithKeys("f"),
			key.WithHelp("f", "filter"),
		),
		StoreFilter: key.NewBinding(
			key.WithKeys("s"),
			key.WithHelp("s", "store filter"),
		),
		Role: key.NewBinding(
			key.WithKeys("o"),
			key.WithHelp("o", "switch role"),
		),
		ClearErrors: key.NewBinding(
			key.WithKeys("e"),
			key.WithHelp("e", "clear errors"),
		),
		Help: key.NewBinding(
			key.WithKeys("?"),
			key.WithHelp("?", "help"),
		),
	}
}

// ShortHelp returns keybindings to be shown in the mini help view.
func (k KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Quit, k.Approve, k.Reject, k.Filter, k.Help}
}

// FullHelp returns keybindings for the expanded help view.
func (k KeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Dashboard, k.Trading, k.Marketplace, k.Analytics, k.Insights},
		{k.Up, k.Down, k.Approve, k.Reject},
		{k.Filter, k.StoreFilter, k.Role, k.ClearErrors, k.Quit},
	}
}
