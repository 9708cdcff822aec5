// Package keys contains keybinding definitions.
package keys

import "github.com/charmbracelet/bubbles/key"

// AppKeys are the bindings of the main screen.
type AppKeys struct {
	Up            key.Binding
	Down          key.Binding
	NewEnrichment key.Binding
	SavedMenu     key.Binding
	Help          key.Binding
	Quit          key.Binding
}

// ShortHelp implements help.KeyMap.
func (k AppKeys) ShortHelp() []key.Binding {
	return []key.Binding{k.NewEnrichment, k.SavedMenu, k.Help, k.Quit}
}

// FullHelp implements help.KeyMap.
func (k AppKeys) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down},
		{k.NewEnrichment, k.SavedMenu},
		{k.Help, k.Quit},
	}
}

// ModalKeys are the bindings shown while the enrichment modal is open.
// The modal matches raw key strings; these exist for the help line.
type ModalKeys struct {
	NextField key.Binding
	PrevField key.Binding
	Submit    key.Binding
	Cancel    key.Binding
	ChipNav   key.Binding
}

// ShortHelp implements help.KeyMap.
func (k ModalKeys) ShortHelp() []key.Binding {
	return []key.Binding{k.NextField, k.Submit, k.Cancel, k.ChipNav}
}

// FullHelp implements help.KeyMap.
func (k ModalKeys) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.NextField, k.PrevField},
		{k.Submit, k.Cancel},
		{k.ChipNav},
	}
}

// App holds the main screen bindings.
var App = AppKeys{
	Up: key.NewBinding(
		key.WithKeys("k", "up"),
		key.WithHelp("k/↑", "move up"),
	),
	Down: key.NewBinding(
		key.WithKeys("j", "down"),
		key.WithHelp("j/↓", "move down"),
	),
	NewEnrichment: key.NewBinding(
		key.WithKeys("n", "+"),
		key.WithHelp("n/+", "new enrichment"),
	),
	SavedMenu: key.NewBinding(
		key.WithKeys("e"),
		key.WithHelp("e", "enrichments"),
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

// Modal holds the enrichment modal bindings.
var Modal = ModalKeys{
	NextField: key.NewBinding(
		key.WithKeys("tab"),
		key.WithHelp("tab", "next field"),
	),
	PrevField: key.NewBinding(
		key.WithKeys("shift+tab"),
		key.WithHelp("shift+tab", "previous field"),
	),
	Submit: key.NewBinding(
		key.WithKeys("ctrl+s"),
		key.WithHelp("ctrl+s", "save"),
	),
	Cancel: key.NewBinding(
		key.WithKeys("esc"),
		key.WithHelp("esc", "cancel"),
	),
	ChipNav: key.NewBinding(
		key.WithKeys("left"),
		key.WithHelp("←", "select chip"),
	),
}
