package tui

import "github.com/charmbracelet/bubbles/key"

// KeyMap defines the application key bindings. Add-on commands carry
// their own gestures and are dispatched through the command registry.
type KeyMap struct {
	Palette key.Binding
	Help    key.Binding
	Escape  key.Binding
	Quit    key.Binding
}

// DefaultKeyMap returns the default key bindings
func DefaultKeyMap() KeyMap {
	return KeyMap{
		Palette: key.NewBinding(
			key.WithKeys(":", "ctrl+p"),
			key.WithHelp(":", "comandos"),
		),
		Help: key.NewBinding(
			key.WithKeys("?"),
			key.WithHelp("?", "ayuda"),
		),
		Escape: key.NewBinding(
			key.WithKeys("esc"),
			key.WithHelp("esc", "cerrar"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "salir"),
		),
	}
}

// Keys is the global key map
var Keys = DefaultKeyMap()

// ShortHelp returns the bindings shown in the footer
func (k KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Palette, k.Help, k.Quit}
}
