package tui

import "github.com/charmbracelet/bubbles/key"

// KeyMap defines all presentation key bindings with built-in help text.
type KeyMap struct {
	// Global
	Quit      key.Binding
	ForceQuit key.Binding
	Help      key.Binding
	Escape    key.Binding

	// Navigation
	Next      key.Binding
	Prev      key.Binding
	NextSlide key.Binding
	PrevSlide key.Binding
	First     key.Binding
	Last      key.Binding
	Enter     key.Binding
	Up        key.Binding
	Down      key.Binding

	// Toggles
	Drawer     key.Binding
	Marker     key.Binding
	Autoplay   key.Binding
	Theme      key.Binding
	Locale     key.Binding
	Fullscreen key.Binding
}

// DefaultKeyMap returns the default key bindings.
func DefaultKeyMap() KeyMap {
	return KeyMap{
		Quit: key.NewBinding(
			key.WithKeys("q"),
			key.WithHelp("q", "quit"),
		),
		ForceQuit: key.NewBinding(
			key.WithKeys("ctrl+c"),
			key.WithHelp("ctrl+c", "force quit"),
		),
		Help: key.NewBinding(
			key.WithKeys("?"),
			key.WithHelp("?", "help"),
		),
		Escape: key.NewBinding(
			key.WithKeys("escape", "esc"),
			key.WithHelp("esc", "close"),
		),

		Next: key.NewBinding(
			key.WithKeys("right", " ", "n", "pgdown"),
			key.WithHelp("→/space/n", "next step"),
		),
		Prev: key.NewBinding(
			key.WithKeys("left", "p", "pgup"),
			key.WithHelp("←/p", "previous step"),
		),
		NextSlide: key.NewBinding(
			key.WithKeys("J", "shift+right"),
			key.WithHelp("J", "next slide"),
		),
		PrevSlide: key.NewBinding(
			key.WithKeys("K", "shift+left"),
			key.WithHelp("K", "previous slide"),
		),
		First: key.NewBinding(
			key.WithKeys("home", "g"),
			key.WithHelp("g/home", "first slide"),
		),
		Last: key.NewBinding(
			key.WithKeys("end", "G"),
			key.WithHelp("G/end", "last slide"),
		),
		Enter: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "jump to slide"),
		),
		Up: key.NewBinding(
			key.WithKeys("up", "k"),
			key.WithHelp("↑/k", "up"),
		),
		Down: key.NewBinding(
			key.WithKeys("down", "j"),
			key.WithHelp("↓/j", "down"),
		),

		Drawer: key.NewBinding(
			key.WithKeys("d", "tab"),
			key.WithHelp("d/tab", "slide drawer"),
		),
		Marker: key.NewBinding(
			key.WithKeys("m"),
			key.WithHelp("m", "marker"),
		),
		Autoplay: key.NewBinding(
			key.WithKeys("a"),
			key.WithHelp("a", "autoplay"),
		),
		Theme: key.NewBinding(
			key.WithKeys("t"),
			key.WithHelp("t", "theme mode"),
		),
		Locale: key.NewBinding(
			key.WithKeys("l"),
			key.WithHelp("l", "language"),
		),
		Fullscreen: key.NewBinding(
			key.WithKeys("f"),
			key.WithHelp("f", "fullscreen"),
		),
	}
}
