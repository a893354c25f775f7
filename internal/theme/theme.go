// Package theme owns the deck-wide color mode and the lipgloss style set
// derived from it.
package theme

import (
	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"

	"github.com/beamdeck/beam/internal/notify"
)

// Mode selects the chrome palette.
type Mode int

const (
	ModeAuto Mode = iota // follow the terminal background
	ModeDark
	ModeLight
)

// String returns the mode's config spelling.
func (m Mode) String() string {
	switch m {
	case ModeDark:
		return "dark"
	case ModeLight:
		return "light"
	default:
		return "auto"
	}
}

// ParseMode maps the config spelling to a Mode. Unknown values mean auto.
func ParseMode(s string) Mode {
	switch s {
	case "dark":
		return ModeDark
	case "light":
		return ModeLight
	default:
		return ModeAuto
	}
}

// backgroundProbe is swapped out in tests; the default asks the terminal.
var backgroundProbe = termenv.HasDarkBackground

// IsDark resolves a mode to its effective background, probing the terminal
// for ModeAuto.
func IsDark(m Mode) bool {
	switch m {
	case ModeDark:
		return true
	case ModeLight:
		return false
	default:
		return backgroundProbe()
	}
}

// Palette holds the colors one mode renders with.
type Palette struct {
	Primary lipgloss.Color
	Accent  lipgloss.Color
	Text    lipgloss.Color
	Muted   lipgloss.Color
	Border  lipgloss.Color
	Surface lipgloss.Color
	Error   lipgloss.Color
}

func darkPalette() Palette {
	return Palette{
		Primary: lipgloss.Color("39"),
		Accent:  lipgloss.Color("208"),
		Text:    lipgloss.Color("252"),
		Muted:   lipgloss.Color("244"),
		Border:  lipgloss.Color("240"),
		Surface: lipgloss.Color("17"),
		Error:   lipgloss.Color("196"),
	}
}

func lightPalette() Palette {
	return Palette{
		Primary: lipgloss.Color("25"),
		Accent:  lipgloss.Color("166"),
		Text:    lipgloss.Color("235"),
		Muted:   lipgloss.Color("246"),
		Border:  lipgloss.Color("250"),
		Surface: lipgloss.Color("255"),
		Error:   lipgloss.Color("124"),
	}
}

// Styles is the chrome style set handed to render code.
type Styles struct {
	Dark bool

	Frame          lipgloss.Style
	Title          lipgloss.Style
	StatusBar      lipgloss.Style
	StatusAccent   lipgloss.Style
	SlideBox       lipgloss.Style
	PreviewBox     lipgloss.Style
	PreviewHeader  lipgloss.Style
	Placeholder    lipgloss.Style
	DrawerTitle    lipgloss.Style
	DrawerItem     lipgloss.Style
	DrawerSelected lipgloss.Style
	Notes          lipgloss.Style
	Marker         lipgloss.Style
	Help           lipgloss.Style
	Error          lipgloss.Style
}

// StylesFor derives the style set for a mode.
func StylesFor(m Mode) Styles {
	dark := IsDark(m)
	p := lightPalette()
	if dark {
		p = darkPalette()
	}

	return Styles{
		Dark:           dark,
		Frame:          lipgloss.NewStyle().Foreground(p.Text),
		Title:          lipgloss.NewStyle().Foreground(p.Primary).Bold(true),
		StatusBar:      lipgloss.NewStyle().Background(p.Surface).Foreground(p.Text),
		StatusAccent:   lipgloss.NewStyle().Background(p.Surface).Foreground(p.Accent).Bold(true),
		SlideBox:       lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(p.Border),
		PreviewBox:     lipgloss.NewStyle().Border(lipgloss.NormalBorder()).BorderForeground(p.Border),
		PreviewHeader:  lipgloss.NewStyle().Foreground(p.Primary).Bold(true),
		Placeholder:    lipgloss.NewStyle().Foreground(p.Muted).Italic(true),
		DrawerTitle:    lipgloss.NewStyle().Foreground(p.Primary).Bold(true).Underline(true),
		DrawerItem:     lipgloss.NewStyle().Foreground(p.Muted),
		DrawerSelected: lipgloss.NewStyle().Foreground(p.Accent).Bold(true),
		Notes:          lipgloss.NewStyle().Foreground(p.Text),
		Marker:         lipgloss.NewStyle().Foreground(p.Accent).Bold(true).Reverse(true),
		Help:           lipgloss.NewStyle().Foreground(p.Muted),
		Error:          lipgloss.NewStyle().Foreground(p.Error).Bold(true),
	}
}

// Notifier owns the active mode.
type Notifier struct {
	mode *notify.Value[Mode]
}

// NewNotifier seeds the notifier with the configured mode.
func NewNotifier(m Mode) *Notifier {
	return &Notifier{mode: notify.NewValue(m)}
}

// Mode returns the active mode.
func (n *Notifier) Mode() Mode { return n.mode.Get() }

// Set switches the mode.
func (n *Notifier) Set(m Mode) { n.mode.Set(m) }

// Cycle rotates auto → dark → light → auto.
func (n *Notifier) Cycle() {
	n.mode.Set((n.mode.Get() + 1) % 3)
}

// Styles returns the style set for the active mode.
func (n *Notifier) Styles() Styles { return StylesFor(n.mode.Get()) }

// Subscribe registers fn for mode changes.
func (n *Notifier) Subscribe(fn func(Mode)) *notify.Subscription {
	return n.mode.Subscribe(fn)
}

// Close drops all subscribers.
func (n *Notifier) Close() { n.mode.Close() }
