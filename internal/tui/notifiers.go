package tui

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/beamdeck/beam/internal/deck"
	"github.com/beamdeck/beam/internal/notify"
)

// AutoplayState is the autoplay notifier's value.
type AutoplayState struct {
	Enabled  bool
	Interval time.Duration
}

// AutoplayNotifier owns timed slide advancement.
type AutoplayNotifier struct {
	state *notify.Value[AutoplayState]
}

// NewAutoplayNotifier seeds the notifier. A zero interval gets the default;
// autoplay starts enabled only when the deck configured an interval.
func NewAutoplayNotifier(interval time.Duration) *AutoplayNotifier {
	enabled := interval > 0
	if interval <= 0 {
		interval = deck.DefaultAutoplayInterval
	}
	return &AutoplayNotifier{
		state: notify.NewValue(AutoplayState{Enabled: enabled, Interval: interval}),
	}
}

// State returns the current autoplay state.
func (n *AutoplayNotifier) State() AutoplayState { return n.state.Get() }

// Toggle flips autoplay on or off.
func (n *AutoplayNotifier) Toggle() {
	n.state.Update(func(s AutoplayState) AutoplayState {
		s.Enabled = !s.Enabled
		return s
	})
}

// Subscribe registers fn for autoplay changes.
func (n *AutoplayNotifier) Subscribe(fn func(AutoplayState)) *notify.Subscription {
	return n.state.Subscribe(fn)
}

// Close drops all subscribers.
func (n *AutoplayNotifier) Close() { n.state.Close() }

// autoplayTickMsg fires one autoplay advance. The generation guards against
// stale ticks scheduled before a toggle.
type autoplayTickMsg struct{ gen int }

// DrawerState is the drawer notifier's value.
type DrawerState struct {
	Open   bool
	Cursor int
}

// DrawerNotifier owns the slide-overview sidebar.
type DrawerNotifier struct {
	state *notify.Value[DrawerState]
}

// NewDrawerNotifier returns a closed drawer.
func NewDrawerNotifier() *DrawerNotifier {
	return &DrawerNotifier{state: notify.NewValue(DrawerState{})}
}

// State returns the current drawer state.
func (n *DrawerNotifier) State() DrawerState { return n.state.Get() }

// Toggle opens or closes the drawer, seeding the cursor at the current
// slide when opening.
func (n *DrawerNotifier) Toggle(currentIndex int) {
	n.state.Update(func(s DrawerState) DrawerState {
		s.Open = !s.Open
		if s.Open {
			s.Cursor = currentIndex
		}
		return s
	})
}

// Move shifts the cursor by delta, clamped to [0, count).
func (n *DrawerNotifier) Move(delta, count int) {
	n.state.Update(func(s DrawerState) DrawerState {
		s.Cursor += delta
		if s.Cursor < 0 {
			s.Cursor = 0
		}
		if s.Cursor >= count {
			s.Cursor = count - 1
		}
		return s
	})
}

// Close drops all subscribers.
func (n *DrawerNotifier) Close() { n.state.Close() }

// Subscribe registers fn for drawer changes.
func (n *DrawerNotifier) Subscribe(fn func(DrawerState)) *notify.Subscription {
	return n.state.Subscribe(fn)
}

// markerColors are the highlight colors the marker cycles through.
var markerColors = []string{"208", "196", "46", "51", "201"}

// MarkerState is the marker notifier's value.
type MarkerState struct {
	Enabled  bool
	ColorIdx int
}

// Color returns the active ANSI color.
func (s MarkerState) Color() string { return markerColors[s.ColorIdx%len(markerColors)] }

// MarkerNotifier owns the on-screen highlight marker. Preview renders
// suppress it via the render context's preview flag.
type MarkerNotifier struct {
	state *notify.Value[MarkerState]
}

// NewMarkerNotifier returns a disabled marker.
func NewMarkerNotifier() *MarkerNotifier {
	return &MarkerNotifier{state: notify.NewValue(MarkerState{})}
}

// State returns the current marker state.
func (n *MarkerNotifier) State() MarkerState { return n.state.Get() }

// Toggle enables the marker, or cycles its color when already enabled;
// cycling past the last color disables it again.
func (n *MarkerNotifier) Toggle() {
	n.state.Update(func(s MarkerState) MarkerState {
		if !s.Enabled {
			s.Enabled = true
			s.ColorIdx = 0
			return s
		}
		s.ColorIdx++
		if s.ColorIdx >= len(markerColors) {
			s.Enabled = false
			s.ColorIdx = 0
		}
		return s
	})
}

// Subscribe registers fn for marker changes.
func (n *MarkerNotifier) Subscribe(fn func(MarkerState)) *notify.Subscription {
	return n.state.Subscribe(fn)
}

// Close drops all subscribers.
func (n *MarkerNotifier) Close() { n.state.Close() }

// WindowManager is the platform collaborator for fullscreen toggling,
// injected into the controls notifier.
type WindowManager interface {
	ToggleFullscreen() tea.Cmd
	IsFullscreen() bool
}

// altScreenManager maps fullscreen onto the terminal's alternate screen.
type altScreenManager struct {
	alt bool
}

// NewAltScreenManager returns the default WindowManager. Programs started
// with tea.WithAltScreen begin fullscreen.
func NewAltScreenManager(startsFullscreen bool) WindowManager {
	return &altScreenManager{alt: startsFullscreen}
}

func (m *altScreenManager) ToggleFullscreen() tea.Cmd {
	m.alt = !m.alt
	if m.alt {
		return tea.EnterAltScreen
	}
	return tea.ExitAltScreen
}

func (m *altScreenManager) IsFullscreen() bool { return m.alt }
