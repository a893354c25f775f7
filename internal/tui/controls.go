package tui

import (
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/beamdeck/beam/internal/router"
)

// Controls translates input events into router navigation and notifier
// mutations. It owns no state of its own.
type Controls struct {
	router   *router.Router
	autoplay *AutoplayNotifier
	drawer   *DrawerNotifier
	marker   *MarkerNotifier
	window   WindowManager
	keys     KeyMap
}

// NewControls wires the controls notifier to its collaborators.
func NewControls(rt *router.Router, autoplay *AutoplayNotifier, drawer *DrawerNotifier, marker *MarkerNotifier, window WindowManager, keys KeyMap) *Controls {
	return &Controls{
		router:   rt,
		autoplay: autoplay,
		drawer:   drawer,
		marker:   marker,
		window:   window,
		keys:     keys,
	}
}

// HandleKey dispatches a key press. The drawer captures navigation keys
// while open; everything else falls through to deck navigation.
func (c *Controls) HandleKey(msg tea.KeyMsg) (handled bool, cmd tea.Cmd) {
	k := c.keys

	if c.drawer.State().Open {
		if ok, cmd := c.handleDrawerKeys(msg); ok {
			return true, cmd
		}
	}

	switch {
	case key.Matches(msg, k.Next):
		c.router.Next()
	case key.Matches(msg, k.Prev):
		c.router.Prev()
	case key.Matches(msg, k.NextSlide):
		c.router.NextSlide()
	case key.Matches(msg, k.PrevSlide):
		c.router.PrevSlide()
	case key.Matches(msg, k.First):
		c.router.First()
	case key.Matches(msg, k.Last):
		c.router.Last()

	case key.Matches(msg, k.Drawer):
		c.drawer.Toggle(c.router.Index())
	case key.Matches(msg, k.Marker):
		c.marker.Toggle()
	case key.Matches(msg, k.Autoplay):
		c.autoplay.Toggle()
	case key.Matches(msg, k.Fullscreen):
		return true, c.window.ToggleFullscreen()

	default:
		return false, nil
	}
	return true, nil
}

func (c *Controls) handleDrawerKeys(msg tea.KeyMsg) (bool, tea.Cmd) {
	k := c.keys
	switch {
	case key.Matches(msg, k.Up):
		c.drawer.Move(-1, c.router.Len())
	case key.Matches(msg, k.Down):
		c.drawer.Move(1, c.router.Len())
	case key.Matches(msg, k.Enter):
		c.router.GoTo(c.drawer.State().Cursor)
		c.drawer.Toggle(c.router.Index())
	case key.Matches(msg, k.Escape):
		c.drawer.Toggle(c.router.Index())
	default:
		return false, nil
	}
	return true, nil
}
