package tui

import (
	"time"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/beamdeck/beam/internal/markdown"
	"github.com/beamdeck/beam/internal/presenter"
)

// DeckReloadedMsg delivers a live-reloaded deck to the shell.
type DeckReloadedMsg struct{ Reload markdown.Reload }

// syncStateMsg carries one inbound presenter-sync snapshot.
type syncStateMsg struct{ state presenter.State }

// syncStartedMsg reports the presenter view's transport activation.
type syncStartedMsg struct{ err error }

// syncClosedMsg reports that the inbound state stream ended.
type syncClosedMsg struct{}

// Init schedules autoplay and, for presenter views, activates the sync
// transport.
func (s *Shell) Init() tea.Cmd {
	var cmds []tea.Cmd
	if s.autoplay.State().Enabled && !s.presenterView {
		cmds = append(cmds, s.autoplayTick())
	}
	if s.sync != nil && s.presenterView {
		cmds = append(cmds, s.activateSync())
	}
	return tea.Batch(cmds...)
}

func (s *Shell) activateSync() tea.Cmd {
	return func() tea.Msg {
		return syncStartedMsg{err: s.sync.Activate()}
	}
}

// waitForSyncState blocks on the inbound stream; each delivery re-arms.
func (s *Shell) waitForSyncState() tea.Cmd {
	updates := s.sync.Updates()
	return func() tea.Msg {
		state, ok := <-updates
		if !ok {
			return syncClosedMsg{}
		}
		return syncStateMsg{state: state}
	}
}

func (s *Shell) autoplayTick() tea.Cmd {
	gen := s.autoplayGen
	interval := s.autoplay.State().Interval
	return tea.Tick(interval, func(time.Time) tea.Msg {
		return autoplayTickMsg{gen: gen}
	})
}

// Update handles messages.
func (s *Shell) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		s.width = msg.Width
		s.height = msg.Height
		if s.dual != nil {
			s.dual.current.Invalidate()
			s.dual.next.Invalidate()
		}
		return s, nil

	case tea.KeyMsg:
		return s.handleKeyPress(msg)

	case autoplayTickMsg:
		if msg.gen != s.autoplayGen {
			return s, nil
		}
		state := s.autoplay.State()
		if !state.Enabled || s.presenterView {
			return s, nil
		}
		s.rt.Next()
		return s, s.autoplayTick()

	case syncStartedMsg:
		if msg.err != nil {
			s.lastError = msg.err.Error()
			return s, nil
		}
		return s, s.waitForSyncState()

	case syncStateMsg:
		s.sync.Apply(msg.state)
		return s, s.waitForSyncState()

	case syncClosedMsg:
		s.lastError = "presenter sync disconnected"
		return s, nil

	case DeckReloadedMsg:
		if msg.Reload.Err != nil {
			s.lastError = msg.Reload.Err.Error()
			return s, nil
		}
		if err := s.SetSlides(msg.Reload.Slides); err != nil {
			s.lastError = err.Error()
		} else {
			s.lastError = ""
		}
		return s, nil
	}

	return s, nil
}

// handleKeyPress dispatches keys: help overlay first, then global toggles,
// then the controls notifier.
func (s *Shell) handleKeyPress(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	k := s.keys

	if key.Matches(msg, k.ForceQuit) {
		return s, tea.Quit
	}

	if s.showHelp {
		if key.Matches(msg, k.Escape) || key.Matches(msg, k.Help) || key.Matches(msg, k.Quit) {
			s.showHelp = false
		}
		return s, nil
	}

	switch {
	case key.Matches(msg, k.Quit):
		return s, tea.Quit

	case key.Matches(msg, k.Help):
		s.showHelp = true
		return s, nil

	case key.Matches(msg, k.Theme):
		s.themes.Cycle()
		return s, nil

	case key.Matches(msg, k.Locale):
		s.locales.Cycle()
		return s, nil
	}

	wasEnabled := s.autoplay.State().Enabled
	handled, cmd := s.controls.HandleKey(msg)
	if !handled {
		return s, nil
	}

	// An autoplay toggle invalidates in-flight ticks and may need a fresh
	// schedule.
	nowEnabled := s.autoplay.State().Enabled
	if wasEnabled != nowEnabled {
		s.autoplayGen++
		if nowEnabled && !s.presenterView {
			return s, tea.Batch(cmd, s.autoplayTick())
		}
	}
	return s, cmd
}
