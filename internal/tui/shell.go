package tui

import (
	"errors"
	"time"

	"github.com/beamdeck/beam/internal/deck"
	"github.com/beamdeck/beam/internal/locale"
	"github.com/beamdeck/beam/internal/notify"
	"github.com/beamdeck/beam/internal/presenter"
	"github.com/beamdeck/beam/internal/router"
	"github.com/beamdeck/beam/internal/theme"
	"github.com/beamdeck/beam/internal/timelog"
)

// Options configures a Shell.
type Options struct {
	// Slides is the declared slide list. At least one visible slide is
	// required.
	Slides []deck.Slide
	// Global holds the deck-wide configuration.
	Global deck.GlobalConfig
	// SyncClient, when set, synchronizes position with presenter views.
	SyncClient presenter.Client
	// IsPresenterView runs this shell as the presenter view itself:
	// current/next previews, notes and timing, following SyncClient state.
	// Requires SyncClient.
	IsPresenterView bool
	// Window is the fullscreen collaborator; nil gets the alt-screen
	// default.
	Window WindowManager
	// TimeLog, when set, records per-slide timings. Owned by the caller.
	TimeLog *timelog.Log
	// Keys overrides the default key map.
	Keys *KeyMap
}

// Shell is the composition root: it owns the router, every cross-cutting
// notifier, and the presenter-sync controller, and renders the themed,
// localized frame around the active slide.
type Shell struct {
	global   deck.GlobalConfig
	declared []deck.Slide

	rt       *router.Router
	themes   *theme.Notifier
	locales  *locale.Notifier
	autoplay *AutoplayNotifier
	drawer   *DrawerNotifier
	marker   *MarkerNotifier
	controls *Controls
	window   WindowManager
	sync     *presenter.Controller
	dual     *DualPreview

	keys          KeyMap
	presenterView bool

	posSub  *notify.Subscription
	timings *slideTimings
	tlog    *timelog.Log

	width, height int
	showHelp      bool
	lastError     string
	autoplayGen   int
	closed        bool
}

// NewShell validates opts and builds the fully wired shell. Construction
// failures are fatal: there is nothing to retry.
func NewShell(opts Options) (*Shell, error) {
	if len(opts.Slides) == 0 {
		return nil, deck.ErrNoSlides
	}
	if opts.IsPresenterView && opts.SyncClient == nil {
		return nil, errors.New("tui: presenter view requires a sync client")
	}

	routerSlides, err := deck.BuildRouterSlides(opts.Global, opts.Slides)
	if err != nil {
		return nil, err
	}
	rt, err := router.New(routerSlides)
	if err != nil {
		return nil, err
	}

	keys := DefaultKeyMap()
	if opts.Keys != nil {
		keys = *opts.Keys
	}
	window := opts.Window
	if window == nil {
		window = NewAltScreenManager(true)
	}

	s := &Shell{
		global:        opts.Global,
		declared:      opts.Slides,
		rt:            rt,
		themes:        theme.NewNotifier(theme.ParseMode(opts.Global.Theme)),
		locales:       locale.New(opts.Global.Locale),
		autoplay:      NewAutoplayNotifier(opts.Global.Autoplay),
		drawer:        NewDrawerNotifier(),
		marker:        NewMarkerNotifier(),
		window:        window,
		keys:          keys,
		presenterView: opts.IsPresenterView,
		timings:       newSlideTimings(rt.Len()),
		tlog:          opts.TimeLog,
	}
	s.controls = NewControls(rt, s.autoplay, s.drawer, s.marker, window, keys)

	s.posSub = rt.Subscribe(func(p router.Position) { s.recordTiming(p) })

	if opts.IsPresenterView {
		s.dual = NewDualPreview(rt, s.locales, opts.Global.Size)
	}

	if opts.SyncClient != nil {
		ctrl, err := presenter.NewController(opts.SyncClient, rt, opts.IsPresenterView)
		if err != nil {
			s.teardown()
			return nil, err
		}
		s.sync = ctrl
		// The driving side activates right away; a presenter view defers
		// dialing to Init so construction stays free of network I/O.
		if !opts.IsPresenterView {
			if err := ctrl.Activate(); err != nil {
				s.teardown()
				return nil, err
			}
		}
	}

	return s, nil
}

// recordTiming accounts wall time to the slide being left.
func (s *Shell) recordTiming(p router.Position) {
	if p.Index == s.timings.lastIdx && len(s.timings.seconds) == p.Count {
		return
	}
	if len(s.timings.seconds) != p.Count {
		s.timings.resize(p.Count)
	}
	left, spent := s.timings.visit(p.Index, time.Now())
	if s.tlog == nil {
		return
	}
	route := ""
	if slide, ok := s.rt.At(left); ok {
		route = slide.Route
	}
	if err := s.tlog.Append(timelog.Entry{Route: route, Index: left, Seconds: spent}); err != nil {
		s.lastError = err.Error()
	}
}

// Router exposes the router for embedding applications and tests.
func (s *Shell) Router() *router.Router { return s.rt }

// SyncActive reports whether presenter synchronization is running.
func (s *Shell) SyncActive() bool { return s.sync != nil && s.sync.Active() }

// SetSlides replaces the declared slide list. Element-wise identical lists
// are a no-op; otherwise the filtered router list is rebuilt and pushed
// into the router, which keeps the current route when it survives.
func (s *Shell) SetSlides(slides []deck.Slide) error {
	if deck.SameSlides(s.declared, slides) {
		return nil
	}
	routerSlides, err := deck.BuildRouterSlides(s.global, slides)
	if err != nil {
		return err
	}
	if err := s.rt.Replace(routerSlides); err != nil {
		return err
	}
	s.declared = slides
	return nil
}

// Close tears the shell down in reverse construction order. The sync
// controller goes first so no router notification can reach a released
// client.
func (s *Shell) Close() error {
	if s.closed {
		return nil
	}
	s.closed = true
	return s.teardown()
}

func (s *Shell) teardown() error {
	var err error
	if s.sync != nil {
		err = s.sync.Close()
	}
	if s.dual != nil {
		s.dual.Close()
	}
	if s.posSub != nil {
		s.posSub.Close()
	}
	s.marker.Close()
	s.drawer.Close()
	s.autoplay.Close()
	s.locales.Close()
	s.themes.Close()
	s.rt.Close()
	return err
}
