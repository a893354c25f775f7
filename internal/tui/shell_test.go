package tui

import (
	"errors"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/beamdeck/beam/internal/deck"
	"github.com/beamdeck/beam/internal/markdown"
	"github.com/beamdeck/beam/internal/presenter"
)

// fakeSyncClient records transport calls.
type fakeSyncClient struct {
	started   int
	closed    int
	published []presenter.State
	updates   chan presenter.State
}

func newFakeSyncClient() *fakeSyncClient {
	return &fakeSyncClient{updates: make(chan presenter.State, 8)}
}

func (f *fakeSyncClient) Start() error { f.started++; return nil }
func (f *fakeSyncClient) Publish(s presenter.State) error {
	f.published = append(f.published, s)
	return nil
}
func (f *fakeSyncClient) Updates() <-chan presenter.State { return f.updates }
func (f *fakeSyncClient) Close() error                    { f.closed++; return nil }

// fakeWindow records fullscreen toggles.
type fakeWindow struct{ toggles int }

func (w *fakeWindow) ToggleFullscreen() tea.Cmd { w.toggles++; return nil }
func (w *fakeWindow) IsFullscreen() bool        { return false }

func textSlide(text string) deck.Slide {
	return deck.Slide{
		Render: func(deck.RenderContext, int, int) string { return text },
	}
}

func newTestShell(t *testing.T, opts Options) *Shell {
	t.Helper()
	if opts.Slides == nil {
		opts.Slides = []deck.Slide{textSlide("one"), textSlide("two"), textSlide("three")}
	}
	if opts.Window == nil {
		opts.Window = &fakeWindow{}
	}
	s, err := NewShell(opts)
	if err != nil {
		t.Fatalf("NewShell: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func TestNewShell_RequiresSlides(t *testing.T) {
	t.Parallel()

	if _, err := NewShell(Options{}); !errors.Is(err, deck.ErrNoSlides) {
		t.Fatalf("err = %v, want ErrNoSlides", err)
	}
}

func TestNewShell_PresenterViewRequiresClient(t *testing.T) {
	t.Parallel()

	_, err := NewShell(Options{
		Slides:          []deck.Slide{textSlide("one")},
		IsPresenterView: true,
	})
	if err == nil {
		t.Fatal("presenter view without client accepted")
	}
}

func TestNewShell_HiddenSlidesNeverReachTheRouter(t *testing.T) {
	t.Parallel()

	hidden := textSlide("secret")
	hidden.Config = &deck.Config{Hidden: true}
	s := newTestShell(t, Options{Slides: []deck.Slide{hidden, textSlide("shown")}})

	if got := s.Router().Len(); got != 1 {
		t.Fatalf("router slides = %d, want 1", got)
	}
	slide, ok := s.Router().At(0)
	if !ok || slide.Route != "/slide-1" {
		t.Fatalf("visible slide route = %q, want /slide-1", slide.Route)
	}
}

func TestNewShell_DrivingClientActivatesEagerly(t *testing.T) {
	t.Parallel()

	client := newFakeSyncClient()
	s := newTestShell(t, Options{SyncClient: client})

	if client.started != 1 {
		t.Fatalf("client starts = %d, want eager activation", client.started)
	}
	if !s.SyncActive() {
		t.Fatal("sync not active")
	}
	// Navigation publishes.
	s.Router().Next()
	if len(client.published) < 2 {
		t.Fatalf("publishes = %d, want initial + navigation", len(client.published))
	}
}

func TestNewShell_PresenterViewActivatesAtInitNotConstruction(t *testing.T) {
	t.Parallel()

	client := newFakeSyncClient()
	s := newTestShell(t, Options{SyncClient: client, IsPresenterView: true})

	if client.started != 0 {
		t.Fatalf("client starts at construction = %d, want 0", client.started)
	}

	cmd := s.Init()
	if cmd == nil {
		t.Fatal("Init returned no command")
	}
	msg := cmd()
	started, ok := msg.(syncStartedMsg)
	if !ok {
		t.Fatalf("Init command yielded %T, want syncStartedMsg", msg)
	}
	if started.err != nil {
		t.Fatalf("activation failed: %v", started.err)
	}
	if client.started != 1 {
		t.Fatalf("client starts after Init = %d, want 1", client.started)
	}
	_, _ = s.Update(started)
	// Presenter views never publish on local navigation.
	s.Router().Next()
	if len(client.published) != 0 {
		t.Fatalf("follower published %d states", len(client.published))
	}
}

func TestShell_CloseReleasesClientAndRouterSubscriptions(t *testing.T) {
	t.Parallel()

	client := newFakeSyncClient()
	s := newTestShell(t, Options{SyncClient: client})

	if err := s.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}
	if client.closed != 1 {
		t.Fatalf("client closes = %d, want 1", client.closed)
	}

	published := len(client.published)
	s.Router().Next()
	if len(client.published) != published {
		t.Fatal("router change reached a closed client")
	}

	if err := s.Close(); err != nil {
		t.Fatalf("second Close: %v", err)
	}
	if client.closed != 1 {
		t.Fatalf("double Close reached the client, closes = %d", client.closed)
	}
}

func TestShell_SetSlides(t *testing.T) {
	t.Parallel()

	a := textSlide("a")
	b := textSlide("b")
	s := newTestShell(t, Options{Slides: []deck.Slide{a, b}})

	before := s.Router().Position().Version
	if err := s.SetSlides([]deck.Slide{a, b}); err != nil {
		t.Fatalf("SetSlides(identical): %v", err)
	}
	if got := s.Router().Position().Version; got != before {
		t.Fatal("identical slide list rebuilt the router")
	}

	c := textSlide("c")
	if err := s.SetSlides([]deck.Slide{a, b, c}); err != nil {
		t.Fatalf("SetSlides: %v", err)
	}
	if got := s.Router().Len(); got != 3 {
		t.Fatalf("router slides = %d, want 3", got)
	}
	if got := s.Router().Position().Version; got == before {
		t.Fatal("changed slide list did not rebuild the router")
	}

	if err := s.SetSlides(nil); err == nil {
		t.Fatal("empty slide list accepted")
	}
}

func TestShell_AutoplayTickAdvances(t *testing.T) {
	t.Parallel()

	s := newTestShell(t, Options{})
	s.autoplay.Toggle()
	s.autoplayGen++

	_, _ = s.Update(autoplayTickMsg{gen: s.autoplayGen})
	if got := s.Router().Index(); got != 1 {
		t.Fatalf("index after tick = %d, want 1", got)
	}

	// Stale generation ticks are ignored.
	_, _ = s.Update(autoplayTickMsg{gen: s.autoplayGen - 1})
	if got := s.Router().Index(); got != 1 {
		t.Fatalf("index after stale tick = %d, want 1", got)
	}
}

func TestShell_DeckReloadErrorSurfacesInStatus(t *testing.T) {
	t.Parallel()

	s := newTestShell(t, Options{})
	_, _ = s.Update(DeckReloadedMsg{Reload: markdown.Reload{Err: errors.New("parse failed")}})
	if s.lastError != "parse failed" {
		t.Fatalf("lastError = %q", s.lastError)
	}
}
