package presenter

import (
	"testing"

	"github.com/beamdeck/beam/internal/deck"
	"github.com/beamdeck/beam/internal/router"
)

// fakeClient records transport calls for controller tests.
type fakeClient struct {
	started   int
	closed    int
	published []State
	updates   chan State
}

func newFakeClient() *fakeClient {
	return &fakeClient{updates: make(chan State, 8)}
}

func (f *fakeClient) Start() error          { f.started++; return nil }
func (f *fakeClient) Publish(s State) error { f.published = append(f.published, s); return nil }
func (f *fakeClient) Updates() <-chan State { return f.updates }
func (f *fakeClient) Close() error          { f.closed++; return nil }

func blank(deck.RenderContext, int, int) string { return "" }

func testRouter(t *testing.T, routes ...string) *router.Router {
	t.Helper()
	slides := make([]deck.RouterSlide, len(routes))
	for i, route := range routes {
		slides[i] = deck.RouterSlide{Route: route, Config: deck.Config{Route: route, Steps: 2}, Render: blank}
	}
	rt, err := router.New(slides)
	if err != nil {
		t.Fatalf("router.New: %v", err)
	}
	return rt
}

func TestNewController_RequiresClient(t *testing.T) {
	t.Parallel()

	if _, err := NewController(nil, testRouter(t, "/a"), false); err == nil {
		t.Fatal("nil client accepted")
	}
}

func TestController_DrivingPublishesOnNavigation(t *testing.T) {
	t.Parallel()

	rt := testRouter(t, "/a", "/b")
	client := newFakeClient()
	c, err := NewController(client, rt, false)
	if err != nil {
		t.Fatalf("NewController: %v", err)
	}

	if err := c.Activate(); err != nil {
		t.Fatalf("Activate: %v", err)
	}
	if client.started != 1 {
		t.Fatalf("client starts = %d, want 1", client.started)
	}
	// Initial catch-up publish.
	if len(client.published) != 1 || client.published[0].Route != "/a" {
		t.Fatalf("initial publish = %+v", client.published)
	}

	rt.Next()
	rt.Next() // crosses to /b
	if len(client.published) != 3 {
		t.Fatalf("publishes = %d, want 3", len(client.published))
	}
	last := client.published[2]
	if last.Route != "/b" || last.Index != 1 || last.Step != 0 || last.SlideCount != 2 {
		t.Fatalf("last publish = %+v", last)
	}
}

func TestController_ActivateIsIdempotent(t *testing.T) {
	t.Parallel()

	rt := testRouter(t, "/a")
	client := newFakeClient()
	c, _ := NewController(client, rt, false)

	if err := c.Activate(); err != nil {
		t.Fatalf("Activate: %v", err)
	}
	if err := c.Activate(); err != nil {
		t.Fatalf("second Activate: %v", err)
	}
	if client.started != 1 {
		t.Fatalf("client starts = %d, want 1", client.started)
	}
}

func TestController_FollowerAppliesInboundState(t *testing.T) {
	t.Parallel()

	rt := testRouter(t, "/a", "/b", "/c")
	client := newFakeClient()
	c, _ := NewController(client, rt, true)
	if err := c.Activate(); err != nil {
		t.Fatalf("Activate: %v", err)
	}
	if !c.Following() {
		t.Fatal("follower not reported as following")
	}
	// Followers never publish on router changes.
	rt.Next()
	if len(client.published) != 0 {
		t.Fatalf("follower published %d states", len(client.published))
	}

	c.Apply(State{Route: "/c", Index: 2, Step: 1})
	if p := rt.Position(); p.Index != 2 || p.Step != 1 {
		t.Fatalf("position = %d/%d, want 2/1", p.Index, p.Step)
	}

	// Unknown route falls back to the index.
	c.Apply(State{Route: "/gone", Index: 1, Step: 0})
	if p := rt.Position(); p.Index != 1 {
		t.Fatalf("index = %d, want fallback 1", p.Index)
	}
}

func TestController_CloseReleasesRouterSubscriptionAndClient(t *testing.T) {
	t.Parallel()

	rt := testRouter(t, "/a", "/b")
	client := newFakeClient()
	c, _ := NewController(client, rt, false)
	if err := c.Activate(); err != nil {
		t.Fatalf("Activate: %v", err)
	}

	if err := c.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}
	if client.closed != 1 {
		t.Fatalf("client closes = %d, want 1", client.closed)
	}

	published := len(client.published)
	rt.Next()
	if len(client.published) != published {
		t.Fatal("navigation after Close still published")
	}

	// Closing twice is a no-op.
	if err := c.Close(); err != nil {
		t.Fatalf("second Close: %v", err)
	}
	if client.closed != 1 {
		t.Fatalf("client closes after double Close = %d, want 1", client.closed)
	}
}
