package presenter

import (
	"errors"
	"sync"
	"time"

	"github.com/beamdeck/beam/internal/notify"
	"github.com/beamdeck/beam/internal/router"
)

// Controller wires the router to a sync client. A driving controller
// publishes every router change; a following controller applies inbound
// state to the router instead. Exactly one of the two roles applies per
// instance.
type Controller struct {
	client Client
	rt     *router.Router
	follow bool

	mu      sync.Mutex
	sub     *notify.Subscription
	active  bool
	started time.Time

	errMu   sync.Mutex
	lastErr error
}

// NewController builds a controller. The client is required; follow marks
// this process as the presenter view itself.
func NewController(client Client, rt *router.Router, follow bool) (*Controller, error) {
	if client == nil {
		return nil, errors.New("presenter: sync client is required")
	}
	if rt == nil {
		return nil, errors.New("presenter: router is required")
	}
	return &Controller{client: client, rt: rt, follow: follow}, nil
}

// Following reports whether this controller applies inbound state rather
// than publishing.
func (c *Controller) Following() bool { return c.follow }

// Activate starts the transport. A driving controller additionally
// subscribes to the router and publishes the current position immediately
// so late-joining presenter views catch up.
func (c *Controller) Activate() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.active {
		return nil
	}
	if err := c.client.Start(); err != nil {
		return err
	}
	c.started = time.Now()
	if !c.follow {
		c.sub = c.rt.Subscribe(func(p router.Position) { c.publish(p) })
		c.publish(c.rt.Position())
	}
	c.active = true
	return nil
}

// Active reports whether the controller has been activated and not closed.
func (c *Controller) Active() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.active
}

func (c *Controller) publish(p router.Position) {
	route := ""
	if cur, ok := c.rt.At(p.Index); ok {
		route = cur.Route
	}
	err := c.client.Publish(State{
		Route:          route,
		Index:          p.Index,
		Step:           p.Step,
		SlideCount:     p.Count,
		ElapsedSeconds: time.Since(c.started).Seconds(),
	})
	if err != nil {
		c.errMu.Lock()
		c.lastErr = err
		c.errMu.Unlock()
	}
}

// LastError returns the most recent publish failure, if any.
func (c *Controller) LastError() error {
	c.errMu.Lock()
	defer c.errMu.Unlock()
	return c.lastErr
}

// Updates exposes the client's inbound state stream for the UI loop.
func (c *Controller) Updates() <-chan State { return c.client.Updates() }

// Apply moves the router to an inbound state snapshot. The route wins over
// the index when both resolve, so decks edited mid-talk stay aligned.
func (c *Controller) Apply(s State) {
	if s.Route != "" {
		if err := c.rt.JumpTo(s.Route); err == nil {
			c.rt.GoToStep(c.rt.Index(), s.Step)
			return
		}
	}
	c.rt.GoToStep(s.Index, s.Step)
}

// Close releases the router subscription before the transport, so no
// notification can race a closed client.
func (c *Controller) Close() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if !c.active {
		return nil
	}
	c.active = false
	if c.sub != nil {
		c.sub.Close()
		c.sub = nil
	}
	return c.client.Close()
}
