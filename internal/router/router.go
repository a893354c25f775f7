// Package router owns the navigable slide list and the current position
// within it. All other components hold a non-owning reference and react to
// its change notifications.
package router

import (
	"fmt"

	"github.com/beamdeck/beam/internal/deck"
	"github.com/beamdeck/beam/internal/notify"
)

// Position is the router's observable state. Index may equal Count: that is
// the past-the-end sentinel previews render as the terminal placeholder.
// Version increments on every slide-list replacement so observers see
// list changes even when the position itself is unchanged.
type Position struct {
	Index   int
	Step    int
	Count   int
	Version int
}

// Router tracks the ordered slide list plus the current slide/step.
type Router struct {
	slides  []deck.RouterSlide
	pos     *notify.Value[Position]
	version int
}

// New builds a router over slides. The list must not be empty.
func New(slides []deck.RouterSlide) (*Router, error) {
	if len(slides) == 0 {
		return nil, deck.ErrNoSlides
	}
	r := &Router{slides: slides}
	r.pos = notify.NewValue(Position{Count: len(slides)})
	return r, nil
}

// Slides returns the router's slide list. Callers must not mutate it.
func (r *Router) Slides() []deck.RouterSlide { return r.slides }

// Len returns the number of slides.
func (r *Router) Len() int { return len(r.slides) }

// Position returns the current position snapshot.
func (r *Router) Position() Position { return r.pos.Get() }

// Index returns the current slide index (may equal Len as the sentinel).
func (r *Router) Index() int { return r.pos.Get().Index }

// Step returns the current step within the current slide.
func (r *Router) Step() int { return r.pos.Get().Step }

// Current returns the current slide, or ok=false past the end.
func (r *Router) Current() (deck.RouterSlide, bool) {
	return r.At(r.Index())
}

// At returns the slide at index, or ok=false when out of range.
func (r *Router) At(index int) (deck.RouterSlide, bool) {
	if index < 0 || index >= len(r.slides) {
		return deck.RouterSlide{}, false
	}
	return r.slides[index], true
}

// Subscribe registers fn for position and slide-list changes. Delivery is
// synchronous and in registration order.
func (r *Router) Subscribe(fn func(Position)) *notify.Subscription {
	return r.pos.Subscribe(fn)
}

// SubscriberCount returns the number of live change subscriptions.
func (r *Router) SubscriberCount() int { return r.pos.SubscriberCount() }

// Close drops all subscribers.
func (r *Router) Close() { r.pos.Close() }

// Next advances one step, crossing into the next slide when the current
// slide's steps are exhausted. Advancing past the last slide parks the
// router on the past-the-end sentinel.
func (r *Router) Next() {
	p := r.pos.Get()
	if cur, ok := r.At(p.Index); ok && p.Step < cur.Steps()-1 {
		p.Step++
	} else if p.Index < len(r.slides) {
		p.Index++
		p.Step = 0
	}
	r.pos.Set(p)
}

// Prev steps backwards, landing on the previous slide's last step when the
// current slide's first step is left.
func (r *Router) Prev() {
	p := r.pos.Get()
	if p.Step > 0 {
		p.Step--
	} else if p.Index > 0 {
		p.Index--
		if prev, ok := r.At(p.Index); ok {
			p.Step = prev.Steps() - 1
		}
	}
	r.pos.Set(p)
}

// NextSlide jumps to the start of the next slide, skipping remaining steps.
func (r *Router) NextSlide() {
	p := r.pos.Get()
	if p.Index < len(r.slides) {
		p.Index++
		p.Step = 0
	}
	r.pos.Set(p)
}

// PrevSlide jumps to the start of the previous slide.
func (r *Router) PrevSlide() {
	p := r.pos.Get()
	if p.Index > 0 {
		p.Index--
	}
	p.Step = 0
	r.pos.Set(p)
}

// First jumps to the first slide.
func (r *Router) First() { r.GoTo(0) }

// Last jumps to the last slide.
func (r *Router) Last() { r.GoTo(len(r.slides) - 1) }

// GoTo jumps to the slide at index, clamped to [0, Len]. The step resets.
func (r *Router) GoTo(index int) {
	if index < 0 {
		index = 0
	}
	if index > len(r.slides) {
		index = len(r.slides)
	}
	p := r.pos.Get()
	p.Index = index
	p.Step = 0
	r.pos.Set(p)
}

// GoToStep jumps to an exact slide/step position, clamping both.
func (r *Router) GoToStep(index, step int) {
	if index < 0 {
		index = 0
	}
	if index > len(r.slides) {
		index = len(r.slides)
	}
	if step < 0 {
		step = 0
	}
	if cur, ok := r.At(index); ok && step > cur.Steps()-1 {
		step = cur.Steps() - 1
	}
	if index == len(r.slides) {
		step = 0
	}
	p := r.pos.Get()
	p.Index = index
	p.Step = step
	r.pos.Set(p)
}

// JumpTo navigates to the slide carrying route.
func (r *Router) JumpTo(route string) error {
	for i, s := range r.slides {
		if s.Route == route {
			r.GoTo(i)
			return nil
		}
	}
	return fmt.Errorf("router: unknown route %q", route)
}

// Replace swaps in a new slide list. The current route is preserved when it
// survives the replacement; otherwise the index is clamped to the new
// length. The step always resets. Subscribers are notified even when the
// resulting position is numerically unchanged.
func (r *Router) Replace(slides []deck.RouterSlide) error {
	if len(slides) == 0 {
		return deck.ErrNoSlides
	}

	p := r.pos.Get()
	curRoute := ""
	if cur, ok := r.At(p.Index); ok {
		curRoute = cur.Route
	}

	r.slides = slides
	r.version++

	next := Position{Count: len(slides), Version: r.version}
	next.Index = min(p.Index, len(slides))
	for i, s := range slides {
		if curRoute != "" && s.Route == curRoute {
			next.Index = i
			break
		}
	}

	r.pos.Set(next)
	return nil
}
