// Package notify provides the synchronous value-change notifiers that wire
// the deck's state containers (router position, theme mode, locale, controls)
// to their observers. Delivery is in registration order on the caller's
// goroutine; all mutation happens on the UI event loop.
package notify

import "sync"

// Value holds a single value of a comparable type and notifies subscribers
// when it changes. Setting an equal value is a no-op and does not notify.
type Value[T comparable] struct {
	mu     sync.Mutex
	value  T
	nextID uint64
	subs   []subscriber[T]
	closed bool
}

type subscriber[T comparable] struct {
	id uint64
	fn func(T)
}

// Subscription is the handle returned by Subscribe. Close removes the
// subscriber; closing twice is a no-op.
type Subscription struct {
	once  sync.Once
	close func()
}

// Close unsubscribes.
func (s *Subscription) Close() {
	if s == nil {
		return
	}
	s.once.Do(s.close)
}

// NewValue creates a notifier seeded with initial.
func NewValue[T comparable](initial T) *Value[T] {
	return &Value[T]{value: initial}
}

// Get returns the current value.
func (v *Value[T]) Get() T {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.value
}

// Set stores next and notifies subscribers in registration order.
// It does nothing when next equals the current value.
func (v *Value[T]) Set(next T) {
	v.mu.Lock()
	if v.closed || v.value == next {
		v.mu.Unlock()
		return
	}
	v.value = next
	subs := make([]subscriber[T], len(v.subs))
	copy(subs, v.subs)
	v.mu.Unlock()

	for _, s := range subs {
		s.fn(next)
	}
}

// Update applies fn to the current value and stores the result, with the
// same equality gate as Set.
func (v *Value[T]) Update(fn func(T) T) {
	v.mu.Lock()
	next := fn(v.value)
	v.mu.Unlock()
	v.Set(next)
}

// Subscribe registers fn to be called on every value change. The returned
// subscription must be closed when the observer is torn down.
func (v *Value[T]) Subscribe(fn func(T)) *Subscription {
	v.mu.Lock()
	defer v.mu.Unlock()

	v.nextID++
	id := v.nextID
	v.subs = append(v.subs, subscriber[T]{id: id, fn: fn})

	return &Subscription{close: func() { v.unsubscribe(id) }}
}

func (v *Value[T]) unsubscribe(id uint64) {
	v.mu.Lock()
	defer v.mu.Unlock()
	for i, s := range v.subs {
		if s.id == id {
			v.subs = append(v.subs[:i], v.subs[i+1:]...)
			return
		}
	}
}

// SubscriberCount returns the number of live subscriptions.
func (v *Value[T]) SubscriberCount() int {
	v.mu.Lock()
	defer v.mu.Unlock()
	return len(v.subs)
}

// Close drops all subscribers and makes further Sets no-ops.
func (v *Value[T]) Close() {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.closed = true
	v.subs = nil
}
