// Package watch provides the observable holder for the current complex.
//
// A simulator session owns exactly one [Holder]. Selecting an architecture
// generates a fresh complex and publishes it with [Holder.Set]; consumers
// (TUI view, HTTP event stream) either read [Holder.Current] on demand or
// subscribe for change events. The holder replaces the complex in a single
// assignment, so subscribers never observe a partially built graph.
//
// Delivery is latest-wins: a slow subscriber skips intermediate complexes
// rather than blocking the publisher. Versions are monotonic, so a
// subscriber can detect skips.
package watch

import (
	"sync"

	"github.com/mwessel/phigrid/pkg/system"
)

// Event carries a newly published complex to subscribers.
type Event struct {
	Complex *system.Complex
	Version uint64 // monotonically increasing per holder
}

// Subscription receives change events from a Holder.
type Subscription struct {
	events chan Event
	cancel func()
	once   sync.Once
}

// Events returns the channel change events arrive on.
// The channel is closed when the subscription or its holder closes.
func (s *Subscription) Events() <-chan Event { return s.events }

// Close detaches the subscription from the holder and closes its channel.
// Safe to call multiple times.
func (s *Subscription) Close() {
	s.once.Do(s.cancel)
}

// Holder is a thread-safe container for the session's current complex.
// The zero value is not usable; use New.
type Holder struct {
	mu      sync.Mutex
	current *system.Complex
	version uint64
	subs    map[int]*Subscription
	nextID  int
	closed  bool
}

// New creates a holder with no current complex.
func New() *Holder {
	return &Holder{subs: make(map[int]*Subscription)}
}

// Current returns the most recently published complex and its version.
// Returns nil, 0 before the first Set.
func (h *Holder) Current() (*system.Complex, uint64) {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.current, h.version
}

// Set publishes a fully built complex, replacing the previous one, and
// notifies all subscribers. The complex must not be mutated afterwards.
func (h *Holder) Set(c *system.Complex) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.closed {
		return
	}
	h.version++
	h.current = c
	ev := Event{Complex: c, Version: h.version}
	for _, sub := range h.subs {
		// Latest-wins: drop the stale buffered event if the subscriber
		// hasn't drained it yet.
		select {
		case sub.events <- ev:
		default:
			select {
			case <-sub.events:
			default:
			}
			sub.events <- ev
		}
	}
}

// Subscribe registers for change events. If a complex is already current,
// it is delivered immediately so late subscribers start from the present
// state. Callers must Close the subscription when done.
func (h *Holder) Subscribe() *Subscription {
	h.mu.Lock()
	defer h.mu.Unlock()

	id := h.nextID
	h.nextID++

	sub := &Subscription{events: make(chan Event, 1)}
	sub.cancel = func() { h.unsubscribe(id) }

	if h.closed {
		close(sub.events)
		return sub
	}

	h.subs[id] = sub
	if h.current != nil {
		sub.events <- Event{Complex: h.current, Version: h.version}
	}
	return sub
}

func (h *Holder) unsubscribe(id int) {
	h.mu.Lock()
	defer h.mu.Unlock()
	sub, ok := h.subs[id]
	if !ok {
		return
	}
	delete(h.subs, id)
	close(sub.events)
}

// Close shuts down the holder and all subscriptions.
// Subsequent Set calls are no-ops.
func (h *Holder) Close() {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.closed {
		return
	}
	h.closed = true
	for id, sub := range h.subs {
		delete(h.subs, id)
		close(sub.events)
	}
}
