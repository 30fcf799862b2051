package state

import (
	"slices"
	"sync"
)

// Listener observes every applied action together with the states before and
// after it. Listeners run after the transition, outside the store lock, in
// registration order. They may dispatch further actions; those are queued and
// applied once the current round of listeners returns.
type Listener interface {
	Observe(prev, next AppState, action Action)
}

// ListenerFunc adapts a function to the Listener interface.
type ListenerFunc func(prev, next AppState, action Action)

// Observe calls f.
func (f ListenerFunc) Observe(prev, next AppState, action Action) { f(prev, next, action) }

// Store serialises actions through Reduce and fans the results out to
// listeners. At most one goroutine drains the action queue at a time, so no two
// transitions ever interleave.
type Store struct {
	mu        sync.Mutex
	state     AppState
	pending   []Action
	draining  bool
	closed    bool
	listeners []*subscription
}

type subscription struct {
	listener Listener
}

// New creates a store holding initial.
func New(initial AppState) *Store {
	return &Store{state: initial}
}

// Subscribe registers l and returns a function that removes it.
func (s *Store) Subscribe(l Listener) (unsubscribe func()) {
	sub := &subscription{listener: l}
	s.mu.Lock()
	s.listeners = append(slices.Clone(s.listeners), sub)
	s.mu.Unlock()

	return func() {
		s.mu.Lock()
		defer s.mu.Unlock()
		s.listeners = slices.DeleteFunc(slices.Clone(s.listeners), func(other *subscription) bool {
			return other == sub
		})
	}
}

// Dispatch applies action. When called while another dispatch is draining the
// queue (from a listener or another goroutine) the action is queued and
// applied by that drain before it returns. Dispatch after Close is ignored.
func (s *Store) Dispatch(action Action) {
	if action == nil {
		return
	}
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return
	}
	s.pending = append(s.pending, action)
	if s.draining {
		s.mu.Unlock()
		return
	}
	s.draining = true

	for len(s.pending) > 0 {
		next := s.pending[0]
		s.pending = s.pending[1:]

		prev := s.state
		s.state = Reduce(prev, next)
		cur := s.state
		listeners := s.listeners
		s.mu.Unlock()

		for _, sub := range listeners {
			sub.listener.Observe(prev, cur, next)
		}

		s.mu.Lock()
	}
	s.pending = nil
	s.draining = false
	s.mu.Unlock()
}

// Snapshot returns a copy of the current state.
func (s *Store) Snapshot() AppState {
	s.mu.Lock()
	defer s.mu.Unlock()

	snap := s.state
	snap.Products = slices.Clone(s.state.Products)
	snap.SelectedTags = slices.Clone(s.state.SelectedTags)
	snap.CartItems = slices.Clone(s.state.CartItems)
	snap.Notifications = slices.Clone(s.state.Notifications)
	return snap
}

// Close stops the store from accepting actions and drops all listeners.
// Actions already queued by an in-progress drain are discarded.
func (s *Store) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.closed = true
	s.pending = nil
	s.listeners = nil
}
