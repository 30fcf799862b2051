package notify

import (
	"slices"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/five82/cartly/internal/state"
)

const (
	BaseTimeout = 3000 * time.Millisecond
	StackDelay  = 500 * time.Millisecond
	MinTimeout  = 1000 * time.Millisecond
)

// Dispatcher accepts actions. *state.Store implements it.
type Dispatcher interface {
	Dispatch(action state.Action)
}

// Options configure a Scheduler. Zero values use the wall clock, random UUID
// identifiers and the standard logrus logger.
type Options struct {
	Clock  Clock
	NewID  func() string
	Logger *logrus.Entry
}

// Scheduler creates notifications and expires them on staggered timers. It is
// registered as a store listener so it sees every queue change regardless of
// which component caused it.
type Scheduler struct {
	dispatcher Dispatcher
	clock      Clock
	newID      func() string
	log        *logrus.Entry

	mu     sync.Mutex
	timers map[string]pending
	gen    uint64
	closed bool
}

type pending struct {
	timer Timer
	gen   uint64
}

// New builds a Scheduler dispatching into d.
func New(d Dispatcher, opts Options) *Scheduler {
	s := &Scheduler{
		dispatcher: d,
		clock:      opts.Clock,
		newID:      opts.NewID,
		log:        opts.Logger,
		timers:     make(map[string]pending),
	}
	if s.clock == nil {
		s.clock = SystemClock
	}
	if s.newID == nil {
		s.newID = uuid.NewString
	}
	if s.log == nil {
		s.log = logrus.NewEntry(logrus.StandardLogger())
	}
	s.log = s.log.WithField("component", "notify")
	return s
}

// Delay computes how long a notification stays visible: the base timeout minus
// its age, plus a per-position stagger, never below MinTimeout.
func Delay(age time.Duration, position int) time.Duration {
	d := BaseTimeout - age + time.Duration(position)*StackDelay
	if d < MinTimeout {
		return MinTimeout
	}
	return d
}

// Push queues a notification and returns its identifier.
func (s *Scheduler) Push(kind state.NotificationKind, message string) string {
	n := state.Notification{
		ID:        s.newID(),
		Kind:      kind,
		Message:   message,
		CreatedAt: s.clock.Now(),
	}
	s.dispatcher.Dispatch(state.AddNotification{Notification: n})
	return n.ID
}

// Success queues a success notification.
func (s *Scheduler) Success(message string) string { return s.Push(state.KindSuccess, message) }

// Error queues an error notification.
func (s *Scheduler) Error(message string) string { return s.Push(state.KindError, message) }

// Info queues an informational notification.
func (s *Scheduler) Info(message string) string { return s.Push(state.KindInfo, message) }

// Dismiss removes a notification on user request.
func (s *Scheduler) Dismiss(id string) {
	s.dispatcher.Dispatch(state.RemoveNotification{ID: id})
}

// Observe implements state.Listener. Timers of notifications that left the
// queue are cancelled. When a notification without a timer appears, every
// timer is recomputed from the current ages and positions. Observing the same
// state twice is a no-op.
func (s *Scheduler) Observe(prev, next state.AppState, _ state.Action) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return
	}

	present := make(map[string]struct{}, len(next.Notifications))
	arrived := false
	for _, n := range next.Notifications {
		present[n.ID] = struct{}{}
		if _, ok := s.timers[n.ID]; !ok {
			arrived = true
		}
	}
	for id, p := range s.timers {
		if _, ok := present[id]; !ok {
			p.timer.Stop()
			delete(s.timers, id)
		}
	}
	if !arrived {
		return
	}

	now := s.clock.Now()
	for _, p := range s.timers {
		p.timer.Stop()
	}
	clear(s.timers)
	for position, n := range next.Notifications {
		s.schedule(n.ID, Delay(now.Sub(n.CreatedAt), position))
	}
}

// schedule must be called with s.mu held.
func (s *Scheduler) schedule(id string, d time.Duration) {
	s.gen++
	gen := s.gen
	timer := s.clock.AfterFunc(d, func() { s.expire(id, gen) })
	s.timers[id] = pending{timer: timer, gen: gen}
}

func (s *Scheduler) expire(id string, gen uint64) {
	s.mu.Lock()
	p, ok := s.timers[id]
	current := ok && p.gen == gen && !s.closed
	if current {
		delete(s.timers, id)
	}
	s.mu.Unlock()

	if !current {
		return
	}
	s.log.WithField("notification_id", id).Debug("notification expired")
	s.dispatcher.Dispatch(state.RemoveNotification{ID: id})
}

// Pending returns the identifiers that currently have a live timer, sorted.
func (s *Scheduler) Pending() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	ids := make([]string, 0, len(s.timers))
	for id := range s.timers {
		ids = append(ids, id)
	}
	slices.Sort(ids)
	return ids
}

// Close cancels every pending timer. Later observations are ignored.
func (s *Scheduler) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.closed = true
	for _, p := range s.timers {
		p.timer.Stop()
	}
	clear(s.timers)
}
