package connectivity

import (
	"context"
	"fmt"
	"net/http"
	"sync"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/five82/cartly/internal/state"
)

const (
	DefaultProbeInterval = 15 * time.Second
	maxBackoff           = 30 * time.Second
	// offlineAfter is the number of consecutive probe failures that mark the
	// session offline. A single blip is ignored.
	offlineAfter = 2
	probeTimeout = 5 * time.Second
)

// Dispatcher applies actions. *state.Store implements it.
type Dispatcher interface {
	Dispatch(action state.Action)
}

// Prober checks whether the network path to the store works.
type Prober interface {
	Probe(ctx context.Context) error
}

// ProberFunc adapts a function to Prober.
type ProberFunc func(ctx context.Context) error

// Probe calls f.
func (f ProberFunc) Probe(ctx context.Context) error { return f(ctx) }

// HTTPProber treats any HTTP response from URL as reachable. Only transport
// failures count as offline.
type HTTPProber struct {
	URL    string
	Client *http.Client
}

// Probe sends a HEAD request to p.URL.
func (p HTTPProber) Probe(ctx context.Context) error {
	client := p.Client
	if client == nil {
		client = &http.Client{Timeout: probeTimeout}
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodHead, p.URL, nil)
	if err != nil {
		return fmt.Errorf("create probe request: %w", err)
	}
	resp, err := client.Do(req)
	if err != nil {
		return fmt.Errorf("probe %s: %w", p.URL, err)
	}
	_ = resp.Body.Close()
	return nil
}

// Monitor tracks connectivity and mirrors transitions into the store.
type Monitor struct {
	dispatcher Dispatcher
	log        *logrus.Entry

	mu       sync.Mutex
	online   bool
	failures int
}

// NewMonitor builds a Monitor that starts out online, matching the initial
// application state.
func NewMonitor(d Dispatcher, log *logrus.Entry) *Monitor {
	if log == nil {
		log = logrus.NewEntry(logrus.StandardLogger())
	}
	return &Monitor{
		dispatcher: d,
		log:        log.WithField("component", "connectivity"),
		online:     true,
	}
}

// Online reports the last known status.
func (m *Monitor) Online() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.online
}

// SetOnline records a become-online or become-offline signal. Only
// transitions reach the store.
func (m *Monitor) SetOnline(online bool) {
	m.mu.Lock()
	changed := m.online != online
	m.online = online
	m.mu.Unlock()

	if !changed {
		return
	}
	if online {
		m.log.Info("connection restored")
	} else {
		m.log.Warn("connection lost")
	}
	m.dispatcher.Dispatch(state.SetOnlineStatus{Online: online})
}

// Run probes until ctx is cancelled. Successful probes repeat every interval;
// failures back off exponentially up to 30 seconds and mark the session
// offline once two fail in a row.
func (m *Monitor) Run(ctx context.Context, prober Prober, interval time.Duration) {
	if interval <= 0 {
		interval = DefaultProbeInterval
	}
	timer := time.NewTimer(0)
	defer timer.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-timer.C:
		}
		timer.Reset(m.probe(ctx, prober, interval))
	}
}

// probe runs one check and returns the wait before the next.
func (m *Monitor) probe(ctx context.Context, prober Prober, interval time.Duration) time.Duration {
	probeCtx, cancel := context.WithTimeout(ctx, probeTimeout)
	err := prober.Probe(probeCtx)
	cancel()
	if ctx.Err() != nil {
		return interval
	}

	m.mu.Lock()
	if err == nil {
		m.failures = 0
	} else {
		m.failures++
	}
	failures := m.failures
	m.mu.Unlock()

	if err == nil {
		m.SetOnline(true)
		return interval
	}
	m.log.WithError(err).WithField("failures", failures).Debug("connectivity probe failed")
	if failures >= offlineAfter {
		m.SetOnline(false)
	}
	return calculateBackoff(failures, interval)
}

// calculateBackoff doubles base per consecutive failure, capped at maxBackoff.
func calculateBackoff(failures int, base time.Duration) time.Duration {
	if failures <= 0 {
		return base
	}
	d := base
	for i := 0; i < failures; i++ {
		d *= 2
		if d >= maxBackoff {
			return maxBackoff
		}
	}
	return d
}
