package persist

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/five82/cartly/internal/state"
)

// Storage keys.
const (
	CartKey     = "cartly-cart"
	DarkModeKey = "cartly-darkMode"
)

const writeTimeout = 2 * time.Second

// Adapter reads and writes the persisted cart and theme flag.
type Adapter struct {
	kv  KV
	log *logrus.Entry
}

// NewAdapter wraps kv.
func NewAdapter(kv KV, log *logrus.Entry) *Adapter {
	if log == nil {
		log = logrus.NewEntry(logrus.StandardLogger())
	}
	return &Adapter{kv: kv, log: log.WithField("component", "persist")}
}

// LoadCart returns the saved cart lines. A cart that was never saved is
// (nil, nil); a malformed one is an error.
func (a *Adapter) LoadCart(ctx context.Context) ([]state.CartLineItem, error) {
	raw, err := a.kv.Get(ctx, CartKey)
	if errors.Is(err, ErrNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", CartKey, err)
	}
	var items []state.CartLineItem
	if err := json.Unmarshal([]byte(raw), &items); err != nil {
		return nil, fmt.Errorf("decode %s: %w", CartKey, err)
	}
	return items, nil
}

// SaveCart writes items as a JSON array.
func (a *Adapter) SaveCart(ctx context.Context, items []state.CartLineItem) error {
	data, err := encodeCart(items)
	if err != nil {
		return err
	}
	if err := a.kv.Set(ctx, CartKey, data); err != nil {
		return fmt.Errorf("write %s: %w", CartKey, err)
	}
	return nil
}

// LoadDarkMode returns the saved theme flag, false when never saved.
func (a *Adapter) LoadDarkMode(ctx context.Context) (bool, error) {
	raw, err := a.kv.Get(ctx, DarkModeKey)
	if errors.Is(err, ErrNotFound) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("read %s: %w", DarkModeKey, err)
	}
	on, err := strconv.ParseBool(strings.TrimSpace(raw))
	if err != nil {
		return false, fmt.Errorf("decode %s: %w", DarkModeKey, err)
	}
	return on, nil
}

// SaveDarkMode writes the theme flag as "true" or "false".
func (a *Adapter) SaveDarkMode(ctx context.Context, on bool) error {
	if err := a.kv.Set(ctx, DarkModeKey, strconv.FormatBool(on)); err != nil {
		return fmt.Errorf("write %s: %w", DarkModeKey, err)
	}
	return nil
}

// Dispatcher applies actions. *state.Store implements it.
type Dispatcher interface {
	Dispatch(action state.Action)
	Snapshot() state.AppState
}

// Restore loads persisted state into d. Unreadable values are logged and
// skipped, leaving the cart empty or the theme unchanged.
func (a *Adapter) Restore(ctx context.Context, d Dispatcher) {
	items, err := a.LoadCart(ctx)
	switch {
	case err != nil:
		a.log.WithError(err).Warn("discarding persisted cart")
	case len(items) > 0:
		d.Dispatch(state.LoadCartFromStorage{Items: items})
		a.log.WithField("lines", len(items)).Debug("restored cart")
	}

	dark, err := a.LoadDarkMode(ctx)
	if err != nil {
		a.log.WithError(err).Warn("ignoring persisted theme")
		return
	}
	if dark && !d.Snapshot().DarkMode {
		d.Dispatch(state.ToggleDarkMode{})
	}
}

func encodeCart(items []state.CartLineItem) (string, error) {
	if items == nil {
		items = []state.CartLineItem{}
	}
	data, err := json.Marshal(items)
	if err != nil {
		return "", fmt.Errorf("encode %s: %w", CartKey, err)
	}
	return string(data), nil
}

// Watcher is a store listener that writes the cart whenever its lines change
// and the theme flag whenever it flips. Writes are best effort: failures are
// logged and the session continues.
type Watcher struct {
	adapter *Adapter

	mu       sync.Mutex
	lastCart string
	lastDark *bool
}

// NewWatcher builds a Watcher. Call Prime with the state at subscription time
// so that unchanged values are not rewritten.
func NewWatcher(a *Adapter) *Watcher {
	return &Watcher{adapter: a}
}

// Prime records s as already persisted.
func (w *Watcher) Prime(s state.AppState) {
	cart, err := encodeCart(s.CartItems)
	w.mu.Lock()
	defer w.mu.Unlock()
	if err == nil {
		w.lastCart = cart
	}
	dark := s.DarkMode
	w.lastDark = &dark
}

// Observe implements state.Listener.
func (w *Watcher) Observe(_, next state.AppState, _ state.Action) {
	w.mu.Lock()
	defer w.mu.Unlock()

	ctx, cancel := context.WithTimeout(context.Background(), writeTimeout)
	defer cancel()

	cart, err := encodeCart(next.CartItems)
	if err != nil {
		w.adapter.log.WithError(err).Warn("failed to encode cart")
	} else if cart != w.lastCart {
		if err := w.adapter.kv.Set(ctx, CartKey, cart); err != nil {
			w.adapter.log.WithError(err).Warn("failed to save cart")
		} else {
			w.lastCart = cart
		}
	}

	if w.lastDark == nil || *w.lastDark != next.DarkMode {
		if err := w.adapter.SaveDarkMode(ctx, next.DarkMode); err != nil {
			w.adapter.log.WithError(err).Warn("failed to save theme")
			return
		}
		dark := next.DarkMode
		w.lastDark = &dark
	}
}
