// Package state holds the storefront session state and the only code allowed
// to change it.
//
// # Overview
//
// AppState is the single source of truth for a session: theme flag, catalog,
// search and tag criteria, cart lines, the cart-drawer flag, the remote cart id,
// connectivity, and the notification queue. It changes only through Reduce, a
// pure function from (state, action) to the next state.
//
// # Architecture
//
//	UI / engines           Store                      Listeners
//	┌────────────┐   ┌──────────────────┐   ┌──────────────────────────┐
//	│ Dispatch() │──→│ queue → Reduce() │──→│ persist.Watcher          │
//	└────────────┘   │   (one at a time)│   │ notify.Scheduler         │
//	                 └──────────────────┘   │ metrics.Collector        │
//	                          │             │ ui program               │
//	                          ↓             └──────────────────────────┘
//	                     Snapshot()
//
// # Actions
//
// Action is a closed set: every implementation lives in actions.go and carries
// an unexported marker method. Reduce switches over the concrete types once;
// anything it does not match returns the state unchanged.
//
// # Cart Rules
//
//   - At most one active (not saved-for-later) line per variant id. Adding an
//     active variant again increments that line.
//   - A saved line may coexist with an active line for the same variant.
//   - Id-only operations (update, remove, toggle save) target the primary line:
//     the active line if present, else the first saved line.
//   - A quantity at or below zero removes the line.
//
// # Notifications
//
// The queue holds at most MaxNotifications entries. Adding to a full queue
// drops the oldest entry before appending. Identifiers and timestamps are
// assigned by the caller so that Reduce stays deterministic.
//
// # Concurrency Model
//
// Store.Dispatch may be called from any goroutine, including listeners and
// timer callbacks. One caller at a time drains the queue; others enqueue and
// return. Listeners run outside the lock, in registration order, after each
// transition. Slices inside a state are copy-on-write, so a state handed to a
// listener is never mutated afterwards.
//
// # Lifecycle
//
//	store := state.New(state.Initial())
//	defer store.Close()
//	unsubscribe := store.Subscribe(watcher)
//	defer unsubscribe()
//	store.Dispatch(state.ToggleDarkMode{})
package state
