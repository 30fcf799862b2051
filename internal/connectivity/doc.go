// Package connectivity tracks whether the storefront is reachable and mirrors
// online/offline transitions into the store.
//
// Signals come from two places: callers reporting a transition directly with
// SetOnline, and Run, which probes the storefront on an interval and backs
// off exponentially while it is unreachable.
package connectivity
