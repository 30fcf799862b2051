// Package metrics exposes Prometheus metrics for a storefront session: actions
// applied, cart size and value, notifications shown and checkout outcomes.
package metrics
