// Package ui provides the Bubble Tea terminal storefront for cartly.
//
// # Architecture Overview
//
// The UI is a single Bubble Tea Model. It never owns application state: every
// user action either dispatches a state action or calls the cart engine,
// checkout orchestrator or notification scheduler, and the model then re-reads
// a store snapshot. A tick re-reads the snapshot as well, because notification
// timers and the connectivity monitor change state outside the update loop.
//
// # Package Structure
//
//   - app.go: Model, Options, Init/Update/View and Run
//   - input.go: key handling per focus (product list, product detail, cart drawer, search)
//   - view.go: rendering of header, filters, notifications, catalog and cart drawer
//   - help.go: help overlay built from the key bindings
//   - keys.go: key bindings
//   - theme.go: light and dark palettes selected by the dark mode flag
//
// # Key Bindings
//
// Catalog:
//   - ↑/k, ↓/j: Move selection
//   - enter: Product details (records a product view and refreshes the product)
//   - a: Add the selected variant to the cart
//   - /: Search, applied as you type
//   - [ ]: Move the tag cursor, t: toggle the tag
//   - F: Clear search and tags
//
// Cart drawer (c):
//   - +/-: Change quantity
//   - x: Remove line
//   - s: Save for later, or move a saved line back
//   - r: Move a saved line back to the cart
//   - o: Checkout
//
// General:
//   - d: Dismiss the newest notification
//   - L: Show or hide the tail of the session log
//   - T: Toggle light/dark theme
//   - ?: Help
//   - q, ctrl+c: Quit
package ui
