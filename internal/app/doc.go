// Package app provides the orchestration layer for the cartly storefront.
//
// # Overview
//
// This package wires together configuration, logging, persistence, the state
// store and its listeners, the storefront client and the UI. It is the
// composition root: every component is constructed here and handed its
// dependencies explicitly.
//
// # Components
//
//   - app.go: Run, session construction and the analytics sink choice
//   - catalog.go: LoadCatalog, the catalog fetch with demo fallback
//
// # Data Flow
//
//	┌──────────────┐
//	│   Run()      │ Initialize everything
//	└──────┬───────┘
//	       │
//	       ├─────> config.Load()          TOML file, .env, CARTLY_* overrides
//	       ├─────> logging.New()          JSON log file
//	       ├─────> newSession()
//	       │         ├─> persist.Open()   TOML file, SQLite or memory
//	       │         ├─> state.New()      Store
//	       │         ├─> Restore()        Persisted cart and theme
//	       │         ├─> Subscribe()      Watcher, Scheduler, Collector
//	       │         └─> cart, checkout, connectivity
//	       ├─────> start()
//	       │         ├─> LoadCatalog()    Background fetch with fallback
//	       │         ├─> Monitor.Run()    Reachability probe
//	       │         └─> Collector.Serve() Optional /metrics
//	       └─────> ui.Run()               Start TUI (blocks)
//
// # Listener Order
//
// Listeners are subscribed in a fixed order: the persistence watcher, the
// notification scheduler, then the metrics collector. The watcher is primed
// with the restored state so that restoring does not immediately rewrite it.
//
// # Error Handling
//
// Fatal errors (returned from Run):
//   - Configuration file invalid
//   - Log file cannot be opened
//   - Storefront domain missing or malformed
//
// Recoverable errors (logged, session continues):
//   - Storage backend cannot be opened: an in-memory store is used
//   - NATS unreachable: analytics go to the log
//   - Catalog fetch fails or is empty: demo products are shown with a notification
//   - Metrics listener fails
package app
