// Package persist stores the cart and the theme flag between sessions.
//
// Three KV backends are available: FileStore (a TOML file), SQLiteStore (a
// single-table SQLite database) and MemoryStore. The Adapter maps state onto
// the keys "cartly-cart" (a JSON array of cart lines) and "cartly-darkMode"
// ("true" or "false"). Restore reads both once at start-up; a Watcher
// subscribed to the store writes them back as they change.
package persist
