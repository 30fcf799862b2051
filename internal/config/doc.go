// Package config loads cartly's configuration.
//
// # Resolution Order
//
//  1. Defaults for every value
//  2. The TOML file (~/.config/cartly/config.toml unless a path is given)
//  3. Variables from a .env file, loaded without replacing the environment
//  4. CARTLY_* environment variables
//
// A missing config file or .env file is not an error. An unparsable one is.
//
// # TOML Format
//
//	[storefront]
//	domain = "example.myshopify.com"
//	access_token = "..."
//	api_version = "2025-04"
//	page_size = 20
//	requests_per_second = 2
//
//	[storage]
//	backend = "toml"   # toml, sqlite or memory
//	path = "~/.local/share/cartly/storage.toml"
//
//	[log]
//	level = "info"
//	file = "~/.local/share/cartly/cartly.log"
//	environment = "production"
//
//	[analytics]
//	nats_url = "nats://127.0.0.1:4222"
//	subject = "cartly.analytics"
//
//	[metrics]
//	addr = "127.0.0.1:9464"
//
//	[connectivity]
//	probe_interval = "15s"
//
// String values are trimmed and paths are tilde-expanded. Analytics go to the
// log unless nats_url is set; metrics are only served when addr is set.
package config
