// Package analytics records storefront events (product viewed, add to cart,
// checkout initiated) without blocking the session. A Tracker queues events
// for a Sink: LogSink writes them to the log, NATSSink publishes them as JSON
// on a NATS subject.
package analytics
