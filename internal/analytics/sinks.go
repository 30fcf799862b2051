package analytics

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/nats-io/nats.go"
	"github.com/sirupsen/logrus"
)

// LogSink writes events to a logger.
type LogSink struct {
	Logger *logrus.Entry
}

// Publish logs e at info level.
func (s LogSink) Publish(_ context.Context, e Event) error {
	fields := logrus.Fields{
		"event_id":   e.ID,
		"event_type": e.Type,
	}
	if e.ProductID != "" {
		fields["product_id"] = e.ProductID
	}
	if e.VariantID != "" {
		fields["variant_id"] = e.VariantID
		fields["quantity"] = e.Quantity
	}
	if e.CartTotal != nil {
		fields["cart_total"] = e.CartTotal.StringFixed(2)
		fields["item_count"] = e.ItemCount
	}
	s.Logger.WithFields(fields).Info("analytics event")
	return nil
}

// NATSSink publishes events as JSON on a NATS subject.
type NATSSink struct {
	conn    *nats.Conn
	subject string
}

// NewNATSSink connects to url. Reconnects are retried indefinitely once the
// first connection succeeds.
func NewNATSSink(url, subject string) (*NATSSink, error) {
	if url == "" {
		return nil, fmt.Errorf("nats url not set")
	}
	if subject == "" {
		return nil, fmt.Errorf("nats subject not set")
	}
	conn, err := nats.Connect(url,
		nats.Name("cartly-analytics"),
		nats.Timeout(2*time.Second),
		nats.ReconnectWait(2*time.Second),
		nats.MaxReconnects(-1),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to NATS: %w", err)
	}
	return &NATSSink{conn: conn, subject: subject}, nil
}

// Publish sends e to the configured subject.
func (s *NATSSink) Publish(_ context.Context, e Event) error {
	data, err := json.Marshal(e)
	if err != nil {
		return fmt.Errorf("marshal event: %w", err)
	}
	if err := s.conn.Publish(s.subject, data); err != nil {
		return fmt.Errorf("publish %s: %w", s.subject, err)
	}
	return nil
}

// Close flushes pending messages and closes the connection.
func (s *NATSSink) Close() error {
	if err := s.conn.Drain(); err != nil {
		s.conn.Close()
		return fmt.Errorf("drain nats connection: %w", err)
	}
	return nil
}
