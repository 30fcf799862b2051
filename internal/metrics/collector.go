package metrics

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/sirupsen/logrus"

	"github.com/five82/cartly/internal/cart"
	"github.com/five82/cartly/internal/state"
)

const namespace = "cartly"

// Collector exposes session metrics. It is a store listener and a checkout
// outcome recorder.
type Collector struct {
	registry *prometheus.Registry

	actions       *prometheus.CounterVec
	notifications *prometheus.CounterVec
	checkouts     *prometheus.CounterVec
	cartItems     prometheus.Gauge
	cartValue     prometheus.Gauge
	savedLines    prometheus.Gauge
	online        prometheus.Gauge
}

// New registers the collectors on a private registry.
func New() *Collector {
	c := &Collector{
		registry: prometheus.NewRegistry(),
		actions: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "actions_total",
			Help:      "Actions applied to the store, by kind.",
		}, []string{"kind"}),
		notifications: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "notifications_total",
			Help:      "Notifications shown, by kind.",
		}, []string{"kind"}),
		checkouts: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "checkout_total",
			Help:      "Checkout attempts, by outcome.",
		}, []string{"outcome"}),
		cartItems: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "cart_items",
			Help:      "Units in the active cart.",
		}),
		cartValue: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "cart_value",
			Help:      "Subtotal of the active cart in its currency.",
		}),
		savedLines: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "saved_lines",
			Help:      "Lines saved for later.",
		}),
		online: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "online",
			Help:      "1 while the storefront is reachable.",
		}),
	}
	c.online.Set(1)
	c.registry.MustRegister(c.actions, c.notifications, c.checkouts, c.cartItems, c.cartValue, c.savedLines, c.online)
	return c
}

// Registry returns the registry holding the collectors.
func (c *Collector) Registry() *prometheus.Registry { return c.registry }

// Observe implements state.Listener.
func (c *Collector) Observe(prev, next state.AppState, action state.Action) {
	c.actions.WithLabelValues(action.Kind()).Inc()

	totals := cart.TotalsOf(next.CartItems)
	c.cartItems.Set(float64(totals.ItemCount))
	c.cartValue.Set(totals.Subtotal.InexactFloat64())
	c.savedLines.Set(float64(len(next.SavedItems())))
	if next.Online {
		c.online.Set(1)
	} else {
		c.online.Set(0)
	}

	seen := make(map[string]struct{}, len(prev.Notifications))
	for _, n := range prev.Notifications {
		seen[n.ID] = struct{}{}
	}
	for _, n := range next.Notifications {
		if _, ok := seen[n.ID]; !ok {
			c.notifications.WithLabelValues(string(n.Kind)).Inc()
		}
	}
}

// CheckoutOutcome counts one checkout attempt.
func (c *Collector) CheckoutOutcome(outcome string) {
	c.checkouts.WithLabelValues(outcome).Inc()
}

// Handler serves the registry in the Prometheus exposition format.
func (c *Collector) Handler() http.Handler {
	return promhttp.HandlerFor(c.registry, promhttp.HandlerOpts{})
}

// Serve exposes /metrics on addr until ctx is cancelled.
func (c *Collector) Serve(ctx context.Context, addr string, log *logrus.Entry) error {
	mux := http.NewServeMux()
	mux.Handle("/metrics", c.Handler())
	srv := &http.Server{Addr: addr, Handler: mux, ReadHeaderTimeout: 5 * time.Second}

	errCh := make(chan error, 1)
	go func() { errCh <- srv.ListenAndServe() }()
	if log != nil {
		log.WithField("addr", addr).Info("metrics listening")
	}

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("metrics server: %w", err)
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("shutdown metrics server: %w", err)
		}
		return nil
	}
}
