package app

import (
	"context"
	"fmt"

	"github.com/sirupsen/logrus"

	"github.com/five82/cartly/internal/analytics"
	"github.com/five82/cartly/internal/cart"
	"github.com/five82/cartly/internal/checkout"
	"github.com/five82/cartly/internal/config"
	"github.com/five82/cartly/internal/connectivity"
	"github.com/five82/cartly/internal/logging"
	"github.com/five82/cartly/internal/metrics"
	"github.com/five82/cartly/internal/notify"
	"github.com/five82/cartly/internal/persist"
	"github.com/five82/cartly/internal/state"
	"github.com/five82/cartly/internal/storefront"
	"github.com/five82/cartly/internal/ui"
)

// Options configure the cartly application.
type Options struct {
	ConfigPath string // empty uses ~/.config/cartly/config.toml
	EnvFile    string // empty uses .env in the working directory
}

// Run boots the storefront TUI until the user quits or the context is
// cancelled.
func Run(ctx context.Context, opts Options) error {
	cfg, err := config.Load(opts.ConfigPath, opts.EnvFile)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	logger, closeLog, err := logging.New(logging.Options{
		Level:       cfg.Log.Level,
		File:        cfg.Log.File,
		Development: cfg.Development(),
	})
	if err != nil {
		return fmt.Errorf("init logging: %w", err)
	}
	defer func() { _ = closeLog() }()
	log := logrus.NewEntry(logger)

	sess, err := newSession(ctx, cfg, log)
	if err != nil {
		return err
	}
	defer sess.Close()

	// Background work stops before the session is closed.
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	log.WithFields(logrus.Fields{
		"domain":  cfg.Storefront.Domain,
		"storage": cfg.Storage.Backend,
	}).Info("cartly starting")

	sess.start(ctx, cfg)

	err = ui.Run(ui.Options{
		Context:  ctx,
		Store:    sess.store,
		Cart:     sess.cart,
		Checkout: sess.checkout,
		Notifier: sess.notifier,
		Tracker:  sess.tracker,
		Products: sess.client,
		Logger:   log,
		LogPath:  cfg.Log.File,
	})
	if err != nil {
		return fmt.Errorf("run ui: %w", err)
	}
	return nil
}

// session holds the wired components of one storefront session.
type session struct {
	log      *logrus.Entry
	store    *state.Store
	notifier *notify.Scheduler
	cart     *cart.Engine
	checkout *checkout.Orchestrator
	tracker  *analytics.Tracker
	metrics  *metrics.Collector
	monitor  *connectivity.Monitor
	client   *storefront.Client

	closers []func()
}

// newSession builds the store and its listeners, restores persisted state and
// wires the cart, checkout and connectivity components. Nothing runs in the
// background until start is called.
func newSession(ctx context.Context, cfg config.Config, log *logrus.Entry) (*session, error) {
	client, err := storefront.NewClient(storefront.Options{
		Domain:            cfg.Storefront.Domain,
		AccessToken:       cfg.Storefront.AccessToken,
		APIVersion:        cfg.Storefront.APIVersion,
		RequestsPerSecond: cfg.Storefront.RequestsPerSecond,
	})
	if err != nil {
		return nil, fmt.Errorf("init storefront client: %w", err)
	}

	s := &session{log: log, client: client}

	kv, err := persist.Open(cfg.Storage.Backend, cfg.Storage.Path)
	if err != nil {
		log.WithError(err).Warn("storage unavailable, cart will not be saved")
		kv = persist.NewMemoryStore()
	}
	if fs, ok := kv.(*persist.FileStore); ok && fs.Discarded() != nil {
		log.WithError(fs.Discarded()).WithField("path", fs.Path()).Warn("storage file malformed, starting empty")
	}
	s.onClose(func() {
		if err := kv.Close(); err != nil {
			log.WithError(err).Warn("failed to close storage")
		}
	})

	s.store = state.New(state.Initial())
	s.onClose(s.store.Close)

	adapter := persist.NewAdapter(kv, log)
	adapter.Restore(ctx, s.store)
	watcher := persist.NewWatcher(adapter)
	watcher.Prime(s.store.Snapshot())
	s.store.Subscribe(watcher)

	s.notifier = notify.New(s.store, notify.Options{Logger: log})
	s.store.Subscribe(s.notifier)
	s.onClose(s.notifier.Close)

	s.metrics = metrics.New()
	s.store.Subscribe(s.metrics)

	sink, closeSink := newSink(cfg.Analytics, log)
	s.onClose(closeSink)
	s.tracker = analytics.NewTracker(sink, analytics.Options{Logger: log})
	s.onClose(s.tracker.Close)

	s.cart = cart.New(s.store, s.notifier, s.tracker, log)
	s.checkout = checkout.New(checkout.Options{
		Store:    s.store,
		Creator:  client,
		Notifier: s.notifier,
		Tracker:  s.tracker,
		Recorder: s.metrics,
		Logger:   log,
	})
	s.monitor = connectivity.NewMonitor(s.store, log)
	return s, nil
}

// start launches the background work: the catalog fetch, the connectivity
// probe and, when an address is configured, the metrics endpoint.
func (s *session) start(ctx context.Context, cfg config.Config) {
	go func() {
		// Failures are logged and replaced by the demo catalog.
		_ = LoadCatalog(ctx, s.client, s.store, s.notifier, cfg.Storefront.PageSize, s.log)
	}()

	go s.monitor.Run(ctx, connectivity.HTTPProber{URL: s.client.Endpoint()}, cfg.ProbeInterval)

	if cfg.MetricsAddr != "" {
		go func() {
			if err := s.metrics.Serve(ctx, cfg.MetricsAddr, s.log); err != nil {
				s.log.WithError(err).Error("metrics endpoint stopped")
			}
		}()
	}
}

func (s *session) onClose(f func()) {
	s.closers = append(s.closers, f)
}

// Close releases components in reverse construction order.
func (s *session) Close() {
	for i := len(s.closers) - 1; i >= 0; i-- {
		s.closers[i]()
	}
	s.closers = nil
}

// newSink publishes to NATS when a URL is configured and falls back to the
// log otherwise.
func newSink(cfg config.AnalyticsConfig, log *logrus.Entry) (analytics.Sink, func()) {
	logSink := analytics.LogSink{Logger: log.WithField("component", "analytics")}
	if cfg.NATSURL == "" {
		return logSink, func() {}
	}
	sink, err := analytics.NewNATSSink(cfg.NATSURL, cfg.Subject)
	if err != nil {
		log.WithError(err).Warn("analytics falling back to log sink")
		return logSink, func() {}
	}
	return sink, func() {
		if err := sink.Close(); err != nil {
			log.WithError(err).Warn("failed to close analytics connection")
		}
	}
}
