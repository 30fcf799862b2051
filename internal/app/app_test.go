package app

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/five82/cartly/internal/analytics"
	"github.com/five82/cartly/internal/catalog"
	"github.com/five82/cartly/internal/config"
	"github.com/five82/cartly/internal/persist"
	"github.com/five82/cartly/internal/state"
)

func emptyCatalogServer(t *testing.T) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"data":{"products":{"edges":[]}}}`))
	}))
	t.Cleanup(srv.Close)
	return srv
}

func testConfig(domain, storagePath string) config.Config {
	return config.Config{
		Storefront: config.StorefrontConfig{
			Domain:            domain,
			APIVersion:        "2025-04",
			PageSize:          5,
			RequestsPerSecond: 100,
		},
		Storage: config.StorageConfig{Backend: persist.BackendTOML, Path: storagePath},
	}
}

func savedLine() state.CartLineItem {
	return state.CartLineItem{
		VariantID:        "gid://shopify/ProductVariant/3",
		ProductID:        "gid://shopify/Product/3",
		Title:            "Minimalist Desk Lamp",
		Variant:          "White",
		Price:            decimal.RequireFromString("4999.99"),
		CurrencyCode:     "INR",
		Quantity:         2,
		AvailableForSale: true,
	}
}

func TestSession_RestoresAndPersists(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "storage.toml")

	seed, err := persist.OpenFileStore(path)
	require.NoError(t, err)
	seedAdapter := persist.NewAdapter(seed, nil)
	require.NoError(t, seedAdapter.SaveCart(ctx, []state.CartLineItem{savedLine()}))
	require.NoError(t, seedAdapter.SaveDarkMode(ctx, true))

	srv := emptyCatalogServer(t)
	log, _ := nullLog()
	sess, err := newSession(ctx, testConfig(srv.URL, path), log)
	require.NoError(t, err)
	defer sess.Close()

	snap := sess.store.Snapshot()
	require.Len(t, snap.CartItems, 1)
	assert.Equal(t, 2, snap.CartItems[0].Quantity)
	assert.True(t, snap.DarkMode)

	demo := catalog.DemoProducts()
	require.True(t, sess.cart.AddToCart(demo[2], demo[2].Variants[0].ID, 1))

	reopened, err := persist.OpenFileStore(path)
	require.NoError(t, err)
	items, err := persist.NewAdapter(reopened, nil).LoadCart(ctx)
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, 3, items[0].Quantity)
}

func TestSession_MalformedStorageIsOverwritten(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "storage.toml")
	require.NoError(t, os.WriteFile(path, []byte("garbage {{{\n"), 0o644))

	srv := emptyCatalogServer(t)
	log, hook := nullLog()
	sess, err := newSession(ctx, testConfig(srv.URL, path), log)
	require.NoError(t, err)

	assert.Empty(t, sess.store.Snapshot().CartItems)
	found := false
	for _, e := range hook.AllEntries() {
		if e.Message == "storage file malformed, starting empty" {
			found = true
		}
	}
	assert.True(t, found, "expected a malformed storage warning")

	demo := catalog.DemoProducts()
	require.True(t, sess.cart.AddToCart(demo[0], demo[0].Variants[0].ID, 2))
	sess.Close()

	reopened, err := persist.OpenFileStore(path)
	require.NoError(t, err)
	require.NoError(t, reopened.Discarded())
	items, err := persist.NewAdapter(reopened, nil).LoadCart(ctx)
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, demo[0].Variants[0].ID, items[0].VariantID)
	assert.Equal(t, 2, items[0].Quantity)
}

func TestSession_LoadCatalogAgainstStorefront(t *testing.T) {
	ctx := context.Background()
	srv := emptyCatalogServer(t)
	log, _ := nullLog()

	sess, err := newSession(ctx, testConfig(srv.URL, filepath.Join(t.TempDir(), "storage.toml")), log)
	require.NoError(t, err)
	defer sess.Close()

	require.NoError(t, LoadCatalog(ctx, sess.client, sess.store, sess.notifier, 5, log))

	snap := sess.store.Snapshot()
	assert.Len(t, snap.Products, 3)
	assert.False(t, snap.LoadingProducts)
	require.Len(t, snap.Notifications, 1)
	assert.Equal(t, state.KindInfo, snap.Notifications[0].Kind)
	assert.Equal(t, emptyCatalogMessage, snap.Notifications[0].Message)
}

func TestSession_UnusableStorageFallsBackToMemory(t *testing.T) {
	srv := emptyCatalogServer(t)
	log, hook := nullLog()
	cfg := testConfig(srv.URL, "")
	cfg.Storage.Backend = "floppy"

	sess, err := newSession(context.Background(), cfg, log)
	require.NoError(t, err)
	defer sess.Close()

	found := false
	for _, e := range hook.AllEntries() {
		if e.Message == "storage unavailable, cart will not be saved" {
			found = true
		}
	}
	assert.True(t, found, "expected a storage fallback warning")

	demo := catalog.DemoProducts()
	assert.True(t, sess.cart.AddToCart(demo[0], demo[0].Variants[0].ID, 1))
}

func TestSession_InvalidDomain(t *testing.T) {
	log, _ := nullLog()
	_, err := newSession(context.Background(), testConfig("", ""), log)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "init storefront client")
}

func TestNewSink(t *testing.T) {
	log, hook := nullLog()

	sink, closeSink := newSink(config.AnalyticsConfig{}, log)
	_, isLog := sink.(analytics.LogSink)
	assert.True(t, isLog)
	closeSink()

	sink, closeSink = newSink(config.AnalyticsConfig{NATSURL: "nats://127.0.0.1:1", Subject: "cartly.analytics"}, log)
	_, isLog = sink.(analytics.LogSink)
	assert.True(t, isLog, "unreachable NATS falls back to the log sink")
	closeSink()
	require.NotNil(t, hook.LastEntry())
	assert.Equal(t, "analytics falling back to log sink", hook.LastEntry().Message)
}
