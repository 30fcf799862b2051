package app

import (
	"context"
	"fmt"

	"github.com/sirupsen/logrus"

	"github.com/five82/cartly/internal/catalog"
	"github.com/five82/cartly/internal/state"
)

const (
	emptyCatalogMessage    = "No products found in store. Using demo products."
	catalogFailedMessage   = "Failed to connect to Shopify. Using demo products."
	defaultCatalogPageSize = 20
)

// CatalogSource fetches the remote catalog. *storefront.Client implements it.
type CatalogSource interface {
	FetchProducts(ctx context.Context, first int, query string) ([]catalog.Product, error)
}

// Dispatcher accepts actions. *state.Store implements it.
type Dispatcher interface {
	Dispatch(action state.Action)
}

// Notifier surfaces catalog fallbacks. *notify.Scheduler implements it.
type Notifier interface {
	Info(message string) string
	Error(message string) string
}

// LoadCatalog fetches up to pageSize products into the store. An empty
// catalog or a failed fetch falls back to the demo products, and the user is
// told which happened. The loading flag is cleared on every path. It returns
// the fetch error, if any, after the fallback has been applied.
func LoadCatalog(ctx context.Context, src CatalogSource, d Dispatcher, n Notifier, pageSize int, log *logrus.Entry) error {
	if pageSize <= 0 {
		pageSize = defaultCatalogPageSize
	}
	if log == nil {
		log = logrus.NewEntry(logrus.StandardLogger())
	}
	log = log.WithField("component", "catalog")

	d.Dispatch(state.SetLoadingProducts{Loading: true})
	defer d.Dispatch(state.SetLoadingProducts{Loading: false})

	products, err := src.FetchProducts(ctx, pageSize, "")
	switch {
	case err != nil:
		log.WithError(err).Warn("catalog fetch failed, using demo products")
		d.Dispatch(state.SetProducts{Products: catalog.DemoProducts()})
		n.Error(catalogFailedMessage)
		return fmt.Errorf("load catalog: %w", err)
	case len(products) == 0:
		log.Info("storefront returned no products, using demo products")
		d.Dispatch(state.SetProducts{Products: catalog.DemoProducts()})
		n.Info(emptyCatalogMessage)
	default:
		log.WithField("products", len(products)).Info("catalog loaded")
		d.Dispatch(state.SetProducts{Products: products})
	}
	return nil
}
