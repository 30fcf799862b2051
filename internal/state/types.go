package state

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/five82/cartly/internal/catalog"
)

// MaxNotifications bounds the notification queue.
const MaxNotifications = 3

// NotificationKind classifies a notification for display.
type NotificationKind string

const (
	KindSuccess NotificationKind = "success"
	KindError   NotificationKind = "error"
	KindInfo    NotificationKind = "info"
)

// Notification is a transient user-facing message.
type Notification struct {
	ID        string
	Kind      NotificationKind
	Message   string
	CreatedAt time.Time
}

// CartLineItem is one line in the cart. Prices are captured when the line is
// created and are not refreshed from the catalog.
type CartLineItem struct {
	VariantID        string           `json:"variantId"`
	ProductID        string           `json:"productId"`
	Title            string           `json:"title"`
	Variant          string           `json:"variant"`
	Price            decimal.Decimal  `json:"price"`
	CompareAtPrice   *decimal.Decimal `json:"compareAtPrice,omitempty"`
	CurrencyCode     string           `json:"currencyCode,omitempty"`
	Quantity         int              `json:"quantity"`
	Image            string           `json:"image"`
	AvailableForSale bool             `json:"availableForSale"`
	SavedForLater    bool             `json:"savedForLater,omitempty"`
}

// LineTotal returns price × quantity.
func (l CartLineItem) LineTotal() decimal.Decimal {
	return l.Price.Mul(decimal.NewFromInt(int64(l.Quantity)))
}

// AppState is the single source of truth for a storefront session. Values are
// replaced wholesale by Reduce; slices held by a returned AppState are never
// written to afterwards.
type AppState struct {
	DarkMode        bool
	Products        []catalog.Product
	LoadingProducts bool
	SearchQuery     string
	SelectedTags    []string
	CartItems       []CartLineItem
	CartOpen        bool
	CartID          string
	Online          bool
	Notifications   []Notification
}

// Initial returns the state a session starts from.
func Initial() AppState {
	return AppState{Online: true}
}

// Criteria returns the filter criteria held in the state.
func (s AppState) Criteria() catalog.Criteria {
	return catalog.Criteria{Query: s.SearchQuery, Tags: s.SelectedTags}
}

// VisibleProducts applies the current search and tag filter to the catalog.
func (s AppState) VisibleProducts() []catalog.Product {
	return catalog.Filter(s.Products, s.Criteria())
}

// ActiveItems returns lines not saved for later.
func (s AppState) ActiveItems() []CartLineItem {
	return partition(s.CartItems, false)
}

// SavedItems returns lines saved for later.
func (s AppState) SavedItems() []CartLineItem {
	return partition(s.CartItems, true)
}

func partition(items []CartLineItem, saved bool) []CartLineItem {
	out := make([]CartLineItem, 0, len(items))
	for _, item := range items {
		if item.SavedForLater == saved {
			out = append(out, item)
		}
	}
	return out
}
