package cart

import (
	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"

	"github.com/five82/cartly/internal/catalog"
	"github.com/five82/cartly/internal/state"
)

// Store is the part of *state.Store the engine needs.
type Store interface {
	Dispatch(action state.Action)
	Snapshot() state.AppState
}

// Notifier surfaces user-visible messages. *notify.Scheduler implements it.
type Notifier interface {
	Success(message string) string
	Info(message string) string
}

// Tracker receives add-to-cart analytics. *analytics.Tracker implements it.
type Tracker interface {
	AddToCart(p catalog.Product, v catalog.Variant, quantity int)
}

// Engine is the cart-facing API over the store.
type Engine struct {
	store    Store
	notifier Notifier
	tracker  Tracker
	log      *logrus.Entry
}

// New builds an Engine. tracker may be nil.
func New(store Store, notifier Notifier, tracker Tracker, log *logrus.Entry) *Engine {
	if log == nil {
		log = logrus.NewEntry(logrus.StandardLogger())
	}
	return &Engine{
		store:    store,
		notifier: notifier,
		tracker:  tracker,
		log:      log.WithField("component", "cart"),
	}
}

// AddToCart adds quantity units of the given variant, merging into an active
// line for the same variant. A quantity below one adds a single unit. It
// reports false, without side effects, when the product has no such variant.
func (e *Engine) AddToCart(p catalog.Product, variantID string, quantity int) bool {
	v, ok := p.Variant(variantID)
	if !ok {
		e.log.WithFields(logrus.Fields{
			"product_id": p.ID,
			"variant_id": variantID,
		}).Debug("add to cart: unknown variant")
		return false
	}
	if quantity < 1 {
		quantity = 1
	}

	e.store.Dispatch(state.AddToCart{Item: LineFor(p, v, quantity)})
	if e.tracker != nil {
		e.tracker.AddToCart(p, v, quantity)
	}
	e.notifier.Success(p.Title + " added to cart!")
	return true
}

// LineFor snapshots a variant into a cart line.
func LineFor(p catalog.Product, v catalog.Variant, quantity int) state.CartLineItem {
	item := state.CartLineItem{
		VariantID:        v.ID,
		ProductID:        p.ID,
		Title:            p.Title,
		Variant:          v.Title,
		Price:            v.Price.Amount,
		CurrencyCode:     v.Price.CurrencyCode,
		Quantity:         quantity,
		Image:            p.ImageURL(v),
		AvailableForSale: v.AvailableForSale,
	}
	if v.CompareAtPrice != nil {
		cmp := v.CompareAtPrice.Amount
		item.CompareAtPrice = &cmp
	}
	return item
}

// UpdateQuantity sets the quantity of the variant's line. Zero or less
// removes it.
func (e *Engine) UpdateQuantity(variantID string, quantity int) {
	e.store.Dispatch(state.UpdateCartItem{VariantID: variantID, Quantity: quantity})
}

// RemoveFromCart removes the variant's line. It reports false when the cart
// holds no line for the variant.
func (e *Engine) RemoveFromCart(variantID string) bool {
	if !e.hasLine(variantID) {
		return false
	}
	e.store.Dispatch(state.RemoveFromCart{VariantID: variantID})
	e.notifier.Info("Item removed from cart")
	return true
}

// ToggleSaveForLater moves the variant's line between the cart and the saved
// list. Price and quantity are kept.
func (e *Engine) ToggleSaveForLater(variantID string) {
	e.store.Dispatch(state.ToggleSaveForLater{VariantID: variantID})
}

// RestoreSavedItem moves a saved line back into the cart.
func (e *Engine) RestoreSavedItem(variantID string) {
	e.store.Dispatch(state.RestoreSavedItem{VariantID: variantID})
}

func (e *Engine) hasLine(variantID string) bool {
	for _, item := range e.store.Snapshot().CartItems {
		if item.VariantID == variantID {
			return true
		}
	}
	return false
}

// Totals summarises the active part of the cart.
type Totals struct {
	Subtotal     decimal.Decimal
	ItemCount    int
	CurrencyCode string
}

// CartTotal sums price × quantity over active lines.
func CartTotal(items []state.CartLineItem) decimal.Decimal {
	total := decimal.Zero
	for _, item := range items {
		if !item.SavedForLater {
			total = total.Add(item.LineTotal())
		}
	}
	return total
}

// ItemCount sums quantities over active lines.
func ItemCount(items []state.CartLineItem) int {
	n := 0
	for _, item := range items {
		if !item.SavedForLater {
			n += item.Quantity
		}
	}
	return n
}

// TotalsOf computes Totals for items. The currency is taken from the first
// active line.
func TotalsOf(items []state.CartLineItem) Totals {
	t := Totals{
		Subtotal:  CartTotal(items),
		ItemCount: ItemCount(items),
	}
	for _, item := range items {
		if !item.SavedForLater && item.CurrencyCode != "" {
			t.CurrencyCode = item.CurrencyCode
			break
		}
	}
	return t
}

// Totals returns the totals of the current cart.
func (e *Engine) Totals() Totals {
	return TotalsOf(e.store.Snapshot().CartItems)
}

// CartTotal returns the current active subtotal.
func (e *Engine) CartTotal() decimal.Decimal { return e.Totals().Subtotal }

// ItemCount returns the current number of active units.
func (e *Engine) ItemCount() int { return e.Totals().ItemCount }
