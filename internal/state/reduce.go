package state

import (
	"slices"

	"github.com/five82/cartly/internal/catalog"
)

// Reduce applies action to s and returns the next state. It has no side
// effects and never writes to slices reachable from s. Actions it does not
// recognise leave the state unchanged.
func Reduce(s AppState, action Action) AppState {
	switch a := action.(type) {
	case ToggleDarkMode:
		s.DarkMode = !s.DarkMode
	case SetProducts:
		s.Products = slices.Clone(a.Products)
	case UpdateProduct:
		if i := slices.IndexFunc(s.Products, func(p catalog.Product) bool { return p.ID == a.Product.ID }); i >= 0 {
			products := slices.Clone(s.Products)
			products[i] = a.Product
			s.Products = products
		}
	case SetLoadingProducts:
		s.LoadingProducts = a.Loading
	case SetSearchQuery:
		s.SearchQuery = a.Query
	case SetSelectedTags:
		s.SelectedTags = slices.Clone(a.Tags)
	case ClearFilters:
		s.SearchQuery = ""
		s.SelectedTags = nil
	case AddToCart:
		s.CartItems = addLine(s.CartItems, a.Item)
	case UpdateCartItem:
		s.CartItems = updateLine(s.CartItems, a.VariantID, a.Quantity)
	case RemoveFromCart:
		if i := primaryLine(s.CartItems, a.VariantID); i >= 0 {
			s.CartItems = slices.Delete(slices.Clone(s.CartItems), i, i+1)
		}
	case ToggleSaveForLater:
		if i := primaryLine(s.CartItems, a.VariantID); i >= 0 {
			items := slices.Clone(s.CartItems)
			items[i].SavedForLater = !items[i].SavedForLater
			s.CartItems = items
		}
	case RestoreSavedItem:
		s.CartItems = restoreLine(s.CartItems, a.VariantID)
	case ToggleCart:
		s.CartOpen = !s.CartOpen
	case SetCartID:
		s.CartID = a.ID
	case SetOnlineStatus:
		s.Online = a.Online
	case AddNotification:
		s.Notifications = pushNotification(s.Notifications, a.Notification)
	case RemoveNotification:
		if i := slices.IndexFunc(s.Notifications, func(n Notification) bool { return n.ID == a.ID }); i >= 0 {
			s.Notifications = slices.Delete(slices.Clone(s.Notifications), i, i+1)
		}
	case LoadCartFromStorage:
		s.CartItems = normalizeLines(a.Items)
	}
	return s
}

// activeLine returns the index of the active line for variantID, or -1.
func activeLine(items []CartLineItem, variantID string) int {
	return slices.IndexFunc(items, func(item CartLineItem) bool {
		return item.VariantID == variantID && !item.SavedForLater
	})
}

// primaryLine picks the line an id-only operation targets: the active line
// when there is one, otherwise the first saved line.
func primaryLine(items []CartLineItem, variantID string) int {
	if i := activeLine(items, variantID); i >= 0 {
		return i
	}
	return slices.IndexFunc(items, func(item CartLineItem) bool {
		return item.VariantID == variantID
	})
}

func addLine(items []CartLineItem, item CartLineItem) []CartLineItem {
	if item.Quantity < 1 || item.VariantID == "" {
		return items
	}
	item.SavedForLater = false
	if i := activeLine(items, item.VariantID); i >= 0 {
		next := slices.Clone(items)
		next[i].Quantity += item.Quantity
		return next
	}
	next := make([]CartLineItem, 0, len(items)+1)
	next = append(next, items...)
	return append(next, item)
}

func updateLine(items []CartLineItem, variantID string, quantity int) []CartLineItem {
	i := primaryLine(items, variantID)
	if i < 0 {
		return items
	}
	next := slices.Clone(items)
	if quantity <= 0 {
		return slices.Delete(next, i, i+1)
	}
	next[i].Quantity = quantity
	return next
}

func restoreLine(items []CartLineItem, variantID string) []CartLineItem {
	saved := slices.IndexFunc(items, func(item CartLineItem) bool {
		return item.VariantID == variantID && item.SavedForLater
	})
	if saved < 0 {
		return items
	}
	next := slices.Clone(items)
	if active := activeLine(next, variantID); active >= 0 {
		next[active].Quantity += next[saved].Quantity
		return slices.Delete(next, saved, saved+1)
	}
	next[saved].SavedForLater = false
	return next
}

func pushNotification(queue []Notification, n Notification) []Notification {
	if len(queue) >= MaxNotifications {
		queue = queue[len(queue)-MaxNotifications+1:]
	}
	next := make([]Notification, 0, len(queue)+1)
	next = append(next, queue...)
	return append(next, n)
}

// normalizeLines drops lines with no quantity and folds duplicate active lines
// so persisted data cannot break the one-active-line-per-variant rule.
func normalizeLines(items []CartLineItem) []CartLineItem {
	next := make([]CartLineItem, 0, len(items))
	for _, item := range items {
		if item.Quantity < 1 || item.VariantID == "" {
			continue
		}
		if !item.SavedForLater {
			if i := activeLine(next, item.VariantID); i >= 0 {
				next[i].Quantity += item.Quantity
				continue
			}
		}
		next = append(next, item)
	}
	return next
}
