package state

import "github.com/five82/cartly/internal/catalog"

// Action is a discrete state transition request. The set of actions is closed:
// only types in this package implement it.
type Action interface {
	// Kind is a stable label used in logs and metrics.
	Kind() string
	isAction()
}

type (
	// ToggleDarkMode flips the theme flag.
	ToggleDarkMode struct{}

	// SetProducts replaces the catalog.
	SetProducts struct{ Products []catalog.Product }

	// UpdateProduct replaces the catalog entry with the same ID. A product
	// missing from the catalog is ignored.
	UpdateProduct struct{ Product catalog.Product }

	// SetLoadingProducts marks a catalog fetch in flight.
	SetLoadingProducts struct{ Loading bool }

	// SetSearchQuery replaces the search text.
	SetSearchQuery struct{ Query string }

	// SetSelectedTags replaces the selected tag set.
	SetSelectedTags struct{ Tags []string }

	// ClearFilters resets the search text and tag selection together.
	ClearFilters struct{}

	// AddToCart merges Item into the active lines.
	AddToCart struct{ Item CartLineItem }

	// UpdateCartItem sets the quantity of the primary line for VariantID.
	UpdateCartItem struct {
		VariantID string
		Quantity  int
	}

	// RemoveFromCart drops the primary line for VariantID.
	RemoveFromCart struct{ VariantID string }

	// ToggleSaveForLater flips the saved flag on the primary line for VariantID.
	ToggleSaveForLater struct{ VariantID string }

	// RestoreSavedItem moves the first saved line for VariantID back into the
	// active lines, merging with an existing active line.
	RestoreSavedItem struct{ VariantID string }

	// ToggleCart opens or closes the cart drawer.
	ToggleCart struct{}

	// SetCartID records the remote cart identifier.
	SetCartID struct{ ID string }

	// SetOnlineStatus records connectivity.
	SetOnlineStatus struct{ Online bool }

	// AddNotification appends a fully formed notification to the queue.
	AddNotification struct{ Notification Notification }

	// RemoveNotification removes the notification with ID, if still queued.
	RemoveNotification struct{ ID string }

	// LoadCartFromStorage replaces the cart with persisted lines.
	LoadCartFromStorage struct{ Items []CartLineItem }
)

func (ToggleDarkMode) Kind() string      { return "toggle_dark_mode" }
func (SetProducts) Kind() string         { return "set_products" }
func (UpdateProduct) Kind() string       { return "update_product" }
func (SetLoadingProducts) Kind() string  { return "set_loading_products" }
func (SetSearchQuery) Kind() string      { return "set_search_query" }
func (SetSelectedTags) Kind() string     { return "set_selected_tags" }
func (ClearFilters) Kind() string        { return "clear_filters" }
func (AddToCart) Kind() string           { return "add_to_cart" }
func (UpdateCartItem) Kind() string      { return "update_cart_item" }
func (RemoveFromCart) Kind() string      { return "remove_from_cart" }
func (ToggleSaveForLater) Kind() string  { return "toggle_save_for_later" }
func (RestoreSavedItem) Kind() string    { return "restore_saved_item" }
func (ToggleCart) Kind() string          { return "toggle_cart" }
func (SetCartID) Kind() string           { return "set_cart_id" }
func (SetOnlineStatus) Kind() string     { return "set_online_status" }
func (AddNotification) Kind() string     { return "add_notification" }
func (RemoveNotification) Kind() string  { return "remove_notification" }
func (LoadCartFromStorage) Kind() string { return "load_cart_from_storage" }

func (ToggleDarkMode) isAction()      {}
func (SetProducts) isAction()         {}
func (UpdateProduct) isAction()       {}
func (SetLoadingProducts) isAction()  {}
func (SetSearchQuery) isAction()      {}
func (SetSelectedTags) isAction()     {}
func (ClearFilters) isAction()        {}
func (AddToCart) isAction()           {}
func (UpdateCartItem) isAction()      {}
func (RemoveFromCart) isAction()      {}
func (ToggleSaveForLater) isAction()  {}
func (RestoreSavedItem) isAction()    {}
func (ToggleCart) isAction()          {}
func (SetCartID) isAction()           {}
func (SetOnlineStatus) isAction()     {}
func (AddNotification) isAction()     {}
func (RemoveNotification) isAction()  {}
func (LoadCartFromStorage) isAction() {}
