// Package checkout hands the active cart to the storefront and returns the
// hosted checkout URL. Every failure becomes an error notification.
package checkout
