// Package cart is the cart-facing API over the state store: adding variants,
// changing quantities, saving lines for later and computing totals. Totals
// only ever count active lines.
package cart
