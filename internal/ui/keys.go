package ui

import "github.com/charmbracelet/bubbles/key"

// keyMap defines all keyboard bindings for the storefront.
type keyMap struct {
	// Global
	Quit        key.Binding
	Help        key.Binding
	ToggleTheme key.Binding
	ToggleCart  key.Binding
	Escape      key.Binding
	Dismiss     key.Binding
	Activity    key.Binding

	// Navigation
	Up          key.Binding
	Down        key.Binding
	PrevVariant key.Binding
	NextVariant key.Binding

	// Catalog
	Open         key.Binding
	Add          key.Binding
	Search       key.Binding
	PrevTag      key.Binding
	NextTag      key.Binding
	ToggleTag    key.Binding
	ClearFilters key.Binding

	// Cart drawer
	Increase     key.Binding
	Decrease     key.Binding
	Remove       key.Binding
	SaveForLater key.Binding
	Restore      key.Binding
	Checkout     key.Binding

	// Search input
	Confirm key.Binding
}

// DefaultKeyMap returns the default key bindings.
func DefaultKeyMap() keyMap {
	return keyMap{
		Quit: key.NewBinding(
			key.WithKeys("ctrl+c", "q"),
			key.WithHelp("q", "Quit"),
		),
		Help: key.NewBinding(
			key.WithKeys("?"),
			key.WithHelp("?", "Toggle help"),
		),
		ToggleTheme: key.NewBinding(
			key.WithKeys("T"),
			key.WithHelp("T", "Light/dark theme"),
		),
		ToggleCart: key.NewBinding(
			key.WithKeys("c"),
			key.WithHelp("c", "Open/close cart"),
		),
		Escape: key.NewBinding(
			key.WithKeys("esc"),
			key.WithHelp("esc", "Back"),
		),
		Dismiss: key.NewBinding(
			key.WithKeys("d"),
			key.WithHelp("d", "Dismiss notification"),
		),
		Activity: key.NewBinding(
			key.WithKeys("L"),
			key.WithHelp("L", "Session log"),
		),

		Up: key.NewBinding(
			key.WithKeys("up", "k"),
			key.WithHelp("↑/k", "Move up"),
		),
		Down: key.NewBinding(
			key.WithKeys("down", "j"),
			key.WithHelp("↓/j", "Move down"),
		),
		PrevVariant: key.NewBinding(
			key.WithKeys("left", "h"),
			key.WithHelp("←/h", "Previous variant"),
		),
		NextVariant: key.NewBinding(
			key.WithKeys("right", "l"),
			key.WithHelp("→/l", "Next variant"),
		),

		Open: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "Product details"),
		),
		Add: key.NewBinding(
			key.WithKeys("a"),
			key.WithHelp("a", "Add to cart"),
		),
		Search: key.NewBinding(
			key.WithKeys("/"),
			key.WithHelp("/", "Search"),
		),
		PrevTag: key.NewBinding(
			key.WithKeys("["),
			key.WithHelp("[", "Previous tag"),
		),
		NextTag: key.NewBinding(
			key.WithKeys("]"),
			key.WithHelp("]", "Next tag"),
		),
		ToggleTag: key.NewBinding(
			key.WithKeys("t"),
			key.WithHelp("t", "Toggle tag"),
		),
		ClearFilters: key.NewBinding(
			key.WithKeys("F"),
			key.WithHelp("F", "Clear filters"),
		),

		Increase: key.NewBinding(
			key.WithKeys("+", "="),
			key.WithHelp("+", "Increase quantity"),
		),
		Decrease: key.NewBinding(
			key.WithKeys("-"),
			key.WithHelp("-", "Decrease quantity"),
		),
		Remove: key.NewBinding(
			key.WithKeys("x", "delete"),
			key.WithHelp("x", "Remove line"),
		),
		SaveForLater: key.NewBinding(
			key.WithKeys("s"),
			key.WithHelp("s", "Save for later"),
		),
		Restore: key.NewBinding(
			key.WithKeys("r"),
			key.WithHelp("r", "Move to cart"),
		),
		Checkout: key.NewBinding(
			key.WithKeys("o"),
			key.WithHelp("o", "Checkout"),
		),

		Confirm: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "Confirm"),
		),
	}
}
