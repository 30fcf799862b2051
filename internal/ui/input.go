package ui

import (
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/five82/cartly/internal/catalog"
	"github.com/five82/cartly/internal/state"
)

// handleKey processes keyboard input.
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.showHelp {
		// Any key closes help
		m.showHelp = false
		return m, nil
	}

	if m.searching {
		return m.handleSearchKey(msg)
	}

	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit

	case key.Matches(msg, m.keys.Help):
		m.showHelp = true
		return m, nil

	case key.Matches(msg, m.keys.ToggleTheme):
		m.dispatch(state.ToggleDarkMode{})
		return m, nil

	case key.Matches(msg, m.keys.ToggleCart):
		m.dispatch(state.ToggleCart{})
		return m, nil

	case key.Matches(msg, m.keys.Dismiss):
		m.dismissNewest()
		return m, nil

	case key.Matches(msg, m.keys.Activity):
		if m.logPath == "" {
			return m, nil
		}
		m.showLogs = !m.showLogs
		if !m.showLogs {
			return m, nil
		}
		return m, tea.Batch(readLogCmd(m.logPath), logTickCmd())

	case key.Matches(msg, m.keys.Search):
		m.searching = true
		m.search.SetValue(m.snapshot.SearchQuery)
		m.search.CursorEnd()
		cmd := m.search.Focus()
		return m, cmd

	case key.Matches(msg, m.keys.ClearFilters):
		m.dispatch(state.ClearFilters{})
		m.search.SetValue("")
		return m, nil

	case key.Matches(msg, m.keys.PrevTag):
		m.tagCursor = clamp(m.tagCursor-1, len(catalog.Tags(m.snapshot.Products)))
		return m, nil

	case key.Matches(msg, m.keys.NextTag):
		m.tagCursor = clamp(m.tagCursor+1, len(catalog.Tags(m.snapshot.Products)))
		return m, nil

	case key.Matches(msg, m.keys.ToggleTag):
		m.toggleTag()
		return m, nil
	}

	switch m.focus {
	case focusCart:
		return m.handleCartKey(msg)
	case focusDetail:
		return m.handleDetailKey(msg)
	default:
		return m.handleProductsKey(msg)
	}
}

func (m Model) handleSearchKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Confirm), key.Matches(msg, m.keys.Escape):
		m.searching = false
		m.search.Blur()
		return m, nil
	}

	var cmd tea.Cmd
	m.search, cmd = m.search.Update(msg)
	if m.search.Value() != m.snapshot.SearchQuery {
		m.productCursor = 0
		m.dispatch(state.SetSearchQuery{Query: m.search.Value()})
	}
	return m, cmd
}

func (m Model) handleProductsKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	n := len(m.snapshot.VisibleProducts())
	switch {
	case key.Matches(msg, m.keys.Up):
		m.productCursor = clamp(m.productCursor-1, n)
		m.variantCursor = 0
	case key.Matches(msg, m.keys.Down):
		m.productCursor = clamp(m.productCursor+1, n)
		m.variantCursor = 0
	case key.Matches(msg, m.keys.Open):
		p, ok := m.selectedProduct()
		if !ok {
			return m, nil
		}
		m.focus = focusDetail
		m.variantCursor = 0
		if m.tracker != nil {
			m.tracker.ProductViewed(p)
		}
		if m.products != nil && p.Handle != "" {
			return m, fetchProductCmd(m.ctx, m.products, p.Handle)
		}
	case key.Matches(msg, m.keys.Add):
		m.addSelected()
	}
	return m, nil
}

func (m Model) handleDetailKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	p, ok := m.selectedProduct()
	if !ok {
		m.focus = focusProducts
		return m, nil
	}
	switch {
	case key.Matches(msg, m.keys.Escape):
		m.focus = focusProducts
		m.refresh()
	case key.Matches(msg, m.keys.PrevVariant):
		m.variantCursor = clamp(m.variantCursor-1, len(p.Variants))
	case key.Matches(msg, m.keys.NextVariant):
		m.variantCursor = clamp(m.variantCursor+1, len(p.Variants))
	case key.Matches(msg, m.keys.Add):
		m.addSelected()
	}
	return m, nil
}

func (m Model) handleCartKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	rows := m.cartRows()
	switch {
	case key.Matches(msg, m.keys.Escape):
		m.dispatch(state.ToggleCart{})
		return m, nil
	case key.Matches(msg, m.keys.Up):
		m.cartCursor = clamp(m.cartCursor-1, len(rows))
		return m, nil
	case key.Matches(msg, m.keys.Down):
		m.cartCursor = clamp(m.cartCursor+1, len(rows))
		return m, nil
	case key.Matches(msg, m.keys.Checkout):
		return m.startCheckout()
	}

	row, ok := m.selectedRow()
	if !ok || m.cart == nil {
		return m, nil
	}
	variantID := row.item.VariantID

	switch {
	case key.Matches(msg, m.keys.Increase):
		if !row.saved {
			m.cart.UpdateQuantity(variantID, row.item.Quantity+1)
		}
	case key.Matches(msg, m.keys.Decrease):
		// Removal goes through Remove; quantity never drops below one here.
		if !row.saved && row.item.Quantity > 1 {
			m.cart.UpdateQuantity(variantID, row.item.Quantity-1)
		}
	case key.Matches(msg, m.keys.Remove):
		// Line operations address the active line first, so a saved row can
		// only be removed when no active line shares its variant.
		if !row.saved || !m.hasActiveLine(variantID) {
			m.cart.RemoveFromCart(variantID)
		}
	case key.Matches(msg, m.keys.SaveForLater):
		if row.saved {
			m.cart.RestoreSavedItem(variantID)
		} else {
			m.cart.ToggleSaveForLater(variantID)
		}
	case key.Matches(msg, m.keys.Restore):
		if row.saved {
			m.cart.RestoreSavedItem(variantID)
		}
	}
	m.refresh()
	return m, nil
}

func (m Model) startCheckout() (tea.Model, tea.Cmd) {
	if m.checkout == nil || m.checkingOut || len(m.snapshot.ActiveItems()) == 0 {
		return m, nil
	}
	m.checkingOut = true
	m.checkoutURL = ""
	return m, checkoutCmd(m.ctx, m.checkout)
}

func (m *Model) addSelected() {
	p, ok := m.selectedProduct()
	if !ok || m.cart == nil || len(p.Variants) == 0 {
		return
	}
	v := p.Variants[clamp(m.variantCursor, len(p.Variants))]
	if !v.AvailableForSale {
		return
	}
	m.cart.AddToCart(p, v.ID, 1)
	m.refresh()
}

func (m *Model) toggleTag() {
	tags := catalog.Tags(m.snapshot.Products)
	if len(tags) == 0 {
		return
	}
	tag := tags[clamp(m.tagCursor, len(tags))]
	m.productCursor = 0
	m.dispatch(state.SetSelectedTags{Tags: catalog.ToggleTag(m.snapshot.SelectedTags, tag)})
}

func (m *Model) dismissNewest() {
	queue := m.snapshot.Notifications
	if len(queue) == 0 || m.notifier == nil {
		return
	}
	m.notifier.Dismiss(queue[len(queue)-1].ID)
	m.refresh()
}

func (m Model) hasActiveLine(variantID string) bool {
	for _, item := range m.snapshot.ActiveItems() {
		if item.VariantID == variantID {
			return true
		}
	}
	return false
}

func (m *Model) dispatch(a state.Action) {
	if m.store == nil {
		return
	}
	m.store.Dispatch(a)
	m.refresh()
}
