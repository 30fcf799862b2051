package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/shopspring/decimal"

	"github.com/five82/cartly/internal/cart"
	"github.com/five82/cartly/internal/catalog"
	"github.com/five82/cartly/internal/state"
)

const (
	defaultWidth = 100
	cartWidth    = 44
)

var currencySymbols = map[string]string{
	"INR": "₹",
	"USD": "$",
	"EUR": "€",
	"GBP": "£",
}

// formatMoney renders an amount with its currency symbol, or the ISO code
// when no symbol is known.
func formatMoney(amount decimal.Decimal, currency string) string {
	if sym, ok := currencySymbols[currency]; ok {
		return sym + amount.StringFixed(2)
	}
	if currency == "" {
		return amount.StringFixed(2)
	}
	return currency + " " + amount.StringFixed(2)
}

func (m Model) styles() Styles {
	return ThemeFor(m.snapshot.DarkMode).Styles()
}

func (m Model) contentWidth() int {
	if m.width <= 0 {
		return defaultWidth
	}
	return m.width
}

func (m Model) renderMain() string {
	width := m.contentWidth()

	var main string
	switch {
	case m.snapshot.LoadingProducts:
		main = m.styles().MutedText.Render("Loading products...")
	case m.focus == focusDetail:
		main = m.renderDetail()
	default:
		main = m.renderProducts()
	}
	if m.snapshot.CartOpen {
		listWidth := width - cartWidth - 2
		if listWidth < 20 {
			main = m.renderCart()
		} else {
			left := lipgloss.NewStyle().Width(listWidth).Render(main)
			main = lipgloss.JoinHorizontal(lipgloss.Top, left, "  ", m.renderCart())
		}
	}

	parts := []string{
		m.renderHeader(),
		m.renderFilters(),
	}
	if notes := m.renderNotifications(); notes != "" {
		parts = append(parts, notes)
	}
	parts = append(parts, main)
	if m.showLogs {
		parts = append(parts, m.renderLogs())
	}
	parts = append(parts, m.renderFooter())
	return lipgloss.JoinVertical(lipgloss.Left, parts...)
}

func (m Model) renderHeader() string {
	styles := m.styles()
	totals := cart.TotalsOf(m.snapshot.CartItems)

	status := styles.SuccessText.Render("● online")
	if !m.snapshot.Online {
		status = styles.DangerText.Render("○ offline")
	}
	cartLabel := fmt.Sprintf("cart %d · %s", totals.ItemCount, formatMoney(totals.Subtotal, totals.CurrencyCode))

	left := styles.Logo.Render("cartly")
	right := strings.Join([]string{status, styles.Text.Render(cartLabel), styles.MutedText.Render(ThemeFor(m.snapshot.DarkMode).Name)}, "  ")
	gap := m.contentWidth() - lipgloss.Width(left) - lipgloss.Width(right) - 2
	if gap < 1 {
		gap = 1
	}
	return styles.Header.Width(m.contentWidth()).Render(left + strings.Repeat(" ", gap) + right)
}

func (m Model) renderFilters() string {
	styles := m.styles()

	var b strings.Builder
	if m.searching {
		b.WriteString(m.search.View())
	} else if q := m.snapshot.SearchQuery; q != "" {
		b.WriteString(styles.AccentText.Render("/ " + q))
	} else {
		b.WriteString(styles.MutedText.Render("/ search"))
	}

	tags := catalog.Tags(m.snapshot.Products)
	if len(tags) > 0 {
		b.WriteString("  ")
		selected := make(map[string]bool, len(m.snapshot.SelectedTags))
		for _, t := range m.snapshot.SelectedTags {
			selected[t] = true
		}
		rendered := make([]string, 0, len(tags))
		for i, tag := range tags {
			style := styles.Tag
			if selected[tag] {
				style = styles.TagSelected
			}
			label := tag
			if i == m.tagCursor {
				label = "‹" + tag + "›"
			}
			rendered = append(rendered, style.Render(label))
		}
		b.WriteString(strings.Join(rendered, ""))
	}
	return b.String()
}

func (m Model) renderNotifications() string {
	if len(m.snapshot.Notifications) == 0 {
		return ""
	}
	styles := m.styles()
	lines := make([]string, 0, len(m.snapshot.Notifications))
	for _, n := range m.snapshot.Notifications {
		badge := styles.NotificationStyle(string(n.Kind)).Render(string(n.Kind))
		lines = append(lines, badge+" "+styles.Text.Render(n.Message))
	}
	return lipgloss.JoinVertical(lipgloss.Left, lines...)
}

func (m Model) renderProducts() string {
	styles := m.styles()
	visible := m.snapshot.VisibleProducts()
	if len(visible) == 0 {
		if m.snapshot.Criteria().Active() {
			return styles.MutedText.Render("No products match the current filters. Press F to clear them.")
		}
		return styles.MutedText.Render("No products available.")
	}

	lines := make([]string, 0, len(visible))
	for i, p := range visible {
		line := productLine(p)
		if i == m.productCursor && m.focus == focusProducts {
			lines = append(lines, styles.Selected.Render("› "+line))
			continue
		}
		lines = append(lines, styles.Text.Render("  "+line))
	}
	return strings.Join(lines, "\n")
}

func productLine(p catalog.Product) string {
	if len(p.Variants) == 0 {
		return p.Title
	}
	v := p.Variants[0]
	line := fmt.Sprintf("%s  %s", p.Title, formatMoney(v.Price.Amount, v.Price.CurrencyCode))
	if !v.AvailableForSale {
		line += "  (sold out)"
	}
	return line
}

func (m Model) renderDetail() string {
	styles := m.styles()
	p, ok := m.selectedProduct()
	if !ok {
		return ""
	}

	var b strings.Builder
	b.WriteString(styles.Logo.Render(p.Title))
	if p.Vendor != "" {
		b.WriteString(styles.MutedText.Render("  by " + p.Vendor))
	}
	b.WriteString("\n\n")
	if p.Description != "" {
		b.WriteString(styles.Text.Render(p.Description))
		b.WriteString("\n\n")
	}

	for i, v := range p.Variants {
		label := v.Title
		if len(v.SelectedOptions) > 0 {
			opts := make([]string, 0, len(v.SelectedOptions))
			for _, o := range v.SelectedOptions {
				opts = append(opts, o.Name+": "+o.Value)
			}
			label = strings.Join(opts, ", ")
		}
		price := formatMoney(v.Price.Amount, v.Price.CurrencyCode)
		if v.CompareAtPrice != nil && v.CompareAtPrice.Amount.GreaterThan(v.Price.Amount) {
			price += styles.MutedText.Render(" (was " + formatMoney(v.CompareAtPrice.Amount, v.CompareAtPrice.CurrencyCode) + ")")
		}
		line := label + "  " + price
		if !v.AvailableForSale {
			line += styles.DangerText.Render("  sold out")
		}
		if i == m.variantCursor {
			b.WriteString(styles.Selected.Render("› " + line))
		} else {
			b.WriteString("  " + line)
		}
		b.WriteString("\n")
	}
	if len(p.Tags) > 0 {
		b.WriteString("\n")
		b.WriteString(styles.MutedText.Render("tags: " + strings.Join(p.Tags, ", ")))
	}
	return b.String()
}

func (m Model) renderCart() string {
	styles := m.styles()
	rows := m.cartRows()

	var b strings.Builder
	b.WriteString(styles.Logo.Render("Cart"))
	b.WriteString("\n")

	if len(rows) == 0 {
		b.WriteString(styles.MutedText.Render("Your cart is empty."))
	}

	savedHeader := false
	for i, row := range rows {
		if row.saved && !savedHeader {
			b.WriteString("\n")
			b.WriteString(styles.MutedText.Render("Saved for later"))
			b.WriteString("\n")
			savedHeader = true
		}
		line := cartLine(row.item)
		if i == m.cartCursor {
			b.WriteString(styles.Selected.Render("› " + line))
		} else {
			b.WriteString("  " + line)
		}
		b.WriteString("\n")
	}

	totals := cart.TotalsOf(m.snapshot.CartItems)
	b.WriteString("\n")
	b.WriteString(styles.Text.Render(fmt.Sprintf("Subtotal (%d items): %s", totals.ItemCount, formatMoney(totals.Subtotal, totals.CurrencyCode))))

	switch {
	case m.checkingOut:
		b.WriteString("\n")
		b.WriteString(styles.InfoText.Render("Creating checkout..."))
	case m.checkoutURL != "":
		b.WriteString("\n")
		b.WriteString(styles.SuccessText.Render("Checkout ready:"))
		b.WriteString("\n")
		b.WriteString(styles.AccentText.Render(m.checkoutURL))
	}

	return styles.Panel.Width(cartWidth).Render(b.String())
}

func cartLine(item state.CartLineItem) string {
	title := item.Title
	if item.Variant != "" && item.Variant != "Default Title" {
		title += " (" + item.Variant + ")"
	}
	return fmt.Sprintf("%s ×%d  %s", title, item.Quantity, formatMoney(item.LineTotal(), item.CurrencyCode))
}

const logPanelLines = 8

func (m Model) renderLogs() string {
	styles := m.styles()
	var b strings.Builder
	b.WriteString(styles.AccentText.Render("Session log"))
	entries := m.logLines
	if len(entries) > logPanelLines {
		entries = entries[len(entries)-logPanelLines:]
	}
	if len(entries) == 0 {
		b.WriteString("\n")
		b.WriteString(styles.MutedText.Render("No log entries yet."))
	}
	for _, e := range entries {
		style := styles.MutedText
		switch e.Level {
		case "warning":
			style = styles.WarningText
		case "error", "fatal", "panic":
			style = styles.DangerText
		}
		b.WriteString("\n")
		b.WriteString(style.Render(e.String()))
	}
	return b.String()
}

func (m Model) renderFooter() string {
	styles := m.styles()
	var bindings []string
	switch {
	case m.searching:
		bindings = []string{"enter/esc done"}
	case m.focus == focusCart:
		bindings = []string{"↑/↓ move", "+/- qty", "x remove", "s save/restore", "o checkout", "esc close"}
	case m.focus == focusDetail:
		bindings = []string{"←/→ variant", "a add", "esc back"}
	default:
		bindings = []string{"↑/↓ move", "enter details", "a add", "/ search", "[ ] t tags", "c cart"}
	}
	bindings = append(bindings, "? help", "q quit")
	return styles.Footer.Width(m.contentWidth()).Render(strings.Join(bindings, "  "))
}
