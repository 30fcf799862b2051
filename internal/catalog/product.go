package catalog

import (
	"time"

	"github.com/shopspring/decimal"
)

// Money is a decimal amount tagged with its ISO currency code.
type Money struct {
	Amount       decimal.Decimal `json:"amount"`
	CurrencyCode string          `json:"currencyCode"`
}

// NewMoney parses a decimal string such as "24999.99". Invalid input yields zero.
func NewMoney(amount, currency string) Money {
	d, err := decimal.NewFromString(amount)
	if err != nil {
		d = decimal.Zero
	}
	return Money{Amount: d, CurrencyCode: currency}
}

// Image references a hosted product image.
type Image struct {
	ID      string `json:"id"`
	URL     string `json:"url"`
	AltText string `json:"altText,omitempty"`
}

// SelectedOption is one (name, value) pair describing a variant, e.g. Color=Black.
type SelectedOption struct {
	Name  string `json:"name"`
	Value string `json:"value"`
}

// Variant is a purchasable configuration of a product.
type Variant struct {
	ID               string           `json:"id"`
	Title            string           `json:"title"`
	Price            Money            `json:"price"`
	CompareAtPrice   *Money           `json:"compareAtPrice,omitempty"`
	AvailableForSale bool             `json:"availableForSale"`
	SelectedOptions  []SelectedOption `json:"selectedOptions"`
	Image            *Image           `json:"image,omitempty"`
}

// Product is a catalog entry. Products are treated as immutable once loaded.
type Product struct {
	ID              string    `json:"id"`
	Title           string    `json:"title"`
	Handle          string    `json:"handle"`
	Description     string    `json:"description"`
	DescriptionHTML string    `json:"descriptionHtml"`
	Images          []Image   `json:"images"`
	Variants        []Variant `json:"variants"`
	Tags            []string  `json:"tags"`
	Vendor          string    `json:"vendor"`
	ProductType     string    `json:"productType"`
	CreatedAt       time.Time `json:"createdAt"`
	UpdatedAt       time.Time `json:"updatedAt"`
}

// Variant looks up a variant by id.
func (p Product) Variant(id string) (Variant, bool) {
	for _, v := range p.Variants {
		if v.ID == id {
			return v, true
		}
	}
	return Variant{}, false
}

// ImageURL returns the variant's image when set, else the product's first image.
func (p Product) ImageURL(v Variant) string {
	if v.Image != nil && v.Image.URL != "" {
		return v.Image.URL
	}
	if len(p.Images) > 0 {
		return p.Images[0].URL
	}
	return ""
}

// HasTag reports whether the product carries tag exactly.
func (p Product) HasTag(tag string) bool {
	for _, t := range p.Tags {
		if t == tag {
			return true
		}
	}
	return false
}
