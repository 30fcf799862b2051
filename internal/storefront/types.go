package storefront

import (
	"time"

	"github.com/five82/cartly/internal/catalog"
)

// LineInput adds merchandise to a cart.
type LineInput struct {
	MerchandiseID string `json:"merchandiseId"`
	Quantity      int    `json:"quantity"`
}

// LineUpdate changes the quantity of an existing remote cart line.
type LineUpdate struct {
	ID       string `json:"id"`
	Quantity int    `json:"quantity"`
}

// Cart is a remote cart as returned by the cart mutations.
type Cart struct {
	ID          string
	CheckoutURL string
	Lines       []CartLine
	Subtotal    catalog.Money
	Total       catalog.Money
}

// CartLine is one line of a remote cart.
type CartLine struct {
	ID           string
	Quantity     int
	VariantID    string
	VariantTitle string
	Price        catalog.Money
	ProductID    string
	ProductTitle string
	Handle       string
	ImageURL     string
}

// Wire types mirror the GraphQL connection shapes.

type moneyNode struct {
	Amount       string `json:"amount"`
	CurrencyCode string `json:"currencyCode"`
}

func (m moneyNode) money() catalog.Money {
	return catalog.NewMoney(m.Amount, m.CurrencyCode)
}

type imageNode struct {
	ID      string `json:"id"`
	URL     string `json:"url"`
	AltText string `json:"altText"`
}

func (n imageNode) image() catalog.Image {
	return catalog.Image{ID: n.ID, URL: n.URL, AltText: n.AltText}
}

type imageConnection struct {
	Edges []struct {
		Node imageNode `json:"node"`
	} `json:"edges"`
}

type variantNode struct {
	ID               string                   `json:"id"`
	Title            string                   `json:"title"`
	Price            moneyNode                `json:"price"`
	CompareAtPrice   *moneyNode               `json:"compareAtPrice"`
	AvailableForSale bool                     `json:"availableForSale"`
	SelectedOptions  []catalog.SelectedOption `json:"selectedOptions"`
	Image            *imageNode               `json:"image"`
}

type productNode struct {
	ID              string          `json:"id"`
	Title           string          `json:"title"`
	Handle          string          `json:"handle"`
	Description     string          `json:"description"`
	DescriptionHTML string          `json:"descriptionHtml"`
	Tags            []string        `json:"tags"`
	Vendor          string          `json:"vendor"`
	ProductType     string          `json:"productType"`
	CreatedAt       time.Time       `json:"createdAt"`
	UpdatedAt       time.Time       `json:"updatedAt"`
	Images          imageConnection `json:"images"`
	Variants        struct {
		Edges []struct {
			Node variantNode `json:"node"`
		} `json:"edges"`
	} `json:"variants"`
}

func (n productNode) product() catalog.Product {
	p := catalog.Product{
		ID:              n.ID,
		Title:           n.Title,
		Handle:          n.Handle,
		Description:     n.Description,
		DescriptionHTML: n.DescriptionHTML,
		Tags:            append([]string(nil), n.Tags...),
		Vendor:          n.Vendor,
		ProductType:     n.ProductType,
		CreatedAt:       n.CreatedAt,
		UpdatedAt:       n.UpdatedAt,
	}
	for _, e := range n.Images.Edges {
		p.Images = append(p.Images, e.Node.image())
	}
	for _, e := range n.Variants.Edges {
		v := catalog.Variant{
			ID:               e.Node.ID,
			Title:            e.Node.Title,
			Price:            e.Node.Price.money(),
			AvailableForSale: e.Node.AvailableForSale,
			SelectedOptions:  append([]catalog.SelectedOption(nil), e.Node.SelectedOptions...),
		}
		if e.Node.CompareAtPrice != nil {
			cmp := e.Node.CompareAtPrice.money()
			v.CompareAtPrice = &cmp
		}
		if e.Node.Image != nil {
			img := e.Node.Image.image()
			v.Image = &img
		}
		p.Variants = append(p.Variants, v)
	}
	return p
}

type cartNode struct {
	ID          string `json:"id"`
	CheckoutURL string `json:"checkoutUrl"`
	Lines       struct {
		Edges []struct {
			Node struct {
				ID          string `json:"id"`
				Quantity    int    `json:"quantity"`
				Merchandise struct {
					ID      string    `json:"id"`
					Title   string    `json:"title"`
					Price   moneyNode `json:"price"`
					Product struct {
						ID     string          `json:"id"`
						Title  string          `json:"title"`
						Handle string          `json:"handle"`
						Images imageConnection `json:"images"`
					} `json:"product"`
				} `json:"merchandise"`
			} `json:"node"`
		} `json:"edges"`
	} `json:"lines"`
	Cost struct {
		TotalAmount    moneyNode `json:"totalAmount"`
		SubtotalAmount moneyNode `json:"subtotalAmount"`
	} `json:"cost"`
}

func (n *cartNode) cart() *Cart {
	if n == nil {
		return nil
	}
	c := &Cart{
		ID:          n.ID,
		CheckoutURL: n.CheckoutURL,
		Subtotal:    n.Cost.SubtotalAmount.money(),
		Total:       n.Cost.TotalAmount.money(),
	}
	for _, e := range n.Lines.Edges {
		m := e.Node.Merchandise
		line := CartLine{
			ID:           e.Node.ID,
			Quantity:     e.Node.Quantity,
			VariantID:    m.ID,
			VariantTitle: m.Title,
			Price:        m.Price.money(),
			ProductID:    m.Product.ID,
			ProductTitle: m.Product.Title,
			Handle:       m.Product.Handle,
		}
		if len(m.Product.Images.Edges) > 0 {
			line.ImageURL = m.Product.Images.Edges[0].Node.URL
		}
		c.Lines = append(c.Lines, line)
	}
	return c
}

// cartPayload is the common shape of every cart mutation result.
type cartPayload struct {
	Cart       *cartNode  `json:"cart"`
	UserErrors UserErrors `json:"userErrors"`
}

func (p cartPayload) result() (*Cart, error) {
	cart := p.Cart.cart()
	if len(p.UserErrors) > 0 {
		return cart, p.UserErrors
	}
	return cart, nil
}
