package storefront

import (
	"context"
	"fmt"
	"strings"

	"github.com/five82/cartly/internal/catalog"
)

// DefaultPageSize is the number of products requested when none is given.
const DefaultPageSize = 20

// FetchProducts returns up to first products in store order, optionally
// narrowed by a storefront search query.
func (c *Client) FetchProducts(ctx context.Context, first int, query string) ([]catalog.Product, error) {
	if first <= 0 {
		first = DefaultPageSize
	}
	vars := map[string]any{"first": first}
	if q := strings.TrimSpace(query); q != "" {
		vars["query"] = q
	}
	var data struct {
		Products struct {
			Edges []struct {
				Node productNode `json:"node"`
			} `json:"edges"`
		} `json:"products"`
	}
	if err := c.do(ctx, productsQuery, vars, &data); err != nil {
		return nil, fmt.Errorf("fetch products: %w", err)
	}
	products := make([]catalog.Product, 0, len(data.Products.Edges))
	for _, e := range data.Products.Edges {
		products = append(products, e.Node.product())
	}
	return products, nil
}

// FetchProduct returns the product with the given handle, or nil when the
// store has none.
func (c *Client) FetchProduct(ctx context.Context, handle string) (*catalog.Product, error) {
	handle = strings.TrimSpace(handle)
	if handle == "" {
		return nil, fmt.Errorf("product handle required")
	}
	var data struct {
		Product *productNode `json:"product"`
	}
	if err := c.do(ctx, productQuery, map[string]any{"handle": handle}, &data); err != nil {
		return nil, fmt.Errorf("fetch product %q: %w", handle, err)
	}
	if data.Product == nil {
		return nil, nil
	}
	p := data.Product.product()
	return &p, nil
}

// CreateCart creates a remote cart holding lines. An empty slice is sent as
// an empty list. When the store reports user errors they are returned as
// UserErrors together with whatever cart came back.
func (c *Client) CreateCart(ctx context.Context, lines []LineInput) (*Cart, error) {
	if lines == nil {
		lines = []LineInput{}
	}
	var data struct {
		CartCreate cartPayload `json:"cartCreate"`
	}
	vars := map[string]any{"input": map[string]any{"lines": lines}}
	if err := c.do(ctx, cartCreateMutation, vars, &data); err != nil {
		return nil, fmt.Errorf("create cart: %w", err)
	}
	return data.CartCreate.result()
}

// AddCartLines adds lines to an existing remote cart.
func (c *Client) AddCartLines(ctx context.Context, cartID string, lines []LineInput) (*Cart, error) {
	if strings.TrimSpace(cartID) == "" {
		return nil, fmt.Errorf("cart id required")
	}
	var data struct {
		CartLinesAdd cartPayload `json:"cartLinesAdd"`
	}
	vars := map[string]any{"cartId": cartID, "lines": lines}
	if err := c.do(ctx, cartLinesAddMutation, vars, &data); err != nil {
		return nil, fmt.Errorf("add cart lines: %w", err)
	}
	return data.CartLinesAdd.result()
}

// UpdateCartLines changes quantities of remote cart lines.
func (c *Client) UpdateCartLines(ctx context.Context, cartID string, lines []LineUpdate) (*Cart, error) {
	if strings.TrimSpace(cartID) == "" {
		return nil, fmt.Errorf("cart id required")
	}
	var data struct {
		CartLinesUpdate cartPayload `json:"cartLinesUpdate"`
	}
	vars := map[string]any{"cartId": cartID, "lines": lines}
	if err := c.do(ctx, cartLinesUpdateMutation, vars, &data); err != nil {
		return nil, fmt.Errorf("update cart lines: %w", err)
	}
	return data.CartLinesUpdate.result()
}

// RemoveCartLines removes remote cart lines by line id.
func (c *Client) RemoveCartLines(ctx context.Context, cartID string, lineIDs []string) (*Cart, error) {
	if strings.TrimSpace(cartID) == "" {
		return nil, fmt.Errorf("cart id required")
	}
	var data struct {
		CartLinesRemove cartPayload `json:"cartLinesRemove"`
	}
	vars := map[string]any{"cartId": cartID, "lineIds": lineIDs}
	if err := c.do(ctx, cartLinesRemoveMutation, vars, &data); err != nil {
		return nil, fmt.Errorf("remove cart lines: %w", err)
	}
	return data.CartLinesRemove.result()
}
