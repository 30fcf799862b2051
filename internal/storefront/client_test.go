package storefront

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"
)

type capturedRequest struct {
	Path      string
	Token     string
	Query     string
	Variables map[string]any
}

// newTestServer answers every POST with body and records the request.
func newTestServer(t *testing.T, status int, body string) (*httptest.Server, func() capturedRequest) {
	t.Helper()
	var mu sync.Mutex
	var last capturedRequest
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var req graphQLRequest
		_ = json.NewDecoder(r.Body).Decode(&req)
		mu.Lock()
		last = capturedRequest{
			Path:      r.URL.Path,
			Token:     r.Header.Get(tokenHeader),
			Query:     req.Query,
			Variables: req.Variables,
		}
		mu.Unlock()
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		_, _ = w.Write([]byte(body))
	}))
	t.Cleanup(server.Close)
	return server, func() capturedRequest {
		mu.Lock()
		defer mu.Unlock()
		return last
	}
}

func newTestClient(t *testing.T, serverURL string) *Client {
	t.Helper()
	c, err := NewClient(Options{Domain: serverURL, AccessToken: " tok ", RequestsPerSecond: 1000})
	if err != nil {
		t.Fatalf("NewClient returned error: %v", err)
	}
	return c
}

func testContext(t *testing.T) context.Context {
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	t.Cleanup(cancel)
	return ctx
}

const productsBody = `{"data":{"products":{"edges":[{"node":{
  "id":"gid://shopify/Product/9","title":"Desk Lamp","handle":"desk-lamp",
  "description":"Warm light","descriptionHtml":"<p>Warm light</p>",
  "tags":["home","lighting"],"vendor":"Lumen","productType":"Home",
  "createdAt":"2024-01-01T00:00:00Z","updatedAt":"2024-02-01T00:00:00Z",
  "images":{"edges":[{"node":{"id":"i1","url":"https://cdn/lamp.jpg","altText":"Lamp"}}]},
  "variants":{"edges":[{"node":{
    "id":"gid://shopify/ProductVariant/9","title":"White",
    "price":{"amount":"7499.99","currencyCode":"INR"},
    "compareAtPrice":null,"availableForSale":true,
    "selectedOptions":[{"name":"Color","value":"White"}],"image":null}}]}
}}]}}}`

func TestBuildEndpoint(t *testing.T) {
	tests := []struct {
		name    string
		domain  string
		version string
		want    string
		wantErr bool
	}{
		{"bare host", "shop.myshopify.com", "", "https://shop.myshopify.com/api/2025-04/graphql.json", false},
		{"explicit version", "shop.myshopify.com", "2024-10", "https://shop.myshopify.com/api/2024-10/graphql.json", false},
		{"scheme kept and path replaced", "http://127.0.0.1:9999/ignored?x=1", "", "http://127.0.0.1:9999/api/2025-04/graphql.json", false},
		{"empty", "  ", "", "", true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			u, err := buildEndpoint(tt.domain, tt.version)
			if tt.wantErr {
				if err == nil {
					t.Fatalf("buildEndpoint(%q) returned nil error", tt.domain)
				}
				return
			}
			if err != nil {
				t.Fatalf("buildEndpoint returned error: %v", err)
			}
			if u.String() != tt.want {
				t.Fatalf("endpoint = %q, want %q", u.String(), tt.want)
			}
		})
	}
}

func TestClient_FetchProductsConvertsEdges(t *testing.T) {
	t.Parallel()

	server, last := newTestServer(t, http.StatusOK, productsBody)
	c := newTestClient(t, server.URL)

	products, err := c.FetchProducts(testContext(t), 5, " lamp ")
	if err != nil {
		t.Fatalf("FetchProducts returned error: %v", err)
	}
	if len(products) != 1 {
		t.Fatalf("products = %d, want 1", len(products))
	}
	p := products[0]
	if p.Handle != "desk-lamp" || len(p.Tags) != 2 || p.Vendor != "Lumen" {
		t.Fatalf("product = %#v", p)
	}
	if len(p.Images) != 1 || p.Images[0].URL != "https://cdn/lamp.jpg" {
		t.Fatalf("images = %#v", p.Images)
	}
	if len(p.Variants) != 1 || p.Variants[0].Price.Amount.StringFixed(2) != "7499.99" || p.Variants[0].CompareAtPrice != nil {
		t.Fatalf("variants = %#v", p.Variants)
	}
	if p.ImageURL(p.Variants[0]) != "https://cdn/lamp.jpg" {
		t.Fatalf("variant image should fall back to product image")
	}
	if !p.UpdatedAt.Equal(time.Date(2024, 2, 1, 0, 0, 0, 0, time.UTC)) {
		t.Fatalf("UpdatedAt = %v", p.UpdatedAt)
	}

	req := last()
	if req.Path != "/api/2025-04/graphql.json" {
		t.Fatalf("path = %q", req.Path)
	}
	if req.Token != "tok" {
		t.Fatalf("token header = %q, want tok", req.Token)
	}
	if !strings.Contains(req.Query, "products(first: $first, query: $query)") {
		t.Fatalf("query = %q", req.Query)
	}
	if req.Variables["first"] != float64(5) || req.Variables["query"] != "lamp" {
		t.Fatalf("variables = %#v", req.Variables)
	}
}

func TestClient_FetchProductMissing(t *testing.T) {
	t.Parallel()

	server, last := newTestServer(t, http.StatusOK, `{"data":{"product":null}}`)
	c := newTestClient(t, server.URL)

	p, err := c.FetchProduct(testContext(t), "nope")
	if err != nil || p != nil {
		t.Fatalf("FetchProduct = %#v, %v; want nil, nil", p, err)
	}
	if last().Variables["handle"] != "nope" {
		t.Fatalf("handle not sent: %#v", last().Variables)
	}

	if _, err := c.FetchProduct(testContext(t), " "); err == nil {
		t.Fatal("FetchProduct with empty handle returned nil error")
	}
}

func TestClient_CreateCartSendsEmptyList(t *testing.T) {
	t.Parallel()

	body := `{"data":{"cartCreate":{"cart":{"id":"gid://shopify/Cart/1","checkoutUrl":"https://shop/checkout/1",
	  "lines":{"edges":[]},"cost":{"totalAmount":{"amount":"0.0","currencyCode":"INR"},"subtotalAmount":{"amount":"0.0","currencyCode":"INR"}}},
	  "userErrors":[]}}}`
	server, last := newTestServer(t, http.StatusOK, body)
	c := newTestClient(t, server.URL)

	cart, err := c.CreateCart(testContext(t), nil)
	if err != nil {
		t.Fatalf("CreateCart returned error: %v", err)
	}
	if cart.ID != "gid://shopify/Cart/1" || cart.CheckoutURL != "https://shop/checkout/1" {
		t.Fatalf("cart = %#v", cart)
	}

	input, _ := last().Variables["input"].(map[string]any)
	lines, ok := input["lines"].([]any)
	if !ok || len(lines) != 0 {
		t.Fatalf("input.lines = %#v, want empty list", input["lines"])
	}
}

func TestClient_CartMutationsDecodeLines(t *testing.T) {
	t.Parallel()

	body := `{"data":{"cartLinesAdd":{"cart":{"id":"c1","checkoutUrl":"u",
	  "lines":{"edges":[{"node":{"id":"l1","quantity":2,"merchandise":{"id":"v1","title":"Black",
	    "price":{"amount":"10.00","currencyCode":"INR"},
	    "product":{"id":"p1","title":"Headphones","handle":"hp","images":{"edges":[{"node":{"url":"https://cdn/hp.jpg"}}]}}}}}]},
	  "cost":{"totalAmount":{"amount":"20.00","currencyCode":"INR"},"subtotalAmount":{"amount":"20.00","currencyCode":"INR"}}},
	  "userErrors":[]}}}`
	server, last := newTestServer(t, http.StatusOK, body)
	c := newTestClient(t, server.URL)

	cart, err := c.AddCartLines(testContext(t), "c1", []LineInput{{MerchandiseID: "v1", Quantity: 2}})
	if err != nil {
		t.Fatalf("AddCartLines returned error: %v", err)
	}
	if len(cart.Lines) != 1 || cart.Lines[0].Quantity != 2 || cart.Lines[0].ImageURL != "https://cdn/hp.jpg" {
		t.Fatalf("lines = %#v", cart.Lines)
	}
	if cart.Total.Amount.StringFixed(2) != "20.00" {
		t.Fatalf("total = %s", cart.Total.Amount)
	}
	if last().Variables["cartId"] != "c1" {
		t.Fatalf("cartId not sent: %#v", last().Variables)
	}

	if _, err := c.UpdateCartLines(testContext(t), "", nil); err == nil {
		t.Fatal("UpdateCartLines without cart id returned nil error")
	}
	if _, err := c.RemoveCartLines(testContext(t), "", nil); err == nil {
		t.Fatal("RemoveCartLines without cart id returned nil error")
	}
}

func TestClient_UserErrorsAreFailures(t *testing.T) {
	t.Parallel()

	body := `{"data":{"cartCreate":{"cart":{"id":"c1","checkoutUrl":"https://shop/checkout/1"},
	  "userErrors":[{"field":["input","lines","0"],"message":"Variant is sold out"},{"field":null,"message":"second"}]}}}`
	server, _ := newTestServer(t, http.StatusOK, body)
	c := newTestClient(t, server.URL)

	cart, err := c.CreateCart(testContext(t), []LineInput{{MerchandiseID: "v1", Quantity: 1}})
	if !errors.Is(err, ErrUserErrors) {
		t.Fatalf("error = %v, want ErrUserErrors", err)
	}
	var userErrs UserErrors
	if !errors.As(err, &userErrs) || userErrs[0].Message != "Variant is sold out" {
		t.Fatalf("errors.As = %#v", userErrs)
	}
	if err.Error() != "Variant is sold out" {
		t.Fatalf("message = %q", err.Error())
	}
	if cart == nil || cart.CheckoutURL == "" {
		t.Fatalf("cart should still be returned: %#v", cart)
	}
}

func TestClient_HTTPAndGraphQLErrors(t *testing.T) {
	t.Parallel()

	server, _ := newTestServer(t, http.StatusUnauthorized, `{"errors":"denied"}`)
	c := newTestClient(t, server.URL)
	_, err := c.FetchProducts(testContext(t), 1, "")
	var statusErr *StatusError
	if !errors.As(err, &statusErr) || statusErr.StatusCode != http.StatusUnauthorized {
		t.Fatalf("error = %v, want StatusError 401", err)
	}

	server, _ = newTestServer(t, http.StatusOK, `{"errors":[{"message":"Field 'x' doesn't exist"}]}`)
	c = newTestClient(t, server.URL)
	_, err = c.FetchProducts(testContext(t), 1, "")
	var gqlErr *GraphQLError
	if !errors.As(err, &gqlErr) || gqlErr.Error() != "Field 'x' doesn't exist" {
		t.Fatalf("error = %v, want GraphQLError", err)
	}

	server, _ = newTestServer(t, http.StatusOK, `{not-json`)
	c = newTestClient(t, server.URL)
	_, err = c.FetchProducts(testContext(t), 1, "")
	if err == nil || !strings.Contains(err.Error(), "decode response") {
		t.Fatalf("error = %v, want decode response error", err)
	}
}

func TestClient_TransportFailure(t *testing.T) {
	c, err := NewClient(Options{Domain: "http://127.0.0.1:1"})
	if err != nil {
		t.Fatalf("NewClient returned error: %v", err)
	}
	_, err = c.CreateCart(testContext(t), nil)
	if err == nil || !strings.Contains(err.Error(), "execute request") {
		t.Fatalf("error = %v, want execute request error", err)
	}
}

func TestClient_RateLimitHonoursContext(t *testing.T) {
	t.Parallel()

	server, _ := newTestServer(t, http.StatusOK, `{"data":{"products":{"edges":[]}}}`)
	c, err := NewClient(Options{Domain: server.URL, RequestsPerSecond: 0.001})
	if err != nil {
		t.Fatalf("NewClient returned error: %v", err)
	}

	if _, err := c.FetchProducts(testContext(t), 1, ""); err != nil {
		t.Fatalf("first request returned error: %v", err)
	}
	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()
	if _, err := c.FetchProducts(ctx, 1, ""); err == nil || !strings.Contains(err.Error(), "rate limit wait") {
		t.Fatalf("error = %v, want rate limit wait error", err)
	}
}
