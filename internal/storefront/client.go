package storefront

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"golang.org/x/time/rate"

	"github.com/five82/cartly/internal/catalog"
)

// Service defines the storefront operations the rest of the module uses.
// It is implemented by *Client and can be faked in tests.
type Service interface {
	FetchProducts(ctx context.Context, first int, query string) ([]catalog.Product, error)
	FetchProduct(ctx context.Context, handle string) (*catalog.Product, error)
	CreateCart(ctx context.Context, lines []LineInput) (*Cart, error)
	AddCartLines(ctx context.Context, cartID string, lines []LineInput) (*Cart, error)
	UpdateCartLines(ctx context.Context, cartID string, lines []LineUpdate) (*Cart, error)
	RemoveCartLines(ctx context.Context, cartID string, lineIDs []string) (*Cart, error)
}

// Ensure Client implements Service at compile time.
var _ Service = (*Client)(nil)

// Client talks to the Storefront GraphQL API.
type Client struct {
	endpoint  *url.URL
	token     string
	http      *http.Client
	limiter   *rate.Limiter
	userAgent string
}

const (
	DefaultAPIVersion        = "2025-04"
	DefaultRequestsPerSecond = 2.0
	defaultUserAgent         = "cartly/0.1"
	requestTimeout           = 10 * time.Second
	tokenHeader              = "X-Shopify-Storefront-Access-Token"
)

// Options configure a Client.
type Options struct {
	// Domain is the shop host, e.g. "example.myshopify.com". A value with a
	// scheme ("http://127.0.0.1:8080") is used as-is, which tests rely on.
	Domain            string
	AccessToken       string
	APIVersion        string
	RequestsPerSecond float64
	HTTPClient        *http.Client
}

// NewClient builds a Client for the configured shop.
func NewClient(opts Options) (*Client, error) {
	endpoint, err := buildEndpoint(opts.Domain, opts.APIVersion)
	if err != nil {
		return nil, err
	}
	rps := opts.RequestsPerSecond
	if rps <= 0 {
		rps = DefaultRequestsPerSecond
	}
	httpClient := opts.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{Timeout: requestTimeout}
	}
	return &Client{
		endpoint:  endpoint,
		token:     strings.TrimSpace(opts.AccessToken),
		http:      httpClient,
		limiter:   rate.NewLimiter(rate.Limit(rps), 1),
		userAgent: defaultUserAgent,
	}, nil
}

// Endpoint returns the GraphQL URL requests are sent to.
func (c *Client) Endpoint() string {
	return c.endpoint.String()
}

type graphQLRequest struct {
	Query     string         `json:"query"`
	Variables map[string]any `json:"variables,omitempty"`
}

type graphQLResponse struct {
	Data   json.RawMessage `json:"data"`
	Errors []struct {
		Message string `json:"message"`
	} `json:"errors"`
}

// do posts a GraphQL document and decodes the data member into dest.
func (c *Client) do(ctx context.Context, query string, variables map[string]any, dest any) error {
	if c == nil {
		return fmt.Errorf("client is nil")
	}
	if err := c.limiter.Wait(ctx); err != nil {
		return fmt.Errorf("rate limit wait: %w", err)
	}

	body, err := json.Marshal(graphQLRequest{Query: query, Variables: variables})
	if err != nil {
		return fmt.Errorf("encode request: %w", err)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint.String(), bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("User-Agent", c.userAgent)
	if c.token != "" {
		req.Header.Set(tokenHeader, c.token)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("execute request: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode >= 400 {
		snippet, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return &StatusError{StatusCode: resp.StatusCode, Body: strings.TrimSpace(string(snippet))}
	}

	var payload graphQLResponse
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	if len(payload.Errors) > 0 {
		gqlErr := &GraphQLError{}
		for _, e := range payload.Errors {
			gqlErr.Messages = append(gqlErr.Messages, e.Message)
		}
		return gqlErr
	}
	if dest == nil || len(payload.Data) == 0 {
		return nil
	}
	if err := json.Unmarshal(payload.Data, dest); err != nil {
		return fmt.Errorf("decode data: %w", err)
	}
	return nil
}

func buildEndpoint(domain, version string) (*url.URL, error) {
	trimmed := strings.TrimSpace(domain)
	if trimmed == "" {
		return nil, fmt.Errorf("storefront domain required")
	}
	if !strings.Contains(trimmed, "://") {
		trimmed = "https://" + trimmed
	}
	u, err := url.Parse(trimmed)
	if err != nil {
		return nil, fmt.Errorf("parse storefront domain %q: %w", domain, err)
	}
	if u.Host == "" {
		return nil, fmt.Errorf("storefront domain %q has no host", domain)
	}
	version = strings.TrimSpace(version)
	if version == "" {
		version = DefaultAPIVersion
	}
	u.Path = "/api/" + version + "/graphql.json"
	u.RawQuery = ""
	u.Fragment = ""
	return u, nil
}
