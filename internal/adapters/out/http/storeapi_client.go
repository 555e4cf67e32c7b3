// internal/adapters/out/http/storeapi_client.go
package httpout

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/Conrad-Tinio/CS121-Online-Store/internal/application/query"
	"github.com/Conrad-Tinio/CS121-Online-Store/internal/domain/catalog"
	"github.com/Conrad-Tinio/CS121-Online-Store/internal/domain/order"
)

// APIError is a non-2xx response from the store backend. Detail carries
// the backend's human-readable message when the body had one.
type APIError struct {
	StatusCode int
	detail     string
}

func (e *APIError) Error() string {
	if e.detail != "" {
		return fmt.Sprintf("store api: status=%d detail=%s", e.StatusCode, e.detail)
	}
	return fmt.Sprintf("store api: status=%d", e.StatusCode)
}

func (e *APIError) Detail() string { return e.detail }

// TokenProvider yields the bearer token for authenticated endpoints.
type TokenProvider interface {
	Token(ctx context.Context) (string, error)
}

// StaticToken is a TokenProvider around a fixed token string.
type StaticToken string

func (t StaticToken) Token(ctx context.Context) (string, error) {
	return string(t), nil
}

// StoreAPIClient talks to the Django store backend. It implements the
// catalog, facet and order ports of the application layer.
type StoreAPIClient struct {
	baseURL string
	client  *http.Client
	tokens  TokenProvider
}

// baseURL example:
// - deployed: https://cs121-online-store.onrender.com
// - local: http://localhost:8000
func NewStoreAPIClient(baseURL string, tokens TokenProvider, timeout time.Duration) *StoreAPIClient {
	baseURL = strings.TrimRight(strings.TrimSpace(baseURL), "/")
	if timeout <= 0 {
		timeout = 15 * time.Second
	}
	return &StoreAPIClient{
		baseURL: baseURL,
		client:  &http.Client{Timeout: timeout},
		tokens:  tokens,
	}
}

// FetchProducts implements query.ProductFetcher.
func (c *StoreAPIClient) FetchProducts(ctx context.Context, req query.Request) ([]catalog.Product, error) {
	url := c.baseURL + req.Path
	if req.Query != "" {
		url += "?" + req.Query
	}
	var products []catalog.Product
	if err := c.getJSON(ctx, url, false, &products); err != nil {
		return nil, fmt.Errorf("fetch products: %w", err)
	}
	return products, nil
}

// FetchProduct returns a single product by id.
func (c *StoreAPIClient) FetchProduct(ctx context.Context, id int64) (catalog.Product, error) {
	var p catalog.Product
	url := fmt.Sprintf("%s/api/product/%d", c.baseURL, id)
	if err := c.getJSON(ctx, url, false, &p); err != nil {
		return catalog.Product{}, fmt.Errorf("fetch product %d: %w", id, err)
	}
	return p, nil
}

// FetchCategories implements query.CategoryFetcher.
func (c *StoreAPIClient) FetchCategories(ctx context.Context) ([]catalog.Category, error) {
	var cats []catalog.Category
	if err := c.getJSON(ctx, c.baseURL+"/api/categories/", false, &cats); err != nil {
		return nil, fmt.Errorf("fetch categories: %w", err)
	}
	return cats, nil
}

// tagTypePayload is the /api/tag-types/ wire shape.
type tagTypePayload struct {
	ID    int64  `json:"id"`
	Name  string `json:"name"`
	Color string `json:"color"`
	Tags  []struct {
		ID   int64  `json:"id"`
		Name string `json:"name"`
	} `json:"tags"`
}

// FetchFacetDefinitions implements query.FacetDefinitionFetcher. Tag types
// become facet definitions; each tag becomes one selectable value.
func (c *StoreAPIClient) FetchFacetDefinitions(ctx context.Context) ([]catalog.FacetDefinition, error) {
	var payload []tagTypePayload
	if err := c.getJSON(ctx, c.baseURL+"/api/tag-types/", false, &payload); err != nil {
		return nil, fmt.Errorf("fetch tag types: %w", err)
	}
	defs := make([]catalog.FacetDefinition, 0, len(payload))
	for _, tt := range payload {
		def := catalog.FacetDefinition{
			Name:       tt.Name,
			ColorToken: tt.Color,
		}
		for _, tag := range tt.Tags {
			def.Values = append(def.Values, catalog.FacetValue{
				Value: tag.Name,
				Label: tag.Name,
			})
		}
		defs = append(defs, def)
	}
	return defs, nil
}

// CreateOrder implements the checkout orchestrator's outbound port. The
// X-Request-ID header lets the backend correlate retries of the same
// client submission.
func (c *StoreAPIClient) CreateOrder(ctx context.Context, req order.CreateRequest) (order.Created, error) {
	b, err := json.Marshal(req)
	if err != nil {
		return order.Created{}, fmt.Errorf("create order: encode request: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/api/orders/create/", bytes.NewReader(b))
	if err != nil {
		return order.Created{}, err
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("X-Request-ID", uuid.NewString())
	if err := c.authorize(ctx, httpReq); err != nil {
		return order.Created{}, err
	}

	res, err := c.client.Do(httpReq)
	if err != nil {
		return order.Created{}, fmt.Errorf("create order: %w", err)
	}
	defer res.Body.Close()

	if res.StatusCode < 200 || res.StatusCode > 299 {
		return order.Created{}, c.apiError(res)
	}

	var created order.Created
	if err := json.NewDecoder(io.LimitReader(res.Body, 1<<20)).Decode(&created); err != nil {
		return order.Created{}, fmt.Errorf("create order: decode response: %w", err)
	}
	return created, nil
}

// FetchOrder implements query.OrderReader.
func (c *StoreAPIClient) FetchOrder(ctx context.Context, id int64) (order.Order, error) {
	var o order.Order
	url := fmt.Sprintf("%s/api/orders/%d/", c.baseURL, id)
	if err := c.getJSON(ctx, url, true, &o); err != nil {
		return order.Order{}, fmt.Errorf("fetch order %d: %w", id, err)
	}
	return o, nil
}

// FetchMyOrders implements query.OrderReader.
func (c *StoreAPIClient) FetchMyOrders(ctx context.Context) ([]order.Summary, error) {
	var summaries []order.Summary
	if err := c.getJSON(ctx, c.baseURL+"/api/orders/myorders/", true, &summaries); err != nil {
		return nil, fmt.Errorf("fetch my orders: %w", err)
	}
	return summaries, nil
}

func (c *StoreAPIClient) getJSON(ctx context.Context, url string, authed bool, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return err
	}
	req.Header.Set("Accept", "application/json")
	if authed {
		if err := c.authorize(ctx, req); err != nil {
			return err
		}
	}

	res, err := c.client.Do(req)
	if err != nil {
		return err
	}
	defer res.Body.Close()

	if res.StatusCode < 200 || res.StatusCode > 299 {
		return c.apiError(res)
	}
	return json.NewDecoder(io.LimitReader(res.Body, 1<<20)).Decode(out)
}

func (c *StoreAPIClient) authorize(ctx context.Context, req *http.Request) error {
	if c.tokens == nil {
		return fmt.Errorf("store api: no token provider configured")
	}
	token, err := c.tokens.Token(ctx)
	if err != nil {
		return fmt.Errorf("store api: obtain token: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+strings.TrimSpace(token))
	return nil
}

// apiError reads the error body and extracts the DRF "detail" field when
// present, falling back to the raw body.
func (c *StoreAPIClient) apiError(res *http.Response) error {
	body, _ := io.ReadAll(io.LimitReader(res.Body, 1<<20))
	detail := strings.TrimSpace(string(body))
	var structured struct {
		Detail string `json:"detail"`
	}
	if err := json.Unmarshal(body, &structured); err == nil && structured.Detail != "" {
		detail = structured.Detail
	}
	return &APIError{StatusCode: res.StatusCode, detail: detail}
}
