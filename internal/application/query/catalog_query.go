// internal/application/query/catalog_query.go
package query

import (
	"context"
	"sync"
	"time"

	"github.com/Conrad-Tinio/CS121-Online-Store/internal/domain/catalog"
	"github.com/Conrad-Tinio/CS121-Online-Store/internal/domain/filter"
)

// Request is the backend request descriptor for a filter state.
type Request struct {
	Path  string
	Query string
}

// BuildRequest is pure: the same filter state always yields an identical
// descriptor, so tests can assert on it directly.
func BuildRequest(codec filter.Codec, s filter.State) Request {
	return Request{
		Path:  "/api/products/",
		Query: codec.Encode(s),
	}
}

// ProductFetcher is the outbound port executing a catalog request.
type ProductFetcher interface {
	FetchProducts(ctx context.Context, req Request) ([]catalog.Product, error)
}

// Status of the visible catalog state.
type Status string

const (
	StatusIdle    Status = "idle"
	StatusLoading Status = "loading"
	StatusSuccess Status = "success"
	StatusError   Status = "error"
)

// VisibleState is what the list view renders.
type VisibleState struct {
	Status     Status
	Products   []catalog.Product
	Message    string
	Generation uint64
}

// CatalogQuery dispatches catalog requests and applies responses in
// generation order.
//
// Every Dispatch gets a monotonically increasing generation; a response is
// applied only when its generation still equals the latest issued one.
// Responses for superseded generations (successes and failures alike) are
// discarded, so the view always reflects the most recently requested
// filter state regardless of network completion order. In-flight requests
// are never cancelled on supersession; they complete and get ignored.
type CatalogQuery struct {
	mu         sync.Mutex
	generation uint64
	visible    VisibleState

	codec    filter.Codec
	products ProductFetcher
	timeout  time.Duration
}

// NewCatalogQuery builds a dispatcher. timeout bounds each request; zero
// means no per-request deadline beyond the caller's context.
func NewCatalogQuery(products ProductFetcher, codec filter.Codec, timeout time.Duration) *CatalogQuery {
	return &CatalogQuery{
		codec:    codec,
		products: products,
		visible:  VisibleState{Status: StatusIdle},
		timeout:  timeout,
	}
}

// UpdateKnownFacets swaps the codec's facet reference order, normally once
// after the facet definitions load.
func (q *CatalogQuery) UpdateKnownFacets(names []string) {
	q.mu.Lock()
	defer q.mu.Unlock()
	q.codec.KnownFacets = append([]string(nil), names...)
}

// Codec returns the codec currently in use (for URL round-tripping).
func (q *CatalogQuery) Codec() filter.Codec {
	q.mu.Lock()
	defer q.mu.Unlock()
	return filter.Codec{KnownFacets: append([]string(nil), q.codec.KnownFacets...)}
}

// Visible returns a copy of the render state.
func (q *CatalogQuery) Visible() VisibleState {
	q.mu.Lock()
	defer q.mu.Unlock()
	out := q.visible
	out.Products = append([]catalog.Product(nil), q.visible.Products...)
	return out
}

// Dispatch issues a catalog request for the state and applies the response
// if it is still the current generation. It returns the generation that
// was assigned. The counter increments on every call regardless of
// outcome.
func (q *CatalogQuery) Dispatch(ctx context.Context, s filter.State) uint64 {
	q.mu.Lock()
	q.generation++
	gen := q.generation
	req := BuildRequest(filter.Codec{KnownFacets: q.codec.KnownFacets}, s)
	q.visible.Status = StatusLoading
	q.visible.Message = ""
	q.visible.Generation = gen
	q.mu.Unlock()

	if q.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, q.timeout)
		defer cancel()
	}

	products, err := q.products.FetchProducts(ctx, req)
	q.apply(gen, products, err)
	return gen
}

// apply installs a response only when gen is still current; superseded
// responses are discarded unconditionally, including errors.
func (q *CatalogQuery) apply(gen uint64, products []catalog.Product, err error) bool {
	q.mu.Lock()
	defer q.mu.Unlock()

	if gen != q.generation {
		return false
	}

	if err != nil {
		// no stale display of a different query's results
		q.visible = VisibleState{
			Status:     StatusError,
			Products:   nil,
			Message:    err.Error(),
			Generation: gen,
		}
		return true
	}

	q.visible = VisibleState{
		Status:     StatusSuccess,
		Products:   products,
		Generation: gen,
	}
	return true
}
