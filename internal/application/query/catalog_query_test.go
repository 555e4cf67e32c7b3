// internal/application/query/catalog_query_test.go
package query

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Conrad-Tinio/CS121-Online-Store/internal/domain/catalog"
	"github.com/Conrad-Tinio/CS121-Online-Store/internal/domain/filter"
)

// blockingFetcher parks each FetchProducts call until its release channel
// is closed, so tests control response ordering.
type blockingFetcher struct {
	mu       sync.Mutex
	pending  []pendingCall
	started  chan struct{}
	products map[string][]catalog.Product
	errs     map[string]error
}

type pendingCall struct {
	query   string
	release chan struct{}
}

func newBlockingFetcher() *blockingFetcher {
	return &blockingFetcher{
		started:  make(chan struct{}, 16),
		products: map[string][]catalog.Product{},
		errs:     map[string]error{},
	}
}

func (f *blockingFetcher) FetchProducts(ctx context.Context, req Request) ([]catalog.Product, error) {
	release := make(chan struct{})
	f.mu.Lock()
	f.pending = append(f.pending, pendingCall{query: req.Query, release: release})
	f.mu.Unlock()
	f.started <- struct{}{}

	select {
	case <-release:
	case <-ctx.Done():
		return nil, ctx.Err()
	}

	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.errs[req.Query]; err != nil {
		return nil, err
	}
	return f.products[req.Query], nil
}

func (f *blockingFetcher) release(i int) {
	f.mu.Lock()
	call := f.pending[i]
	f.mu.Unlock()
	close(call.release)
}

type stubFetcher struct {
	mu       sync.Mutex
	products []catalog.Product
	err      error
	lastReq  Request
}

func (f *stubFetcher) FetchProducts(ctx context.Context, req Request) ([]catalog.Product, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.lastReq = req
	return f.products, f.err
}

func toys() []catalog.Product {
	return []catalog.Product{{ID: 1, ProductName: "Robot Kit"}}
}

func books() []catalog.Product {
	return []catalog.Product{{ID: 2, ProductName: "Go Primer"}, {ID: 3, ProductName: "Atlas"}}
}

func TestBuildRequestIsPure(t *testing.T) {
	codec := filter.Codec{KnownFacets: []string{"color"}}
	s := filter.Toggle(filter.State{}, filter.DimCategory, "Toys")
	s = filter.Toggle(s, "color", "red")

	a := BuildRequest(codec, s)
	b := BuildRequest(codec, s)

	assert.Equal(t, "/api/products/", a.Path)
	assert.Equal(t, a, b)
	assert.Equal(t, "category=Toys&color=red", a.Query)
}

func TestDispatchSuccess(t *testing.T) {
	fetcher := &stubFetcher{products: toys()}
	q := NewCatalogQuery(fetcher, filter.Codec{}, 0)

	gen := q.Dispatch(context.Background(), filter.Toggle(filter.State{}, filter.DimCategory, "Toys"))

	v := q.Visible()
	assert.Equal(t, uint64(1), gen)
	assert.Equal(t, StatusSuccess, v.Status)
	assert.Equal(t, toys(), v.Products)
	assert.Equal(t, gen, v.Generation)
	assert.Equal(t, "category=Toys", fetcher.lastReq.Query)
}

func TestDispatchErrorClearsProducts(t *testing.T) {
	fetcher := &stubFetcher{products: toys()}
	q := NewCatalogQuery(fetcher, filter.Codec{}, 0)
	q.Dispatch(context.Background(), filter.State{})

	fetcher.mu.Lock()
	fetcher.products = nil
	fetcher.err = errors.New("502 bad gateway")
	fetcher.mu.Unlock()

	q.Dispatch(context.Background(), filter.Toggle(filter.State{}, filter.DimCategory, "Books"))

	v := q.Visible()
	assert.Equal(t, StatusError, v.Status)
	assert.Empty(t, v.Products)
	assert.Contains(t, v.Message, "502")
}

func TestLateResponseForSupersededGenerationIsDiscarded(t *testing.T) {
	fetcher := newBlockingFetcher()
	fetcher.products["category=Toys"] = toys()
	fetcher.products["category=Books"] = books()
	q := NewCatalogQuery(fetcher, filter.Codec{}, 0)

	var wg sync.WaitGroup
	wg.Add(2)
	go func() {
		defer wg.Done()
		q.Dispatch(context.Background(), filter.Toggle(filter.State{}, filter.DimCategory, "Toys"))
	}()
	<-fetcher.started
	go func() {
		defer wg.Done()
		q.Dispatch(context.Background(), filter.Toggle(filter.State{}, filter.DimCategory, "Books"))
	}()
	<-fetcher.started

	// Books (generation 2) completes first, then Toys (generation 1)
	// arrives late.
	fetcher.release(1)
	require.Eventually(t, func() bool {
		return q.Visible().Status == StatusSuccess
	}, time.Second, time.Millisecond)
	fetcher.release(0)
	wg.Wait()

	v := q.Visible()
	assert.Equal(t, StatusSuccess, v.Status)
	assert.Equal(t, books(), v.Products)
	assert.Equal(t, uint64(2), v.Generation)
}

func TestLateErrorForSupersededGenerationIsDiscarded(t *testing.T) {
	fetcher := newBlockingFetcher()
	fetcher.errs["category=Toys"] = errors.New("timeout")
	fetcher.products["category=Books"] = books()
	q := NewCatalogQuery(fetcher, filter.Codec{}, 0)

	var wg sync.WaitGroup
	wg.Add(2)
	go func() {
		defer wg.Done()
		q.Dispatch(context.Background(), filter.Toggle(filter.State{}, filter.DimCategory, "Toys"))
	}()
	<-fetcher.started
	go func() {
		defer wg.Done()
		q.Dispatch(context.Background(), filter.Toggle(filter.State{}, filter.DimCategory, "Books"))
	}()
	<-fetcher.started

	fetcher.release(1)
	require.Eventually(t, func() bool {
		return q.Visible().Status == StatusSuccess
	}, time.Second, time.Millisecond)
	fetcher.release(0)
	wg.Wait()

	v := q.Visible()
	assert.Equal(t, StatusSuccess, v.Status)
	assert.Equal(t, books(), v.Products)
	assert.Empty(t, v.Message)
}

func TestGenerationIncrementsOnEveryDispatch(t *testing.T) {
	fetcher := &stubFetcher{err: errors.New("down")}
	q := NewCatalogQuery(fetcher, filter.Codec{}, 0)

	g1 := q.Dispatch(context.Background(), filter.State{})
	g2 := q.Dispatch(context.Background(), filter.State{})
	g3 := q.Dispatch(context.Background(), filter.State{})

	assert.Equal(t, uint64(1), g1)
	assert.Equal(t, uint64(2), g2)
	assert.Equal(t, uint64(3), g3)
}

func TestUpdateKnownFacetsOrdersEncoding(t *testing.T) {
	fetcher := &stubFetcher{}
	q := NewCatalogQuery(fetcher, filter.Codec{}, 0)
	q.UpdateKnownFacets([]string{"size", "color"})

	s := filter.Toggle(filter.State{}, "color", "red")
	s = filter.Toggle(s, "size", "xl")
	q.Dispatch(context.Background(), s)

	assert.Equal(t, "size=xl&color=red", fetcher.lastReq.Query)
}
