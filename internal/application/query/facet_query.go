// internal/application/query/facet_query.go
package query

import (
	"context"
	"log"
	"sync"

	"github.com/Conrad-Tinio/CS121-Online-Store/internal/domain/catalog"
)

// CategoryFetcher is the outbound port loading the category list.
type CategoryFetcher interface {
	FetchCategories(ctx context.Context) ([]catalog.Category, error)
}

// FacetDefinitionFetcher is the outbound port loading the dynamic facet
// definitions (tag types with their values).
type FacetDefinitionFetcher interface {
	FetchFacetDefinitions(ctx context.Context) ([]catalog.FacetDefinition, error)
}

// FacetCatalog loads categories and facet definitions and caches the first
// successful result for the lifetime of the session. Failed loads are not
// cached; the next call retries the backend.
type FacetCatalog struct {
	mu sync.Mutex

	categories     []catalog.Category
	categoriesOK   bool
	definitions    []catalog.FacetDefinition
	definitionsOK  bool
	categoryPort   CategoryFetcher
	definitionPort FacetDefinitionFetcher
}

func NewFacetCatalog(categories CategoryFetcher, definitions FacetDefinitionFetcher) *FacetCatalog {
	return &FacetCatalog{
		categoryPort:   categories,
		definitionPort: definitions,
	}
}

// Categories returns the cached category list, loading it on first use.
func (f *FacetCatalog) Categories(ctx context.Context) ([]catalog.Category, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.categoriesOK {
		return append([]catalog.Category(nil), f.categories...), nil
	}

	cats, err := f.categoryPort.FetchCategories(ctx)
	if err != nil {
		log.Printf("[facet_catalog] WARN: load categories: %v", err)
		return nil, err
	}
	f.categories = cats
	f.categoriesOK = true
	return append([]catalog.Category(nil), cats...), nil
}

// Definitions returns the cached facet definitions, loading on first use.
// An empty result from the backend is a valid catalog and is cached.
func (f *FacetCatalog) Definitions(ctx context.Context) ([]catalog.FacetDefinition, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.definitionsOK {
		return append([]catalog.FacetDefinition(nil), f.definitions...), nil
	}

	defs, err := f.definitionPort.FetchFacetDefinitions(ctx)
	if err != nil {
		log.Printf("[facet_catalog] WARN: load facet definitions: %v", err)
		return nil, err
	}
	f.definitions = defs
	f.definitionsOK = true
	return append([]catalog.FacetDefinition(nil), defs...), nil
}

// FacetNames returns the names of the cached definitions in catalog order,
// or nil when the definitions have not loaded yet. Filtering stays usable
// against the fixed dimensions either way.
func (f *FacetCatalog) FacetNames() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	if !f.definitionsOK {
		return nil
	}
	return catalog.FacetNames(f.definitions)
}

// Invalidate drops both caches, forcing a reload on next access.
func (f *FacetCatalog) Invalidate() {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.categories = nil
	f.categoriesOK = false
	f.definitions = nil
	f.definitionsOK = false
}
