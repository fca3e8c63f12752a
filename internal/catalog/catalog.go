// Package catalog translates user-facing filter intent (category
// selection, free-text search) into store queries plus local
// refinement. It never duplicates the store's own indexing; the text
// filter is a secondary in-memory pass over the current category view.
package catalog

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/anne-niyokwizerwa/ecommerce/internal/models"
	"github.com/anne-niyokwizerwa/ecommerce/internal/repository"
	"github.com/bits-and-blooms/bloom/v3"
)

// ErrUnavailable reports a transport or service failure on a catalog
// fetch. Callers surface it to the user and must not retry
// automatically.
var ErrUnavailable = errors.New("catalog unavailable")

// DefaultRelatedLimit bounds FetchRelated when the caller passes no
// limit.
const DefaultRelatedLimit = 3

// Expected catalog size for the known-id filter. False positives only
// cost a store round trip.
const (
	knownIDCapacity = 10000
	knownIDFalsePos = 0.01
)

// Service is the catalog query layer over a ProductStore.
type Service struct {
	store repository.ProductStore

	mu     sync.RWMutex
	known  *bloom.BloomFilter
	seeded bool
}

// NewService creates a catalog service over the given store.
func NewService(store repository.ProductStore) *Service {
	return &Service{
		store: store,
		known: bloom.NewWithEstimates(knownIDCapacity, knownIDFalsePos),
	}
}

// FetchAll returns every catalog row and seeds the known-id filter.
func (s *Service) FetchAll(ctx context.Context) ([]models.Product, error) {
	products, err := s.store.GetAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", ErrUnavailable, err)
	}

	s.mu.Lock()
	s.known.ClearAll()
	for _, p := range products {
		s.known.AddString(p.ID)
	}
	s.seeded = true
	s.mu.Unlock()

	return products, nil
}

// FetchByCategory returns products in the category. The id "all" (or
// an empty id) is a sentinel meaning no filter and is equivalent to
// FetchAll.
func (s *Service) FetchByCategory(ctx context.Context, categoryID string) ([]models.Product, error) {
	if categoryID == "" || categoryID == models.CategoryAll {
		return s.FetchAll(ctx)
	}

	products, err := s.store.GetByCategory(ctx, categoryID)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", ErrUnavailable, err)
	}
	return products, nil
}

// FetchByID returns the product with the given id, or
// repository.ErrNotFound. Once the known-id filter is seeded, a
// definitive negative answers NotFound without a store round trip.
func (s *Service) FetchByID(ctx context.Context, productID string) (*models.Product, error) {
	s.mu.RLock()
	miss := s.seeded && !s.known.TestString(productID)
	s.mu.RUnlock()
	if miss {
		return nil, repository.ErrNotFound
	}

	product, err := s.store.GetByID(ctx, productID)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, err
	}
	if err != nil {
		return nil, fmt.Errorf("%w: %s", ErrUnavailable, err)
	}
	return product, nil
}

// FetchRelated returns same-category products excluding excludeID,
// truncated to limit. A limit <= 0 uses DefaultRelatedLimit. Ordering
// is whatever the store returns.
func (s *Service) FetchRelated(ctx context.Context, categoryID, excludeID string, limit int) ([]models.Product, error) {
	if limit <= 0 {
		limit = DefaultRelatedLimit
	}

	products, err := s.store.GetRelated(ctx, categoryID, excludeID, limit)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", ErrUnavailable, err)
	}
	return products, nil
}

// NoteProduct records a newly created product id in the known-id
// filter so FetchByID does not misreport it before the next FetchAll.
func (s *Service) NoteProduct(p models.Product) {
	s.mu.Lock()
	s.known.AddString(p.ID)
	s.mu.Unlock()
}

// ApplyTextFilter returns the products whose name or description
// contains term, case-insensitively. A blank term returns the input
// unchanged. The filter narrows the current category view; it never
// searches across categories.
func ApplyTextFilter(products []models.Product, term string) []models.Product {
	term = strings.TrimSpace(term)
	if term == "" {
		return products
	}
	term = strings.ToLower(term)

	filtered := make([]models.Product, 0, len(products))
	for _, p := range products {
		if strings.Contains(strings.ToLower(p.Name), term) ||
			strings.Contains(strings.ToLower(p.Description), term) {
			filtered = append(filtered, p)
		}
	}
	return filtered
}
