package catalog

import (
	"context"
	"errors"
	"sync"

	"github.com/anne-niyokwizerwa/ecommerce/internal/models"
)

// ErrStale reports a fetch whose triggering input was superseded
// before the result arrived. The result was discarded, not applied.
var ErrStale = errors.New("stale catalog fetch discarded")

// View holds the current product listing for one browsing session and
// guards against out-of-order fetch results: each Load gets a
// generation token, and a result is applied only if its generation is
// still the latest. A slow early category/search fetch can therefore
// never overwrite a faster later one.
type View struct {
	svc *Service

	mu       sync.Mutex
	gen      uint64
	category string
	term     string
	products []models.Product
}

// NewView creates a view over the catalog service.
func NewView(svc *Service) *View {
	return &View{svc: svc}
}

// Load fetches the category's products, applies the text filter, and
// installs the result as current. Returns ErrStale when a newer Load
// superseded this one mid-fetch.
func (v *View) Load(ctx context.Context, categoryID, term string) ([]models.Product, error) {
	v.mu.Lock()
	v.gen++
	gen := v.gen
	v.category, v.term = categoryID, term
	v.mu.Unlock()

	products, err := v.svc.FetchByCategory(ctx, categoryID)
	if err != nil {
		return nil, err
	}
	products = ApplyTextFilter(products, term)

	v.mu.Lock()
	defer v.mu.Unlock()
	if gen != v.gen {
		return nil, ErrStale
	}
	v.products = products
	return products, nil
}

// Current returns the last applied listing and the filter inputs that
// produced it.
func (v *View) Current() (products []models.Product, categoryID, term string) {
	v.mu.Lock()
	defer v.mu.Unlock()

	products = make([]models.Product, len(v.products))
	copy(products, v.products)
	return products, v.category, v.term
}
