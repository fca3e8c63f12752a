package catalog

import (
	"context"
	"errors"
	"testing"

	"github.com/anne-niyokwizerwa/ecommerce/internal/models"
	"github.com/anne-niyokwizerwa/ecommerce/internal/repository"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeStore wraps an in-memory store, counting calls and injecting
// failures.
type fakeStore struct {
	repository.ProductStore

	failAll    bool
	getAlls    int
	getByIDs   int
	categories int
}

var errTransport = errors.New("connection refused")

func (f *fakeStore) GetAll(ctx context.Context) ([]models.Product, error) {
	f.getAlls++
	if f.failAll {
		return nil, errTransport
	}
	return f.ProductStore.GetAll(ctx)
}

func (f *fakeStore) GetByCategory(ctx context.Context, category string) ([]models.Product, error) {
	f.categories++
	return f.ProductStore.GetByCategory(ctx, category)
}

func (f *fakeStore) GetByID(ctx context.Context, id string) (*models.Product, error) {
	f.getByIDs++
	return f.ProductStore.GetByID(ctx, id)
}

func newFakeStore() *fakeStore {
	return &fakeStore{ProductStore: repository.NewSeededProductStore()}
}

func TestFetchByCategory_AllSentinelEqualsFetchAll(t *testing.T) {
	store := newFakeStore()
	svc := NewService(store)
	ctx := context.Background()

	all, err := svc.FetchAll(ctx)
	require.NoError(t, err)

	viaSentinel, err := svc.FetchByCategory(ctx, "all")
	require.NoError(t, err)
	viaEmpty, err := svc.FetchByCategory(ctx, "")
	require.NoError(t, err)

	assert.Equal(t, all, viaSentinel)
	assert.Equal(t, all, viaEmpty)
	assert.Equal(t, 0, store.categories, "sentinel must not issue a category query")
}

func TestFetchByCategory_FiltersServerSide(t *testing.T) {
	svc := NewService(newFakeStore())

	products, err := svc.FetchByCategory(context.Background(), "accessories")

	require.NoError(t, err)
	require.NotEmpty(t, products)
	for _, p := range products {
		assert.Equal(t, "accessories", p.Category)
	}
}

func TestFetchAll_TransportFailureIsUnavailable(t *testing.T) {
	store := newFakeStore()
	store.failAll = true
	svc := NewService(store)

	_, err := svc.FetchAll(context.Background())

	assert.ErrorIs(t, err, ErrUnavailable)
	assert.Equal(t, 1, store.getAlls, "no automatic retry")
}

func TestFetchByID(t *testing.T) {
	svc := NewService(newFakeStore())

	product, err := svc.FetchByID(context.Background(), "4")

	require.NoError(t, err)
	assert.Equal(t, "Premium Headphone Stand", product.Name)
}

func TestFetchByID_NotFound(t *testing.T) {
	svc := NewService(newFakeStore())

	_, err := svc.FetchByID(context.Background(), "999")

	assert.ErrorIs(t, err, repository.ErrNotFound)
}

func TestFetchByID_KnownIDFilterShortCircuits(t *testing.T) {
	store := newFakeStore()
	svc := NewService(store)
	ctx := context.Background()

	_, err := svc.FetchAll(ctx)
	require.NoError(t, err)

	_, err = svc.FetchByID(ctx, "definitely-absent")
	assert.ErrorIs(t, err, repository.ErrNotFound)
	assert.Equal(t, 0, store.getByIDs, "definitive negative must skip the store")

	// Known ids still round-trip to the store.
	_, err = svc.FetchByID(ctx, "1")
	require.NoError(t, err)
	assert.Equal(t, 1, store.getByIDs)
}

func TestNoteProduct_KeepsNewIDsResolvable(t *testing.T) {
	store := newFakeStore()
	svc := NewService(store)
	ctx := context.Background()

	_, err := svc.FetchAll(ctx)
	require.NoError(t, err)

	created, err := store.Create(ctx, models.Product{Name: "New Gadget", Category: "accessories"})
	require.NoError(t, err)
	svc.NoteProduct(*created)

	got, err := svc.FetchByID(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, "New Gadget", got.Name)
}

func TestFetchRelated(t *testing.T) {
	svc := NewService(newFakeStore())

	// The seed catalog has 4 "accessories" products including id 4.
	related, err := svc.FetchRelated(context.Background(), "accessories", "4", 3)

	require.NoError(t, err)
	require.Len(t, related, 3)
	for _, p := range related {
		assert.Equal(t, "accessories", p.Category)
		assert.NotEqual(t, "4", p.ID)
	}
}

func TestFetchRelated_DefaultLimit(t *testing.T) {
	svc := NewService(newFakeStore())

	related, err := svc.FetchRelated(context.Background(), "accessories", "", 0)

	require.NoError(t, err)
	assert.Len(t, related, DefaultRelatedLimit)
}

func TestApplyTextFilter(t *testing.T) {
	products := []models.Product{
		{ID: "1", Name: "usb cable", Description: "braided"},
		{ID: "2", Name: "Laptop Stand", Description: "aluminum with cable management"},
		{ID: "3", Name: "Stylus", Description: "palm rejection"},
	}

	tests := []struct {
		name    string
		term    string
		wantIDs []string
	}{
		{name: "blank term is identity", term: "", wantIDs: []string{"1", "2", "3"}},
		{name: "whitespace term is identity", term: "   ", wantIDs: []string{"1", "2", "3"}},
		{name: "case-insensitive name match", term: "CABLE", wantIDs: []string{"1", "2"}},
		{name: "description match", term: "rejection", wantIDs: []string{"3"}},
		{name: "no match", term: "smartwatch", wantIDs: []string{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ApplyTextFilter(products, tt.term)

			ids := make([]string, 0, len(got))
			for _, p := range got {
				ids = append(ids, p.ID)
			}
			assert.Equal(t, tt.wantIDs, ids)
		})
	}
}

func TestApplyTextFilter_BlankTermReturnsInputSlice(t *testing.T) {
	products := []models.Product{{ID: "1"}}

	got := ApplyTextFilter(products, "")

	assert.Same(t, &products[0], &got[0], "blank term must return the input unchanged")
}
