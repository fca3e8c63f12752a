package service

import (
	"context"
	"testing"

	"github.com/anne-niyokwizerwa/ecommerce/internal/models"
	"github.com/anne-niyokwizerwa/ecommerce/internal/repository"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validInput() ProductInput {
	return ProductInput{
		Name:        "Premium Tech Stand",
		Description: "Elegant aluminum laptop stand for better ergonomics.",
		Price:       89.99,
		Image:       "https://example.com/stand.jpg",
		Category:    "accessories",
		Stock:       25,
	}
}

func TestValidateProduct(t *testing.T) {
	tests := []struct {
		name      string
		mutate    func(in *ProductInput)
		wantField string
	}{
		{
			name:   "valid input",
			mutate: func(in *ProductInput) {},
		},
		{
			name:      "name too short",
			mutate:    func(in *ProductInput) { in.Name = "X" },
			wantField: "name",
		},
		{
			name:      "description too short",
			mutate:    func(in *ProductInput) { in.Description = "too short" },
			wantField: "description",
		},
		{
			name:      "zero price",
			mutate:    func(in *ProductInput) { in.Price = 0 },
			wantField: "price",
		},
		{
			name:      "negative price",
			mutate:    func(in *ProductInput) { in.Price = -5 },
			wantField: "price",
		},
		{
			name:      "invalid image url",
			mutate:    func(in *ProductInput) { in.Image = "not-a-url" },
			wantField: "image",
		},
		{
			name:      "non-http image url",
			mutate:    func(in *ProductInput) { in.Image = "ftp://example.com/a.jpg" },
			wantField: "image",
		},
		{
			name:      "empty category",
			mutate:    func(in *ProductInput) { in.Category = "  " },
			wantField: "category",
		},
		{
			name:      "negative stock",
			mutate:    func(in *ProductInput) { in.Stock = -1 },
			wantField: "stock",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			in := validInput()
			tt.mutate(&in)

			errs := ValidateProduct(in)

			if tt.wantField == "" {
				assert.Nil(t, errs)
				return
			}
			require.NotNil(t, errs)
			assert.Contains(t, errs, tt.wantField)
		})
	}
}

type recordingIndex struct {
	noted []models.Product
}

func (r *recordingIndex) NoteProduct(p models.Product) {
	r.noted = append(r.noted, p)
}

func TestProductService_CreateValidatesBeforeWrite(t *testing.T) {
	store := repository.NewInMemoryProductStore()
	svc := NewProductService(store, nil)

	in := validInput()
	in.Price = -1
	_, err := svc.Create(context.Background(), in)

	var verrs ValidationErrors
	require.ErrorAs(t, err, &verrs)
	assert.Contains(t, verrs, "price")

	products, _ := store.GetAll(context.Background())
	assert.Empty(t, products, "validation failure must block the write")
}

func TestProductService_CreateNotesIndex(t *testing.T) {
	store := repository.NewInMemoryProductStore()
	index := &recordingIndex{}
	svc := NewProductService(store, index)

	created, err := svc.Create(context.Background(), validInput())

	require.NoError(t, err)
	require.Len(t, index.noted, 1)
	assert.Equal(t, created.ID, index.noted[0].ID)
}

func TestProductService_UpdateMissing(t *testing.T) {
	svc := NewProductService(repository.NewInMemoryProductStore(), nil)

	_, err := svc.Update(context.Background(), "missing", validInput())

	assert.ErrorIs(t, err, repository.ErrNotFound)
}

func TestProductService_ListOrdersByName(t *testing.T) {
	svc := NewProductService(repository.NewSeededProductStore(), nil)

	products, err := svc.List(context.Background())

	require.NoError(t, err)
	require.NotEmpty(t, products)
	for i := 1; i < len(products); i++ {
		assert.LessOrEqual(t, products[i-1].Name, products[i].Name)
	}
}
