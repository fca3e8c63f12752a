package service

import (
	"context"
	"fmt"
	"net/url"
	"sort"
	"strings"

	"github.com/anne-niyokwizerwa/ecommerce/internal/models"
	"github.com/anne-niyokwizerwa/ecommerce/internal/repository"
)

// ProductInput is an admin product form submission.
type ProductInput struct {
	Name        string  `json:"name"`
	Description string  `json:"description"`
	Price       float64 `json:"price"`
	Image       string  `json:"image"`
	Category    string  `json:"category"`
	Featured    bool    `json:"featured"`
	Stock       int     `json:"stock"`
}

// ValidationErrors maps an offending field to its message, for inline
// display next to the field. It is returned before any write attempt.
type ValidationErrors map[string]string

func (e ValidationErrors) Error() string {
	fields := make([]string, 0, len(e))
	for f := range e {
		fields = append(fields, f)
	}
	sort.Strings(fields)
	return fmt.Sprintf("validation failed: %s", strings.Join(fields, ", "))
}

// ValidateProduct checks an admin form submission. A nil map return
// means the input is valid.
func ValidateProduct(in ProductInput) ValidationErrors {
	errs := ValidationErrors{}

	if len(strings.TrimSpace(in.Name)) < 2 {
		errs["name"] = "Product name must be at least 2 characters"
	}
	if len(strings.TrimSpace(in.Description)) < 10 {
		errs["description"] = "Description must be at least 10 characters"
	}
	if in.Price <= 0 {
		errs["price"] = "Price must be a positive number"
	}
	if !validImageURL(in.Image) {
		errs["image"] = "Please enter a valid image URL"
	}
	if strings.TrimSpace(in.Category) == "" {
		errs["category"] = "Category is required"
	}
	if in.Stock < 0 {
		errs["stock"] = "Stock must be a non-negative integer"
	}

	if len(errs) == 0 {
		return nil
	}
	return errs
}

func validImageURL(raw string) bool {
	u, err := url.Parse(raw)
	if err != nil {
		return false
	}
	return (u.Scheme == "http" || u.Scheme == "https") && u.Host != ""
}

// ProductIndex receives newly created products so id lookups stay
// accurate between full catalog fetches.
type ProductIndex interface {
	NoteProduct(p models.Product)
}

// ProductService handles the admin back-office product operations.
type ProductService struct {
	store repository.ProductStore
	index ProductIndex // optional
}

// NewProductService creates a product service. index may be nil.
func NewProductService(store repository.ProductStore, index ProductIndex) *ProductService {
	return &ProductService{store: store, index: index}
}

// List returns all products ordered by name ascending. The ordering
// is a hard contract for the admin listing.
func (s *ProductService) List(ctx context.Context) ([]models.Product, error) {
	return s.store.ListByName(ctx)
}

// Create validates the input and stores a new product.
func (s *ProductService) Create(ctx context.Context, in ProductInput) (*models.Product, error) {
	if errs := ValidateProduct(in); errs != nil {
		return nil, errs
	}

	created, err := s.store.Create(ctx, productFromInput(in))
	if err != nil {
		return nil, fmt.Errorf("create product: %w", err)
	}
	if s.index != nil {
		s.index.NoteProduct(*created)
	}
	return created, nil
}

// Update validates the input and replaces the product with the given
// id.
func (s *ProductService) Update(ctx context.Context, id string, in ProductInput) (*models.Product, error) {
	if errs := ValidateProduct(in); errs != nil {
		return nil, errs
	}

	updated, err := s.store.Update(ctx, id, productFromInput(in))
	if err != nil {
		return nil, err
	}
	return updated, nil
}

// Delete removes the product with the given id.
func (s *ProductService) Delete(ctx context.Context, id string) error {
	return s.store.Delete(ctx, id)
}

func productFromInput(in ProductInput) models.Product {
	return models.Product{
		Name:        strings.TrimSpace(in.Name),
		Description: strings.TrimSpace(in.Description),
		Price:       in.Price,
		Image:       in.Image,
		Category:    strings.TrimSpace(in.Category),
		Featured:    in.Featured,
		Stock:       in.Stock,
	}
}
