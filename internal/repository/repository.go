package repository

import (
	"context"
	"errors"

	"github.com/anne-niyokwizerwa/ecommerce/internal/models"
)

var (
	ErrNotFound = errors.New("not found")
)

// ProductStore defines the data access interface for the products
// table of the catalog store.
type ProductStore interface {
	GetAll(ctx context.Context) ([]models.Product, error)
	GetByCategory(ctx context.Context, category string) ([]models.Product, error)
	GetByID(ctx context.Context, id string) (*models.Product, error)
	GetRelated(ctx context.Context, category, excludeID string, limit int) ([]models.Product, error)

	// ListByName returns all products ordered by name ascending.
	// The ordering is a hard contract for the admin listing.
	ListByName(ctx context.Context) ([]models.Product, error)

	Create(ctx context.Context, p models.Product) (*models.Product, error)
	Update(ctx context.Context, id string, p models.Product) (*models.Product, error)
	Delete(ctx context.Context, id string) error
}

// OrderStore defines the data access interface for the orders table.
type OrderStore interface {
	// GetAll returns all orders, newest first.
	GetAll(ctx context.Context) ([]models.Order, error)
	GetByID(ctx context.Context, id string) (*models.Order, error)
	UpdateStatus(ctx context.Context, id string, status models.OrderStatus) (*models.Order, error)
}

// ProfileStore resolves access tokens to profile roles. It is the
// enforcement boundary for the admin surface; client-side checks are
// UI convenience only.
type ProfileStore interface {
	RoleForToken(ctx context.Context, token string) (string, error)
}
