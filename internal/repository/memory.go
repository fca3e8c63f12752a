package repository

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/anne-niyokwizerwa/ecommerce/internal/models"
	"github.com/google/uuid"
)

// InMemoryProductStore implements ProductStore with in-memory storage.
// It is the default in dev mode and backs the package tests.
type InMemoryProductStore struct {
	mu       sync.RWMutex
	products map[string]models.Product
	order    []string // insertion order for stable GetAll results
}

// NewInMemoryProductStore creates an empty in-memory product store.
func NewInMemoryProductStore() *InMemoryProductStore {
	return &InMemoryProductStore{products: make(map[string]models.Product)}
}

// NewSeededProductStore creates an in-memory product store preloaded
// with the storefront's demo catalog.
func NewSeededProductStore() *InMemoryProductStore {
	s := NewInMemoryProductStore()
	for _, p := range seedProducts {
		s.products[p.ID] = p
		s.order = append(s.order, p.ID)
	}
	return s
}

var seedProducts = []models.Product{
	{ID: "1", Name: "Premium Tech Stand", Description: "Elegant aluminum laptop stand for better ergonomics and cooling.", Price: 89.99, Image: "https://images.unsplash.com/photo-1498050108023-c5249f4df085", Category: "accessories", Featured: true, Stock: 25},
	{ID: "2", Name: "Wireless Charging Pad", Description: "Fast 15W wireless charging pad with sleek minimalist design.", Price: 49.99, Image: "https://images.unsplash.com/photo-1581090464777-f3220bbe1b8b", Category: "chargers", Featured: true, Stock: 42},
	{ID: "3", Name: "Ultra Slim Power Bank", Description: "10,000mAh power bank with USB-C fast charging and premium metal finish.", Price: 69.99, Image: "https://images.unsplash.com/photo-1505740420928-5e560c06d30e", Category: "power", Featured: false, Stock: 18},
	{ID: "4", Name: "Premium Headphone Stand", Description: "Minimalist headphone stand with integrated cable management.", Price: 39.99, Image: "https://images.unsplash.com/photo-1546435770-a3e426bf472b", Category: "accessories", Featured: true, Stock: 30},
	{ID: "5", Name: "Precision Stylus", Description: "High-precision stylus for tablets and touchscreen devices with palm rejection.", Price: 59.99, Image: "https://images.unsplash.com/photo-1517022812141-23620dba5c23", Category: "accessories", Featured: false, Stock: 15},
	{ID: "6", Name: "Braided USB-C Cable", Description: "Premium braided USB-C cable with 100W charging capability.", Price: 24.99, Image: "https://images.unsplash.com/photo-1605810230434-7631ac76ec81", Category: "cables", Featured: false, Stock: 50},
	{ID: "7", Name: "Mechanical Keyboard", Description: "Compact mechanical keyboard with customizable RGB lighting.", Price: 129.99, Image: "https://images.unsplash.com/photo-1531297484001-80022131f5a1", Category: "input", Featured: true, Stock: 12},
	{ID: "8", Name: "Smart USB Hub", Description: "4-port USB hub with smart charging and data transfer capabilities.", Price: 34.99, Image: "https://images.unsplash.com/photo-1526374965328-7f61d4dc18c5", Category: "accessories", Featured: false, Stock: 22},
}

// GetAll returns all products in insertion order.
func (s *InMemoryProductStore) GetAll(ctx context.Context) ([]models.Product, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	products := make([]models.Product, 0, len(s.order))
	for _, id := range s.order {
		products = append(products, s.products[id])
	}
	return products, nil
}

// GetByCategory returns products matching the category exactly.
func (s *InMemoryProductStore) GetByCategory(ctx context.Context, category string) ([]models.Product, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	products := make([]models.Product, 0)
	for _, id := range s.order {
		if p := s.products[id]; p.Category == category {
			products = append(products, p)
		}
	}
	return products, nil
}

// GetByID returns a product by its ID.
func (s *InMemoryProductStore) GetByID(ctx context.Context, id string) (*models.Product, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	p, exists := s.products[id]
	if !exists {
		return nil, ErrNotFound
	}
	return &p, nil
}

// GetRelated returns up to limit same-category products, excluding
// excludeID.
func (s *InMemoryProductStore) GetRelated(ctx context.Context, category, excludeID string, limit int) ([]models.Product, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	products := make([]models.Product, 0, limit)
	for _, id := range s.order {
		if len(products) == limit {
			break
		}
		p := s.products[id]
		if p.Category == category && p.ID != excludeID {
			products = append(products, p)
		}
	}
	return products, nil
}

// ListByName returns all products ordered by name ascending.
func (s *InMemoryProductStore) ListByName(ctx context.Context) ([]models.Product, error) {
	products, _ := s.GetAll(ctx)
	sort.Slice(products, func(i, j int) bool {
		return products[i].Name < products[j].Name
	})
	return products, nil
}

// Create stores a new product, assigning an id when absent.
func (s *InMemoryProductStore) Create(ctx context.Context, p models.Product) (*models.Product, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if p.ID == "" {
		p.ID = uuid.New().String()
	}
	if _, exists := s.products[p.ID]; !exists {
		s.order = append(s.order, p.ID)
	}
	s.products[p.ID] = p
	return &p, nil
}

// Update replaces the stored product with the given id.
func (s *InMemoryProductStore) Update(ctx context.Context, id string, p models.Product) (*models.Product, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.products[id]; !exists {
		return nil, ErrNotFound
	}
	p.ID = id
	s.products[id] = p
	return &p, nil
}

// Delete removes the product with the given id.
func (s *InMemoryProductStore) Delete(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.products[id]; !exists {
		return ErrNotFound
	}
	delete(s.products, id)
	for i, oid := range s.order {
		if oid == id {
			s.order = append(s.order[:i], s.order[i+1:]...)
			break
		}
	}
	return nil
}

// InMemoryOrderStore implements OrderStore with in-memory storage.
type InMemoryOrderStore struct {
	mu     sync.RWMutex
	orders map[string]models.Order
}

// NewInMemoryOrderStore creates an in-memory order store.
func NewInMemoryOrderStore(seed ...models.Order) *InMemoryOrderStore {
	orders := make(map[string]models.Order, len(seed))
	for _, o := range seed {
		orders[o.ID] = o
	}
	return &InMemoryOrderStore{orders: orders}
}

// GetAll returns all orders, newest first.
func (s *InMemoryOrderStore) GetAll(ctx context.Context) ([]models.Order, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	orders := make([]models.Order, 0, len(s.orders))
	for _, o := range s.orders {
		orders = append(orders, o)
	}
	sort.Slice(orders, func(i, j int) bool {
		if orders[i].CreatedAt.Equal(orders[j].CreatedAt) {
			return orders[i].ID > orders[j].ID
		}
		return orders[i].CreatedAt.After(orders[j].CreatedAt)
	})
	return orders, nil
}

// GetByID returns an order by its ID.
func (s *InMemoryOrderStore) GetByID(ctx context.Context, id string) (*models.Order, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	o, exists := s.orders[id]
	if !exists {
		return nil, ErrNotFound
	}
	return &o, nil
}

// UpdateStatus sets the status of the order with the given id.
func (s *InMemoryOrderStore) UpdateStatus(ctx context.Context, id string, status models.OrderStatus) (*models.Order, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	o, exists := s.orders[id]
	if !exists {
		return nil, ErrNotFound
	}
	o.Status = status
	s.orders[id] = o
	return &o, nil
}

// StaticProfileStore implements ProfileStore over a fixed token→role
// table. Used in dev mode where no profiles table exists.
type StaticProfileStore struct {
	roles map[string]string
}

// NewStaticProfileStore builds a profile store granting the given role
// to each token.
func NewStaticProfileStore(role string, tokens []string) *StaticProfileStore {
	roles := make(map[string]string, len(tokens))
	for _, t := range tokens {
		roles[t] = role
	}
	return &StaticProfileStore{roles: roles}
}

// RoleForToken returns the role claimed by the token.
func (s *StaticProfileStore) RoleForToken(ctx context.Context, token string) (string, error) {
	role, exists := s.roles[token]
	if !exists {
		return "", ErrNotFound
	}
	return role, nil
}

// NewDemoOrders returns a small order set for dev mode, mirroring the
// storefront's demo data.
func NewDemoOrders(now time.Time) []models.Order {
	return []models.Order{
		{ID: "a1", UserID: "u1", Total: 139.98, Status: models.StatusPending, CreatedAt: now.Add(-48 * time.Hour)},
		{ID: "a2", UserID: "u2", Total: 89.99, Status: models.StatusProcessing, CreatedAt: now.Add(-24 * time.Hour)},
		{ID: "a3", UserID: "u1", Total: 24.99, Status: models.StatusCompleted, CreatedAt: now.Add(-2 * time.Hour)},
	}
}
