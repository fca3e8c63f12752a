package service

import (
	"context"

	"github.com/anne-niyokwizerwa/ecommerce/internal/models"
	"github.com/anne-niyokwizerwa/ecommerce/internal/repository"
	"golang.org/x/sync/errgroup"
)

// lowStockThreshold is the stock level below which a product counts as
// low stock on the dashboard.
const lowStockThreshold = 10

// Metrics is the admin dashboard summary.
type Metrics struct {
	TotalOrders      int     `json:"totalOrders"`
	TotalRevenue     float64 `json:"totalRevenue"`
	PendingOrders    int     `json:"pendingOrders"`
	TotalProducts    int     `json:"totalProducts"`
	FeaturedProducts int     `json:"featuredProducts"`
	LowStockProducts int     `json:"lowStockProducts"`
}

// DashboardService computes back-office summary metrics.
type DashboardService struct {
	products repository.ProductStore
	orders   repository.OrderStore
}

// NewDashboardService creates a dashboard service.
func NewDashboardService(products repository.ProductStore, orders repository.OrderStore) *DashboardService {
	return &DashboardService{products: products, orders: orders}
}

// Metrics fetches orders and products concurrently and aggregates the
// dashboard counters.
func (s *DashboardService) Metrics(ctx context.Context) (*Metrics, error) {
	var (
		orders   []models.Order
		products []models.Product
	)

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		orders, err = s.orders.GetAll(ctx)
		return err
	})
	g.Go(func() error {
		var err error
		products, err = s.products.GetAll(ctx)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	m := &Metrics{
		TotalOrders:   len(orders),
		TotalProducts: len(products),
	}
	for _, o := range orders {
		m.TotalRevenue += o.Total
		if o.Status == models.StatusPending {
			m.PendingOrders++
		}
	}
	for _, p := range products {
		if p.Featured {
			m.FeaturedProducts++
		}
		if p.Stock < lowStockThreshold {
			m.LowStockProducts++
		}
	}
	return m, nil
}
