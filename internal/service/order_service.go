package service

import (
	"context"
	"errors"

	"github.com/anne-niyokwizerwa/ecommerce/internal/models"
	"github.com/anne-niyokwizerwa/ecommerce/internal/repository"
)

var (
	ErrInvalidStatus     = errors.New("unknown order status")
	ErrInvalidTransition = errors.New("order status transition not allowed")
)

// transitions is the enforced order lifecycle graph. Completed and
// cancelled are terminal.
var transitions = map[models.OrderStatus][]models.OrderStatus{
	models.StatusPending:    {models.StatusProcessing, models.StatusCancelled},
	models.StatusProcessing: {models.StatusCompleted, models.StatusCancelled},
}

// CanTransition reports whether an order may move from one status to
// another. Setting the same status again is allowed as a no-op.
func CanTransition(from, to models.OrderStatus) bool {
	if from == to {
		return true
	}
	for _, next := range transitions[from] {
		if next == to {
			return true
		}
	}
	return false
}

// OrderService handles the admin back-office order operations.
type OrderService struct {
	store repository.OrderStore
}

// NewOrderService creates an order service.
func NewOrderService(store repository.OrderStore) *OrderService {
	return &OrderService{store: store}
}

// List returns all orders, newest first.
func (s *OrderService) List(ctx context.Context) ([]models.Order, error) {
	return s.store.GetAll(ctx)
}

// UpdateStatus moves the order to the requested status, enforcing the
// transition graph.
func (s *OrderService) UpdateStatus(ctx context.Context, orderID string, status models.OrderStatus) (*models.Order, error) {
	if !status.Valid() {
		return nil, ErrInvalidStatus
	}

	order, err := s.store.GetByID(ctx, orderID)
	if err != nil {
		return nil, err
	}

	if !CanTransition(order.Status, status) {
		return nil, ErrInvalidTransition
	}
	if order.Status == status {
		return order, nil
	}

	return s.store.UpdateStatus(ctx, orderID, status)
}
