package service

import (
	"context"
	"testing"
	"time"

	"github.com/anne-niyokwizerwa/ecommerce/internal/models"
	"github.com/anne-niyokwizerwa/ecommerce/internal/repository"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCanTransition(t *testing.T) {
	tests := []struct {
		from models.OrderStatus
		to   models.OrderStatus
		want bool
	}{
		{models.StatusPending, models.StatusProcessing, true},
		{models.StatusPending, models.StatusCancelled, true},
		{models.StatusPending, models.StatusCompleted, false},
		{models.StatusProcessing, models.StatusCompleted, true},
		{models.StatusProcessing, models.StatusCancelled, true},
		{models.StatusProcessing, models.StatusPending, false},
		{models.StatusCompleted, models.StatusPending, false},
		{models.StatusCompleted, models.StatusCancelled, false},
		{models.StatusCancelled, models.StatusProcessing, false},
		{models.StatusPending, models.StatusPending, true}, // same-status no-op
	}

	for _, tt := range tests {
		t.Run(string(tt.from)+"_to_"+string(tt.to), func(t *testing.T) {
			assert.Equal(t, tt.want, CanTransition(tt.from, tt.to))
		})
	}
}

func newOrderService() (*OrderService, *repository.InMemoryOrderStore) {
	store := repository.NewInMemoryOrderStore(models.Order{
		ID: "o1", UserID: "u1", Total: 50, Status: models.StatusPending, CreatedAt: time.Now().UTC(),
	})
	return NewOrderService(store), store
}

func TestOrderService_UpdateStatus(t *testing.T) {
	svc, store := newOrderService()
	ctx := context.Background()

	order, err := svc.UpdateStatus(ctx, "o1", models.StatusProcessing)
	require.NoError(t, err)
	assert.Equal(t, models.StatusProcessing, order.Status)

	stored, _ := store.GetByID(ctx, "o1")
	assert.Equal(t, models.StatusProcessing, stored.Status)
}

func TestOrderService_UpdateStatus_RejectsInvalidTransition(t *testing.T) {
	svc, store := newOrderService()
	ctx := context.Background()

	_, err := svc.UpdateStatus(ctx, "o1", models.StatusCompleted)

	assert.ErrorIs(t, err, ErrInvalidTransition)
	stored, _ := store.GetByID(ctx, "o1")
	assert.Equal(t, models.StatusPending, stored.Status, "rejected transition must not write")
}

func TestOrderService_UpdateStatus_UnknownStatus(t *testing.T) {
	svc, _ := newOrderService()

	_, err := svc.UpdateStatus(context.Background(), "o1", "shipped")

	assert.ErrorIs(t, err, ErrInvalidStatus)
}

func TestOrderService_UpdateStatus_MissingOrder(t *testing.T) {
	svc, _ := newOrderService()

	_, err := svc.UpdateStatus(context.Background(), "missing", models.StatusProcessing)

	assert.ErrorIs(t, err, repository.ErrNotFound)
}

func TestOrderService_UpdateStatus_SameStatusIsNoOp(t *testing.T) {
	svc, _ := newOrderService()

	order, err := svc.UpdateStatus(context.Background(), "o1", models.StatusPending)

	require.NoError(t, err)
	assert.Equal(t, models.StatusPending, order.Status)
}
