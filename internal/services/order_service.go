package services

import (
	"context"

	"github.com/ArieGerard/OdersApp/internal/models"
	"github.com/ArieGerard/OdersApp/internal/store"
)

// OrderServiceProvider defines the interface for order services.
type OrderServiceProvider interface {
	GetAll(ctx context.Context) ([]models.Order, error)
	GetByID(ctx context.Context, id int64) (models.Order, error)
}

// OrderService provides read access to the order records shown to
// authenticated users.
type OrderService struct {
	store store.OrderStore
}

// NewOrderService creates a new OrderService.
func NewOrderService(store store.OrderStore) *OrderService {
	return &OrderService{store: store}
}

// GetAll returns every order.
func (s *OrderService) GetAll(ctx context.Context) ([]models.Order, error) {
	return s.store.All(ctx)
}

// GetByID returns a single order.
func (s *OrderService) GetByID(ctx context.Context, id int64) (models.Order, error) {
	return s.store.ByID(ctx, id)
}
