package ports

import (
	"context"

	"github.com/google/uuid"

	"github.com/acme/warehouse-api/internal/domains/orders/domain"
)

// Service exposes order use cases to adapters.
type Service interface {
	CreateOrder(ctx context.Context, basket []domain.BasketLine) (*domain.Order, error)
	GetOrder(ctx context.Context, id uuid.UUID) (*domain.Order, error)
	ListOrders(ctx context.Context) ([]*domain.Order, error)
	UpdateStatus(ctx context.Context, id uuid.UUID, status domain.Status) (*domain.Order, error)
}
