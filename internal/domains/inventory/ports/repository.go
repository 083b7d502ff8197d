package ports

import (
	"context"
	"errors"

	"github.com/google/uuid"

	"github.com/acme/warehouse-api/internal/domains/inventory/domain"
)

var ErrNotFound = errors.New("product not found")

// Repository persists the product catalog.
type Repository interface {
	Save(ctx context.Context, product *domain.Product) (*domain.Product, error)
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Product, error)
	Delete(ctx context.Context, id uuid.UUID) error
	List(ctx context.Context) ([]*domain.Product, error)
}
