package ports

import (
	"context"

	"github.com/google/uuid"

	"github.com/acme/warehouse-api/internal/domains/inventory/domain"
)

// CreateProductInput carries the fields required to register a product.
type CreateProductInput struct {
	Name        string
	Description string
	Price       float64
	Quantity    int64
}

// Service exposes inventory use cases to adapters.
type Service interface {
	CreateProduct(ctx context.Context, input CreateProductInput) (*domain.Product, error)
	GetProduct(ctx context.Context, id uuid.UUID) (*domain.Product, error)
	ListProducts(ctx context.Context) ([]*domain.Product, error)
	UpdateProduct(ctx context.Context, id uuid.UUID, patch domain.Patch) (*domain.Product, error)
	DeleteProduct(ctx context.Context, id uuid.UUID) (*domain.Product, error)
}
