package application

import (
	"context"

	"github.com/google/uuid"

	"github.com/acme/warehouse-api/internal/domains/inventory/domain"
	"github.com/acme/warehouse-api/internal/domains/inventory/ports"
)

// Service orchestrates the inventory bounded context use cases.
type Service struct {
	repo ports.Repository
}

// NewService wires the inventory service with its dependencies.
func NewService(repo ports.Repository) *Service {
	return &Service{repo: repo}
}

// CreateProduct registers a new product with a server-assigned id.
func (s *Service) CreateProduct(ctx context.Context, input ports.CreateProductInput) (*domain.Product, error) {
	product, err := domain.NewProduct(input.Name, input.Description, input.Price, input.Quantity)
	if err != nil {
		return nil, mapError(err)
	}
	saved, err := s.repo.Save(ctx, product)
	if err != nil {
		return nil, mapError(err)
	}
	return saved, nil
}

// GetProduct loads a single product.
func (s *Service) GetProduct(ctx context.Context, id uuid.UUID) (*domain.Product, error) {
	product, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, mapError(err)
	}
	return product, nil
}

// ListProducts returns the whole catalog.
func (s *Service) ListProducts(ctx context.Context) ([]*domain.Product, error) {
	products, err := s.repo.List(ctx)
	if err != nil {
		return nil, mapError(err)
	}
	return products, nil
}

// UpdateProduct applies a partial update. Fields absent from the patch keep
// their stored values.
func (s *Service) UpdateProduct(ctx context.Context, id uuid.UUID, patch domain.Patch) (*domain.Product, error) {
	product, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, mapError(err)
	}
	if err := product.Apply(patch); err != nil {
		return nil, mapError(err)
	}
	saved, err := s.repo.Save(ctx, product)
	if err != nil {
		return nil, mapError(err)
	}
	return saved, nil
}

// DeleteProduct removes a product and returns the pre-deletion snapshot. It
// does not check whether order items still reference the product.
func (s *Service) DeleteProduct(ctx context.Context, id uuid.UUID) (*domain.Product, error) {
	product, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, mapError(err)
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return nil, mapError(err)
	}
	return product, nil
}

var _ ports.Service = (*Service)(nil)
