package application

import (
	"context"

	"github.com/google/uuid"

	"github.com/acme/warehouse-api/internal/domains/orders/domain"
	"github.com/acme/warehouse-api/internal/domains/orders/ports"
)

// Service is the order workflow engine. It validates availability for every
// basket line, records the order with its items, and reserves stock, all
// inside one unit of work.
type Service struct {
	repo ports.Repository
	uow  ports.UnitOfWork
}

// NewService wires the orders service with its dependencies.
func NewService(repo ports.Repository, uow ports.UnitOfWork) *Service {
	return &Service{repo: repo, uow: uow}
}

// CreateOrder processes the basket lines in the order given. Each line is
// checked against stock already reduced by earlier lines of the same basket.
// On any failure the unit of work rolls back every write performed so far:
// the order row, every item, and every stock decrement. An empty basket
// commits an order with no items.
func (s *Service) CreateOrder(ctx context.Context, basket []domain.BasketLine) (*domain.Order, error) {
	if err := domain.ValidateBasket(basket); err != nil {
		return nil, mapError(err)
	}
	order := domain.NewOrder()
	err := s.uow.Execute(ctx, func(tx ports.Tx) error {
		if err := tx.InsertOrder(ctx, order); err != nil {
			return err
		}
		for _, line := range basket {
			product, err := tx.ProductForUpdate(ctx, line.ProductID)
			if err != nil {
				return err
			}
			if product.Quantity < line.Quantity {
				return &domain.InsufficientStockError{
					ProductName: product.Name,
					Requested:   line.Quantity,
					Available:   product.Quantity,
				}
			}
			item, err := order.AddItem(line.ProductID, line.Quantity)
			if err != nil {
				return err
			}
			if err := tx.InsertItem(ctx, item); err != nil {
				return err
			}
			if err := tx.ReserveStock(ctx, line.ProductID, line.Quantity); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, mapError(err)
	}
	return order, nil
}

// GetOrder loads an order with its items.
func (s *Service) GetOrder(ctx context.Context, id uuid.UUID) (*domain.Order, error) {
	order, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, mapError(err)
	}
	return order, nil
}

// ListOrders returns every order in the ledger.
func (s *Service) ListOrders(ctx context.Context) ([]*domain.Order, error) {
	orders, err := s.repo.List(ctx)
	if err != nil {
		return nil, mapError(err)
	}
	return orders, nil
}

// UpdateStatus overwrites the order status. Any known status may replace any
// other.
func (s *Service) UpdateStatus(ctx context.Context, id uuid.UUID, status domain.Status) (*domain.Order, error) {
	if !domain.IsValidStatus(status) {
		return nil, mapError(domain.ErrInvalidStatus)
	}
	order, err := s.repo.SetStatus(ctx, id, status)
	if err != nil {
		return nil, mapError(err)
	}
	return order, nil
}

var _ ports.Service = (*Service)(nil)
