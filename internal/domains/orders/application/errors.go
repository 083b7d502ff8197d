package application

import (
	"errors"
	"fmt"

	"github.com/acme/warehouse-api/internal/domains/orders/domain"
	"github.com/acme/warehouse-api/internal/domains/orders/ports"
)

var (
	// ErrInvalidInput signals the basket or status violated a domain invariant.
	ErrInvalidInput = errors.New("invalid order input")
	// ErrPersistence signals the storage layer failed while the unit of work
	// was in flight. Every write has been rolled back when this escapes.
	ErrPersistence = errors.New("order could not be persisted")
)

// mapError folds storage and domain failures into the application taxonomy.
// Not-found and insufficient-stock errors pass through untouched so the HTTP
// layer can map them to their own status codes; anything else coming out of
// the unit of work is a persistence failure.
func mapError(err error) error {
	if err == nil {
		return nil
	}
	var stockErr *domain.InsufficientStockError
	switch {
	case errors.Is(err, ports.ErrNotFound), errors.Is(err, ports.ErrProductNotFound):
		return err
	case errors.As(err, &stockErr):
		return err
	case errors.Is(err, domain.ErrInvalidStatus), errors.Is(err, domain.ErrInvalidQuantity):
		return fmt.Errorf("%w: %w", ErrInvalidInput, err)
	default:
		return fmt.Errorf("%w: %w", ErrPersistence, err)
	}
}
