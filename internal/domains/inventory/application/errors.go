package application

import (
	"errors"
	"fmt"

	"github.com/acme/warehouse-api/internal/domains/inventory/domain"
)

var (
	// ErrInvalidInput signals the request violated a product invariant.
	ErrInvalidInput = errors.New("invalid product input")
)

func mapError(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, domain.ErrEmptyName) ||
		errors.Is(err, domain.ErrNegativePrice) ||
		errors.Is(err, domain.ErrNegativeQuantity) {
		return fmt.Errorf("%w: %w", ErrInvalidInput, err)
	}
	return err
}
