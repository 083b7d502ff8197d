package domain

import (
	"errors"
	"strings"

	"github.com/google/uuid"
)

var (
	ErrEmptyName        = errors.New("product name is required")
	ErrNegativePrice    = errors.New("product price must be greater or equal to zero")
	ErrNegativeQuantity = errors.New("product quantity must be greater or equal to zero")
)

// Product is the aggregate managed by the inventory bounded context. Quantity
// is the authoritative on-hand stock count.
type Product struct {
	ID          uuid.UUID
	Name        string
	Description string
	Price       float64
	Quantity    int64
}

// NewProduct validates the invariants and builds a new Product with a fresh id.
func NewProduct(name, description string, price float64, quantity int64) (*Product, error) {
	p := &Product{ID: uuid.New(), Description: description}
	if err := p.Rename(name); err != nil {
		return nil, err
	}
	if err := p.Reprice(price); err != nil {
		return nil, err
	}
	if err := p.SetQuantity(quantity); err != nil {
		return nil, err
	}
	return p, nil
}

// Rename mutates the product name ensuring the non-empty invariant.
func (p *Product) Rename(name string) error {
	if strings.TrimSpace(name) == "" {
		return ErrEmptyName
	}
	p.Name = name
	return nil
}

// Reprice sets a new unit price.
func (p *Product) Reprice(price float64) error {
	if price < 0 {
		return ErrNegativePrice
	}
	p.Price = price
	return nil
}

// SetQuantity overwrites the on-hand stock count.
func (p *Product) SetQuantity(quantity int64) error {
	if quantity < 0 {
		return ErrNegativeQuantity
	}
	p.Quantity = quantity
	return nil
}

// Patch carries a partial product update. Only non-nil fields are applied;
// absent fields leave the stored value untouched.
type Patch struct {
	Name        *string
	Description *string
	Price       *float64
	Quantity    *int64
}

// Apply mutates the product with the fields present in the patch.
func (p *Product) Apply(patch Patch) error {
	if patch.Name != nil {
		if err := p.Rename(*patch.Name); err != nil {
			return err
		}
	}
	if patch.Description != nil {
		p.Description = *patch.Description
	}
	if patch.Price != nil {
		if err := p.Reprice(*patch.Price); err != nil {
			return err
		}
	}
	if patch.Quantity != nil {
		if err := p.SetQuantity(*patch.Quantity); err != nil {
			return err
		}
	}
	return nil
}
