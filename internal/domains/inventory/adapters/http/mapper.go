package http

import (
	"github.com/google/uuid"

	"github.com/acme/warehouse-api/internal/domains/inventory/domain"
)

// CreateProductRequest is the transport shape for product creation. Every
// field is required; pointers keep zero values (price 0, quantity 0) legal.
type CreateProductRequest struct {
	Name        *string  `json:"name" binding:"required"`
	Description *string  `json:"description" binding:"required"`
	Price       *float64 `json:"price" binding:"required,gte=0"`
	Quantity    *int64   `json:"quantity" binding:"required,gte=0"`
}

// UpdateProductRequest is the transport shape for partial updates. Absent
// fields (and JSON nulls, which decode the same way) leave the stored value
// untouched.
type UpdateProductRequest struct {
	Name        *string  `json:"name" binding:"omitempty"`
	Description *string  `json:"description"`
	Price       *float64 `json:"price" binding:"omitempty,gte=0"`
	Quantity    *int64   `json:"quantity" binding:"omitempty,gte=0"`
}

// ProductResponse is the transport representation of a product.
type ProductResponse struct {
	ID          uuid.UUID `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	Price       float64   `json:"price"`
	Quantity    int64     `json:"quantity"`
}

// ToPatch converts the update request into the domain patch structure.
func (r UpdateProductRequest) ToPatch() domain.Patch {
	return domain.Patch{
		Name:        r.Name,
		Description: r.Description,
		Price:       r.Price,
		Quantity:    r.Quantity,
	}
}

// FromDomain converts a domain product to the transport representation.
func FromDomain(product *domain.Product) ProductResponse {
	if product == nil {
		return ProductResponse{}
	}
	return ProductResponse{
		ID:          product.ID,
		Name:        product.Name,
		Description: product.Description,
		Price:       product.Price,
		Quantity:    product.Quantity,
	}
}

// FromDomainList converts a product slice to the transport representation.
func FromDomainList(products []*domain.Product) []ProductResponse {
	list := make([]ProductResponse, 0, len(products))
	for _, product := range products {
		list = append(list, FromDomain(product))
	}
	return list
}
