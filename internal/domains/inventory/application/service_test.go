package application

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	inventorymemory "github.com/acme/warehouse-api/internal/domains/inventory/adapters/memory"
	"github.com/acme/warehouse-api/internal/domains/inventory/domain"
	"github.com/acme/warehouse-api/internal/domains/inventory/ports"
)

func newService() *Service {
	return NewService(inventorymemory.NewRepository())
}

func TestCreateProduct_AssignsIDAndEchoesFields(t *testing.T) {
	svc := newService()

	product, err := svc.CreateProduct(context.Background(), ports.CreateProductInput{
		Name:        "Widget",
		Description: "A standard widget",
		Price:       10.0,
		Quantity:    5,
	})

	require.NoError(t, err)
	require.NotEqual(t, uuid.Nil, product.ID)
	require.Equal(t, "Widget", product.Name)
	require.Equal(t, "A standard widget", product.Description)
	require.Equal(t, 10.0, product.Price)
	require.Equal(t, int64(5), product.Quantity)
}

func TestCreateProduct_ZeroPriceAndQuantityAreValid(t *testing.T) {
	svc := newService()

	product, err := svc.CreateProduct(context.Background(), ports.CreateProductInput{
		Name: "Freebie",
	})

	require.NoError(t, err)
	require.Zero(t, product.Price)
	require.Zero(t, product.Quantity)
}

func TestCreateProduct_InvalidInput(t *testing.T) {
	svc := newService()

	_, err := svc.CreateProduct(context.Background(), ports.CreateProductInput{Name: "  "})
	require.ErrorIs(t, err, ErrInvalidInput)

	_, err = svc.CreateProduct(context.Background(), ports.CreateProductInput{Name: "Widget", Price: -1})
	require.ErrorIs(t, err, ErrInvalidInput)

	_, err = svc.CreateProduct(context.Background(), ports.CreateProductInput{Name: "Widget", Quantity: -1})
	require.ErrorIs(t, err, ErrInvalidInput)
}

func TestGetProduct_RoundTrip(t *testing.T) {
	svc := newService()

	created, err := svc.CreateProduct(context.Background(), ports.CreateProductInput{
		Name:        "Widget",
		Description: "round trip",
		Price:       9.99,
		Quantity:    3,
	})
	require.NoError(t, err)

	fetched, err := svc.GetProduct(context.Background(), created.ID)
	require.NoError(t, err)
	require.Equal(t, created, fetched)
}

func TestGetProduct_NotFound(t *testing.T) {
	svc := newService()

	_, err := svc.GetProduct(context.Background(), uuid.New())
	require.ErrorIs(t, err, ports.ErrNotFound)
}

func TestUpdateProduct_PartialPatchLeavesOtherFieldsUntouched(t *testing.T) {
	svc := newService()

	created, err := svc.CreateProduct(context.Background(), ports.CreateProductInput{
		Name:        "Widget",
		Description: "original",
		Price:       10.0,
		Quantity:    5,
	})
	require.NoError(t, err)

	newPrice := 12.5
	updated, err := svc.UpdateProduct(context.Background(), created.ID, domain.Patch{Price: &newPrice})
	require.NoError(t, err)
	require.Equal(t, 12.5, updated.Price)
	require.Equal(t, "Widget", updated.Name)
	require.Equal(t, "original", updated.Description)
	require.Equal(t, int64(5), updated.Quantity)
}

func TestUpdateProduct_EmptyDescriptionIsApplied(t *testing.T) {
	svc := newService()

	created, err := svc.CreateProduct(context.Background(), ports.CreateProductInput{
		Name:        "Widget",
		Description: "original",
	})
	require.NoError(t, err)

	empty := ""
	updated, err := svc.UpdateProduct(context.Background(), created.ID, domain.Patch{Description: &empty})
	require.NoError(t, err)
	require.Equal(t, "", updated.Description)
}

func TestUpdateProduct_EmptyNameRejected(t *testing.T) {
	svc := newService()

	created, err := svc.CreateProduct(context.Background(), ports.CreateProductInput{Name: "Widget"})
	require.NoError(t, err)

	empty := ""
	_, err = svc.UpdateProduct(context.Background(), created.ID, domain.Patch{Name: &empty})
	require.ErrorIs(t, err, ErrInvalidInput)
}

func TestUpdateProduct_NotFound(t *testing.T) {
	svc := newService()

	name := "Widget"
	_, err := svc.UpdateProduct(context.Background(), uuid.New(), domain.Patch{Name: &name})
	require.ErrorIs(t, err, ports.ErrNotFound)
}

func TestDeleteProduct_ReturnsSnapshotAndRemoves(t *testing.T) {
	svc := newService()

	created, err := svc.CreateProduct(context.Background(), ports.CreateProductInput{
		Name:     "Widget",
		Quantity: 5,
	})
	require.NoError(t, err)

	deleted, err := svc.DeleteProduct(context.Background(), created.ID)
	require.NoError(t, err)
	require.Equal(t, created, deleted)

	_, err = svc.GetProduct(context.Background(), created.ID)
	require.ErrorIs(t, err, ports.ErrNotFound)
}

func TestDeleteProduct_NotFound(t *testing.T) {
	svc := newService()

	_, err := svc.DeleteProduct(context.Background(), uuid.New())
	require.ErrorIs(t, err, ports.ErrNotFound)
}

func TestListProducts(t *testing.T) {
	svc := newService()

	_, err := svc.CreateProduct(context.Background(), ports.CreateProductInput{Name: "Widget"})
	require.NoError(t, err)
	_, err = svc.CreateProduct(context.Background(), ports.CreateProductInput{Name: "Gadget"})
	require.NoError(t, err)

	products, err := svc.ListProducts(context.Background())
	require.NoError(t, err)
	require.Len(t, products, 2)
}
