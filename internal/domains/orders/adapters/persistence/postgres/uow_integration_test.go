//go:build integration
// +build integration

// To enable gopls support for this file, add the following to your VSCode settings.json:
// "gopls": {
//   "buildFlags": ["-tags=integration"]
// }

package postgres_test

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	tcpostgres "github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	inventorypostgres "github.com/acme/warehouse-api/internal/domains/inventory/adapters/persistence/postgres"
	inventorydomain "github.com/acme/warehouse-api/internal/domains/inventory/domain"
	orderspostgres "github.com/acme/warehouse-api/internal/domains/orders/adapters/persistence/postgres"
	"github.com/acme/warehouse-api/internal/domains/orders/application"
	"github.com/acme/warehouse-api/internal/domains/orders/domain"
	"github.com/acme/warehouse-api/internal/domains/orders/ports"
	"github.com/acme/warehouse-api/internal/platform/migrations"
)

func setupPostgresContainer(t *testing.T) (*gorm.DB, func()) {
	ctx := context.Background()

	pgContainer, err := tcpostgres.RunContainer(ctx,
		testcontainers.WithImage("postgres:15-alpine"),
		tcpostgres.WithDatabase("warehouse_test"),
		tcpostgres.WithUsername("test"),
		tcpostgres.WithPassword("test"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(30*time.Second),
		),
	)
	require.NoError(t, err)

	dsn, err := pgContainer.ConnectionString(ctx, "sslmode=disable")
	require.NoError(t, err)

	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{})
	require.NoError(t, err)

	// Run migrations
	err = migrations.Run(db)
	require.NoError(t, err)

	cleanup := func() {
		sqlDB, _ := db.DB()
		if sqlDB != nil {
			sqlDB.Close()
		}
		pgContainer.Terminate(ctx)
	}

	return db, cleanup
}

func newOrderService(db *gorm.DB) (*application.Service, *inventorypostgres.Repository) {
	products := inventorypostgres.NewRepository(db)
	return application.NewService(orderspostgres.NewRepository(db), orderspostgres.NewUnitOfWork(db)), products
}

func seedProduct(t *testing.T, products *inventorypostgres.Repository, name string, quantity int64) *inventorydomain.Product {
	t.Helper()
	product, err := inventorydomain.NewProduct(name, "", 10.0, quantity)
	require.NoError(t, err)
	saved, err := products.Save(context.Background(), product)
	require.NoError(t, err)
	return saved
}

func TestPostgresUnitOfWork_CreateOrderReservesStock(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test")
	}

	db, cleanup := setupPostgresContainer(t)
	defer cleanup()

	svc, products := newOrderService(db)
	ctx := context.Background()
	widget := seedProduct(t, products, "Widget", 5)

	order, err := svc.CreateOrder(ctx, []domain.BasketLine{
		{ProductID: widget.ID, Quantity: 3},
	})
	require.NoError(t, err)
	assert.Equal(t, domain.StatusInProgress, order.Status)
	require.Len(t, order.Items, 1)
	assert.Equal(t, int64(3), order.Items[0].Quantity)

	remaining, err := products.GetByID(ctx, widget.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(2), remaining.Quantity)

	fetched, err := svc.GetOrder(ctx, order.ID)
	require.NoError(t, err)
	assert.Equal(t, order.ID, fetched.ID)
	assert.Len(t, fetched.Items, 1)
}

func TestPostgresUnitOfWork_InsufficientStockRollsBack(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test")
	}

	db, cleanup := setupPostgresContainer(t)
	defer cleanup()

	svc, products := newOrderService(db)
	ctx := context.Background()
	widget := seedProduct(t, products, "Widget", 5)
	gadget := seedProduct(t, products, "Gadget", 1)

	_, err := svc.CreateOrder(ctx, []domain.BasketLine{
		{ProductID: widget.ID, Quantity: 3},
		{ProductID: gadget.ID, Quantity: 2},
	})

	var stockErr *domain.InsufficientStockError
	require.ErrorAs(t, err, &stockErr)
	assert.Equal(t, "Not enough quantity for product Gadget. Requested: 2, Available: 1", stockErr.Error())

	// The widget decrement and the order row must both be rolled back.
	remaining, err := products.GetByID(ctx, widget.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(5), remaining.Quantity)

	orders, err := svc.ListOrders(ctx)
	require.NoError(t, err)
	assert.Empty(t, orders)
}

func TestPostgresUnitOfWork_UnknownProductRollsBack(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test")
	}

	db, cleanup := setupPostgresContainer(t)
	defer cleanup()

	svc, products := newOrderService(db)
	ctx := context.Background()
	widget := seedProduct(t, products, "Widget", 5)

	_, err := svc.CreateOrder(ctx, []domain.BasketLine{
		{ProductID: widget.ID, Quantity: 1},
		{ProductID: uuid.New(), Quantity: 1},
	})
	require.ErrorIs(t, err, ports.ErrProductNotFound)

	remaining, err := products.GetByID(ctx, widget.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(5), remaining.Quantity)
}

func TestPostgresUnitOfWork_ConcurrentBasketsNeverOversell(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test")
	}

	db, cleanup := setupPostgresContainer(t)
	defer cleanup()

	svc, products := newOrderService(db)
	ctx := context.Background()
	widget := seedProduct(t, products, "Widget", 5)

	const workers = 4
	var wg sync.WaitGroup
	errs := make([]error, workers)
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, errs[i] = svc.CreateOrder(ctx, []domain.BasketLine{
				{ProductID: widget.ID, Quantity: 3},
			})
		}(i)
	}
	wg.Wait()

	var succeeded int
	for _, err := range errs {
		if err == nil {
			succeeded++
			continue
		}
		var stockErr *domain.InsufficientStockError
		require.ErrorAs(t, err, &stockErr)
	}
	// Stock of 5 covers exactly one basket of 3.
	assert.Equal(t, 1, succeeded)

	remaining, err := products.GetByID(ctx, widget.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(2), remaining.Quantity)
	assert.GreaterOrEqual(t, remaining.Quantity, int64(0))
}

func TestPostgresRepository_SetStatus(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test")
	}

	db, cleanup := setupPostgresContainer(t)
	defer cleanup()

	svc, _ := newOrderService(db)
	ctx := context.Background()

	order, err := svc.CreateOrder(ctx, nil)
	require.NoError(t, err)

	updated, err := svc.UpdateStatus(ctx, order.ID, domain.StatusDelivered)
	require.NoError(t, err)
	assert.Equal(t, domain.StatusDelivered, updated.Status)

	_, err = svc.UpdateStatus(ctx, uuid.New(), domain.StatusShipped)
	assert.ErrorIs(t, err, ports.ErrNotFound)
}
