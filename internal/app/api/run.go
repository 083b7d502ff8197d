package api

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"gorm.io/gorm"

	inventoryhttp "github.com/acme/warehouse-api/internal/domains/inventory/adapters/http"
	inventorymemory "github.com/acme/warehouse-api/internal/domains/inventory/adapters/memory"
	inventoryobs "github.com/acme/warehouse-api/internal/domains/inventory/adapters/observability"
	inventorypostgres "github.com/acme/warehouse-api/internal/domains/inventory/adapters/persistence/postgres"
	inventoryapp "github.com/acme/warehouse-api/internal/domains/inventory/application"
	inventoryports "github.com/acme/warehouse-api/internal/domains/inventory/ports"
	ordershttp "github.com/acme/warehouse-api/internal/domains/orders/adapters/http"
	ordersmemory "github.com/acme/warehouse-api/internal/domains/orders/adapters/memory"
	ordersobs "github.com/acme/warehouse-api/internal/domains/orders/adapters/observability"
	orderspostgres "github.com/acme/warehouse-api/internal/domains/orders/adapters/persistence/postgres"
	ordersapp "github.com/acme/warehouse-api/internal/domains/orders/application"
	ordersports "github.com/acme/warehouse-api/internal/domains/orders/ports"
	"github.com/acme/warehouse-api/internal/platform/migrations"
	platformobservability "github.com/acme/warehouse-api/internal/platform/observability"
	platformpostgres "github.com/acme/warehouse-api/internal/platform/postgres"
)

// Run boots the Warehouse HTTP API with observability, repositories, and the
// order workflow engine wired. It blocks until the context is cancelled or
// the server fails.
func Run(ctx context.Context) error {
	const serviceName = "warehouse-api"
	cfg, err := LoadConfig()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	instruments, shutdown, err := platformobservability.Init(ctx, serviceName)
	if err != nil {
		return fmt.Errorf("failed to initialize observability: %w", err)
	}
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := shutdown(shutdownCtx); err != nil {
			instruments.Logger.Error("failed to shutdown observability", slog.String("error", err.Error()))
		}
	}()
	logger := instruments.Logger

	deps, cleanup := buildRepositories(ctx, cfg, logger)
	defer cleanup()

	inventoryService := inventoryobs.New(
		inventoryapp.NewService(deps.products),
		inventoryobs.WithLogger(logger),
		inventoryobs.WithTracer(instruments.Tracer("internal.domains.inventory.application")),
		inventoryobs.WithMeter(instruments.Meter("internal.domains.inventory.application")),
	)
	orderService := ordersobs.New(
		ordersapp.NewService(deps.orders, deps.uow),
		ordersobs.WithLogger(logger),
		ordersobs.WithTracer(instruments.Tracer("internal.domains.orders.application")),
		ordersobs.WithMeter(instruments.Meter("internal.domains.orders.application")),
	)

	router := NewRouter(serviceName, cfg.RequestTimeout,
		inventoryhttp.NewProductAPI(inventoryService),
		ordershttp.NewOrderAPI(orderService),
	)

	server := &http.Server{Addr: ":" + cfg.Port, Handler: router}
	errCh := make(chan error, 1)
	go func() {
		logger.Info("Warehouse API listening", slog.String("addr", server.Addr))
		errCh <- server.ListenAndServe()
	}()

	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := server.Shutdown(shutdownCtx); err != nil {
			logger.Error("Warehouse API shutdown failed", slog.String("error", err.Error()))
			return err
		}
		logger.Info("Warehouse API stopped")
		return nil
	case err := <-errCh:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("Warehouse API server exited", slog.String("addr", server.Addr), slog.String("error", err.Error()))
			return err
		}
		return nil
	}
}

// repositories groups the persistence dependencies of both bounded contexts
// so they always come from the same backing store.
type repositories struct {
	products inventoryports.Repository
	orders   ordersports.Repository
	uow      ordersports.UnitOfWork
}

func buildRepositories(ctx context.Context, cfg Config, logger *slog.Logger) (repositories, func()) {
	if cfg.PostgresDSN == "" {
		logger.Warn("POSTGRES_DSN not set, falling back to in-memory repositories")
		return memoryRepositories(), func() {}
	}
	db, err := platformpostgres.Connect(ctx, cfg.PostgresDSN)
	if err != nil {
		logger.Warn("failed to connect to postgres, falling back to memory", slog.String("error", err.Error()))
		return memoryRepositories(), func() {}
	}
	if err := migrations.Run(db); err != nil {
		logger.Warn("failed to apply migrations, falling back to memory", slog.String("error", err.Error()))
		closeDB(db)
		return memoryRepositories(), func() {}
	}
	logger.Info("repositories configured with postgres")
	return repositories{
		products: inventorypostgres.NewRepository(db),
		orders:   orderspostgres.NewRepository(db),
		uow:      orderspostgres.NewUnitOfWork(db),
	}, func() { closeDB(db) }
}

func memoryRepositories() repositories {
	products := inventorymemory.NewRepository()
	orders := ordersmemory.NewRepository()
	return repositories{
		products: products,
		orders:   orders,
		uow:      ordersmemory.NewUnitOfWork(products, orders),
	}
}

func closeDB(db *gorm.DB) {
	sqlDB, err := db.DB()
	if err == nil && sqlDB != nil {
		_ = sqlDB.Close()
	}
}
