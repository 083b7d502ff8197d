//go:build pact
// +build pact

package provider_test

import (
	"context"
	"errors"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	pacttest "github.com/acme/warehouse-api/test/pact"

	inventoryhttp "github.com/acme/warehouse-api/internal/domains/inventory/adapters/http"
	inventorymemory "github.com/acme/warehouse-api/internal/domains/inventory/adapters/memory"
	inventoryobs "github.com/acme/warehouse-api/internal/domains/inventory/adapters/observability"
	inventoryapp "github.com/acme/warehouse-api/internal/domains/inventory/application"
	inventorydomain "github.com/acme/warehouse-api/internal/domains/inventory/domain"
	ordershttp "github.com/acme/warehouse-api/internal/domains/orders/adapters/http"
	ordersmemory "github.com/acme/warehouse-api/internal/domains/orders/adapters/memory"
	ordersobs "github.com/acme/warehouse-api/internal/domains/orders/adapters/observability"
	ordersapp "github.com/acme/warehouse-api/internal/domains/orders/application"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/pact-foundation/pact-go/v2/models"
	pactprovider "github.com/pact-foundation/pact-go/v2/provider"
	"github.com/stretchr/testify/require"
)

func TestWarehouseProviderPact(t *testing.T) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	app := newContractProviderApp(t)
	pactFile := filepath.ToSlash(pacttest.PactFile(t))
	if _, err := os.Stat(pactFile); errors.Is(err, os.ErrNotExist) {
		t.Fatalf("pact file not found at %s - run the pact consumer tests first", pactFile)
	} else {
		require.NoError(t, err)
	}

	verifier := pactprovider.NewVerifier()
	stateHandlers := models.StateHandlers{
		pacttest.StateProductsBaseline: func(setup bool, _ models.ProviderState) (models.ProviderStateResponse, error) {
			app.resetProducts(t)
			return nil, nil
		},
		pacttest.StateProductExists: func(setup bool, _ models.ProviderState) (models.ProviderStateResponse, error) {
			app.resetProducts(t)
			if setup {
				app.seedProduct(t, pacttest.ExistingProductID, pacttest.ExampleProductName, pacttest.StockedQuantity)
			}
			return nil, nil
		},
		pacttest.StateProductMissing: func(setup bool, _ models.ProviderState) (models.ProviderStateResponse, error) {
			app.resetProducts(t)
			return nil, nil
		},
		pacttest.StateProductStocked: func(setup bool, _ models.ProviderState) (models.ProviderStateResponse, error) {
			app.resetProducts(t)
			if setup {
				app.seedProduct(t, pacttest.ExistingProductID, pacttest.ExampleProductName, pacttest.StockedQuantity)
			}
			return nil, nil
		},
		pacttest.StateProductLowStock: func(setup bool, _ models.ProviderState) (models.ProviderStateResponse, error) {
			app.resetProducts(t)
			if setup {
				app.seedProduct(t, pacttest.LowStockProductID, pacttest.LowStockProductName, pacttest.LowStockQuantity)
			}
			return nil, nil
		},
	}

	err := verifier.VerifyProvider(t, pactprovider.VerifyRequest{
		ProviderBaseURL: app.server.URL,
		Provider:        pacttest.ProviderName,
		PactFiles:       []string{pactFile},
		StateHandlers:   stateHandlers,
		BeforeEach: func() error {
			app.resetProducts(t)
			return nil
		},
	})
	require.NoError(t, err)
}

type contractProviderApp struct {
	products *inventorymemory.Repository
	server   *httptest.Server
}

func newContractProviderApp(t testing.TB) *contractProviderApp {
	t.Helper()

	products := inventorymemory.NewRepository()
	orders := ordersmemory.NewRepository()

	productService := inventoryobs.New(inventoryapp.NewService(products))
	orderService := ordersobs.New(ordersapp.NewService(orders, ordersmemory.NewUnitOfWork(products, orders)))

	router := gin.New()
	router.Use(gin.Recovery())
	inventoryhttp.NewProductAPI(productService).RegisterRoutes(router)
	ordershttp.NewOrderAPI(orderService).RegisterRoutes(router)

	server := httptest.NewServer(router)
	t.Cleanup(server.Close)

	return &contractProviderApp{
		products: products,
		server:   server,
	}
}

func (a *contractProviderApp) resetProducts(t testing.TB) {
	t.Helper()
	products, err := a.products.List(context.Background())
	require.NoError(t, err)
	for _, product := range products {
		_ = a.products.Delete(context.Background(), product.ID)
	}
}

func (a *contractProviderApp) seedProduct(t testing.TB, id, name string, quantity int64) {
	t.Helper()
	product := &inventorydomain.Product{
		ID:          uuid.MustParse(id),
		Name:        name,
		Description: "A widget seeded for contract tests",
		Price:       9.99,
		Quantity:    quantity,
	}
	_, err := a.products.Save(context.Background(), product)
	require.NoError(t, err)
}
