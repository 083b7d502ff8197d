package api

import (
	"context"
	"time"

	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"

	inventoryhttp "github.com/acme/warehouse-api/internal/domains/inventory/adapters/http"
	ordershttp "github.com/acme/warehouse-api/internal/domains/orders/adapters/http"
)

// NewRouter builds the gin engine with tracing and per-request deadlines and
// mounts both bounded contexts.
func NewRouter(serviceName string, timeout time.Duration, productAPI inventoryhttp.ProductAPI, orderAPI ordershttp.OrderAPI) *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(otelgin.Middleware(serviceName))
	router.Use(requestTimeout(timeout))

	productAPI.RegisterRoutes(router)
	orderAPI.RegisterRoutes(router)
	return router
}

// requestTimeout bounds the request context so a stuck unit of work is
// cancelled and rolled back instead of holding row locks indefinitely.
func requestTimeout(timeout time.Duration) gin.HandlerFunc {
	return func(c *gin.Context) {
		if timeout <= 0 {
			c.Next()
			return
		}
		ctx, cancel := context.WithTimeout(c.Request.Context(), timeout)
		defer cancel()
		c.Request = c.Request.WithContext(ctx)
		c.Next()
	}
}
