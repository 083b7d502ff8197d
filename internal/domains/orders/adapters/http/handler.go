package http

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/acme/warehouse-api/internal/domains/orders/application"
	"github.com/acme/warehouse-api/internal/domains/orders/domain"
	"github.com/acme/warehouse-api/internal/domains/orders/ports"
	sharederrors "github.com/acme/warehouse-api/internal/shared/errors"
)

// OrderAPI wires HTTP transport with the order workflow engine.
type OrderAPI struct {
	service   ports.Service
	responder *sharederrors.ChainedResponder
}

// NewOrderAPI creates an OrderAPI backed by the provided service.
func NewOrderAPI(service ports.Service) OrderAPI {
	return OrderAPI{
		service:   service,
		responder: sharederrors.NewChainedResponder("", mapServiceError),
	}
}

// RegisterRoutes mounts the order endpoints.
func (api OrderAPI) RegisterRoutes(router gin.IRouter) {
	router.POST("/orders", api.CreateOrder)
	router.GET("/orders", api.ListOrders)
	router.GET("/orders/:id", api.GetOrder)
	router.PATCH("/orders/:id/status", api.UpdateStatus)
}

// Post /orders
// The body maps product ids to requested quantities. An empty body object
// creates an order with no items.
func (api OrderAPI) CreateOrder(c *gin.Context) {
	var body map[string]int64
	if err := c.ShouldBindJSON(&body); err != nil {
		api.responder.Respond(c, sharederrors.ErrUnprocessable.WithDetail(err.Error()))
		return
	}
	basket, err := ToBasket(body)
	if err != nil {
		api.responder.Respond(c, sharederrors.ErrUnprocessable.WithDetail(err.Error()))
		return
	}
	order, err := api.service.CreateOrder(c.Request.Context(), basket)
	if err != nil {
		api.responder.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, FromDomain(order))
}

// Get /orders
func (api OrderAPI) ListOrders(c *gin.Context) {
	orders, err := api.service.ListOrders(c.Request.Context())
	if err != nil {
		api.responder.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, FromDomainList(orders))
}

// Get /orders/:id
func (api OrderAPI) GetOrder(c *gin.Context) {
	id, ok := api.parseIDParam(c)
	if !ok {
		return
	}
	order, err := api.service.GetOrder(c.Request.Context(), id)
	if err != nil {
		api.responder.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, FromDomain(order))
}

// Patch /orders/:id/status
// Overwrites the status with any known value; no transition graph applies.
func (api OrderAPI) UpdateStatus(c *gin.Context) {
	id, ok := api.parseIDParam(c)
	if !ok {
		return
	}
	var payload UpdateStatusRequest
	if err := c.ShouldBindJSON(&payload); err != nil {
		api.responder.Respond(c, sharederrors.ErrUnprocessable.WithDetail(err.Error()))
		return
	}
	order, err := api.service.UpdateStatus(c.Request.Context(), id, domain.Status(payload.Status))
	if err != nil {
		api.responder.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, FromDomain(order))
}

func (api OrderAPI) parseIDParam(c *gin.Context) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		api.responder.Respond(c, sharederrors.ErrUnprocessable.WithDetail("order id must be a valid uuid"))
		return uuid.Nil, false
	}
	return id, true
}

func mapServiceError(err error) (sharederrors.ProblemDetail, bool) {
	var stockErr *domain.InsufficientStockError
	switch {
	case errors.As(err, &stockErr):
		return sharederrors.ErrInsufficientStock.
			WithDetail(stockErr.Error()).
			WithExtension("product", stockErr.ProductName).
			WithExtension("requested", stockErr.Requested).
			WithExtension("available", stockErr.Available), true
	case errors.Is(err, ports.ErrProductNotFound):
		return sharederrors.ErrNotFound.WithDetail("Product not found"), true
	case errors.Is(err, ports.ErrNotFound):
		return sharederrors.ErrNotFound.WithDetail("Order not found"), true
	case errors.Is(err, application.ErrInvalidInput):
		return sharederrors.ErrUnprocessable.WithDetail(err.Error()), true
	case errors.Is(err, application.ErrPersistence):
		return sharederrors.ErrInternal.WithDetail("Failed to create order due to a database error."), true
	default:
		return sharederrors.ProblemDetail{}, false
	}
}
