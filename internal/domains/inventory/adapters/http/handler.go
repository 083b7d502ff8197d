package http

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"

	"github.com/acme/warehouse-api/internal/domains/inventory/application"
	"github.com/acme/warehouse-api/internal/domains/inventory/ports"
	sharederrors "github.com/acme/warehouse-api/internal/shared/errors"
)

// ProductAPI wires HTTP transport with the inventory service.
type ProductAPI struct {
	service   ports.Service
	responder *sharederrors.ChainedResponder
}

// NewProductAPI creates a ProductAPI backed by the provided service.
func NewProductAPI(service ports.Service) ProductAPI {
	return ProductAPI{
		service:   service,
		responder: sharederrors.NewChainedResponder("", mapServiceError),
	}
}

// RegisterRoutes mounts the product endpoints.
func (api ProductAPI) RegisterRoutes(router gin.IRouter) {
	router.POST("/products", api.CreateProduct)
	router.GET("/products", api.ListProducts)
	router.GET("/products/:id", api.GetProduct)
	router.PUT("/products/:id", api.UpdateProduct)
	router.DELETE("/products/:id", api.DeleteProduct)
}

// Post /products
// Create a new product in the warehouse.
func (api ProductAPI) CreateProduct(c *gin.Context) {
	var payload CreateProductRequest
	if err := c.ShouldBindJSON(&payload); err != nil {
		api.responder.Respond(c, bindingProblem(err))
		return
	}
	product, err := api.service.CreateProduct(c.Request.Context(), ports.CreateProductInput{
		Name:        *payload.Name,
		Description: *payload.Description,
		Price:       *payload.Price,
		Quantity:    *payload.Quantity,
	})
	if err != nil {
		api.responder.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, FromDomain(product))
}

// Get /products
func (api ProductAPI) ListProducts(c *gin.Context) {
	products, err := api.service.ListProducts(c.Request.Context())
	if err != nil {
		api.responder.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, FromDomainList(products))
}

// Get /products/:id
func (api ProductAPI) GetProduct(c *gin.Context) {
	id, ok := api.parseIDParam(c)
	if !ok {
		return
	}
	product, err := api.service.GetProduct(c.Request.Context(), id)
	if err != nil {
		api.responder.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, FromDomain(product))
}

// Put /products/:id
// Applies only the fields present in the request body.
func (api ProductAPI) UpdateProduct(c *gin.Context) {
	id, ok := api.parseIDParam(c)
	if !ok {
		return
	}
	var payload UpdateProductRequest
	if err := c.ShouldBindJSON(&payload); err != nil {
		api.responder.Respond(c, bindingProblem(err))
		return
	}
	product, err := api.service.UpdateProduct(c.Request.Context(), id, payload.ToPatch())
	if err != nil {
		api.responder.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, FromDomain(product))
}

// Delete /products/:id
// Returns the pre-deletion snapshot.
func (api ProductAPI) DeleteProduct(c *gin.Context) {
	id, ok := api.parseIDParam(c)
	if !ok {
		return
	}
	product, err := api.service.DeleteProduct(c.Request.Context(), id)
	if err != nil {
		api.responder.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, FromDomain(product))
}

func (api ProductAPI) parseIDParam(c *gin.Context) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		api.responder.Respond(c, sharederrors.ErrUnprocessable.WithDetail("product id must be a valid uuid"))
		return uuid.Nil, false
	}
	return id, true
}

func mapServiceError(err error) (sharederrors.ProblemDetail, bool) {
	switch {
	case errors.Is(err, ports.ErrNotFound):
		return sharederrors.ErrNotFound.WithDetail("Product not found"), true
	case errors.Is(err, application.ErrInvalidInput):
		return sharederrors.ErrUnprocessable.WithDetail(err.Error()), true
	default:
		return sharederrors.ProblemDetail{}, false
	}
}

// bindingProblem turns gin binding failures into a 422 with field-level
// details where the validator provides them.
func bindingProblem(err error) sharederrors.ProblemDetail {
	var validationErrs validator.ValidationErrors
	if errors.As(err, &validationErrs) {
		fields := make(map[string]string, len(validationErrs))
		for _, fieldErr := range validationErrs {
			fields[fieldErr.Field()] = fieldErr.Tag()
		}
		return sharederrors.NewValidationProblem(fields)
	}
	return sharederrors.ErrUnprocessable.WithDetail(err.Error())
}
