package observability

import (
	"context"
	"log/slog"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"
	nooptrace "go.opentelemetry.io/otel/trace/noop"

	inventorydomain "github.com/acme/warehouse-api/internal/domains/inventory/domain"
	inventoryports "github.com/acme/warehouse-api/internal/domains/inventory/ports"
)

const tracerName = "github.com/acme/warehouse-api/internal/domains/inventory/adapters/observability/service"

// Service decorates the inventory service with tracing, logging, and metrics.
type Service struct {
	inner   inventoryports.Service
	tracer  trace.Tracer
	logger  *slog.Logger
	metrics serviceMetrics
}

type Option func(*Service)

func WithLogger(logger *slog.Logger) Option {
	return func(s *Service) {
		s.logger = logger
	}
}

func WithTracer(tr trace.Tracer) Option {
	return func(s *Service) {
		s.tracer = tr
	}
}

func WithMeter(m metric.Meter) Option {
	return func(s *Service) {
		s.metrics = newServiceMetrics(m)
	}
}

// New wraps the core inventory service.
func New(inner inventoryports.Service, opts ...Option) inventoryports.Service {
	s := &Service{
		inner:   inner,
		tracer:  nooptrace.NewTracerProvider().Tracer(tracerName),
		metrics: newServiceMetrics(nil),
	}
	for _, opt := range opts {
		if opt != nil {
			opt(s)
		}
	}
	if s.tracer == nil {
		s.tracer = nooptrace.NewTracerProvider().Tracer(tracerName)
	}
	return s
}

func (s *Service) CreateProduct(ctx context.Context, input inventoryports.CreateProductInput) (*inventorydomain.Product, error) {
	ctx, span := s.tracer.Start(ctx, "InventoryService.CreateProduct",
		trace.WithAttributes(attribute.String("product.name", input.Name)))
	defer span.End()

	s.logInfo(ctx, "creating product", slog.String("product.name", input.Name))
	result, err := s.inner.CreateProduct(ctx, input)
	if err != nil {
		return nil, s.handleError(ctx, span, err, "failed to create product", slog.String("product.name", input.Name))
	}
	s.metrics.recordCreated(ctx)
	s.logInfo(ctx, "product created", slog.String("product.id", result.ID.String()))
	return result, nil
}

func (s *Service) GetProduct(ctx context.Context, id uuid.UUID) (*inventorydomain.Product, error) {
	ctx, span := s.tracer.Start(ctx, "InventoryService.GetProduct",
		trace.WithAttributes(attribute.String("product.id", id.String())))
	defer span.End()

	result, err := s.inner.GetProduct(ctx, id)
	if err != nil {
		return nil, s.handleError(ctx, span, err, "failed to load product", slog.String("product.id", id.String()))
	}
	return result, nil
}

func (s *Service) ListProducts(ctx context.Context) ([]*inventorydomain.Product, error) {
	ctx, span := s.tracer.Start(ctx, "InventoryService.ListProducts")
	defer span.End()

	result, err := s.inner.ListProducts(ctx)
	if err != nil {
		return nil, s.handleError(ctx, span, err, "failed to list products")
	}
	span.SetAttributes(attribute.Int("products.count", len(result)))
	return result, nil
}

func (s *Service) UpdateProduct(ctx context.Context, id uuid.UUID, patch inventorydomain.Patch) (*inventorydomain.Product, error) {
	ctx, span := s.tracer.Start(ctx, "InventoryService.UpdateProduct",
		trace.WithAttributes(attribute.String("product.id", id.String())))
	defer span.End()

	s.logInfo(ctx, "updating product", slog.String("product.id", id.String()))
	result, err := s.inner.UpdateProduct(ctx, id, patch)
	if err != nil {
		return nil, s.handleError(ctx, span, err, "failed to update product", slog.String("product.id", id.String()))
	}
	return result, nil
}

func (s *Service) DeleteProduct(ctx context.Context, id uuid.UUID) (*inventorydomain.Product, error) {
	ctx, span := s.tracer.Start(ctx, "InventoryService.DeleteProduct",
		trace.WithAttributes(attribute.String("product.id", id.String())))
	defer span.End()

	s.logInfo(ctx, "deleting product", slog.String("product.id", id.String()))
	result, err := s.inner.DeleteProduct(ctx, id)
	if err != nil {
		return nil, s.handleError(ctx, span, err, "failed to delete product", slog.String("product.id", id.String()))
	}
	s.metrics.recordDeleted(ctx)
	return result, nil
}

func (s *Service) logInfo(ctx context.Context, msg string, attrs ...slog.Attr) {
	if s.logger == nil {
		return
	}
	s.logger.LogAttrs(ctx, slog.LevelInfo, msg, attrs...)
}

func (s *Service) logError(ctx context.Context, msg string, err error, attrs ...slog.Attr) {
	if s.logger == nil {
		return
	}
	if err != nil {
		attrs = append(attrs, slog.String("error", err.Error()))
	}
	s.logger.LogAttrs(ctx, slog.LevelError, msg, attrs...)
}

func (s *Service) handleError(ctx context.Context, span trace.Span, err error, msg string, attrs ...slog.Attr) error {
	if span != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	}
	s.logError(ctx, msg, err, attrs...)
	return err
}

type serviceMetrics struct {
	productsCreated metric.Int64Counter
	productsDeleted metric.Int64Counter
}

func newServiceMetrics(m metric.Meter) serviceMetrics {
	if m == nil {
		return serviceMetrics{}
	}
	productsCreated, _ := m.Int64Counter("inventory.service.products_created", metric.WithDescription("Number of products registered"))
	productsDeleted, _ := m.Int64Counter("inventory.service.products_deleted", metric.WithDescription("Number of products deleted"))
	return serviceMetrics{productsCreated: productsCreated, productsDeleted: productsDeleted}
}

func (m serviceMetrics) recordCreated(ctx context.Context) {
	if m.productsCreated != nil {
		m.productsCreated.Add(ctx, 1)
	}
}

func (m serviceMetrics) recordDeleted(ctx context.Context) {
	if m.productsDeleted != nil {
		m.productsDeleted.Add(ctx, 1)
	}
}

var _ inventoryports.Service = (*Service)(nil)
