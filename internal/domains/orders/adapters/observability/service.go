package observability

import (
	"context"
	"log/slog"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"
	nooptrace "go.opentelemetry.io/otel/trace/noop"

	types "github.com/levaja/marketplace-api/internal/domains/orders/application/types"
	"github.com/levaja/marketplace-api/internal/domains/orders/domain"
	"github.com/levaja/marketplace-api/internal/domains/orders/ports"
)

const tracerName = "github.com/levaja/marketplace-api/internal/domains/orders/adapters/observability/service"

// Service decorates the orders service with tracing, logging, and metrics.
type Service struct {
	inner   ports.Service
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

// New wraps the core orders service.
func New(inner ports.Service, opts ...Option) ports.Service {
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

func (s *Service) PlaceOrder(ctx context.Context, input types.CheckoutInput) (*domain.Order, error) {
	ctx, span := s.tracer.Start(ctx, "OrdersService.PlaceOrder", trace.WithAttributes(
		attribute.String("user.id", input.UserID),
		attribute.String("order.delivery_type", input.DeliveryType),
		attribute.Bool("idempotency.provided", input.IdempotencyKey != ""),
	))
	defer span.End()

	s.logInfo(ctx, "placing order", slog.String("user.id", input.UserID))
	order, err := s.inner.PlaceOrder(ctx, input)
	if err != nil {
		return nil, s.handleError(ctx, span, err, "failed to place order", slog.String("user.id", input.UserID))
	}
	span.SetAttributes(attribute.String("order.id", order.ID), attribute.Int("order.item_count", order.ItemCount))
	s.metrics.recordPlaced(ctx, order)
	s.logInfo(ctx, "order placed",
		slog.String("order.id", order.ID),
		slog.String("order.total", order.Total.StringFixed(2)),
		slog.Int("order.item_count", order.ItemCount))
	return order, nil
}

func (s *Service) NotifyPlaced(ctx context.Context, orderID string) error {
	ctx, span := s.tracer.Start(ctx, "OrdersService.NotifyPlaced", trace.WithAttributes(attribute.String("order.id", orderID)))
	defer span.End()

	if err := s.inner.NotifyPlaced(ctx, orderID); err != nil {
		return s.handleError(ctx, span, err, "failed to notify order placement", slog.String("order.id", orderID))
	}
	return nil
}

func (s *Service) ListOrders(ctx context.Context, userID string) ([]*domain.Order, error) {
	ctx, span := s.tracer.Start(ctx, "OrdersService.ListOrders", trace.WithAttributes(attribute.String("user.id", userID)))
	defer span.End()

	orders, err := s.inner.ListOrders(ctx, userID)
	if err != nil {
		return nil, s.handleError(ctx, span, err, "failed to list orders", slog.String("user.id", userID))
	}
	span.SetAttributes(attribute.Int("result.count", len(orders)))
	return orders, nil
}

func (s *Service) GetOrder(ctx context.Context, id types.OrderIdentifier) (*domain.Order, error) {
	ctx, span := s.tracer.Start(ctx, "OrdersService.GetOrder", trace.WithAttributes(attribute.String("order.id", id.OrderID)))
	defer span.End()

	order, err := s.inner.GetOrder(ctx, id)
	if err != nil {
		return nil, s.handleError(ctx, span, err, "failed to load order", slog.String("order.id", id.OrderID))
	}
	return order, nil
}

func (s *Service) ListAllOrders(ctx context.Context, status string) ([]*domain.Order, error) {
	ctx, span := s.tracer.Start(ctx, "OrdersService.ListAllOrders", trace.WithAttributes(attribute.String("filter.status", status)))
	defer span.End()

	orders, err := s.inner.ListAllOrders(ctx, status)
	if err != nil {
		return nil, s.handleError(ctx, span, err, "failed to list all orders")
	}
	span.SetAttributes(attribute.Int("result.count", len(orders)))
	return orders, nil
}

func (s *Service) UpdateStatus(ctx context.Context, change types.StatusChange) (*domain.Order, error) {
	ctx, span := s.tracer.Start(ctx, "OrdersService.UpdateStatus", trace.WithAttributes(
		attribute.String("order.id", change.OrderID), attribute.String("order.status", change.Status)))
	defer span.End()

	order, err := s.inner.UpdateStatus(ctx, change)
	if err != nil {
		return order, s.handleError(ctx, span, err, "failed to update order status",
			slog.String("order.id", change.OrderID), slog.String("order.status", change.Status))
	}
	s.metrics.recordTransition(ctx, order.Status)
	s.logInfo(ctx, "order status updated", slog.String("order.id", order.ID), slog.String("order.status", string(order.Status)))
	return order, nil
}

func (s *Service) CancelOrder(ctx context.Context, id types.OrderIdentifier) (*domain.Order, error) {
	ctx, span := s.tracer.Start(ctx, "OrdersService.CancelOrder", trace.WithAttributes(attribute.String("order.id", id.OrderID)))
	defer span.End()

	order, err := s.inner.CancelOrder(ctx, id)
	if err != nil {
		return order, s.handleError(ctx, span, err, "failed to cancel order", slog.String("order.id", id.OrderID))
	}
	s.metrics.recordTransition(ctx, order.Status)
	s.logInfo(ctx, "order cancelled by customer", slog.String("order.id", order.ID))
	return order, nil
}

func (s *Service) SustainabilityStats(ctx context.Context, userID string, now time.Time) (domain.SustainabilityStats, error) {
	ctx, span := s.tracer.Start(ctx, "OrdersService.SustainabilityStats", trace.WithAttributes(attribute.String("user.id", userID)))
	defer span.End()

	stats, err := s.inner.SustainabilityStats(ctx, userID, now)
	if err != nil {
		return stats, s.handleError(ctx, span, err, "failed to compute sustainability stats", slog.String("user.id", userID))
	}
	span.SetAttributes(attribute.Int("stats.level", stats.Level), attribute.Int("stats.badges", len(stats.Badges)))
	return stats, nil
}

func (s *Service) logInfo(ctx context.Context, msg string, attrs ...slog.Attr) {
	if s.logger == nil {
		return
	}
	s.logger.LogAttrs(ctx, slog.LevelInfo, msg, attrs...)
}

func (s *Service) handleError(ctx context.Context, span trace.Span, err error, msg string, attrs ...slog.Attr) error {
	if span != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	}
	if s.logger != nil {
		attrs = append(attrs, slog.String("error", err.Error()))
		s.logger.LogAttrs(ctx, slog.LevelError, msg, attrs...)
	}
	return err
}

type serviceMetrics struct {
	placed      metric.Int64Counter
	itemsSold   metric.Int64Counter
	transitions metric.Int64Counter
}

func newServiceMetrics(m metric.Meter) serviceMetrics {
	if m == nil {
		return serviceMetrics{}
	}
	placed, _ := m.Int64Counter("orders.service.orders_placed", metric.WithDescription("Number of orders placed"))
	items, _ := m.Int64Counter("orders.service.items_rescued", metric.WithDescription("Number of product units rescued through orders"))
	transitions, _ := m.Int64Counter("orders.service.status_transitions", metric.WithDescription("Number of order status changes"))
	return serviceMetrics{placed: placed, itemsSold: items, transitions: transitions}
}

func (m serviceMetrics) recordPlaced(ctx context.Context, order *domain.Order) {
	if m.placed != nil {
		m.placed.Add(ctx, 1, metric.WithAttributes(attribute.String("order.delivery_type", string(order.DeliveryType))))
	}
	if m.itemsSold != nil {
		m.itemsSold.Add(ctx, int64(order.ItemCount))
	}
}

func (m serviceMetrics) recordTransition(ctx context.Context, status domain.Status) {
	if m.transitions != nil {
		m.transitions.Add(ctx, 1, metric.WithAttributes(attribute.String("order.status", string(status))))
	}
}

var _ ports.Service = (*Service)(nil)
