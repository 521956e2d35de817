package observability

import (
	"context"
	"log/slog"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"
	nooptrace "go.opentelemetry.io/otel/trace/noop"

	"github.com/levaja/marketplace-api/internal/domains/cart/domain"
	"github.com/levaja/marketplace-api/internal/domains/cart/ports"
	"github.com/levaja/marketplace-api/internal/shared/money"
)

const tracerName = "github.com/levaja/marketplace-api/internal/domains/cart/adapters/observability/service"

// Service decorates the cart service with tracing, logging, and metrics.
type Service struct {
	inner   ports.Service
	tracer  trace.Tracer
	logger  *slog.Logger
	metrics serviceMetrics
}

type Option func(*Service)

func WithLogger(logger *slog.Logger) Option {
	return func(s *Service) { s.logger = logger }
}

func WithTracer(tr trace.Tracer) Option {
	return func(s *Service) { s.tracer = tr }
}

func WithMeter(m metric.Meter) Option {
	return func(s *Service) { s.metrics = newServiceMetrics(m) }
}

// New wraps the core cart service.
func New(inner ports.Service, opts ...Option) ports.Service {
	s := &Service{inner: inner, metrics: newServiceMetrics(nil)}
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

func (s *Service) Get(ctx context.Context, userID string) (*domain.Cart, error) {
	ctx, span := s.tracer.Start(ctx, "CartService.Get", trace.WithAttributes(attribute.String("user.id", userID)))
	defer span.End()

	cart, err := s.inner.Get(ctx, userID)
	if err != nil {
		return nil, s.handleError(ctx, span, err, "failed to load cart", slog.String("user.id", userID))
	}
	s.annotate(span, cart)
	return cart, nil
}

func (s *Service) AddItem(ctx context.Context, userID, productID string, qty int) (*domain.Cart, error) {
	ctx, span := s.tracer.Start(ctx, "CartService.AddItem", trace.WithAttributes(
		attribute.String("user.id", userID), attribute.String("product.id", productID), attribute.Int("quantity", qty)))
	defer span.End()

	cart, err := s.inner.AddItem(ctx, userID, productID, qty)
	if err != nil {
		return nil, s.handleError(ctx, span, err, "failed to add cart item", slog.String("product.id", productID), slog.Int("quantity", qty))
	}
	s.annotate(span, cart)
	s.metrics.recordAdded(ctx, qty)
	s.logInfo(ctx, "cart item added", slog.String("user.id", userID), slog.String("product.id", productID), slog.Int("quantity", qty))
	return cart, nil
}

func (s *Service) UpdateQuantity(ctx context.Context, userID, itemID string, qty int) (*domain.Cart, error) {
	ctx, span := s.tracer.Start(ctx, "CartService.UpdateQuantity", trace.WithAttributes(
		attribute.String("user.id", userID), attribute.String("cart.item_id", itemID), attribute.Int("quantity", qty)))
	defer span.End()

	cart, err := s.inner.UpdateQuantity(ctx, userID, itemID, qty)
	if err != nil {
		return nil, s.handleError(ctx, span, err, "failed to update cart item", slog.String("cart.item_id", itemID))
	}
	s.annotate(span, cart)
	return cart, nil
}

func (s *Service) RemoveItem(ctx context.Context, userID, itemID string) (*domain.Cart, error) {
	ctx, span := s.tracer.Start(ctx, "CartService.RemoveItem", trace.WithAttributes(
		attribute.String("user.id", userID), attribute.String("cart.item_id", itemID)))
	defer span.End()

	cart, err := s.inner.RemoveItem(ctx, userID, itemID)
	if err != nil {
		return nil, s.handleError(ctx, span, err, "failed to remove cart item", slog.String("cart.item_id", itemID))
	}
	s.annotate(span, cart)
	s.metrics.recordRemoved(ctx)
	return cart, nil
}

func (s *Service) Clear(ctx context.Context, userID string) (*domain.Cart, error) {
	ctx, span := s.tracer.Start(ctx, "CartService.Clear", trace.WithAttributes(attribute.String("user.id", userID)))
	defer span.End()

	cart, err := s.inner.Clear(ctx, userID)
	if err != nil {
		return nil, s.handleError(ctx, span, err, "failed to clear cart", slog.String("user.id", userID))
	}
	s.logInfo(ctx, "cart cleared", slog.String("user.id", userID))
	return cart, nil
}

func (s *Service) annotate(span trace.Span, cart *domain.Cart) {
	totals := cart.Totals()
	span.SetAttributes(
		attribute.Int("cart.item_count", totals.ItemCount),
		attribute.Float64("cart.total", money.ToFloat(totals.Total)),
	)
}

func (s *Service) logInfo(ctx context.Context, msg string, attrs ...slog.Attr) {
	if s.logger == nil {
		return
	}
	s.logger.LogAttrs(ctx, slog.LevelInfo, msg, attrs...)
}

func (s *Service) handleError(ctx context.Context, span trace.Span, err error, msg string, attrs ...slog.Attr) error {
	span.RecordError(err)
	span.SetStatus(codes.Error, err.Error())
	if s.logger != nil {
		attrs = append(attrs, slog.String("error", err.Error()))
		s.logger.LogAttrs(ctx, slog.LevelWarn, msg, attrs...)
	}
	return err
}

type serviceMetrics struct {
	itemsAdded   metric.Int64Counter
	itemsRemoved metric.Int64Counter
}

func newServiceMetrics(m metric.Meter) serviceMetrics {
	if m == nil {
		return serviceMetrics{}
	}
	added, _ := m.Int64Counter("cart.service.items_added", metric.WithDescription("Units added to carts"))
	removed, _ := m.Int64Counter("cart.service.items_removed", metric.WithDescription("Cart lines removed"))
	return serviceMetrics{itemsAdded: added, itemsRemoved: removed}
}

func (m serviceMetrics) recordAdded(ctx context.Context, qty int) {
	if m.itemsAdded != nil {
		m.itemsAdded.Add(ctx, int64(qty))
	}
}

func (m serviceMetrics) recordRemoved(ctx context.Context) {
	if m.itemsRemoved != nil {
		m.itemsRemoved.Add(ctx, 1)
	}
}

var _ ports.Service = (*Service)(nil)
