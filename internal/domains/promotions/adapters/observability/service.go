package observability

import (
	"context"
	"log/slog"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"
	nooptrace "go.opentelemetry.io/otel/trace/noop"

	types "github.com/levaja/marketplace-api/internal/domains/promotions/application/types"
	"github.com/levaja/marketplace-api/internal/domains/promotions/domain"
	"github.com/levaja/marketplace-api/internal/domains/promotions/ports"
)

const tracerName = "github.com/levaja/marketplace-api/internal/domains/promotions/adapters/observability/service"

// Service decorates promotion management with tracing, logging, and metrics.
type Service struct {
	inner       ports.Service
	tracer      trace.Tracer
	logger      *slog.Logger
	suggestions metric.Int64Counter
}

type Option func(*Service)

func WithLogger(logger *slog.Logger) Option {
	return func(s *Service) { s.logger = logger }
}

func WithTracer(tr trace.Tracer) Option {
	return func(s *Service) { s.tracer = tr }
}

func WithMeter(m metric.Meter) Option {
	return func(s *Service) {
		if m == nil {
			return
		}
		s.suggestions, _ = m.Int64Counter("promotions.service.suggestions_generated", metric.WithDescription("Number of promotion suggestions proposed"))
	}
}

func New(inner ports.Service, opts ...Option) ports.Service {
	s := &Service{inner: inner}
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

func (s *Service) Create(ctx context.Context, input types.PromotionInput) (*domain.Promotion, error) {
	ctx, span := s.tracer.Start(ctx, "PromotionService.Create")
	defer span.End()

	promotion, err := s.inner.Create(ctx, input)
	if err != nil {
		return promotion, s.fail(ctx, span, err, "failed to create promotion")
	}
	s.info(ctx, "promotion created",
		slog.String("promotion.id", promotion.ID),
		slog.String("product.id", promotion.ProductID),
		slog.Int("promotion.discount", promotion.DiscountPercentage))
	return promotion, nil
}

func (s *Service) Update(ctx context.Context, input types.PromotionInput) (*domain.Promotion, error) {
	ctx, span := s.tracer.Start(ctx, "PromotionService.Update", trace.WithAttributes(attribute.String("promotion.id", input.ID)))
	defer span.End()

	promotion, err := s.inner.Update(ctx, input)
	if err != nil {
		return promotion, s.fail(ctx, span, err, "failed to update promotion", slog.String("promotion.id", input.ID))
	}
	s.info(ctx, "promotion updated", slog.String("promotion.id", input.ID))
	return promotion, nil
}

func (s *Service) Delete(ctx context.Context, id string) error {
	ctx, span := s.tracer.Start(ctx, "PromotionService.Delete", trace.WithAttributes(attribute.String("promotion.id", id)))
	defer span.End()

	if err := s.inner.Delete(ctx, id); err != nil {
		return s.fail(ctx, span, err, "failed to delete promotion", slog.String("promotion.id", id))
	}
	s.info(ctx, "promotion deleted", slog.String("promotion.id", id))
	return nil
}

func (s *Service) Get(ctx context.Context, id string) (*domain.Promotion, error) {
	ctx, span := s.tracer.Start(ctx, "PromotionService.Get", trace.WithAttributes(attribute.String("promotion.id", id)))
	defer span.End()

	promotion, err := s.inner.Get(ctx, id)
	if err != nil {
		return nil, s.fail(ctx, span, err, "failed to load promotion", slog.String("promotion.id", id))
	}
	return promotion, nil
}

func (s *Service) List(ctx context.Context) ([]*domain.Promotion, error) {
	ctx, span := s.tracer.Start(ctx, "PromotionService.List")
	defer span.End()

	list, err := s.inner.List(ctx)
	if err != nil {
		return nil, s.fail(ctx, span, err, "failed to list promotions")
	}
	span.SetAttributes(attribute.Int("result.count", len(list)))
	return list, nil
}

func (s *Service) Activate(ctx context.Context, id string) (*domain.Promotion, error) {
	ctx, span := s.tracer.Start(ctx, "PromotionService.Activate", trace.WithAttributes(attribute.String("promotion.id", id)))
	defer span.End()

	promotion, err := s.inner.Activate(ctx, id)
	if err != nil {
		return nil, s.fail(ctx, span, err, "failed to activate promotion", slog.String("promotion.id", id))
	}
	s.info(ctx, "promotion activated", slog.String("promotion.id", id))
	return promotion, nil
}

func (s *Service) Deactivate(ctx context.Context, id string) (*domain.Promotion, error) {
	ctx, span := s.tracer.Start(ctx, "PromotionService.Deactivate", trace.WithAttributes(attribute.String("promotion.id", id)))
	defer span.End()

	promotion, err := s.inner.Deactivate(ctx, id)
	if err != nil {
		return nil, s.fail(ctx, span, err, "failed to deactivate promotion", slog.String("promotion.id", id))
	}
	s.info(ctx, "promotion deactivated", slog.String("promotion.id", id))
	return promotion, nil
}

func (s *Service) GenerateSuggestions(ctx context.Context) ([]*domain.Promotion, error) {
	ctx, span := s.tracer.Start(ctx, "PromotionService.GenerateSuggestions")
	defer span.End()

	suggestions, err := s.inner.GenerateSuggestions(ctx)
	if err != nil {
		return nil, s.fail(ctx, span, err, "failed to generate promotion suggestions")
	}
	span.SetAttributes(attribute.Int("result.count", len(suggestions)))
	if s.suggestions != nil {
		s.suggestions.Add(ctx, int64(len(suggestions)))
	}
	s.info(ctx, "promotion suggestions generated", slog.Int("count", len(suggestions)))
	return suggestions, nil
}

func (s *Service) RunningCount(ctx context.Context) (int, error) {
	ctx, span := s.tracer.Start(ctx, "PromotionService.RunningCount")
	defer span.End()

	count, err := s.inner.RunningCount(ctx)
	if err != nil {
		return 0, s.fail(ctx, span, err, "failed to count running promotions")
	}
	return count, nil
}

func (s *Service) info(ctx context.Context, msg string, attrs ...slog.Attr) {
	if s.logger != nil {
		s.logger.LogAttrs(ctx, slog.LevelInfo, msg, attrs...)
	}
}

func (s *Service) fail(ctx context.Context, span trace.Span, err error, msg string, attrs ...slog.Attr) error {
	span.RecordError(err)
	span.SetStatus(codes.Error, err.Error())
	if s.logger != nil {
		s.logger.LogAttrs(ctx, slog.LevelError, msg, append(attrs, slog.String("error", err.Error()))...)
	}
	return err
}

var _ ports.Service = (*Service)(nil)
