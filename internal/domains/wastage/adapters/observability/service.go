package observability

import (
	"context"
	"log/slog"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"
	nooptrace "go.opentelemetry.io/otel/trace/noop"

	types "github.com/levaja/marketplace-api/internal/domains/wastage/application/types"
	"github.com/levaja/marketplace-api/internal/domains/wastage/domain"
	"github.com/levaja/marketplace-api/internal/domains/wastage/ports"
)

const tracerName = "github.com/levaja/marketplace-api/internal/domains/wastage/adapters/observability/service"

// Service decorates the wastage log with tracing, logging, and metrics.
type Service struct {
	inner  ports.Service
	tracer trace.Tracer
	logger *slog.Logger
	units  metric.Int64Counter
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
		s.units, _ = m.Int64Counter("wastage.service.units_written_off", metric.WithDescription("Number of product units written off"))
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

func (s *Service) Record(ctx context.Context, reportedBy string, input types.RecordInput) (*domain.Record, error) {
	ctx, span := s.tracer.Start(ctx, "WastageService.Record", trace.WithAttributes(
		attribute.String("product.id", input.ProductID),
		attribute.Int("wastage.quantity", input.Quantity),
		attribute.String("wastage.reason", input.Reason),
	))
	defer span.End()

	record, err := s.inner.Record(ctx, reportedBy, input)
	if err != nil {
		return nil, s.fail(ctx, span, err, "failed to record wastage", slog.String("product.id", input.ProductID))
	}
	if s.units != nil {
		s.units.Add(ctx, int64(record.Quantity), metric.WithAttributes(attribute.String("wastage.reason", string(record.Reason))))
	}
	if s.logger != nil {
		s.logger.LogAttrs(ctx, slog.LevelInfo, "wastage recorded",
			slog.String("wastage.id", record.ID),
			slog.String("product.id", record.ProductID),
			slog.Int("wastage.quantity", record.Quantity),
			slog.String("wastage.cost", record.Cost.StringFixed(2)),
			slog.String("user.id", reportedBy))
	}
	return record, nil
}

func (s *Service) List(ctx context.Context, filter domain.Filter) ([]*domain.Record, error) {
	ctx, span := s.tracer.Start(ctx, "WastageService.List", trace.WithAttributes(attribute.String("filter.sector_id", filter.SectorID)))
	defer span.End()

	list, err := s.inner.List(ctx, filter)
	if err != nil {
		return nil, s.fail(ctx, span, err, "failed to list wastage")
	}
	span.SetAttributes(attribute.Int("result.count", len(list)))
	return list, nil
}

func (s *Service) Report(ctx context.Context, filter domain.Filter) (domain.Report, error) {
	ctx, span := s.tracer.Start(ctx, "WastageService.Report", trace.WithAttributes(attribute.String("filter.sector_id", filter.SectorID)))
	defer span.End()

	report, err := s.inner.Report(ctx, filter)
	if err != nil {
		return report, s.fail(ctx, span, err, "failed to build wastage report")
	}
	span.SetAttributes(attribute.Int("result.quantity", report.TotalQuantity))
	return report, nil
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
