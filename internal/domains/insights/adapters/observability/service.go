package observability

import (
	"context"
	"log/slog"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	nooptrace "go.opentelemetry.io/otel/trace/noop"

	types "github.com/levaja/marketplace-api/internal/domains/insights/application/types"
	"github.com/levaja/marketplace-api/internal/domains/insights/domain"
	"github.com/levaja/marketplace-api/internal/domains/insights/ports"
)

const tracerName = "github.com/levaja/marketplace-api/internal/domains/insights/adapters/observability/service"

// Service adds spans and error logs to dashboards and reports.
type Service struct {
	inner  ports.Service
	tracer trace.Tracer
	logger *slog.Logger
}

type Option func(*Service)

func WithLogger(logger *slog.Logger) Option {
	return func(s *Service) { s.logger = logger }
}

func WithTracer(tr trace.Tracer) Option {
	return func(s *Service) { s.tracer = tr }
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

func (s *Service) Dashboard(ctx context.Context) (domain.DashboardMetrics, error) {
	ctx, span := s.tracer.Start(ctx, "InsightsService.Dashboard")
	defer span.End()

	metrics, err := s.inner.Dashboard(ctx)
	if err != nil {
		return metrics, s.fail(ctx, span, err, "failed to build dashboard")
	}
	span.SetAttributes(
		attribute.Int("dashboard.total_products", metrics.TotalProducts),
		attribute.Int("dashboard.near_expiry", metrics.NearExpiryProducts),
	)
	return metrics, nil
}

func (s *Service) ExpiryAlerts(ctx context.Context, sectorID string) ([]domain.ExpiryAlert, error) {
	ctx, span := s.tracer.Start(ctx, "InsightsService.ExpiryAlerts", trace.WithAttributes(attribute.String("sector.id", sectorID)))
	defer span.End()

	alerts, err := s.inner.ExpiryAlerts(ctx, sectorID)
	if err != nil {
		return nil, s.fail(ctx, span, err, "failed to compute expiry alerts")
	}
	span.SetAttributes(attribute.Int("result.count", len(alerts)))
	return alerts, nil
}

func (s *Service) SalesReport(ctx context.Context, filter domain.ReportFilter) (domain.SalesReport, error) {
	ctx, span := s.tracer.Start(ctx, "InsightsService.SalesReport", trace.WithAttributes(
		attribute.String("filter.sector_id", filter.SectorID), attribute.String("filter.category", filter.Category)))
	defer span.End()

	report, err := s.inner.SalesReport(ctx, filter)
	if err != nil {
		return report, s.fail(ctx, span, err, "failed to build sales report")
	}
	return report, nil
}

func (s *Service) Export(ctx context.Context, req types.ExportRequest) (domain.Export, error) {
	ctx, span := s.tracer.Start(ctx, "InsightsService.Export", trace.WithAttributes(
		attribute.String("export.report", req.Report), attribute.String("export.format", req.Format)))
	defer span.End()

	out, err := s.inner.Export(ctx, req)
	if err != nil {
		return out, s.fail(ctx, span, err, "failed to export report", slog.String("export.report", req.Report))
	}
	if s.logger != nil {
		s.logger.LogAttrs(ctx, slog.LevelInfo, "report exported", slog.String("export.file", out.Filename), slog.Int("export.bytes", len(out.Body)))
	}
	return out, nil
}

func (s *Service) RecordActivity(ctx context.Context, input types.ActivityInput) error {
	ctx, span := s.tracer.Start(ctx, "InsightsService.RecordActivity", trace.WithAttributes(attribute.String("activity.action", input.Action)))
	defer span.End()

	if err := s.inner.RecordActivity(ctx, input); err != nil {
		return s.fail(ctx, span, err, "failed to record activity", slog.String("activity.action", input.Action))
	}
	return nil
}

func (s *Service) RecentActivity(ctx context.Context, limit int) ([]domain.ActivityEntry, error) {
	ctx, span := s.tracer.Start(ctx, "InsightsService.RecentActivity")
	defer span.End()

	entries, err := s.inner.RecentActivity(ctx, limit)
	if err != nil {
		return nil, s.fail(ctx, span, err, "failed to load activity")
	}
	return entries, nil
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
