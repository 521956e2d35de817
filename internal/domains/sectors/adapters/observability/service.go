package observability

import (
	"context"
	"log/slog"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	nooptrace "go.opentelemetry.io/otel/trace/noop"

	types "github.com/levaja/marketplace-api/internal/domains/sectors/application/types"
	"github.com/levaja/marketplace-api/internal/domains/sectors/domain"
	"github.com/levaja/marketplace-api/internal/domains/sectors/ports"
)

const tracerName = "github.com/levaja/marketplace-api/internal/domains/sectors/adapters/observability/service"

// Service adds spans and logs around sector management.
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

func (s *Service) Create(ctx context.Context, input types.SectorInput) (*domain.Sector, error) {
	ctx, span := s.tracer.Start(ctx, "SectorService.Create")
	defer span.End()

	sector, err := s.inner.Create(ctx, input)
	if err != nil {
		return nil, s.fail(ctx, span, err, "failed to create sector")
	}
	s.info(ctx, "sector created", slog.String("sector.id", sector.ID), slog.String("sector.name", sector.Name))
	return sector, nil
}

func (s *Service) Update(ctx context.Context, input types.SectorInput) (*domain.Sector, error) {
	ctx, span := s.tracer.Start(ctx, "SectorService.Update", trace.WithAttributes(attribute.String("sector.id", input.ID)))
	defer span.End()

	sector, err := s.inner.Update(ctx, input)
	if err != nil {
		return nil, s.fail(ctx, span, err, "failed to update sector", slog.String("sector.id", input.ID))
	}
	s.info(ctx, "sector updated", slog.String("sector.id", input.ID))
	return sector, nil
}

func (s *Service) Delete(ctx context.Context, id string) error {
	ctx, span := s.tracer.Start(ctx, "SectorService.Delete", trace.WithAttributes(attribute.String("sector.id", id)))
	defer span.End()

	if err := s.inner.Delete(ctx, id); err != nil {
		return s.fail(ctx, span, err, "failed to delete sector", slog.String("sector.id", id))
	}
	s.info(ctx, "sector deleted", slog.String("sector.id", id))
	return nil
}

func (s *Service) Get(ctx context.Context, id string) (*domain.Sector, error) {
	ctx, span := s.tracer.Start(ctx, "SectorService.Get", trace.WithAttributes(attribute.String("sector.id", id)))
	defer span.End()

	sector, err := s.inner.Get(ctx, id)
	if err != nil {
		return nil, s.fail(ctx, span, err, "failed to load sector", slog.String("sector.id", id))
	}
	return sector, nil
}

func (s *Service) List(ctx context.Context) ([]*domain.Sector, error) {
	ctx, span := s.tracer.Start(ctx, "SectorService.List")
	defer span.End()

	list, err := s.inner.List(ctx)
	if err != nil {
		return nil, s.fail(ctx, span, err, "failed to list sectors")
	}
	return list, nil
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
