package observability

import (
	"context"
	"log/slog"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"
	nooptrace "go.opentelemetry.io/otel/trace/noop"

	types "github.com/levaja/marketplace-api/internal/domains/notifications/application/types"
	"github.com/levaja/marketplace-api/internal/domains/notifications/domain"
	"github.com/levaja/marketplace-api/internal/domains/notifications/ports"
)

const tracerName = "github.com/levaja/marketplace-api/internal/domains/notifications/adapters/observability/service"

// Service decorates the notification inbox with tracing, logging, and metrics.
type Service struct {
	inner   ports.Service
	tracer  trace.Tracer
	logger  *slog.Logger
	created metric.Int64Counter
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
		s.created, _ = m.Int64Counter("notifications.service.created", metric.WithDescription("Number of notifications delivered"))
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

func (s *Service) Notify(ctx context.Context, input types.NotificationInput) (*domain.Notification, error) {
	ctx, span := s.tracer.Start(ctx, "NotificationService.Notify", trace.WithAttributes(
		attribute.String("user.id", input.UserID), attribute.String("notification.type", input.Type)))
	defer span.End()

	n, err := s.inner.Notify(ctx, input)
	if err != nil {
		return nil, s.handleError(ctx, span, err, "failed to deliver notification", slog.String("user.id", input.UserID))
	}
	if s.created != nil {
		s.created.Add(ctx, 1, metric.WithAttributes(attribute.String("notification.type", string(n.Type))))
	}
	s.log(ctx, slog.LevelDebug, "notification delivered", slog.String("notification.id", n.ID), slog.String("user.id", n.UserID))
	return n, nil
}

func (s *Service) List(ctx context.Context, userID string, unreadOnly bool) ([]*domain.Notification, error) {
	ctx, span := s.tracer.Start(ctx, "NotificationService.List", trace.WithAttributes(
		attribute.String("user.id", userID), attribute.Bool("filter.unread", unreadOnly)))
	defer span.End()

	list, err := s.inner.List(ctx, userID, unreadOnly)
	if err != nil {
		return nil, s.handleError(ctx, span, err, "failed to list notifications", slog.String("user.id", userID))
	}
	span.SetAttributes(attribute.Int("result.count", len(list)))
	return list, nil
}

func (s *Service) UnreadCount(ctx context.Context, userID string) (int, error) {
	ctx, span := s.tracer.Start(ctx, "NotificationService.UnreadCount", trace.WithAttributes(attribute.String("user.id", userID)))
	defer span.End()

	count, err := s.inner.UnreadCount(ctx, userID)
	if err != nil {
		return 0, s.handleError(ctx, span, err, "failed to count unread notifications", slog.String("user.id", userID))
	}
	return count, nil
}

func (s *Service) MarkAsRead(ctx context.Context, userID, id string) (*domain.Notification, error) {
	ctx, span := s.tracer.Start(ctx, "NotificationService.MarkAsRead", trace.WithAttributes(
		attribute.String("user.id", userID), attribute.String("notification.id", id)))
	defer span.End()

	n, err := s.inner.MarkAsRead(ctx, userID, id)
	if err != nil {
		return nil, s.handleError(ctx, span, err, "failed to mark notification read", slog.String("notification.id", id))
	}
	return n, nil
}

func (s *Service) MarkAllAsRead(ctx context.Context, userID string) (int, error) {
	ctx, span := s.tracer.Start(ctx, "NotificationService.MarkAllAsRead", trace.WithAttributes(attribute.String("user.id", userID)))
	defer span.End()

	changed, err := s.inner.MarkAllAsRead(ctx, userID)
	if err != nil {
		return 0, s.handleError(ctx, span, err, "failed to mark notifications read", slog.String("user.id", userID))
	}
	s.log(ctx, slog.LevelInfo, "notifications marked read", slog.String("user.id", userID), slog.Int("count", changed))
	return changed, nil
}

func (s *Service) log(ctx context.Context, level slog.Level, msg string, attrs ...slog.Attr) {
	if s.logger == nil {
		return
	}
	s.logger.LogAttrs(ctx, level, msg, attrs...)
}

func (s *Service) handleError(ctx context.Context, span trace.Span, err error, msg string, attrs ...slog.Attr) error {
	span.RecordError(err)
	span.SetStatus(codes.Error, err.Error())
	s.log(ctx, slog.LevelError, msg, append(attrs, slog.String("error", err.Error()))...)
	return err
}

var _ ports.Service = (*Service)(nil)
