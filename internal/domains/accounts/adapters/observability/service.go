package observability

import (
	"context"
	"errors"
	"io"
	"log/slog"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"
	nooptrace "go.opentelemetry.io/otel/trace/noop"

	"github.com/levaja/marketplace-api/internal/domains/accounts/application"
	types "github.com/levaja/marketplace-api/internal/domains/accounts/application/types"
	"github.com/levaja/marketplace-api/internal/domains/accounts/domain"
	"github.com/levaja/marketplace-api/internal/domains/accounts/ports"
)

const tracerName = "github.com/levaja/marketplace-api/internal/domains/accounts/adapters/observability/service"

// Service decorates the accounts service with tracing, logging, and metrics.
// Emails and tokens are never logged.
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

// New wraps the core accounts service.
func New(inner ports.Service, opts ...Option) ports.Service {
	s := &Service{
		inner:   inner,
		tracer:  nooptrace.NewTracerProvider().Tracer(tracerName),
		logger:  defaultLogger(),
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
	if s.logger == nil {
		s.logger = defaultLogger()
	}
	return s
}

func (s *Service) Register(ctx context.Context, input types.RegisterInput) (*types.AuthResult, error) {
	ctx, span := s.tracer.Start(ctx, "AccountsService.Register")
	defer span.End()
	result, err := s.inner.Register(ctx, input)
	if err != nil {
		return nil, s.handleError(ctx, span, err, "registration failed")
	}
	span.SetAttributes(attribute.String("user.id", result.User.ID))
	s.metrics.recordCreated(ctx, string(result.User.Role))
	s.logInfo(ctx, "consumer registered", slog.String("user.id", result.User.ID))
	return result, nil
}

func (s *Service) Login(ctx context.Context, email, password string) (*types.AuthResult, error) {
	ctx, span := s.tracer.Start(ctx, "AccountsService.Login")
	defer span.End()
	result, err := s.inner.Login(ctx, email, password)
	if err != nil {
		s.metrics.recordLogin(ctx, false)
		if errors.Is(err, application.ErrInvalidCredentials) {
			s.logger.LogAttrs(ctx, slog.LevelWarn, "login rejected")
			return nil, err
		}
		return nil, s.handleError(ctx, span, err, "login failed")
	}
	span.SetAttributes(attribute.String("user.id", result.User.ID), attribute.String("user.role", string(result.User.Role)))
	s.metrics.recordLogin(ctx, true)
	s.logInfo(ctx, "user logged in", slog.String("user.id", result.User.ID))
	return result, nil
}

func (s *Service) Logout(ctx context.Context, token string) error {
	ctx, span := s.tracer.Start(ctx, "AccountsService.Logout")
	defer span.End()
	if err := s.inner.Logout(ctx, token); err != nil {
		return s.handleError(ctx, span, err, "logout failed")
	}
	return nil
}

func (s *Service) Authenticate(ctx context.Context, token string) (domain.Principal, error) {
	ctx, span := s.tracer.Start(ctx, "AccountsService.Authenticate")
	defer span.End()
	principal, err := s.inner.Authenticate(ctx, token)
	if err != nil {
		if errors.Is(err, application.ErrUnauthenticated) {
			span.SetAttributes(attribute.Bool("auth.rejected", true))
			return principal, err
		}
		return principal, s.handleError(ctx, span, err, "authentication failed")
	}
	span.SetAttributes(attribute.String("user.id", principal.UserID), attribute.String("user.role", string(principal.Role)))
	return principal, nil
}

func (s *Service) Me(ctx context.Context, userID string) (*domain.User, error) {
	ctx, span := s.tracer.Start(ctx, "AccountsService.Me", trace.WithAttributes(attribute.String("user.id", userID)))
	defer span.End()
	user, err := s.inner.Me(ctx, userID)
	if err != nil {
		return nil, s.handleError(ctx, span, err, "failed to load profile", slog.String("user.id", userID))
	}
	return user, nil
}

func (s *Service) UpdateProfile(ctx context.Context, userID string, update types.ProfileUpdate) (*domain.User, error) {
	ctx, span := s.tracer.Start(ctx, "AccountsService.UpdateProfile", trace.WithAttributes(attribute.String("user.id", userID)))
	defer span.End()
	user, err := s.inner.UpdateProfile(ctx, userID, update)
	if err != nil {
		return nil, s.handleError(ctx, span, err, "failed to update profile", slog.String("user.id", userID))
	}
	s.metrics.recordUpdated(ctx)
	return user, nil
}

func (s *Service) ChangePassword(ctx context.Context, userID string, change types.PasswordChange) error {
	ctx, span := s.tracer.Start(ctx, "AccountsService.ChangePassword", trace.WithAttributes(attribute.String("user.id", userID)))
	defer span.End()
	if err := s.inner.ChangePassword(ctx, userID, change); err != nil {
		return s.handleError(ctx, span, err, "failed to change password", slog.String("user.id", userID))
	}
	s.logInfo(ctx, "password changed", slog.String("user.id", userID))
	return nil
}

func (s *Service) CreateUser(ctx context.Context, input types.UserInput) (*domain.User, error) {
	ctx, span := s.tracer.Start(ctx, "AccountsService.CreateUser")
	defer span.End()
	user, err := s.inner.CreateUser(ctx, input)
	if err != nil {
		return nil, s.handleError(ctx, span, err, "failed to create user")
	}
	s.metrics.recordCreated(ctx, string(user.Role))
	s.logInfo(ctx, "user created", slog.String("user.id", user.ID), slog.String("user.role", string(user.Role)))
	return user, nil
}

func (s *Service) UpdateUser(ctx context.Context, input types.UserInput) (*domain.User, error) {
	ctx, span := s.tracer.Start(ctx, "AccountsService.UpdateUser", trace.WithAttributes(attribute.String("user.id", input.ID)))
	defer span.End()
	user, err := s.inner.UpdateUser(ctx, input)
	if err != nil {
		return nil, s.handleError(ctx, span, err, "failed to update user", slog.String("user.id", input.ID))
	}
	s.metrics.recordUpdated(ctx)
	s.logInfo(ctx, "user updated", slog.String("user.id", user.ID))
	return user, nil
}

func (s *Service) DeleteUser(ctx context.Context, id string) error {
	ctx, span := s.tracer.Start(ctx, "AccountsService.DeleteUser", trace.WithAttributes(attribute.String("user.id", id)))
	defer span.End()
	if err := s.inner.DeleteUser(ctx, id); err != nil {
		return s.handleError(ctx, span, err, "failed to delete user", slog.String("user.id", id))
	}
	s.metrics.recordDeleted(ctx)
	s.logInfo(ctx, "user deleted", slog.String("user.id", id))
	return nil
}

func (s *Service) GetUser(ctx context.Context, id string) (*domain.User, error) {
	ctx, span := s.tracer.Start(ctx, "AccountsService.GetUser", trace.WithAttributes(attribute.String("user.id", id)))
	defer span.End()
	user, err := s.inner.GetUser(ctx, id)
	if err != nil {
		return nil, s.handleError(ctx, span, err, "failed to load user", slog.String("user.id", id))
	}
	return user, nil
}

func (s *Service) ListUsers(ctx context.Context, role string) ([]*domain.User, error) {
	ctx, span := s.tracer.Start(ctx, "AccountsService.ListUsers", trace.WithAttributes(attribute.String("filter.role", role)))
	defer span.End()
	users, err := s.inner.ListUsers(ctx, role)
	if err != nil {
		return nil, s.handleError(ctx, span, err, "failed to list users")
	}
	span.SetAttributes(attribute.Int("result.count", len(users)))
	return users, nil
}

func (s *Service) AddLoyaltyPoints(ctx context.Context, userID string, points int) error {
	ctx, span := s.tracer.Start(ctx, "AccountsService.AddLoyaltyPoints", trace.WithAttributes(
		attribute.String("user.id", userID), attribute.Int("loyalty.points", points)))
	defer span.End()
	if err := s.inner.AddLoyaltyPoints(ctx, userID, points); err != nil {
		return s.handleError(ctx, span, err, "failed to credit loyalty points", slog.String("user.id", userID))
	}
	return nil
}

func (s *Service) logInfo(ctx context.Context, msg string, attrs ...slog.Attr) {
	s.logger.LogAttrs(ctx, slog.LevelInfo, msg, attrs...)
}

func (s *Service) handleError(ctx context.Context, span trace.Span, err error, msg string, attrs ...slog.Attr) error {
	if span != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	}
	attrs = append(attrs, slog.String("error", err.Error()))
	s.logger.LogAttrs(ctx, slog.LevelError, msg, attrs...)
	return err
}

type serviceMetrics struct {
	usersCreated metric.Int64Counter
	usersUpdated metric.Int64Counter
	usersDeleted metric.Int64Counter
	logins       metric.Int64Counter
}

func newServiceMetrics(m metric.Meter) serviceMetrics {
	if m == nil {
		return serviceMetrics{}
	}
	created, _ := m.Int64Counter("accounts.service.users_created", metric.WithDescription("Number of users created"))
	updated, _ := m.Int64Counter("accounts.service.users_updated", metric.WithDescription("Number of users updated"))
	deleted, _ := m.Int64Counter("accounts.service.users_deleted", metric.WithDescription("Number of users deleted"))
	logins, _ := m.Int64Counter("accounts.service.logins", metric.WithDescription("Number of login attempts"))
	return serviceMetrics{usersCreated: created, usersUpdated: updated, usersDeleted: deleted, logins: logins}
}

func (m serviceMetrics) recordCreated(ctx context.Context, role string) {
	if m.usersCreated != nil {
		m.usersCreated.Add(ctx, 1, metric.WithAttributes(attribute.String("user.role", role)))
	}
}

func (m serviceMetrics) recordUpdated(ctx context.Context) {
	if m.usersUpdated != nil {
		m.usersUpdated.Add(ctx, 1)
	}
}

func (m serviceMetrics) recordDeleted(ctx context.Context) {
	if m.usersDeleted != nil {
		m.usersDeleted.Add(ctx, 1)
	}
}

func (m serviceMetrics) recordLogin(ctx context.Context, success bool) {
	if m.logins != nil {
		m.logins.Add(ctx, 1, metric.WithAttributes(attribute.Bool("login.success", success)))
	}
}

func defaultLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

var _ ports.Service = (*Service)(nil)
