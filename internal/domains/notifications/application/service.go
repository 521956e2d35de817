package application

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"

	types "github.com/levaja/marketplace-api/internal/domains/notifications/application/types"
	"github.com/levaja/marketplace-api/internal/domains/notifications/domain"
	"github.com/levaja/marketplace-api/internal/domains/notifications/ports"
)

// Service stores and reads per-user notifications.
type Service struct {
	repo ports.Repository
	now  func() time.Time
}

type Option func(*Service)

func WithClock(now func() time.Time) Option {
	return func(s *Service) {
		if now != nil {
			s.now = now
		}
	}
}

func NewService(repo ports.Repository, opts ...Option) *Service {
	s := &Service{repo: repo, now: time.Now}
	for _, opt := range opts {
		if opt != nil {
			opt(s)
		}
	}
	return s
}

func (s *Service) Notify(ctx context.Context, input types.NotificationInput) (*domain.Notification, error) {
	kind := domain.TypeInfo
	if strings.TrimSpace(input.Type) != "" {
		parsed, err := domain.ParseType(input.Type)
		if err != nil {
			return nil, mapError(err)
		}
		kind = parsed
	}
	n := &domain.Notification{
		ID:        uuid.NewString(),
		UserID:    strings.TrimSpace(input.UserID),
		Title:     input.Title,
		Message:   input.Message,
		Type:      kind,
		CreatedAt: s.now(),
		ActionURL: strings.TrimSpace(input.ActionURL),
		ProductID: input.ProductID,
		MarketID:  input.MarketID,
	}
	if err := n.Validate(); err != nil {
		return nil, mapError(err)
	}
	return s.repo.Save(ctx, n)
}

func (s *Service) List(ctx context.Context, userID string, unreadOnly bool) ([]*domain.Notification, error) {
	if userID == "" {
		return nil, mapError(domain.ErrEmptyUserID)
	}
	all, err := s.repo.ListByUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	if !unreadOnly {
		return all, nil
	}
	unread := make([]*domain.Notification, 0, len(all))
	for _, n := range all {
		if !n.IsRead {
			unread = append(unread, n)
		}
	}
	return unread, nil
}

func (s *Service) UnreadCount(ctx context.Context, userID string) (int, error) {
	unread, err := s.List(ctx, userID, true)
	if err != nil {
		return 0, err
	}
	return len(unread), nil
}

// MarkAsRead flags one notification. Another user's notification is reported as not found.
func (s *Service) MarkAsRead(ctx context.Context, userID, id string) (*domain.Notification, error) {
	n, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if n.UserID != userID {
		return nil, ports.ErrNotFound
	}
	if !n.MarkRead() {
		return n, nil
	}
	return s.repo.Save(ctx, n)
}

func (s *Service) MarkAllAsRead(ctx context.Context, userID string) (int, error) {
	if userID == "" {
		return 0, mapError(domain.ErrEmptyUserID)
	}
	return s.repo.MarkAllRead(ctx, userID)
}

var _ ports.Service = (*Service)(nil)
