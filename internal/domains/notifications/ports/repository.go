package ports

import (
	"context"
	"errors"

	"github.com/levaja/marketplace-api/internal/domains/notifications/domain"
)

var ErrNotFound = errors.New("notification not found")

type Repository interface {
	Save(ctx context.Context, n *domain.Notification) (*domain.Notification, error)
	GetByID(ctx context.Context, id string) (*domain.Notification, error)
	// ListByUser returns the recipient's notifications, newest first.
	ListByUser(ctx context.Context, userID string) ([]*domain.Notification, error)
	// MarkAllRead flags every unread notification of the user and returns how many changed.
	MarkAllRead(ctx context.Context, userID string) (int, error)
}
