package ports

import (
	"context"

	types "github.com/levaja/marketplace-api/internal/domains/notifications/application/types"
	"github.com/levaja/marketplace-api/internal/domains/notifications/domain"
)

// Service exposes the notification inbox.
type Service interface {
	Notify(ctx context.Context, input types.NotificationInput) (*domain.Notification, error)
	List(ctx context.Context, userID string, unreadOnly bool) ([]*domain.Notification, error)
	UnreadCount(ctx context.Context, userID string) (int, error)
	MarkAsRead(ctx context.Context, userID, id string) (*domain.Notification, error)
	MarkAllAsRead(ctx context.Context, userID string) (int, error)
}
