package ports

import (
	"context"
	"time"

	"github.com/levaja/marketplace-api/internal/domains/accounts/domain"
)

// SessionStore tracks issued tokens so they can be revoked.
type SessionStore interface {
	Save(ctx context.Context, session domain.Session) error
	// Exists reports whether the session is known and not expired at now.
	Exists(ctx context.Context, id string, now time.Time) (bool, error)
	Delete(ctx context.Context, id string) error
	DeleteForUser(ctx context.Context, userID string) error
	// PurgeExpired removes sessions expired at now and returns how many were dropped.
	PurgeExpired(ctx context.Context, now time.Time) (int64, error)
}
