package ports

import (
	"context"
	"errors"
	"time"

	"github.com/levaja/marketplace-api/internal/domains/insights/domain"
)

var ErrNotFound = errors.New("insight not found")

// ProductSource snapshots the catalog as of now.
type ProductSource interface {
	Products(ctx context.Context, now time.Time) ([]domain.ProductFact, error)
}

// SalesSource lists the lines of every non-cancelled order.
type SalesSource interface {
	Sales(ctx context.Context) ([]domain.SaleLine, error)
}

type PromotionSource interface {
	RunningCount(ctx context.Context) (int, error)
}

// WastageSource lists write-offs inside an optional inclusive period and sector.
type WastageSource interface {
	Wastage(ctx context.Context, from, to *time.Time, sectorID string) ([]domain.WastageFact, error)
}

type ActivityRepository interface {
	Append(ctx context.Context, entry domain.ActivityEntry) error
	// Recent returns up to limit entries, newest first.
	Recent(ctx context.Context, limit int) ([]domain.ActivityEntry, error)
}
