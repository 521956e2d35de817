package ports

import (
	"context"
	"errors"

	"github.com/shopspring/decimal"

	"github.com/levaja/marketplace-api/internal/domains/wastage/domain"
)

var (
	ErrProductNotFound   = errors.New("wasted product not found")
	ErrInsufficientStock = errors.New("wasted quantity exceeds stock")
)

type Repository interface {
	Save(ctx context.Context, record *domain.Record) (*domain.Record, error)
	List(ctx context.Context) ([]*domain.Record, error)
}

// ProductSnapshot is the catalog state copied onto a wastage record.
type ProductSnapshot struct {
	ID        string
	Name      string
	SectorID  string
	Category  string
	UnitPrice decimal.Decimal
}

// Inventory reads products and moves their stock level.
type Inventory interface {
	Snapshot(ctx context.Context, productID string) (ProductSnapshot, error)
	// AdjustStock applies a signed delta and returns ErrInsufficientStock when it would go negative.
	AdjustStock(ctx context.Context, productID string, delta int) error
}
