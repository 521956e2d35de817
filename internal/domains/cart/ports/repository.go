package ports

import (
	"context"
	"errors"

	"github.com/levaja/marketplace-api/internal/domains/cart/domain"
)

var (
	ErrNotFound        = errors.New("cart not found")
	ErrProductNotFound = errors.New("product not found")
)

// Repository persists one cart per user.
type Repository interface {
	GetByUser(ctx context.Context, userID string) (*domain.Cart, error)
	Save(ctx context.Context, cart *domain.Cart) (*domain.Cart, error)
}

// ProductLookup snapshots a catalog product as a cart line without id or quantity.
// It returns ErrProductNotFound for unknown ids.
type ProductLookup interface {
	Lookup(ctx context.Context, productID string) (domain.Item, error)
}
