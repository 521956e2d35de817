package ports

import (
	"context"

	"github.com/levaja/marketplace-api/internal/domains/cart/domain"
)

// Service exposes cart use cases to adapters.
type Service interface {
	Get(ctx context.Context, userID string) (*domain.Cart, error)
	AddItem(ctx context.Context, userID, productID string, qty int) (*domain.Cart, error)
	UpdateQuantity(ctx context.Context, userID, itemID string, qty int) (*domain.Cart, error)
	RemoveItem(ctx context.Context, userID, itemID string) (*domain.Cart, error)
	Clear(ctx context.Context, userID string) (*domain.Cart, error)
}
