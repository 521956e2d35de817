package ports

import (
	"context"
	"errors"

	"github.com/levaja/marketplace-api/internal/domains/catalog/domain"
	"github.com/levaja/marketplace-api/internal/shared/projection"
)

var (
	ErrNotFound         = errors.New("product not found")
	ErrMarketNotFound   = errors.New("market not found")
	// ErrDuplicateBarcode is returned when a barcode already belongs to another product.
	ErrDuplicateBarcode = errors.New("barcode already assigned to another product")
)

// ProductRepository persists product aggregates with their persistence metadata.
type ProductRepository interface {
	Save(ctx context.Context, product *domain.Product) (*projection.Projection[*domain.Product], error)
	GetByID(ctx context.Context, id string) (*projection.Projection[*domain.Product], error)
	GetByBarcode(ctx context.Context, barcode string) (*projection.Projection[*domain.Product], error)
	Delete(ctx context.Context, id string) error
	List(ctx context.Context) ([]*projection.Projection[*domain.Product], error)
}

// MarketRepository persists partner markets.
type MarketRepository interface {
	Save(ctx context.Context, market *domain.Market) (*domain.Market, error)
	GetByID(ctx context.Context, id string) (*domain.Market, error)
	List(ctx context.Context) ([]*domain.Market, error)
}

// FavoriteStore keeps the per-user favorite product set.
type FavoriteStore interface {
	// Toggle flips the favorite flag and returns the new state.
	Toggle(ctx context.Context, userID, productID string) (bool, error)
	List(ctx context.Context, userID string) ([]string, error)
	// RemoveProduct drops the product from every user's favorites.
	RemoveProduct(ctx context.Context, productID string) error
}
