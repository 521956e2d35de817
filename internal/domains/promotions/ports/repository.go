package ports

import (
	"context"
	"errors"

	"github.com/levaja/marketplace-api/internal/domains/promotions/domain"
)

var (
	ErrNotFound        = errors.New("promotion not found")
	ErrProductNotFound = errors.New("promoted product not found")
)

type Repository interface {
	Save(ctx context.Context, promotion *domain.Promotion) (*domain.Promotion, error)
	GetByID(ctx context.Context, id string) (*domain.Promotion, error)
	Delete(ctx context.Context, id string) error
	List(ctx context.Context) ([]*domain.Promotion, error)
}

// ProductCatalog is the slice of the catalog that promotions depend on.
type ProductCatalog interface {
	// Exists returns ErrProductNotFound for unknown products.
	Exists(ctx context.Context, productID string) error
	Candidates(ctx context.Context) ([]domain.Candidate, error)
	// LinkPromotion records the promotion on the product; an empty id unlinks it.
	LinkPromotion(ctx context.Context, productID, promotionID string) error
}
