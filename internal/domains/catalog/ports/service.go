package ports

import (
	"context"

	types "github.com/levaja/marketplace-api/internal/domains/catalog/application/types"
	"github.com/levaja/marketplace-api/internal/domains/catalog/domain"
)

// Service exposes catalog use cases to adapters.
type Service interface {
	ListProducts(ctx context.Context, filter domain.ProductFilter, viewer types.Viewer) (domain.Page[domain.ProductView], error)
	GetProduct(ctx context.Context, id string, viewer types.Viewer) (*types.ProductProjection, error)
	FindByBarcode(ctx context.Context, barcode string) (*types.ProductProjection, error)
	CreateProduct(ctx context.Context, input types.ProductInput) (*types.ProductProjection, error)
	UpdateProduct(ctx context.Context, input types.ProductInput) (*types.ProductProjection, error)
	DeleteProduct(ctx context.Context, id string) error
	AdjustStock(ctx context.Context, id string, delta int) (*types.ProductProjection, error)
	AllProducts(ctx context.Context) ([]*domain.Product, error)
	ToggleFavorite(ctx context.Context, userID, productID string) (bool, error)
	ListFavorites(ctx context.Context, viewer types.Viewer) ([]domain.ProductView, error)
	SaveMarket(ctx context.Context, market *domain.Market) (*domain.Market, error)
	ListMarkets(ctx context.Context, origin *domain.Location) ([]types.MarketView, error)
	GetMarket(ctx context.Context, id string, origin *domain.Location) (*types.MarketView, error)
	Suggestions(ctx context.Context, term string, limit int) ([]domain.SearchSuggestion, error)
}
