package ports

import (
	"context"

	types "github.com/levaja/marketplace-api/internal/domains/promotions/application/types"
	"github.com/levaja/marketplace-api/internal/domains/promotions/domain"
)

type Service interface {
	Create(ctx context.Context, input types.PromotionInput) (*domain.Promotion, error)
	Update(ctx context.Context, input types.PromotionInput) (*domain.Promotion, error)
	Delete(ctx context.Context, id string) error
	Get(ctx context.Context, id string) (*domain.Promotion, error)
	List(ctx context.Context) ([]*domain.Promotion, error)
	Activate(ctx context.Context, id string) (*domain.Promotion, error)
	Deactivate(ctx context.Context, id string) (*domain.Promotion, error)
	GenerateSuggestions(ctx context.Context) ([]*domain.Promotion, error)
	// RunningCount counts promotions running right now.
	RunningCount(ctx context.Context) (int, error)
}
