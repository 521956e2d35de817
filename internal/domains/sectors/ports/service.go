package ports

import (
	"context"

	types "github.com/levaja/marketplace-api/internal/domains/sectors/application/types"
	"github.com/levaja/marketplace-api/internal/domains/sectors/domain"
)

type Service interface {
	Create(ctx context.Context, input types.SectorInput) (*domain.Sector, error)
	Update(ctx context.Context, input types.SectorInput) (*domain.Sector, error)
	Delete(ctx context.Context, id string) error
	Get(ctx context.Context, id string) (*domain.Sector, error)
	List(ctx context.Context) ([]*domain.Sector, error)
}
