package ports

import (
	"context"
	"errors"

	"github.com/levaja/marketplace-api/internal/domains/sectors/domain"
)

var ErrNotFound = errors.New("sector not found")

type Repository interface {
	Save(ctx context.Context, sector *domain.Sector) (*domain.Sector, error)
	GetByID(ctx context.Context, id string) (*domain.Sector, error)
	Delete(ctx context.Context, id string) error
	List(ctx context.Context) ([]*domain.Sector, error)
}
