package memory

import (
	"context"
	"errors"
	"sync"

	"github.com/levaja/marketplace-api/internal/domains/sectors/domain"
	"github.com/levaja/marketplace-api/internal/domains/sectors/ports"
)

var _ ports.Repository = (*Repository)(nil)

type Repository struct {
	mu      sync.RWMutex
	sectors map[string]*domain.Sector
}

func NewRepository() *Repository {
	return &Repository{sectors: map[string]*domain.Sector{}}
}

func (r *Repository) Save(_ context.Context, sector *domain.Sector) (*domain.Sector, error) {
	if sector == nil {
		return nil, errors.New("cannot save nil sector")
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.sectors[sector.ID] = sector.Clone()
	return sector.Clone(), nil
}

func (r *Repository) GetByID(_ context.Context, id string) (*domain.Sector, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	sector, ok := r.sectors[id]
	if !ok {
		return nil, ports.ErrNotFound
	}
	return sector.Clone(), nil
}

func (r *Repository) Delete(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.sectors[id]; !ok {
		return ports.ErrNotFound
	}
	delete(r.sectors, id)
	return nil
}

func (r *Repository) List(context.Context) ([]*domain.Sector, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	list := make([]*domain.Sector, 0, len(r.sectors))
	for _, s := range r.sectors {
		list = append(list, s.Clone())
	}
	return list, nil
}
