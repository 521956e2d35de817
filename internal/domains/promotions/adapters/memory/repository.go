package memory

import (
	"context"
	"errors"
	"sync"

	"github.com/levaja/marketplace-api/internal/domains/promotions/domain"
	"github.com/levaja/marketplace-api/internal/domains/promotions/ports"
)

var _ ports.Repository = (*Repository)(nil)

// Repository keeps promotions in memory.
type Repository struct {
	mu         sync.RWMutex
	promotions map[string]*domain.Promotion
}

func NewRepository() *Repository {
	return &Repository{promotions: map[string]*domain.Promotion{}}
}

func (r *Repository) Save(_ context.Context, promotion *domain.Promotion) (*domain.Promotion, error) {
	if promotion == nil {
		return nil, errors.New("cannot save nil promotion")
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.promotions[promotion.ID] = promotion.Clone()
	return promotion.Clone(), nil
}

func (r *Repository) GetByID(_ context.Context, id string) (*domain.Promotion, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	p, ok := r.promotions[id]
	if !ok {
		return nil, ports.ErrNotFound
	}
	return p.Clone(), nil
}

func (r *Repository) Delete(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.promotions[id]; !ok {
		return ports.ErrNotFound
	}
	delete(r.promotions, id)
	return nil
}

func (r *Repository) List(context.Context) ([]*domain.Promotion, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	list := make([]*domain.Promotion, 0, len(r.promotions))
	for _, p := range r.promotions {
		list = append(list, p.Clone())
	}
	return list, nil
}
