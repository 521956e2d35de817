package memory

import (
	"context"
	"errors"
	"sync"

	"github.com/levaja/marketplace-api/internal/domains/wastage/domain"
	"github.com/levaja/marketplace-api/internal/domains/wastage/ports"
)

var _ ports.Repository = (*Repository)(nil)

// Repository is an append-only in-memory wastage log.
type Repository struct {
	mu      sync.RWMutex
	records []domain.Record
}

func NewRepository() *Repository {
	return &Repository{}
}

func (r *Repository) Save(_ context.Context, record *domain.Record) (*domain.Record, error) {
	if record == nil {
		return nil, errors.New("cannot save nil wastage record")
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.records = append(r.records, *record)
	saved := *record
	return &saved, nil
}

func (r *Repository) List(context.Context) ([]*domain.Record, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	list := make([]*domain.Record, 0, len(r.records))
	for i := range r.records {
		rec := r.records[i]
		list = append(list, &rec)
	}
	return list, nil
}
