package memory

import (
	"context"
	"errors"
	"sort"
	"sync"

	"github.com/levaja/marketplace-api/internal/domains/notifications/domain"
	"github.com/levaja/marketplace-api/internal/domains/notifications/ports"
)

var _ ports.Repository = (*Repository)(nil)

// Repository keeps notifications in memory.
type Repository struct {
	mu    sync.RWMutex
	items map[string]domain.Notification
}

func NewRepository() *Repository {
	return &Repository{items: map[string]domain.Notification{}}
}

func (r *Repository) Save(_ context.Context, n *domain.Notification) (*domain.Notification, error) {
	if n == nil {
		return nil, errors.New("cannot save nil notification")
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.items[n.ID] = *n
	saved := *n
	return &saved, nil
}

func (r *Repository) GetByID(_ context.Context, id string) (*domain.Notification, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	n, ok := r.items[id]
	if !ok {
		return nil, ports.ErrNotFound
	}
	return &n, nil
}

func (r *Repository) ListByUser(_ context.Context, userID string) ([]*domain.Notification, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	list := make([]*domain.Notification, 0)
	for _, n := range r.items {
		if n.UserID == userID {
			copied := n
			list = append(list, &copied)
		}
	}
	sort.Slice(list, func(i, j int) bool {
		if list[i].CreatedAt.Equal(list[j].CreatedAt) {
			return list[i].ID > list[j].ID
		}
		return list[i].CreatedAt.After(list[j].CreatedAt)
	})
	return list, nil
}

func (r *Repository) MarkAllRead(_ context.Context, userID string) (int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	changed := 0
	for id, n := range r.items {
		if n.UserID == userID && n.MarkRead() {
			r.items[id] = n
			changed++
		}
	}
	return changed, nil
}
