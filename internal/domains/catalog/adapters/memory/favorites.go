package memory

import (
	"context"
	"sync"

	"github.com/levaja/marketplace-api/internal/domains/catalog/ports"
)

var _ ports.FavoriteStore = (*FavoriteStore)(nil)

// FavoriteStore keeps per-user favorites in insertion order.
type FavoriteStore struct {
	mu    sync.RWMutex
	users map[string][]string
}

func NewFavoriteStore() *FavoriteStore {
	return &FavoriteStore{users: map[string][]string{}}
}

// Toggle adds the product when absent and removes it otherwise.
func (s *FavoriteStore) Toggle(_ context.Context, userID, productID string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	current := s.users[userID]
	for i, id := range current {
		if id == productID {
			s.users[userID] = append(current[:i:i], current[i+1:]...)
			return false, nil
		}
	}
	s.users[userID] = append(current, productID)
	return true, nil
}

func (s *FavoriteStore) List(_ context.Context, userID string) ([]string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]string(nil), s.users[userID]...), nil
}

func (s *FavoriteStore) RemoveProduct(_ context.Context, productID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for user, ids := range s.users {
		kept := ids[:0:0]
		for _, id := range ids {
			if id != productID {
				kept = append(kept, id)
			}
		}
		s.users[user] = kept
	}
	return nil
}
