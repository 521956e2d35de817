package memory

import (
	"context"
	"sync"
	"time"

	"github.com/levaja/marketplace-api/internal/domains/accounts/domain"
	"github.com/levaja/marketplace-api/internal/domains/accounts/ports"
)

var _ ports.SessionStore = (*SessionStore)(nil)

// SessionStore is an in-memory SessionStore implementation.
type SessionStore struct {
	sessions sync.Map
}

func NewSessionStore() *SessionStore {
	return &SessionStore{}
}

func (s *SessionStore) Save(_ context.Context, session domain.Session) error {
	s.sessions.Store(session.ID, session)
	return nil
}

func (s *SessionStore) Exists(_ context.Context, id string, now time.Time) (bool, error) {
	value, ok := s.sessions.Load(id)
	if !ok {
		return false, nil
	}
	return !value.(domain.Session).Expired(now), nil
}

func (s *SessionStore) Delete(_ context.Context, id string) error {
	s.sessions.Delete(id)
	return nil
}

func (s *SessionStore) DeleteForUser(_ context.Context, userID string) error {
	s.sessions.Range(func(key, value any) bool {
		if value.(domain.Session).UserID == userID {
			s.sessions.Delete(key)
		}
		return true
	})
	return nil
}

func (s *SessionStore) PurgeExpired(_ context.Context, now time.Time) (int64, error) {
	var purged int64
	s.sessions.Range(func(key, value any) bool {
		if value.(domain.Session).Expired(now) {
			s.sessions.Delete(key)
			purged++
		}
		return true
	})
	return purged, nil
}
