package memory

import (
	"context"
	"sync"

	"github.com/levaja/marketplace-api/internal/domains/insights/domain"
	"github.com/levaja/marketplace-api/internal/domains/insights/ports"
)

var _ ports.ActivityRepository = (*ActivityLog)(nil)

// ActivityLog is a bounded in-memory audit trail. The oldest entries are dropped past capacity.
type ActivityLog struct {
	mu       sync.RWMutex
	entries  []domain.ActivityEntry
	capacity int
}

func NewActivityLog(capacity int) *ActivityLog {
	if capacity <= 0 {
		capacity = 1000
	}
	return &ActivityLog{capacity: capacity}
}

func (l *ActivityLog) Append(_ context.Context, entry domain.ActivityEntry) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	entry.Metadata = copyMetadata(entry.Metadata)
	l.entries = append(l.entries, entry)
	if over := len(l.entries) - l.capacity; over > 0 {
		l.entries = append([]domain.ActivityEntry(nil), l.entries[over:]...)
	}
	return nil
}

func (l *ActivityLog) Recent(_ context.Context, limit int) ([]domain.ActivityEntry, error) {
	l.mu.RLock()
	defer l.mu.RUnlock()
	out := make([]domain.ActivityEntry, 0, limit)
	for i := len(l.entries) - 1; i >= 0 && len(out) < limit; i-- {
		entry := l.entries[i]
		entry.Metadata = copyMetadata(entry.Metadata)
		out = append(out, entry)
	}
	return out, nil
}

func copyMetadata(m map[string]string) map[string]string {
	if m == nil {
		return nil
	}
	out := make(map[string]string, len(m))
	for k, v := range m {
		out[k] = v
	}
	return out
}
