package artifacts

import (
	"context"
	"sync"
	"time"

	"tubenotes/types"
)

type memoryEntry struct {
	artifact  types.Artifact
	expiresAt time.Time
}

// MemoryStore keeps artifacts in process. Entries expire after ttl; zero keeps them forever.
type MemoryStore struct {
	mu      sync.RWMutex
	entries map[string]memoryEntry
	ttl     time.Duration
	now     func() time.Time
}

var _ Store = (*MemoryStore)(nil)

func NewMemoryStore(ttl time.Duration) *MemoryStore {
	return &MemoryStore{
		entries: make(map[string]memoryEntry),
		ttl:     ttl,
		now:     time.Now,
	}
}

func (m *MemoryStore) Save(_ context.Context, runID string, a types.Artifact) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	entry := memoryEntry{artifact: a}
	if m.ttl > 0 {
		entry.expiresAt = m.now().Add(m.ttl)
	}
	m.entries[runID] = entry
	m.sweepLocked()
	return nil
}

func (m *MemoryStore) Load(_ context.Context, runID string) (types.Artifact, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	entry, ok := m.entries[runID]
	if !ok || m.expired(entry) {
		return types.Artifact{}, ErrNotFound
	}
	return entry.artifact, nil
}

func (m *MemoryStore) expired(e memoryEntry) bool {
	return !e.expiresAt.IsZero() && !m.now().Before(e.expiresAt)
}

// sweepLocked drops expired entries; callers hold the write lock
func (m *MemoryStore) sweepLocked() {
	for id, e := range m.entries {
		if m.expired(e) {
			delete(m.entries, id)
		}
	}
}
