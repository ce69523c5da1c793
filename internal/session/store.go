// Package session tracks per-session interaction state: viewed items
// with their view timestamps and the bookmark set. State is persisted
// best-effort after every mutation; the in-memory copy stays
// authoritative when persistence is unavailable.
package session

import (
	"context"
	"sync"
	"time"

	"github.com/goodneighborlab/goodneighbor/internal/models"
)

// Store persists interaction records keyed by session id.
// Load returns (nil, nil) when no record exists for the session.
type Store interface {
	Save(ctx context.Context, sessionID string, rec *models.InteractionRecord) error
	Load(ctx context.Context, sessionID string) (*models.InteractionRecord, error)
}

// MemoryStore is the in-process fallback store. Entries older than the
// TTL are evicted lazily on access.
type MemoryStore struct {
	mu      sync.Mutex
	ttl     time.Duration
	entries map[string]memoryEntry
}

type memoryEntry struct {
	rec     *models.InteractionRecord
	touched time.Time
}

// NewMemoryStore creates a MemoryStore with the given entry TTL.
// A zero TTL keeps entries for the process lifetime.
func NewMemoryStore(ttl time.Duration) *MemoryStore {
	return &MemoryStore{ttl: ttl, entries: map[string]memoryEntry{}}
}

// Save stores a deep copy of the record.
func (m *MemoryStore) Save(_ context.Context, sessionID string, rec *models.InteractionRecord) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.evictExpired()
	m.entries[sessionID] = memoryEntry{rec: rec.Clone(), touched: time.Now()}

	return nil
}

// Load returns a deep copy of the stored record, or nil when absent.
func (m *MemoryStore) Load(_ context.Context, sessionID string) (*models.InteractionRecord, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.evictExpired()

	e, ok := m.entries[sessionID]
	if !ok {
		return nil, nil
	}

	return e.rec.Clone(), nil
}

func (m *MemoryStore) evictExpired() {
	if m.ttl <= 0 {
		return
	}

	cutoff := time.Now().Add(-m.ttl)
	for id, e := range m.entries {
		if e.touched.Before(cutoff) {
			delete(m.entries, id)
		}
	}
}
