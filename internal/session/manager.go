package session

import (
	"context"
	"sync"
	"time"

	"github.com/sirupsen/logrus"
)

// Manager hands out one Tracker per session id, creating (and restoring)
// trackers on first use. Idle trackers are evicted after the TTL; their
// persisted state survives in the store until its own TTL expires.
type Manager struct {
	mu       sync.Mutex
	trackers map[string]*managed
	store    Store
	ttl      time.Duration
	log      *logrus.Logger
}

type managed struct {
	tracker *Tracker
	touched time.Time
}

// NewManager creates a Manager backed by the given store.
func NewManager(store Store, ttl time.Duration, log *logrus.Logger) *Manager {
	return &Manager{
		trackers: map[string]*managed{},
		store:    store,
		ttl:      ttl,
		log:      log,
	}
}

// Get returns the tracker for sessionID, creating it if needed.
func (m *Manager) Get(ctx context.Context, sessionID string) *Tracker {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.evictIdle()

	if e, ok := m.trackers[sessionID]; ok {
		e.touched = time.Now()

		return e.tracker
	}

	t := NewTracker(ctx, sessionID, m.store, m.log)
	m.trackers[sessionID] = &managed{tracker: t, touched: time.Now()}

	return t
}

// Count returns the number of live trackers.
func (m *Manager) Count() int {
	m.mu.Lock()
	defer m.mu.Unlock()

	return len(m.trackers)
}

func (m *Manager) evictIdle() {
	if m.ttl <= 0 {
		return
	}

	cutoff := time.Now().Add(-m.ttl)
	for id, e := range m.trackers {
		if e.touched.Before(cutoff) {
			delete(m.trackers, id)
		}
	}
}
