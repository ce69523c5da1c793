package session

import (
	"context"
	"sync"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/goodneighborlab/goodneighbor/internal/models"
)

// Tracker is the mutable interaction log for one session. All mutations
// are synchronous: the in-memory record is updated first, then persisted
// best-effort. A failed persist is logged and swallowed; the in-memory
// state remains authoritative for the rest of the session.
type Tracker struct {
	mu        sync.Mutex
	sessionID string
	rec       *models.InteractionRecord
	store     Store
	log       *logrus.Logger
	now       func() time.Time
}

// NewTracker creates a tracker for sessionID, restoring prior state from
// the store. Restoration failures yield the empty initial state.
func NewTracker(ctx context.Context, sessionID string, store Store, log *logrus.Logger) *Tracker {
	t := &Tracker{
		sessionID: sessionID,
		rec:       models.NewInteractionRecord(),
		store:     store,
		log:       log,
		now:       time.Now,
	}

	if store != nil {
		rec, err := store.Load(ctx, sessionID)
		switch {
		case err != nil:
			log.WithError(err).WithField("session_id", sessionID).
				Warn("restoring interaction state failed, starting empty")
		case rec != nil:
			t.rec = rec
		}
	}

	return t
}

// TrackView adds id to the viewed set and appends the current timestamp
// to its view history. Re-viewing appends, never overwrites.
func (t *Tracker) TrackView(ctx context.Context, id string) {
	t.mu.Lock()

	if !t.rec.HasView(id) {
		t.rec.Views = append(t.rec.Views, id)
	}

	if t.rec.ViewTimestamps[id] == nil {
		t.rec.ViewTimestamps[id] = []int64{}
	}
	t.rec.ViewTimestamps[id] = append(t.rec.ViewTimestamps[id], t.now().UnixMilli())

	snapshot := t.rec.Clone()
	t.mu.Unlock()

	t.persist(ctx, snapshot)
}

// ToggleBookmark flips id's membership in the bookmark set and reports
// the new state.
func (t *Tracker) ToggleBookmark(ctx context.Context, id string) bool {
	t.mu.Lock()

	bookmarked := false

	if t.rec.HasBookmark(id) {
		kept := t.rec.Bookmarks[:0]
		for _, b := range t.rec.Bookmarks {
			if b != id {
				kept = append(kept, b)
			}
		}
		t.rec.Bookmarks = kept
	} else {
		t.rec.Bookmarks = append(t.rec.Bookmarks, id)
		bookmarked = true
	}

	snapshot := t.rec.Clone()
	t.mu.Unlock()

	t.persist(ctx, snapshot)

	return bookmarked
}

// Reset clears views, timestamps, and bookmarks, and persists the empty
// state. Resetting an already-empty tracker is a no-op with the same
// outcome.
func (t *Tracker) Reset(ctx context.Context) {
	t.mu.Lock()
	t.rec = models.NewInteractionRecord()
	snapshot := t.rec.Clone()
	t.mu.Unlock()

	t.persist(ctx, snapshot)
}

// Snapshot returns a deep copy of the current interaction record.
func (t *Tracker) Snapshot() *models.InteractionRecord {
	t.mu.Lock()
	defer t.mu.Unlock()

	return t.rec.Clone()
}

// persist writes the record best-effort. Storage failures never
// propagate to the caller.
func (t *Tracker) persist(ctx context.Context, rec *models.InteractionRecord) {
	if t.store == nil {
		return
	}

	if err := t.store.Save(ctx, t.sessionID, rec); err != nil {
		t.log.WithError(err).WithField("session_id", t.sessionID).
			Warn("persisting interaction state failed, keeping in-memory state")
	}
}
