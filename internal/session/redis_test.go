package session

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"

	"github.com/goodneighborlab/goodneighbor/internal/models"
)

func setupRedisStore(t *testing.T) (*RedisStore, *miniredis.Miniredis) {
	t.Helper()

	mr := miniredis.RunT(t)

	store, err := NewRedisStore(context.Background(), "redis://"+mr.Addr(), time.Hour)
	if err != nil {
		t.Fatalf("connecting to miniredis: %v", err)
	}

	t.Cleanup(func() { _ = store.Close() })

	return store, mr
}

func TestRedisStore_RoundTrip(t *testing.T) {
	store, _ := setupRedisStore(t)

	rec := models.NewInteractionRecord()
	rec.Views = []string{"A"}
	rec.ViewTimestamps["A"] = []int64{123, 456}
	rec.Bookmarks = []string{"B"}

	if err := store.Save(context.Background(), "s1", rec); err != nil {
		t.Fatalf("save: %v", err)
	}

	got, err := store.Load(context.Background(), "s1")
	if err != nil {
		t.Fatalf("load: %v", err)
	}

	if got == nil {
		t.Fatal("load returned nil for saved session")
	}

	if !got.HasView("A") || !got.HasBookmark("B") {
		t.Errorf("round-trip lost data: %+v", got)
	}

	if ts := got.ViewTimestamps["A"]; len(ts) != 2 || ts[0] != 123 || ts[1] != 456 {
		t.Errorf("timestamps = %v, want [123 456]", ts)
	}
}

func TestRedisStore_LoadAbsentSession(t *testing.T) {
	store, _ := setupRedisStore(t)

	got, err := store.Load(context.Background(), "missing")
	if err != nil || got != nil {
		t.Errorf("got (%v, %v), want (nil, nil) for absent session", got, err)
	}
}

func TestRedisStore_CorruptedStateFailsOpen(t *testing.T) {
	store, mr := setupRedisStore(t)

	if err := mr.Set(redisKeyPrefix+"s1", "{not json"); err != nil {
		t.Fatalf("seeding corrupt value: %v", err)
	}

	got, err := store.Load(context.Background(), "s1")
	if err != nil || got != nil {
		t.Errorf("got (%v, %v), want (nil, nil) for corrupt state", got, err)
	}
}

func TestTracker_FallsBackWhenRedisDown(t *testing.T) {
	store, mr := setupRedisStore(t)
	mr.Close()

	tr := NewTracker(context.Background(), "s1", store, testLogger())
	tr.TrackView(context.Background(), "A")

	if rec := tr.Snapshot(); !rec.HasView("A") {
		t.Error("in-memory state must survive a dead Redis")
	}
}
