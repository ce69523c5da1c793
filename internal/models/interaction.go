package models

import "sort"

// InteractionRecord is the serializable session interaction state:
// which items were viewed (with every view timestamp, epoch ms) and
// which are bookmarked. Sets are serialized as arrays of entries.
type InteractionRecord struct {
	Views          []string           `json:"views"`
	ViewTimestamps map[string][]int64 `json:"view_timestamps"`
	Bookmarks      []string           `json:"bookmarks"`
}

// NewInteractionRecord returns the empty initial state.
func NewInteractionRecord() *InteractionRecord {
	return &InteractionRecord{
		Views:          []string{},
		ViewTimestamps: map[string][]int64{},
		Bookmarks:      []string{},
	}
}

// Clone returns a deep copy of the record.
func (r *InteractionRecord) Clone() *InteractionRecord {
	c := &InteractionRecord{
		Views:          append([]string{}, r.Views...),
		ViewTimestamps: make(map[string][]int64, len(r.ViewTimestamps)),
		Bookmarks:      append([]string{}, r.Bookmarks...),
	}
	for id, ts := range r.ViewTimestamps {
		c.ViewTimestamps[id] = append([]int64{}, ts...)
	}

	return c
}

// HasView reports whether id is in the viewed set.
func (r *InteractionRecord) HasView(id string) bool {
	for _, v := range r.Views {
		if v == id {
			return true
		}
	}

	return false
}

// HasBookmark reports whether id is in the bookmark set.
func (r *InteractionRecord) HasBookmark(id string) bool {
	for _, b := range r.Bookmarks {
		if b == id {
			return true
		}
	}

	return false
}

// LastViewed returns the most recent view timestamp for id, or 0 when
// the id has never been viewed.
func (r *InteractionRecord) LastViewed(id string) int64 {
	ts := r.ViewTimestamps[id]
	if len(ts) == 0 {
		return 0
	}

	return ts[len(ts)-1]
}

// ViewedByRecency returns the distinct viewed ids ordered by each id's
// most recent view timestamp ascending. Ties fall back to id order so
// the result is deterministic.
func (r *InteractionRecord) ViewedByRecency() []string {
	ids := append([]string{}, r.Views...)
	sort.SliceStable(ids, func(i, j int) bool {
		ti, tj := r.LastViewed(ids[i]), r.LastViewed(ids[j])
		if ti == tj {
			return ids[i] < ids[j]
		}

		return ti < tj
	})

	return ids
}
