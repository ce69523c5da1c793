package client

import (
	"context"
	"net/url"
)

// SessionService manages the per-session interaction record.
type SessionService struct {
	c *Client
}

// snapshotResponse wraps the session snapshot payload.
type snapshotResponse struct {
	SessionID string            `json:"session_id"`
	Record    InteractionRecord `json:"record"`
}

// Snapshot returns the current interaction record.
func (s *SessionService) Snapshot(ctx context.Context) (*InteractionRecord, error) {
	var resp snapshotResponse
	if err := s.c.get(ctx, "/api/v1/session", nil, &resp); err != nil {
		return nil, err
	}
	return &resp.Record, nil
}

// TrackView records a view of the given item.
func (s *SessionService) TrackView(ctx context.Context, itemID string) error {
	return s.c.post(ctx, "/api/v1/session/views/"+url.PathEscape(itemID), nil, nil)
}

// ToggleBookmark flips the bookmark state of the given item and returns
// the new state.
func (s *SessionService) ToggleBookmark(ctx context.Context, itemID string) (bool, error) {
	var resp struct {
		Bookmarked bool `json:"bookmarked"`
	}
	if err := s.c.post(ctx, "/api/v1/session/bookmarks/"+url.PathEscape(itemID), nil, &resp); err != nil {
		return false, err
	}
	return resp.Bookmarked, nil
}

// Reset clears the session's views and bookmarks.
func (s *SessionService) Reset(ctx context.Context) error {
	return s.c.del(ctx, "/api/v1/session", nil)
}

// Similarity returns the user-similarity pairs derived from the
// session's interaction record.
func (s *SessionService) Similarity(ctx context.Context) ([]SimilarityPair, error) {
	var resp struct {
		Pairs []SimilarityPair `json:"pairs"`
	}
	if err := s.c.get(ctx, "/api/v1/session/similarity", nil, &resp); err != nil {
		return nil, err
	}
	return resp.Pairs, nil
}
