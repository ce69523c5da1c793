package service

import (
	"context"

	"github.com/sirupsen/logrus"

	"github.com/goodneighborlab/goodneighbor/internal/metrics"
	"github.com/goodneighborlab/goodneighbor/internal/models"
	"github.com/goodneighborlab/goodneighbor/internal/session"
)

// InteractionService records per-session views and bookmarks. Tracking is
// advisory: a failed persist never surfaces to the caller.
type InteractionService struct {
	sessions *session.Manager
	data     *DatasetService
	log      *logrus.Logger
}

// NewInteractionService creates an InteractionService.
func NewInteractionService(sessions *session.Manager, data *DatasetService, log *logrus.Logger) *InteractionService {
	return &InteractionService{sessions: sessions, data: data, log: log}
}

// TrackView records a view of the given item for the session.
func (s *InteractionService) TrackView(ctx context.Context, sessionID, itemID string) error {
	if _, err := s.data.Item(itemID); err != nil {
		return err
	}

	s.sessions.Get(ctx, sessionID).TrackView(ctx, itemID)
	metrics.ActiveSessions.Set(float64(s.sessions.Count()))

	s.log.WithFields(logrus.Fields{
		"session_id": sessionID,
		"item_id":    itemID,
	}).Debug("interaction.view")

	return nil
}

// ToggleBookmark flips the bookmark state of the given item for the session
// and returns the new state.
func (s *InteractionService) ToggleBookmark(ctx context.Context, sessionID, itemID string) (bool, error) {
	if _, err := s.data.Item(itemID); err != nil {
		return false, err
	}

	bookmarked := s.sessions.Get(ctx, sessionID).ToggleBookmark(ctx, itemID)
	metrics.ActiveSessions.Set(float64(s.sessions.Count()))

	s.log.WithFields(logrus.Fields{
		"session_id": sessionID,
		"item_id":    itemID,
		"bookmarked": bookmarked,
	}).Debug("interaction.bookmark")

	return bookmarked, nil
}

// Snapshot returns a copy of the session's interaction record.
func (s *InteractionService) Snapshot(ctx context.Context, sessionID string) *models.InteractionRecord {
	return s.sessions.Get(ctx, sessionID).Snapshot()
}

// Reset clears the session's interaction record.
func (s *InteractionService) Reset(ctx context.Context, sessionID string) {
	s.sessions.Get(ctx, sessionID).Reset(ctx)

	s.log.WithField("session_id", sessionID).Info("interaction.reset")
}
