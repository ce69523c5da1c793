package api

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/goodneighborlab/goodneighbor/internal/middleware"
	"github.com/goodneighborlab/goodneighbor/internal/models"
	"github.com/goodneighborlab/goodneighbor/internal/similarity"
)

// SessionHandler serves per-session interaction endpoints.
type SessionHandler struct {
	interactions InteractionAccess
	log          *logrus.Logger
}

// NewSessionHandler creates a SessionHandler.
func NewSessionHandler(interactions InteractionAccess, log *logrus.Logger) *SessionHandler {
	return &SessionHandler{interactions: interactions, log: log}
}

// TrackView handles POST /api/v1/session/views/:id.
func (h *SessionHandler) TrackView(c *gin.Context) {
	itemID := c.Param("id")
	if err := validatePathID(itemID); err != nil {
		respondError(c, http.StatusBadRequest, ErrCodeInvalidRequest, err.Error())

		return
	}

	sessionID := middleware.SessionFromContext(c)

	if err := h.interactions.TrackView(c.Request.Context(), sessionID, itemID); err != nil {
		if errors.Is(err, models.ErrItemNotFound) {
			respondError(c, http.StatusNotFound, ErrCodeNotFound, "item not found")

			return
		}

		h.log.WithError(err).Error("tracking view")
		respondError(c, http.StatusInternalServerError, ErrCodeInternalError, "internal server error")

		return
	}

	c.JSON(http.StatusOK, gin.H{"session_id": sessionID, "viewed": itemID})
}

// ToggleBookmark handles POST /api/v1/session/bookmarks/:id.
func (h *SessionHandler) ToggleBookmark(c *gin.Context) {
	itemID := c.Param("id")
	if err := validatePathID(itemID); err != nil {
		respondError(c, http.StatusBadRequest, ErrCodeInvalidRequest, err.Error())

		return
	}

	sessionID := middleware.SessionFromContext(c)

	bookmarked, err := h.interactions.ToggleBookmark(c.Request.Context(), sessionID, itemID)
	if err != nil {
		if errors.Is(err, models.ErrItemNotFound) {
			respondError(c, http.StatusNotFound, ErrCodeNotFound, "item not found")

			return
		}

		h.log.WithError(err).Error("toggling bookmark")
		respondError(c, http.StatusInternalServerError, ErrCodeInternalError, "internal server error")

		return
	}

	c.JSON(http.StatusOK, gin.H{
		"session_id": sessionID,
		"item_id":    itemID,
		"bookmarked": bookmarked,
	})
}

// Snapshot handles GET /api/v1/session.
func (h *SessionHandler) Snapshot(c *gin.Context) {
	sessionID := middleware.SessionFromContext(c)
	rec := h.interactions.Snapshot(c.Request.Context(), sessionID)

	c.JSON(http.StatusOK, gin.H{"session_id": sessionID, "record": rec})
}

// Reset handles DELETE /api/v1/session.
func (h *SessionHandler) Reset(c *gin.Context) {
	sessionID := middleware.SessionFromContext(c)
	h.interactions.Reset(c.Request.Context(), sessionID)

	c.JSON(http.StatusOK, gin.H{"session_id": sessionID, "reset": true})
}

// pairScore is one entry of the derived user-similarity map.
type pairScore struct {
	Source string  `json:"source"`
	Target string  `json:"target"`
	SUser  float64 `json:"s_user"`
}

// Similarity handles GET /api/v1/session/similarity, returning the pair scores
// derived from the session's views and bookmarks.
func (h *SessionHandler) Similarity(c *gin.Context) {
	sessionID := middleware.SessionFromContext(c)
	rec := h.interactions.Snapshot(c.Request.Context(), sessionID)

	derived := similarity.DeriveUser(rec)

	pairs := make([]pairScore, 0, len(derived))
	for key, score := range derived {
		a, b := key.Split()
		pairs = append(pairs, pairScore{Source: a, Target: b, SUser: score})
	}

	c.JSON(http.StatusOK, gin.H{"session_id": sessionID, "pairs": pairs})
}
