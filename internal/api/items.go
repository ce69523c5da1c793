// Package api provides HTTP handlers for the good-neighbor service.
package api

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/goodneighborlab/goodneighbor/internal/dataset"
	"github.com/goodneighborlab/goodneighbor/internal/middleware"
	"github.com/goodneighborlab/goodneighbor/internal/models"
)

// ItemHandler serves dataset item endpoints.
type ItemHandler struct {
	data         DatasetReader
	interactions InteractionAccess
	defaults     models.Weights
	log          *logrus.Logger
}

// NewItemHandler creates an ItemHandler.
func NewItemHandler(data DatasetReader, interactions InteractionAccess, defaults models.Weights, log *logrus.Logger) *ItemHandler {
	return &ItemHandler{data: data, interactions: interactions, defaults: defaults, log: log}
}

// List handles GET /api/v1/items.
func (h *ItemHandler) List(c *gin.Context) {
	filter := dataset.ItemFilter{
		Collection: c.Query("collection"),
		Country:    c.Query("country"),
		Query:      c.Query("q"),
	}
	limit := parseInt(c.DefaultQuery("limit", "50"), 50)
	offset := parseOffset(c.DefaultQuery("offset", "0"))

	items := h.data.Items(filter)
	total := len(items)

	if offset > total {
		offset = total
	}

	end := offset + limit
	if end > total {
		end = total
	}

	c.JSON(http.StatusOK, gin.H{
		"items":    items[offset:end],
		"total":    total,
		"has_more": end < total,
	})
}

// Get handles GET /api/v1/items/:id.
func (h *ItemHandler) Get(c *gin.Context) {
	itemID := c.Param("id")
	if err := validatePathID(itemID); err != nil {
		respondError(c, http.StatusBadRequest, ErrCodeInvalidRequest, err.Error())

		return
	}

	item, err := h.data.Item(itemID)
	if err != nil {
		if errors.Is(err, models.ErrItemNotFound) {
			respondError(c, http.StatusNotFound, ErrCodeNotFound, "item not found")

			return
		}

		h.log.WithError(err).Error("getting item")
		respondError(c, http.StatusInternalServerError, ErrCodeInternalError, "internal server error")

		return
	}

	c.JSON(http.StatusOK, item)
}

// Neighbors handles GET /api/v1/items/:id/neighbors. Scores are recomposed
// under the caller's weight overrides and the session's interaction record.
func (h *ItemHandler) Neighbors(c *gin.Context) {
	itemID := c.Param("id")
	if err := validatePathID(itemID); err != nil {
		respondError(c, http.StatusBadRequest, ErrCodeInvalidRequest, err.Error())

		return
	}

	weights := models.Weights{
		Text:  parseWeight(c.Query("wtext"), h.defaults.Text),
		Date:  parseWeight(c.Query("wdate"), h.defaults.Date),
		Place: parseWeight(c.Query("wplace"), h.defaults.Place),
		User:  parseWeight(c.Query("wuser"), h.defaults.User),
	}
	limit := parseInt(c.DefaultQuery("limit", "20"), 20)

	sessionID := middleware.SessionFromContext(c)
	rec := h.interactions.Snapshot(c.Request.Context(), sessionID)

	neighbors, err := h.data.Neighbors(itemID, weights, rec)
	if err != nil {
		if errors.Is(err, models.ErrItemNotFound) {
			respondError(c, http.StatusNotFound, ErrCodeNotFound, "item not found")

			return
		}

		h.log.WithError(err).Error("scoring neighbors")
		respondError(c, http.StatusInternalServerError, ErrCodeInternalError, "internal server error")

		return
	}

	if len(neighbors) > limit {
		neighbors = neighbors[:limit]
	}

	c.JSON(http.StatusOK, gin.H{
		"id":        itemID,
		"weights":   weights,
		"neighbors": neighbors,
	})
}
