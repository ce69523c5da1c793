package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/goodneighborlab/goodneighbor/internal/middleware"
	"github.com/goodneighborlab/goodneighbor/internal/models"
)

// GraphHandler serves the working-graph build endpoint.
type GraphHandler struct {
	builder GraphBuilder
	log     *logrus.Logger
}

// NewGraphHandler creates a GraphHandler.
func NewGraphHandler(builder GraphBuilder, log *logrus.Logger) *GraphHandler {
	return &GraphHandler{builder: builder, log: log}
}

// Build handles POST /api/v1/graph/build. An empty body builds with the
// configured defaults.
func (h *GraphHandler) Build(c *gin.Context) {
	var req models.BuildGraphRequest

	if c.Request.ContentLength > 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			respondError(c, http.StatusBadRequest, ErrCodeInvalidRequest, "invalid request body")

			return
		}
	}

	sessionID := middleware.SessionFromContext(c)

	out, err := h.builder.Build(c.Request.Context(), sessionID, req)
	if err != nil {
		respondError(c, http.StatusBadRequest, ErrCodeValidationError, err.Error())

		return
	}

	c.JSON(http.StatusOK, gin.H{
		"session_id": sessionID,
		"nodes":      out.Result.Nodes,
		"edges":      out.Result.Edges,
		"clusters":   out.Clusters,
		"weights":    out.Weights,
	})
}
