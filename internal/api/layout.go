package api

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/goodneighborlab/goodneighbor/internal/middleware"
	"github.com/goodneighborlab/goodneighbor/internal/models"
)

// LayoutHandler serves the per-session layout control endpoints. The frame
// stream itself goes over the WebSocket; these endpoints start, stop, and
// steer the simulation.
type LayoutHandler struct {
	layout  LayoutController
	builder GraphBuilder
	log     *logrus.Logger
}

// NewLayoutHandler creates a LayoutHandler.
func NewLayoutHandler(layout LayoutController, builder GraphBuilder, log *logrus.Logger) *LayoutHandler {
	return &LayoutHandler{layout: layout, builder: builder, log: log}
}

// Start handles POST /api/v1/graph/layout/start. It runs the layout for the
// session's most recent build.
func (h *LayoutHandler) Start(c *gin.Context) {
	req := models.ResizeRequest{Width: 960, Height: 680}

	if c.Request.ContentLength > 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			respondError(c, http.StatusBadRequest, ErrCodeInvalidRequest, "invalid request body")

			return
		}
	}

	if err := req.Validate(); err != nil {
		respondError(c, http.StatusBadRequest, ErrCodeValidationError, err.Error())

		return
	}

	sessionID := middleware.SessionFromContext(c)

	out, err := h.builder.Last(sessionID)
	if err != nil {
		respondError(c, http.StatusConflict, ErrCodeConflict, "no graph built for this session")

		return
	}

	h.layout.Start(sessionID, out.Result, req.Width, req.Height)

	c.JSON(http.StatusOK, gin.H{
		"session_id": sessionID,
		"nodes":      len(out.Result.Nodes),
		"running":    true,
	})
}

// Reheat handles POST /api/v1/graph/layout/reheat.
func (h *LayoutHandler) Reheat(c *gin.Context) {
	sessionID := middleware.SessionFromContext(c)

	if err := h.layout.Reheat(sessionID); err != nil {
		h.respondLayoutError(c, err)

		return
	}

	c.JSON(http.StatusOK, gin.H{"session_id": sessionID, "running": true})
}

// Stop handles POST /api/v1/graph/layout/stop.
func (h *LayoutHandler) Stop(c *gin.Context) {
	sessionID := middleware.SessionFromContext(c)
	h.layout.Stop(sessionID)

	c.JSON(http.StatusOK, gin.H{"session_id": sessionID, "running": false})
}

// Resize handles POST /api/v1/graph/layout/resize.
func (h *LayoutHandler) Resize(c *gin.Context) {
	var req models.ResizeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, ErrCodeInvalidRequest, "invalid request body")

		return
	}

	if err := req.Validate(); err != nil {
		respondError(c, http.StatusBadRequest, ErrCodeValidationError, err.Error())

		return
	}

	sessionID := middleware.SessionFromContext(c)

	if err := h.layout.Resize(sessionID, req); err != nil {
		h.respondLayoutError(c, err)

		return
	}

	c.JSON(http.StatusOK, gin.H{"session_id": sessionID, "running": true})
}

// Positions handles GET /api/v1/graph/layout/positions, returning the current frame
// for clients that missed the stream.
func (h *LayoutHandler) Positions(c *gin.Context) {
	sessionID := middleware.SessionFromContext(c)

	frames, err := h.layout.Positions(sessionID)
	if err != nil {
		h.respondLayoutError(c, err)

		return
	}

	c.JSON(http.StatusOK, gin.H{"session_id": sessionID, "frames": frames})
}

// zoomRequest is the payload for the zoom endpoint. Factor multiplies the
// current scale about the (px, py) screen point.
type zoomRequest struct {
	Factor float64 `json:"factor"`
	PX     float64 `json:"px"`
	PY     float64 `json:"py"`
}

// Zoom handles POST /api/v1/graph/layout/zoom.
func (h *LayoutHandler) Zoom(c *gin.Context) {
	var req zoomRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.Factor <= 0 {
		respondError(c, http.StatusBadRequest, ErrCodeInvalidRequest, "factor must be a positive number")

		return
	}

	sessionID := middleware.SessionFromContext(c)

	state, err := h.layout.Zoom(sessionID, req.Factor, req.PX, req.PY)
	if err != nil {
		h.respondLayoutError(c, err)

		return
	}

	c.JSON(http.StatusOK, state)
}

// panRequest is the payload for the pan endpoint.
type panRequest struct {
	DX float64 `json:"dx"`
	DY float64 `json:"dy"`
}

// Pan handles POST /api/v1/graph/layout/pan.
func (h *LayoutHandler) Pan(c *gin.Context) {
	var req panRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, ErrCodeInvalidRequest, "invalid request body")

		return
	}

	sessionID := middleware.SessionFromContext(c)

	state, err := h.layout.Pan(sessionID, req.DX, req.DY)
	if err != nil {
		h.respondLayoutError(c, err)

		return
	}

	c.JSON(http.StatusOK, state)
}

// ResetZoom handles POST /api/v1/graph/layout/zoom/reset.
func (h *LayoutHandler) ResetZoom(c *gin.Context) {
	sessionID := middleware.SessionFromContext(c)

	state, err := h.layout.ResetView(sessionID)
	if err != nil {
		h.respondLayoutError(c, err)

		return
	}

	c.JSON(http.StatusOK, state)
}

func (h *LayoutHandler) respondLayoutError(c *gin.Context, err error) {
	if errors.Is(err, models.ErrNoLayout) {
		respondError(c, http.StatusConflict, ErrCodeConflict, "no active layout for this session")

		return
	}

	h.log.WithError(err).Error("layout operation")
	respondError(c, http.StatusInternalServerError, ErrCodeInternalError, "internal server error")
}
