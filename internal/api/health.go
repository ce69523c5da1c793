package api

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/goodneighborlab/goodneighbor/internal/dbpool"
	"github.com/goodneighborlab/goodneighbor/internal/ws"
)

// HealthHandler serves health check endpoints.
type HealthHandler struct {
	pool      *dbpool.Pool
	hub       *ws.Hub
	data      DatasetReader
	log       *logrus.Logger
	version   string
	startTime time.Time
}

// NewHealthHandler creates a HealthHandler with the given dependencies.
// pool may be nil when the dataset is file-sourced.
func NewHealthHandler(pool *dbpool.Pool, hub *ws.Hub, data DatasetReader, log *logrus.Logger, version string) *HealthHandler {
	return &HealthHandler{
		pool:      pool,
		hub:       hub,
		data:      data,
		log:       log,
		version:   version,
		startTime: time.Now(),
	}
}

// healthResponse is the JSON payload returned by the health/liveness endpoint.
type healthResponse struct {
	Status        string  `json:"status"`
	Version       string  `json:"version"`
	Database      string  `json:"database"`
	DatasetItems  int     `json:"dataset_items"`
	DatasetEdges  int     `json:"dataset_edges"`
	UptimeSeconds float64 `json:"uptime_seconds"`
}

// readinessResponse is the JSON payload returned by the readiness endpoint.
type readinessResponse struct {
	Status string            `json:"status"`
	Checks map[string]string `json:"checks"`
}

// Liveness handles GET /api/v1/health.
func (h *HealthHandler) Liveness(c *gin.Context) {
	items, edges := h.data.Counts()

	resp := healthResponse{
		Status:        "ok",
		Version:       h.version,
		Database:      "not_configured",
		DatasetItems:  items,
		DatasetEdges:  edges,
		UptimeSeconds: time.Since(h.startTime).Seconds(),
	}

	// Best-effort database ping (non-fatal for liveness).
	if h.pool != nil {
		ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
		defer cancel()

		resp.Database = "connected"
		if err := h.pool.HealthCheck(ctx); err != nil {
			resp.Database = "disconnected"
		}
	}

	c.JSON(http.StatusOK, resp)
}

// Readiness handles GET /api/v1/ready. The service is ready once the
// dataset is loaded and, when configured, the catalog is reachable.
func (h *HealthHandler) Readiness(c *gin.Context) {
	checks := map[string]string{
		"dataset":  "ok",
		"database": "ok",
	}
	status := "ready"
	statusCode := http.StatusOK

	if items, _ := h.data.Counts(); items == 0 {
		checks["dataset"] = "empty"
		status = "not_ready"
		statusCode = http.StatusServiceUnavailable
	}

	if h.pool == nil {
		checks["database"] = "not_configured"
	} else {
		ctx, cancel := context.WithTimeout(c.Request.Context(), 3*time.Second)
		defer cancel()

		if err := h.pool.HealthCheck(ctx); err != nil {
			h.log.WithError(err).Error("readiness: database health check failed")
			checks["database"] = "error"
			status = "not_ready"
			statusCode = http.StatusServiceUnavailable
		}
	}

	c.JSON(statusCode, readinessResponse{
		Status: status,
		Checks: checks,
	})
}
