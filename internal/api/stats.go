package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/goodneighborlab/goodneighbor/internal/ws"
)

// SessionCounter reports how many sessions hold a live tracker.
type SessionCounter interface {
	Count() int
}

// StatsHandler serves the aggregate stats endpoint.
type StatsHandler struct {
	data     DatasetReader
	sessions SessionCounter
	builder  GraphBuilder
	hub      *ws.Hub
	log      *logrus.Logger
}

// NewStatsHandler creates a StatsHandler.
func NewStatsHandler(data DatasetReader, sessions SessionCounter, builder GraphBuilder, hub *ws.Hub, log *logrus.Logger) *StatsHandler {
	return &StatsHandler{data: data, sessions: sessions, builder: builder, hub: hub, log: log}
}

// GetStats handles GET /api/v1/stats.
func (h *StatsHandler) GetStats(c *gin.Context) {
	items, edges := h.data.Counts()
	clusters := h.builder.ClusterCounts()

	totalClusters := 0
	for _, n := range clusters {
		totalClusters += n
	}

	c.JSON(http.StatusOK, gin.H{
		"dataset": gin.H{
			"items": items,
			"edges": edges,
		},
		"sessions": gin.H{
			"active":     h.sessions.Count(),
			"websockets": h.hub.ClientCount(),
		},
		"graphs": gin.H{
			"built":    len(clusters),
			"clusters": totalClusters,
		},
	})
}
