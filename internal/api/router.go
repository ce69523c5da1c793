package api

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/sirupsen/logrus"

	"github.com/goodneighborlab/goodneighbor/internal/config"
	"github.com/goodneighborlab/goodneighbor/internal/dbpool"
	"github.com/goodneighborlab/goodneighbor/internal/middleware"
	"github.com/goodneighborlab/goodneighbor/internal/ws"
)

// RouterDeps holds all dependencies needed by the router.
type RouterDeps struct {
	Log          *logrus.Logger
	Cfg          *config.Config
	Pool         *dbpool.Pool // nil when the dataset is file-sourced
	Hub          *ws.Hub
	Data         DatasetReader
	Loader       DatasetLoader
	Interactions InteractionAccess
	Graph        GraphBuilder
	Layout       LayoutController
	Pointer      ws.PointerHandler
	Sessions     SessionCounter
	Version      string
}

// maxBodySize bounds request bodies; the largest payload is a build request.
const maxBodySize = 1 << 20 // 1 MB

// setupMiddleware configures all middleware on the Gin engine.
func setupMiddleware(r *gin.Engine, deps *RouterDeps) {
	r.SetTrustedProxies(nil) //nolint:errcheck // nil always succeeds.
	r.Use(middleware.RequestID(deps.Log))
	r.Use(ginLogger(deps.Log))
	r.Use(gin.Recovery())
	r.Use(middleware.SecurityHeaders())
	r.Use(middleware.MaxBodySize(maxBodySize))
	r.Use(cors.New(cors.Config{
		AllowOrigins:     deps.Cfg.CORSOrigins,
		AllowMethods:     []string{"GET", "POST", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Content-Type", middleware.SessionIDHeader},
		ExposeHeaders:    []string{middleware.SessionIDHeader},
		MaxAge:           1 * time.Hour,
		AllowCredentials: false,
	}))
	r.Use(middleware.PrometheusMiddleware())

	// Metrics endpoint (unauthenticated, like health).
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))
}

// registerRoutes sets up all API route handlers on the given router group.
func registerRoutes(ctx context.Context, api *gin.RouterGroup, deps *RouterDeps) {
	log := deps.Log

	health := NewHealthHandler(deps.Pool, deps.Hub, deps.Data, log, deps.Version)
	items := NewItemHandler(deps.Data, deps.Interactions, deps.Cfg.Weights, log)
	sessions := NewSessionHandler(deps.Interactions, log)
	graphs := NewGraphHandler(deps.Graph, log)
	layout := NewLayoutHandler(deps.Layout, deps.Graph, log)
	datasets := NewDatasetHandler(deps.Loader, deps.Data, deps.Cfg, log)
	stats := NewStatsHandler(deps.Data, deps.Sessions, deps.Graph, deps.Hub, log)

	api.GET("/health", health.Liveness)
	api.GET("/ready", health.Readiness)

	// Everything below is session-scoped.
	api.Use(middleware.SessionID())

	// Items.
	api.GET("/items", items.List)
	api.GET("/items/:id", items.Get)
	api.GET("/items/:id/neighbors", items.Neighbors)

	// Dataset administration.
	api.POST("/dataset/load", datasets.Load)

	// Session interaction record.
	api.GET("/session", sessions.Snapshot)
	api.DELETE("/session", sessions.Reset)
	api.POST("/session/views/:id", sessions.TrackView)
	api.POST("/session/bookmarks/:id", sessions.ToggleBookmark)
	api.GET("/session/similarity", sessions.Similarity)

	// Working graph.
	api.POST("/graph/build", graphs.Build)

	// Layout control.
	api.POST("/graph/layout/start", layout.Start)
	api.POST("/graph/layout/reheat", layout.Reheat)
	api.POST("/graph/layout/stop", layout.Stop)
	api.POST("/graph/layout/resize", layout.Resize)
	api.GET("/graph/layout/positions", layout.Positions)
	api.POST("/graph/layout/zoom", layout.Zoom)
	api.POST("/graph/layout/zoom/reset", layout.ResetZoom)
	api.POST("/graph/layout/pan", layout.Pan)

	// Stats.
	api.GET("/stats", stats.GetStats)

	// WebSocket endpoint.
	api.GET("/ws", wsHandler(ctx, log, deps.Hub, deps.Cfg.CORSOrigins, deps.Pointer))
}

// NewRouter creates and configures the Gin engine with all middleware and routes.
func NewRouter(ctx context.Context, deps *RouterDeps) http.Handler {
	r := gin.New()
	setupMiddleware(r, deps)
	registerRoutes(ctx, r.Group("/api/v1"), deps)

	return r
}
