// Package metrics defines Prometheus metrics for the good-neighbor service.
package metrics

import "github.com/prometheus/client_golang/prometheus"

var (
	RequestDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "goodneighbor_http_request_duration_seconds",
			Help:    "HTTP request duration in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "path", "status"},
	)

	RequestsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "goodneighbor_http_requests_total",
			Help: "Total HTTP requests",
		},
		[]string{"method", "path", "status"},
	)

	ErrorsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "goodneighbor_errors_total",
			Help: "Total errors by type",
		},
		[]string{"type"},
	)

	WSConnections = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Name: "goodneighbor_websocket_connections",
			Help: "Active WebSocket connections",
		},
	)

	DatasetItems = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Name: "goodneighbor_dataset_items_total",
			Help: "Items in the loaded dataset",
		},
	)

	DatasetEdges = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Name: "goodneighbor_dataset_edges_total",
			Help: "Neighbor edges in the loaded dataset",
		},
	)

	GraphBuilds = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "goodneighbor_graph_builds_total",
			Help: "Graph builds performed",
		},
	)

	LayoutTicks = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "goodneighbor_layout_ticks_total",
			Help: "Force simulation ticks across all sessions",
		},
	)

	ActiveSessions = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Name: "goodneighbor_active_sessions",
			Help: "Sessions with a live interaction tracker",
		},
	)

	ActiveLayouts = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Name: "goodneighbor_active_layouts",
			Help: "Layout simulations currently running",
		},
	)
)

func init() {
	prometheus.MustRegister(
		RequestDuration, RequestsTotal, ErrorsTotal,
		WSConnections,
		DatasetItems, DatasetEdges,
		GraphBuilds, LayoutTicks,
		ActiveSessions, ActiveLayouts,
	)
}
