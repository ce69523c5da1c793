package middleware

import (
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/goodneighborlab/goodneighbor/internal/metrics"
)

// PrometheusMiddleware records HTTP request duration and count. The
// websocket upgrade is excluded: its connection lifetime would dominate
// the duration histogram, and the hub tracks it with its own gauge.
func PrometheusMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		if strings.HasSuffix(c.Request.URL.Path, "/ws") {
			c.Next()
			return
		}

		start := time.Now()
		c.Next()
		duration := time.Since(start).Seconds()
		status := strconv.Itoa(c.Writer.Status())
		path := c.FullPath() // route pattern, not actual path (avoids cardinality explosion)
		if path == "" {
			path = "unknown"
		}
		metrics.RequestDuration.WithLabelValues(c.Request.Method, path, status).Observe(duration)
		metrics.RequestsTotal.WithLabelValues(c.Request.Method, path, status).Inc()
	}
}
