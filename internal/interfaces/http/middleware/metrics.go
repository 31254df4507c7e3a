package middleware

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/turtacn/GeoRisk-Intelligence/internal/infrastructure/monitoring/prometheus"
)

// Metrics records request counts and latency.  The route template
// (c.FullPath) is used as the path label to keep cardinality bounded;
// unmatched routes are labelled "unmatched".
func Metrics(m *prometheus.AppMetrics) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		path := c.FullPath()
		if path == "" {
			path = "unmatched"
		}
		method := c.Request.Method
		m.HTTPRequests.WithLabelValues(method, path, strconv.Itoa(c.Writer.Status())).Inc()
		m.HTTPRequestLatency.WithLabelValues(method, path).Observe(time.Since(start).Seconds())
	}
}
