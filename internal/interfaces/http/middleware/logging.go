// Package middleware provides the gin middleware used by the HTTP API.
package middleware

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/turtacn/GeoRisk-Intelligence/internal/infrastructure/monitoring/logging"
)

// RequestLogger logs one structured line per request.
func RequestLogger(logger logging.Logger) gin.HandlerFunc {
	log := logger.Named("http")
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		fields := []logging.Field{
			logging.String("method", c.Request.Method),
			logging.String("path", c.Request.URL.Path),
			logging.Int("status", c.Writer.Status()),
			logging.Duration("latency", time.Since(start)),
			logging.String("client_ip", c.ClientIP()),
		}
		if len(c.Errors) > 0 {
			log.Error("request failed", append(fields,
				logging.String("errors", c.Errors.String()))...)
			return
		}
		log.Info("request handled", fields...)
	}
}
