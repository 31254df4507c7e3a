package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	appforecast "github.com/turtacn/GeoRisk-Intelligence/internal/application/forecast"
	appwatchlist "github.com/turtacn/GeoRisk-Intelligence/internal/application/watchlist"
	"github.com/turtacn/GeoRisk-Intelligence/internal/infrastructure/cache/redis"
	"github.com/turtacn/GeoRisk-Intelligence/pkg/types/common"
)

// HealthHandler serves liveness, readiness, and pipeline status.
type HealthHandler struct {
	cache     redis.Cache
	forecasts *appforecast.Manager
	tracker   *appwatchlist.Tracker
}

// NewHealthHandler constructs the handler.  cache may be nil when Redis is
// disabled.
func NewHealthHandler(cache redis.Cache, forecasts *appforecast.Manager, tracker *appwatchlist.Tracker) *HealthHandler {
	return &HealthHandler{cache: cache, forecasts: forecasts, tracker: tracker}
}

// Liveness reports that the process is up.
func (h *HealthHandler) Liveness(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": common.HealthUp})
}

// Readiness checks the cache and both pipelines.  A stopped pipeline or an
// unreachable cache degrades readiness without failing it; only a total
// absence of pipelines fails.
func (h *HealthHandler) Readiness(c *gin.Context) {
	components := make([]common.ComponentHealth, 0, 3)
	status := common.HealthUp

	if h.cache != nil {
		start := time.Now()
		cacheStatus := common.HealthUp
		msg := ""
		if err := h.cache.Ping(c.Request.Context()); err != nil {
			cacheStatus = common.HealthDown
			status = common.HealthDegraded
			msg = err.Error()
		}
		components = append(components, common.ComponentHealth{
			Name:    "cache",
			Status:  cacheStatus,
			Latency: time.Since(start),
			Message: msg,
		})
	}

	components = append(components, pipelineHealth("forecast", h.forecasts.Status().Running))
	components = append(components, pipelineHealth("watchlist", h.tracker.Status().Running))

	c.JSON(http.StatusOK, gin.H{"status": status, "components": components})
}

// Status returns both pipelines' introspection snapshots.
func (h *HealthHandler) Status(c *gin.Context) {
	respondOK(c, gin.H{
		"forecast":  h.forecasts.Status(),
		"watchlist": h.tracker.Status(),
	})
}

func pipelineHealth(name string, running bool) common.ComponentHealth {
	status := common.HealthUp
	msg := ""
	if !running {
		status = common.HealthDegraded
		msg = "background loop not running"
	}
	return common.ComponentHealth{Name: name, Status: status, Message: msg}
}
