package handlers

import (
	"errors"
	"time"

	"github.com/gin-gonic/gin"

	appforecast "github.com/turtacn/GeoRisk-Intelligence/internal/application/forecast"
	"github.com/turtacn/GeoRisk-Intelligence/internal/domain/forecast"
	"github.com/turtacn/GeoRisk-Intelligence/internal/infrastructure/cache/redis"
	"github.com/turtacn/GeoRisk-Intelligence/internal/infrastructure/monitoring/logging"
)

// ForecastHandler serves the per-timeframe forecast lists and model info.
// Reads go through the cache; the manager is the source of truth and evicts
// the cached key whenever a cycle replaces a horizon's list.
type ForecastHandler struct {
	manager  *appforecast.Manager
	cache    redis.Cache
	cacheTTL time.Duration
	logger   logging.Logger
}

// NewForecastHandler constructs the handler.  cacheTTL 0 uses the cache's
// default TTL.
func NewForecastHandler(manager *appforecast.Manager, cache redis.Cache, cacheTTL time.Duration, logger logging.Logger) *ForecastHandler {
	if cache == nil {
		cache = redis.NopCache{}
	}
	return &ForecastHandler{
		manager:  manager,
		cache:    cache,
		cacheTTL: cacheTTL,
		logger:   logger.Named("http"),
	}
}

// ListAll returns the forecast lists for every horizon.
func (h *ForecastHandler) ListAll(c *gin.Context) {
	respondOK(c, h.manager.All())
}

// List returns the forecasts for one horizon, cache-aside.
func (h *ForecastHandler) List(c *gin.Context) {
	name := c.Param("timeframe")
	if _, err := forecast.ParseTimeframe(name); err != nil {
		respondError(c, err)
		return
	}

	ctx := c.Request.Context()
	key := appforecast.CacheKey(name)

	var cached []forecast.Forecast
	err := h.cache.Get(ctx, key, &cached)
	if err == nil {
		respondOK(c, cached)
		return
	}
	if !errors.Is(err, redis.ErrCacheMiss) {
		h.logger.Warn("forecast cache read failed",
			logging.String("key", key), logging.Err(err))
	}

	list := h.manager.Predictions(name)
	if err := h.cache.Set(ctx, key, list, h.cacheTTL); err != nil {
		h.logger.Warn("forecast cache write failed",
			logging.String("key", key), logging.Err(err))
	}
	respondOK(c, list)
}

// Model returns the ensemble's hyperparameters and feature importance.
func (h *ForecastHandler) Model(c *gin.Context) {
	respondOK(c, h.manager.ModelInfo())
}
