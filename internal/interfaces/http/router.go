// Package http assembles the gin route tree and the HTTP server around it.
package http

import (
	"github.com/gin-gonic/gin"

	"github.com/turtacn/GeoRisk-Intelligence/internal/infrastructure/monitoring/logging"
	"github.com/turtacn/GeoRisk-Intelligence/internal/infrastructure/monitoring/prometheus"
	"github.com/turtacn/GeoRisk-Intelligence/internal/interfaces/http/handlers"
	"github.com/turtacn/GeoRisk-Intelligence/internal/interfaces/http/middleware"
)

// RouterConfig aggregates the handler and middleware dependencies for the
// complete route tree.
type RouterConfig struct {
	ForecastHandler  *handlers.ForecastHandler
	WatchlistHandler *handlers.WatchlistHandler
	HealthHandler    *handlers.HealthHandler

	Logger           logging.Logger
	Metrics          *prometheus.AppMetrics
	MetricsCollector prometheus.MetricsCollector
	MetricsPath      string

	// Mode is the gin mode: "debug", "release", or "test".
	Mode string
}

// NewRouter constructs the complete route tree.
func NewRouter(cfg RouterConfig) *gin.Engine {
	switch cfg.Mode {
	case "debug":
		gin.SetMode(gin.DebugMode)
	case "test":
		gin.SetMode(gin.TestMode)
	default:
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	r.Use(gin.Recovery())
	if cfg.Logger != nil {
		r.Use(middleware.RequestLogger(cfg.Logger))
	}
	if cfg.Metrics != nil {
		r.Use(middleware.Metrics(cfg.Metrics))
	}

	if cfg.HealthHandler != nil {
		r.GET("/healthz", cfg.HealthHandler.Liveness)
		r.GET("/readyz", cfg.HealthHandler.Readiness)
	}

	if cfg.MetricsCollector != nil {
		path := cfg.MetricsPath
		if path == "" {
			path = "/metrics"
		}
		r.GET(path, gin.WrapH(cfg.MetricsCollector.Handler()))
	}

	api := r.Group("/api/v1")

	if cfg.HealthHandler != nil {
		api.GET("/status", cfg.HealthHandler.Status)
	}

	if h := cfg.ForecastHandler; h != nil {
		api.GET("/forecasts", h.ListAll)
		api.GET("/forecasts/:timeframe", h.List)
		api.GET("/model", h.Model)
	}

	if h := cfg.WatchlistHandler; h != nil {
		wl := api.Group("/watchlist")
		wl.GET("", h.GetAll)

		wl.GET("/supported", h.GetSupported)
		wl.POST("/supported", h.AddSupported)
		wl.DELETE("/supported/:name", h.RemoveSupported)

		wl.GET("/opposed", h.GetOpposed)
		wl.POST("/opposed", h.AddOpposed)
		wl.DELETE("/opposed/:name", h.RemoveOpposed)

		wl.GET("/organizations", h.GetOrganizations)
		wl.POST("/organizations", h.AddOrganization)
		wl.DELETE("/organizations/:name", h.RemoveOrganization)

		wl.GET("/individuals", h.GetIndividuals)
		wl.POST("/individuals", h.AddIndividual)
		wl.DELETE("/individuals/:name", h.RemoveIndividual)
	}

	return r
}
