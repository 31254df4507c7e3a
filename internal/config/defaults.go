// Package config provides configuration loading, defaults, and validation for
// the GeoRisk-Intelligence platform.
package config

import "time"

// ─────────────────────────────────────────────────────────────────────────────
// Default value constants
// ─────────────────────────────────────────────────────────────────────────────

const (
	DefaultServerPort = 8080
	DefaultServerMode = "release"

	DefaultDataBaseDir = "data"

	DefaultNumTrees     = 100
	DefaultMaxDepth     = 10
	DefaultLearningRate = 0.1

	DefaultShortWindowDays  = 7
	DefaultMediumWindowDays = 30
	DefaultLongWindowDays   = 365

	DefaultShortThreshold  = 0.7
	DefaultMediumThreshold = 0.6
	DefaultLongThreshold   = 0.5

	DefaultForecastInterval = 300 * time.Second
	DefaultContentWindow    = 24 * time.Hour
	DefaultMaxDocuments     = 100

	DefaultWatchlistInterval      = time.Hour
	DefaultWatchlistErrorBackoff  = 300 * time.Second
	DefaultWatchlistContentWindow = 7 * 24 * time.Hour
	DefaultDiscoveryConfidence    = 0.8
	DefaultDiscoveryMentions      = 3

	DefaultRedisAddr = "localhost:6379"

	DefaultKafkaBroker = "localhost:9092"

	DefaultMetricsNamespace = "georisk"
	DefaultMetricsPath      = "/metrics"

	DefaultLogLevel  = "info"
	DefaultLogFormat = "json"
)

// ApplyDefaults fills every zero-value field in cfg with the platform default.
// Fields that have already been set by the caller (non-zero values) are left
// unchanged so that explicit configuration always wins.  It must be called
// after unmarshalling raw config data and before Validate().
func ApplyDefaults(cfg *Config) {
	if cfg == nil {
		return
	}

	// ── Server ────────────────────────────────────────────────────────────────
	if cfg.Server.Port == 0 {
		cfg.Server.Port = DefaultServerPort
	}
	if cfg.Server.Mode == "" {
		cfg.Server.Mode = DefaultServerMode
	}
	if cfg.Server.ReadTimeout == 0 {
		cfg.Server.ReadTimeout = 15 * time.Second
	}
	if cfg.Server.WriteTimeout == 0 {
		cfg.Server.WriteTimeout = 15 * time.Second
	}
	if cfg.Server.ShutdownTimeout == 0 {
		cfg.Server.ShutdownTimeout = 30 * time.Second
	}

	// ── Data ──────────────────────────────────────────────────────────────────
	if cfg.Data.BaseDir == "" {
		cfg.Data.BaseDir = DefaultDataBaseDir
	}
	if cfg.Data.ContentDir == "" {
		cfg.Data.ContentDir = cfg.Data.BaseDir + "/processed_content"
	}
	if cfg.Data.PredictionsDir == "" {
		cfg.Data.PredictionsDir = cfg.Data.BaseDir + "/predictions"
	}
	if cfg.Data.WatchlistDir == "" {
		cfg.Data.WatchlistDir = cfg.Data.BaseDir + "/watchlists"
	}
	if cfg.Data.ModelsDir == "" {
		cfg.Data.ModelsDir = cfg.Data.BaseDir + "/models"
	}

	// ── Forecast ──────────────────────────────────────────────────────────────
	if cfg.Forecast.Ensemble.NumTrees == 0 {
		cfg.Forecast.Ensemble.NumTrees = DefaultNumTrees
	}
	if cfg.Forecast.Ensemble.MaxDepth == 0 {
		cfg.Forecast.Ensemble.MaxDepth = DefaultMaxDepth
	}
	if cfg.Forecast.Ensemble.LearningRate == 0 {
		cfg.Forecast.Ensemble.LearningRate = DefaultLearningRate
	}
	if cfg.Forecast.Short.WindowDays == 0 {
		cfg.Forecast.Short.WindowDays = DefaultShortWindowDays
	}
	if cfg.Forecast.Short.ConfidenceThreshold == 0 {
		cfg.Forecast.Short.ConfidenceThreshold = DefaultShortThreshold
	}
	if cfg.Forecast.Medium.WindowDays == 0 {
		cfg.Forecast.Medium.WindowDays = DefaultMediumWindowDays
	}
	if cfg.Forecast.Medium.ConfidenceThreshold == 0 {
		cfg.Forecast.Medium.ConfidenceThreshold = DefaultMediumThreshold
	}
	if cfg.Forecast.Long.WindowDays == 0 {
		cfg.Forecast.Long.WindowDays = DefaultLongWindowDays
	}
	if cfg.Forecast.Long.ConfidenceThreshold == 0 {
		cfg.Forecast.Long.ConfidenceThreshold = DefaultLongThreshold
	}
	if cfg.Forecast.Interval == 0 {
		cfg.Forecast.Interval = DefaultForecastInterval
	}
	if cfg.Forecast.ContentWindow == 0 {
		cfg.Forecast.ContentWindow = DefaultContentWindow
	}
	if cfg.Forecast.MaxDocuments == 0 {
		cfg.Forecast.MaxDocuments = DefaultMaxDocuments
	}

	// ── Watchlist ─────────────────────────────────────────────────────────────
	if cfg.Watchlist.Interval == 0 {
		cfg.Watchlist.Interval = DefaultWatchlistInterval
	}
	if cfg.Watchlist.ErrorBackoff == 0 {
		cfg.Watchlist.ErrorBackoff = DefaultWatchlistErrorBackoff
	}
	if cfg.Watchlist.ContentWindow == 0 {
		cfg.Watchlist.ContentWindow = DefaultWatchlistContentWindow
	}
	if cfg.Watchlist.MaxDocuments == 0 {
		cfg.Watchlist.MaxDocuments = DefaultMaxDocuments
	}
	if cfg.Watchlist.DiscoveryConfidence == 0 {
		cfg.Watchlist.DiscoveryConfidence = DefaultDiscoveryConfidence
	}
	if cfg.Watchlist.DiscoveryMentions == 0 {
		cfg.Watchlist.DiscoveryMentions = DefaultDiscoveryMentions
	}

	// ── Redis ─────────────────────────────────────────────────────────────────
	if cfg.Redis.Addr == "" {
		cfg.Redis.Addr = DefaultRedisAddr
	}
	if cfg.Redis.PoolSize == 0 {
		cfg.Redis.PoolSize = 10
	}
	if cfg.Redis.DialTimeout == 0 {
		cfg.Redis.DialTimeout = 5 * time.Second
	}
	if cfg.Redis.ReadTimeout == 0 {
		cfg.Redis.ReadTimeout = 3 * time.Second
	}
	if cfg.Redis.WriteTimeout == 0 {
		cfg.Redis.WriteTimeout = 3 * time.Second
	}
	if cfg.Redis.DefaultTTL == 0 {
		cfg.Redis.DefaultTTL = 10 * time.Minute
	}
	if cfg.Redis.KeyPrefix == "" {
		cfg.Redis.KeyPrefix = "georisk"
	}

	// ── Kafka ─────────────────────────────────────────────────────────────────
	if len(cfg.Kafka.Brokers) == 0 {
		cfg.Kafka.Brokers = []string{DefaultKafkaBroker}
	}
	if cfg.Kafka.BatchSize == 0 {
		cfg.Kafka.BatchSize = 100
	}
	if cfg.Kafka.BatchTimeout == 0 {
		cfg.Kafka.BatchTimeout = time.Second
	}
	if cfg.Kafka.WriteTimeout == 0 {
		cfg.Kafka.WriteTimeout = 10 * time.Second
	}
	if cfg.Kafka.TopicPrefix == "" {
		cfg.Kafka.TopicPrefix = "georisk"
	}

	// ── Metrics ───────────────────────────────────────────────────────────────
	if cfg.Metrics.Namespace == "" {
		cfg.Metrics.Namespace = DefaultMetricsNamespace
	}
	if cfg.Metrics.Path == "" {
		cfg.Metrics.Path = DefaultMetricsPath
	}

	// ── Log ───────────────────────────────────────────────────────────────────
	if cfg.Log.Level == "" {
		cfg.Log.Level = DefaultLogLevel
	}
	if cfg.Log.Format == "" {
		cfg.Log.Format = DefaultLogFormat
	}
	if len(cfg.Log.OutputPaths) == 0 {
		cfg.Log.OutputPaths = []string{"stdout"}
	}
	if len(cfg.Log.ErrorOutputPaths) == 0 {
		cfg.Log.ErrorOutputPaths = []string{"stderr"}
	}
}
