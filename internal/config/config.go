// Package config defines all configuration structures for the
// GeoRisk-Intelligence platform.  No I/O or parsing logic lives here — only
// plain data types and validation.
package config

import (
	"fmt"
	"time"
)

// ─────────────────────────────────────────────────────────────────────────────
// Sub-configuration structs
// ─────────────────────────────────────────────────────────────────────────────

// ServerConfig holds HTTP server tunables.
type ServerConfig struct {
	Port            int           `mapstructure:"port"`
	Mode            string        `mapstructure:"mode"` // "debug" | "release" | "test"
	ReadTimeout     time.Duration `mapstructure:"read_timeout"`
	WriteTimeout    time.Duration `mapstructure:"write_timeout"`
	ShutdownTimeout time.Duration `mapstructure:"shutdown_timeout"`
}

// DataConfig holds the on-disk layout of the platform's data directory.
// Content arrives under ContentDir bucketed by source type and source name;
// forecasts and watchlists are persisted under PredictionsDir and WatchlistDir.
type DataConfig struct {
	BaseDir        string `mapstructure:"base_dir"`
	ContentDir     string `mapstructure:"content_dir"`
	PredictionsDir string `mapstructure:"predictions_dir"`
	WatchlistDir   string `mapstructure:"watchlist_dir"`
	ModelsDir      string `mapstructure:"models_dir"`
}

// EnsembleConfig holds the randomized-tree-ensemble hyperparameters.
type EnsembleConfig struct {
	NumTrees     int     `mapstructure:"num_trees"`
	MaxDepth     int     `mapstructure:"max_depth"`
	LearningRate float64 `mapstructure:"learning_rate"`
	// Seed fixes the randomness source for reproducible runs.  0 means
	// non-deterministic seeding from the current time.
	Seed int64 `mapstructure:"seed"`
}

// TimeframeConfig holds the window and threshold of a single forecast horizon.
type TimeframeConfig struct {
	WindowDays          int     `mapstructure:"window_days"`
	ConfidenceThreshold float64 `mapstructure:"confidence_threshold"`
}

// ForecastConfig holds the forecasting-cycle parameters for all three horizons.
type ForecastConfig struct {
	Ensemble      EnsembleConfig  `mapstructure:"ensemble"`
	Short         TimeframeConfig `mapstructure:"short"`
	Medium        TimeframeConfig `mapstructure:"medium"`
	Long          TimeframeConfig `mapstructure:"long"`
	Interval      time.Duration   `mapstructure:"interval"`
	ContentWindow time.Duration   `mapstructure:"content_window"`
	MaxDocuments  int             `mapstructure:"max_documents"`
}

// WatchlistConfig holds the entity-tracking-cycle parameters.
type WatchlistConfig struct {
	Interval            time.Duration `mapstructure:"interval"`
	ErrorBackoff        time.Duration `mapstructure:"error_backoff"`
	ContentWindow       time.Duration `mapstructure:"content_window"`
	MaxDocuments        int           `mapstructure:"max_documents"`
	DiscoveryConfidence float64       `mapstructure:"discovery_confidence"`
	DiscoveryMentions   int           `mapstructure:"discovery_mentions"`
	SupportedGroups     []string      `mapstructure:"supported_groups"`
	OpposedGroups       []string      `mapstructure:"opposed_groups"`
}

// RedisConfig holds Redis connection parameters for the forecast cache.
type RedisConfig struct {
	Enabled      bool          `mapstructure:"enabled"`
	Addr         string        `mapstructure:"addr"`
	Password     string        `mapstructure:"password"`
	DB           int           `mapstructure:"db"`
	PoolSize     int           `mapstructure:"pool_size"`
	DialTimeout  time.Duration `mapstructure:"dial_timeout"`
	ReadTimeout  time.Duration `mapstructure:"read_timeout"`
	WriteTimeout time.Duration `mapstructure:"write_timeout"`
	DefaultTTL   time.Duration `mapstructure:"default_ttl"`
	KeyPrefix    string        `mapstructure:"key_prefix"`
}

// KafkaConfig holds Apache Kafka producer parameters for event publishing.
type KafkaConfig struct {
	Enabled      bool          `mapstructure:"enabled"`
	Brokers      []string      `mapstructure:"brokers"`
	BatchSize    int           `mapstructure:"batch_size"`
	BatchTimeout time.Duration `mapstructure:"batch_timeout"`
	WriteTimeout time.Duration `mapstructure:"write_timeout"`
	RequiredAcks int           `mapstructure:"required_acks"`
	TopicPrefix  string        `mapstructure:"topic_prefix"`
}

// MetricsConfig holds Prometheus exposition parameters.
type MetricsConfig struct {
	Enabled   bool   `mapstructure:"enabled"`
	Namespace string `mapstructure:"namespace"`
	Path      string `mapstructure:"path"`
}

// LogConfig holds structured-logging parameters.
type LogConfig struct {
	Level            string   `mapstructure:"level"`  // "debug" | "info" | "warn" | "error"
	Format           string   `mapstructure:"format"` // "json" | "console"
	OutputPaths      []string `mapstructure:"output_paths"`
	ErrorOutputPaths []string `mapstructure:"error_output_paths"`
}

// ─────────────────────────────────────────────────────────────────────────────
// Root Config
// ─────────────────────────────────────────────────────────────────────────────

// Config is the root configuration structure for the entire platform.
// Every infrastructure component and application service reads its settings
// from the relevant sub-struct.
type Config struct {
	Server    ServerConfig    `mapstructure:"server"`
	Data      DataConfig      `mapstructure:"data"`
	Forecast  ForecastConfig  `mapstructure:"forecast"`
	Watchlist WatchlistConfig `mapstructure:"watchlist"`
	Redis     RedisConfig     `mapstructure:"redis"`
	Kafka     KafkaConfig     `mapstructure:"kafka"`
	Metrics   MetricsConfig   `mapstructure:"metrics"`
	Log       LogConfig       `mapstructure:"log"`
}

// ─────────────────────────────────────────────────────────────────────────────
// Validation
// ─────────────────────────────────────────────────────────────────────────────

// validateTimeframe checks one forecast horizon's window and threshold.
func validateTimeframe(name string, tf TimeframeConfig) error {
	if tf.WindowDays < 1 {
		return fmt.Errorf("config: forecast.%s.window_days must be ≥ 1, got %d", name, tf.WindowDays)
	}
	if tf.ConfidenceThreshold < 0 || tf.ConfidenceThreshold > 1 {
		return fmt.Errorf("config: forecast.%s.confidence_threshold %g is out of range [0, 1]",
			name, tf.ConfidenceThreshold)
	}
	return nil
}

// Validate performs semantic validation of the fully-populated Config.
// It returns the first error encountered; callers should treat any error as
// fatal and refuse to start the application.
func (c *Config) Validate() error {
	// Server
	if c.Server.Port < 1 || c.Server.Port > 65535 {
		return fmt.Errorf("config: server.port %d is out of range [1, 65535]", c.Server.Port)
	}
	switch c.Server.Mode {
	case "debug", "release", "test":
	default:
		return fmt.Errorf("config: server.mode %q is invalid; expected debug|release|test", c.Server.Mode)
	}

	// Data
	if c.Data.BaseDir == "" {
		return fmt.Errorf("config: data.base_dir is required")
	}

	// Forecast ensemble
	if c.Forecast.Ensemble.NumTrees < 1 {
		return fmt.Errorf("config: forecast.ensemble.num_trees must be ≥ 1, got %d", c.Forecast.Ensemble.NumTrees)
	}
	if c.Forecast.Ensemble.MaxDepth < 1 {
		return fmt.Errorf("config: forecast.ensemble.max_depth must be ≥ 1, got %d", c.Forecast.Ensemble.MaxDepth)
	}
	if c.Forecast.Ensemble.LearningRate <= 0 || c.Forecast.Ensemble.LearningRate > 1 {
		return fmt.Errorf("config: forecast.ensemble.learning_rate %g is out of range (0, 1]",
			c.Forecast.Ensemble.LearningRate)
	}

	// Forecast timeframes
	if err := validateTimeframe("short", c.Forecast.Short); err != nil {
		return err
	}
	if err := validateTimeframe("medium", c.Forecast.Medium); err != nil {
		return err
	}
	if err := validateTimeframe("long", c.Forecast.Long); err != nil {
		return err
	}
	if c.Forecast.Interval <= 0 {
		return fmt.Errorf("config: forecast.interval must be positive, got %s", c.Forecast.Interval)
	}
	if c.Forecast.MaxDocuments < 1 {
		return fmt.Errorf("config: forecast.max_documents must be ≥ 1, got %d", c.Forecast.MaxDocuments)
	}

	// Watchlist
	if c.Watchlist.Interval <= 0 {
		return fmt.Errorf("config: watchlist.interval must be positive, got %s", c.Watchlist.Interval)
	}
	if c.Watchlist.DiscoveryConfidence < 0 || c.Watchlist.DiscoveryConfidence > 1 {
		return fmt.Errorf("config: watchlist.discovery_confidence %g is out of range [0, 1]",
			c.Watchlist.DiscoveryConfidence)
	}
	if c.Watchlist.DiscoveryMentions < 0 {
		return fmt.Errorf("config: watchlist.discovery_mentions must be ≥ 0, got %d",
			c.Watchlist.DiscoveryMentions)
	}

	// Redis
	if c.Redis.Enabled {
		if c.Redis.Addr == "" {
			return fmt.Errorf("config: redis.addr is required when redis is enabled")
		}
		if c.Redis.DB < 0 {
			return fmt.Errorf("config: redis.db must be ≥ 0, got %d", c.Redis.DB)
		}
	}

	// Kafka
	if c.Kafka.Enabled && len(c.Kafka.Brokers) == 0 {
		return fmt.Errorf("config: kafka.brokers must contain at least one broker address when kafka is enabled")
	}

	// Log
	switch c.Log.Level {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("config: log.level %q is invalid; expected debug|info|warn|error", c.Log.Level)
	}
	switch c.Log.Format {
	case "json", "console":
	default:
		return fmt.Errorf("config: log.format %q is invalid; expected json|console", c.Log.Format)
	}

	return nil
}
