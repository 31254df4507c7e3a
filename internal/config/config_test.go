package config_test

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/turtacn/GeoRisk-Intelligence/internal/config"
)

func defaultedConfig() *config.Config {
	cfg := &config.Config{}
	config.ApplyDefaults(cfg)
	return cfg
}

func TestApplyDefaults_FillsAllSections(t *testing.T) {
	t.Parallel()
	cfg := defaultedConfig()

	assert.Equal(t, config.DefaultServerPort, cfg.Server.Port)
	assert.Equal(t, "release", cfg.Server.Mode)

	assert.Equal(t, "data", cfg.Data.BaseDir)
	assert.Equal(t, "data/processed_content", cfg.Data.ContentDir)
	assert.Equal(t, "data/predictions", cfg.Data.PredictionsDir)
	assert.Equal(t, "data/watchlists", cfg.Data.WatchlistDir)
	assert.Equal(t, "data/models", cfg.Data.ModelsDir)

	assert.Equal(t, 100, cfg.Forecast.Ensemble.NumTrees)
	assert.Equal(t, 10, cfg.Forecast.Ensemble.MaxDepth)
	assert.Equal(t, 0.1, cfg.Forecast.Ensemble.LearningRate)

	assert.Equal(t, 7, cfg.Forecast.Short.WindowDays)
	assert.Equal(t, 0.7, cfg.Forecast.Short.ConfidenceThreshold)
	assert.Equal(t, 30, cfg.Forecast.Medium.WindowDays)
	assert.Equal(t, 0.6, cfg.Forecast.Medium.ConfidenceThreshold)
	assert.Equal(t, 365, cfg.Forecast.Long.WindowDays)
	assert.Equal(t, 0.5, cfg.Forecast.Long.ConfidenceThreshold)

	assert.Equal(t, 300*time.Second, cfg.Forecast.Interval)
	assert.Equal(t, 24*time.Hour, cfg.Forecast.ContentWindow)
	assert.Equal(t, 100, cfg.Forecast.MaxDocuments)

	assert.Equal(t, time.Hour, cfg.Watchlist.Interval)
	assert.Equal(t, 300*time.Second, cfg.Watchlist.ErrorBackoff)
	assert.Equal(t, 7*24*time.Hour, cfg.Watchlist.ContentWindow)
	assert.Equal(t, 0.8, cfg.Watchlist.DiscoveryConfidence)
	assert.Equal(t, 3, cfg.Watchlist.DiscoveryMentions)

	assert.Equal(t, "localhost:6379", cfg.Redis.Addr)
	assert.Equal(t, []string{"localhost:9092"}, cfg.Kafka.Brokers)
	assert.Equal(t, "georisk", cfg.Metrics.Namespace)
	assert.Equal(t, "info", cfg.Log.Level)
	assert.Equal(t, "json", cfg.Log.Format)
}

func TestApplyDefaults_ExplicitValuesWin(t *testing.T) {
	t.Parallel()
	cfg := &config.Config{}
	cfg.Forecast.Ensemble.NumTrees = 25
	cfg.Data.BaseDir = "/var/lib/georisk"
	config.ApplyDefaults(cfg)

	assert.Equal(t, 25, cfg.Forecast.Ensemble.NumTrees)
	assert.Equal(t, "/var/lib/georisk", cfg.Data.BaseDir)
	assert.Equal(t, "/var/lib/georisk/processed_content", cfg.Data.ContentDir)
}

func TestApplyDefaults_NilIsNoop(t *testing.T) {
	t.Parallel()
	assert.NotPanics(t, func() { config.ApplyDefaults(nil) })
}

func TestValidate_DefaultsAreValid(t *testing.T) {
	t.Parallel()
	assert.NoError(t, defaultedConfig().Validate())
}

func TestValidate_RejectsBadValues(t *testing.T) {
	t.Parallel()
	cases := []struct {
		name   string
		mutate func(*config.Config)
	}{
		{"port out of range", func(c *config.Config) { c.Server.Port = 70000 }},
		{"bad server mode", func(c *config.Config) { c.Server.Mode = "prod" }},
		{"empty base dir", func(c *config.Config) { c.Data.BaseDir = "" }},
		{"zero trees", func(c *config.Config) { c.Forecast.Ensemble.NumTrees = -1 }},
		{"learning rate above one", func(c *config.Config) { c.Forecast.Ensemble.LearningRate = 1.5 }},
		{"threshold above one", func(c *config.Config) { c.Forecast.Short.ConfidenceThreshold = 1.2 }},
		{"negative window", func(c *config.Config) { c.Forecast.Medium.WindowDays = -7 }},
		{"zero interval", func(c *config.Config) { c.Forecast.Interval = -time.Second }},
		{"discovery confidence out of range", func(c *config.Config) { c.Watchlist.DiscoveryConfidence = 1.5 }},
		{"redis enabled without addr", func(c *config.Config) { c.Redis.Enabled = true; c.Redis.Addr = "" }},
		{"kafka enabled without brokers", func(c *config.Config) { c.Kafka.Enabled = true; c.Kafka.Brokers = nil }},
		{"bad log level", func(c *config.Config) { c.Log.Level = "trace" }},
		{"bad log format", func(c *config.Config) { c.Log.Format = "text" }},
	}
	for _, tc := range cases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			cfg := defaultedConfig()
			tc.mutate(cfg)
			assert.Error(t, cfg.Validate())
		})
	}
}

func TestLoad_ReadsYAMLAndAppliesDefaults(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	content := []byte(`
server:
  port: 9090
  mode: debug
data:
  base_dir: /tmp/georisk-test
forecast:
  ensemble:
    num_trees: 50
    seed: 42
watchlist:
  supported_groups:
    - "Group A"
  opposed_groups:
    - "Group B"
log:
  level: debug
`)
	require.NoError(t, os.WriteFile(path, content, 0o644))

	cfg, err := config.Load(path)
	require.NoError(t, err)

	assert.Equal(t, 9090, cfg.Server.Port)
	assert.Equal(t, "debug", cfg.Server.Mode)
	assert.Equal(t, "/tmp/georisk-test", cfg.Data.BaseDir)
	assert.Equal(t, 50, cfg.Forecast.Ensemble.NumTrees)
	assert.Equal(t, int64(42), cfg.Forecast.Ensemble.Seed)
	// Unset fields fall back to defaults.
	assert.Equal(t, 10, cfg.Forecast.Ensemble.MaxDepth)
	assert.Equal(t, []string{"Group A"}, cfg.Watchlist.SupportedGroups)
	assert.Equal(t, []string{"Group B"}, cfg.Watchlist.OpposedGroups)
	assert.Equal(t, "debug", cfg.Log.Level)
}

func TestLoad_MissingFileFails(t *testing.T) {
	t.Parallel()
	_, err := config.Load("/nonexistent/config.yaml")
	assert.Error(t, err)
}

func TestLoadFromEnv_DefaultsOnly(t *testing.T) {
	cfg, err := config.LoadFromEnv()
	require.NoError(t, err)
	assert.Equal(t, config.DefaultServerPort, cfg.Server.Port)
	assert.Equal(t, "json", cfg.Log.Format)
}
