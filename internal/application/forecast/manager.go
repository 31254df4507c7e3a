// Package forecast runs the forecasting pipeline: a periodic cycle that
// scores recent content, synthesizes per-country forecasts for the three
// horizons, and persists each horizon's list as a full replacement.
package forecast

import (
	"context"
	"path/filepath"
	"sync"
	"time"

	"github.com/turtacn/GeoRisk-Intelligence/internal/config"
	"github.com/turtacn/GeoRisk-Intelligence/internal/domain/content"
	"github.com/turtacn/GeoRisk-Intelligence/internal/domain/forecast"
	"github.com/turtacn/GeoRisk-Intelligence/internal/domain/scoring"
	"github.com/turtacn/GeoRisk-Intelligence/internal/infrastructure/messaging/kafka"
	"github.com/turtacn/GeoRisk-Intelligence/internal/infrastructure/monitoring/logging"
	"github.com/turtacn/GeoRisk-Intelligence/internal/infrastructure/monitoring/prometheus"
	"github.com/turtacn/GeoRisk-Intelligence/internal/infrastructure/storage/jsonstore"
	"github.com/turtacn/GeoRisk-Intelligence/internal/scheduler"
	apperrors "github.com/turtacn/GeoRisk-Intelligence/pkg/errors"
)

// EventPublisher is the slice of the messaging producer the manager uses.
// A nil publisher disables event publishing.
type EventPublisher interface {
	PublishEvent(ctx context.Context, topic, eventType string, payload interface{}) error
}

// CacheInvalidator evicts cached forecast reads when a cycle replaces a
// horizon's list, so the API never serves a replaced list from cache.  A nil
// invalidator disables eviction.
type CacheInvalidator interface {
	Delete(ctx context.Context, keys ...string) error
}

// CacheKey is the cache key under which a horizon's forecast list is stored.
func CacheKey(timeframe string) string {
	return "forecasts:" + timeframe
}

// Status is the manager's introspection snapshot.
type Status struct {
	Running   bool           `json:"running"`
	LastCycle time.Time      `json:"last_cycle"`
	LastError string         `json:"last_error,omitempty"`
	Counts    map[string]int `json:"counts"`
}

// Manager owns the forecast state for all three horizons and the background
// cycle that refreshes it.  All methods are safe for concurrent use.
type Manager struct {
	cfg       config.ForecastConfig
	dir       string
	store     *content.Store
	ensemble  *scoring.Ensemble
	synth       *forecast.Synthesizer
	publisher   EventPublisher
	invalidator CacheInvalidator
	metrics     *prometheus.AppMetrics
	logger      logging.Logger

	mu        sync.RWMutex
	forecasts map[forecast.Timeframe][]forecast.Forecast
	lastCycle time.Time
	lastError string

	runner *scheduler.Runner
}

// NewManager constructs the manager and loads any previously persisted
// forecast lists.  A load failure falls back to an empty list and is logged;
// it never prevents startup.
func NewManager(
	cfg config.ForecastConfig,
	predictionsDir string,
	store *content.Store,
	ensemble *scoring.Ensemble,
	synth *forecast.Synthesizer,
	publisher EventPublisher,
	invalidator CacheInvalidator,
	metrics *prometheus.AppMetrics,
	logger logging.Logger,
) *Manager {
	if metrics == nil {
		metrics = prometheus.NewAppMetrics(prometheus.NopCollector{})
	}
	m := &Manager{
		cfg:         cfg,
		dir:         predictionsDir,
		store:       store,
		ensemble:    ensemble,
		synth:       synth,
		publisher:   publisher,
		invalidator: invalidator,
		metrics:     metrics,
		logger:      logger.Named("forecast"),
		forecasts:   make(map[forecast.Timeframe][]forecast.Forecast, len(forecast.AllTimeframes)),
	}
	m.loadPersisted()
	m.runner = scheduler.NewRunner("forecast", cfg.Interval, cfg.Interval, m.RunCycle, logger)
	return m
}

func (m *Manager) loadPersisted() {
	for _, tf := range forecast.AllTimeframes {
		var list []forecast.Forecast
		err := jsonstore.Load(m.filePath(tf), &list)
		switch {
		case err == nil:
			m.forecasts[tf] = list
			m.metrics.ForecastsActive.WithLabelValues(string(tf)).Set(float64(len(list)))
			m.logger.Info("loaded persisted forecasts",
				logging.String("timeframe", string(tf)),
				logging.Int("count", len(list)))
		case apperrors.IsNotFound(err):
			m.forecasts[tf] = nil
		default:
			m.forecasts[tf] = nil
			m.logger.Warn("discarding unreadable forecast file",
				logging.String("timeframe", string(tf)), logging.Err(err))
		}
	}
}

func (m *Manager) filePath(tf forecast.Timeframe) string {
	return filepath.Join(m.dir, string(tf)+"_forecasts.json")
}

func (m *Manager) timeframeConfig(tf forecast.Timeframe) config.TimeframeConfig {
	switch tf {
	case forecast.TimeframeMedium:
		return m.cfg.Medium
	case forecast.TimeframeLong:
		return m.cfg.Long
	default:
		return m.cfg.Short
	}
}

// RunCycle executes one full forecasting cycle: score recent content, then
// synthesize, filter, and fully replace each horizon's forecast list.  The
// persisted file and the in-memory list are replaced together so readers of
// either see the same cycle's output.
func (m *Manager) RunCycle(ctx context.Context) error {
	start := time.Now()

	docs, err := m.store.Recent(m.cfg.ContentWindow, m.cfg.MaxDocuments)
	if err != nil {
		m.recordCycle(start, err)
		return apperrors.Wrap(err, apperrors.ErrCodeForecastCycleFailed, "content scan failed")
	}
	m.metrics.DocumentsScanned.WithLabelValues("forecast").Add(float64(len(docs)))

	vectors := scoring.ExtractFeatures(docs)
	scores := m.ensemble.Score(vectors)

	for _, tf := range forecast.AllTimeframes {
		if ctx.Err() != nil {
			m.recordCycle(start, ctx.Err())
			return ctx.Err()
		}
		tfCfg := m.timeframeConfig(tf)
		candidates := m.synth.Synthesize(vectors, scores, tfCfg.WindowDays)
		filtered := forecast.FilterByConfidence(candidates, tfCfg.ConfidenceThreshold)

		if err := m.replace(ctx, tf, filtered); err != nil {
			m.recordCycle(start, err)
			return err
		}
		m.metrics.ForecastsGenerated.WithLabelValues(string(tf)).Add(float64(len(filtered)))
		m.publishUpdated(ctx, tf, filtered)
	}

	m.recordCycle(start, nil)
	m.logger.Info("forecast cycle complete",
		logging.Int("documents", len(docs)),
		logging.Int("samples", len(vectors)),
		logging.Duration("elapsed", time.Since(start)))
	return nil
}

// replace persists the new list, swaps it in under the lock, and evicts the
// cached copy.  An empty list is persisted too: replacement means the
// previous cycle's forecasts are gone even when nothing qualified this cycle.
func (m *Manager) replace(ctx context.Context, tf forecast.Timeframe, list []forecast.Forecast) error {
	if list == nil {
		list = []forecast.Forecast{}
	}
	if err := jsonstore.Save(m.filePath(tf), list); err != nil {
		return apperrors.Wrap(err, apperrors.ErrCodeForecastStoreFailed, "failed to persist forecasts").
			WithDetail(string(tf))
	}

	m.mu.Lock()
	m.forecasts[tf] = list
	m.mu.Unlock()

	if m.invalidator != nil {
		if err := m.invalidator.Delete(ctx, CacheKey(string(tf))); err != nil {
			m.logger.Warn("failed to evict cached forecasts",
				logging.String("timeframe", string(tf)), logging.Err(err))
		}
	}

	m.metrics.ForecastsActive.WithLabelValues(string(tf)).Set(float64(len(list)))
	return nil
}

func (m *Manager) publishUpdated(ctx context.Context, tf forecast.Timeframe, list []forecast.Forecast) {
	if m.publisher == nil {
		return
	}
	payload := kafka.ForecastUpdatedPayload{
		Timeframe:     string(tf),
		ForecastCount: len(list),
		Countries:     countriesOf(list),
		UpdatedAt:     time.Now().UTC(),
	}
	if err := m.publisher.PublishEvent(ctx, kafka.TopicForecastUpdated, "forecast.updated", payload); err != nil {
		m.metrics.EventsPublished.WithLabelValues(kafka.TopicForecastUpdated, "error").Inc()
		m.logger.Warn("failed to publish forecast event",
			logging.String("timeframe", string(tf)), logging.Err(err))
		return
	}
	m.metrics.EventsPublished.WithLabelValues(kafka.TopicForecastUpdated, "ok").Inc()
}

func (m *Manager) recordCycle(start time.Time, err error) {
	status := "ok"
	msg := ""
	if err != nil {
		status = "error"
		msg = err.Error()
	}
	m.metrics.CycleTotal.WithLabelValues("forecast", status).Inc()
	m.metrics.CycleDuration.WithLabelValues("forecast").Observe(time.Since(start).Seconds())

	m.mu.Lock()
	m.lastCycle = time.Now().UTC()
	m.lastError = msg
	m.mu.Unlock()
}

// Predictions returns the current forecast list for the named horizon.  An
// unknown horizon yields an empty list, not an error.
func (m *Manager) Predictions(timeframe string) []forecast.Forecast {
	tf, err := forecast.ParseTimeframe(timeframe)
	if err != nil {
		return []forecast.Forecast{}
	}

	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make([]forecast.Forecast, len(m.forecasts[tf]))
	copy(out, m.forecasts[tf])
	return out
}

// All returns the current forecast lists for every horizon.
func (m *Manager) All() map[forecast.Timeframe][]forecast.Forecast {
	m.mu.RLock()
	defer m.mu.RUnlock()

	out := make(map[forecast.Timeframe][]forecast.Forecast, len(m.forecasts))
	for tf, list := range m.forecasts {
		cp := make([]forecast.Forecast, len(list))
		copy(cp, list)
		out[tf] = cp
	}
	return out
}

// ModelInfo exposes the ensemble's hyperparameters and importance map.
func (m *Manager) ModelInfo() scoring.ModelInfo {
	return m.ensemble.Info()
}

// SaveModel persists a model snapshot and announces it.
func (m *Manager) SaveModel(ctx context.Context, path string) error {
	if err := m.ensemble.Save(path); err != nil {
		return err
	}
	if m.publisher != nil {
		info := m.ensemble.Info()
		payload := kafka.ModelSnapshotSavedPayload{
			Path:     path,
			NumTrees: info.NumTrees,
			SavedAt:  time.Now().UTC(),
		}
		if err := m.publisher.PublishEvent(ctx, kafka.TopicModelSnapshotSaved, "model.snapshot_saved", payload); err != nil {
			m.logger.Warn("failed to publish snapshot event", logging.Err(err))
		}
	}
	return nil
}

// Status reports the manager's run state and per-horizon counts.
func (m *Manager) Status() Status {
	m.mu.RLock()
	defer m.mu.RUnlock()

	counts := make(map[string]int, len(m.forecasts))
	for tf, list := range m.forecasts {
		counts[string(tf)] = len(list)
	}
	return Status{
		Running:   m.runner.Running(),
		LastCycle: m.lastCycle,
		LastError: m.lastError,
		Counts:    counts,
	}
}

// Start launches the background cycle loop.
func (m *Manager) Start() { m.runner.Start() }

// Stop halts the background cycle loop.
func (m *Manager) Stop() { m.runner.Stop() }

// Kick requests an immediate cycle, used when fresh content arrives.
func (m *Manager) Kick() { m.runner.Kick() }

func countriesOf(list []forecast.Forecast) []string {
	countries := make([]string, 0, len(list))
	for _, f := range list {
		countries = append(countries, f.Country)
	}
	return countries
}
