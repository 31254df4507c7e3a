package prometheus_test

import (
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/turtacn/GeoRisk-Intelligence/internal/infrastructure/monitoring/logging"
	"github.com/turtacn/GeoRisk-Intelligence/internal/infrastructure/monitoring/prometheus"
)

func newCollector(t *testing.T) prometheus.MetricsCollector {
	t.Helper()
	c, err := prometheus.NewMetricsCollector(prometheus.CollectorConfig{
		Namespace: "georisk",
		Subsystem: "test",
	}, logging.NewNopLogger())
	require.NoError(t, err)
	return c
}

func TestNewMetricsCollector_RequiresNamespace(t *testing.T) {
	t.Parallel()
	_, err := prometheus.NewMetricsCollector(prometheus.CollectorConfig{}, logging.NewNopLogger())
	assert.Error(t, err)
}

func TestRegisterCounter_Records(t *testing.T) {
	t.Parallel()
	c := newCollector(t)

	counter := c.RegisterCounter("cycles_total", "cycles", "pipeline", "status")
	counter.WithLabelValues("forecast", "ok").Inc()
	counter.WithLabelValues("forecast", "ok").Add(2)

	rec := httptest.NewRecorder()
	c.Handler().ServeHTTP(rec, httptest.NewRequest("GET", "/metrics", nil))
	body := rec.Body.String()
	assert.Contains(t, body, "georisk_test_cycles_total")
	assert.Contains(t, body, `pipeline="forecast"`)
}

func TestRegister_DuplicateReturnsExisting(t *testing.T) {
	t.Parallel()
	c := newCollector(t)

	first := c.RegisterGauge("watchlist_size", "entries", "list")
	second := c.RegisterGauge("watchlist_size", "entries", "list")

	first.WithLabelValues("supported").Set(3)
	second.WithLabelValues("supported").Inc()

	rec := httptest.NewRecorder()
	c.Handler().ServeHTTP(rec, httptest.NewRequest("GET", "/metrics", nil))
	assert.Contains(t, rec.Body.String(), `georisk_test_watchlist_size{list="supported"} 4`)
}

func TestRegisterHistogram_DefaultBuckets(t *testing.T) {
	t.Parallel()
	c := newCollector(t)

	h := c.RegisterHistogram("cycle_duration_seconds", "durations", nil, "pipeline")
	h.WithLabelValues("watchlist").Observe(0.42)

	rec := httptest.NewRecorder()
	c.Handler().ServeHTTP(rec, httptest.NewRequest("GET", "/metrics", nil))
	assert.Contains(t, rec.Body.String(), "georisk_test_cycle_duration_seconds_count")
}

func TestNewAppMetrics_AllRegistered(t *testing.T) {
	t.Parallel()
	m := prometheus.NewAppMetrics(newCollector(t))

	require.NotNil(t, m.CycleTotal)
	require.NotNil(t, m.ForecastsActive)
	require.NotNil(t, m.WatchlistSize)
	require.NotNil(t, m.HTTPRequestLatency)

	m.CycleTotal.WithLabelValues("forecast", "ok").Inc()
	m.ForecastsActive.WithLabelValues("short").Set(2)
	m.Discoveries.WithLabelValues("organization").Inc()
}

func TestNopCollector_IsInert(t *testing.T) {
	t.Parallel()
	var c prometheus.NopCollector

	c.RegisterCounter("a", "a").WithLabelValues().Inc()
	c.RegisterGauge("b", "b").WithLabelValues().Set(1)
	c.RegisterHistogram("c", "c", nil).WithLabelValues().Observe(1)
}
