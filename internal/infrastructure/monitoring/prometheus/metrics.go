package prometheus

// AppMetrics bundles the application-level metrics the worker records.  All
// fields are registered against the same collector so a nil check is never
// required at call sites.
type AppMetrics struct {
	// Pipeline cycles.
	CycleTotal    CounterVec   // labels: pipeline, status
	CycleDuration HistogramVec // labels: pipeline

	// Content ingestion.
	DocumentsScanned CounterVec // labels: pipeline

	// Forecasting.
	ForecastsActive    GaugeVec   // labels: timeframe
	ForecastsGenerated CounterVec // labels: timeframe

	// Watchlists.
	WatchlistSize GaugeVec   // labels: list
	Discoveries   CounterVec // labels: kind

	// Messaging.
	EventsPublished CounterVec // labels: topic, status

	// HTTP API.
	HTTPRequests       CounterVec   // labels: method, path, status
	HTTPRequestLatency HistogramVec // labels: method, path
}

// NewAppMetrics registers every application metric with the collector.
func NewAppMetrics(collector MetricsCollector) *AppMetrics {
	return &AppMetrics{
		CycleTotal: collector.RegisterCounter(
			"cycle_total",
			"Total pipeline cycles by outcome",
			"pipeline", "status",
		),
		CycleDuration: collector.RegisterHistogram(
			"cycle_duration_seconds",
			"Duration of pipeline cycles",
			[]float64{0.1, 0.5, 1, 2.5, 5, 10, 30, 60},
			"pipeline",
		),
		DocumentsScanned: collector.RegisterCounter(
			"documents_scanned_total",
			"Content documents read during cycles",
			"pipeline",
		),
		ForecastsActive: collector.RegisterGauge(
			"forecasts_active",
			"Forecasts currently persisted per timeframe",
			"timeframe",
		),
		ForecastsGenerated: collector.RegisterCounter(
			"forecasts_generated_total",
			"Forecasts produced by synthesis cycles",
			"timeframe",
		),
		WatchlistSize: collector.RegisterGauge(
			"watchlist_size",
			"Entries currently held per watchlist",
			"list",
		),
		Discoveries: collector.RegisterCounter(
			"watchlist_discoveries_total",
			"Entities promoted onto a watchlist by discovery",
			"kind",
		),
		EventsPublished: collector.RegisterCounter(
			"events_published_total",
			"Kafka events published by outcome",
			"topic", "status",
		),
		HTTPRequests: collector.RegisterCounter(
			"http_requests_total",
			"HTTP requests served",
			"method", "path", "status",
		),
		HTTPRequestLatency: collector.RegisterHistogram(
			"http_request_duration_seconds",
			"HTTP request latency",
			[]float64{0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1},
			"method", "path",
		),
	}
}
