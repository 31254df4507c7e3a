package cli

import (
	"context"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/spf13/cobra"

	appforecast "github.com/turtacn/GeoRisk-Intelligence/internal/application/forecast"
	appwatchlist "github.com/turtacn/GeoRisk-Intelligence/internal/application/watchlist"
	"github.com/turtacn/GeoRisk-Intelligence/internal/config"
	"github.com/turtacn/GeoRisk-Intelligence/internal/domain/content"
	"github.com/turtacn/GeoRisk-Intelligence/internal/domain/forecast"
	"github.com/turtacn/GeoRisk-Intelligence/internal/domain/scoring"
	"github.com/turtacn/GeoRisk-Intelligence/internal/infrastructure/cache/redis"
	"github.com/turtacn/GeoRisk-Intelligence/internal/infrastructure/messaging/kafka"
	"github.com/turtacn/GeoRisk-Intelligence/internal/infrastructure/monitoring/logging"
	"github.com/turtacn/GeoRisk-Intelligence/internal/infrastructure/monitoring/prometheus"
	"github.com/turtacn/GeoRisk-Intelligence/internal/infrastructure/storage/jsonstore"
	apihttp "github.com/turtacn/GeoRisk-Intelligence/internal/interfaces/http"
	"github.com/turtacn/GeoRisk-Intelligence/internal/interfaces/http/handlers"
)

// newWorkerCmd creates `georisk worker`, the long-running daemon: both
// background pipelines plus the HTTP API.
func newWorkerCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "worker",
		Short: "Run the forecasting and tracking daemon with the HTTP API",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cliCtx, err := getCLIContext(cmd)
			if err != nil {
				return err
			}
			return runWorker(cmd.Context(), cliCtx.Config, cliCtx.ConfigPath)
		},
	}
}

func runWorker(ctx context.Context, cfg *config.Config, cfgPath string) error {
	logger, err := logging.NewLogger(logging.LogConfig{
		Level:            cfg.Log.Level,
		Format:           cfg.Log.Format,
		OutputPaths:      cfg.Log.OutputPaths,
		ErrorOutputPaths: cfg.Log.ErrorOutputPaths,
	})
	if err != nil {
		return err
	}
	logging.SetDefault(logger)
	logger.Info("worker starting",
		logging.String("version", Version),
		logging.String("base_dir", cfg.Data.BaseDir))

	// Hot-reload is limited to noting the change: pipeline settings are bound
	// at construction, so a restart is required to apply them.
	if cfgPath != "" {
		config.Watch(cfgPath, func(_ *config.Config) {
			logger.Warn("config file changed on disk, restart the worker to apply",
				logging.String("path", cfgPath))
		})
	}

	// Metrics.
	var collector prometheus.MetricsCollector = prometheus.NopCollector{}
	if cfg.Metrics.Enabled {
		collector, err = prometheus.NewMetricsCollector(prometheus.CollectorConfig{
			Namespace:            cfg.Metrics.Namespace,
			Subsystem:            "worker",
			EnableProcessMetrics: true,
			EnableGoMetrics:      true,
		}, logger)
		if err != nil {
			return err
		}
	}
	metrics := prometheus.NewAppMetrics(collector)

	// Cache.
	var cache redis.Cache = redis.NopCache{}
	if cfg.Redis.Enabled {
		cache = redis.NewCache(redis.Options{
			Addr:         cfg.Redis.Addr,
			Password:     cfg.Redis.Password,
			DB:           cfg.Redis.DB,
			PoolSize:     cfg.Redis.PoolSize,
			DialTimeout:  cfg.Redis.DialTimeout,
			ReadTimeout:  cfg.Redis.ReadTimeout,
			WriteTimeout: cfg.Redis.WriteTimeout,
			KeyPrefix:    cfg.Redis.KeyPrefix,
			DefaultTTL:   cfg.Redis.DefaultTTL,
		}, logger)
		defer cache.Close()
		if err := cache.Ping(ctx); err != nil {
			logger.Warn("redis unreachable at startup, continuing without cache hits",
				logging.Err(err))
		}
	}

	// Event publisher.
	var fcPublisher appforecast.EventPublisher
	var wlPublisher appwatchlist.EventPublisher
	if cfg.Kafka.Enabled {
		producer, err := kafka.NewProducer(kafka.ProducerConfig{
			Brokers:      cfg.Kafka.Brokers,
			TopicPrefix:  cfg.Kafka.TopicPrefix,
			BatchSize:    cfg.Kafka.BatchSize,
			BatchTimeout: cfg.Kafka.BatchTimeout,
			WriteTimeout: cfg.Kafka.WriteTimeout,
			RequiredAcks: cfg.Kafka.RequiredAcks,
		}, logger)
		if err != nil {
			return err
		}
		defer producer.Close()
		fcPublisher, wlPublisher = producer, producer
	}

	// Scoring model.
	rng := scoring.NewRand(cfg.Forecast.Ensemble.Seed)
	ensemble, err := scoring.NewEnsemble(scoring.Params{
		NumTrees:     cfg.Forecast.Ensemble.NumTrees,
		MaxDepth:     cfg.Forecast.Ensemble.MaxDepth,
		LearningRate: cfg.Forecast.Ensemble.LearningRate,
	}, rng, logger)
	if err != nil {
		return err
	}
	snapshotPath := filepath.Join(cfg.Data.ModelsDir, snapshotFileName)
	if jsonstore.Exists(snapshotPath) {
		if err := ensemble.Load(snapshotPath); err != nil {
			logger.Warn("ignoring unreadable model snapshot",
				logging.String("path", snapshotPath), logging.Err(err))
		}
	}

	// Pipelines.
	store := content.NewStore(cfg.Data.ContentDir, logger)
	manager := appforecast.NewManager(cfg.Forecast, cfg.Data.PredictionsDir,
		store, ensemble, forecast.NewSynthesizer(rng), fcPublisher, cache, metrics, logger)
	tracker := appwatchlist.NewTracker(cfg.Watchlist, cfg.Data.WatchlistDir,
		store, wlPublisher, metrics, logger)

	runCtx, cancel := context.WithCancel(ctx)
	defer cancel()

	// Content arrivals wake the forecast loop early.
	watcher := content.NewWatcher(cfg.Data.ContentDir, logger)
	go func() {
		if err := watcher.Run(runCtx); err != nil {
			logger.Error("content watcher exited", logging.Err(err))
		}
	}()
	go func() {
		for {
			select {
			case <-runCtx.Done():
				return
			case <-watcher.Arrivals():
				manager.Kick()
			}
		}
	}()

	manager.Start()
	tracker.Start()

	// HTTP API.
	router := apihttp.NewRouter(apihttp.RouterConfig{
		ForecastHandler:  handlers.NewForecastHandler(manager, cache, cfg.Redis.DefaultTTL, logger),
		WatchlistHandler: handlers.NewWatchlistHandler(tracker, logger),
		HealthHandler:    handlers.NewHealthHandler(cache, manager, tracker),
		Logger:           logger,
		Metrics:          metrics,
		MetricsCollector: collector,
		MetricsPath:      cfg.Metrics.Path,
		Mode:             cfg.Server.Mode,
	})
	server := apihttp.NewServer(cfg.Server, router, logger)

	serverErr := make(chan error, 1)
	go func() { serverErr <- server.Start() }()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-serverErr:
		logger.Error("http server failed", logging.Err(err))
		shutdown(ctx, cfg, server, manager, tracker, logger, snapshotPath)
		return err
	case sig := <-sigCh:
		logger.Info("shutdown signal received", logging.String("signal", sig.String()))
	case <-ctx.Done():
		logger.Info("context cancelled")
	}

	cancel()
	shutdown(context.Background(), cfg, server, manager, tracker, logger, snapshotPath)
	return nil
}

func shutdown(
	ctx context.Context,
	cfg *config.Config,
	server *apihttp.Server,
	manager *appforecast.Manager,
	tracker *appwatchlist.Tracker,
	logger logging.Logger,
	snapshotPath string,
) {
	if err := server.Stop(ctx); err != nil {
		logger.Error("http server shutdown failed", logging.Err(err))
	}
	manager.Stop()
	tracker.Stop()

	if err := manager.SaveModel(ctx, snapshotPath); err != nil {
		logger.Error("failed to save model snapshot",
			logging.String("path", snapshotPath), logging.Err(err))
	} else {
		logger.Info("model snapshot saved", logging.String("path", snapshotPath))
	}
	logger.Info("worker stopped", logging.String("base_dir", cfg.Data.BaseDir))
}
