package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/Shrawan0701/webanalytics/config"
	"github.com/Shrawan0701/webanalytics/internal/agent"
	appmodel "github.com/Shrawan0701/webanalytics/internal/app/model"
	apprepository "github.com/Shrawan0701/webanalytics/internal/app/repository"
	appserver "github.com/Shrawan0701/webanalytics/internal/app/server"
	appservice "github.com/Shrawan0701/webanalytics/internal/app/service"
	"github.com/Shrawan0701/webanalytics/internal/http/middleware"
	"github.com/Shrawan0701/webanalytics/internal/infra/logger"
	infraPrometheus "github.com/Shrawan0701/webanalytics/internal/infra/prometheus"
	infraRedis "github.com/Shrawan0701/webanalytics/internal/infra/redis"
	infraSqlite "github.com/Shrawan0701/webanalytics/internal/infra/sqlite"
)

func main() {
	ctx := context.Background()

	isDev := os.Getenv("APP_ENV") != "production"
	log := logger.MustInit(logger.Config{
		Development: isDev,
		Level:       os.Getenv("LOG_LEVEL"),
	})
	defer func() { _ = logger.Sync() }()

	cfg, err := config.Load()
	if err != nil {
		log.Fatal("Failed to load config", zap.Error(err))
	}

	log.Info("Configuration loaded successfully",
		zap.String("collector_url", cfg.Collector.BaseURL),
		zap.String("listen_addr", cfg.Agent.ListenAddr),
		zap.String("public_base_url", cfg.Agent.PublicBaseURL),
		zap.String("storage_path", cfg.Storage.Path),
		zap.Bool("rate_limit_disabled", cfg.Agent.DisableRateLimit),
		zap.Bool("metrics_enabled", cfg.Metrics.Enabled),
	)

	gormDB, err := infraSqlite.Open(cfg.Storage)
	if err != nil {
		log.Fatal("Failed to open visitor store", zap.Error(err))
	}
	sqlDB, err := gormDB.DB()
	if err != nil {
		log.Fatal("Failed to access underlying SQL DB", zap.Error(err))
	}
	defer sqlDB.Close()

	if err := infraSqlite.AutoMigrate(ctx, gormDB, &appmodel.VisitorMarker{}); err != nil {
		log.Fatal("Failed to run database migrations", zap.Error(err))
	}

	markers := apprepository.NewMarkerRepository(gormDB)

	var redisClient *redis.Client
	if cfg.Agent.DisableRateLimit {
		log.Info("Rate limiting disabled by configuration")
	} else {
		client, err := infraRedis.NewClient(ctx, cfg.Redis)
		if err != nil {
			log.Warn("Redis unavailable, running without rate limiting", zap.Error(err))
		} else {
			redisClient = client
			defer redisClient.Close()
			log.Info("Connected to Redis successfully")
		}
	}

	if cfg.Metrics.Enabled {
		promServer := infraPrometheus.NewServer(cfg.Metrics)
		go func() {
			log.Info("Starting Prometheus metrics server",
				zap.Int("port", cfg.Metrics.Port))
			if err := promServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				log.Error("Prometheus metrics server stopped unexpectedly", zap.Error(err))
			}
		}()
		defer func() {
			if err := promServer.Close(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				log.Warn("Failed to close Prometheus server", zap.Error(err))
			}
		}()
	} else {
		log.Info("Prometheus metrics server disabled")
	}

	emitter := agent.NewHTTPEmitter(cfg.Collector.BaseURL, log,
		agent.WithFailureHook(infraPrometheus.EmitFailures.Inc))
	tracker := agent.NewTracker(emitter, markers, log)
	relay := appservice.NewRelayService(tracker, log, func(eventType string) {
		infraPrometheus.EventsRelayed.WithLabelValues(eventType).Inc()
	})

	rateLimit := middleware.DefaultRateLimitConfig()
	if cfg.Agent.RateLimitPerMin > 0 {
		rateLimit.MaxRequests = cfg.Agent.RateLimitPerMin
	}

	srv, err := appserver.New(appserver.Dependencies{
		Logger:        log,
		Relay:         relay,
		Redis:         redisClient,
		PublicBaseURL: cfg.Agent.PublicBaseURL,
		RateLimit:     rateLimit,
		Rejected:      infraPrometheus.EventsRejected.Inc,
	})
	if err != nil {
		log.Fatal("Failed to build relay server", zap.Error(err))
	}

	shutdown := make(chan os.Signal, 1)
	signal.Notify(shutdown, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		sig := <-shutdown
		log.Info("Shutting down", zap.String("signal", sig.String()))
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			log.Warn("Fiber shutdown failed", zap.Error(err))
		}
	}()

	log.Info("Relay agent listening", zap.String("addr", cfg.Agent.ListenAddr))
	if err := srv.Listen(cfg.Agent.ListenAddr); err != nil {
		log.Fatal("Fiber server exited", zap.Error(err))
	}

	// Let in-flight deliveries to the collector finish before exiting.
	emitter.Wait()
}
