package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"

	"github.com/esihle/storefront-backend/api/controllers"
	"github.com/esihle/storefront-backend/api/middleware"
	"github.com/esihle/storefront-backend/api/routes"
	"github.com/esihle/storefront-backend/internal/cart"
	"github.com/esihle/storefront-backend/internal/catalog"
	"github.com/esihle/storefront-backend/internal/checkout"
	"github.com/esihle/storefront-backend/internal/cron"
	"github.com/esihle/storefront-backend/pkg/config"
	"github.com/esihle/storefront-backend/pkg/db"
	"github.com/esihle/storefront-backend/pkg/instance"
	"github.com/esihle/storefront-backend/pkg/logger"
	"github.com/esihle/storefront-backend/pkg/metrics"
	"github.com/esihle/storefront-backend/pkg/migrate"
	"github.com/esihle/storefront-backend/pkg/redis"
)

const (
	shutdownTimeout = 15 * time.Second
	sweepLockName   = "cart-session-sweep"
)

func main() {
	logg := logger.New(logger.Options{ServiceName: "api"})

	if err := godotenv.Load(); err != nil {
		logg.Warn(context.Background(), ".env file not found, relying on environment")
	}

	cfg, err := config.Load()
	if err != nil {
		logg.Error(context.Background(), "failed to load config", err)
		os.Exit(1)
	}

	logg = logger.New(logger.Options{
		ServiceName: "api",
		Level:       logger.ParseLevel(cfg.App.LogLevel),
		WarnStack:   cfg.App.LogWarnStack,
	})

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	readiness := map[string]controllers.Pinger{}

	var source catalog.Source = catalog.FixtureSource{Path: cfg.Catalog.FixturePath}
	if cfg.Catalog.UsesDB() {
		dbClient, err := db.New(ctx, cfg.DB, logg)
		if err != nil {
			logg.Error(ctx, "failed to bootstrap database", err)
			os.Exit(1)
		}
		defer func() {
			if err := dbClient.Close(); err != nil {
				logg.Error(context.Background(), "error closing database", err)
			}
		}()

		if err := migrate.MaybeAutoRun(ctx, cfg, logg, dbClient); err != nil {
			logg.Error(ctx, "failed to run catalog migrations", err)
			os.Exit(1)
		}
		source = catalog.NewRepository(dbClient.DB())
		readiness["db"] = dbClient
	}

	catalogStore, err := catalog.Load(ctx, source, logg)
	if err != nil {
		logg.Error(ctx, "failed to load catalog", err)
		os.Exit(1)
	}

	var (
		redisClient *redis.Client
		mirror      cart.Mirror
		rateStore   middleware.RateLimitStore
		sweepLock   cron.Lock
	)
	if cfg.Redis.Enabled() {
		redisClient, err = redis.New(ctx, cfg.Redis, logg)
		if err != nil {
			logg.Error(ctx, "failed to bootstrap redis", err)
			os.Exit(1)
		}
		defer func() {
			if err := redisClient.Close(); err != nil {
				logg.Error(context.Background(), "error closing redis", err)
			}
		}()

		mirror = cart.NewRedisMirror(redisClient, cfg.Session.TTL)
		rateStore = redisClient
		readiness["redis"] = redisClient

		lock, err := cron.NewRedisLock(redisClient, redisClient.LockKey(sweepLockName+":"+instance.GetID()), 0)
		if err != nil {
			logg.Error(ctx, "failed to create sweep lock", err)
			os.Exit(1)
		}
		sweepLock = lock
	}

	registry := prometheus.NewRegistry()
	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	storefrontMetrics := metrics.NewStorefrontMetrics(registry)
	jobMetrics := metrics.NewJobMetrics(registry)

	sessions := cart.NewSessions(cart.SessionsParams{
		Logger:  logg,
		Catalog: catalogStore,
		Mirror:  mirror,
		Metrics: storefrontMetrics,
		TTL:     cfg.Session.TTL,
	})

	checkoutService, err := checkout.NewService(checkout.ServiceParams{
		Logger:    logg,
		Metrics:   storefrontMetrics,
		BrandName: cfg.App.BrandName,
	})
	if err != nil {
		logg.Error(ctx, "failed to create checkout service", err)
		os.Exit(1)
	}

	sweeper, err := newSweeper(cfg, logg, sessions, sweepLock, jobMetrics)
	if err != nil {
		logg.Error(ctx, "failed to create session sweeper", err)
		os.Exit(1)
	}
	go func() {
		if err := sweeper.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
			logg.Error(ctx, "session sweeper stopped unexpectedly", err)
		}
	}()

	port := os.Getenv("PORT")
	if port == "" {
		port = cfg.App.Port
	}
	addr := ":" + port
	ctx = logg.WithFields(ctx, map[string]any{
		"env":      cfg.App.Env,
		"addr":     addr,
		"instance": instance.GetID(),
		"catalog":  cfg.Catalog.Source,
		"redis":    cfg.Redis.Enabled(),
	})
	logg.Info(ctx, "starting api server")

	server := &http.Server{
		Addr: addr,
		Handler: routes.NewRouter(
			cfg,
			logg,
			catalogStore,
			sessions,
			checkoutService,
			storefrontMetrics,
			registry,
			rateStore,
			readiness,
		),
		ReadHeaderTimeout: 10 * time.Second,
	}

	serverErr := make(chan error, 1)
	go func() {
		serverErr <- server.ListenAndServe()
	}()

	select {
	case err := <-serverErr:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			logg.Error(ctx, "api server stopped unexpectedly", err)
			os.Exit(1)
		}
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := server.Shutdown(shutdownCtx); err != nil {
			logg.Error(shutdownCtx, "api server shutdown failed", err)
		}
		logg.Info(context.Background(), "api server shutting down gracefully")
	}
}

func newSweeper(cfg *config.Config, logg *logger.Logger, sessions *cart.Sessions, lock cron.Lock, jobMetrics *metrics.JobMetrics) (*cron.Service, error) {
	job, err := cron.NewSessionSweepJob(cron.SessionSweepJobParams{
		Logger:   logg,
		Sessions: sessions,
	})
	if err != nil {
		return nil, err
	}
	return cron.NewService(cron.ServiceParams{
		Logger:   logg,
		Registry: cron.NewRegistry(job),
		Lock:     lock,
		Metrics:  jobMetrics,
		Interval: cfg.Session.SweepInterval,
	})
}
