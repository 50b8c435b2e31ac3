package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"agromarket/internal/cache"
	"agromarket/internal/config"
	"agromarket/internal/db"
	"agromarket/internal/dispatch"
	"agromarket/internal/kafka"
	"agromarket/internal/logger"
	"agromarket/internal/reporting"
	"agromarket/internal/repository/postgresql"
	"agromarket/internal/server"
)

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	cfg := config.Load()

	zl := logger.New(os.Getenv("APP_ENV"))
	defer func() { _ = zl.Sync() }()

	database, err := db.NewDb(ctx, cfg)
	if err != nil {
		zl.Fatal("database init failed", zap.Error(err))
	}
	defer database.GetPool().Close()

	if err := db.InitAdmin(ctx, database, cfg); err != nil {
		zl.Fatal("admin account init failed", zap.Error(err))
	}

	orderRepo := postgresql.NewOrderRepo(database)
	pickupRepo := postgresql.NewPickupRepo(database)
	driverRepo := postgresql.NewDriverRepo(database)
	activityRepo := postgresql.NewActivityLogRepo(database)
	outboxRepo := postgresql.NewOutboxTaskRepo(cfg.OutboxMaxAttempts)
	userRepo := postgresql.NewUserRepo(database)

	pickupCache := cache.NewPickupCache(pickupRepo)
	if err := pickupCache.LoadInitialData(ctx); err != nil {
		zl.Fatal("pickup cache warmup failed", zap.Error(err))
	}

	tracker := dispatch.NewAvailabilityTracker(pickupRepo, driverRepo, cfg.LegacyDriverAvailability)
	dispatchService := dispatch.NewService(
		database, orderRepo, pickupRepo, driverRepo, activityRepo, outboxRepo,
		tracker, pickupCache, cfg.AuditTopic, zl,
	)
	reportingService := reporting.NewService(pickupRepo, orderRepo, driverRepo, activityRepo)

	var producer kafka.Producer
	if os.Getenv("AUDIT_PRODUCER") == "console" {
		producer = kafka.NewConsoleProducer()
	} else {
		producer = kafka.NewWriterProducer(cfg.KafkaBrokers)
	}
	publisher := kafka.NewPublisher(database, outboxRepo, producer, kafka.PublisherConfig{
		PollInterval: cfg.OutboxPollInterval,
		BatchSize:    cfg.OutboxBatchSize,
		MaxAttempts:  cfg.OutboxMaxAttempts,
	})

	srv := server.New(dispatchService, reportingService, userRepo, pickupRepo, pickupCache)

	metricsMux := http.NewServeMux()
	metricsMux.Handle("/metrics", promhttp.Handler())
	metricsServer := &http.Server{Addr: ":" + cfg.MetricsPort, Handler: metricsMux}

	g, gCtx := errgroup.WithContext(ctx)

	g.Go(func() error {
		return srv.Run(gCtx, cfg.AppPort)
	})

	g.Go(func() error {
		log.Printf("Metrics server starting on port %s", cfg.MetricsPort)
		if err := metricsServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			return err
		}
		return nil
	})

	g.Go(func() error {
		publisher.Run(gCtx)
		return nil
	})

	g.Go(func() error {
		<-gCtx.Done()

		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer shutdownCancel()

		if err := srv.Shutdown(shutdownCtx); err != nil {
			zl.Error("server shutdown failed", zap.Error(err))
		}
		if err := metricsServer.Shutdown(shutdownCtx); err != nil {
			zl.Error("metrics server shutdown failed", zap.Error(err))
		}
		publisher.Shutdown()
		return nil
	})

	if err := g.Wait(); err != nil {
		zl.Fatal("service exited with error", zap.Error(err))
	}
	zl.Info("service stopped")
}
