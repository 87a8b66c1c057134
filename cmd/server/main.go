// Package main is the entry point for the derived-metrics quote service.
// It wires the TTL cache, the Yahoo Finance client, the metrics service and
// the HTTP server, and runs until interrupted.
package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/avramidis/quotemetrics/internal/cache"
	"github.com/avramidis/quotemetrics/internal/clients/yahoo"
	"github.com/avramidis/quotemetrics/internal/config"
	"github.com/avramidis/quotemetrics/internal/modules/metrics"
	"github.com/avramidis/quotemetrics/internal/scheduler"
	"github.com/avramidis/quotemetrics/internal/server"
	"github.com/avramidis/quotemetrics/pkg/logger"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		fallbackLog := logger.New(logger.Config{Level: "info", Pretty: true})
		fallbackLog.Fatal().Err(err).Msg("Failed to load configuration")
	}

	// Initialize logger with config level
	log := logger.New(logger.Config{
		Level:  cfg.LogLevel,
		Pretty: cfg.DevMode,
	})

	log.Info().Msg("Starting quotemetrics")

	// The cache is the only shared mutable state; it lives for the
	// lifetime of the process and is lost on restart.
	store := cache.New()

	// Market-data source
	marketData := yahoo.NewClient(log)

	// Metrics service and HTTP handlers
	svc := metrics.NewService(metrics.Config{
		Cache:           store,
		Source:          marketData,
		Benchmark:       cfg.BenchmarkSymbol,
		SparklinePoints: cfg.SparklinePoints,
		Log:             log,
	})
	handlers := metrics.NewHandlers(svc, log)

	// Scheduler: bust the cache around market open/close so stale
	// previous-session values are not served into the new session.
	sched := scheduler.New(log)
	bustJob := scheduler.NewCacheBustJob(store, log)
	for _, schedule := range cfg.CacheBustSchedules {
		if err := sched.AddJob(schedule, bustJob); err != nil {
			log.Fatal().Err(err).Str("schedule", schedule).Msg("Failed to register cache bust job")
		}
	}
	sched.Start()
	defer sched.Stop()

	// Initialize HTTP server
	srv := server.New(server.Config{
		Port:    cfg.Port,
		Log:     log,
		Cache:   store,
		Metrics: handlers,
		DevMode: cfg.DevMode,
	})

	// Start server in goroutine
	go func() {
		if err := srv.Start(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("Failed to start server")
		}
	}()

	log.Info().Int("port", cfg.Port).Msg("Server started successfully")

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("Shutting down server...")

	// Graceful shutdown
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Error().Err(err).Msg("Server forced to shutdown")
	}

	log.Info().Msg("Server stopped")
}
