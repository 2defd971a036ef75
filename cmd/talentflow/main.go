package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/JitendraDubey2004/TalentFlow/internal/api"
	"github.com/JitendraDubey2004/TalentFlow/internal/cache"
	"github.com/JitendraDubey2004/TalentFlow/internal/cleanup"
	"github.com/JitendraDubey2004/TalentFlow/internal/config"
	"github.com/JitendraDubey2004/TalentFlow/internal/seed"
	"github.com/JitendraDubey2004/TalentFlow/internal/storage"
)

func main() {
	// Setup structured logging
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))
	slog.SetDefault(logger)

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	slog.Info("starting talentflow",
		"host", cfg.Server.Host,
		"port", cfg.Server.Port,
		"storage", cfg.Storage.Driver,
	)

	// Create context for initialization
	initCtx, initCancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer initCancel()

	var repo storage.Repository
	switch cfg.Storage.Driver {
	case "postgres":
		slog.Info("running database migrations", "dir", cfg.Storage.MigrationsDir)
		if err := storage.RunMigrations(initCtx, cfg.Storage.DSN, cfg.Storage.MigrationsDir); err != nil {
			slog.Error("failed to run migrations", "error", err)
			os.Exit(1)
		}

		pg, err := storage.NewPostgresRepository(initCtx, storage.PostgresConfig{
			DSN:          cfg.Storage.DSN,
			MaxOpenConns: int32(cfg.Storage.MaxOpenConns),
			MaxIdleConns: int32(cfg.Storage.MaxIdleConns),
		})
		if err != nil {
			slog.Error("failed to create database repository", "error", err)
			os.Exit(1)
		}
		slog.Info("database connected successfully")
		repo = pg
	default:
		slog.Info("using in-memory storage")
		repo = storage.NewMemoryRepository()
	}

	// Optional redis read cache for assessment schemas
	if cfg.Redis.Enabled {
		cached, err := cache.New(repo, cfg.Redis.Address, cfg.Redis.Password, cfg.Redis.DB, cfg.Redis.TTL)
		if err != nil {
			slog.Error("failed to connect to redis", "error", err)
			os.Exit(1)
		}
		slog.Info("redis cache enabled", "address", cfg.Redis.Address)
		repo = cached
	}

	// Seed demo data
	if cfg.Seed.Enabled {
		if err := seed.Apply(initCtx, repo, cfg.Seed.FixturesDir); err != nil {
			slog.Error("failed to seed demo data", "error", err)
			os.Exit(1)
		}
	}

	// Create context with cancellation
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Start submission retention worker
	retention := cleanup.NewRetention(repo, cfg.Retention.MaxAge, cfg.Retention.Interval)
	retention.Start(ctx)

	// Setup HTTP server
	server := api.NewServer(cfg.Server, repo, api.NewFaultInjector(cfg.Faults))
	httpServer := &http.Server{
		Addr:         fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port),
		Handler:      server.Router(),
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Start server in goroutine
	go func() {
		slog.Info("HTTP server starting", "addr", httpServer.Addr)
		if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			slog.Error("HTTP server error", "error", err)
			os.Exit(1)
		}
	}()

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	slog.Info("shutting down gracefully...")

	// Cancel context to stop background workers
	cancel()

	// Shutdown HTTP server with timeout
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer shutdownCancel()

	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		slog.Error("HTTP server shutdown error", "error", err)
	}

	if err := repo.Close(); err != nil {
		slog.Error("repository close error", "error", err)
	}

	slog.Info("talentflow stopped")
}
