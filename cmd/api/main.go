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
	"github.com/riskibarqy/creator-booking/internal/app"
	"github.com/riskibarqy/creator-booking/internal/config"
	"github.com/riskibarqy/creator-booking/internal/observability"
	"github.com/riskibarqy/creator-booking/internal/platform/logging"
	"github.com/riskibarqy/creator-booking/internal/platform/secrets"
)

const shutdownTimeout = 10 * time.Second

func main() {
	bootLogger := logging.NewJSON(logging.LevelInfo)

	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		bootLogger.Warn("load .env", "error", err)
	}
	if secretID := os.Getenv("SECRETS_MANAGER_SECRET_ID"); secretID != "" {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		keys, err := secrets.ExportToEnv(ctx, secretID)
		cancel()
		if err != nil {
			bootLogger.Error("load secrets", "secret_id", secretID, "error", err)
			os.Exit(1)
		}
		bootLogger.Info("secrets exported to env", "secret_id", secretID, "keys", len(keys))
	}

	cfg, err := config.Load()
	if err != nil {
		bootLogger.Error("load config", "error", err)
		os.Exit(1)
	}

	logger := logging.NewJSON(cfg.LogLevel).With("service", cfg.ServiceName, "env", cfg.AppEnv)
	logging.SetDefault(logger)
	defer func() { _ = logger.Sync() }()

	telemetry, err := observability.Start(context.Background(), cfg, logger)
	if err != nil {
		logger.Error("start observability", "error", err)
		os.Exit(1)
	}

	srv, closeDB, err := app.NewHTTPServer(cfg, logger)
	if err != nil {
		logger.Error("build app", "error", err)
		os.Exit(1)
	}

	go func() {
		logger.Info("http server starting", "addr", cfg.HTTPAddr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("http server failed", "error", err)
			os.Exit(1)
		}
	}()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()
	<-ctx.Done()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("graceful shutdown failed", "error", err)
	}
	if err := closeDB(); err != nil {
		logger.Error("close database", "error", err)
	}
	if err := telemetry.Shutdown(shutdownCtx); err != nil {
		logger.Error("stop observability", "error", err)
	}

	logger.Info("http server stopped")
}
