package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"github.com/garrettladley/dealdesk/internal/proxy"
	xredis "github.com/garrettladley/dealdesk/internal/redis"
	"github.com/garrettladley/dealdesk/internal/storage"
	"github.com/garrettladley/dealdesk/internal/xslog"
)

const (
	keyPort = "port"
	keyEnv  = "env"

	shutdownTimeout = 30 * time.Second
)

func main() {
	_ = godotenv.Load()

	logger := xslog.NewLoggerFromEnv(os.Stdout)
	slog.SetDefault(logger)

	ctx := context.Background()
	if err := run(ctx, logger); err != nil {
		logger.ErrorContext(ctx, "fatal error", xslog.Error(err))
		os.Exit(1)
	}
}

func run(ctx context.Context, logger *slog.Logger) error {
	cfg, err := proxy.ReadConfig()
	if err != nil {
		return fmt.Errorf("failed to read config: %w", err)
	}

	origin, err := cfg.Origin()
	if err != nil {
		return err
	}

	backend, err := initBackend(ctx, cfg, logger)
	if err != nil {
		return fmt.Errorf("failed to initialize storage backend: %w", err)
	}
	defer func() {
		if err := backend.Close(); err != nil {
			logger.ErrorContext(ctx, "failed to close backend", xslog.Error(err))
		}
	}()

	handler := proxy.Routes(logger, proxy.NewRewriter(origin), backend)

	server := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       30 * time.Second,
		WriteTimeout:      60 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	done := make(chan os.Signal, 1)
	signal.Notify(done, os.Interrupt, syscall.SIGTERM)

	go func() {
		logger.InfoContext(ctx, "starting proxy server",
			xslog.Version(),
			slog.String(keyPort, cfg.Port),
			xslog.Origin(origin.String()))
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.ErrorContext(ctx, "server error", xslog.Error(err))
		}
	}()

	<-done
	logger.InfoContext(ctx, "shutting down server")

	shutdownCtx, cancel := context.WithTimeout(ctx, shutdownTimeout)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server shutdown failed: %w", err)
	}

	logger.InfoContext(ctx, "server stopped")
	return nil
}

func initBackend(ctx context.Context, cfg proxy.Config, logger *slog.Logger) (storage.Backend, error) {
	if cfg.Env.IsProduction() {
		if cfg.Redis.URL == "" {
			return nil, errors.New("REDIS_URL is required in production")
		}
		client, err := xredis.New(ctx, cfg.Redis)
		if err != nil {
			return nil, fmt.Errorf("failed to initialize redis client: %w", err)
		}
		logger.InfoContext(ctx, "using Redis backend")
		return storage.NewRedisBackend(client, int(cfg.RateLimit.Limit)), nil
	}

	logger.InfoContext(ctx, "using in-memory backend (local development)", slog.String(keyEnv, string(cfg.Env)))
	return storage.NewMemoryBackend(cfg.RateLimit.Limit, cfg.RateLimit.Burst), nil
}
