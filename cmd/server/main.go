package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/joho/godotenv"

	"github.com/garrettladley/dealdesk/internal/migrations/postgres"
	xredis "github.com/garrettladley/dealdesk/internal/redis"
	"github.com/garrettladley/dealdesk/internal/server"
	"github.com/garrettladley/dealdesk/internal/server/handler"
	"github.com/garrettladley/dealdesk/internal/service/dashboard"
	"github.com/garrettladley/dealdesk/internal/storage"
	"github.com/garrettladley/dealdesk/internal/xslog"
)

const (
	keyPort        = "port"
	keyGracePeriod = "grace_period"
	keyCacheTTL    = "cache_ttl"

	shutdownGracePeriod = 2 * time.Second
	shutdownTimeout     = 30 * time.Second
	// the backend has no rate limiting of its own; the proxy does that.
	backendRate = 0
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
	cfg, err := server.ReadConfig()
	if err != nil {
		return fmt.Errorf("failed to read config: %w", err)
	}

	var checks []handler.Check

	repo, closeRepo, err := initDashboard(ctx, cfg, logger)
	if err != nil {
		return fmt.Errorf("failed to initialize dashboard storage: %w", err)
	}
	defer closeRepo()
	if p, ok := repo.(*storage.Postgres); ok {
		checks = append(checks, handler.Check{Name: "postgres", Ping: p.Ping})
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
	checks = append(checks, handler.Check{Name: "cache", Ping: backend.Ping})

	logger.InfoContext(ctx, "snapshot cache configured", slog.Duration(keyCacheTTL, cfg.CacheTTL))
	svc := dashboard.NewCached(repo, backend, cfg.CacheTTL)

	routes := server.Routes(logger, handler.NewDashboard(svc), handler.NewHealth(checks...))

	shutdownCoordinator := server.NewShutdownCoordinator(shutdownGracePeriod)

	httpServer := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           routes,
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       30 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       60 * time.Second,
		BaseContext: func(_ net.Listener) context.Context {
			return shutdownCoordinator.BaseContext()
		},
	}

	done := make(chan os.Signal, 1)
	signal.Notify(done, os.Interrupt, syscall.SIGTERM)

	go func() {
		logger.InfoContext(ctx, "starting server",
			xslog.Version(),
			slog.String(keyPort, cfg.Port))
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.ErrorContext(ctx, "server error", xslog.Error(err))
		}
	}()

	<-done
	logger.InfoContext(ctx, "shutdown signal received, initiating graceful shutdown")

	shutdownCoordinator.InitiateShutdown()
	logger.InfoContext(ctx, "grace period complete, shutting down server",
		slog.Duration(keyGracePeriod, shutdownGracePeriod))

	shutdownCtx, cancel := context.WithTimeout(ctx, shutdownTimeout)
	defer cancel()

	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server shutdown failed: %w", err)
	}

	logger.InfoContext(ctx, "server stopped")
	return nil
}

func initBackend(ctx context.Context, cfg server.Config, logger *slog.Logger) (storage.Backend, error) {
	if cfg.Redis.URL == "" {
		if cfg.Env.IsProduction() {
			return nil, errors.New("REDIS_URL is required in production")
		}
		logger.InfoContext(ctx, "using in-memory backend (local development)")
		return storage.NewMemoryBackend(backendRate, 0), nil
	}

	client, err := xredis.New(ctx, cfg.Redis)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize redis client: %w", err)
	}
	logger.InfoContext(ctx, "using Redis backend")
	return storage.NewRedisBackend(client, backendRate), nil
}

func initDashboard(ctx context.Context, cfg server.Config, logger *slog.Logger) (storage.Dashboard, func(), error) {
	if cfg.Database.URL == "" {
		if cfg.Env.IsProduction() {
			return nil, nil, errors.New("DATABASE_URL is required in production")
		}
		logger.InfoContext(ctx, "no database configured, serving demo data")
		return storage.Demo{}, func() {}, nil
	}

	logger.InfoContext(ctx, "initializing PostgreSQL")

	pool, err := pgxpool.New(ctx, cfg.Database.URL)
	if err != nil {
		return nil, nil, fmt.Errorf("connect: %w", err)
	}

	if err := postgres.Apply(ctx, pool); err != nil {
		pool.Close()
		return nil, nil, fmt.Errorf("migrations: %w", err)
	}

	return storage.NewPostgres(pool), pool.Close, nil
}
