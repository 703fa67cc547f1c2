package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/Harshitk-cp/brainbase/internal/api"
	"github.com/Harshitk-cp/brainbase/internal/buildconfig"
	"github.com/Harshitk-cp/brainbase/internal/color"
	"github.com/Harshitk-cp/brainbase/internal/config"
	"github.com/Harshitk-cp/brainbase/internal/domain"
	"github.com/Harshitk-cp/brainbase/internal/module"
	"github.com/Harshitk-cp/brainbase/internal/schema"
	"github.com/Harshitk-cp/brainbase/internal/service"
	"github.com/Harshitk-cp/brainbase/internal/store"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

func newLogger(level string) (*zap.Logger, error) {
	cfg := zap.NewProductionConfig()
	lvl, err := zapcore.ParseLevel(level)
	if err != nil {
		return nil, err
	}
	cfg.Level = zap.NewAtomicLevelAt(lvl)
	return cfg.Build()
}

func main() {
	if err := config.Load(); err != nil {
		panic(err)
	}

	logger, err := newLogger(config.LogLevel())
	if err != nil {
		logger, _ = zap.NewProduction()
		logger.Warn("invalid LOG_LEVEL, using info", zap.String("level", config.LogLevel()))
	}
	defer func() { _ = logger.Sync() }()

	logger.Info("starting brainbase", zap.String("version", buildconfig.Version()))

	ctx := context.Background()

	registry := module.NewRegistry()
	schemas := schema.NewProvider()
	for _, b := range module.Builtins(logger) {
		if err := registry.Register(b.Key, b.Module); err != nil {
			logger.Fatal("failed to register builtin module", zap.String("key", b.Key), zap.Error(err))
		}
		schemas.Set(b.Key, b.Properties)
	}

	if path := config.SchemaPath(); path != "" {
		n, err := schemas.LoadFile(path)
		if err != nil {
			logger.Fatal("failed to load behavior schemas", zap.Error(err))
		}
		logger.Info("loaded behavior schemas", zap.String("path", path), zap.Int("behaviors", n))
	}

	db := service.NewDatabase(registry, schemas, color.NewHexDecoder(), logger)

	var (
		snapshots domain.SnapshotStore
		pool      *pgxpool.Pool
		watchPath string
	)
	switch source := config.SnapshotSource(); source {
	case "file":
		fs, err := store.NewFileSnapshotStore(config.SnapshotPath())
		if err != nil {
			logger.Fatal("failed to open snapshot file", zap.Error(err))
		}
		snapshots = fs
		watchPath = fs.Path()
	case "postgres":
		dbURL := config.DatabaseURL()
		if dbURL == "" {
			logger.Fatal("DATABASE_URL is required for the postgres snapshot source")
		}
		pool, err = pgxpool.New(ctx, dbURL)
		if err != nil {
			logger.Fatal("failed to connect to database", zap.Error(err))
		}
		defer pool.Close()

		if err := pool.Ping(ctx); err != nil {
			logger.Fatal("failed to ping database", zap.Error(err))
		}
		logger.Info("connected to database")
		snapshots = store.NewPostgresSnapshotStore(pool)
	default:
		logger.Fatal("unknown SNAPSHOT_SOURCE", zap.String("source", source))
	}

	loader := service.NewLoaderService(snapshots, db, logger)
	loader.SetInterval(config.SnapshotPollInterval())
	if watchPath != "" {
		loader.SetWatchPath(watchPath)
	}

	ids, err := loader.Load(ctx)
	switch {
	case errors.Is(err, store.ErrNotFound):
		logger.Warn("no snapshot available yet, starting empty")
	case err != nil:
		logger.Fatal("failed to load snapshot", zap.Error(err))
	default:
		logger.Info("snapshot loaded", zap.Int("collision_brains", len(ids)))
	}

	reload := config.SnapshotReload()
	if reload {
		if err := loader.Start(); err != nil {
			logger.Fatal("failed to start snapshot reloader", zap.Error(err))
		}
	}

	app := api.NewApp(api.Options{
		Database:       db,
		Loader:         loader,
		Pool:           pool,
		AdminAPIKey:    config.AdminAPIKey(),
		RateLimitRPS:   config.RateLimitRPS(),
		RateLimitBurst: config.RateLimitBurst(),
	}, logger)

	addr := config.ServerAddr()
	srv := &http.Server{
		Addr:    addr,
		Handler: app.Router,
	}

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		logger.Info("server starting", zap.String("addr", addr))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal("server failed", zap.Error(err))
		}
	}()

	<-quit
	logger.Info("shutting down server")

	if reload {
		loader.Stop()
	}
	app.Close()

	shutdownCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Fatal("server forced to shutdown", zap.Error(err))
	}

	logger.Info("server stopped")
}
