package api

import (
	"encoding/json"
	"net/http"
	"runtime"
	"time"

	"github.com/Harshitk-cp/brainbase/internal/api/handlers"
	mw "github.com/Harshitk-cp/brainbase/internal/api/middleware"
	"github.com/Harshitk-cp/brainbase/internal/buildconfig"
	"github.com/Harshitk-cp/brainbase/internal/service"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"
)

// Options configures the HTTP surface.
type Options struct {
	Database *service.Database
	// Loader backs POST /v1/reload; nil disables it.
	Loader handlers.SnapshotLoader
	// Pool is pinged by /health when the postgres snapshot source is used.
	Pool           *pgxpool.Pool
	AdminAPIKey    string
	RateLimitRPS   float64
	RateLimitBurst int
}

// App holds the router and the state shared by its handlers.
type App struct {
	Router    *chi.Mux
	db        *service.Database
	pool      *pgxpool.Pool
	metrics   *mw.MetricsCollector
	startTime time.Time
	done      chan struct{}
}

func NewApp(opts Options, logger *zap.Logger) *App {
	brainHandler := handlers.NewBrainHandler(opts.Database)
	adminHandler := handlers.NewAdminHandler(opts.Database, opts.Loader, logger)

	r := chi.NewRouter()

	app := &App{
		Router:    r,
		db:        opts.Database,
		pool:      opts.Pool,
		metrics:   mw.NewMetricsCollector(),
		startTime: time.Now(),
		done:      make(chan struct{}),
	}

	limiter := mw.NewRateLimiter(opts.RateLimitRPS, opts.RateLimitBurst)

	// Global middleware (order matters)
	r.Use(mw.RequestID)
	r.Use(middleware.RealIP)
	r.Use(app.metrics.Middleware)
	r.Use(mw.Logging(logger))
	r.Use(middleware.Recoverer)
	r.Use(mw.RateLimit(limiter, app.done))

	r.Get("/health", app.healthHandler())
	r.Get("/metrics", app.metricsHandler())

	r.Route("/v1", func(r chi.Router) {
		r.Get("/collisions", brainHandler.Collisions)

		r.Route("/brains", func(r chi.Router) {
			r.Get("/", brainHandler.List)
			r.Route("/{id}", func(r chi.Router) {
				r.Get("/", brainHandler.GetByID)
				r.Get("/handlers", brainHandler.Handlers)
				r.Get("/uses/{useID}", brainHandler.GetUse)
			})
		})

		// Rebuilding the database is an admin operation.
		r.Group(func(r chi.Router) {
			r.Use(mw.AdminKeyAuth(opts.AdminAPIKey))
			r.Post("/reset", adminHandler.Reset)
			r.Post("/reload", adminHandler.Reload)
		})
	})

	return app
}

// Close stops the router's background goroutines.
func (app *App) Close() {
	close(app.done)
}

func (app *App) healthHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")

		if app.pool != nil {
			if err := app.pool.Ping(r.Context()); err != nil {
				w.WriteHeader(http.StatusServiceUnavailable)
				_ = json.NewEncoder(w).Encode(map[string]string{"status": "error", "error": err.Error()})
				return
			}
		}

		w.WriteHeader(http.StatusOK)
		_ = json.NewEncoder(w).Encode(map[string]any{
			"status": "ok",
			"build":  buildconfig.Current(),
			"brains": app.db.Stats().Brains,
		})
	}
}

func (app *App) metricsHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var memStats runtime.MemStats
		runtime.ReadMemStats(&memStats)

		uptime := time.Since(app.startTime)

		response := map[string]any{
			"uptime_seconds": uptime.Seconds(),
			"uptime_human":   uptime.Round(time.Second).String(),
			"requests":       app.metrics.Counts(),
			"database":       app.db.Stats(),
			"goroutines":     runtime.NumGoroutine(),
			"memory": map[string]any{
				"alloc_mb":       float64(memStats.Alloc) / 1024 / 1024,
				"total_alloc_mb": float64(memStats.TotalAlloc) / 1024 / 1024,
				"sys_mb":         float64(memStats.Sys) / 1024 / 1024,
				"num_gc":         memStats.NumGC,
			},
			"go_version": runtime.Version(),
		}

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		_ = json.NewEncoder(w).Encode(response)
	}
}
