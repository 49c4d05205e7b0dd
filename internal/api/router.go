package api

import (
	"context"
	"encoding/json"
	"net/http"
	"runtime"
	"time"

	"github.com/Harshitk-cp/behavenet/internal/api/handlers"
	mw "github.com/Harshitk-cp/behavenet/internal/api/middleware"
	"github.com/Harshitk-cp/behavenet/internal/buildconfig"
	"github.com/Harshitk-cp/behavenet/internal/service"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"
)

const limiterCleanupInterval = 10 * time.Minute

// Pinger reports database health. *pgxpool.Pool satisfies it.
type Pinger interface {
	Ping(ctx context.Context) error
}

// Deps are the collaborators the HTTP surface serves.
type Deps struct {
	Runtime *service.Runtime
	Board   *service.BeliefBoard
	// DB is nil when ticks are kept in memory.
	DB        Pinger
	Logger    *zap.Logger
	RateRPS   float64
	RateBurst int
}

// App holds the router and the state behind /metrics.
type App struct {
	Router    *chi.Mux
	runtime   *service.Runtime
	metrics   *mw.Metrics
	limiter   *mw.RateLimiter
	startTime time.Time
	stopCh    chan struct{}
	done      chan struct{}
}

func NewApp(d Deps) *App {
	networkHandler := handlers.NewNetworkHandler(d.Runtime, d.Logger)
	beliefHandler := handlers.NewBeliefHandler(d.Board)
	goalHandler := handlers.NewGoalHandler(d.Runtime)

	r := chi.NewRouter()
	app := &App{
		Router:    r,
		runtime:   d.Runtime,
		metrics:   &mw.Metrics{},
		limiter:   mw.NewRateLimiter(d.RateRPS, d.RateBurst),
		startTime: time.Now(),
		stopCh:    make(chan struct{}),
		done:      make(chan struct{}),
	}
	go app.cleanupLimiter()

	// Global middleware (order matters)
	r.Use(mw.RequestID)
	r.Use(middleware.RealIP)
	r.Use(app.metrics.Middleware)
	r.Use(mw.Logging(d.Logger))
	r.Use(middleware.Recoverer)
	r.Use(app.limiter.Middleware)

	r.Get("/health", healthHandler(d.DB))
	r.Get("/metrics", app.metricsHandler())

	r.Route("/v1", func(r chi.Router) {
		r.Route("/network", func(r chi.Router) {
			r.Get("/", networkHandler.Get)
			r.Post("/decide", networkHandler.Decide)
			r.Get("/events", networkHandler.Events)
		})
		r.Get("/ticks", networkHandler.Ticks)

		r.Route("/beliefs", func(r chi.Router) {
			r.Get("/", beliefHandler.List)
			r.Put("/{name}", beliefHandler.Set)
		})

		r.Put("/goals/{name}/importance", goalHandler.SetImportance)
	})

	return app
}

// Close stops the limiter cleanup worker.
func (app *App) Close() {
	close(app.stopCh)
	<-app.done
}

func (app *App) cleanupLimiter() {
	defer close(app.done)
	ticker := time.NewTicker(limiterCleanupInterval)
	defer ticker.Stop()
	for {
		select {
		case <-ticker.C:
			app.limiter.Cleanup(limiterCleanupInterval)
		case <-app.stopCh:
			return
		}
	}
}

func healthHandler(db Pinger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		if db != nil {
			if err := db.Ping(r.Context()); err != nil {
				w.WriteHeader(http.StatusServiceUnavailable)
				_ = json.NewEncoder(w).Encode(map[string]string{"status": "error", "error": err.Error()})
				return
			}
		}

		w.WriteHeader(http.StatusOK)
		_ = json.NewEncoder(w).Encode(map[string]any{"status": "ok", "build": buildconfig.Current()})
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
			"request_count":  app.metrics.Requests(),
			"error_count":    app.metrics.Errors(),
			"ticks":          app.runtime.Tick(),
			"events_dropped": app.runtime.DroppedEvents(),
			"goroutines":     runtime.NumGoroutine(),
			"memory": map[string]any{
				"alloc_mb":       float64(memStats.Alloc) / 1024 / 1024,
				"total_alloc_mb": float64(memStats.TotalAlloc) / 1024 / 1024,
				"sys_mb":         float64(memStats.Sys) / 1024 / 1024,
				"num_gc":         memStats.NumGC,
			},
			"go_version": runtime.Version(),
			"version":    buildconfig.Version(),
		}

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		_ = json.NewEncoder(w).Encode(response)
	}
}
