package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/Harshitk-cp/behavenet/internal/api"
	"github.com/Harshitk-cp/behavenet/internal/buildconfig"
	"github.com/Harshitk-cp/behavenet/internal/config"
	"github.com/Harshitk-cp/behavenet/internal/domain"
	"github.com/Harshitk-cp/behavenet/internal/service"
	"github.com/Harshitk-cp/behavenet/internal/store"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"
)

func main() {
	if err := config.Load(); err != nil {
		panic(err)
	}

	cfg := zap.NewProductionConfig()
	if level, err := zap.ParseAtomicLevel(config.LogLevel()); err == nil {
		cfg.Level = level
	}
	logger, err := cfg.Build()
	if err != nil {
		panic(err)
	}
	defer func() { _ = logger.Sync() }()

	ctx := context.Background()

	var ticks domain.TickStore
	var db api.Pinger
	if dbURL := config.DatabaseURL(); dbURL != "" {
		pool, err := pgxpool.New(ctx, dbURL)
		if err != nil {
			logger.Fatal("failed to connect to database", zap.Error(err))
		}
		defer pool.Close()

		if err := pool.Ping(ctx); err != nil {
			logger.Fatal("failed to ping database", zap.Error(err))
		}
		pg := store.NewPGTickStore(pool)
		if err := pg.EnsureSchema(ctx); err != nil {
			logger.Fatal("failed to prepare schema", zap.Error(err))
		}
		logger.Info("connected to database")
		ticks, db = pg, pool
	} else {
		logger.Info("DATABASE_URL not set, keeping tick history in memory", zap.Int("capacity", config.TickHistory()))
		ticks = store.NewMemoryTickStore(config.TickHistory())
	}

	board := service.NewBeliefBoard()
	net, _, err := service.NewSoccerNetwork(config.NetworkName(), config.NetworkParams(), board, logger)
	if err != nil {
		logger.Fatal("failed to build network", zap.Error(err))
	}

	rt := service.NewRuntime(net, ticks, logger)
	rt.SetInterval(config.TickInterval())

	app := api.NewApp(api.Deps{
		Runtime:   rt,
		Board:     board,
		DB:        db,
		Logger:    logger,
		RateRPS:   config.RateLimitRPS(),
		RateBurst: config.RateLimitBurst(),
	})

	rt.Start()

	addr := config.ServerAddr()
	srv := &http.Server{
		Addr:    addr,
		Handler: app.Router,
	}

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		logger.Info("server starting",
			zap.String("addr", addr),
			zap.String("network", net.Name()),
			zap.String("run_id", rt.RunID().String()),
			zap.String("version", buildconfig.Version()),
			zap.String("commit", buildconfig.Commit()))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal("server failed", zap.Error(err))
		}
	}()

	<-quit
	logger.Info("shutting down server")

	rt.Stop()
	app.Close()

	shutdownCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Fatal("server forced to shutdown", zap.Error(err))
	}

	logger.Info("server stopped")
}
