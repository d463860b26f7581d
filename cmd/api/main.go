package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"

	"eventpass/internal/api"
	"eventpass/internal/config"
	"eventpass/internal/event"
	"eventpass/internal/queue"
	"eventpass/internal/store"
)

func main() {
	if err := godotenv.Load(); err == nil {
		log.Println("loaded environment from .env")
	}
	cfg := config.Load()

	if cfg.Env == "production" || cfg.Env == "prod" {
		gin.SetMode(gin.ReleaseMode)
	}

	if err := run(cfg); err != nil {
		log.Fatalf("server failed: %v", err)
	}
}

func run(cfg config.App) error {
	ctx := context.Background()

	snaps, healthy, cleanup, err := openSnapshots(ctx, cfg)
	if err != nil {
		return err
	}
	defer cleanup()

	var q queue.Queue
	if cfg.QueueBackend == "redis" {
		q = queue.NewRedisQueue(store.NewRedis(cfg.RedisAddr).Client, "")
	} else {
		q = queue.NewInMemory(64)
	}

	managers := api.Managers{
		Attendees:     event.NewAttendeeManager(ctx, snaps),
		Schedule:      event.NewScheduleManager(ctx, snaps),
		Feedback:      event.NewFeedbackManager(ctx, snaps),
		Notifications: event.NewNotificationManager(ctx, snaps, q),
		Resources:     event.NewResourceManager(ctx, snaps),
		Settings:      event.NewSettingsManager(ctx, snaps),
		Analytics:     event.NewAnalyticsManager(ctx, snaps),
	}

	srv := &http.Server{
		Addr:         ":" + cfg.HTTPPort,
		Handler:      api.NewServer(cfg, managers, healthy).Router(),
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		log.Printf("starting server on :%s (snapshots: %s)", cfg.HTTPPort, cfg.SnapshotBackend)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("server error: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Println("shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Printf("server forced shutdown: %v", err)
	}

	log.Println("server exited")
	return nil
}

// openSnapshots selects the snapshot backend. The returned health func is nil
// for backends with nothing to probe.
func openSnapshots(ctx context.Context, cfg config.App) (store.Snapshots, func(context.Context) bool, func(), error) {
	switch cfg.SnapshotBackend {
	case "memory":
		log.Println("warning: memory snapshots, nothing persists across restarts")
		return store.NewMemory(), nil, func() {}, nil

	case "redis":
		r := store.NewRedis(cfg.RedisAddr)
		return store.NewRedisSnapshots(r.Client, ""), r.Healthy, func() { _ = r.Client.Close() }, nil

	case "postgres":
		db, err := store.NewDB(cfg.DatabaseURL)
		if err != nil {
			return nil, nil, nil, err
		}
		snaps := store.NewPostgresSnapshots(db.Client)
		if err := snaps.EnsureSchema(ctx); err != nil {
			_ = db.Close()
			return nil, nil, nil, err
		}
		return snaps, db.Healthy, func() { _ = db.Close() }, nil

	default:
		f, err := store.NewFile(cfg.DataDir)
		if err != nil {
			return nil, nil, nil, err
		}
		return f, nil, func() {}, nil
	}
}
