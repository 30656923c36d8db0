// Package server boots the application: database, cache, storage, queue,
// the WebSocket hub, the scheduler and finally the HTTP server itself.
package server

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/tyabelawras/api/app/jobs"
	"github.com/tyabelawras/api/app/models"
	"github.com/tyabelawras/api/app/repositories"
	"github.com/tyabelawras/api/app/routes"
	"github.com/tyabelawras/api/app/services"
	"github.com/tyabelawras/api/config"
	"github.com/tyabelawras/api/pkg/cache"
	"github.com/tyabelawras/api/pkg/database"
	"github.com/tyabelawras/api/pkg/event"
	"github.com/tyabelawras/api/pkg/logger"
	"github.com/tyabelawras/api/pkg/metrics"
	"github.com/tyabelawras/api/pkg/middleware"
	"github.com/tyabelawras/api/pkg/orm"
	"github.com/tyabelawras/api/pkg/queue"
	"github.com/tyabelawras/api/pkg/reqid"
	"github.com/tyabelawras/api/pkg/router"
	"github.com/tyabelawras/api/pkg/schedule"
	"github.com/tyabelawras/api/pkg/storage"
	"github.com/tyabelawras/api/pkg/workerpool"
	"github.com/tyabelawras/api/pkg/ws"
)

const (
	queueWorkers      = 4
	uploadPoolSize    = 8
	rateLimitRequests = 200
	shutdownTimeout   = 10 * time.Second
)

// ormCache adapts pkg/cache to orm.Cacher. Keeping the adapter here
// avoids an import cycle between the two packages.
type ormCache struct{}

func (ormCache) Get(key string, dest interface{}) bool { return cache.Get(key, dest) }
func (ormCache) Set(key string, value interface{}, ttl time.Duration) error {
	return cache.Set(key, value, ttl)
}

// Run boots every subsystem and serves HTTP until SIGINT or SIGTERM.
func Run() error {
	if err := config.Load(); err != nil {
		return fmt.Errorf("server: load config: %w", err)
	}

	if uri := config.MongoURI(); uri != "" {
		mh, err := logger.EnableMongo(uri, config.MongoDatabase())
		if err != nil {
			logger.Warn("server: mongo request logs disabled", "error", err)
		} else {
			defer mh.Close()
		}
	}

	if err := database.Connect(); err != nil {
		return err
	}
	if err := autoMigrate(); err != nil {
		return err
	}

	// Redis is optional. Without it the menu cache is skipped and the
	// queue falls back to the in-memory driver.
	if err := cache.Connect(); err != nil {
		logger.Warn("server: redis unavailable, caching disabled", "error", err)
	} else {
		orm.CacheStore = ormCache{}
	}

	storage.Connect()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	bootQueue(ctx)

	hub := ws.NewHub()
	go hub.Run()
	wireOrderBroadcast(hub)

	scheduleTasks()
	schedule.Start(ctx)

	uploads := workerpool.New(uploadPoolSize)
	defer uploads.Shutdown()

	r := router.New()
	r.Use(metrics.Middleware())
	r.Use(middleware.Recovery)
	r.Use(reqid.Middleware())
	r.Use(middleware.Logger)
	r.Use(middleware.CORS(middleware.DefaultCORSOptions()))
	r.Use(middleware.RateLimit(rateLimitRequests, time.Minute))

	r.Get("/metrics", "metrics", metrics.Handler())
	routes.RegisterAPI(r, hub, uploads)

	srv := &http.Server{
		Addr:              ":" + config.AppPort(),
		Handler:           r.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("server: listening", "addr", srv.Addr, "env", config.AppEnv())
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-errCh:
		return fmt.Errorf("server: listen: %w", err)
	case sig := <-quit:
		logger.Info("server: shutting down", "signal", sig.String())
	}

	cancel() // stop queue workers and the scheduler

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer shutdownCancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server: shutdown: %w", err)
	}

	logger.Info("server: stopped")
	return nil
}

// autoMigrate keeps dev databases in sync; production schemas go through
// the migrate command.
func autoMigrate() error {
	return database.DB.AutoMigrate(
		&models.User{},
		&models.MenuItem{},
		&models.DeliveryArea{},
		&models.Order{},
		&models.OrderItem{},
		&models.Announcement{},
		&models.GalleryImage{},
		&models.Video{},
		&models.WorkingTime{},
		&models.Rating{},
		&models.Contact{},
		&models.NewsletterSubscriber{},
	)
}

func bootQueue(ctx context.Context) {
	queue.UseDB(database.DB)
	jobs.RegisterAll()

	if cache.RDB != nil {
		queue.SetDriver(queue.NewRedisDriver(cache.RDB))
		logger.Info("server: queue using redis driver")
	}

	queue.StartWorkers(ctx, queueWorkers)
}

// wireOrderBroadcast relays order-created events to the admin dashboards.
func wireOrderBroadcast(hub *ws.Hub) {
	event.Listen(services.EventOrderCreated, func(payload interface{}) {
		msg := map[string]interface{}{
			"type":  "new_order",
			"order": payload,
		}
		if err := hub.BroadcastJSON(msg); err != nil {
			logger.Error("server: order broadcast failed", "error", err)
			return
		}
		metrics.OrderBroadcasts.Inc()
	})
}

func scheduleTasks() {
	catalog := repositories.NewCatalogRepository()

	// Keep the menu cache warm so the first request after an expiry
	// doesn't pay the database round trip.
	schedule.Every(5).Minutes().Name("menu-cache-warm").WithoutOverlapping().Run(func() {
		if _, err := catalog.AllMenuItems(); err != nil {
			logger.Warn("schedule: menu cache warm failed", "error", err)
		}
	})
}
