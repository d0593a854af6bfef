package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/stallcraft/backend/api/controllers"
	"github.com/stallcraft/backend/api/routes"
	authsvc "github.com/stallcraft/backend/internal/auth"
	blogsvc "github.com/stallcraft/backend/internal/blogs"
	leadsvc "github.com/stallcraft/backend/internal/leads"
	mediasvc "github.com/stallcraft/backend/internal/media"
	productsvc "github.com/stallcraft/backend/internal/products"
	rashifalsvc "github.com/stallcraft/backend/internal/rashifal"
	testimonialsvc "github.com/stallcraft/backend/internal/testimonials"
	"github.com/stallcraft/backend/pkg/config"
	"github.com/stallcraft/backend/pkg/db"
	"github.com/stallcraft/backend/pkg/logger"
	"github.com/stallcraft/backend/pkg/metrics"
	"github.com/stallcraft/backend/pkg/migrate"
	"github.com/stallcraft/backend/pkg/redis"
	"github.com/stallcraft/backend/pkg/storage/gcs"
)

const shutdownTimeout = 15 * time.Second

func main() {
	logg := logger.New(logger.Options{ServiceName: "api"})

	if err := godotenv.Load(); err != nil {
		logg.Warn(context.Background(), ".env file not found, relying on environment")
	}

	cfg, err := config.Load()
	if err != nil {
		logg.Error(context.Background(), "failed to load config", err)
		os.Exit(1)
	}

	logg = logger.New(logger.Options{
		ServiceName: "api",
		Level:       logger.ParseLevel(cfg.App.LogLevel),
		WarnStack:   cfg.App.LogWarnStack,
	})

	dbClient, err := db.New(context.Background(), cfg.DB, cfg.FeatureFlags, logg)
	if err != nil {
		logg.Error(context.Background(), "failed to bootstrap database", err)
		os.Exit(1)
	}
	defer func() {
		if err := dbClient.Close(); err != nil {
			logg.Error(context.Background(), "error closing database", err)
		}
	}()

	if err := migrate.MaybeRunDev(context.Background(), cfg, logg, dbClient); err != nil {
		logg.Error(context.Background(), "failed to run dev migrations", err)
		os.Exit(1)
	}

	redisClient, err := redis.New(context.Background(), cfg.Redis)
	if err != nil {
		logg.Error(context.Background(), "failed to bootstrap redis", err)
		os.Exit(1)
	}
	defer func() {
		if err := redisClient.Close(); err != nil {
			logg.Error(context.Background(), "error closing redis", err)
		}
	}()

	gcsClient, err := gcs.NewClient(context.Background(), cfg.GCS, cfg.GCP, logg)
	if err != nil {
		logg.Error(context.Background(), "failed to bootstrap object storage", err)
		os.Exit(1)
	}
	bucket := gcsClient.BucketHandle(cfg.GCS.BucketName)

	mediaService, err := mediasvc.NewService(bucket, cfg.GCS.BucketName, cfg.Media, cfg.GCS, logg)
	if err != nil {
		logg.Error(context.Background(), "failed to create media service", err)
		os.Exit(1)
	}

	authService, err := authsvc.NewService(authsvc.NewRepository(dbClient.DB()), cfg.JWT, cfg.Password, logg)
	if err != nil {
		logg.Error(context.Background(), "failed to create auth service", err)
		os.Exit(1)
	}
	if cfg.Admin.Email != "" {
		if _, err := authService.EnsureAdmin(context.Background(), cfg.Admin.Email, cfg.Admin.Password); err != nil {
			logg.Error(context.Background(), "failed to bootstrap admin account", err)
			os.Exit(1)
		}
	}
	blogService, err := blogsvc.NewService(blogsvc.NewRepository(dbClient.DB()), cfg.Cache, mediaService, logg)
	if err != nil {
		logg.Error(context.Background(), "failed to create blog service", err)
		os.Exit(1)
	}
	productService, err := productsvc.NewService(productsvc.NewRepository(dbClient.DB()), cfg.Cache, mediaService, logg)
	if err != nil {
		logg.Error(context.Background(), "failed to create product service", err)
		os.Exit(1)
	}
	testimonialService, err := testimonialsvc.NewService(testimonialsvc.NewRepository(dbClient.DB()), cfg.Cache, mediaService, logg)
	if err != nil {
		logg.Error(context.Background(), "failed to create testimonial service", err)
		os.Exit(1)
	}
	leadService, err := leadsvc.NewService(leadsvc.NewRepository(dbClient.DB()), cfg.Cache, logg)
	if err != nil {
		logg.Error(context.Background(), "failed to create lead service", err)
		os.Exit(1)
	}
	rashifalService, err := rashifalsvc.NewService(rashifalsvc.NewRepository(dbClient.DB()), cfg.Cache, logg)
	if err != nil {
		logg.Error(context.Background(), "failed to create rashifal service", err)
		os.Exit(1)
	}

	httpMetrics := metrics.NewHTTPMetrics(prometheus.DefaultRegisterer)

	readiness := map[string]controllers.Pinger{
		"database": dbClient,
		"redis":    redisClient,
		"storage":  gcsClient,
	}

	router := routes.NewRouter(cfg, logg, httpMetrics, redisClient, readiness, routes.Services{
		Auth:         authService,
		Blogs:        blogService,
		Products:     productService,
		Testimonials: testimonialService,
		Leads:        leadService,
		Rashifal:     rashifalService,
		Media:        mediaService,
	})

	port := os.Getenv("PORT")
	if port == "" {
		port = cfg.App.Port
	}
	addr := ":" + port
	ctx := logg.WithFields(context.Background(), map[string]any{
		"env":  cfg.App.Env,
		"addr": addr,
	})
	logg.Info(ctx, "starting api server")

	server := &http.Server{
		Addr:    addr,
		Handler: router,
	}

	errCh := make(chan error, 1)
	go func() {
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- err
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-errCh:
		logg.Error(ctx, "api server stopped unexpectedly", err)
		os.Exit(1)
	case sig := <-stop:
		logg.Info(logg.WithFields(ctx, map[string]any{"signal": sig.String()}), "shutting down")
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		logg.Error(ctx, "graceful shutdown failed", err)
		os.Exit(1)
	}
	logg.Info(ctx, "server stopped")
}
