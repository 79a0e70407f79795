package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os/signal"
	"syscall"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/robfig/cron/v3"
	"go.uber.org/zap"

	"github.com/reviewpal/reviewpal/internal/config"
	"github.com/reviewpal/reviewpal/internal/delivery/rest"
	"github.com/reviewpal/reviewpal/internal/infra/postgres"
	"github.com/reviewpal/reviewpal/internal/infra/postgres/repository"
	"github.com/reviewpal/reviewpal/internal/logger"
	"github.com/reviewpal/reviewpal/internal/service"
	"github.com/reviewpal/reviewpal/internal/storage"
)

func main() {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		log.Fatal(err)
	}

	logg, err := logger.New(cfg)
	if err != nil {
		log.Fatal(err)
	}
	defer func() { _ = logg.Sync() }()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	dsn, err := cfg.DB.DSN()
	if err != nil {
		logg.Fatal("database is not configured", zap.Error(err))
	}

	pool, err := postgres.NewPool(ctx, dsn, postgres.PoolConfig{
		MaxConns:        int32(cfg.DB.MaxConnections),
		MaxConnLifetime: cfg.DB.MaxConnLifetime,
	})
	if err != nil {
		logg.Fatal("failed to connect to database", zap.Error(err))
	}
	defer pool.Close()

	reviewerRepo := repository.NewReviewerRepository(pool, cfg.DB.QueryTimeout)
	sessions := storage.NewSessionStore()

	reviewerService := service.NewReviewerService(reviewerRepo)
	reviewService := service.NewReviewService(reviewerRepo, sessions)

	handler := rest.NewHandler(logg, reviewerService, reviewService, cfg.Review.PassThreshold)
	auth := rest.NewAuthMiddleware(logg, cfg.Auth.JWTSecret)

	if cfg.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}
	router := gin.New()
	router.Use(gin.Recovery(), rest.RequestLogger(logg))
	handler.Register(router, auth)

	// Periodically drop review sessions whose owner walked away.
	sweeper := cron.New()
	_, err = sweeper.AddFunc(cfg.Review.SweepSchedule, func() {
		if n := sessions.Sweep(cfg.Review.SessionMaxIdle); n > 0 {
			logg.Info("swept abandoned review sessions", zap.Int("count", n))
		}
	})
	if err != nil {
		logg.Fatal("invalid sweep schedule", zap.Error(err))
	}
	sweeper.Start()
	defer sweeper.Stop()

	srv := &http.Server{
		Addr:    cfg.HTTP.Addr,
		Handler: router,
	}

	go func() {
		logg.Info("http server started", zap.String("addr", cfg.HTTP.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logg.Fatal("http server failed", zap.Error(err))
		}
	}()

	<-ctx.Done()
	logg.Info("shutdown signal received")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.HTTP.ShutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logg.Error("graceful shutdown failed", zap.Error(err))
	}
}
