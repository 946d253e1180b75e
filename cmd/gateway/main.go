package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"golang.org/x/crypto/acme/autocert"

	_ "github.com/photomarket/gateway/docs"
	"github.com/photomarket/gateway/internal/api"
	"github.com/photomarket/gateway/internal/core/service"
	"github.com/photomarket/gateway/internal/infrastructure/config"
	mongodb "github.com/photomarket/gateway/internal/infrastructure/db/mongo"
	redisdb "github.com/photomarket/gateway/internal/infrastructure/db/redis"
	"github.com/photomarket/gateway/internal/infrastructure/queue"
	"github.com/photomarket/gateway/internal/infrastructure/upstream"
	"github.com/photomarket/gateway/pkg/logger"
)

// @title           PhotoMarket Gateway API
// @version         1.0
// @description     Session-holding gateway in front of the PhotoMarket marketplace backend.
// @BasePath        /
func main() {
	// .env is optional; real deployments rely on the environment.
	_ = godotenv.Load()

	cfg := config.Load()
	log := logger.Init(logger.Options{
		Level:  cfg.LogLevel,
		Pretty: cfg.Env == "development",
	})

	secret := cfg.SessionSecret
	if secret == "" {
		if cfg.Env != "development" {
			log.Fatal().Msg("SESSION_SECRET is required outside development")
		}
		secret = "dev-only-session-secret"
		log.Warn().Msg("SESSION_SECRET not set, using insecure development secret")
	}

	ctx := context.Background()

	rdb, err := redisdb.Connect(ctx, redisdb.Config{
		Addr:     cfg.Redis.Addr,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("redis connection failed")
	}
	defer func() { _ = rdb.Close() }()

	mongoClient, db, err := mongodb.Connect(ctx, mongodb.Config{
		URI:      cfg.Mongo.URI,
		Database: cfg.Mongo.Database,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("mongo connection failed")
	}
	defer func() {
		disconnectCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = mongoClient.Disconnect(disconnectCtx)
	}()

	backend := upstream.NewClient(cfg.Upstream.BaseURL, cfg.Upstream.Timeout, log)

	// Audit trail workers outlive individual requests; they stop on shutdown.
	workerCtx, stopWorkers := context.WithCancel(context.Background())
	defer stopWorkers()

	activityService := service.NewActivityService(mongodb.NewActivityRepository(db), log)
	dispatcher := queue.NewDispatcher(cfg.ActivityWorkers, activityService, log)
	dispatcher.Start(workerCtx)

	e := api.NewRouter(api.RouterConfig{
		SessionSecret: secret,
		SessionTTL:    cfg.SessionTTL,
		CookieSecure:  cfg.CookieSecure,
	}, db, rdb, backend, dispatcher, log)

	go func() {
		var err error
		if cfg.AutoTLS.Enabled {
			e.AutoTLSManager.HostPolicy = autocert.HostWhitelist(cfg.AutoTLS.Domain)
			e.AutoTLSManager.Cache = autocert.DirCache(cfg.AutoTLS.CacheDir)
			log.Info().Str("domain", cfg.AutoTLS.Domain).Msg("starting gateway with auto TLS")
			err = e.StartAutoTLS(":443")
		} else {
			log.Info().Str("port", cfg.Port).Msg("starting gateway")
			err = e.Start(":" + cfg.Port)
		}
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("server failed")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("shutdown incomplete")
	}
	stopWorkers()

	log.Info().Msg("gateway stopped")
}
