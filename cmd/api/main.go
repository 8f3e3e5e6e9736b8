package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/datapulse/identity-api/internal/api"
	mongodb "github.com/datapulse/identity-api/internal/infrastructure/db/mongo"
	redisdb "github.com/datapulse/identity-api/internal/infrastructure/db/redis"
	"github.com/datapulse/identity-api/internal/infrastructure/queue"
	"github.com/datapulse/identity-api/internal/pkg/config"
	"github.com/datapulse/identity-api/pkg/logger"
)

// @title        Identity API
// @version      1.0
// @description  Authentication and account management for teammates and client users.
//
// @securityDefinitions.apikey  BearerAuth
// @in                          header
// @name                        Authorization
func main() {
	cfg := config.Load()

	log := logger.Init(logger.Options{
		Level:  cfg.LogLevel,
		Pretty: cfg.Env == "development",
	})
	log.Info().
		Str("env", cfg.Env).
		Str("port", cfg.Port).
		Msg("starting identity-api")

	ctx := context.Background()

	mongoClient, db, err := mongodb.Connect(ctx, mongodb.Config{
		URI:      cfg.Mongo.URI,
		Database: cfg.Mongo.Database,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("mongodb connection")
	}
	defer func() {
		if err := mongoClient.Disconnect(context.Background()); err != nil {
			log.Error().Err(err).Msg("mongodb disconnect")
		}
	}()

	if err := mongodb.EnsureIndexes(ctx, db); err != nil {
		log.Fatal().Err(err).Msg("mongodb indexes")
	}

	rdb, err := redisdb.Connect(ctx, redisdb.Config{
		Addr:     cfg.Redis.Addr,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("redis connection")
	}
	defer func() {
		if err := rdb.Close(); err != nil {
			log.Error().Err(err).Msg("redis close")
		}
	}()

	auditCtx, stopAudit := context.WithCancel(ctx)
	defer stopAudit()

	auditRepo := mongodb.NewAuditRepository(db)
	audit := queue.NewAuditDispatcher(0, auditRepo, logger.Component("audit"))
	audit.Start(auditCtx)

	e := api.NewRouter(api.Dependencies{
		Config: cfg,
		Mongo:  db,
		Redis:  rdb,
		Audit:  audit,
		Log:    log,
	})

	go func() {
		if err := e.Start(":" + cfg.Port); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("http server")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("shutdown signal received, draining server")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := e.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("server shutdown")
	}

	log.Info().Msg("identity-api stopped")
}
