// Command api runs the Lu Estilo REST backend: JWT authentication and
// client-record management over MongoDB, with Redis-backed login throttling.
//
// @title        Lu Estilo API
// @version      1.0.0
// @description  JWT-protected REST API for authentication and client records.
//
// @securityDefinitions.apikey  BearerAuth
// @in                          header
// @name                        Authorization
package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/luestilo/retail-api/internal/api"
	mongodb "github.com/luestilo/retail-api/internal/infrastructure/db/mongo"
	redisdb "github.com/luestilo/retail-api/internal/infrastructure/db/redis"
	"github.com/luestilo/retail-api/internal/infrastructure/queue"
	"github.com/luestilo/retail-api/internal/pkg/config"
	"github.com/luestilo/retail-api/pkg/logger"
)

const shutdownTimeout = 10 * time.Second

func main() {
	cfg := config.Load()
	log := logger.Init(logger.Options{
		Level:  cfg.LogLevel,
		Pretty: cfg.Env == "development",
	})

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// --- MongoDB ---
	client, db, err := mongodb.Connect(ctx, mongodb.Config{
		URI:      cfg.Mongo.URI,
		Database: cfg.Mongo.Database,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("mongodb connection failed")
	}
	defer func() {
		_ = client.Disconnect(context.Background())
	}()

	userRepo := mongodb.NewUserRepository(db)
	clientRepo := mongodb.NewClientRepository(db)
	if err := userRepo.EnsureIndexes(ctx); err != nil {
		log.Fatal().Err(err).Msg("failed to create user indexes")
	}
	if err := clientRepo.EnsureIndexes(ctx); err != nil {
		log.Fatal().Err(err).Msg("failed to create client indexes")
	}

	// --- Redis ---
	rdb, err := redisdb.Connect(ctx, redisdb.Config{
		Addr: cfg.Redis.Addr,
		DB:   cfg.Redis.DB,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("redis connection failed")
	}
	defer func() {
		_ = rdb.Close()
	}()

	limiter := redisdb.NewLoginLimiter(rdb, cfg.Login.MaxAttempts, cfg.Login.Window)

	// --- Audit trail ---
	auditRepo := mongodb.NewAuditRepository(db)
	audit := queue.NewDispatcher(cfg.AuditWorkers, auditRepo, log)
	audit.Start(ctx)

	// --- HTTP server ---
	e := api.NewRouter(cfg, api.Deps{
		Users:   userRepo,
		Clients: clientRepo,
		Limiter: limiter,
		Audit:   audit,
		DB:      db,
		Redis:   rdb,
		Logger:  log,
	})

	go func() {
		log.Info().Str("port", cfg.Port).Str("env", cfg.Env).Msg("starting server")
		if err := e.Start(":" + cfg.Port); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("server error")
		}
	}()

	<-ctx.Done()
	log.Info().Msg("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("shutdown error")
	}
}
