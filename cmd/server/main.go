package main

import (
	"context"
	"errors"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/dbaops/inventory-api/internal/api"
	"github.com/dbaops/inventory-api/internal/core/ports"
	"github.com/dbaops/inventory-api/internal/infrastructure/config"
	"github.com/dbaops/inventory-api/internal/infrastructure/credstore"
	"github.com/dbaops/inventory-api/internal/infrastructure/db/postgres"
	redisdb "github.com/dbaops/inventory-api/internal/infrastructure/db/redis"
	"github.com/dbaops/inventory-api/internal/infrastructure/queue"
	"github.com/dbaops/inventory-api/internal/infrastructure/session"
	"github.com/dbaops/inventory-api/pkg/logger"

	goredis "github.com/redis/go-redis/v9"
)

const shutdownTimeout = 10 * time.Second

func main() {
	cfg := config.Load()
	log := logger.Init(logger.Options{
		Level:  cfg.LogLevel,
		Pretty: cfg.Env == "development",
	})

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	creds, err := credstore.LoadFile(cfg.CredentialsFile)
	if err != nil {
		log.Fatal().Err(err).Msg("load credentials")
	}

	pool, err := postgres.Connect(ctx, postgres.Config{
		URL:     cfg.Postgres.URL,
		Timeout: cfg.Postgres.Timeout,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("connect postgres")
	}
	defer pool.Close()

	var (
		sessions ports.SessionStore
		rdb      *goredis.Client
	)
	switch cfg.Session.Backend {
	case "redis":
		rdb, err = redisdb.Connect(ctx, redisdb.Config{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		if err != nil {
			log.Fatal().Err(err).Msg("connect redis")
		}
		defer func() { _ = rdb.Close() }()
		sessions = redisdb.NewSessionStore(rdb, cfg.Session.TTL)
	default:
		sessions = session.NewMemoryStore(cfg.Session.TTL)
	}

	dispatcher := queue.NewDispatcher(cfg.Audit.Workers, postgres.NewAuditRepository(pool), log)
	dispatcher.Start(ctx)

	e := api.NewRouter(pool, rdb, sessions, creds, dispatcher, cfg.Postgres.Timeout, log)

	go func() {
		log.Info().
			Str("port", cfg.Port).
			Str("session_backend", cfg.Session.Backend).
			Msg("inventory gateway listening")
		if err := e.Start(":" + cfg.Port); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("server stopped")
		}
	}()

	<-ctx.Done()
	log.Info().Msg("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("graceful shutdown failed")
	}
}
