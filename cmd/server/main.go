package main

import (
	"context"
	"errors"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/usermgmt/user-service/internal/api"
	"github.com/usermgmt/user-service/internal/infrastructure/config"
	mongodb "github.com/usermgmt/user-service/internal/infrastructure/db/mongo"
	"github.com/usermgmt/user-service/pkg/logger"
)

const shutdownTimeout = 10 * time.Second

func main() {
	cfg := config.Load()

	log := logger.Init(logger.Options{
		Level:  cfg.LogLevel,
		Pretty: cfg.Environment == "development",
	})

	log.Info().
		Str("app", cfg.AppName).
		Str("environment", cfg.Environment).
		Str("version", cfg.Version).
		Int("max_users", cfg.MaxUsers).
		Msg("starting")

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	client, db, err := mongodb.Connect(ctx, mongodb.Config{
		URI:      cfg.Mongo.URI,
		Database: cfg.Mongo.Database,
	})
	if err != nil {
		log.Fatal().Err(err).Str("uri", cfg.Mongo.URI).Msg("mongo connection failed")
	}
	defer func() { _ = client.Disconnect(context.Background()) }()

	repo := mongodb.NewUserRepository(client, db)
	if err := repo.EnsureIndexes(ctx); err != nil {
		log.Fatal().Err(err).Msg("index creation failed")
	}

	e := api.NewRouter(cfg, repo, log)

	go func() {
		if err := e.Start(":" + cfg.Port); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("server stopped")
		}
	}()
	log.Info().Str("port", cfg.Port).Msg("server listening")

	<-ctx.Done()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("shutdown failed")
	}
}
