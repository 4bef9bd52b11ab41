package main

import (
	"context"
	"time"

	"github.com/kotonoha-app/kotonoha-api/internal/api"
	"github.com/kotonoha-app/kotonoha-api/internal/infrastructure/config"
	mongodb "github.com/kotonoha-app/kotonoha-api/internal/infrastructure/db/mongo"
	"github.com/kotonoha-app/kotonoha-api/pkg/logger"
)

func main() {
	cfg := config.Load()

	log := logger.Init(logger.Options{
		Level:  cfg.LogLevel,
		Pretty: cfg.Env == "development",
	})

	ctx := context.Background()

	client, db, err := mongodb.Connect(ctx, mongodb.Config{
		URI:      cfg.Mongo.URI,
		Database: cfg.Mongo.Database,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to mongodb")
	}
	defer func() {
		disconnectCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = client.Disconnect(disconnectCtx)
	}()

	if err := mongodb.EnsureIndexes(ctx, db); err != nil {
		log.Fatal().Err(err).Msg("failed to ensure indexes")
	}

	e := api.NewRouter(db, api.Options{
		TokenTTL:      cfg.Auth.TokenTTL,
		LoginDelayMin: cfg.Auth.LoginDelayMin,
		LoginDelayMax: cfg.Auth.LoginDelayMax,
	}, log)

	log.Info().Str("port", cfg.Port).Str("env", cfg.Env).Msg("starting server")
	if err := e.Start(":" + cfg.Port); err != nil {
		log.Fatal().Err(err).Msg("server stopped")
	}
}
