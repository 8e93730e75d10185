package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/invensys/inventory-api/internal/api"
	"github.com/invensys/inventory-api/internal/bootstrap"
	mongodb "github.com/invensys/inventory-api/internal/infrastructure/db/mongo"
	redisdb "github.com/invensys/inventory-api/internal/infrastructure/db/redis"
	"github.com/invensys/inventory-api/internal/infrastructure/storage"
	"github.com/invensys/inventory-api/internal/pkg/config"
	"github.com/invensys/inventory-api/pkg/logger"
)

const shutdownTimeout = 10 * time.Second

func main() {
	cfg := config.Load()

	log := logger.Init(logger.Options{
		Level:  cfg.LogLevel,
		Pretty: cfg.Env == "development",
	})

	if cfg.JWTSecret == "" {
		log.Fatal().Msg("JWT_SECRET must be set")
	}

	ctx := context.Background()

	client, db, err := mongodb.Connect(ctx, mongodb.Config{
		URI:      cfg.Mongo.URI,
		Database: cfg.Mongo.Database,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("mongo connection failed")
	}
	defer func() {
		if err := client.Disconnect(ctx); err != nil {
			log.Error().Err(err).Msg("mongo disconnect failed")
		}
	}()

	rdb, err := redisdb.Connect(ctx, redisdb.Config{
		Addr: cfg.Redis.Addr,
		DB:   cfg.Redis.DB,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("redis connection failed")
	}
	defer rdb.Close()

	files, err := storage.NewDiskStore(cfg.Storage.Dir, log)
	if err != nil {
		log.Fatal().Err(err).Msg("storage initialisation failed")
	}

	seeder := bootstrap.NewSeeder(
		mongodb.NewUserRepository(db),
		mongodb.NewRoleRepository(db),
		cfg.Admin.Username,
		cfg.Admin.Password,
		log,
	)
	if err := seeder.Run(ctx); err != nil {
		log.Fatal().Err(err).Msg("seeding failed")
	}

	e := api.NewRouter(db, rdb, files, cfg, log)

	go func() {
		if err := e.Start(":" + cfg.Port); err != nil {
			log.Info().Err(err).Msg("server stopped")
		}
	}()
	log.Info().Str("port", cfg.Port).Str("env", cfg.Env).Msg("server started")

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit

	shutdownCtx, cancel := context.WithTimeout(ctx, shutdownTimeout)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("graceful shutdown failed")
	}
}
