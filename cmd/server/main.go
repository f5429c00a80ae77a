package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/aicv/cv-service/internal/api"
	"github.com/aicv/cv-service/internal/infrastructure/config"
	mongodb "github.com/aicv/cv-service/internal/infrastructure/db/mongo"
	redisdb "github.com/aicv/cv-service/internal/infrastructure/db/redis"
	"github.com/aicv/cv-service/internal/infrastructure/llm"
	"github.com/aicv/cv-service/internal/infrastructure/queue"
	"github.com/aicv/cv-service/pkg/logger"
)

func main() {
	cfg := config.Load()

	log := logger.Init(logger.Options{
		Level:  cfg.LogLevel,
		Pretty: cfg.Env == "development",
	})

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// --- Stores ---
	client, db, err := mongodb.Connect(ctx, mongodb.Config{
		URI:      cfg.Mongo.URI,
		Database: cfg.Mongo.Database,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("mongo connection failed")
	}
	defer func() { _ = client.Disconnect(context.Background()) }()

	rdb, err := redisdb.Connect(ctx, redisdb.Config{
		Addr: cfg.Redis.Addr,
		DB:   cfg.Redis.DB,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("redis connection failed")
	}
	defer func() { _ = rdb.Close() }()

	// --- Upstream generator ---
	gemini, err := llm.NewGeminiClient(ctx, cfg.Gemini.APIKey, cfg.Gemini.Model)
	if err != nil {
		log.Fatal().Err(err).Msg("gemini client failed")
	}
	defer func() { _ = gemini.Close() }()

	// --- Indexes (best effort on startup) ---
	if err := mongodb.NewAccountRepository(db).EnsureIndexes(ctx); err != nil {
		log.Warn().Err(err).Msg("accounts index creation failed")
	}
	if err := mongodb.NewProfileRepository(db).EnsureIndexes(ctx); err != nil {
		log.Warn().Err(err).Msg("profiles index creation failed")
	}
	generationRepo := mongodb.NewGenerationRepository(db)
	if err := generationRepo.EnsureIndexes(ctx); err != nil {
		log.Warn().Err(err).Msg("generations index creation failed")
	}

	// --- Audit writer ---
	dispatcher := queue.NewDispatcher(0, generationRepo, logger.Component("audit"))
	dispatcher.Start(ctx)

	// --- HTTP server ---
	e := api.NewRouter(db, rdb, gemini, dispatcher, cfg, logger.Component("api"))

	go func() {
		if err := e.Start(":" + cfg.Port); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("server stopped")
		}
	}()
	log.Info().Str("port", cfg.Port).Str("env", cfg.Env).Msg("aicv api listening")

	<-ctx.Done()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("graceful shutdown failed")
	}
}
