// @title        Reflectify API
// @version      1.0
// @description  Journaling sessions with mood and spending analysis.
// @BasePath     /
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

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"github.com/reflectify/reflectify-api/internal/api"
	"github.com/reflectify/reflectify-api/internal/core/ports"
	"github.com/reflectify/reflectify-api/internal/core/service"
	"github.com/reflectify/reflectify-api/internal/infrastructure/config"
	"github.com/reflectify/reflectify-api/internal/infrastructure/db/mongo"
	redisdb "github.com/reflectify/reflectify-api/internal/infrastructure/db/redis"
	"github.com/reflectify/reflectify-api/internal/infrastructure/genai"
	"github.com/reflectify/reflectify-api/internal/infrastructure/http/handlers"
	"github.com/reflectify/reflectify-api/pkg/logger"
)

const serviceName = "reflectify-api"

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// 1. Config
	cfg, err := config.Load(ctx)
	if err != nil {
		bootLog := logger.New(logger.Options{Service: serviceName})
		bootLog.Fatal().Err(err).Msg("failed to load configuration")
	}

	// 2. Logger
	log := logger.New(logger.Options{
		Level:   cfg.LogLevel,
		Pretty:  !cfg.IsProduction(),
		Service: serviceName,
		Env:     cfg.Env,
	})

	if err := run(ctx, cfg, log); err != nil {
		log.Fatal().Err(err).Msg("server stopped with error")
	}
}

// run connects the dependencies, serves HTTP until ctx is cancelled and then
// shuts down within cfg.ShutdownTimeout.
func run(ctx context.Context, cfg *config.Config, log zerolog.Logger) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	log.Info().Str("port", cfg.Port).Msg("starting")

	// 3. MongoDB
	mongoClient, db, err := mongo.Connect(ctx, mongo.Config{
		URI:      cfg.Mongo.URI,
		Database: cfg.Mongo.Database,
		AppName:  serviceName,
	})
	if err != nil {
		return err
	}
	defer func() {
		if err := mongoClient.Disconnect(context.Background()); err != nil {
			log.Warn().Err(err).Msg("mongodb disconnect")
		}
	}()

	users := mongo.NewUserRepository(db)
	blacklist := mongo.NewTokenBlacklist(db)
	emotions := mongo.NewEmotionRepository(db)
	if err := mongo.EnsureIndexes(ctx, users, blacklist, emotions); err != nil {
		return err
	}

	// 4. Redis (optional)
	var (
		rdb   *redis.Client
		cache ports.RevocationCache
	)
	if cfg.Redis.Addr != "" {
		rdb, err = redisdb.Connect(ctx, redisdb.Config{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		if err != nil {
			log.Warn().Err(err).Msg("redis unavailable, revocation checks use mongodb only")
		} else {
			defer rdb.Close()
			cache = redisdb.NewRevocationCache(rdb)
		}
	} else {
		log.Info().Msg("redis not configured, revocation cache disabled")
	}

	// 5. Text generation
	generator, err := genai.New(ctx, genai.Config{
		APIKey:       cfg.Analysis.APIKey,
		EmotionModel: cfg.Analysis.EmotionModel,
		ExpenseModel: cfg.Analysis.ExpenseModel,
		Timeout:      cfg.Analysis.Timeout,
		MaxRetries:   cfg.Analysis.MaxRetries,
		Backoff:      cfg.Analysis.Backoff,
	}, log)
	if err != nil {
		return err
	}

	// 6. Services
	sessions := service.NewSessionIssuer(cfg.Auth.JWTSecret, cfg.Auth.TokenTTL)
	authService := service.NewAuthService(users, blacklist, cache, sessions, log.With().Str("component", "auth").Logger())
	analysisService := service.NewAnalysisService(generator, emotions, log.With().Str("component", "analysis").Logger())

	// 7. HTTP
	e := api.NewRouter(api.Deps{
		Auth:        authService,
		Analysis:    analysisService,
		Readiness:   handlers.NewHealthDependenciesHandler(mongoClient, rdb),
		CORSOrigins: cfg.CORSOrigins,
		Log:         log.With().Str("component", "http").Logger(),
	})

	serveErr := make(chan error, 1)
	go func() {
		log.Info().Str("addr", ":"+cfg.Port).Msg("http server listening")
		if err := e.Start(":" + cfg.Port); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serveErr <- err
		}
		close(serveErr)
	}()

	select {
	case <-ctx.Done():
		log.Info().Msg("shutdown initiated")
	case err := <-serveErr:
		if err != nil {
			return err
		}
	}

	shutdownCtx, cancelShutdown := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancelShutdown()
	if err := e.Shutdown(shutdownCtx); err != nil {
		return err
	}
	log.Info().Msg("stopped")
	return nil
}
