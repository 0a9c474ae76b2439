package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog/log"

	"github.com/cloud-ru/fincalc-go/internal/config"
	"github.com/cloud-ru/fincalc-go/internal/history"
	"github.com/cloud-ru/fincalc-go/internal/identity"
	"github.com/cloud-ru/fincalc-go/internal/logging"
	"github.com/cloud-ru/fincalc-go/internal/server"
	"github.com/cloud-ru/fincalc-go/internal/tools"
	"github.com/cloud-ru/fincalc-go/internal/tracing"
)

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		logging.Setup("info", false)
		log.Fatal().Err(err).Msg("Failed to load configuration")
	}

	logging.Setup(cfg.LogLevel, cfg.IsProduction())

	ctx := context.Background()

	tracer, shutdownTracing, err := tracing.InitTracing(ctx, cfg.OTELServiceName, cfg.OTELEndpoint, cfg.OTELInsecure)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to initialize tracing")
	}

	provider, err := identityProvider(cfg)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to create identity provider")
	}

	store, closeStore, err := openStore(ctx, cfg)
	if err != nil {
		log.Fatal().Err(err).Str("backend", cfg.StoreBackend).Msg("Failed to open calculation store")
	}
	log.Info().Str("backend", cfg.StoreBackend).Msg("Calculation store ready")

	registry := tools.NewRegistry(cfg, tracer)
	srv := server.New(cfg, registry, history.NewService(store), provider, tracer)

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	serverErr := make(chan error, 1)
	go func() {
		serverErr <- srv.Start()
	}()

	failed := waitForStop(quit, serverErr)

	log.Info().Msg("Shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("Server forced to shutdown")
	}
	if err := shutdownTracing(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("Failed to flush traces")
	}

	closeStore()

	if failed {
		os.Exit(1)
	}
	log.Info().Msg("Server exited")
}

// waitForStop ждёт сигнала завершения или остановки сервера; true, если сервер упал
func waitForStop(quit <-chan os.Signal, serverErr <-chan error) bool {
	select {
	case sig := <-quit:
		log.Info().Str("signal", sig.String()).Msg("Received shutdown signal")
		return false
	case err := <-serverErr:
		if err != nil {
			log.Error().Err(err).Msg("Server failed")
			return true
		}
		return false
	}
}

// openStore выбирает хранилище истории по STORE_BACKEND
func openStore(ctx context.Context, cfg *config.Config) (history.Store, func(), error) {
	switch cfg.StoreBackend {
	case config.StoreRedis:
		store, client := history.NewRedisStore(cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB)
		if err := client.Ping(ctx).Err(); err != nil {
			client.Close()
			return nil, nil, err
		}
		return store, func() { client.Close() }, nil

	case config.StorePostgres:
		pool, err := pgxpool.New(ctx, cfg.DatabaseURL)
		if err != nil {
			return nil, nil, err
		}
		if err := pool.Ping(ctx); err != nil {
			pool.Close()
			return nil, nil, err
		}
		store := history.NewPostgresStore(pool)
		if err := store.EnsureSchema(ctx); err != nil {
			pool.Close()
			return nil, nil, err
		}
		return store, pool.Close, nil

	case config.StoreS3:
		store, err := history.NewS3Store(ctx, cfg.S3)
		if err != nil {
			return nil, nil, err
		}
		return store, func() {}, nil
	}

	return history.NewMemoryStore(), func() {}, nil
}

// identityProvider: Auth0, если настроен; иначе статический токен для разработки; иначе никто
func identityProvider(cfg *config.Config) (identity.Provider, error) {
	if cfg.Auth0Domain != "" {
		p, err := identity.NewAuth0Provider(cfg.Auth0Domain, cfg.Auth0Audience)
		if err != nil {
			return nil, err
		}
		log.Info().Str("domain", cfg.Auth0Domain).Msg("Auth0 identity provider configured")
		return p, nil
	}
	if cfg.DevAuthToken != "" {
		if cfg.IsProduction() {
			log.Warn().Msg("DEV_AUTH_TOKEN is set in production")
		}
		return identity.NewStaticProvider(cfg.DevAuthToken, identity.Identity{
			UID:         "dev-user",
			Email:       "dev@localhost",
			DisplayName: "Developer",
		}), nil
	}
	log.Warn().Msg("No identity provider configured: saving calculations is disabled")
	return identity.DenyAll{}, nil
}
