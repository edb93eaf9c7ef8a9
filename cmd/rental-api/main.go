// Package main is the entry point of the house rental API server.
//
// @title                      House Rental API
// @version                    1.0
// @description                House rental marketplace: renters, agents, listings, reviews and furniture moving requests.
// @BasePath                   /
// @securityDefinitions.apikey BearerAuth
// @in                         header
// @name                       Authorization
// @description                Type "Bearer" followed by a space and the access token.
package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"

	"github.com/homerent/rental-api/internal/api"
	"github.com/homerent/rental-api/internal/api/handler"
	"github.com/homerent/rental-api/internal/core/service"
	"github.com/homerent/rental-api/internal/infrastructure/db/mongo"
	"github.com/homerent/rental-api/internal/infrastructure/db/redis"
	"github.com/homerent/rental-api/internal/infrastructure/queue"
	"github.com/homerent/rental-api/internal/pkg/config"
	"github.com/homerent/rental-api/pkg/logger"
)

const readHeaderTimeout = 5 * time.Second

func main() {
	cfg := config.Load()

	log := logger.Init(logger.Options{
		Level:   cfg.LogLevel,
		Pretty:  cfg.LogPretty,
		Service: "rental-api",
	})

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg, log); err != nil {
		log.Error().Err(err).Msg("server exited with error")
		stop()
		os.Exit(1)
	}
	log.Info().Msg("server shutdown complete")
}

func run(ctx context.Context, cfg *config.Config, log zerolog.Logger) error {
	mongoClient, db, err := mongo.Connect(ctx, mongo.Config{URI: cfg.Mongo.URI, Database: cfg.Mongo.Database})
	if err != nil {
		return err
	}
	defer func() {
		dctx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
		defer cancel()
		if err := mongoClient.Disconnect(dctx); err != nil {
			log.Error().Err(err).Msg("mongo disconnect")
		}
	}()

	redisClient, err := redis.Connect(ctx, redis.Config{
		Addr:     cfg.Redis.Addr,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})
	if err != nil {
		return err
	}
	defer func() {
		if err := redisClient.Close(); err != nil {
			log.Error().Err(err).Msg("redis close")
		}
	}()

	principals := mongo.NewPrincipalRepository(db)
	listings := mongo.NewListingRepository(db)
	reviews := mongo.NewReviewRepository(db)
	agentStats := mongo.NewAgentStatsRepository(db)
	moving := mongo.NewMovingRequestRepository(db)

	if err := mongo.EnsureIndexes(ctx, principals, listings, reviews, agentStats, moving); err != nil {
		return err
	}

	hasher := service.NewBcryptHasher(cfg.Auth.BcryptCost)
	codec, err := service.NewTokenCodec(service.TokenConfig{
		Secret:    cfg.Auth.SecretKey,
		Algorithm: cfg.Auth.Algorithm,
		TTL:       cfg.Auth.AccessTokenTTL,
	})
	if err != nil {
		return err
	}
	guard := service.NewGuard(codec, service.NewPrincipalResolver(principals))

	dispatcher := queue.NewDispatcher(cfg.Ratings.Workers,
		service.NewRatingRefresher(reviews, principals),
		logger.Component("rating-dispatcher"))
	dispatcher.Start(ctx)

	svc := api.Services{
		Auth:       service.NewAuthService(principals, hasher, codec, logger.Component("auth")),
		Accounts:   service.NewAccountService(principals, hasher, logger.Component("accounts")),
		Listings:   service.NewListingService(listings, redis.NewViewDedup(redisClient, cfg.Redis.ViewDedupTTL), logger.Component("listings")),
		Reviews:    service.NewReviewService(reviews, principals, dispatcher, logger.Component("reviews")),
		AgentStats: service.NewAgentStatsService(agentStats, principals),
		Moving:     service.NewMovingRequestService(moving, logger.Component("furniture-requests")),
		Dashboard:  service.NewDashboardService(principals, listings, moving),
	}

	e := api.NewRouter(api.RouterConfig{
		Logger:      logger.Component("http"),
		CORSOrigins: cfg.CORSOrigins,
		Guard:       guard,
		Checks: []handler.DependencyCheck{
			{Name: "mongo", Ping: func(ctx context.Context) error { return mongoClient.Ping(ctx, nil) }},
			{Name: "redis", Ping: func(ctx context.Context) error { return redisClient.Ping(ctx).Err() }},
		},
	}, svc)

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           e,
		ReadHeaderTimeout: readHeaderTimeout,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Info().Str("addr", srv.Addr).Str("env", cfg.Env).Msg("starting HTTP server")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	log.Info().Msg("shutting down HTTP server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return err
	}
	return nil
}
