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

	"loan-engine/config"
	httpLayer "loan-engine/http"
	"loan-engine/pkg/logger"
	"loan-engine/repository"
	"loan-engine/service"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		bootLog := logger.New(logger.Config{Level: "error"})
		bootLog.Fatal().Err(err).Msg("invalid configuration")
	}

	log := logger.New(logger.Config{Level: cfg.LogLevel, Pretty: cfg.LogPretty})
	logger.SetGlobalLogger(log)

	cache, deps, closeCache := buildCache(cfg, log)
	defer closeCache()

	loanService := service.NewLoanService(repository.NewLoanRepositoryMemory(), log)
	termRecommendationService := service.NewTermRecommendationService(loanService, log)
	simulationService := service.NewSimulationService(
		repository.NewSimulationRepositoryMemory(), cache, cfg.CacheTTL, log)

	rateLimiter := httpLayer.NewRateLimiter(cfg.RateLimitCapacity, cfg.RateLimitWindow)
	defer rateLimiter.Stop()

	router := httpLayer.NewRouter(httpLayer.RouterConfig{
		Log:            log,
		Limiter:        rateLimiter,
		AllowedOrigins: cfg.CORSAllowedOrigins,
		Routes: httpLayer.APIRoutes(httpLayer.Handlers{
			Loan:       httpLayer.NewLoanHandler(loanService, log),
			Term:       httpLayer.NewTermRecommendationHandler(termRecommendationService, log),
			Simulation: httpLayer.NewSimulationHandler(simulationService, log),
			Health:     httpLayer.NewHealthHandler(deps, log),
		}),
	})

	server := &http.Server{
		Addr:         cfg.Addr(),
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	serverErr := make(chan error, 1)
	go func() {
		log.Info().Str("addr", server.Addr).Msg("loan engine listening")
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-serverErr:
		log.Error().Err(err).Msg("server failed")
		return
	case <-quit:
		log.Info().Msg("shutting down server")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		log.Error().Err(err).Msg("error during server shutdown")
	}

	log.Info().Msg("server exited")
}

// buildCache picks Redis when an address is configured and the in-process
// cache otherwise.
func buildCache(cfg *config.Config, log zerolog.Logger) (repository.CacheRepository, map[string]httpLayer.Pinger, func()) {
	if cfg.RedisAddr == "" {
		log.Info().Msg("using in-memory result cache")
		return repository.NewMemoryCache(), nil, func() {}
	}

	redisCache := repository.NewRedisCache(cfg.RedisAddr, cfg.RedisDB)
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	if err := redisCache.Ping(ctx); err != nil {
		log.Warn().Err(err).Str("addr", cfg.RedisAddr).Msg("redis not reachable, cache misses until it is")
	} else {
		log.Info().Str("addr", cfg.RedisAddr).Msg("using redis result cache")
	}

	closeFn := func() {
		if err := redisCache.Close(); err != nil {
			log.Warn().Err(err).Msg("failed to close redis client")
		}
	}
	return redisCache, map[string]httpLayer.Pinger{"redis": redisCache}, closeFn
}
