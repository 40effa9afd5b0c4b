package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"loan-quote/config"
	httpLayer "loan-quote/http"
	"loan-quote/repository"
	"loan-quote/service"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load configuration", "error", err)
		os.Exit(1)
	}

	level, _ := cfg.Level()
	logger := slog.New(slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
	slog.SetDefault(logger)

	quoteRepo := repository.NewQuoteRepositoryMemory(cfg.HistorySize)

	var cache repository.CacheRepository = repository.NewMemoryCache()
	if cfg.RedisAddr != "" {
		redisCache := repository.NewRedisCache(cfg.RedisAddr, cfg.CacheTTL)
		defer redisCache.Close()

		ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		if err := redisCache.Ping(ctx); err != nil {
			logger.Warn("redis not reachable, quotes will be recomputed until it is", "addr", cfg.RedisAddr, "error", err)
		}
		cancel()
		cache = redisCache
	}

	calc := service.NewDefaultCalculator()
	quoteService := service.NewQuoteService(calc, quoteRepo, cache, logger)
	periodAdvisor := service.NewPeriodAdvisor(calc)

	rateLimiter := httpLayer.NewRateLimiter(cfg.RateLimitRPS, cfg.RateLimitBurst)
	defer rateLimiter.Stop()

	router := httpLayer.NewRouter(
		httpLayer.NewQuoteHandler(quoteService),
		httpLayer.NewPeriodHandler(periodAdvisor),
		rateLimiter,
	)

	server := &http.Server{
		Addr:         cfg.ListenAddr,
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	serverErr := make(chan error, 1)
	go func() {
		logger.Info("loan quote API listening", "addr", cfg.ListenAddr)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-serverErr:
		logger.Error("error starting server", "error", err)
		return
	case <-quit:
		logger.Info("shutting down server")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		logger.Error("error during server shutdown", "error", err)
	}

	logger.Info("server exited")
}
