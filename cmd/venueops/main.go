// Package main запускает HTTP-сервер venueops.
package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/mmeshcher/venueops/internal/cache"
	"github.com/mmeshcher/venueops/internal/config"
	"github.com/mmeshcher/venueops/internal/handler"
	"github.com/mmeshcher/venueops/internal/logger"
	"github.com/mmeshcher/venueops/internal/middleware"
	"github.com/mmeshcher/venueops/internal/repository"
	"github.com/mmeshcher/venueops/internal/service"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "venueops: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Parse()
	if err != nil {
		return fmt.Errorf("configuration error: %w", err)
	}

	log, err := logger.New(cfg.LogLevel, cfg.LogFormat)
	if err != nil {
		return fmt.Errorf("logger error: %w", err)
	}
	defer log.Sync()

	repo, err := repository.NewPostgresRepository(cfg.DatabaseURI)
	if err != nil {
		log.Error("database initialization error", zap.Error(err))
		return fmt.Errorf("database initialization error: %w", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	opts := []service.Option{service.WithRoomCount(cfg.RoomCount)}
	if cfg.RedisAddr != "" {
		rdb := redis.NewClient(&redis.Options{Addr: cfg.RedisAddr})
		defer rdb.Close()

		catalog, err := cache.NewCatalog(ctx, &cache.Config{RedisClient: rdb, TTL: cfg.CatalogTTL})
		if err != nil {
			log.Warn("catalog cache disabled", zap.String("addr", cfg.RedisAddr), zap.Error(err))
		} else {
			opts = append(opts, service.WithCache(catalog))
		}
	}

	svc := service.NewService(repo, log, opts...)
	defer svc.Close()

	limit, err := middleware.RateLimit(cfg.RateLimit, log)
	if err != nil {
		return fmt.Errorf("rate limit configuration error: %w", err)
	}

	h := handler.NewHandler(svc, log, handler.WithRateLimit(limit))

	server := &http.Server{
		Addr:              cfg.RunAddress,
		Handler:           h.SetupRouter(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	g, ctx := errgroup.WithContext(ctx)

	// Фоновая проверка превышения тарифа в комнатах
	g.Go(func() error {
		svc.StartOverrunWatch(ctx, cfg.OverrunCheckInterval)
		return nil
	})

	// Запуск HTTP-сервера
	g.Go(func() error {
		log.Info("starting venueops server",
			zap.String("addr", cfg.RunAddress),
			zap.Int("rooms", cfg.RoomCount),
		)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			return fmt.Errorf("server error: %w", err)
		}
		return nil
	})

	// Graceful shutdown при отмене контекста (сигнал или ошибка в другой горутине)
	g.Go(func() error {
		<-ctx.Done()
		log.Info("shutting down server...")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		if err := server.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("server shutdown error: %w", err)
		}
		log.Info("server stopped gracefully")
		return nil
	})

	if err := g.Wait(); err != nil {
		log.Error("application terminated with error", zap.Error(err))
		return err
	}
	return nil
}
