// Package main is the entry point for the rice mill background worker.
// It reconciles the stock ledger of every active mill and cleans up expired rows.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"ricemill/internal/config"
	"ricemill/internal/core/mill"
	"ricemill/internal/domain/entries"
	"ricemill/internal/domain/registers/stock"
	"ricemill/internal/infrastructure/cache"
	"ricemill/internal/infrastructure/storage/postgres"
	"ricemill/internal/infrastructure/storage/postgres/auth_repo"
	"ricemill/internal/infrastructure/storage/postgres/register_repo"
	"ricemill/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Printf("failed to load config: %v\n", err)
		os.Exit(1)
	}

	log, err := logger.New(logger.Config{
		Level:       cfg.LogLevel,
		Development: cfg.IsDevelopment(),
	})
	if err != nil {
		fmt.Printf("failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	logger.SetDefault(log)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	log.Info("starting ricemill worker")

	poolCfg := postgres.DefaultPoolConfig(cfg.DatabaseURL)
	poolCfg.MaxConns = 4
	poolCfg.MinConns = 1
	pool, err := postgres.NewPool(ctx, poolCfg)
	if err != nil {
		log.Fatalw("failed to connect to database", "error", err)
	}
	defer pool.Close()

	txm := postgres.NewTxManager(pool)

	w := &Worker{
		mills:       mill.NewPostgresRegistry(pool.Unwrap()),
		ledger:      stock.NewService(register_repo.NewStockRepo(txm), txm, stock.SourcesFrom(entries.Descriptors())),
		tokens:      auth_repo.NewTokenRepo(txm),
		idempotency: postgres.NewIdempotencyStore(txm, cfg.IdempotencyTTL),
		locker:      noLock{},
		log:         log.WithComponent("worker"),
		interval:    cfg.ReconcileInterval,
		cleanup:     time.Hour,
		stats:       func(ctx context.Context) { postgres.LogPoolStats(ctx, pool.Unwrap()) },
	}

	if cfg.RedisEnabled() {
		rdb, err := cache.NewClient(ctx, cache.Options{
			Addr:     cfg.RedisAddr,
			Password: cfg.RedisPassword,
			DB:       cfg.RedisDB,
		})
		if err != nil {
			log.Fatalw("failed to connect to redis", "error", err)
		}
		defer rdb.Close()
		// The lock outlives one mill's reconcile; a crashed worker frees it on expiry.
		w.locker = cache.NewMillLocker(rdb, 5*time.Minute)
		log.Info("reconcile lock enabled")
	}

	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		w.Run(ctx)
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("shutting down worker...")
	cancel()

	wg.Wait()
	log.Info("worker stopped")
}
