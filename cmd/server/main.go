// Package main is the entry point for the rice mill API server.
package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/ulule/limiter/v3"

	"ricemill/internal/config"
	"ricemill/internal/core/idempotency"
	"ricemill/internal/core/mill"
	"ricemill/internal/domain"
	"ricemill/internal/domain/auth"
	"ricemill/internal/domain/entries"
	"ricemill/internal/domain/mills"
	"ricemill/internal/domain/registers/stock"
	"ricemill/internal/domain/reports"
	"ricemill/internal/infrastructure/cache"
	v1 "ricemill/internal/infrastructure/http/v1"
	"ricemill/internal/infrastructure/http/v1/dto"
	"ricemill/internal/infrastructure/http/v1/handlers"
	"ricemill/internal/infrastructure/storage/postgres"
	"ricemill/internal/infrastructure/storage/postgres/auth_repo"
	"ricemill/internal/infrastructure/storage/postgres/register_repo"
	"ricemill/internal/infrastructure/storage/postgres/report_repo"
	"ricemill/pkg/logger"
	"ricemill/pkg/numerator"
)

const version = "0.1.0"

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Printf("failed to load config: %v\n", err)
		os.Exit(1)
	}

	// Initialize logger
	log, err := logger.New(logger.Config{
		Level:       cfg.LogLevel,
		Development: cfg.IsDevelopment(),
	})
	if err != nil {
		fmt.Printf("failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	logger.SetDefault(log)

	ctx := context.Background()
	log.Infow("starting ricemill server", "version", version, "env", cfg.AppEnv)

	// --- Database ---
	poolCfg := postgres.DefaultPoolConfig(cfg.DatabaseURL)
	poolCfg.MaxConns = cfg.DBMaxConns
	pool, err := postgres.NewPool(ctx, poolCfg)
	if err != nil {
		log.Fatalw("failed to connect to database", "error", err)
	}
	defer pool.Close()
	log.Info("database connection established")

	txm := postgres.NewTxManager(pool)

	// --- Redis (optional) ---
	var rdb *redis.Client
	if cfg.RedisEnabled() {
		rdb, err = cache.NewClient(ctx, cache.Options{
			Addr:     cfg.RedisAddr,
			Password: cfg.RedisPassword,
			DB:       cfg.RedisDB,
		})
		if err != nil {
			log.Fatalw("failed to connect to redis", "error", err)
		}
		defer rdb.Close()
		log.Infow("redis connection established", "addr", cfg.RedisAddr)
	}

	// --- Validation ---
	if err := dto.RegisterValidations(); err != nil {
		log.Fatalw("failed to register validations", "error", err)
	}

	// --- Auth ---
	millRegistry := mill.NewPostgresRegistry(pool.Unwrap())

	jwtConfig := auth.DefaultJWTConfig(cfg.JWTSecret)
	jwtConfig.AccessTokenTTL = cfg.JWTAccessTTL
	jwtService := auth.NewJWTService(jwtConfig)

	authConfig := auth.DefaultServiceConfig()
	authConfig.RefreshTokenExpiry = cfg.JWTRefreshTTL
	userRepo := auth_repo.NewUserRepo(txm)
	authService := auth.NewService(
		userRepo,
		auth_repo.NewTokenRepo(txm),
		millRegistry,
		txm,
		jwtService,
		authConfig,
	)

	// --- Domain services ---
	auditService, err := postgres.NewAuditService(txm)
	if err != nil {
		log.Fatalw("failed to init audit", "error", err)
	}

	descs := entries.Descriptors()
	stockService := stock.NewService(register_repo.NewStockRepo(txm), txm, stock.SourcesFrom(descs))

	deps := domain.EntryDeps{
		TxManager: txm,
		Stock:     stockService,
		Numerator: numerator.New(txm, nil),
		Audit:     auditService,
	}

	var idemStore idempotency.Store = postgres.NewIdempotencyStore(txm, cfg.IdempotencyTTL)
	var rateStore limiter.Store
	checks := map[string]handlers.Check{
		"database": pool.Ping,
	}
	if rdb != nil {
		deps.Cache = cache.NewSummaryCache(rdb, cfg.SummaryCacheTTL)
		idemStore = cache.NewIdempotencyStore(rdb, cfg.IdempotencyTTL)
		checks["redis"] = func(ctx context.Context) error { return rdb.Ping(ctx).Err() }
		if rateStore, err = cache.NewRateLimitStore(rdb); err != nil {
			log.Fatalw("failed to init rate limit store", "error", err)
		}
	}

	base := handlers.NewBaseHandler()

	// --- Router ---
	router, err := v1.NewRouter(v1.RouterConfig{
		Logger:           log,
		Release:          !cfg.IsDevelopment(),
		JWTValidator:     jwtService,
		AuthService:      authService,
		MillService:      mills.NewService(millRegistry),
		Mills:            millRegistry,
		MillAccess:       userRepo,
		StockService:     stockService,
		ReportService:    reports.NewService(report_repo.NewReportRepo(txm)),
		Audit:            auditService,
		Modules:          v1.EntryHandlers(base, moduleServices(txm, deps)),
		MetadataRegistry: setupMetadataRegistry(),
		Idempotency:      idemStore,
		RateLimit:        cfg.RateLimit,
		RateLimitStore:   rateStore,
		CORSOrigins:      cfg.CORSOrigins,
		HealthChecks:     checks,
		HealthInfo:       func() any { return postgres.GetPoolStats(pool.Unwrap()) },
		Version:          version,
	})
	if err != nil {
		log.Fatalw("failed to build router", "error", err)
	}

	// --- HTTP Server ---
	server := &http.Server{
		Addr:         cfg.HTTPAddr,
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 60 * time.Second, // exports stream up to 10k rows
		IdleTimeout:  60 * time.Second,
	}

	// Start server in goroutine
	go func() {
		log.Infow("server starting", "addr", cfg.HTTPAddr)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalw("server failed", "error", err)
		}
	}()

	// --- Graceful shutdown ---
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("shutting down server...")

	// Give outstanding requests 30 seconds to complete
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Errorw("server forced to shutdown", "error", err)
	}

	log.Info("server stopped")
}
