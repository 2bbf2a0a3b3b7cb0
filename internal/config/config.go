// Package config loads process configuration from the environment.
// A .env file in the working directory is read first when present.
package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Config is the full runtime configuration of the server and worker.
type Config struct {
	AppEnv   string
	LogLevel string
	HTTPAddr string

	DatabaseURL string
	DBMaxConns  int32

	JWTSecret     string
	JWTAccessTTL  time.Duration
	JWTRefreshTTL time.Duration

	RedisAddr       string
	RedisPassword   string
	RedisDB         int
	SummaryCacheTTL time.Duration

	RateLimit      string
	CORSOrigins    []string
	IdempotencyTTL time.Duration

	ReconcileInterval time.Duration
}

// IsDevelopment reports whether the process runs in development mode.
func (c *Config) IsDevelopment() bool {
	return c.AppEnv == "development"
}

// RedisEnabled reports whether a Redis address is configured.
func (c *Config) RedisEnabled() bool {
	return c.RedisAddr != ""
}

// Load reads .env (if any) and the environment.
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("load .env: %w", err)
	}
	return FromEnv(os.Getenv)
}

// FromEnv builds Config using lookup for every variable.
func FromEnv(lookup func(string) string) (*Config, error) {
	e := env{lookup: lookup}

	cfg := &Config{
		AppEnv:   e.str("APP_ENV", "development"),
		LogLevel: e.str("LOG_LEVEL", "info"),
		HTTPAddr: e.str("HTTP_ADDR", ":8080"),

		DatabaseURL: e.required("DATABASE_URL"),
		DBMaxConns:  int32(e.int("DB_MAX_CONNS", 20)),

		JWTSecret:     e.required("JWT_SECRET"),
		JWTAccessTTL:  e.duration("JWT_ACCESS_TTL", 15*time.Minute),
		JWTRefreshTTL: e.duration("JWT_REFRESH_TTL", 7*24*time.Hour),

		RedisAddr:       e.str("REDIS_ADDR", ""),
		RedisPassword:   e.str("REDIS_PASSWORD", ""),
		RedisDB:         e.int("REDIS_DB", 0),
		SummaryCacheTTL: e.duration("SUMMARY_CACHE_TTL", 10*time.Minute),

		RateLimit:      e.str("RATE_LIMIT", "300-M"),
		CORSOrigins:    e.list("CORS_ORIGINS", []string{"*"}),
		IdempotencyTTL: e.duration("IDEMPOTENCY_TTL", 24*time.Hour),

		ReconcileInterval: e.duration("RECONCILE_INTERVAL", 10*time.Minute),
	}

	if len(e.errs) > 0 {
		return nil, errors.Join(e.errs...)
	}
	if cfg.DBMaxConns < 1 {
		return nil, fmt.Errorf("DB_MAX_CONNS must be positive")
	}
	return cfg, nil
}

type env struct {
	lookup func(string) string
	errs   []error
}

func (e *env) str(key, def string) string {
	if v := strings.TrimSpace(e.lookup(key)); v != "" {
		return v
	}
	return def
}

func (e *env) required(key string) string {
	v := strings.TrimSpace(e.lookup(key))
	if v == "" {
		e.errs = append(e.errs, fmt.Errorf("required environment variable %s not set", key))
	}
	return v
}

func (e *env) int(key string, def int) int {
	v := strings.TrimSpace(e.lookup(key))
	if v == "" {
		return def
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		e.errs = append(e.errs, fmt.Errorf("%s: invalid integer %q", key, v))
		return def
	}
	return n
}

func (e *env) duration(key string, def time.Duration) time.Duration {
	v := strings.TrimSpace(e.lookup(key))
	if v == "" {
		return def
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		e.errs = append(e.errs, fmt.Errorf("%s: invalid duration %q", key, v))
		return def
	}
	return d
}

func (e *env) list(key string, def []string) []string {
	v := strings.TrimSpace(e.lookup(key))
	if v == "" {
		return def
	}
	var out []string
	for _, part := range strings.Split(v, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
