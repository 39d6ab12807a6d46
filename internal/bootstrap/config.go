package bootstrap

import (
	"errors"
	"fmt"
	"log/slog"
	"os"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"

	"github.com/skillhub/skills-dashboard/config"
)

// InitLogger initializes the structured logger.
func InitLogger() *slog.Logger {
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))
	slog.SetDefault(logger)
	return logger
}

// LoadConfig loads configuration from environment variables.
func LoadConfig() (config.AppConfig, error) {
	// Load .env file if it exists (development)
	if err := godotenv.Load(); err != nil {
		var pathErr *os.PathError
		if !errors.As(err, &pathErr) {
			return config.AppConfig{}, fmt.Errorf("load .env file: %w", err)
		}
	}

	var cfg config.AppConfig
	if err := env.Parse(&cfg); err != nil {
		return cfg, fmt.Errorf("parse config: %w", err)
	}

	cfg.Sanitize()
	return cfg, nil
}

// StorageSummary describes the configured storage backend for startup logs.
func StorageSummary(cfg *config.AppConfig) []any {
	if cfg == nil {
		return nil
	}
	attrs := []any{"storage_backend", string(cfg.Storage.Backend), "storage_ttl", cfg.Storage.TTL}
	switch cfg.Storage.Backend {
	case config.StorageBackendPostgres:
		attrs = append(attrs, "db_host", cfg.Postgres.Host, "db_port", cfg.Postgres.Port, "db_name", cfg.Postgres.Name)
	case config.StorageBackendRedis:
		attrs = append(attrs, "redis_cluster", cfg.Redis.UseCluster, "redis_sentinel", cfg.Redis.UseSentinel)
	case config.StorageBackendMemory:
	}
	return attrs
}
