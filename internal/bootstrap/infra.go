package bootstrap

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"

	"github.com/redis/go-redis/v9"

	"github.com/skillhub/skills-dashboard/config"
	httpx "github.com/skillhub/skills-dashboard/internal/http"
)

// Infrastructure holds the connections opened for the configured storage backend.
// Either field may be nil.
type Infrastructure struct {
	DB    *sql.DB
	Redis redis.UniversalClient
}

// ConnectInfrastructure opens only the connections the storage backend needs
// and applies the schema when postgres is selected.
func ConnectInfrastructure(ctx context.Context, cfg *config.AppConfig, logger *slog.Logger) (*Infrastructure, error) {
	if cfg == nil {
		return nil, errors.New("config is required")
	}
	if logger == nil {
		logger = slog.Default()
	}
	connCfg := StorageConnConfig{
		Storage:  cfg.Storage,
		Postgres: cfg.Postgres,
		Redis:    cfg.Redis,
		Logger:   logger,
	}
	infra := &Infrastructure{}

	if cfg.NeedsPostgres() {
		db, err := OpenPostgresStorage(ctx, connCfg)
		if err != nil {
			return nil, err
		}
		infra.DB = db
	}

	if cfg.NeedsRedis() {
		client, err := OpenRedisStorage(ctx, connCfg)
		if err != nil {
			return nil, errors.Join(err, infra.Close())
		}
		infra.Redis = client
	}

	return infra, nil
}

// Close releases every open connection.
func (i *Infrastructure) Close() error {
	if i == nil {
		return nil
	}
	var errs []error
	if i.Redis != nil {
		if err := i.Redis.Close(); err != nil {
			errs = append(errs, fmt.Errorf("close redis: %w", err))
		}
	}
	if i.DB != nil {
		if err := i.DB.Close(); err != nil {
			errs = append(errs, fmt.Errorf("close database: %w", err))
		}
	}
	return errors.Join(errs...)
}

// HealthChecks returns readiness checks for the open connections.
func (i *Infrastructure) HealthChecks() map[string]httpx.HealthCheck {
	checks := make(map[string]httpx.HealthCheck)
	if i == nil {
		return checks
	}
	if i.DB != nil {
		checks["postgres"] = i.DB.PingContext
	}
	if i.Redis != nil {
		client := i.Redis
		checks["redis"] = func(ctx context.Context) error {
			return client.Ping(ctx).Err()
		}
	}
	return checks
}
