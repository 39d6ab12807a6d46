package bootstrap

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/url"
	"strconv"
	"strings"
	"time"

	// Registers the "pgx" database/sql driver.
	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/redis/go-redis/v9"

	"github.com/skillhub/skills-dashboard/config"
	"github.com/skillhub/skills-dashboard/internal/migrate"
)

const connectTimeout = 5 * time.Second

// StorageConnConfig carries what the durable client storage backends need to connect.
type StorageConnConfig struct {
	Storage  config.StorageConfig
	Postgres config.DBConfig
	Redis    config.RedisConfig
	Logger   *slog.Logger
}

// clientName derives the connection name reported to redis and postgres from the key prefix.
func (c StorageConnConfig) clientName() string {
	name := strings.Trim(c.Storage.KeyPrefix, ":")
	name = strings.NewReplacer(":", "-", " ", "-").Replace(name)
	if name == "" {
		return "skills-dashboard"
	}
	return name
}

func (c StorageConnConfig) logger() *slog.Logger {
	if c.Logger != nil {
		return c.Logger
	}
	return slog.Default()
}

// OpenPostgresStorage connects the postgres client storage backend and, when
// enabled, applies its schema.
func OpenPostgresStorage(ctx context.Context, cfg StorageConnConfig) (*sql.DB, error) {
	db, err := sql.Open("pgx", postgresDSN(cfg))
	if err != nil {
		return nil, fmt.Errorf("open client storage database: %w", err)
	}

	// Each request reads at most two records per browser.
	db.SetMaxOpenConns(10)
	db.SetMaxIdleConns(5)
	db.SetConnMaxLifetime(30 * time.Minute)

	if err := pingStorage(ctx, db.PingContext, db.Close); err != nil {
		return nil, fmt.Errorf("client storage postgres: %w", err)
	}

	log := cfg.logger().With("backend", config.StorageBackendPostgres)
	log.InfoContext(ctx, "client storage connected",
		"host", cfg.Postgres.Host,
		"database", cfg.Postgres.Name,
		"ttl", cfg.Storage.TTL,
	)

	if !cfg.Postgres.RunMigrationsOnStart {
		log.InfoContext(ctx, "client storage schema not applied", "reason", "disabled via config")
		return db, nil
	}
	applied, err := migrate.Run(ctx, db)
	if err != nil {
		return nil, errors.Join(fmt.Errorf("apply client storage schema: %w", err), db.Close())
	}
	log.InfoContext(ctx, "client storage schema applied", "migrations", applied)
	return db, nil
}

func postgresDSN(cfg StorageConnConfig) string {
	pg := cfg.Postgres
	u := &url.URL{
		Scheme: "postgres",
		User:   url.UserPassword(pg.User, pg.Password),
		Host:   net.JoinHostPort(pg.Host, strconv.Itoa(pg.Port)),
		Path:   "/" + pg.Name,
	}
	q := u.Query()
	q.Set("sslmode", pg.SSLMode)
	q.Set("application_name", cfg.clientName())
	u.RawQuery = q.Encode()
	return u.String()
}

// OpenRedisStorage connects the redis client storage backend. Cluster,
// sentinel and single-node deployments share one code path.
//
//nolint:ireturn // the concrete client depends on the deployment mode.
func OpenRedisStorage(ctx context.Context, cfg StorageConnConfig) (redis.UniversalClient, error) {
	opts, desc, err := redisStorageOptions(cfg)
	if err != nil {
		return nil, fmt.Errorf("client storage redis: %w", err)
	}
	client := redis.NewUniversalClient(opts)

	ping := func(ctx context.Context) error { return client.Ping(ctx).Err() }
	if err := pingStorage(ctx, ping, client.Close); err != nil {
		return nil, fmt.Errorf("client storage redis %s: %w", desc, err)
	}

	cfg.logger().InfoContext(ctx, "client storage connected",
		"backend", config.StorageBackendRedis,
		"addr", desc,
		"key_prefix", cfg.Storage.KeyPrefix,
		"ttl", cfg.Storage.TTL,
	)
	return client, nil
}

// redisStorageOptions maps the redis settings onto universal options and
// returns a credential-free description of the target.
func redisStorageOptions(cfg StorageConnConfig) (*redis.UniversalOptions, string, error) {
	rc := cfg.Redis
	opts := &redis.UniversalOptions{
		ClientName: cfg.clientName(),
		Password:   rc.Password,
	}

	switch {
	case rc.UseCluster:
		opts.Addrs = trimAddrs(rc.ClusterNodes)
		if len(opts.Addrs) == 0 {
			return nil, "", errors.New("cluster mode requires at least one node")
		}
		opts.IsClusterMode = true
		return opts, "cluster:" + strings.Join(opts.Addrs, ","), nil

	case rc.UseSentinel:
		opts.Addrs = trimAddrs(rc.SentinelNodes)
		if len(opts.Addrs) == 0 || rc.SentinelMasterName == "" {
			return nil, "", errors.New("sentinel mode requires nodes and a master name")
		}
		opts.MasterName = rc.SentinelMasterName
		opts.SentinelPassword = rc.SentinelPassword
		return opts, "sentinel:" + rc.SentinelMasterName, nil
	}

	uri := strings.TrimSpace(rc.URI)
	if uri == "" {
		return nil, "", errors.New("a URI is required")
	}
	if !strings.HasPrefix(uri, "redis://") && !strings.HasPrefix(uri, "rediss://") {
		opts.Addrs = []string{uri}
		return opts, uri, nil
	}

	parsed, err := redis.ParseURL(uri)
	if err != nil {
		return nil, "", fmt.Errorf("parse URI: %w", err)
	}
	opts.Addrs = []string{parsed.Addr}
	opts.Username = parsed.Username
	if parsed.Password != "" {
		opts.Password = parsed.Password
	}
	opts.DB = parsed.DB
	opts.TLSConfig = parsed.TLSConfig
	return opts, parsed.Addr, nil
}

func trimAddrs(raw []string) []string {
	out := make([]string, 0, len(raw))
	for _, addr := range raw {
		if trimmed := strings.TrimSpace(addr); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}

// pingStorage verifies a fresh connection within connectTimeout and closes it on failure.
func pingStorage(ctx context.Context, ping func(context.Context) error, closeFn func() error) error {
	pingCtx, cancel := context.WithTimeout(ctx, connectTimeout)
	defer cancel()

	err := ping(pingCtx)
	if err == nil {
		return nil
	}
	if closeErr := closeFn(); closeErr != nil {
		err = errors.Join(err, fmt.Errorf("close: %w", closeErr))
	}
	return fmt.Errorf("ping: %w", err)
}
