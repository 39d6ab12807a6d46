package config

import (
	"os"
	"strings"
)

// AppConfig is the main application configuration struct that composes
// domain-specific configuration from separate files.
//
// Configuration is loaded from environment variables using the
// github.com/caarlos0/env library. See individual domain config
// files for details on available environment variables:
//   - api.go: Skills backend client configuration
//   - auth.go: Route guard and token verification configuration
//   - database.go: Database and Redis configuration
//   - http.go: HTTP server configuration
//   - storage.go: Durable client storage configuration
type AppConfig struct {
	// IsDev controls development mode behavior.
	// Set DEV=true or NODE_ENV=development for development mode.
	IsDev bool `env:"DEV" envDefault:"false"`

	// Skills backend configuration
	API APIConfig `envPrefix:"API_"`

	// Route guard configuration
	Guard GuardConfig `envPrefix:"GUARD_"`

	// Token verification configuration
	Token TokenConfig `envPrefix:"TOKEN_"`

	// Durable client storage configuration
	Storage StorageConfig `envPrefix:"STORAGE_"`

	// Database configuration
	Postgres DBConfig    `envPrefix:"DB_"`
	Redis    RedisConfig `envPrefix:"REDIS_"`

	// HTTP server configuration
	HTTP HTTPConfig

	// Observability configuration
	Observability ObservabilityConfig
}

// Sanitize applies guardrails to configuration values loaded from env.
// This should be called after loading configuration from environment variables.
func (c *AppConfig) Sanitize() {
	c.HTTP.Sanitize()
	c.API.Sanitize()
	c.Guard.Sanitize()
	c.Token.Sanitize()
	c.Storage.Sanitize()
	c.Observability.Sanitize()

	c.detectDevMode()
}

// detectDevMode checks both DEV and NODE_ENV environment variables.
// NODE_ENV is checked as a fallback (common in frontend tooling).
func (c *AppConfig) detectDevMode() {
	if !c.IsDev {
		nodeEnv := strings.ToLower(os.Getenv("NODE_ENV"))
		c.IsDev = nodeEnv == "development" || nodeEnv == "dev"
	}
}

// NeedsPostgres reports whether the configured backends require a database connection.
func (c *AppConfig) NeedsPostgres() bool {
	return c.Storage.Backend == StorageBackendPostgres
}

// NeedsRedis reports whether the configured backends require a Redis connection.
func (c *AppConfig) NeedsRedis() bool {
	return c.Storage.Backend == StorageBackendRedis
}
