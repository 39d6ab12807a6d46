package config

import (
	"fmt"
	"strings"
	"time"
)

// StorageBackend names the durable store that backs per-browser session records.
type StorageBackend string

const (
	StorageBackendMemory   StorageBackend = "memory"
	StorageBackendRedis    StorageBackend = "redis"
	StorageBackendPostgres StorageBackend = "postgres"
)

// UnmarshalText implements encoding.TextUnmarshaler for StorageBackend.
func (s *StorageBackend) UnmarshalText(text []byte) error {
	v := strings.ToLower(strings.TrimSpace(string(text)))
	switch v {
	case "memory", "redis", "postgres":
		*s = StorageBackend(v)
		return nil
	default:
		return fmt.Errorf("invalid StorageBackend: %q (valid options: memory, redis, postgres)", v)
	}
}

// StorageConfig configures durable client storage.
type StorageConfig struct {
	Backend StorageBackend `env:"BACKEND" envDefault:"memory"`

	// KeyPrefix namespaces Redis keys.
	KeyPrefix string `env:"KEY_PREFIX" envDefault:"skills:client:"`

	// TTL bounds how long an idle browser's records are kept. Zero keeps them forever.
	TTL time.Duration `env:"TTL" envDefault:"720h"`

	// PurgeInterval controls how often expired records are swept from the memory and postgres backends.
	PurgeInterval time.Duration `env:"PURGE_INTERVAL" envDefault:"10m"`
}

// Sanitize applies defaults to storage configuration.
func (c *StorageConfig) Sanitize() {
	if c.Backend == "" {
		c.Backend = StorageBackendMemory
	}
	if c.TTL < 0 {
		c.TTL = 0
	}
	if c.PurgeInterval <= 0 {
		c.PurgeInterval = 10 * time.Minute
	}
	if strings.TrimSpace(c.KeyPrefix) == "" {
		c.KeyPrefix = "skills:client:"
	}
}
