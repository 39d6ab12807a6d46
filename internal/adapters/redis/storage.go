package redis

// Package redis provides the Redis-backed durable client storage.

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/skillhub/skills-dashboard/internal/ports"
)

const defaultPrefix = "skills:client:"

// Storage keeps per-browser records in Redis under prefix + clientID + ":" + key.
// With a positive TTL, writes set the expiry and reads slide it forward.
type Storage struct {
	client redis.UniversalClient
	prefix string
	ttl    time.Duration
}

var _ ports.ClientStorageProvider = (*Storage)(nil)

// StorageOptions configures a Storage.
type StorageOptions struct {
	Prefix string
	TTL    time.Duration
}

// NewStorage creates a Redis-backed storage provider.
func NewStorage(client redis.UniversalClient, opts StorageOptions) *Storage {
	prefix := opts.Prefix
	if prefix == "" {
		prefix = defaultPrefix
	}
	return &Storage{client: client, prefix: prefix, ttl: opts.TTL}
}

// ForClient returns the namespace of one browser.
func (s *Storage) ForClient(clientID string) ports.DurableStorage { //nolint:ireturn // port contract
	return &clientStorage{parent: s, clientID: clientID}
}

type clientStorage struct {
	parent   *Storage
	clientID string
}

func (c *clientStorage) key(k string) string {
	return c.parent.prefix + c.clientID + ":" + k
}

func (c *clientStorage) Get(ctx context.Context, key string) ([]byte, bool, error) {
	if c.clientID == "" {
		return nil, false, nil
	}
	var (
		data []byte
		err  error
	)
	if c.parent.ttl > 0 {
		data, err = c.parent.client.GetEx(ctx, c.key(key), c.parent.ttl).Bytes()
	} else {
		data, err = c.parent.client.Get(ctx, c.key(key)).Bytes()
	}
	if errors.Is(err, redis.Nil) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("redis get %s: %w", key, err)
	}
	return data, true, nil
}

func (c *clientStorage) Set(ctx context.Context, key string, value []byte) error {
	if c.clientID == "" {
		return errors.New("client id cannot be empty")
	}
	if err := c.parent.client.Set(ctx, c.key(key), value, c.parent.ttl).Err(); err != nil {
		return fmt.Errorf("redis set %s: %w", key, err)
	}
	return nil
}

func (c *clientStorage) Remove(ctx context.Context, key string) error {
	if c.clientID == "" {
		return nil
	}
	if err := c.parent.client.Del(ctx, c.key(key)).Err(); err != nil {
		return fmt.Errorf("redis del %s: %w", key, err)
	}
	return nil
}
