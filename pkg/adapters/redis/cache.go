package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	backend "github.com/redis/go-redis/v9"

	"github.com/aretw0/levelance/pkg/domain"
	"github.com/aretw0/levelance/pkg/ports"
)

// DefaultPrefix namespaces every key written by the cache.
const DefaultPrefix = "levelance:decode:"

// Cache implements ports.ResultCache using Redis.
type Cache struct {
	client *backend.Client
	prefix string
	ttl    time.Duration
}

type Option func(*Cache)

// WithTTL sets the expiration for cached results.
func WithTTL(ttl time.Duration) Option {
	return func(c *Cache) {
		c.ttl = ttl
	}
}

// WithPrefix sets the key prefix.
func WithPrefix(prefix string) Option {
	return func(c *Cache) {
		c.prefix = prefix
	}
}

// New creates a new Redis cache with options.
func New(address, password string, db int, opts ...Option) *Cache {
	rdb := backend.NewClient(&backend.Options{
		Addr:     address,
		Password: password,
		DB:       db,
	})
	return NewFromClient(rdb, opts...)
}

// NewFromClient creates a new Redis cache from an existing client.
func NewFromClient(client *backend.Client, opts ...Option) *Cache {
	c := &Cache{
		client: client,
		prefix: DefaultPrefix,
		ttl:    0, // No expiration by default
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

func (c *Cache) key(k string) string {
	return c.prefix + k
}

// Get retrieves a result from Redis.
func (c *Cache) Get(ctx context.Context, key string) (ports.Result, error) {
	val, err := c.client.Get(ctx, c.key(key)).Bytes()
	if err != nil {
		if errors.Is(err, backend.Nil) {
			return ports.Result{}, domain.ErrCacheMiss
		}
		return ports.Result{}, fmt.Errorf("failed to get from redis: %w", err)
	}

	var res ports.Result
	if err := json.Unmarshal(val, &res); err != nil {
		return ports.Result{}, fmt.Errorf("failed to unmarshal result: %w", err)
	}
	return res, nil
}

// Put persists a result to Redis. A zero TTL stores without expiration.
func (c *Cache) Put(ctx context.Context, key string, result ports.Result) error {
	if result.StoredAt.IsZero() {
		result.StoredAt = time.Now().UTC()
	}
	data, err := json.Marshal(result)
	if err != nil {
		return fmt.Errorf("failed to marshal result: %w", err)
	}

	if err := c.client.Set(ctx, c.key(key), data, c.ttl).Err(); err != nil {
		return fmt.Errorf("failed to save to redis: %w", err)
	}
	return nil
}

// Ping checks connectivity.
func (c *Cache) Ping(ctx context.Context) error {
	return c.client.Ping(ctx).Err()
}

// Close closes the redis client.
func (c *Cache) Close() error {
	return c.client.Close()
}
