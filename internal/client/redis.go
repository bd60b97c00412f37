package client

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// RedisClient wraps the go-redis client for profile storage.
type RedisClient struct {
	client *redis.Client
}

// NewRedisClient creates a new Redis client from URL.
// URL format: redis://[:password@]host:port/db
func NewRedisClient(url string) (*RedisClient, error) {
	opts, err := redis.ParseURL(url)
	if err != nil {
		return nil, fmt.Errorf("failed to parse redis url: %w", err)
	}

	client := redis.NewClient(opts)

	// Test connection
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("failed to connect to redis: %w", err)
	}

	return &RedisClient{client: client}, nil
}

// Close closes the Redis connection.
func (r *RedisClient) Close() error {
	return r.client.Close()
}

// Get returns the string value stored under key. A missing key surfaces as
// redis.Nil, which callers are expected to check.
func (r *RedisClient) Get(ctx context.Context, key string) (string, error) {
	return r.client.Get(ctx, key).Result()
}

// Watch runs fn inside an optimistic WATCH transaction over the given keys.
// fn should re-read the watched keys through the tx and queue writes with
// tx.TxPipelined; redis.TxFailedErr is returned when a watched key changed.
func (r *RedisClient) Watch(ctx context.Context, fn func(tx *redis.Tx) error, keys ...string) error {
	return r.client.Watch(ctx, fn, keys...)
}
