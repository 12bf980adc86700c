package kvcache

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

type RedisStore struct {
	client *redis.Client
}

func NewRedisStore(client *redis.Client) *RedisStore {
	return &RedisStore{client: client}
}

func (that *RedisStore) Get(ctx context.Context, key string) (string, error) {
	value, err := that.client.Get(ctx, key).Result()
	if errors.Is(err, redis.Nil) {
		return "", ErrNotFound
	}
	if err != nil {
		return "", fmt.Errorf("get %s from redis: %w", key, err)
	}

	return value, nil
}

// Put stores value with SET ... EX ttl.
func (that *RedisStore) Put(ctx context.Context, key string, value string, ttl time.Duration) error {
	if err := that.client.Set(ctx, key, value, ttl).Err(); err != nil {
		return fmt.Errorf("set %s in redis: %w", key, err)
	}

	return nil
}
