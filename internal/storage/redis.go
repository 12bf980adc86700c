package storage

import (
	"context"
	"fmt"

	"github.com/redis/go-redis/v9"
)

type RedisConnection struct {
	Client *redis.Client
}

// NewRedisConnection connects to Redis and checks the connection with PING.
func NewRedisConnection(ctx context.Context, addr string, password string, db int) (*RedisConnection, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})

	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("ping redis: %w", err)
	}

	return &RedisConnection{Client: client}, nil
}

func MustNewRedisConnection(ctx context.Context, addr string, password string, db int) *RedisConnection {
	conn, err := NewRedisConnection(ctx, addr, password, db)
	if err != nil {
		panic(err)
	}

	return conn
}

func (s *RedisConnection) MustClose() {
	if err := s.Client.Close(); err != nil {
		panic(fmt.Errorf("close redis connection: %w", err))
	}
}
