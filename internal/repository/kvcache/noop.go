package kvcache

import (
	"context"
	"time"
)

// NoopStore never holds anything, which disables caching.
type NoopStore struct{}

func (NoopStore) Get(context.Context, string) (string, error) {
	return "", ErrNotFound
}

func (NoopStore) Put(context.Context, string, string, time.Duration) error {
	return nil
}
