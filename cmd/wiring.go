package cmd

import (
	"context"
	"net/http"

	"metalprices/internal/config"
	"metalprices/internal/interaction/exchangerate"
	"metalprices/internal/interaction/goldsilver"
	"metalprices/internal/interaction/kitco"
	"metalprices/internal/repository/kvcache"
	"metalprices/internal/storage"
	"metalprices/internal/usecases"
)

// mustNewCacheStore opens the configured cache backend. The returned func releases its connection.
func mustNewCacheStore(ctx context.Context) (usecases.CacheStore, func()) {
	switch cnf.Cache.Backend {
	case config.CacheBackendRedis:
		redisConnection := storage.MustNewRedisConnection(ctx, cnf.Redis.Addr, cnf.Redis.Password, cnf.Redis.DB)
		return kvcache.NewRedisStore(redisConnection.Client), redisConnection.MustClose
	case config.CacheBackendPostgres:
		postgresConnection := storage.MustNewPostgresConnection(logger, cnf.Database.ConnString(), cnf.Logger.ParsedGORMLevel)
		postgresConnection.MustMigration()
		return kvcache.NewPostgresStore(postgresConnection.DB), postgresConnection.MustClose
	case config.CacheBackendNone:
		return kvcache.NoopStore{}, func() {}
	default:
		return kvcache.NewMemoryStore(), func() {}
	}
}

func newSnapshotUseCase(cache usecases.CacheStore) *usecases.SnapshotUseCase {
	// Initialize HTTP clients
	sourcesClient := &http.Client{Timeout: cnf.Sources.Timeout}

	// Initialize interactions
	sources := usecases.Sources{
		MetalPage: goldsilver.NewInteraction(logger, sourcesClient, cnf.Sources.MetalPageURL, cnf.Sources.MetalPageUserAgent),
		Forex:     exchangerate.NewInteraction(logger, sourcesClient, cnf.Sources.ForexURL, cnf.Sources.ForexUserAgent),
		BaseMetal: kitco.NewInteraction(logger, sourcesClient, cnf.Sources.BaseMetalURL, cnf.Sources.BaseMetalUserAgent),
	}

	return usecases.NewSnapshotUseCase(logger, cache, sources, cnf.Constants, usecases.WithCache(cnf.Cache.Key, cnf.Cache.TTL))
}
