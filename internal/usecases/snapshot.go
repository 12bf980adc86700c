package usecases

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"golang.org/x/sync/errgroup"

	"metalprices/internal/interaction/goldsilver"
	"metalprices/internal/model"
	"metalprices/internal/pricing"
	"metalprices/internal/repository/kvcache"
)

const (
	DefaultCacheKey = "metal_prices"
	DefaultCacheTTL = 5 * time.Minute

	// SourceLabel names the upstreams of a freshly computed snapshot.
	SourceLabel = "goldsilver.ai + exchangerate-api"
)

type CacheStore interface {
	Get(ctx context.Context, key string) (string, error)
	Put(ctx context.Context, key string, value string, ttl time.Duration) error
}

type MetalPageSource interface {
	GetSilverPrices(ctx context.Context) (goldsilver.SilverPrices, error)
}

type ForexSource interface {
	GetRates(ctx context.Context) (map[string]float64, error)
}

type BaseMetalSource interface {
	GetCopperBid(ctx context.Context) (float64, error)
}

// Sources groups the three upstreams a snapshot is built from.
type Sources struct {
	MetalPage MetalPageSource
	Forex     ForexSource
	BaseMetal BaseMetalSource
}

type SnapshotOption func(uc *SnapshotUseCase)

// WithCache overrides the cache key and TTL.
func WithCache(key string, ttl time.Duration) SnapshotOption {
	return func(uc *SnapshotUseCase) {
		uc.cacheKey = key
		uc.cacheTTL = ttl
	}
}

func WithClock(now func() time.Time) SnapshotOption {
	return func(uc *SnapshotUseCase) {
		uc.now = now
	}
}

type SnapshotUseCase struct {
	logger    *slog.Logger
	cache     CacheStore
	sources   Sources
	constants pricing.Constants
	cacheKey  string
	cacheTTL  time.Duration
	now       func() time.Time
}

func NewSnapshotUseCase(logger *slog.Logger, cache CacheStore, sources Sources, constants pricing.Constants, opts ...SnapshotOption) *SnapshotUseCase {
	uc := &SnapshotUseCase{
		logger:    logger.With("component", "snapshot"),
		cache:     cache,
		sources:   sources,
		constants: constants,
		cacheKey:  DefaultCacheKey,
		cacheTTL:  DefaultCacheTTL,
		now:       time.Now,
	}

	for _, opt := range opts {
		opt(uc)
	}

	return uc
}

// GetSnapshot returns the cached snapshot when there is one, otherwise computes a fresh one.
// It never fails: a broken pipeline produces the fallback snapshot.
func (that *SnapshotUseCase) GetSnapshot(ctx context.Context) model.Snapshot {
	if snapshot, ok := that.lookup(ctx); ok {
		return snapshot
	}

	return that.Refresh(ctx)
}

// Refresh computes a snapshot without reading the cache and stores it on success.
func (that *SnapshotUseCase) Refresh(ctx context.Context) model.Snapshot {
	log := that.logger.With("method", "Refresh")

	snapshot, err := that.compute(ctx)
	if err != nil {
		log.Error("failed to compute snapshot, serving fallback", "error", err)
		return pricing.FallbackSnapshot(that.constants, that.now(), err)
	}

	that.store(ctx, snapshot)
	return snapshot
}

func (that *SnapshotUseCase) lookup(ctx context.Context) (model.Snapshot, bool) {
	log := that.logger.With("method", "lookup", "key", that.cacheKey)

	raw, err := that.cache.Get(ctx, that.cacheKey)
	if err != nil {
		if !errors.Is(err, kvcache.ErrNotFound) {
			log.Warn("failed to read cache", "error", err)
		}
		return model.Snapshot{}, false
	}

	if raw == "" {
		return model.Snapshot{}, false
	}

	var snapshot model.Snapshot
	if err = json.Unmarshal([]byte(raw), &snapshot); err != nil {
		log.Warn("failed to decode cached snapshot", "error", err)
		return model.Snapshot{}, false
	}

	snapshot.Cached = true
	return snapshot, true
}

func (that *SnapshotUseCase) store(ctx context.Context, snapshot model.Snapshot) {
	log := that.logger.With("method", "store", "key", that.cacheKey)

	payload, err := json.Marshal(snapshot)
	if err != nil {
		log.Error("failed to encode snapshot", "error", err)
		return
	}

	if err = that.cache.Put(ctx, that.cacheKey, string(payload), that.cacheTTL); err != nil {
		log.Warn("failed to write cache", "error", err)
	}
}

func (that *SnapshotUseCase) compute(ctx context.Context) (snapshot model.Snapshot, err error) {
	log := that.logger.With("method", "compute")

	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("compute snapshot: %v", r)
		}
	}()

	var (
		silver   goldsilver.SilverPrices
		rates    map[string]float64
		ratesErr error
		bid      float64
		bidErr   error
	)

	// The forex and base metal fetches fall back on their own; only the metal page is fatal.
	group, groupCtx := errgroup.WithContext(ctx)
	group.Go(recovered(func() error {
		var fetchErr error
		if silver, fetchErr = that.sources.MetalPage.GetSilverPrices(groupCtx); fetchErr != nil {
			return fmt.Errorf("fetch metal page: %w", fetchErr)
		}
		return nil
	}))
	group.Go(recovered(func() error {
		rates, ratesErr = that.sources.Forex.GetRates(groupCtx)
		return nil
	}))
	group.Go(recovered(func() error {
		bid, bidErr = that.sources.BaseMetal.GetCopperBid(groupCtx)
		return nil
	}))

	if err = group.Wait(); err != nil {
		return model.Snapshot{}, err
	}

	inputs := pricing.Inputs{
		Shanghai:    pricing.Found(silver.Shanghai, "shanghai price"),
		Spot:        pricing.Found(silver.WesternSpot, "western spot"),
		Premium:     pricing.Found(silver.Premium, "premium"),
		Forex:       pricing.ResolveForex(rates, ratesErr, that.constants.Forex),
		CopperPerLb: pricing.Resolve(bid, bidErr, that.constants.CopperPerLb),
	}

	for _, fallback := range inputs.Fallbacks() {
		log.Warn("using fallback value", "field", fallback.Name, "reason", fallback.Reason)
	}

	snapshot = pricing.Derive(inputs, that.constants).Snapshot()
	snapshot.Timestamp = model.FormatTimestamp(that.now())
	snapshot.Source = SourceLabel

	return snapshot, nil
}

// recovered turns a panic inside fn into an error so it cannot take the process down.
func recovered(fn func() error) func() error {
	return func() (err error) {
		defer func() {
			if r := recover(); r != nil {
				err = fmt.Errorf("panic: %v", r)
			}
		}()

		return fn()
	}
}
