package usecases_test

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"metalprices/internal/interaction/exchangerate"
	"metalprices/internal/interaction/goldsilver"
	"metalprices/internal/interaction/kitco"
	"metalprices/internal/model"
	"metalprices/internal/pricing"
	"metalprices/internal/repository/kvcache"
	"metalprices/internal/usecases"
	"metalprices/testing/suite"
)

type metalPageMock struct {
	mock.Mock
}

func (m *metalPageMock) GetSilverPrices(ctx context.Context) (goldsilver.SilverPrices, error) {
	args := m.Called(ctx)
	return args.Get(0).(goldsilver.SilverPrices), args.Error(1)
}

type forexMock struct {
	mock.Mock
}

func (m *forexMock) GetRates(ctx context.Context) (map[string]float64, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[string]float64), args.Error(1)
}

type baseMetalMock struct {
	mock.Mock
}

func (m *baseMetalMock) GetCopperBid(ctx context.Context) (float64, error) {
	args := m.Called(ctx)
	return args.Get(0).(float64), args.Error(1)
}

type brokenStore struct {
	puts int
}

func (s *brokenStore) Get(context.Context, string) (string, error) {
	return "", errors.New("connection reset by peer")
}

func (s *brokenStore) Put(context.Context, string, string, time.Duration) error {
	s.puts++
	return errors.New("connection reset by peer")
}

var testRates = map[string]float64{"INR": 90, "CNY": 7, "MYR": 4, "AUD": 1.5, "EUR": 0.9}

type fixture struct {
	metal  *metalPageMock
	forex  *forexMock
	copper *baseMetalMock
	cache  *kvcache.MemoryStore
	now    time.Time
}

func newFixture(t *testing.T) *fixture {
	return &fixture{
		metal:  &metalPageMock{},
		forex:  &forexMock{},
		copper: &baseMetalMock{},
		cache:  kvcache.NewMemoryStore(),
		now:    suite.GetDateTime(t, "2025-11-07T09:15:00.5Z"),
	}
}

func (f *fixture) useCase(st *suite.Suite, cache usecases.CacheStore) *usecases.SnapshotUseCase {
	sources := usecases.Sources{MetalPage: f.metal, Forex: f.forex, BaseMetal: f.copper}
	return usecases.NewSnapshotUseCase(st.Logger, cache, sources, pricing.DefaultConstants(), usecases.WithClock(func() time.Time { return f.now }))
}

func Test_SnapshotUseCase_GetSnapshot(t *testing.T) {
	t.Run("should compute a fresh snapshot and cache it", func(t *testing.T) {
		ctx, st := suite.New(t)
		f := newFixture(t)

		f.metal.On("GetSilverPrices", mock.Anything).Return(goldsilver.SilverPrices{Shanghai: 88.64, WesternSpot: 83.62, Premium: 9.99}, nil).Once()
		f.forex.On("GetRates", mock.Anything).Return(testRates, nil).Once()
		f.copper.On("GetCopperBid", mock.Anything).Return(4.5, nil).Once()

		snapshot := f.useCase(st, f.cache).GetSnapshot(ctx)

		expected := pricing.Derive(pricing.Inputs{
			Shanghai:    pricing.Scraped(88.64),
			Spot:        pricing.Scraped(83.62),
			Premium:     pricing.Scraped(9.99),
			Forex:       pricing.ResolveForex(testRates, nil, pricing.DefaultConstants().Forex),
			CopperPerLb: pricing.Scraped(4.5),
		}, pricing.DefaultConstants()).Snapshot()
		expected.Timestamp = "2025-11-07T09:15:00.500Z"
		expected.Source = usecases.SourceLabel

		require.Equal(t, expected, snapshot)
		require.InDelta(t, 88.64-83.62, snapshot.Premium.USD, 1e-9)
		require.False(t, snapshot.Cached)
		require.Empty(t, snapshot.Error)

		cached, err := f.cache.Get(ctx, usecases.DefaultCacheKey)
		require.NoError(t, err)

		var stored model.Snapshot
		require.NoError(t, json.Unmarshal([]byte(cached), &stored))
		require.Equal(t, expected, stored)

		f.metal.AssertExpectations(t)
		f.forex.AssertExpectations(t)
		f.copper.AssertExpectations(t)
	})

	t.Run("should return the cached snapshot without fetching", func(t *testing.T) {
		ctx, st := suite.New(t)
		f := newFixture(t)

		cachedSnapshot := pricing.FallbackSnapshot(pricing.DefaultConstants(), f.now, errors.New("stale"))
		cachedSnapshot.Source = usecases.SourceLabel
		cachedSnapshot.Error = ""
		payload, err := json.Marshal(cachedSnapshot)
		require.NoError(t, err)
		require.NoError(t, f.cache.Put(ctx, usecases.DefaultCacheKey, string(payload), time.Minute))

		snapshot := f.useCase(st, f.cache).GetSnapshot(ctx)

		expected := cachedSnapshot
		expected.Cached = true
		require.Equal(t, expected, snapshot)

		f.metal.AssertNotCalled(t, "GetSilverPrices", mock.Anything)
		f.forex.AssertNotCalled(t, "GetRates", mock.Anything)
		f.copper.AssertNotCalled(t, "GetCopperBid", mock.Anything)
	})

	t.Run("should recompute when the cached payload is not valid JSON", func(t *testing.T) {
		ctx, st := suite.New(t)
		f := newFixture(t)
		require.NoError(t, f.cache.Put(ctx, usecases.DefaultCacheKey, "{not json", time.Minute))

		f.metal.On("GetSilverPrices", mock.Anything).Return(goldsilver.SilverPrices{Shanghai: 88.64, WesternSpot: 83.62}, nil).Once()
		f.forex.On("GetRates", mock.Anything).Return(testRates, nil).Once()
		f.copper.On("GetCopperBid", mock.Anything).Return(4.5, nil).Once()

		snapshot := f.useCase(st, f.cache).GetSnapshot(ctx)

		require.False(t, snapshot.Cached)
		require.Equal(t, usecases.SourceLabel, snapshot.Source)
		f.metal.AssertExpectations(t)
	})

	t.Run("should ignore cache read and write errors", func(t *testing.T) {
		ctx, st := suite.New(t)
		f := newFixture(t)
		store := &brokenStore{}

		f.metal.On("GetSilverPrices", mock.Anything).Return(goldsilver.SilverPrices{Shanghai: 88.64, WesternSpot: 83.62}, nil).Once()
		f.forex.On("GetRates", mock.Anything).Return(testRates, nil).Once()
		f.copper.On("GetCopperBid", mock.Anything).Return(4.5, nil).Once()

		snapshot := f.useCase(st, store).GetSnapshot(ctx)

		require.Equal(t, usecases.SourceLabel, snapshot.Source)
		require.Empty(t, snapshot.Error)
		require.Equal(t, 1, store.puts)
	})

	t.Run("should fall back per source when forex and copper fail", func(t *testing.T) {
		ctx, st := suite.New(t)
		f := newFixture(t)

		f.metal.On("GetSilverPrices", mock.Anything).Return(goldsilver.SilverPrices{Shanghai: 88.64, WesternSpot: 83.62}, nil).Once()
		f.forex.On("GetRates", mock.Anything).Return(nil, errors.New("bad status code: 503")).Once()
		f.copper.On("GetCopperBid", mock.Anything).Return(0.0, kitco.ErrBidNotFound).Once()

		snapshot := f.useCase(st, f.cache).GetSnapshot(ctx)

		require.Equal(t, usecases.SourceLabel, snapshot.Source)
		require.Equal(t, model.Forex{USDINR: 90.74, USDCNY: 6.92, USDMYR: 3.92, USDAUD: 1.40, USDEUR: 0.842}, snapshot.Forex)
		require.Equal(t, 4.5, snapshot.Copper.PerLb)
		require.InDelta(t, 4.5/14.583, snapshot.Copper.PerOz, 1e-9)
		require.InDelta(t, 83.62, snapshot.Western.USDPerOz, 1e-9)
	})

	t.Run("should serve the fallback snapshot when the metal page fails", func(t *testing.T) {
		ctx, st := suite.New(t)
		f := newFixture(t)

		f.metal.On("GetSilverPrices", mock.Anything).Return(goldsilver.SilverPrices{}, errors.New("do request: connection refused")).Once()
		f.forex.On("GetRates", mock.Anything).Return(testRates, nil).Maybe()
		f.copper.On("GetCopperBid", mock.Anything).Return(4.5, nil).Maybe()

		snapshot := f.useCase(st, f.cache).GetSnapshot(ctx)

		expected := pricing.FallbackSnapshot(pricing.DefaultConstants(), f.now, errors.New("fetch metal page: do request: connection refused"))
		require.Equal(t, expected, snapshot)

		_, err := f.cache.Get(ctx, usecases.DefaultCacheKey)
		require.ErrorIs(t, err, kvcache.ErrNotFound)
	})

	t.Run("should serve the fallback snapshot when a source panics", func(t *testing.T) {
		ctx, st := suite.New(t)
		f := newFixture(t)

		f.metal.On("GetSilverPrices", mock.Anything).Return(goldsilver.SilverPrices{Shanghai: 88.64}, nil).Maybe()
		f.forex.On("GetRates", mock.Anything).Return(testRates, nil).Maybe()
		f.copper.On("GetCopperBid", mock.Anything).Run(func(mock.Arguments) { panic("boom") }).Return(0.0, nil).Once()

		snapshot := f.useCase(st, f.cache).GetSnapshot(ctx)

		require.Equal(t, pricing.FallbackSource, snapshot.Source)
		require.Equal(t, "panic: boom", snapshot.Error)
	})
}

func Test_SnapshotUseCase_Refresh(t *testing.T) {
	ctx, st := suite.New(t)
	f := newFixture(t)
	require.NoError(t, f.cache.Put(ctx, usecases.DefaultCacheKey, `{"source":"old"}`, time.Minute))

	f.metal.On("GetSilverPrices", mock.Anything).Return(goldsilver.SilverPrices{Shanghai: 88.64, WesternSpot: 83.62}, nil).Once()
	f.forex.On("GetRates", mock.Anything).Return(testRates, nil).Once()
	f.copper.On("GetCopperBid", mock.Anything).Return(4.5, nil).Once()

	snapshot := f.useCase(st, f.cache).Refresh(ctx)
	require.Equal(t, usecases.SourceLabel, snapshot.Source)
	require.False(t, snapshot.Cached)

	cached, err := f.cache.Get(ctx, usecases.DefaultCacheKey)
	require.NoError(t, err)
	require.Contains(t, cached, usecases.SourceLabel)
}

func Test_SnapshotUseCase_AllUpstreamsDown(t *testing.T) {
	ctx, st := suite.New(t)

	server := httptest.NewServer(http.NotFoundHandler())
	deadURL := server.URL
	server.Close()

	client := &http.Client{Timeout: 5 * time.Second}
	sources := usecases.Sources{
		MetalPage: goldsilver.NewInteraction(st.Logger, client, deadURL+"/metal-prices/shanghai-silver-price", goldsilver.DefaultUserAgent),
		Forex:     exchangerate.NewInteraction(st.Logger, client, deadURL+"/v4/latest/USD", exchangerate.DefaultUserAgent),
		BaseMetal: kitco.NewInteraction(st.Logger, client, deadURL+"/price/base-metals/copper", kitco.DefaultUserAgent),
	}
	cache := kvcache.NewMemoryStore()
	uc := usecases.NewSnapshotUseCase(st.Logger, cache, sources, pricing.DefaultConstants())

	snapshot := uc.GetSnapshot(ctx)

	require.Equal(t, pricing.FallbackSource, snapshot.Source)
	require.NotEmpty(t, snapshot.Error)
	require.Contains(t, snapshot.Error, "fetch metal page")
	require.Equal(t, model.India{INRPerKg: 270000, INRPerGram: "270.00", USDPerOz: "92.50", PremiumUSD: "9.50", PremiumPercent: "10.5"}, snapshot.India)
	require.Equal(t, model.Copper{PerLb: 4.50, PerOz: 0.31}, snapshot.Copper)
	require.Equal(t, model.Western{USDPerOz: 83.0}, snapshot.Western)
}

func Test_SnapshotUseCase_MetalPageBlocked(t *testing.T) {
	ctx, st := suite.New(t)

	mux := http.NewServeMux()
	mux.HandleFunc("/metal", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusForbidden)
		_, _ = w.Write([]byte("<html><body>Just a moment...</body></html>"))
	})
	mux.HandleFunc("/fx", func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`{"base":"USD","rates":{"INR":90,"CNY":7,"MYR":4,"AUD":1.5,"EUR":0.9}}`))
	})
	mux.HandleFunc("/cu", func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`<script>{"name":"Copper","bid":4.2,"ask":4.21}</script>`))
	})
	server := httptest.NewServer(mux)
	t.Cleanup(server.Close)

	client := server.Client()
	sources := usecases.Sources{
		MetalPage: goldsilver.NewInteraction(st.Logger, client, server.URL+"/metal", goldsilver.DefaultUserAgent),
		Forex:     exchangerate.NewInteraction(st.Logger, client, server.URL+"/fx", exchangerate.DefaultUserAgent),
		BaseMetal: kitco.NewInteraction(st.Logger, client, server.URL+"/cu", kitco.DefaultUserAgent),
	}
	cache := kvcache.NewMemoryStore()
	uc := usecases.NewSnapshotUseCase(st.Logger, cache, sources, pricing.DefaultConstants())

	snapshot := uc.GetSnapshot(ctx)

	require.Equal(t, usecases.SourceLabel, snapshot.Source)
	require.Empty(t, snapshot.Error)
	require.Equal(t, model.Forex{USDINR: 90, USDCNY: 7, USDMYR: 4, USDAUD: 1.5, USDEUR: 0.9}, snapshot.Forex)
	require.Equal(t, 4.2, snapshot.Copper.PerLb)
	require.Equal(t, int64(95000), snapshot.India.INRPerKg)
	require.Equal(t, model.Western{USDPerOz: 83.0}, snapshot.Western)
	require.Equal(t, model.Premium{USD: 5.0, Percent: 6.0}, snapshot.Premium)

	cached, err := cache.Get(ctx, usecases.DefaultCacheKey)
	require.NoError(t, err)
	require.Contains(t, cached, usecases.SourceLabel)
}
