package usecase

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/Alejandrofranco83/sistema-servicios-main-sub003/internal/domain"
	"github.com/Alejandrofranco83/sistema-servicios-main-sub003/internal/usecase/mocks"
)

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func rateAt(t time.Time, usd int64) domain.ExchangeRate {
	return domain.ExchangeRate{
		Date: t,
		USD:  decimal.NewFromInt(usd),
		BRL:  decimal.NewFromInt(1_400),
	}
}

func TestRateResolver_ExactDateHit(t *testing.T) {
	ctrl := gomock.NewController(t)
	source := mocks.NewMockRateSource(ctrl)

	target := day(2024, 1, 8)
	want := rateAt(target, 7_300)
	source.EXPECT().GetRateByDate(gomock.Any(), target).Return(&want, nil)

	resolver := NewRateResolver(source, nil, false, zerolog.Nop())

	got, degraded, err := resolver.Resolve(context.Background(), target)
	require.NoError(t, err)
	assert.False(t, degraded)
	assert.True(t, got.USD.Equal(want.USD))
}

func TestRateResolver_NearestDateFallback(t *testing.T) {
	ctrl := gomock.NewController(t)
	source := mocks.NewMockRateSource(ctrl)

	target := day(2024, 1, 8)
	history := []domain.ExchangeRate{
		rateAt(day(2024, 1, 1), 7_100),
		rateAt(day(2024, 1, 10), 7_300),
		rateAt(day(2024, 1, 20), 7_500),
	}
	source.EXPECT().GetRateByDate(gomock.Any(), target).Return(nil, nil)
	source.EXPECT().ListRates(gomock.Any()).Return(history, nil)

	resolver := NewRateResolver(source, nil, false, zerolog.Nop())

	got, degraded, err := resolver.Resolve(context.Background(), target)
	require.NoError(t, err)
	assert.False(t, degraded)
	assert.True(t, got.Date.Equal(day(2024, 1, 10)), "expected the 2024-01-10 entry, got %s", got.Date)
}

func TestRateResolver_TiePrefersEarlierDate(t *testing.T) {
	ctrl := gomock.NewController(t)
	source := mocks.NewMockRateSource(ctrl)

	target := day(2024, 1, 8)
	history := []domain.ExchangeRate{
		rateAt(day(2024, 1, 10), 7_300),
		rateAt(day(2024, 1, 6), 7_200),
	}
	source.EXPECT().GetRateByDate(gomock.Any(), target).Return(nil, nil)
	source.EXPECT().ListRates(gomock.Any()).Return(history, nil)

	resolver := NewRateResolver(source, nil, false, zerolog.Nop())

	got, _, err := resolver.Resolve(context.Background(), target)
	require.NoError(t, err)
	assert.True(t, got.Date.Equal(day(2024, 1, 6)), "tie must resolve to the earlier entry, got %s", got.Date)
}

func TestRateResolver_EmptyHistory(t *testing.T) {
	ctrl := gomock.NewController(t)
	source := mocks.NewMockRateSource(ctrl)

	target := day(2024, 1, 8)
	source.EXPECT().GetRateByDate(gomock.Any(), target).Return(nil, nil)
	source.EXPECT().ListRates(gomock.Any()).Return(nil, nil)

	resolver := NewRateResolver(source, nil, false, zerolog.Nop())

	_, _, err := resolver.Resolve(context.Background(), target)
	require.ErrorIs(t, err, domain.ErrRatesUnavailable)
}

func TestRateResolver_SourceFailureDegrades(t *testing.T) {
	ctrl := gomock.NewController(t)
	source := mocks.NewMockRateSource(ctrl)

	target := day(2024, 1, 8)
	source.EXPECT().GetRateByDate(gomock.Any(), target).
		Return(nil, errors.New("connection refused"))

	resolver := NewRateResolver(source, nil, false, zerolog.Nop())

	got, degraded, err := resolver.Resolve(context.Background(), target)
	require.NoError(t, err)
	assert.True(t, degraded)
	assert.True(t, got.USD.IsZero())
	assert.True(t, got.BRL.IsZero())
}

func TestRateResolver_SourceFailureStrict(t *testing.T) {
	ctrl := gomock.NewController(t)
	source := mocks.NewMockRateSource(ctrl)

	target := day(2024, 1, 8)
	source.EXPECT().GetRateByDate(gomock.Any(), target).
		Return(nil, errors.New("connection refused"))

	resolver := NewRateResolver(source, nil, true, zerolog.Nop())

	_, degraded, err := resolver.Resolve(context.Background(), target)
	require.ErrorIs(t, err, domain.ErrRatesUnavailable)
	assert.False(t, degraded)
}

func TestRateResolver_CacheHitSkipsSource(t *testing.T) {
	ctrl := gomock.NewController(t)
	// No expectations: any source call fails the test.
	source := mocks.NewMockRateSource(ctrl)

	target := day(2024, 1, 8)
	cache := mocks.NewMockRateCache()
	require.NoError(t, cache.Set(context.Background(), target, rateAt(target, 7_300), time.Minute))

	resolver := NewRateResolver(source, cache, false, zerolog.Nop())

	got, degraded, err := resolver.Resolve(context.Background(), target)
	require.NoError(t, err)
	assert.False(t, degraded)
	assert.True(t, got.USD.Equal(decimal.NewFromInt(7_300)))
}

func TestRateResolver_CachesResolvedRate(t *testing.T) {
	ctrl := gomock.NewController(t)
	source := mocks.NewMockRateSource(ctrl)

	target := day(2024, 1, 8)
	want := rateAt(target, 7_300)
	source.EXPECT().GetRateByDate(gomock.Any(), target).Return(&want, nil)

	cache := mocks.NewMockRateCache()
	resolver := NewRateResolver(source, cache, false, zerolog.Nop())

	_, _, err := resolver.Resolve(context.Background(), target)
	require.NoError(t, err)

	cached, err := cache.Get(context.Background(), target)
	require.NoError(t, err)
	require.NotNil(t, cached)
	assert.True(t, cached.USD.Equal(want.USD))
}

func TestRateResolver_DegradedRateIsNotCached(t *testing.T) {
	ctrl := gomock.NewController(t)
	source := mocks.NewMockRateSource(ctrl)

	target := day(2024, 1, 8)
	source.EXPECT().GetRateByDate(gomock.Any(), target).
		Return(nil, errors.New("connection refused"))

	cache := mocks.NewMockRateCache()
	resolver := NewRateResolver(source, cache, false, zerolog.Nop())

	_, degraded, err := resolver.Resolve(context.Background(), target)
	require.NoError(t, err)
	require.True(t, degraded)

	cached, err := cache.Get(context.Background(), target)
	require.NoError(t, err)
	assert.Nil(t, cached, "a zero fallback rate must not poison the cache")
}
