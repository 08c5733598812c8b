package usecase

import (
	"context"
	"errors"
	"time"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"github.com/Alejandrofranco83/sistema-servicios-main-sub003/internal/domain"
)

const defaultRateCacheTTL = 10 * time.Minute

// RateResolver resolves the exchange rate applicable to a session's
// opening date. An exact-date lookup is tried first; failing that, the full
// history is scanned for the entry closest by absolute distance, preferring
// the earlier entry on ties.
type RateResolver struct {
	source   RateSource
	cache    RateCache // optional
	cacheTTL time.Duration
	// strict controls behavior when the rate source is unreachable: true
	// surfaces ErrRatesUnavailable, false degrades to a zero rate so only
	// currency-conversion terms are lost.
	strict bool
	logger zerolog.Logger
}

// NewRateResolver creates a new RateResolver. cache may be nil.
func NewRateResolver(source RateSource, cache RateCache, strict bool, logger zerolog.Logger) *RateResolver {
	return &RateResolver{
		source:   source,
		cache:    cache,
		cacheTTL: defaultRateCacheTTL,
		strict:   strict,
		logger:   logger,
	}
}

// WithCacheTTL overrides how long resolved rates stay cached.
func (r *RateResolver) WithCacheTTL(ttl time.Duration) *RateResolver {
	if ttl > 0 {
		r.cacheTTL = ttl
	}
	return r
}

// Resolve returns the rate for the given date and whether the result is a
// degraded zero rate after a source failure. An empty rate history is
// always ErrRatesUnavailable.
func (r *RateResolver) Resolve(ctx context.Context, date time.Time) (domain.ExchangeRate, bool, error) {
	day := truncateToDay(date)

	if r.cache != nil {
		if cached, err := r.cache.Get(ctx, day); err != nil {
			r.logger.Debug().Err(err).Msg("rate cache read failed")
		} else if cached != nil {
			return *cached, false, nil
		}
	}

	rate, err := r.lookup(ctx, day)
	if err != nil {
		if errors.Is(err, errRateFetchFailed) {
			if r.strict {
				return domain.ExchangeRate{}, false, domain.ErrRatesUnavailable
			}
			r.logger.Warn().Time("date", day).
				Msg("rate source unreachable, degrading to zero rate")
			return zeroRate(day), true, nil
		}
		return domain.ExchangeRate{}, false, err
	}

	if rate.IsZero() {
		r.logger.Warn().Time("date", day).Msg("resolved exchange rate is zero")
	}

	if r.cache != nil {
		if err := r.cache.Set(ctx, day, rate, r.cacheTTL); err != nil {
			r.logger.Debug().Err(err).Msg("rate cache write failed")
		}
	}

	return rate, false, nil
}

// errRateFetchFailed is an internal marker for transport-level failures,
// distinct from a genuinely empty history.
var errRateFetchFailed = errors.New("rate fetch failed")

func (r *RateResolver) lookup(ctx context.Context, day time.Time) (domain.ExchangeRate, error) {
	exact, err := r.source.GetRateByDate(ctx, day)
	if err != nil {
		return domain.ExchangeRate{}, errRateFetchFailed
	}
	if exact != nil {
		return *exact, nil
	}

	history, err := r.source.ListRates(ctx)
	if err != nil {
		return domain.ExchangeRate{}, errRateFetchFailed
	}
	if len(history) == 0 {
		return domain.ExchangeRate{}, domain.ErrRatesUnavailable
	}

	return nearestRate(history, day), nil
}

// nearestRate selects the history entry with minimum absolute distance to
// the target date. On equal distance the earlier-dated entry wins, so the
// selection is deterministic regardless of history order.
func nearestRate(history []domain.ExchangeRate, target time.Time) domain.ExchangeRate {
	best := history[0]
	bestDist := absDuration(truncateToDay(best.Date).Sub(target))

	for _, candidate := range history[1:] {
		dist := absDuration(truncateToDay(candidate.Date).Sub(target))
		switch {
		case dist < bestDist:
			best = candidate
			bestDist = dist
		case dist == bestDist && candidate.Date.Before(best.Date):
			best = candidate
		}
	}

	return best
}

func zeroRate(day time.Time) domain.ExchangeRate {
	return domain.ExchangeRate{Date: day, USD: decimal.Zero, BRL: decimal.Zero}
}

func absDuration(d time.Duration) time.Duration {
	if d < 0 {
		return -d
	}
	return d
}

func truncateToDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
