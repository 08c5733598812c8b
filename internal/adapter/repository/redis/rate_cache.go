package redis

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/shopspring/decimal"

	"github.com/Alejandrofranco83/sistema-servicios-main-sub003/internal/domain"
)

// RateCache implements usecase.RateCache using Redis. Caching happens at
// the rate-collaborator level; the reconciliation engine itself never
// caches.
type RateCache struct {
	client *redis.Client
	prefix string
}

// NewRateCache creates a new RateCache.
func NewRateCache(client *redis.Client) *RateCache {
	return &RateCache{
		client: client,
		prefix: "rate:",
	}
}

type cachedRate struct {
	Date time.Time       `json:"date"`
	USD  decimal.Decimal `json:"usd"`
	BRL  decimal.Decimal `json:"brl"`
}

// Get retrieves a cached rate by date. A miss returns (nil, nil).
func (c *RateCache) Get(ctx context.Context, date time.Time) (*domain.ExchangeRate, error) {
	raw, err := c.client.Get(ctx, c.key(date)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, nil
		}
		return nil, err
	}

	var cached cachedRate
	if err := json.Unmarshal(raw, &cached); err != nil {
		return nil, err
	}

	return &domain.ExchangeRate{Date: cached.Date, USD: cached.USD, BRL: cached.BRL}, nil
}

// Set stores a rate with TTL.
func (c *RateCache) Set(ctx context.Context, date time.Time, rate domain.ExchangeRate, ttl time.Duration) error {
	raw, err := json.Marshal(cachedRate{Date: rate.Date, USD: rate.USD, BRL: rate.BRL})
	if err != nil {
		return err
	}
	return c.client.Set(ctx, c.key(date), raw, ttl).Err()
}

func (c *RateCache) key(date time.Time) string {
	return c.prefix + date.Format("2006-01-02")
}
