package data

import (
	"context"
	"time"

	"go.uber.org/zap"

	"quant-bot/internal/model"
	"quant-bot/internal/store"
)

// CachingProvider serves bars from the store when a fresh-enough window
// exists, and falls through to the underlying provider otherwise. Cache
// write failures are logged, not surfaced: a failed cache write must
// never fail a fetch that succeeded upstream.
type CachingProvider struct {
	Provider Provider
	Store    store.Store
	// MaxAge is the staleness bound for cache hits. Zero disables
	// caching entirely.
	MaxAge time.Duration

	Log *zap.Logger
}

func NewCachingProvider(p Provider, st store.Store, maxAge time.Duration, log *zap.Logger) *CachingProvider {
	if log == nil {
		log = zap.NewNop()
	}
	return &CachingProvider{Provider: p, Store: st, MaxAge: maxAge, Log: log}
}

func (c *CachingProvider) FetchBars(ctx context.Context, symbol, interval, period string) ([]model.Bar, error) {
	if c.MaxAge <= 0 || c.Store == nil {
		return c.Provider.FetchBars(ctx, symbol, interval, period)
	}

	cached, err := c.Store.LoadCachedBars(ctx, symbol, interval, period, c.MaxAge)
	if err != nil {
		c.Log.Warn("bar cache lookup failed",
			zap.String("symbol", symbol),
			zap.Error(err))
	} else if len(cached) > 0 {
		c.Log.Debug("bar cache hit",
			zap.String("symbol", symbol),
			zap.String("interval", interval),
			zap.Int("rows", len(cached)))
		return cached, nil
	}

	bars, err := c.Provider.FetchBars(ctx, symbol, interval, period)
	if err != nil {
		return nil, err
	}
	if err := c.Store.CacheBars(ctx, symbol, interval, period, bars); err != nil {
		c.Log.Warn("bar cache write failed",
			zap.String("symbol", symbol),
			zap.Error(err))
	}
	return bars, nil
}
