package store

import (
	"context"
	"time"

	"quant-bot/internal/model"
)

// RunLogEntry records the outcome of one scheduled bot cycle.
type RunLogEntry struct {
	Timestamp time.Time `json:"timestamp"`
	BotID     string    `json:"bot_id"`
	Status    string    `json:"status"` // e.g. "completed", "held", "error"
	Detail    string    `json:"detail,omitempty"`
}

// Store is the persistence contract for bot state, trades, run logs
// and cached bars. Implementations must keep bots isolated: state for
// one bot is never visible through another bot's keys.
type Store interface {
	// LoadPortfolio returns the persisted portfolio for botID, or
	// (nil, nil) when none has been saved yet.
	LoadPortfolio(ctx context.Context, botID string) (*model.Portfolio, error)
	SavePortfolio(ctx context.Context, botID string, pf *model.Portfolio) error

	// AppendTrade appends to the bot's immutable trade log.
	AppendTrade(ctx context.Context, rec model.TradeRecord) error
	LoadTrades(ctx context.Context, botID string, limit int) ([]model.TradeRecord, error)

	// CommitTrade persists a trade record together with the portfolio
	// snapshot it produced. Both land or neither does, so a crash
	// between the two writes cannot leave a logged trade with a stale
	// ledger.
	CommitTrade(ctx context.Context, botID string, pf *model.Portfolio, rec model.TradeRecord) error

	AppendRunLog(ctx context.Context, botID, status, detail string) error
	LoadRunLogs(ctx context.Context, botID string, limit int) ([]RunLogEntry, error)

	// CacheBars stores a fetched bar window; LoadCachedBars returns it
	// only while younger than maxAge, else (nil, nil) so the caller
	// re-fetches from the provider.
	CacheBars(ctx context.Context, symbol, interval, period string, bars []model.Bar) error
	LoadCachedBars(ctx context.Context, symbol, interval, period string, maxAge time.Duration) ([]model.Bar, error)
}
