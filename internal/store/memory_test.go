package store

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"quant-bot/internal/model"
)

func TestLoadPortfolioMissingReturnsNil(t *testing.T) {
	s := NewMemoryStore()
	pf, err := s.LoadPortfolio(context.Background(), "nope")
	require.NoError(t, err)
	assert.Nil(t, pf)
}

func TestSaveLoadPortfolioSnapshots(t *testing.T) {
	s := NewMemoryStore()
	ctx := context.Background()

	pf := model.NewPortfolio(1000)
	require.NoError(t, pf.Credit("AAPL", 3))
	require.NoError(t, s.SavePortfolio(ctx, "bot-1", pf))

	// Mutating the original after save must not leak into the store.
	require.NoError(t, pf.Debit("AAPL", 3))

	loaded, err := s.LoadPortfolio(ctx, "bot-1")
	require.NoError(t, err)
	require.NotNil(t, loaded)
	assert.Equal(t, 3.0, loaded.Get("AAPL"))

	// Mutating the loaded copy must not affect a later load.
	require.NoError(t, loaded.Debit("AAPL", 3))
	again, err := s.LoadPortfolio(ctx, "bot-1")
	require.NoError(t, err)
	assert.Equal(t, 3.0, again.Get("AAPL"))
}

func TestBotsAreIsolated(t *testing.T) {
	s := NewMemoryStore()
	ctx := context.Background()

	require.NoError(t, s.SavePortfolio(ctx, "bot-1", model.NewPortfolio(1000)))
	require.NoError(t, s.AppendTrade(ctx, model.TradeRecord{BotID: "bot-1", Symbol: "AAPL"}))

	pf, err := s.LoadPortfolio(ctx, "bot-2")
	require.NoError(t, err)
	assert.Nil(t, pf)

	trades, err := s.LoadTrades(ctx, "bot-2", 0)
	require.NoError(t, err)
	assert.Empty(t, trades)
}

func TestCommitTradeWritesBothSides(t *testing.T) {
	s := NewMemoryStore()
	ctx := context.Background()

	pf := model.NewPortfolio(0)
	require.NoError(t, pf.Credit("AAPL", 2))
	rec := model.TradeRecord{BotID: "bot-1", Symbol: "AAPL", Side: model.SideBuy, Quantity: 2, Price: 100}

	require.NoError(t, s.CommitTrade(ctx, "bot-1", pf, rec))

	loaded, err := s.LoadPortfolio(ctx, "bot-1")
	require.NoError(t, err)
	require.NotNil(t, loaded)
	assert.Equal(t, 2.0, loaded.Get("AAPL"))

	trades, err := s.LoadTrades(ctx, "bot-1", 0)
	require.NoError(t, err)
	require.Len(t, trades, 1)
	assert.Equal(t, model.SideBuy, trades[0].Side)

	// Other bots stay untouched.
	other, err := s.LoadPortfolio(ctx, "bot-2")
	require.NoError(t, err)
	assert.Nil(t, other)
}

func TestLoadTradesLimitKeepsNewest(t *testing.T) {
	s := NewMemoryStore()
	ctx := context.Background()

	for i := 0; i < 5; i++ {
		require.NoError(t, s.AppendTrade(ctx, model.TradeRecord{BotID: "bot-1", Price: float64(i)}))
	}

	trades, err := s.LoadTrades(ctx, "bot-1", 2)
	require.NoError(t, err)
	require.Len(t, trades, 2)
	assert.Equal(t, 3.0, trades[0].Price)
	assert.Equal(t, 4.0, trades[1].Price)
}

func TestRunLogNewestFirst(t *testing.T) {
	s := NewMemoryStore()
	ctx := context.Background()

	require.NoError(t, s.AppendRunLog(ctx, "bot-1", "held", "no data"))
	require.NoError(t, s.AppendRunLog(ctx, "bot-1", "completed", ""))

	entries, err := s.LoadRunLogs(ctx, "bot-1", 10)
	require.NoError(t, err)
	require.Len(t, entries, 2)
	assert.Equal(t, "completed", entries[0].Status)
	assert.Equal(t, "held", entries[1].Status)
}

func TestCachedBarsExpire(t *testing.T) {
	s := NewMemoryStore()
	ctx := context.Background()

	bars := []model.Bar{{Symbol: "AAPL", Close: 100}}
	require.NoError(t, s.CacheBars(ctx, "AAPL", "1h", "7d", bars))

	fresh, err := s.LoadCachedBars(ctx, "AAPL", "1h", "7d", time.Hour)
	require.NoError(t, err)
	assert.Len(t, fresh, 1)

	// An entry older than maxAge reads as absent.
	stale, err := s.LoadCachedBars(ctx, "AAPL", "1h", "7d", time.Nanosecond)
	require.NoError(t, err)
	assert.Nil(t, stale)

	missing, err := s.LoadCachedBars(ctx, "MSFT", "1h", "7d", time.Hour)
	require.NoError(t, err)
	assert.Nil(t, missing)
}
