package store

import (
	"context"
	"fmt"
	"sync"
	"time"

	"quant-bot/internal/model"
)

// MemoryStore implements Store in process memory. Used by tests and by
// ephemeral runs (demo, offline backtests) that have no Redis.
type MemoryStore struct {
	mu         sync.RWMutex
	portfolios map[string]*model.Portfolio
	trades     map[string][]model.TradeRecord
	runLogs    map[string][]RunLogEntry
	bars       map[string]cachedBars
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		portfolios: make(map[string]*model.Portfolio),
		trades:     make(map[string][]model.TradeRecord),
		runLogs:    make(map[string][]RunLogEntry),
		bars:       make(map[string]cachedBars),
	}
}

func (s *MemoryStore) LoadPortfolio(_ context.Context, botID string) (*model.Portfolio, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	pf, ok := s.portfolios[botID]
	if !ok {
		return nil, nil
	}
	return pf.Snapshot(), nil
}

func (s *MemoryStore) SavePortfolio(_ context.Context, botID string, pf *model.Portfolio) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.portfolios[botID] = pf.Snapshot()
	return nil
}

func (s *MemoryStore) AppendTrade(_ context.Context, rec model.TradeRecord) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.trades[rec.BotID] = append(s.trades[rec.BotID], rec)
	return nil
}

func (s *MemoryStore) CommitTrade(_ context.Context, botID string, pf *model.Portfolio, rec model.TradeRecord) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.trades[botID] = append(s.trades[botID], rec)
	s.portfolios[botID] = pf.Snapshot()
	return nil
}

func (s *MemoryStore) LoadTrades(_ context.Context, botID string, limit int) ([]model.TradeRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	all := s.trades[botID]
	if limit > 0 && len(all) > limit {
		all = all[len(all)-limit:]
	}
	out := make([]model.TradeRecord, len(all))
	copy(out, all)
	return out, nil
}

func (s *MemoryStore) AppendRunLog(_ context.Context, botID, status, detail string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	entries := append([]RunLogEntry{{
		Timestamp: time.Now().UTC(),
		BotID:     botID,
		Status:    status,
		Detail:    detail,
	}}, s.runLogs[botID]...)
	if len(entries) > runLogMaxLength {
		entries = entries[:runLogMaxLength]
	}
	s.runLogs[botID] = entries
	return nil
}

func (s *MemoryStore) LoadRunLogs(_ context.Context, botID string, limit int) ([]RunLogEntry, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	all := s.runLogs[botID]
	if limit > 0 && len(all) > limit {
		all = all[:limit]
	}
	out := make([]RunLogEntry, len(all))
	copy(out, all)
	return out, nil
}

func (s *MemoryStore) CacheBars(_ context.Context, symbol, interval, period string, bars []model.Bar) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.bars[barsKey(symbol, interval, period)] = cachedBars{
		FetchedAt: time.Now().UTC(),
		Bars:      bars,
	}
	return nil
}

func (s *MemoryStore) LoadCachedBars(_ context.Context, symbol, interval, period string, maxAge time.Duration) ([]model.Bar, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	entry, ok := s.bars[barsKey(symbol, interval, period)]
	if !ok {
		return nil, nil
	}
	if maxAge > 0 && time.Since(entry.FetchedAt) > maxAge {
		return nil, nil
	}
	out := make([]model.Bar, len(entry.Bars))
	copy(out, entry.Bars)
	return out, nil
}

func barsKey(symbol, interval, period string) string {
	return fmt.Sprintf(keyBars, symbol, interval, period)
}
