package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"quant-bot/internal/model"
)

// RedisStore implements Store on Redis. Values are JSON; trade and run
// logs are Redis lists.
type RedisStore struct {
	client *redis.Client
	log    *zap.Logger
}

func NewRedisStore(client *redis.Client, log *zap.Logger) *RedisStore {
	if log == nil {
		log = zap.NewNop()
	}
	return &RedisStore{client: client, log: log}
}

func (s *RedisStore) LoadPortfolio(ctx context.Context, botID string) (*model.Portfolio, error) {
	raw, err := s.client.Get(ctx, fmt.Sprintf(keyPortfolio, botID)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("load portfolio %s: %w", botID, err)
	}
	var pf model.Portfolio
	if err := json.Unmarshal(raw, &pf); err != nil {
		return nil, fmt.Errorf("decode portfolio %s: %w", botID, err)
	}
	return &pf, nil
}

func (s *RedisStore) SavePortfolio(ctx context.Context, botID string, pf *model.Portfolio) error {
	data, err := json.Marshal(pf)
	if err != nil {
		return fmt.Errorf("marshal portfolio %s: %w", botID, err)
	}
	if err := s.client.Set(ctx, fmt.Sprintf(keyPortfolio, botID), data, 0).Err(); err != nil {
		s.log.Error("failed to save portfolio",
			zap.String("bot_id", botID),
			zap.Error(err))
		return fmt.Errorf("save portfolio %s: %w", botID, err)
	}
	return nil
}

func (s *RedisStore) AppendTrade(ctx context.Context, rec model.TradeRecord) error {
	data, err := json.Marshal(rec)
	if err != nil {
		return fmt.Errorf("marshal trade: %w", err)
	}
	key := fmt.Sprintf(keyTrades, rec.BotID)
	if err := s.client.RPush(ctx, key, data).Err(); err != nil {
		s.log.Error("failed to append trade",
			zap.String("bot_id", rec.BotID),
			zap.String("symbol", rec.Symbol),
			zap.Error(err))
		return fmt.Errorf("append trade %s: %w", rec.BotID, err)
	}
	return nil
}

func (s *RedisStore) CommitTrade(ctx context.Context, botID string, pf *model.Portfolio, rec model.TradeRecord) error {
	pfData, err := json.Marshal(pf)
	if err != nil {
		return fmt.Errorf("marshal portfolio %s: %w", botID, err)
	}
	recData, err := json.Marshal(rec)
	if err != nil {
		return fmt.Errorf("marshal trade: %w", err)
	}

	// MULTI/EXEC so the trade log and the portfolio snapshot move
	// together.
	_, err = s.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.RPush(ctx, fmt.Sprintf(keyTrades, botID), recData)
		pipe.Set(ctx, fmt.Sprintf(keyPortfolio, botID), pfData, 0)
		return nil
	})
	if err != nil {
		s.log.Error("failed to commit trade",
			zap.String("bot_id", botID),
			zap.String("symbol", rec.Symbol),
			zap.Error(err))
		return fmt.Errorf("commit trade %s: %w", botID, err)
	}
	return nil
}

func (s *RedisStore) LoadTrades(ctx context.Context, botID string, limit int) ([]model.TradeRecord, error) {
	key := fmt.Sprintf(keyTrades, botID)
	start := int64(0)
	if limit > 0 {
		start = int64(-limit)
	}
	raws, err := s.client.LRange(ctx, key, start, -1).Result()
	if err != nil {
		return nil, fmt.Errorf("load trades %s: %w", botID, err)
	}
	out := make([]model.TradeRecord, 0, len(raws))
	for _, raw := range raws {
		var rec model.TradeRecord
		if err := json.Unmarshal([]byte(raw), &rec); err != nil {
			return nil, fmt.Errorf("decode trade %s: %w", botID, err)
		}
		out = append(out, rec)
	}
	return out, nil
}

func (s *RedisStore) AppendRunLog(ctx context.Context, botID, status, detail string) error {
	entry := RunLogEntry{
		Timestamp: time.Now().UTC(),
		BotID:     botID,
		Status:    status,
		Detail:    detail,
	}
	data, err := json.Marshal(entry)
	if err != nil {
		return fmt.Errorf("marshal run log: %w", err)
	}
	key := fmt.Sprintf(keyRunLog, botID)

	// Newest first, capped, in one round trip.
	pipe := s.client.Pipeline()
	pipe.LPush(ctx, key, data)
	pipe.LTrim(ctx, key, 0, runLogMaxLength-1)
	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("append run log %s: %w", botID, err)
	}
	return nil
}

func (s *RedisStore) LoadRunLogs(ctx context.Context, botID string, limit int) ([]RunLogEntry, error) {
	if limit <= 0 {
		limit = runLogMaxLength
	}
	raws, err := s.client.LRange(ctx, fmt.Sprintf(keyRunLog, botID), 0, int64(limit-1)).Result()
	if err != nil {
		return nil, fmt.Errorf("load run logs %s: %w", botID, err)
	}
	out := make([]RunLogEntry, 0, len(raws))
	for _, raw := range raws {
		var entry RunLogEntry
		if err := json.Unmarshal([]byte(raw), &entry); err != nil {
			return nil, fmt.Errorf("decode run log %s: %w", botID, err)
		}
		out = append(out, entry)
	}
	return out, nil
}

// cachedBars is the stored shape for a bar window; FetchedAt drives the
// staleness check at load time.
type cachedBars struct {
	FetchedAt time.Time   `json:"fetched_at"`
	Bars      []model.Bar `json:"bars"`
}

func (s *RedisStore) CacheBars(ctx context.Context, symbol, interval, period string, bars []model.Bar) error {
	data, err := json.Marshal(cachedBars{FetchedAt: time.Now().UTC(), Bars: bars})
	if err != nil {
		return fmt.Errorf("marshal cached bars: %w", err)
	}
	key := fmt.Sprintf(keyBars, symbol, interval, period)
	if err := s.client.Set(ctx, key, data, 0).Err(); err != nil {
		return fmt.Errorf("cache bars %s: %w", symbol, err)
	}
	return nil
}

func (s *RedisStore) LoadCachedBars(ctx context.Context, symbol, interval, period string, maxAge time.Duration) ([]model.Bar, error) {
	key := fmt.Sprintf(keyBars, symbol, interval, period)
	raw, err := s.client.Get(ctx, key).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("load cached bars %s: %w", symbol, err)
	}
	var entry cachedBars
	if err := json.Unmarshal(raw, &entry); err != nil {
		return nil, fmt.Errorf("decode cached bars %s: %w", symbol, err)
	}
	if maxAge > 0 && time.Since(entry.FetchedAt) > maxAge {
		return nil, nil
	}
	return entry.Bars, nil
}
