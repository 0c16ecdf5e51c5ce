package data

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"quant-bot/internal/model"
)

// Provider fetches OHLCV bars for a symbol at a sampling interval over
// a lookback period. Implementations may return fewer rows than the
// period implies, never duplicate timestamps, and must be idempotent
// for identical arguments.
type Provider interface {
	FetchBars(ctx context.Context, symbol, interval, period string) ([]model.Bar, error)
}

// DataUnavailableError signals an empty or failed fetch. The run cycle
// treats it as a hold decision, not a fatal error: markets close.
type DataUnavailableError struct {
	Symbol   string
	Interval string
	Period   string
	Cause    error
}

func (e *DataUnavailableError) Error() string {
	msg := fmt.Sprintf("no data available for %s (interval=%s period=%s)", e.Symbol, e.Interval, e.Period)
	if e.Cause != nil {
		msg += ": " + e.Cause.Error()
	}
	return msg
}

func (e *DataUnavailableError) Unwrap() error { return e.Cause }

// minuteCapPeriod is the longest period the upstream provider serves
// for minute-level intervals.
const minuteCapPeriod = 7 * 24 * time.Hour

// ParseDuration parses the interval/period grammar used throughout the
// provider surface: an integer count plus a unit suffix m (minutes),
// h (hours), d (days) or w (weeks), e.g. "1m", "4h", "1d", "2w".
func ParseDuration(s string) (time.Duration, error) {
	s = strings.TrimSpace(strings.ToLower(s))
	if len(s) < 2 {
		return 0, fmt.Errorf("invalid duration %q", s)
	}
	unit := s[len(s)-1:]
	n, err := strconv.Atoi(s[:len(s)-1])
	if err != nil || n <= 0 {
		return 0, fmt.Errorf("invalid duration %q", s)
	}
	switch unit {
	case "m":
		return time.Duration(n) * time.Minute, nil
	case "h":
		return time.Duration(n) * time.Hour, nil
	case "d":
		return time.Duration(n) * 24 * time.Hour, nil
	case "w":
		return time.Duration(n) * 7 * 24 * time.Hour, nil
	default:
		return 0, fmt.Errorf("invalid duration unit in %q (want m, h, d or w)", s)
	}
}

// ClampPeriod enforces the upstream policy that minute-level intervals
// are served for at most 7 days. It returns the period string to use.
func ClampPeriod(interval, period string) (string, error) {
	iv, err := ParseDuration(interval)
	if err != nil {
		return "", fmt.Errorf("interval: %w", err)
	}
	pd, err := ParseDuration(period)
	if err != nil {
		return "", fmt.Errorf("period: %w", err)
	}
	if iv < time.Hour && pd > minuteCapPeriod {
		return "7d", nil
	}
	return period, nil
}
