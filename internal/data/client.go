package data

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"go.uber.org/zap"

	"quant-bot/internal/model"
)

// APIClient fetches OHLCV bars from the market-data REST API.
type APIClient struct {
	APIKey  string
	BaseURL string
	Client  *http.Client

	Log *zap.Logger
}

// NewAPIClient creates a market-data API client.
// If baseURL is empty, defaults to "https://api.marketbars.io".
func NewAPIClient(apiKey, baseURL string, log *zap.Logger) *APIClient {
	if baseURL == "" {
		baseURL = "https://api.marketbars.io"
	}
	if log == nil {
		log = zap.NewNop()
	}
	return &APIClient{
		APIKey:  apiKey,
		BaseURL: baseURL,
		Client: &http.Client{
			Timeout: 30 * time.Second,
		},
		Log: log,
	}
}

// APIError represents an error response from the market-data API.
type APIError struct {
	StatusCode int
	Code       string
	Message    string
	RetryAfter string // for rate limit errors
}

func (e *APIError) Error() string {
	return e.Message
}

// FetchBars fetches OHLCV rows for symbol. Minute-level intervals are
// clamped to a 7-day period before the request goes out. An empty or
// failed response surfaces as DataUnavailableError so the caller can
// resolve the cycle to a hold.
func (c *APIClient) FetchBars(ctx context.Context, symbol, interval, period string) ([]model.Bar, error) {
	if symbol == "" {
		return nil, fmt.Errorf("symbol is required")
	}
	period, err := ClampPeriod(interval, period)
	if err != nil {
		return nil, err
	}

	u, err := url.Parse(fmt.Sprintf("%s/v1/bars/%s", c.BaseURL, url.PathEscape(symbol)))
	if err != nil {
		return nil, fmt.Errorf("invalid base URL: %w", err)
	}
	q := u.Query()
	q.Set("interval", interval)
	q.Set("period", period)
	u.RawQuery = q.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("x-api-key", c.APIKey)
	req.Header.Set("Accept", "application/json")

	start := time.Now()
	resp, err := c.Client.Do(req)
	if err != nil {
		c.Log.Warn("bars request failed",
			zap.String("symbol", symbol),
			zap.String("interval", interval),
			zap.Error(err))
		return nil, &DataUnavailableError{Symbol: symbol, Interval: interval, Period: period, Cause: err}
	}
	defer resp.Body.Close()

	c.Log.Debug("bars response",
		zap.String("symbol", symbol),
		zap.String("interval", interval),
		zap.String("period", period),
		zap.Int("status", resp.StatusCode),
		zap.Duration("duration", time.Since(start)))

	switch resp.StatusCode {
	case http.StatusOK:
	case http.StatusUnauthorized:
		return nil, &APIError{
			StatusCode: resp.StatusCode,
			Code:       "UNAUTHORIZED",
			Message:    "unauthorized: invalid API key",
		}
	case http.StatusForbidden:
		return nil, &APIError{
			StatusCode: resp.StatusCode,
			Code:       "INVALID_API_KEY",
			Message:    "invalid API key or insufficient permissions",
		}
	case http.StatusTooManyRequests:
		retryAfter := resp.Header.Get("Retry-After")
		return nil, &APIError{
			StatusCode: resp.StatusCode,
			Code:       "RATE_LIMIT_EXCEEDED",
			Message:    fmt.Sprintf("rate limit exceeded, retry after: %s", retryAfter),
			RetryAfter: retryAfter,
		}
	default:
		return nil, &APIError{
			StatusCode: resp.StatusCode,
			Code:       "API_ERROR",
			Message:    fmt.Sprintf("API returned status %d: %s", resp.StatusCode, resp.Status),
		}
	}

	var result model.BarsResponse
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return nil, fmt.Errorf("failed to decode response: %w", err)
	}
	if len(result.Data) == 0 {
		return nil, &DataUnavailableError{Symbol: symbol, Interval: interval, Period: period}
	}
	return result.Data, nil
}
