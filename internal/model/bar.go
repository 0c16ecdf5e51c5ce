package model

import "time"

// BarsResponse matches the JSON shape returned by the market-data API
// (and by cached fixture files).
//
// Example:
// {
//   "status_code": 200,
//   "data": [ ... ]
// }
type BarsResponse struct {
	StatusCode int   `json:"status_code"`
	Data       []Bar `json:"data"`
}

// Bar represents one OHLCV observation at a timestamp.
// Timestamps are provided in the JSON as RFC3339 strings.
type Bar struct {
	Timestamp time.Time `json:"timestamp"`

	Symbol   string `json:"symbol"`
	Interval string `json:"interval"`

	Open   float64 `json:"open"`
	High   float64 `json:"high"`
	Low    float64 `json:"low"`
	Close  float64 `json:"close"`
	Volume float64 `json:"volume"`
}

// SignalRow is one time-indexed observation fed to a decision function:
// the raw bar plus the indicator values computed for it.
type SignalRow struct {
	Bar

	// Indicators maps indicator name to value. Enrichment guarantees no
	// undefined values remain (missing values are forward/back-filled).
	Indicators map[string]float64 `json:"indicators,omitempty"`
}

// Indicator returns the named indicator value, or def if absent.
func (r SignalRow) Indicator(name string, def float64) float64 {
	if v, ok := r.Indicators[name]; ok {
		return v
	}
	return def
}

// BarDuration returns the spacing between the first two bars, or 0 for
// sequences shorter than two. Used to derive periods-per-year for
// annualized statistics.
func BarDuration(rows []SignalRow) time.Duration {
	if len(rows) < 2 {
		return 0
	}
	return rows[1].Timestamp.Sub(rows[0].Timestamp)
}
