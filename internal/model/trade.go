package model

import "time"

// Side is the direction of an executed trade.
// Keep these values stable; they are persisted and intended for CSV output.
type Side string

const (
	SideBuy  Side = "BUY"
	SideSell Side = "SELL"
)

// TradeRecord is an immutable fact describing one executed trade.
// Records are append-only and never mutated after creation.
type TradeRecord struct {
	Timestamp time.Time `json:"timestamp"`
	BotID     string    `json:"bot_id,omitempty"`

	Symbol   string  `json:"symbol"`
	Side     Side    `json:"side"`
	Quantity float64 `json:"quantity"`
	Price    float64 `json:"price"`

	// CashDelta is the signed change to the cash balance: negative for
	// buys, positive for sells.
	CashDelta float64 `json:"cash_delta"`

	// Profit is the realized profit against the weighted-average cost
	// basis. Set only for sells; nil for buys.
	Profit *float64 `json:"profit,omitempty"`
}

// EquityPoint is one (timestamp, total worth) observation on an equity
// curve. Curves are ordered by timestamp ascending with no duplicates.
type EquityPoint struct {
	Timestamp time.Time `json:"timestamp"`
	Worth     float64   `json:"worth"`
}
