package decision

import "quant-bot/internal/model"

// Intent is the aggregated instruction produced once per evaluation
// cycle. Keep these values stable; they appear in run logs.
type Intent string

const (
	IntentBuy  Intent = "BUY"
	IntentSell Intent = "SELL"
	IntentHold Intent = "HOLD"
)

// Signaler maps one enriched row to a directional signal.
// Contract: the result is exactly one of -1, 0, 1.
type Signaler interface {
	Name() string
	Signal(row model.SignalRow) int
}
