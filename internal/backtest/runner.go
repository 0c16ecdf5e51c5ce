package backtest

import (
	"fmt"

	"quant-bot/internal/decision"
	"quant-bot/internal/model"
	"quant-bot/internal/trade"
)

// Runner replays a historical row sequence through the decision
// aggregator and executor against a private portfolio. Output is
// bit-for-bit reproducible for identical input and parameters: no
// wall-clock, no randomness, no state shared with any other run.
type Runner struct {
	// InitialCash seeds the isolated portfolio for each run.
	InitialCash float64
	// Window is the decision-aggregation window (default 1).
	Window int
}

func New(initialCash float64, window int) *Runner {
	if window < 1 {
		window = 1
	}
	return &Runner{InitialCash: initialCash, Window: window}
}

// Run executes one backtest. An empty row sequence yields an empty
// equity curve and no trades, without error. Rows must be ordered by
// timestamp ascending; rows that do not advance the clock are skipped
// so the equity curve carries no duplicate timestamps.
func (r *Runner) Run(rows []model.SignalRow, sig decision.Signaler) (*Result, error) {
	if sig == nil {
		return nil, fmt.Errorf("signaler is nil")
	}
	if r.InitialCash <= 0 {
		return nil, fmt.Errorf("initial cash must be > 0, got %g", r.InitialCash)
	}

	pf := model.NewPortfolio(r.InitialCash)
	exec := trade.NewExecutor("", pf)
	agg := decision.NewAggregator(r.Window)

	curve := make([]model.EquityPoint, 0, len(rows))
	prices := make(map[string]float64, 1)

	for idx, row := range rows {
		// Compare against the last accepted point, not the previous
		// input row, so a mis-ordered row cannot sneak an out-of-order
		// point onto the curve.
		if len(curve) > 0 && !row.Timestamp.After(curve[len(curve)-1].Timestamp) {
			continue
		}

		intent := agg.Push(sig.Signal(row))
		switch intent {
		case decision.IntentBuy:
			if _, err := exec.Buy(row.Timestamp, row.Symbol, row.Close, 0); err != nil {
				return nil, fmt.Errorf("row %d buy: %w", idx, err)
			}
		case decision.IntentSell:
			if _, err := exec.Sell(row.Timestamp, row.Symbol, row.Close, 0); err != nil {
				return nil, fmt.Errorf("row %d sell: %w", idx, err)
			}
		}

		prices[row.Symbol] = row.Close
		curve = append(curve, model.EquityPoint{
			Timestamp: row.Timestamp,
			Worth:     pf.Worth(prices),
		})
	}

	res := &Result{
		EquityCurve: curve,
		Trades:      exec.Trades(),
		Final:       pf,
	}
	if len(curve) > 0 {
		res.FinalWorth = curve[len(curve)-1].Worth
	}
	return res, nil
}
