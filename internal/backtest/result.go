package backtest

import "quant-bot/internal/model"

// Result is the primary "what happened" artifact of one backtest.
type Result struct {
	EquityCurve []model.EquityPoint
	Trades      []model.TradeRecord

	// Final is the isolated portfolio after the last row.
	Final      *model.Portfolio
	FinalWorth float64
}
