package strategy

import "quant-bot/internal/model"

// RSIReversion trades against RSI extremes: oversold rows signal a buy,
// overbought rows a sell. It reads the "rsi" indicator computed during
// enrichment; rows without one are treated as neutral (RSI 50).
type RSIReversion struct {
	Oversold   float64
	Overbought float64
}

func NewRSIReversion(oversold, overbought float64) *RSIReversion {
	return &RSIReversion{Oversold: oversold, Overbought: overbought}
}

func (s *RSIReversion) Name() string { return "rsi-reversion" }

func (s *RSIReversion) Signal(row model.SignalRow) int {
	rsi := row.Indicator("rsi", 50)
	switch {
	case rsi <= s.Oversold:
		return 1
	case rsi >= s.Overbought:
		return -1
	default:
		return 0
	}
}
