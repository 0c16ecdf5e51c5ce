package strategy

import "quant-bot/internal/model"

// Momentum compares the close to its value `lookback` bars earlier.
type Momentum struct {
	Lookback int

	closes *closeWindow
}

func NewMomentum(lookback int) *Momentum {
	return &Momentum{
		Lookback: lookback,
		closes:   newCloseWindow(lookback + 1),
	}
}

func (s *Momentum) Name() string { return "momentum" }

func (s *Momentum) Signal(row model.SignalRow) int {
	s.closes.Add(row.Close)
	if !s.closes.Full() {
		return 0
	}
	ref := s.closes.At(s.Lookback)
	switch {
	case row.Close > ref:
		return 1
	case row.Close < ref:
		return -1
	default:
		return 0
	}
}
