package strategy

import "quant-bot/internal/model"

// SMACross signals on the relation of a fast to a slow simple moving
// average of the close: fast above slow is bullish, below is bearish.
// During warmup (slow window not yet full) it stays neutral.
type SMACross struct {
	Fast int
	Slow int

	fast *closeWindow
	slow *closeWindow
}

func NewSMACross(fast, slow int) *SMACross {
	return &SMACross{
		Fast: fast,
		Slow: slow,
		fast: newCloseWindow(fast),
		slow: newCloseWindow(slow),
	}
}

func (s *SMACross) Name() string { return "sma-cross" }

func (s *SMACross) Signal(row model.SignalRow) int {
	s.fast.Add(row.Close)
	s.slow.Add(row.Close)
	if !s.slow.Full() {
		return 0
	}
	switch {
	case s.fast.Mean() > s.slow.Mean():
		return 1
	case s.fast.Mean() < s.slow.Mean():
		return -1
	default:
		return 0
	}
}
