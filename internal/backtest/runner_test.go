package backtest

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"quant-bot/internal/model"
)

// scriptedSignaler replays a fixed signal sequence, one per call.
type scriptedSignaler struct {
	signals []int
	i       int
}

func (s *scriptedSignaler) Name() string { return "scripted" }

func (s *scriptedSignaler) Signal(model.SignalRow) int {
	if s.i >= len(s.signals) {
		return 0
	}
	v := s.signals[s.i]
	s.i++
	return v
}

func makeRows(closes []float64) []model.SignalRow {
	start := time.Date(2024, 1, 2, 14, 0, 0, 0, time.UTC)
	rows := make([]model.SignalRow, len(closes))
	for i, c := range closes {
		rows[i] = model.SignalRow{Bar: model.Bar{
			Timestamp: start.Add(time.Duration(i) * time.Hour),
			Symbol:    "AAPL",
			Close:     c,
		}}
	}
	return rows
}

func TestRunRejectsBadInputs(t *testing.T) {
	_, err := New(1000, 1).Run(makeRows([]float64{100}), nil)
	require.Error(t, err)

	_, err = New(0, 1).Run(makeRows([]float64{100}), &scriptedSignaler{})
	require.Error(t, err)
}

func TestRunEmptyRows(t *testing.T) {
	res, err := New(1000, 1).Run(nil, &scriptedSignaler{})
	require.NoError(t, err)
	assert.Empty(t, res.EquityCurve)
	assert.Empty(t, res.Trades)
	assert.Equal(t, 0.0, res.FinalWorth)
	assert.Equal(t, 1000.0, res.Final.Cash())
}

func TestRunBuyThenSell(t *testing.T) {
	rows := makeRows([]float64{100, 110, 120, 120})
	sig := &scriptedSignaler{signals: []int{1, 0, -1, 0}}

	res, err := New(1000, 1).Run(rows, sig)
	require.NoError(t, err)
	require.Len(t, res.Trades, 2)

	assert.Equal(t, model.SideBuy, res.Trades[0].Side)
	assert.Equal(t, 100.0, res.Trades[0].Price)
	assert.Equal(t, model.SideSell, res.Trades[1].Side)
	assert.Equal(t, 120.0, res.Trades[1].Price)

	// 1000/100 = 10 units, sold at 120.
	assert.InDelta(t, 1200.0, res.FinalWorth, 1e-9)
	require.Len(t, res.EquityCurve, 4)
	assert.InDelta(t, 1000.0, res.EquityCurve[0].Worth, 1e-9)
	assert.InDelta(t, 1100.0, res.EquityCurve[1].Worth, 1e-9)
}

func TestRunRepeatedBuySignalsAreIdempotent(t *testing.T) {
	rows := makeRows([]float64{100, 110, 120})
	sig := &scriptedSignaler{signals: []int{1, 1, 1}}

	res, err := New(1000, 1).Run(rows, sig)
	require.NoError(t, err)
	// Second and third buys find zero cash and execute nothing.
	assert.Len(t, res.Trades, 1)
	assert.InDelta(t, 1200.0, res.FinalWorth, 1e-9)
}

func TestRunSkipsNonAdvancingTimestamps(t *testing.T) {
	rows := makeRows([]float64{100, 110, 120})
	rows[1].Timestamp = rows[0].Timestamp

	res, err := New(1000, 1).Run(rows, &scriptedSignaler{signals: []int{0, 0, 0}})
	require.NoError(t, err)
	assert.Len(t, res.EquityCurve, 2)
}

func TestRunSkipsRowsBehindLastAcceptedPoint(t *testing.T) {
	// After the jump to +3h, the +1h and +2h rows are both in the past
	// relative to the accepted curve and must be dropped, even though
	// +2h advances on the row right before it.
	rows := makeRows([]float64{100, 110, 120, 130})
	rows[1].Timestamp = rows[0].Timestamp.Add(3 * time.Hour)
	rows[2].Timestamp = rows[0].Timestamp.Add(time.Hour)
	rows[3].Timestamp = rows[0].Timestamp.Add(2 * time.Hour)

	res, err := New(1000, 1).Run(rows, &scriptedSignaler{signals: []int{0, 0, 0, 0}})
	require.NoError(t, err)
	require.Len(t, res.EquityCurve, 2)
	for i := 1; i < len(res.EquityCurve); i++ {
		assert.True(t, res.EquityCurve[i].Timestamp.After(res.EquityCurve[i-1].Timestamp))
	}
}

func TestRunWindowSmoothsSignals(t *testing.T) {
	rows := makeRows([]float64{100, 100, 100, 100})
	// One buy vote followed by holds; with window 3 the vote keeps the
	// mean positive for two more rows but the position is already open.
	sig := &scriptedSignaler{signals: []int{-1, 1, 1, 1}}

	res, err := New(1000, 3).Run(rows, sig)
	require.NoError(t, err)
	// Row 0: mean -1 sell (no-op). Row 1: mean 0 hold. Row 2: mean 1/3 buy.
	require.Len(t, res.Trades, 1)
	assert.Equal(t, model.SideBuy, res.Trades[0].Side)
	assert.Equal(t, rows[2].Timestamp, res.Trades[0].Timestamp)
}

func TestRunIsDeterministic(t *testing.T) {
	rows := makeRows([]float64{100, 104, 99, 108, 103, 111, 95, 120})

	run := func() *Result {
		res, err := New(1000, 2).Run(rows, &scriptedSignaler{signals: []int{1, 1, -1, 1, -1, -1, 1, 1}})
		require.NoError(t, err)
		return res
	}

	a, b := run(), run()
	assert.Equal(t, a.EquityCurve, b.EquityCurve)
	assert.Equal(t, a.Trades, b.Trades)
	assert.Equal(t, a.FinalWorth, b.FinalWorth)
}
