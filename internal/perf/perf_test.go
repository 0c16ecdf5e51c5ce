package perf

import (
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"quant-bot/internal/model"
)

func curveOf(worths ...float64) []model.EquityPoint {
	start := time.Date(2024, 1, 2, 14, 0, 0, 0, time.UTC)
	out := make([]model.EquityPoint, len(worths))
	for i, w := range worths {
		out[i] = model.EquityPoint{Timestamp: start.Add(time.Duration(i) * time.Hour), Worth: w}
	}
	return out
}

func assertNoNaN(t *testing.T, m Metrics) {
	t.Helper()
	for name, v := range map[string]float64{
		"total_return":      m.TotalReturn,
		"annualized_return": m.AnnualizedReturn,
		"volatility":        m.Volatility,
		"sharpe":            m.Sharpe,
		"sortino":           m.Sortino,
		"max_drawdown":      m.MaxDrawdown,
		"calmar":            m.Calmar,
		"win_rate":          m.WinRate,
	} {
		assert.False(t, math.IsNaN(v), "%s is NaN", name)
		assert.False(t, math.IsInf(v, 0), "%s is Inf", name)
	}
}

func TestComputeEmptyCurve(t *testing.T) {
	m := Compute(nil, nil, 252)
	assert.Equal(t, Metrics{}, m)
}

func TestComputeSinglePoint(t *testing.T) {
	m := Compute(curveOf(1000), nil, 252)
	assert.Equal(t, 0, m.Periods)
	assert.Equal(t, 1000.0, m.InitialWorth)
	assert.Equal(t, 0.0, m.TotalReturn)
	assertNoNaN(t, m)
}

func TestComputeFlatCurveIsAllZeros(t *testing.T) {
	m := Compute(curveOf(1000, 1000, 1000, 1000), nil, 252)
	assert.Equal(t, 0.0, m.TotalReturn)
	assert.Equal(t, 0.0, m.Volatility)
	assert.Equal(t, 0.0, m.Sharpe)
	assert.Equal(t, 0.0, m.Sortino)
	assert.Equal(t, 0.0, m.MaxDrawdown)
	assert.Equal(t, 0.0, m.Calmar)
	assertNoNaN(t, m)
}

func TestComputeTotalReturn(t *testing.T) {
	// Both period returns are exactly 0.10, so volatility is zero and
	// Sharpe stays at its degenerate 0.
	m := Compute(curveOf(1000, 1100, 1210), nil, 252)
	assert.InDelta(t, 0.21, m.TotalReturn, 1e-9)
	assert.Equal(t, 2, m.Periods)
	assert.Equal(t, 0.0, m.Volatility)
	assert.Equal(t, 0.0, m.Sharpe)
	assertNoNaN(t, m)
}

func TestComputeSharpeOnUnevenCurve(t *testing.T) {
	// Returns 0.10 then ~0.082: positive mean, nonzero spread.
	m := Compute(curveOf(1000, 1100, 1190), nil, 252)
	assert.True(t, m.Volatility > 0)
	assert.True(t, m.Sharpe > 0)
	assertNoNaN(t, m)
}

func TestComputeMaxDrawdown(t *testing.T) {
	// Peak 1200, trough 900: drawdown of -25%.
	m := Compute(curveOf(1000, 1200, 900, 1100), nil, 252)
	assert.InDelta(t, -0.25, m.MaxDrawdown, 1e-9)
	assert.True(t, m.Calmar != 0)
	assertNoNaN(t, m)
}

func TestComputeAllLosingCurve(t *testing.T) {
	m := Compute(curveOf(1000, 900, 800, 700), nil, 252)
	assert.True(t, m.TotalReturn < 0)
	assert.InDelta(t, -0.3, m.MaxDrawdown, 1e-9)
	assert.True(t, m.Sharpe < 0)
	assertNoNaN(t, m)
}

func TestTradeStats(t *testing.T) {
	p := func(v float64) *float64 { return &v }
	trades := []model.TradeRecord{
		{Side: model.SideBuy},
		{Side: model.SideSell, Profit: p(50)},
		{Side: model.SideBuy},
		{Side: model.SideSell, Profit: p(-20)},
	}

	m := Compute(curveOf(1000, 1030), trades, 252)
	assert.Equal(t, 4, m.Trades)
	assert.InDelta(t, 0.5, m.WinRate, 1e-9)
	assert.InDelta(t, 30.0, m.RealizedProfit, 1e-9)
}

func TestPeriodsPerYear(t *testing.T) {
	assert.InDelta(t, 252, PeriodsPerYear(24*time.Hour), 1e-9)
	assert.InDelta(t, 36, PeriodsPerYear(7*24*time.Hour), 1e-9)
	// Hourly bars scale against a 6.5-hour session.
	assert.InDelta(t, 252*6.5, PeriodsPerYear(time.Hour), 1e-9)
	assert.InDelta(t, 252, PeriodsPerYear(0), 1e-9)
}

func TestObjectiveLookup(t *testing.T) {
	for _, name := range ObjectiveNames() {
		fn, err := Objective(name)
		require.NoError(t, err, name)
		require.NotNil(t, fn)
	}

	_, err := Objective("alpha")
	require.Error(t, err)
}

func TestObjectiveReadsMetric(t *testing.T) {
	fn, err := Objective("sharpe")
	require.NoError(t, err)
	assert.Equal(t, 1.5, fn(Metrics{Sharpe: 1.5}))
}
