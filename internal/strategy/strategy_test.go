package strategy

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"quant-bot/internal/model"
)

func rowAt(i int, close float64) model.SignalRow {
	return model.SignalRow{
		Bar: model.Bar{
			Timestamp: time.Date(2024, 1, 2, 14, 0, 0, 0, time.UTC).Add(time.Duration(i) * time.Hour),
			Symbol:    "AAPL",
			Close:     close,
		},
	}
}

func TestBuildRejectsUnknownStrategy(t *testing.T) {
	_, err := Build("martingale", nil)
	require.Error(t, err)
}

func TestBuildValidatesParams(t *testing.T) {
	_, err := Build("sma-cross", map[string]any{"fast": 30, "slow": 10})
	require.Error(t, err)

	_, err = Build("sma-cross", map[string]any{"fast": 10, "slow": 10})
	require.Error(t, err)

	_, err = Build("momentum", map[string]any{"lookback": 0})
	require.Error(t, err)

	_, err = Build("rsi-reversion", map[string]any{"oversold": 80, "overbought": 20})
	require.Error(t, err)
}

func TestBuildAppliesDefaults(t *testing.T) {
	sig, err := Build("sma-cross", nil)
	require.NoError(t, err)
	sma, ok := sig.(*SMACross)
	require.True(t, ok)
	assert.Equal(t, 10, sma.Fast)
	assert.Equal(t, 30, sma.Slow)
}

func TestBuildAcceptsFloatParams(t *testing.T) {
	// Grid combinations decoded from JSON arrive as float64.
	sig, err := Build("momentum", map[string]any{"lookback": 5.0})
	require.NoError(t, err)
	assert.Equal(t, 5, sig.(*Momentum).Lookback)
}

func TestSMACrossWarmupIsNeutral(t *testing.T) {
	sig := NewSMACross(2, 4)
	for i := 0; i < 3; i++ {
		assert.Equal(t, 0, sig.Signal(rowAt(i, 100)))
	}
}

func TestSMACrossTracksTrend(t *testing.T) {
	sig := NewSMACross(2, 4)

	// Rising closes: fast mean pulls above slow mean.
	last := 0
	for i, c := range []float64{100, 101, 102, 103, 104, 105} {
		last = sig.Signal(rowAt(i, c))
	}
	assert.Equal(t, 1, last)

	// Then a sustained fall flips it bearish.
	for i, c := range []float64{104, 100, 96, 92} {
		last = sig.Signal(rowAt(6+i, c))
	}
	assert.Equal(t, -1, last)
}

func TestMomentumComparesToLookback(t *testing.T) {
	sig := NewMomentum(2)

	assert.Equal(t, 0, sig.Signal(rowAt(0, 100)))
	assert.Equal(t, 0, sig.Signal(rowAt(1, 101)))
	// 103 vs close two bars back (100).
	assert.Equal(t, 1, sig.Signal(rowAt(2, 103)))
	// 99 vs 101.
	assert.Equal(t, -1, sig.Signal(rowAt(3, 99)))
	// Flat vs 103... 103 == 103.
	assert.Equal(t, 0, sig.Signal(rowAt(4, 103)))
}

func TestRSIReversionThresholds(t *testing.T) {
	sig := NewRSIReversion(30, 70)

	row := rowAt(0, 100)
	row.Indicators = map[string]float64{"rsi": 25}
	assert.Equal(t, 1, sig.Signal(row))

	row.Indicators["rsi"] = 70
	assert.Equal(t, -1, sig.Signal(row))

	row.Indicators["rsi"] = 50
	assert.Equal(t, 0, sig.Signal(row))

	// Missing indicator defaults to neutral.
	row.Indicators = nil
	assert.Equal(t, 0, sig.Signal(row))
}
