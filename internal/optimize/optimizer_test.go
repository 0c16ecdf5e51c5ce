package optimize

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"quant-bot/internal/model"
)

func gridRows(n int) []model.SignalRow {
	start := time.Date(2024, 1, 2, 14, 0, 0, 0, time.UTC)
	rows := make([]model.SignalRow, n)
	for i := range rows {
		// Sawtooth around a slow drift gives the crossover something
		// to trade.
		close := 100 + float64(i%7) + float64(i)/50
		rows[i] = model.SignalRow{Bar: model.Bar{
			Timestamp: start.Add(time.Duration(i) * time.Hour),
			Symbol:    "AAPL",
			Close:     close,
		}}
	}
	return rows
}

func TestCombinationsCartesianProduct(t *testing.T) {
	g := Grid{
		"fast": []any{5, 10},
		"slow": []any{20, 30, 40},
	}
	combos := g.Combinations()
	require.Len(t, combos, 6)

	// Sorted names, last name fastest.
	assert.Equal(t, Combination{"fast": 5, "slow": 20}, combos[0])
	assert.Equal(t, Combination{"fast": 5, "slow": 30}, combos[1])
	assert.Equal(t, Combination{"fast": 10, "slow": 40}, combos[5])
}

func TestCombinationsEmptyGrid(t *testing.T) {
	assert.Nil(t, Grid{}.Combinations())
	assert.Nil(t, Grid{"fast": []any{}}.Combinations())
}

func TestCombinationString(t *testing.T) {
	c := Combination{"slow": 20, "fast": 5}
	assert.Equal(t, "fast=5 slow=20", c.String())
}

func TestSearchRanksDescending(t *testing.T) {
	opt := &Optimizer{Strategy: "sma-cross", InitialCash: 10000, Workers: 2}
	grid := Grid{
		"fast": []any{3, 5},
		"slow": []any{10, 20},
	}

	outcomes, err := opt.Search(context.Background(), gridRows(200), grid, "sharpe")
	require.NoError(t, err)
	require.Len(t, outcomes, 4)

	for i := 1; i < len(outcomes); i++ {
		require.Empty(t, outcomes[i].Err)
		assert.GreaterOrEqual(t, outcomes[i-1].Score, outcomes[i].Score)
	}
}

func TestSearchIsReproducible(t *testing.T) {
	rows := gridRows(150)
	grid := Grid{
		"fast": []any{3, 5, 8},
		"slow": []any{13, 21},
	}

	run := func() []Outcome {
		opt := &Optimizer{Strategy: "sma-cross", InitialCash: 10000, Workers: 4}
		out, err := opt.Search(context.Background(), rows, grid, "total_return")
		require.NoError(t, err)
		return out
	}

	assert.Equal(t, run(), run())
}

func TestSearchIsolatesDegenerateCombos(t *testing.T) {
	opt := &Optimizer{Strategy: "sma-cross", InitialCash: 10000}
	// fast=50 slow=20 cannot build; the rest must still rank.
	grid := Grid{
		"fast": []any{5, 50},
		"slow": []any{20},
	}

	outcomes, err := opt.Search(context.Background(), gridRows(100), grid, "sharpe")
	require.NoError(t, err)
	require.Len(t, outcomes, 2)

	assert.Empty(t, outcomes[0].Err)
	assert.NotEmpty(t, outcomes[1].Err)
	assert.Equal(t, Combination{"fast": 50, "slow": 20}, outcomes[1].Params)
}

func TestSearchWindowParamOverride(t *testing.T) {
	opt := &Optimizer{Strategy: "momentum", InitialCash: 10000, Window: 1}
	grid := Grid{
		"lookback": []any{3},
		"window":   []any{1, 5},
	}

	outcomes, err := opt.Search(context.Background(), gridRows(120), grid, "total_return")
	require.NoError(t, err)
	require.Len(t, outcomes, 2)
	for _, oc := range outcomes {
		assert.Empty(t, oc.Err)
	}
}

func TestSearchRejectsUnknownObjective(t *testing.T) {
	opt := &Optimizer{Strategy: "sma-cross", InitialCash: 10000}
	_, err := opt.Search(context.Background(), gridRows(50), Grid{"fast": []any{3}, "slow": []any{10}}, "luck")
	require.Error(t, err)
}

func TestSearchHonorsCancellation(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	opt := &Optimizer{Strategy: "sma-cross", InitialCash: 10000, Workers: 1}
	grid := Grid{
		"fast": []any{3, 4, 5, 6, 7, 8},
		"slow": []any{10, 20, 30, 40},
	}
	_, err := opt.Search(ctx, gridRows(400), grid, "sharpe")
	require.ErrorIs(t, err, context.Canceled)
}
