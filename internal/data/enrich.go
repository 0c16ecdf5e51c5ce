package data

import (
	"fmt"
	"math"

	"github.com/evdnx/goti"

	"quant-bot/internal/model"
)

// Enrich computes indicator values for each bar and returns the
// same-length signal-row sequence. Warmup gaps are forward/back-filled
// so no row reaches a decision function with an undefined indicator.
func Enrich(bars []model.Bar) ([]model.SignalRow, error) {
	suite, err := goti.NewIndicatorSuiteWithConfig(goti.DefaultConfig())
	if err != nil {
		return nil, fmt.Errorf("indicator suite: %w", err)
	}

	rows := make([]model.SignalRow, len(bars))
	rsi := make([]float64, len(bars))
	mfi := make([]float64, len(bars))

	for i, b := range bars {
		if err := suite.Add(b.High, b.Low, b.Close, b.Volume); err != nil {
			return nil, fmt.Errorf("bar %d: %w", i, err)
		}
		// Calculate errors during warmup; mark the gap and fill below.
		if v, err := suite.GetRSI().Calculate(); err == nil {
			rsi[i] = v
		} else {
			rsi[i] = math.NaN()
		}
		if v, err := suite.GetMFI().Calculate(); err == nil {
			mfi[i] = v
		} else {
			mfi[i] = math.NaN()
		}
		rows[i] = model.SignalRow{Bar: b}
	}

	fill(rsi)
	fill(mfi)

	for i := range rows {
		rows[i].Indicators = map[string]float64{
			"rsi": rsi[i],
			"mfi": mfi[i],
		}
	}
	return rows, nil
}

// fill replaces NaN gaps by carrying the previous value forward, then
// back-fills any leading gap from the first defined value. A series
// with no defined value at all becomes the neutral 50.
func fill(vals []float64) {
	last := math.NaN()
	for i, v := range vals {
		if math.IsNaN(v) {
			vals[i] = last
		} else {
			last = v
		}
	}
	first := math.NaN()
	for _, v := range vals {
		if !math.IsNaN(v) {
			first = v
			break
		}
	}
	if math.IsNaN(first) {
		first = 50
	}
	for i := range vals {
		if math.IsNaN(vals[i]) {
			vals[i] = first
		} else {
			break
		}
	}
}
