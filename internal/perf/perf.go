package perf

import (
	"math"
	"time"

	"quant-bot/internal/model"
)

// Metrics is the risk/return summary for one equity curve plus its
// realized trade log.
type Metrics struct {
	StartUTC time.Time `json:"start_utc"`
	EndUTC   time.Time `json:"end_utc"`
	Periods  int       `json:"periods"`

	InitialWorth float64 `json:"initial_worth"`
	FinalWorth   float64 `json:"final_worth"`

	TotalReturn      float64 `json:"total_return"`
	AnnualizedReturn float64 `json:"annualized_return"`
	Volatility       float64 `json:"volatility"`
	Sharpe           float64 `json:"sharpe"`
	Sortino          float64 `json:"sortino"`
	// MaxDrawdown is the worst decline from a running peak, expressed
	// as a negative fraction (0 for a curve that never declines).
	MaxDrawdown float64 `json:"max_drawdown"`
	Calmar      float64 `json:"calmar"`

	Trades         int     `json:"trades"`
	WinRate        float64 `json:"win_rate"`
	RealizedProfit float64 `json:"realized_profit"`
}

// PeriodsPerYear derives the annualization factor from the sampling
// interval: daily-or-slower bars scale against 252 trading days, faster
// bars against a 6.5-hour trading session. A zero interval (degenerate
// curve) falls back to daily.
func PeriodsPerYear(interval time.Duration) float64 {
	if interval <= 0 {
		return 252
	}
	day := 24 * time.Hour
	if interval >= day {
		return 252 * float64(day) / float64(interval)
	}
	session := time.Duration(6.5 * float64(time.Hour))
	return 252 * float64(session) / float64(interval)
}

// Compute derives the full metric set over equity. Degenerate series
// (length <= 1, or zero variance) produce zeros, never NaN.
func Compute(equity []model.EquityPoint, trades []model.TradeRecord, periodsPerYear float64) Metrics {
	m := Metrics{}
	fillTradeStats(&m, trades)
	if len(equity) == 0 {
		return m
	}

	m.StartUTC = equity[0].Timestamp.UTC()
	m.EndUTC = equity[len(equity)-1].Timestamp.UTC()
	m.Periods = len(equity) - 1
	m.InitialWorth = equity[0].Worth
	m.FinalWorth = equity[len(equity)-1].Worth
	if len(equity) < 2 {
		return m
	}

	if m.InitialWorth > 0 {
		m.TotalReturn = m.FinalWorth/m.InitialWorth - 1
	}
	if base := 1 + m.TotalReturn; base > 0 && m.Periods > 0 {
		m.AnnualizedReturn = math.Pow(base, periodsPerYear/float64(m.Periods)) - 1
	}

	returns := make([]float64, 0, len(equity)-1)
	negatives := make([]float64, 0)
	for i := 1; i < len(equity); i++ {
		prev := equity[i-1].Worth
		if prev == 0 {
			continue
		}
		r := equity[i].Worth/prev - 1
		returns = append(returns, r)
		if r < 0 {
			negatives = append(negatives, r)
		}
	}

	mean := meanOf(returns)
	sd := stdevOf(returns)
	sqrtPPY := math.Sqrt(periodsPerYear)

	m.Volatility = sd * sqrtPPY
	if sd > 0 {
		m.Sharpe = mean / sd * sqrtPPY
	}
	if dd := stdevOf(negatives); dd > 0 {
		m.Sortino = mean / dd * sqrtPPY
	}

	m.MaxDrawdown = maxDrawdown(equity)
	if m.MaxDrawdown != 0 {
		m.Calmar = m.AnnualizedReturn / math.Abs(m.MaxDrawdown)
	}
	return m
}

// maxDrawdown returns min over t of worth_t/runningMax - 1.
func maxDrawdown(equity []model.EquityPoint) float64 {
	worst := 0.0
	peak := equity[0].Worth
	for _, pt := range equity {
		if pt.Worth > peak {
			peak = pt.Worth
		}
		if peak > 0 {
			if dd := pt.Worth/peak - 1; dd < worst {
				worst = dd
			}
		}
	}
	return worst
}

func fillTradeStats(m *Metrics, trades []model.TradeRecord) {
	m.Trades = len(trades)
	sells := 0
	wins := 0
	for _, t := range trades {
		if t.Profit == nil {
			continue
		}
		sells++
		m.RealizedProfit += *t.Profit
		if *t.Profit > 0 {
			wins++
		}
	}
	if sells > 0 {
		m.WinRate = float64(wins) / float64(sells)
	}
}

func meanOf(xs []float64) float64 {
	if len(xs) == 0 {
		return 0
	}
	sum := 0.0
	for _, x := range xs {
		sum += x
	}
	return sum / float64(len(xs))
}

// stdevOf is the sample standard deviation; fewer than two values give 0.
func stdevOf(xs []float64) float64 {
	n := len(xs)
	if n < 2 {
		return 0
	}
	mu := meanOf(xs)
	ss := 0.0
	for _, x := range xs {
		d := x - mu
		ss += d * d
	}
	return math.Sqrt(ss / float64(n-1))
}
