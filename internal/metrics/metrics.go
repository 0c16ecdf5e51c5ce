package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

var (
	RunCycles = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "quantbot_run_cycles_total",
			Help: "Total scheduled run cycles (by bot and outcome).",
		},
		[]string{"bot", "status"},
	)

	TradesExecuted = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "quantbot_trades_executed_total",
			Help: "Total trades executed against live portfolios (by bot and side).",
		},
		[]string{"bot", "side"},
	)

	FetchErrors = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "quantbot_fetch_errors_total",
			Help: "Total market-data fetches that returned no usable rows.",
		},
		[]string{"symbol"},
	)

	PortfolioWorth = prometheus.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "quantbot_portfolio_worth",
			Help: "Last computed total worth per bot, marked at the latest close.",
		},
		[]string{"bot"},
	)
)

func init() {
	prometheus.MustRegister(RunCycles, TradesExecuted, FetchErrors, PortfolioWorth)
}
