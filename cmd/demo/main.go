package main

import (
	"flag"
	"fmt"
	"math"
	"os"
	"time"

	"quant-bot/internal/backtest"
	"quant-bot/internal/config"
	"quant-bot/internal/data"
	"quant-bot/internal/model"
	"quant-bot/internal/perf"
	"quant-bot/internal/strategy"
)

// Demo:
// - Generate a synthetic hourly price series (trend plus a sine swing)
// - Enrich it with indicators
// - Run a strategy end to end and print the performance summary
func main() {
	cfgPath := flag.String("config", "", "Path to YAML config (optional)")
	n := flag.Int("n", 500, "Number of bars to simulate")
	outDir := flag.String("out", "", "Optional directory to write equity/trade CSVs")
	flag.Parse()

	bars := syntheticBars("DEMO-USD", *n)
	rows, err := data.Enrich(bars)
	if err != nil {
		panic(err)
	}

	// Defaults (can be overridden via --config).
	stratName := "sma-cross"
	params := map[string]any{"fast": 10, "slow": 30}
	initialCash := 10000.0
	window := 3

	if *cfgPath != "" {
		cfg, err := config.Load(*cfgPath)
		if err != nil {
			panic(err)
		}
		stratName = cfg.Strategy.Name
		params = cfg.Strategy.Params
		initialCash = cfg.Bot.InitialCash
		window = cfg.Bot.Window
	}

	sig, err := strategy.Build(stratName, params)
	if err != nil {
		panic(err)
	}

	runner := backtest.New(initialCash, window)
	res, err := runner.Run(rows, sig)
	if err != nil {
		panic(err)
	}

	m := perf.Compute(res.EquityCurve, res.Trades, perf.PeriodsPerYear(model.BarDuration(rows)))
	fmt.Printf("strategy=%s bars=%d trades=%d\n", stratName, len(rows), len(res.Trades))
	fmt.Printf("final worth=$%.2f return=%.2f%% sharpe=%.2f maxdd=%.2f%%\n",
		res.FinalWorth, m.TotalReturn*100, m.Sharpe, m.MaxDrawdown*100)

	if *outDir != "" {
		if err := os.MkdirAll(*outDir, 0o755); err != nil {
			panic(err)
		}
		if err := backtest.WriteEquityCSV(*outDir+"/equity.csv", res.EquityCurve); err != nil {
			panic(err)
		}
		if err := backtest.WriteTradesCSV(*outDir+"/trades.csv", res.Trades); err != nil {
			panic(err)
		}
		fmt.Printf("wrote CSVs to %s\n", *outDir)
	}
}

// syntheticBars builds an hourly series with enough structure for the
// moving-average and oscillator strategies to trade against.
func syntheticBars(symbol string, n int) []model.Bar {
	start := time.Date(2024, 1, 2, 14, 0, 0, 0, time.UTC)
	bars := make([]model.Bar, 0, n)
	for i := 0; i < n; i++ {
		t := float64(i)
		price := 100 + 0.02*t + 8*math.Sin(t/24)
		spread := 0.5 + 0.3*math.Abs(math.Sin(t/7))
		bars = append(bars, model.Bar{
			Timestamp: start.Add(time.Duration(i) * time.Hour),
			Symbol:    symbol,
			Interval:  "1h",
			Open:      price - spread/4,
			High:      price + spread,
			Low:       price - spread,
			Close:     price,
			Volume:    1000 + 500*math.Abs(math.Cos(t/13)),
		})
	}
	return bars
}
