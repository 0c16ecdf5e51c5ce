package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"quant-bot/internal/backtest"
	"quant-bot/internal/config"
	"quant-bot/internal/data"
	"quant-bot/internal/model"
	"quant-bot/internal/optimize"
	"quant-bot/internal/perf"
	"quant-bot/internal/strategy"
)

func main() {
	if len(os.Args) < 2 {
		usage()
		os.Exit(2)
	}

	switch os.Args[1] {
	case "backtest":
		cmdBacktest(os.Args[2:])
	case "optimize":
		cmdOptimize(os.Args[2:])
	default:
		usage()
		os.Exit(2)
	}
}

func usage() {
	fmt.Println("usage:")
	fmt.Println("  cli backtest --data sample_bars.json --config examples/config.yaml --out results")
	fmt.Println("  cli optimize --data sample_bars.json --strategy sma-cross --grid examples/grid.yaml")
	fmt.Println("")
	fmt.Println("notes:")
	fmt.Println("  - backtest writes equity.csv and trades.csv under --out")
	fmt.Println("  - optimize ranks grid combinations by --objective (default sharpe)")
}

func cmdBacktest(args []string) {
	fs := flag.NewFlagSet("backtest", flag.ExitOnError)
	dataPath := fs.String("data", "sample_bars.json", "Path to bars JSON fixture")
	cfgPath := fs.String("config", "", "Path to YAML config")
	outDir := fs.String("out", "results", "Output directory for CSVs")
	n := fs.Int("n", 0, "Optional: limit to first N bars (0=all)")
	_ = fs.Parse(args)

	if *cfgPath == "" {
		fmt.Println("--config is required")
		os.Exit(2)
	}

	bars, err := data.LoadBarsJSON(*dataPath)
	if err != nil {
		panic(err)
	}
	if *n > 0 && *n < len(bars) {
		bars = bars[:*n]
	}

	cfg, err := config.Load(*cfgPath)
	if err != nil {
		panic(err)
	}

	rows, err := data.Enrich(bars)
	if err != nil {
		panic(err)
	}

	sig, err := strategy.Build(cfg.Strategy.Name, cfg.Strategy.Params)
	if err != nil {
		panic(err)
	}

	runner := backtest.New(cfg.Bot.InitialCash, cfg.Bot.Window)
	res, err := runner.Run(rows, sig)
	if err != nil {
		panic(err)
	}

	if err := os.MkdirAll(*outDir, 0o755); err != nil {
		panic(err)
	}
	equityPath := filepath.Join(*outDir, "equity.csv")
	tradesPath := filepath.Join(*outDir, "trades.csv")
	if err := backtest.WriteEquityCSV(equityPath, res.EquityCurve); err != nil {
		panic(err)
	}
	if err := backtest.WriteTradesCSV(tradesPath, res.Trades); err != nil {
		panic(err)
	}

	m := perf.Compute(res.EquityCurve, res.Trades, perf.PeriodsPerYear(model.BarDuration(rows)))
	fmt.Printf("Wrote %d equity rows to %s, %d trades to %s\n",
		len(res.EquityCurve), equityPath, len(res.Trades), tradesPath)
	fmt.Printf("Final worth=$%.2f Return=%.2f%% Sharpe=%.2f MaxDD=%.2f%%\n",
		res.FinalWorth, m.TotalReturn*100, m.Sharpe, m.MaxDrawdown*100)
}

func cmdOptimize(args []string) {
	fs := flag.NewFlagSet("optimize", flag.ExitOnError)
	dataPath := fs.String("data", "sample_bars.json", "Path to bars JSON fixture")
	stratName := fs.String("strategy", "", "Strategy name: "+strings.Join(strategy.Names(), ", "))
	gridPath := fs.String("grid", "", "Path to YAML grid file (param: [values])")
	objective := fs.String("objective", "sharpe", "Ranking objective: "+strings.Join(perf.ObjectiveNames(), ", "))
	cash := fs.Float64("cash", 10000, "Initial cash per combination")
	window := fs.Int("window", 1, "Decision-aggregation window")
	workers := fs.Int("workers", 0, "Concurrent backtests (0=cores)")
	limit := fs.Int("limit", 10, "Ranked rows to print")
	_ = fs.Parse(args)

	if *stratName == "" || *gridPath == "" {
		fmt.Println("--strategy and --grid are required")
		os.Exit(2)
	}

	bars, err := data.LoadBarsJSON(*dataPath)
	if err != nil {
		panic(err)
	}
	rows, err := data.Enrich(bars)
	if err != nil {
		panic(err)
	}

	grid, err := loadGrid(*gridPath)
	if err != nil {
		panic(err)
	}

	opt := &optimize.Optimizer{
		Strategy:    *stratName,
		InitialCash: *cash,
		Window:      *window,
		Workers:     *workers,
	}
	outcomes, err := opt.Search(context.Background(), rows, grid, *objective)
	if err != nil {
		panic(err)
	}

	fmt.Printf("%-4s %-34s %-10s %-10s %-10s %-8s\n",
		"rank", "params", *objective, "return%", "maxdd%", "trades")
	printed := 0
	failed := 0
	for _, oc := range outcomes {
		if oc.Err != "" {
			failed++
			continue
		}
		if printed >= *limit {
			continue
		}
		printed++
		fmt.Printf("%-4d %-34s %-10.3f %-10.2f %-10.2f %-8d\n",
			printed,
			oc.Params.String(),
			oc.Score,
			oc.Metrics.TotalReturn*100,
			oc.Metrics.MaxDrawdown*100,
			oc.Metrics.Trades,
		)
	}
	if failed > 0 {
		fmt.Printf("%d combination(s) failed and were excluded\n", failed)
	}
}

func loadGrid(path string) (optimize.Grid, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var grid optimize.Grid
	if err := yaml.Unmarshal(raw, &grid); err != nil {
		return nil, fmt.Errorf("failed to parse grid file: %w", err)
	}
	if len(grid) == 0 {
		return nil, fmt.Errorf("grid file %s defines no parameters", path)
	}
	return grid, nil
}
