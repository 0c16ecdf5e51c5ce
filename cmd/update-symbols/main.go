package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"quant-bot/internal/data"
)

func main() {
	var (
		outputPath = flag.String("output", "", "Output file path (default: ./data/symbols.json)")
		seedFile   = flag.String("seed", "", "Path to existing symbols file to use as seed")
		interval   = flag.String("interval", "1d", "Probe interval")
		period     = flag.String("period", "7d", "Probe period")
	)
	flag.Parse()

	_ = godotenv.Load()

	apiKey := os.Getenv("MARKET_API_KEY")
	if apiKey == "" {
		fmt.Fprintln(os.Stderr, "MARKET_API_KEY environment variable is required")
		os.Exit(1)
	}

	if *outputPath == "" {
		*outputPath = data.DefaultSymbolsPath()
	}

	log, err := zap.NewDevelopment()
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer log.Sync()

	client := data.NewAPIClient(apiKey, os.Getenv("MARKET_API_URL"), log)

	// Load existing symbols as seed if provided, else the default path.
	seedPath := *seedFile
	if seedPath == "" {
		seedPath = data.DefaultSymbolsPath()
	}
	var seed []data.Symbol
	if list, err := data.LoadSymbols(seedPath); err == nil {
		seed = list.Symbols
		fmt.Printf("Loaded %d existing symbols from %s\n", len(seed), seedPath)
	}
	if len(seed) == 0 {
		seed = []data.Symbol{
			{ID: "AAPL", Name: "Apple Inc.", Exchange: "NASDAQ", Type: "EQUITY"},
			{ID: "SPY", Name: "SPDR S&P 500 ETF", Exchange: "NYSE", Type: "ETF"},
			{ID: "BTC-USD", Name: "Bitcoin / US Dollar", Exchange: "COINBASE", Type: "CRYPTO"},
		}
	}

	// Probe each seed symbol against the bars endpoint. Symbols that no
	// longer resolve stay in the catalog so a transient outage does not
	// shrink it, they are just reported.
	ctx := context.Background()
	verified := 0
	for _, sym := range seed {
		bars, err := client.FetchBars(ctx, sym.ID, *interval, *period)
		if err != nil {
			fmt.Printf("  warning: failed to verify %s: %v\n", sym.ID, err)
			continue
		}
		verified++
		fmt.Printf("  verified %s (%d bars)\n", sym.ID, len(bars))
	}
	fmt.Printf("Verified %d/%d symbols\n", verified, len(seed))

	list := &data.SymbolList{
		UpdatedAt: time.Now().Format(time.RFC3339),
		Symbols:   seed,
	}
	if err := data.SaveSymbols(list, *outputPath); err != nil {
		fmt.Fprintf(os.Stderr, "failed to save symbols: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("Saved %d symbols to %s\n", len(seed), *outputPath)
}
