package optimize

import (
	"context"
	"fmt"
	"runtime"
	"sort"
	"sync"

	"go.uber.org/zap"

	"quant-bot/internal/backtest"
	"quant-bot/internal/model"
	"quant-bot/internal/perf"
	"quant-bot/internal/strategy"
)

// DegenerateParametersError marks a combination that cannot produce a
// runnable decision function. Such combinations are recorded and
// excluded from ranking; they never abort the overall search.
type DegenerateParametersError struct {
	Params Combination
	Cause  error
}

func (e *DegenerateParametersError) Error() string {
	return fmt.Sprintf("degenerate parameters (%s): %v", e.Params, e.Cause)
}

func (e *DegenerateParametersError) Unwrap() error { return e.Cause }

// Outcome pairs one combination with its backtest metrics, or with the
// error marker that excluded it.
type Outcome struct {
	Params  Combination  `json:"params"`
	Metrics perf.Metrics `json:"metrics"`
	Score   float64      `json:"score"`
	Err     string       `json:"error,omitempty"`
}

// Optimizer explores a hyperparameter grid by dispatching one backtest
// per combination over a bounded worker pool. The pre-fetched dataset
// is the only shared state and is read-only, so the fetch cost is paid
// once, not once per combination.
type Optimizer struct {
	Strategy    string
	InitialCash float64
	Window      int // aggregation window; a "window" grid param overrides per-combo
	Workers     int // 0 = GOMAXPROCS

	Log *zap.Logger
}

// Search runs one backtest per grid combination and returns outcomes
// sorted descending by the objective metric. Failed combinations sort
// after all ranked ones, carrying their error marker. The input rows
// must not be mutated by the caller while the search runs.
func (o *Optimizer) Search(ctx context.Context, rows []model.SignalRow, grid Grid, objective string) ([]Outcome, error) {
	score, err := perf.Objective(objective)
	if err != nil {
		return nil, err
	}
	combos := grid.Combinations()
	if len(combos) == 0 {
		return nil, fmt.Errorf("empty parameter grid")
	}

	log := o.Log
	if log == nil {
		log = zap.NewNop()
	}
	workers := o.Workers
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}
	if workers > len(combos) {
		workers = len(combos)
	}

	ppy := perf.PeriodsPerYear(model.BarDuration(rows))

	log.Info("starting grid search",
		zap.String("strategy", o.Strategy),
		zap.String("objective", objective),
		zap.Int("combinations", len(combos)),
		zap.Int("workers", workers),
		zap.Int("rows", len(rows)))

	outcomes := make([]Outcome, len(combos))
	jobs := make(chan int)

	var wg sync.WaitGroup
	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := range jobs {
				outcomes[i] = o.runOne(rows, combos[i], score, ppy)
			}
		}()
	}

	for i := range combos {
		select {
		case <-ctx.Done():
			close(jobs)
			wg.Wait()
			return nil, ctx.Err()
		case jobs <- i:
		}
	}
	close(jobs)
	wg.Wait()

	// Ranked outcomes first, descending by score; index order breaks
	// ties so repeated searches return identical rankings. Failures
	// keep their relative order at the tail.
	sort.SliceStable(outcomes, func(i, j int) bool {
		if (outcomes[i].Err == "") != (outcomes[j].Err == "") {
			return outcomes[i].Err == ""
		}
		return outcomes[i].Score > outcomes[j].Score
	})

	failed := 0
	for _, oc := range outcomes {
		if oc.Err != "" {
			failed++
		}
	}
	log.Info("grid search complete",
		zap.Int("ranked", len(outcomes)-failed),
		zap.Int("failed", failed))
	return outcomes, nil
}

// runOne backtests a single combination against the shared dataset. A
// per-combination failure is folded into the outcome, never propagated.
func (o *Optimizer) runOne(rows []model.SignalRow, combo Combination, score func(perf.Metrics) float64, ppy float64) Outcome {
	out := Outcome{Params: combo}

	sig, err := strategy.Build(o.Strategy, combo)
	if err != nil {
		out.Err = (&DegenerateParametersError{Params: combo, Cause: err}).Error()
		return out
	}

	window := o.Window
	if v, ok := combo["window"]; ok {
		switch x := v.(type) {
		case int:
			window = x
		case float64:
			window = int(x)
		}
	}

	runner := backtest.New(o.InitialCash, window)
	res, err := runner.Run(rows, sig)
	if err != nil {
		out.Err = err.Error()
		return out
	}

	out.Metrics = perf.Compute(res.EquityCurve, res.Trades, ppy)
	out.Score = score(out.Metrics)
	return out
}
