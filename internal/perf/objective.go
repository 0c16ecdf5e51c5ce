package perf

import "fmt"

// Objective resolves a metric name to its accessor, for ranking
// hyperparameter-search results. All objectives rank descending;
// max_drawdown values are negative fractions, so descending order puts
// the shallowest drawdown first.
func Objective(name string) (func(Metrics) float64, error) {
	switch name {
	case "sharpe":
		return func(m Metrics) float64 { return m.Sharpe }, nil
	case "sortino":
		return func(m Metrics) float64 { return m.Sortino }, nil
	case "calmar":
		return func(m Metrics) float64 { return m.Calmar }, nil
	case "total_return":
		return func(m Metrics) float64 { return m.TotalReturn }, nil
	case "annualized_return":
		return func(m Metrics) float64 { return m.AnnualizedReturn }, nil
	case "max_drawdown":
		return func(m Metrics) float64 { return m.MaxDrawdown }, nil
	case "win_rate":
		return func(m Metrics) float64 { return m.WinRate }, nil
	default:
		return nil, fmt.Errorf("unsupported objective metric: %q", name)
	}
}

// ObjectiveNames lists the metric names Objective accepts.
func ObjectiveNames() []string {
	return []string{"sharpe", "sortino", "calmar", "total_return", "annualized_return", "max_drawdown", "win_rate"}
}
