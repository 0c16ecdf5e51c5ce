package models

// DataSourceConfig defines how to fetch market data for a request.
type DataSourceConfig struct {
	Symbol   string `json:"symbol" binding:"required"`
	Interval string `json:"interval" binding:"required"` // e.g. "1m", "1h", "1d"
	Period   string `json:"period" binding:"required"`   // e.g. "7d", "90d"
}

// StrategyConfig defines a strategy and its parameters.
type StrategyConfig struct {
	Name   string                 `json:"name" binding:"required"`
	Params map[string]interface{} `json:"params,omitempty"`
}

// BacktestRequest represents the request body for running a backtest.
type BacktestRequest struct {
	APIKey     string           `json:"api_key" binding:"required"` // market-data API key
	DataSource DataSourceConfig `json:"data_source" binding:"required"`
	Strategy   StrategyConfig   `json:"strategy" binding:"required"`
	Options    BacktestOptions  `json:"options,omitempty"`
}

// BacktestOptions contains optional backtest parameters.
type BacktestOptions struct {
	InitialCash   float64 `json:"initial_cash,omitempty"` // default: 10000
	Window        int     `json:"window,omitempty"`       // default: 1
	LimitRows     int     `json:"limit_rows,omitempty"`   // 0 = all
	IncludeCurve  bool    `json:"include_curve,omitempty"`
	IncludeTrades bool    `json:"include_trades,omitempty"`
}

// OptimizeRequest represents a hyperparameter-search request.
type OptimizeRequest struct {
	APIKey     string                   `json:"api_key" binding:"required"`
	DataSource DataSourceConfig         `json:"data_source" binding:"required"`
	Strategy   string                   `json:"strategy" binding:"required"`
	Grid       map[string][]interface{} `json:"grid" binding:"required"`
	Objective  string                   `json:"objective,omitempty"` // default: "sharpe"
	Options    OptimizeOptions          `json:"options,omitempty"`
}

// OptimizeOptions contains optional optimizer parameters.
type OptimizeOptions struct {
	InitialCash float64 `json:"initial_cash,omitempty"` // default: 10000
	Window      int     `json:"window,omitempty"`       // default: 1
	Workers     int     `json:"workers,omitempty"`      // 0 = available cores
	Limit       int     `json:"limit,omitempty"`        // ranked results returned, default: 10
}
