package models

import (
	"time"

	"quant-bot/internal/model"
	"quant-bot/internal/perf"
)

// BacktestResponse represents the response from a backtest run.
type BacktestResponse struct {
	Status  string          `json:"status"`
	Summary BacktestSummary `json:"summary"`

	EquityCurve []model.EquityPoint `json:"equity_curve,omitempty"`
	Trades      []model.TradeRecord `json:"trades,omitempty"`
}

// BacktestSummary contains aggregated backtest results.
type BacktestSummary struct {
	Symbol     string       `json:"symbol"`
	Strategy   string       `json:"strategy"`
	Rows       int          `json:"rows"`
	Window     TimeWindow   `json:"window"`
	FinalWorth float64      `json:"final_worth"`
	Metrics    perf.Metrics `json:"metrics"`
}

// TimeWindow represents a time range.
type TimeWindow struct {
	Start time.Time `json:"start"`
	End   time.Time `json:"end"`
}

// OptimizeResponse represents a ranked hyperparameter search result.
type OptimizeResponse struct {
	Strategy     string    `json:"strategy"`
	Objective    string    `json:"objective"`
	Combinations int       `json:"combinations"`
	Failed       int       `json:"failed"`
	Rankings     []Ranking `json:"rankings"`
}

// Ranking represents one ranked parameter combination.
type Ranking struct {
	Rank    int                    `json:"rank"`
	Params  map[string]interface{} `json:"params"`
	Score   float64                `json:"score"`
	Metrics perf.Metrics           `json:"metrics"`
}

// PortfolioResponse represents a bot's persisted portfolio.
type PortfolioResponse struct {
	BotID     string             `json:"bot_id"`
	Holdings  map[string]float64 `json:"holdings"`
	CostBasis map[string]float64 `json:"cost_basis"`
}

// TradesResponse represents a bot's trade log.
type TradesResponse struct {
	BotID  string              `json:"bot_id"`
	Trades []model.TradeRecord `json:"trades"`
}

// StrategyInfo represents information about a strategy.
type StrategyInfo struct {
	Name        string          `json:"name"`
	Description string          `json:"description"`
	Parameters  []ParameterInfo `json:"parameters"`
}

// ParameterInfo describes a strategy parameter.
type ParameterInfo struct {
	Name        string      `json:"name"`
	Type        string      `json:"type"` // "float", "int", "string"
	Description string      `json:"description"`
	Default     interface{} `json:"default,omitempty"`
}

// ErrorResponse represents an error response.
type ErrorResponse struct {
	Error ErrorDetail `json:"error"`
}

// ErrorDetail contains error information.
type ErrorDetail struct {
	Code    string                 `json:"code"`
	Message string                 `json:"message"`
	Details map[string]interface{} `json:"details,omitempty"`
}
