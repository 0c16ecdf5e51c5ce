package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"quant-bot/internal/api/models"
)

// StrategyHandler serves the strategy catalog.
type StrategyHandler struct{}

// NewStrategyHandler creates a new strategy handler.
func NewStrategyHandler() *StrategyHandler {
	return &StrategyHandler{}
}

// ListStrategies handles GET /api/v1/strategies.
func (h *StrategyHandler) ListStrategies(c *gin.Context) {
	strategies := []models.StrategyInfo{
		{
			Name:        "sma-cross",
			Description: "Votes buy while the fast moving average of close sits above the slow one, sell while below.",
			Parameters: []models.ParameterInfo{
				{Name: "fast", Type: "int", Description: "Fast moving average length in bars", Default: 10},
				{Name: "slow", Type: "int", Description: "Slow moving average length in bars, must exceed fast", Default: 30},
			},
		},
		{
			Name:        "rsi-reversion",
			Description: "Votes buy at or below the oversold RSI bound, sell at or above the overbought bound.",
			Parameters: []models.ParameterInfo{
				{Name: "oversold", Type: "float", Description: "RSI level treated as oversold", Default: 30.0},
				{Name: "overbought", Type: "float", Description: "RSI level treated as overbought", Default: 70.0},
			},
		},
		{
			Name:        "momentum",
			Description: "Votes with the sign of the close-to-close change over the lookback window.",
			Parameters: []models.ParameterInfo{
				{Name: "lookback", Type: "int", Description: "Bars between the compared closes", Default: 12},
			},
		},
	}

	c.JSON(http.StatusOK, gin.H{
		"count":      len(strategies),
		"strategies": strategies,
	})
}
