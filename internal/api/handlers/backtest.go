package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"quant-bot/internal/api/models"
	"quant-bot/internal/backtest"
	"quant-bot/internal/model"
	"quant-bot/internal/perf"
	"quant-bot/internal/strategy"
)

const defaultInitialCash = 10000

// BacktestHandler handles backtest requests.
type BacktestHandler struct {
	log *zap.Logger
}

// NewBacktestHandler creates a new backtest handler.
func NewBacktestHandler(log *zap.Logger) *BacktestHandler {
	if log == nil {
		log = zap.NewNop()
	}
	return &BacktestHandler{log: log}
}

// RunBacktest handles POST /api/v1/backtest.
func (h *BacktestHandler) RunBacktest(c *gin.Context) {
	var req models.BacktestRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{
			Error: models.ErrorDetail{
				Code:    "INVALID_REQUEST",
				Message: err.Error(),
			},
		})
		return
	}

	sig, err := strategy.Build(req.Strategy.Name, req.Strategy.Params)
	if err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{
			Error: models.ErrorDetail{
				Code:    "INVALID_STRATEGY",
				Message: err.Error(),
			},
		})
		return
	}

	rows, ok := fetchEnriched(c, req.APIKey, req.DataSource, h.log)
	if !ok {
		return
	}
	if n := req.Options.LimitRows; n > 0 && n < len(rows) {
		rows = rows[:n]
	}

	initialCash := req.Options.InitialCash
	if initialCash <= 0 {
		initialCash = defaultInitialCash
	}

	runner := backtest.New(initialCash, req.Options.Window)
	res, err := runner.Run(rows, sig)
	if err != nil {
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{
			Error: models.ErrorDetail{
				Code:    "BACKTEST_FAILED",
				Message: err.Error(),
			},
		})
		return
	}

	metrics := perf.Compute(res.EquityCurve, res.Trades, perf.PeriodsPerYear(model.BarDuration(rows)))

	resp := models.BacktestResponse{
		Status: "completed",
		Summary: models.BacktestSummary{
			Symbol:     req.DataSource.Symbol,
			Strategy:   req.Strategy.Name,
			Rows:       len(rows),
			FinalWorth: res.FinalWorth,
			Metrics:    metrics,
		},
	}
	if len(res.EquityCurve) > 0 {
		resp.Summary.Window = models.TimeWindow{
			Start: res.EquityCurve[0].Timestamp,
			End:   res.EquityCurve[len(res.EquityCurve)-1].Timestamp,
		}
	}
	if req.Options.IncludeCurve {
		resp.EquityCurve = res.EquityCurve
	}
	if req.Options.IncludeTrades {
		resp.Trades = res.Trades
	}

	c.JSON(http.StatusOK, resp)
}
