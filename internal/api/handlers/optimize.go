package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"quant-bot/internal/api/models"
	"quant-bot/internal/optimize"
)

const defaultRankLimit = 10

// OptimizeHandler handles hyperparameter-search requests.
type OptimizeHandler struct {
	log *zap.Logger
}

// NewOptimizeHandler creates a new optimize handler.
func NewOptimizeHandler(log *zap.Logger) *OptimizeHandler {
	if log == nil {
		log = zap.NewNop()
	}
	return &OptimizeHandler{log: log}
}

// RunOptimize handles POST /api/v1/optimize.
func (h *OptimizeHandler) RunOptimize(c *gin.Context) {
	var req models.OptimizeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{
			Error: models.ErrorDetail{
				Code:    "INVALID_REQUEST",
				Message: err.Error(),
			},
		})
		return
	}

	objective := req.Objective
	if objective == "" {
		objective = "sharpe"
	}

	rows, ok := fetchEnriched(c, req.APIKey, req.DataSource, h.log)
	if !ok {
		return
	}

	initialCash := req.Options.InitialCash
	if initialCash <= 0 {
		initialCash = defaultInitialCash
	}

	opt := &optimize.Optimizer{
		Strategy:    req.Strategy,
		InitialCash: initialCash,
		Window:      req.Options.Window,
		Workers:     req.Options.Workers,
		Log:         h.log,
	}

	grid := make(optimize.Grid, len(req.Grid))
	for name, candidates := range req.Grid {
		grid[name] = candidates
	}

	outcomes, err := opt.Search(c.Request.Context(), rows, grid, objective)
	if err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{
			Error: models.ErrorDetail{
				Code:    "INVALID_SEARCH",
				Message: err.Error(),
			},
		})
		return
	}

	limit := req.Options.Limit
	if limit <= 0 {
		limit = defaultRankLimit
	}

	resp := models.OptimizeResponse{
		Strategy:     req.Strategy,
		Objective:    objective,
		Combinations: len(outcomes),
		Rankings:     make([]models.Ranking, 0, limit),
	}
	for _, oc := range outcomes {
		if oc.Err != "" {
			resp.Failed++
			continue
		}
		if len(resp.Rankings) < limit {
			resp.Rankings = append(resp.Rankings, models.Ranking{
				Rank:    len(resp.Rankings) + 1,
				Params:  oc.Params,
				Score:   oc.Score,
				Metrics: oc.Metrics,
			})
		}
	}

	c.JSON(http.StatusOK, resp)
}
