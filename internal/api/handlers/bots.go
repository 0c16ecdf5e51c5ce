package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"quant-bot/internal/api/models"
	"quant-bot/internal/store"
)

// BotHandler serves read-only views of persisted bot state.
type BotHandler struct {
	store store.Store
	log   *zap.Logger
}

// NewBotHandler creates a new bot handler backed by the given store.
func NewBotHandler(st store.Store, log *zap.Logger) *BotHandler {
	if log == nil {
		log = zap.NewNop()
	}
	return &BotHandler{store: st, log: log}
}

// GetPortfolio handles GET /api/v1/bots/:id/portfolio.
func (h *BotHandler) GetPortfolio(c *gin.Context) {
	botID := c.Param("id")

	pf, err := h.store.LoadPortfolio(c.Request.Context(), botID)
	if err != nil {
		h.log.Error("failed to load portfolio", zap.String("bot", botID), zap.Error(err))
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{
			Error: models.ErrorDetail{
				Code:    "STORE_ERROR",
				Message: "failed to load portfolio",
			},
		})
		return
	}
	if pf == nil {
		c.JSON(http.StatusNotFound, models.ErrorResponse{
			Error: models.ErrorDetail{
				Code:    "BOT_NOT_FOUND",
				Message: "no portfolio saved for bot " + botID,
			},
		})
		return
	}

	c.JSON(http.StatusOK, models.PortfolioResponse{
		BotID:     botID,
		Holdings:  pf.Holdings,
		CostBasis: pf.CostBasis,
	})
}

// GetTrades handles GET /api/v1/bots/:id/trades.
func (h *BotHandler) GetTrades(c *gin.Context) {
	botID := c.Param("id")
	limit := queryInt(c, "limit", 100)

	trades, err := h.store.LoadTrades(c.Request.Context(), botID, limit)
	if err != nil {
		h.log.Error("failed to load trades", zap.String("bot", botID), zap.Error(err))
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{
			Error: models.ErrorDetail{
				Code:    "STORE_ERROR",
				Message: "failed to load trades",
			},
		})
		return
	}

	c.JSON(http.StatusOK, models.TradesResponse{
		BotID:  botID,
		Trades: trades,
	})
}

// GetRunLog handles GET /api/v1/bots/:id/runlog.
func (h *BotHandler) GetRunLog(c *gin.Context) {
	botID := c.Param("id")
	limit := queryInt(c, "limit", 100)

	entries, err := h.store.LoadRunLogs(c.Request.Context(), botID, limit)
	if err != nil {
		h.log.Error("failed to load run log", zap.String("bot", botID), zap.Error(err))
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{
			Error: models.ErrorDetail{
				Code:    "STORE_ERROR",
				Message: "failed to load run log",
			},
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"bot_id":  botID,
		"entries": entries,
	})
}

func queryInt(c *gin.Context, name string, def int) int {
	raw := c.Query(name)
	if raw == "" {
		return def
	}
	n, err := strconv.Atoi(raw)
	if err != nil || n <= 0 {
		return def
	}
	return n
}
