package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"quant-bot/internal/api/models"
	"quant-bot/internal/data"
)

// SymbolHandler serves the tradable symbol catalog.
type SymbolHandler struct {
	log *zap.Logger
}

// NewSymbolHandler creates a new symbol handler.
func NewSymbolHandler(log *zap.Logger) *SymbolHandler {
	if log == nil {
		log = zap.NewNop()
	}
	return &SymbolHandler{log: log}
}

// ListSymbols handles GET /api/v1/symbols.
func (h *SymbolHandler) ListSymbols(c *gin.Context) {
	path := data.DefaultSymbolsPath()
	list, err := data.LoadSymbols(path)
	if err != nil {
		h.log.Error("failed to load symbol catalog", zap.String("path", path), zap.Error(err))
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{
			Error: models.ErrorDetail{
				Code:    "SYMBOLS_UNAVAILABLE",
				Message: "failed to load symbol catalog",
			},
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"updated_at": list.UpdatedAt,
		"count":      len(list.Symbols),
		"symbols":    list.Symbols,
	})
}
