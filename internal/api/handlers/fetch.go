package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"quant-bot/internal/api/models"
	"quant-bot/internal/data"
	"quant-bot/internal/model"
)

// fetchEnriched fetches and enriches the requested bar window. On
// failure it writes the error response itself and returns ok=false.
func fetchEnriched(c *gin.Context, apiKey string, ds models.DataSourceConfig, log *zap.Logger) ([]model.SignalRow, bool) {
	client := data.NewAPIClient(apiKey, "", log)

	bars, err := client.FetchBars(c.Request.Context(), ds.Symbol, ds.Interval, ds.Period)
	if err != nil {
		var apiErr *data.APIError
		if errors.As(err, &apiErr) {
			status := http.StatusBadGateway
			switch apiErr.StatusCode {
			case http.StatusUnauthorized, http.StatusForbidden:
				status = http.StatusUnauthorized
			case http.StatusTooManyRequests:
				status = http.StatusTooManyRequests
			}
			c.JSON(status, models.ErrorResponse{
				Error: models.ErrorDetail{
					Code:    apiErr.Code,
					Message: apiErr.Message,
					Details: map[string]interface{}{
						"status_code": apiErr.StatusCode,
						"retry_after": apiErr.RetryAfter,
						"symbol":      ds.Symbol,
					},
				},
			})
			return nil, false
		}
		var unavailable *data.DataUnavailableError
		if errors.As(err, &unavailable) {
			c.JSON(http.StatusNotFound, models.ErrorResponse{
				Error: models.ErrorDetail{
					Code:    "DATA_UNAVAILABLE",
					Message: err.Error(),
				},
			})
			return nil, false
		}
		c.JSON(http.StatusBadRequest, models.ErrorResponse{
			Error: models.ErrorDetail{
				Code:    "INVALID_REQUEST",
				Message: err.Error(),
			},
		})
		return nil, false
	}

	rows, err := data.Enrich(bars)
	if err != nil {
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{
			Error: models.ErrorDetail{
				Code:    "ENRICHMENT_FAILED",
				Message: err.Error(),
			},
		})
		return nil, false
	}
	return rows, true
}
