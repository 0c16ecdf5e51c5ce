package middleware

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"quant-bot/internal/api/models"
)

// Recovery converts handler panics into a JSON 500 and logs them.
func Recovery(log *zap.Logger) gin.HandlerFunc {
	if log == nil {
		log = zap.NewNop()
	}
	return gin.CustomRecovery(func(c *gin.Context, recovered interface{}) {
		log.Error("handler panic",
			zap.String("path", c.Request.URL.Path),
			zap.String("panic", fmt.Sprint(recovered)))
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{
			Error: models.ErrorDetail{
				Code:    "INTERNAL_ERROR",
				Message: "An unexpected error occurred",
			},
		})
		c.Abort()
	})
}
