package middleware

import (
	"net/http"
	"os"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/rs/cors"
)

// CORS applies cross-origin headers. Allowed origins come from the
// CORS_ORIGINS environment variable (comma separated); empty allows all.
func CORS() gin.HandlerFunc {
	opts := cors.Options{
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodOptions},
		AllowedHeaders: []string{"Content-Type", "Authorization"},
		MaxAge:         300,
	}
	if raw := os.Getenv("CORS_ORIGINS"); raw != "" {
		opts.AllowedOrigins = strings.Split(raw, ",")
	} else {
		opts.AllowedOrigins = []string{"*"}
	}
	c := cors.New(opts)

	return func(ctx *gin.Context) {
		c.HandlerFunc(ctx.Writer, ctx.Request)
		if ctx.Request.Method == http.MethodOptions {
			ctx.AbortWithStatus(http.StatusNoContent)
			return
		}
		ctx.Next()
	}
}
