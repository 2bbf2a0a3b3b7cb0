package middleware

import (
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

// CORS allows the browser client. "*" in origins allows every origin.
func CORS(origins []string) gin.HandlerFunc {
	cfg := cors.DefaultConfig()
	allowAll := len(origins) == 0
	for _, o := range origins {
		if o == "*" {
			allowAll = true
		}
	}
	if allowAll {
		cfg.AllowAllOrigins = true
	} else {
		cfg.AllowOrigins = origins
		cfg.AllowCredentials = true
	}
	cfg.AddAllowHeaders("Authorization", HeaderIdempotencyKey, HeaderRequestID)
	cfg.AddExposeHeaders("Content-Disposition", HeaderRequestID, HeaderTraceID)
	cfg.MaxAge = 12 * time.Hour
	return cors.New(cfg)
}
