package middleware

import (
	"fmt"

	"github.com/gin-gonic/gin"
	"github.com/ulule/limiter/v3"
	mgin "github.com/ulule/limiter/v3/drivers/middleware/gin"
	"github.com/ulule/limiter/v3/drivers/store/memory"

	"ricemill/internal/core/apperror"
	"ricemill/pkg/logger"
)

// RateLimit limits requests per client IP. rate uses the limiter format,
// e.g. "300-M" for 300 requests per minute. A nil store counts in process memory.
func RateLimit(rate string, store limiter.Store) (gin.HandlerFunc, error) {
	r, err := limiter.NewRateFromFormatted(rate)
	if err != nil {
		return nil, fmt.Errorf("parse rate limit %q: %w", rate, err)
	}
	if store == nil {
		store = memory.NewStore()
	}

	instance := limiter.New(store, r)

	return mgin.NewMiddleware(instance,
		mgin.WithLimitReachedHandler(func(c *gin.Context) {
			_ = c.Error(apperror.NewRateLimited())
			c.Abort()
		}),
		mgin.WithErrorHandler(func(c *gin.Context, err error) {
			logger.Error(c.Request.Context(), "rate limiter failed", "error", err)
			c.Next()
		}),
	), nil
}
