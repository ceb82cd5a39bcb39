package middleware

import (
	"fmt"
	"net/http"

	"parking-backend/pkg/ratelimit"
	"parking-backend/pkg/utils"

	"github.com/gin-gonic/gin"
)

// RateLimit throttles a route per client IP using the shared in-memory
// limiter. Used on the login endpoint to slow credential guessing.
func RateLimit(limiter *ratelimit.MemoryRateLimiter) gin.HandlerFunc {
	return func(c *gin.Context) {
		allowed, retryAfter := limiter.Allow(c.ClientIP(), c.FullPath())
		if !allowed {
			c.Header("Retry-After", fmt.Sprintf("%.0f", retryAfter.Seconds()))
			utils.ErrorResponse(c, http.StatusTooManyRequests, "Too many requests, slow down", nil)
			c.Abort()
			return
		}
		c.Next()
	}
}
