package middleware

import (
	"context"
	"net/http"
	"strconv"
	"time"

	"comment-insights/infrastructure/logger"

	"github.com/gin-gonic/gin"
)

const (
	rateLimitPerWindow = 100
	rateLimitWindow    = time.Minute
)

// Counter is the fixed-window counter behind the limiter.
type Counter interface {
	Incr(ctx context.Context, key string, window time.Duration) (int64, error)
}

// RateLimit caps requests at 100 per minute, keyed by the authenticated user
// when present and by client IP otherwise. A broken counter fails open.
func RateLimit(counter Counter) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		key := "ip:" + ctx.ClientIP()
		if userID := ctx.GetString("user_id"); userID != "" {
			key = "user:" + userID
		}

		count, err := counter.Incr(ctx.Request.Context(), key, rateLimitWindow)
		if err != nil {
			logger.GetLogger().WithField("error", err).Warn("Rate counter unavailable; letting request through")
			ctx.Next()
			return
		}
		if count > rateLimitPerWindow {
			ctx.Header("Retry-After", strconv.Itoa(int(rateLimitWindow.Seconds())))
			ctx.AbortWithStatusJSON(http.StatusTooManyRequests, gin.H{
				"success": false,
				"error":   "rate limit exceeded, try again in a minute",
			})
			return
		}
		ctx.Next()
	}
}
