package middleware

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/mx-space/blog-admin/internal/pkg/response"
	"go.uber.org/zap"
)

// Counter increments a windowed counter, see redis.Client.Hit.
type Counter interface {
	Hit(ctx context.Context, key string, window time.Duration) (int64, error)
}

// RateLimit enforces a fixed-window limit of max requests per client IP.
// Authenticated requests pass through. When the counter store fails the
// request is allowed.
func RateLimit(counter Counter, max int, window time.Duration, log *zap.Logger) gin.HandlerFunc {
	if log == nil {
		log = zap.NewNop()
	}
	retryAfter := strconv.Itoa(int(window.Seconds()))
	return func(c *gin.Context) {
		if IsAuthenticated(c) {
			c.Next()
			return
		}

		ip := c.ClientIP()
		if ip == "" {
			c.Next()
			return
		}

		slot := time.Now().UnixNano() / int64(window)
		key := fmt.Sprintf("blog-admin:rate_limit:%s:%d", ip, slot)

		count, err := counter.Hit(c.Request.Context(), key, window)
		if err != nil {
			log.Warn("rate limit counter unavailable", zap.Error(err))
			c.Next()
			return
		}

		if count > int64(max) {
			c.Header("Retry-After", retryAfter)
			response.TooManyRequests(c)
			return
		}

		c.Next()
	}
}
