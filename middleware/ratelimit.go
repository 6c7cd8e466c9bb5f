package middleware

import (
	"fmt"
	"log/slog"
	"strconv"
	"strings"
	"time"

	apperror "github.com/Yulian302/findit-gateway/common/errors"
	"github.com/Yulian302/findit-gateway/common/ratelimit"
	"github.com/Yulian302/findit-gateway/logging"
	"github.com/gin-gonic/gin"
)

// probes and scrapes are never limited
var unlimitedPrefixes = []string{"/health/", "/metrics"}

func RateLimiterMiddleware(limiter ratelimit.RateLimiter, limit int, window time.Duration) gin.HandlerFunc {
	return func(c *gin.Context) {
		for _, p := range unlimitedPrefixes {
			if strings.HasPrefix(c.Request.URL.Path, p) {
				c.Next()
				return
			}
		}

		key := fmt.Sprintf("rate:ip:%s", c.ClientIP())

		count, err := limiter.Incr(c, key)
		if err != nil {
			// fail open when redis is unreachable
			logging.FromContext(c.Request.Context()).Warn("rate limiter unavailable", slog.Any("error", err))
			c.Next()
			return
		}

		if count == 1 {
			if err := limiter.Expire(c, key, window); err != nil {
				logging.FromContext(c.Request.Context()).Warn("could not set rate limit expiry", slog.String("key", key), slog.Any("error", err))
			}
		}

		remaining := max(int64(limit)-count, 0)
		c.Header("X-RateLimit-Limit", strconv.Itoa(limit))
		c.Header("X-RateLimit-Remaining", strconv.FormatInt(remaining, 10))

		if count > int64(limit) {
			c.Header("Retry-After", strconv.Itoa(int(window.Seconds())))
			apperror.TooManyRequestsResponse(c, "too many requests, try again later")
			return
		}

		c.Next()
	}
}
