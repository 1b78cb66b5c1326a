package middleware

import (
	"context"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis_rate/v10"
	log "github.com/sirupsen/logrus"
)

type RequestRateLimiter interface {
	Allow(ctx context.Context, key string, limit redis_rate.Limit) (*redis_rate.Result, error)
}

// RateLimiterMiddleware allows limit requests per client IP in each window.
// Limiter failures let the request through.
func RateLimiterMiddleware(limiter RequestRateLimiter, limit int, window time.Duration) gin.HandlerFunc {
	rate := redis_rate.Limit{Rate: limit, Burst: limit, Period: window}

	return func(c *gin.Context) {
		key := fmt.Sprintf("rate_limit:%s", c.ClientIP())

		res, err := limiter.Allow(c.Request.Context(), key, rate)
		if err != nil {
			log.Warnf("rate limiter skipped: %v", err)
			c.Next()
			return
		}

		c.Header("X-RateLimit-Limit", strconv.Itoa(limit))
		c.Header("X-RateLimit-Remaining", strconv.Itoa(max(0, res.Remaining)))
		c.Header("X-RateLimit-Reset", strconv.FormatInt(time.Now().Add(res.ResetAfter).Unix(), 10))

		if res.Allowed == 0 {
			c.AbortWithStatusJSON(http.StatusTooManyRequests, gin.H{
				"error":      "too many requests, slow down",
				"retry_in_s": int(res.RetryAfter.Seconds()),
			})
			return
		}

		c.Next()
	}
}
