package middleware

import (
	"net/http"
	"time"

	"todo-api/internal/logging"
	"todo-api/internal/models"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"github.com/ulule/limiter/v3"
	mgin "github.com/ulule/limiter/v3/drivers/middleware/gin"
	"github.com/ulule/limiter/v3/drivers/store/memory"
)

// RateLimitConfig holds rate limiting configuration
type RateLimitConfig struct {
	Enabled        bool
	RequestsPerMin int64
}

// NewRateLimitConfigFromEnv creates rate limit config from environment variables
func NewRateLimitConfigFromEnv() *RateLimitConfig {
	return &RateLimitConfig{
		Enabled:        getEnvBool("RATE_LIMIT_ENABLED", true),
		RequestsPerMin: int64(getEnvInt("RATE_LIMIT_REQUESTS_PER_MIN", 300)),
	}
}

func passThrough(c *gin.Context) {
	c.Next()
}

// newLimiter builds a per-client-IP limiter that answers 429 once rate is exhausted
func newLimiter(rate limiter.Rate, limitType string) gin.HandlerFunc {
	instance := limiter.New(memory.NewStore(), rate)

	return mgin.NewMiddleware(instance, mgin.WithLimitReachedHandler(func(c *gin.Context) {
		logging.Logger.WithFields(logrus.Fields{
			"client_ip":     c.ClientIP(),
			"path":          c.Request.URL.Path,
			"method":        c.Request.Method,
			"rate_limited":  true,
			"limit_type":    limitType,
			"limit_per_min": rate.Limit,
		}).Warn("Rate limit exceeded")

		c.AbortWithStatusJSON(http.StatusTooManyRequests, models.ErrorResponse{
			Detail: "Too many requests. Please try again later.",
			Code:   "RATE_LIMIT_EXCEEDED",
			Details: map[string]interface{}{
				"retry_after_sec": int(rate.Period.Seconds()),
				"limit":           rate.Limit,
			},
		})
	}))
}

// GlobalRateLimiter creates a global rate limiter middleware
func GlobalRateLimiter(config *RateLimitConfig) gin.HandlerFunc {
	if !config.Enabled || config.RequestsPerMin <= 0 {
		logging.Logger.Info("Rate limiting is disabled")
		return passThrough
	}

	logging.Logger.Infof("Rate limiting enabled: %d requests per minute", config.RequestsPerMin)
	return newLimiter(limiter.Rate{Period: time.Minute, Limit: config.RequestsPerMin}, "global")
}

// WriteRateLimiter creates a stricter limiter for mutating routes (POST, PUT, DELETE)
func WriteRateLimiter(config *RateLimitConfig) gin.HandlerFunc {
	if !config.Enabled || config.RequestsPerMin <= 0 {
		return passThrough
	}

	limit := config.RequestsPerMin / 2
	if limit < 1 {
		limit = 1
	}
	return newLimiter(limiter.Rate{Period: time.Minute, Limit: limit}, "write")
}
