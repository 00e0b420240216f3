package middleware

import (
	"fmt"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/SscSPs/money_transfer_engine/internal/dto"
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"github.com/ulule/limiter/v3"
	"github.com/ulule/limiter/v3/drivers/store/memory"
	sredis "github.com/ulule/limiter/v3/drivers/store/redis"
)

const rateLimitKeyPrefix = "transfer_engine_limiter"

// ErrorCodeRateLimited is returned when a caller exceeds its request budget.
const ErrorCodeRateLimited = "REQ-429"

// NewRateLimitStore returns a Redis store shared by every instance when redisURL is set,
// and a per-process memory store otherwise.
func NewRateLimitStore(redisURL string) (limiter.Store, error) {
	if redisURL == "" {
		return memory.NewStore(), nil
	}
	opts, err := redis.ParseURL(redisURL)
	if err != nil {
		return nil, fmt.Errorf("parse redis url: %w", err)
	}
	store, err := sredis.NewStoreWithOptions(redis.NewClient(opts), limiter.StoreOptions{
		Prefix:   rateLimitKeyPrefix,
		MaxRetry: 3,
	})
	if err != nil {
		return nil, fmt.Errorf("create redis rate limit store: %w", err)
	}
	return store, nil
}

// NewRateLimiter builds a limiter from a formatted rate such as "100-S".
// A nil store falls back to process memory.
func NewRateLimiter(formatted string, store limiter.Store) (*limiter.Limiter, error) {
	rate, err := limiter.NewRateFromFormatted(formatted)
	if err != nil {
		return nil, err
	}
	if store == nil {
		store = memory.NewStore()
	}
	return limiter.New(store, rate), nil
}

// RateLimit creates a Gin middleware for rate limiting requests.
// Authenticated callers are limited per username, everyone else per client IP.
func RateLimit(limiterInstance *limiter.Limiter) gin.HandlerFunc {
	return func(c *gin.Context) {
		logger := GetLoggerFromCtx(c.Request.Context())

		key := "ip:" + c.ClientIP()
		if username, ok := GetUsernameFromContext(c); ok {
			key = "user:" + username
		}

		lctx, err := limiterInstance.Get(c.Request.Context(), key)
		if err != nil {
			logger.Error("Failed to get rate limit context", slog.String("key", key), slog.String("error", err.Error()))
			c.AbortWithStatusJSON(http.StatusInternalServerError, dto.ErrorResponse{ErrorCode: "SYS-500", Message: "Internal server error during rate limit check"})
			return
		}

		c.Header("X-RateLimit-Limit", strconv.FormatInt(lctx.Limit, 10))
		c.Header("X-RateLimit-Remaining", strconv.FormatInt(lctx.Remaining, 10))
		c.Header("X-RateLimit-Reset", strconv.FormatInt(lctx.Reset, 10))

		if lctx.Reached {
			logger.Warn("Rate limit exceeded", slog.String("key", key), slog.Int64("limit", lctx.Limit))
			c.AbortWithStatusJSON(http.StatusTooManyRequests, dto.ErrorResponse{ErrorCode: ErrorCodeRateLimited, Message: "Too many requests. Please try again later."})
			return
		}

		c.Next()
	}
}
