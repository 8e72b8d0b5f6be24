package middleware

import (
	"context"
	"fmt"
	"time"

	"jobtracker-bot/internal/storage/redis"

	"go.uber.org/zap"
	tele "gopkg.in/telebot.v3"
)

const (
	MaxRequestsPerMinute = 30

	// MaxBackendRequestsPerMinute guards the tracker backend across all
	// users combined.
	MaxBackendRequestsPerMinute = 100
)

func RateLimit(cache *redis.Cache, logger *zap.Logger) tele.MiddlewareFunc {
	return func(next tele.HandlerFunc) tele.HandlerFunc {
		return func(c tele.Context) error {
			user := c.Sender()
			if user == nil {
				return next(c)
			}

			ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
			defer cancel()

			count, err := cache.IncrementUserRateLimit(ctx, user.ID)
			if err != nil {
				logger.Error("failed to check rate limit",
					zap.Int64("user_id", user.ID),
					zap.Error(err),
				)
				return next(c)
			}

			if count > MaxRequestsPerMinute {
				logger.Warn("rate limit exceeded",
					zap.Int64("user_id", user.ID),
					zap.Int64("count", count),
				)

				return c.Reply(fmt.Sprintf(
					"⚠️ Too many requests, please wait a minute.\n"+
						"Limit: %d requests per minute.",
					MaxRequestsPerMinute,
				))
			}

			return next(c)
		}
	}
}

// CheckBackendRateLimit is called before every backend fetch so one chatty
// user cannot starve the tracker API for everyone.
func CheckBackendRateLimit(cache *redis.Cache, logger *zap.Logger) error {
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	count, err := cache.IncrementBackendRateLimit(ctx)
	if err != nil {
		logger.Error("failed to check backend rate limit", zap.Error(err))
		return nil
	}

	if count > MaxBackendRequestsPerMinute {
		return fmt.Errorf("backend rate limit exceeded: %d requests", count)
	}

	return nil
}
