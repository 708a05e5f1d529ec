package bootstrap

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	"github.com/redis/go-redis/v9"

	"github.com/osse101/ReferralBot_Go/internal/config"
	"github.com/osse101/ReferralBot_Go/internal/server"
)

// NewRateLimiter picks the limiter for the configuration: redis when
// REDIS_ADDR is set, in-memory otherwise, none when the limit is 0.
// The closer is nil unless a redis client was opened.
func NewRateLimiter(ctx context.Context, cfg *config.Config) (server.RateLimiter, io.Closer, error) {
	if cfg.RateLimitPerMinute == 0 {
		slog.Info(LogMsgRateLimitDisabled)
		return nil, nil, nil
	}

	if cfg.RedisAddr == "" {
		slog.Info(LogMsgMemoryRateLimiter, "limit_per_minute", cfg.RateLimitPerMinute)
		return server.NewMemoryRateLimiter(cfg.RateLimitPerMinute, server.RateLimitWindow), nil, nil
	}

	client := redis.NewClient(&redis.Options{
		Addr:     cfg.RedisAddr,
		Password: cfg.RedisPassword,
		DB:       cfg.RedisDB,
	})

	pingCtx, cancel := context.WithTimeout(ctx, RedisPingTimeout)
	defer cancel()
	if err := client.Ping(pingCtx).Err(); err != nil {
		_ = client.Close()
		return nil, nil, fmt.Errorf("%s %s: %w", ErrMsgRedisPingFailed, cfg.RedisAddr, err)
	}

	slog.Info(LogMsgRedisRateLimiter, "addr", cfg.RedisAddr, "limit_per_minute", cfg.RateLimitPerMinute)
	return server.NewRedisRateLimiter(client, cfg.RateLimitPerMinute, server.RateLimitWindow), client, nil
}
