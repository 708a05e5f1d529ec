package server

import (
	"context"
	"fmt"
	"net/http"
	"sync"
	"time"

	"github.com/hashicorp/golang-lru/v2/expirable"
	"github.com/redis/go-redis/v9"

	"github.com/osse101/ReferralBot_Go/internal/logger"
	"github.com/osse101/ReferralBot_Go/internal/metrics"
)

// RateLimiter counts requests per client key in fixed windows
type RateLimiter interface {
	// Allow records one request for key and reports whether it is within the limit
	Allow(ctx context.Context, key string) (bool, error)
}

type fixedWindow struct {
	start time.Time
	count int
}

// MemoryRateLimiter keeps per-client windows in process.
// Idle clients are evicted by the LRU TTL.
type MemoryRateLimiter struct {
	mu      sync.Mutex
	limit   int
	window  time.Duration
	now     func() time.Time
	windows *expirable.LRU[string, *fixedWindow]
}

// NewMemoryRateLimiter allows limit requests per window for each key
func NewMemoryRateLimiter(limit int, window time.Duration) *MemoryRateLimiter {
	return &MemoryRateLimiter{
		limit:   limit,
		window:  window,
		now:     time.Now,
		windows: expirable.NewLRU[string, *fixedWindow](MaxTrackedClients, nil, window),
	}
}

func (l *MemoryRateLimiter) Allow(_ context.Context, key string) (bool, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	now := l.now()
	w, ok := l.windows.Get(key)
	if !ok || now.Sub(w.start) >= l.window {
		w = &fixedWindow{start: now}
		l.windows.Add(key, w)
	}
	w.count++
	return w.count <= l.limit, nil
}

// RedisRateLimiter shares windows between replicas through Redis.
// Each window is its own key so expiry never has to be reset.
type RedisRateLimiter struct {
	client redis.Cmdable
	limit  int
	window time.Duration
	prefix string
	now    func() time.Time
}

// NewRedisRateLimiter allows limit requests per window for each key
func NewRedisRateLimiter(client redis.Cmdable, limit int, window time.Duration) *RedisRateLimiter {
	return &RedisRateLimiter{
		client: client,
		limit:  limit,
		window: window,
		prefix: RedisKeyPrefix,
		now:    time.Now,
	}
}

func (l *RedisRateLimiter) Allow(ctx context.Context, key string) (bool, error) {
	redisKey := l.windowKey(key)

	var count *redis.IntCmd
	_, err := l.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		count = pipe.Incr(ctx, redisKey)
		pipe.Expire(ctx, redisKey, l.window)
		return nil
	})
	if err != nil {
		return false, fmt.Errorf("rate limit %s: %w", key, err)
	}
	return count.Val() <= int64(l.limit), nil
}

// windowKey names the counter for key in the current window
func (l *RedisRateLimiter) windowKey(key string) string {
	bucket := l.now().UnixNano() / int64(l.window)
	return fmt.Sprintf("%s:%s:%d", l.prefix, key, bucket)
}

// RateLimitMiddleware answers 429 once a client exceeds the limiter's quota.
// Public paths are not counted. Limiter errors fail open.
func RateLimitMiddleware(limiter RateLimiter, ips *ClientIPResolver) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if isPublicPath(r.URL.Path) {
				next.ServeHTTP(w, r)
				return
			}

			log := logger.FromContext(r.Context())
			ip := ips.ClientIP(r)
			allowed, err := limiter.Allow(r.Context(), ip)
			if err != nil {
				log.Warn(LogMsgRateLimiterError, "ip", ip, "error", err)
				allowed = true
			}
			if !allowed {
				metrics.RateLimitedTotal.Inc()
				log.Warn(LogMsgRateLimited, "ip", ip, "path", r.URL.Path)
				http.Error(w, ErrMsgTooManyRequests, http.StatusTooManyRequests)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}
