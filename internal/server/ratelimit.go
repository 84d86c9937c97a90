package server

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/francedirectjp-art/astro-medical-system/internal/common/database"
	"github.com/francedirectjp-art/astro-medical-system/internal/common/logger"
)

// rateLimitWindow is the fixed window for all per-route budgets.
const rateLimitWindow = time.Minute

// Limiter answers whether one more request from key fits the budget.
type Limiter interface {
	Allow(ctx context.Context, key string) (bool, error)
}

// NewLimiter returns a Redis-backed fixed-window limiter when a client is
// available, otherwise an in-process one. The in-process fallback keeps
// limits working on a single instance when Redis is disabled.
func NewLimiter(rdb *database.RedisClient, route string, limit int, log logger.Logger) Limiter {
	if rdb != nil {
		return &redisLimiter{redis: rdb, route: route, limit: limit, logger: log}
	}
	return &memoryLimiter{route: route, limit: limit, counts: make(map[string]*windowCount)}
}

type redisLimiter struct {
	redis  *database.RedisClient
	route  string
	limit  int
	logger logger.Logger
}

func (l *redisLimiter) Allow(ctx context.Context, key string) (bool, error) {
	window := time.Now().UTC().Unix() / int64(rateLimitWindow.Seconds())
	counterKey := fmt.Sprintf("ratelimit:%s:%s:%d", l.route, key, window)
	n, err := l.redis.Incr(ctx, counterKey, rateLimitWindow)
	if err != nil {
		// Fail open: a Redis outage should not take the API down with it.
		l.logger.Warn("rate limit counter unavailable", map[string]interface{}{
			"route": l.route,
			"error": err.Error(),
		})
		return true, nil
	}
	return n <= int64(l.limit), nil
}

type windowCount struct {
	count int
	reset time.Time
}

type memoryLimiter struct {
	mu     sync.Mutex
	route  string
	limit  int
	counts map[string]*windowCount
}

func (l *memoryLimiter) Allow(_ context.Context, key string) (bool, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	now := time.Now()
	w, ok := l.counts[key]
	if !ok || now.After(w.reset) {
		w = &windowCount{reset: now.Add(rateLimitWindow)}
		l.counts[key] = w
	}
	w.count++

	if len(l.counts) > 10000 {
		for k, v := range l.counts {
			if now.After(v.reset) {
				delete(l.counts, k)
			}
		}
	}
	return w.count <= l.limit, nil
}
