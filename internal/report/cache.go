package report

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/francedirectjp-art/astro-medical-system/internal/common/database"
	"github.com/francedirectjp-art/astro-medical-system/internal/common/logger"
	"github.com/francedirectjp-art/astro-medical-system/internal/common/metrics"
)

// Cache stores successfully rendered reports in Redis, keyed by a
// deterministic hash of the request. Fallback renders are never cached so a
// later request can retry generation. Cache errors degrade to a miss.
type Cache struct {
	redis  *database.RedisClient
	ttl    time.Duration
	logger logger.Logger
}

// NewCache creates a report cache. A nil redis client disables caching.
func NewCache(rdb *database.RedisClient, ttl time.Duration, log logger.Logger) *Cache {
	return &Cache{redis: rdb, ttl: ttl, logger: log}
}

// CacheKey derives the deterministic cache key from the request parts.
func CacheKey(parts ...string) string {
	sum := sha256.Sum256([]byte(strings.Join(parts, "|")))
	return "report:" + hex.EncodeToString(sum[:])
}

// Get returns the cached report for key, or (nil, false) on a miss.
func (c *Cache) Get(ctx context.Context, key string) (*Rendered, bool) {
	if c == nil || c.redis == nil {
		return nil, false
	}
	raw, err := c.redis.Get(ctx, key)
	if err != nil {
		if !errors.Is(err, redis.Nil) {
			c.logger.Warn("report cache read failed", map[string]interface{}{"error": err.Error()})
		}
		return nil, false
	}
	var r Rendered
	if err := json.Unmarshal([]byte(raw), &r); err != nil {
		c.logger.Warn("report cache entry corrupt", map[string]interface{}{"key": key})
		return nil, false
	}
	metrics.ReportCacheHits.WithLabelValues(r.Type).Inc()
	return &r, true
}

// Put stores a rendered report. Only fully generated reports are kept.
func (c *Cache) Put(ctx context.Context, key string, r *Rendered) {
	if c == nil || c.redis == nil || r.State != StateRendered {
		return
	}
	raw, err := json.Marshal(r)
	if err != nil {
		return
	}
	if err := c.redis.Set(ctx, key, raw, c.ttl); err != nil {
		c.logger.Warn("report cache write failed", map[string]interface{}{"error": err.Error()})
	}
}
