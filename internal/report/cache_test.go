package report

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/francedirectjp-art/astro-medical-system/internal/common/database"
	"github.com/francedirectjp-art/astro-medical-system/internal/common/logger"
)

func newTestCache(t *testing.T) (*Cache, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	rdb := &database.RedisClient{Client: redis.NewClient(&redis.Options{Addr: mr.Addr()})}
	return NewCache(rdb, time.Hour, logger.NewTestLogger(t)), mr
}

func TestCacheRoundTrip(t *testing.T) {
	cache, _ := newTestCache(t)
	ctx := context.Background()

	key := CacheKey("太郎|1990-05-15T14:30@tokyo", TypeSimple, "equal")
	rendered := &Rendered{
		Type:      TypeSimple,
		Text:      "診断テキスト",
		CharCount: 6,
		State:     StateRendered,
	}

	_, ok := cache.Get(ctx, key)
	assert.False(t, ok, "empty cache must miss")

	cache.Put(ctx, key, rendered)

	got, ok := cache.Get(ctx, key)
	require.True(t, ok)
	assert.Equal(t, rendered.Text, got.Text)
	assert.Equal(t, StateRendered, got.State)
}

func TestCacheSkipsFallbackRenders(t *testing.T) {
	cache, _ := newTestCache(t)
	ctx := context.Background()

	key := CacheKey("input", TypeSimple, "equal")
	cache.Put(ctx, key, &Rendered{Type: TypeSimple, Text: "fallback", State: StateFallbackRendered})

	_, ok := cache.Get(ctx, key)
	assert.False(t, ok, "fallback renders are never cached")
}

func TestCacheKeyDeterministic(t *testing.T) {
	a := CacheKey("x", TypeSimple, "equal")
	b := CacheKey("x", TypeSimple, "equal")
	c := CacheKey("x", TypeDetailed, "equal")

	assert.Equal(t, a, b)
	assert.NotEqual(t, a, c)
}

func TestCacheExpiry(t *testing.T) {
	cache, mr := newTestCache(t)
	ctx := context.Background()

	key := CacheKey("expiring", TypeSimple, "equal")
	cache.Put(ctx, key, &Rendered{Type: TypeSimple, Text: "t", State: StateRendered})

	mr.FastForward(2 * time.Hour)

	_, ok := cache.Get(ctx, key)
	assert.False(t, ok)
}

func TestNilCacheIsNoOp(t *testing.T) {
	var cache *Cache
	ctx := context.Background()

	_, ok := cache.Get(ctx, "any")
	assert.False(t, ok)
	cache.Put(ctx, "any", &Rendered{State: StateRendered})
}
