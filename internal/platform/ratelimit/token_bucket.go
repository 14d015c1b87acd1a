package ratelimit

import (
	"context"
	"sync"
	"time"

	"golang.org/x/time/rate"
)

// TokenBucket 令牌桶限流，按 key 懒创建独立的 rate.Limiter
// 桶容量等于 limit，按 limit/window 速率匀速补充
type TokenBucket struct {
	mu      sync.Mutex
	limit   int
	window  time.Duration
	buckets map[string]*rate.Limiter
}

func NewTokenBucket(limit int, window time.Duration) *TokenBucket {
	return &TokenBucket{
		limit:   limit,
		window:  window,
		buckets: make(map[string]*rate.Limiter),
	}
}

func (t *TokenBucket) bucket(key string) *rate.Limiter {
	t.mu.Lock()
	defer t.mu.Unlock()

	lim, ok := t.buckets[key]
	if !ok {
		refill := rate.Limit(float64(t.limit) / t.window.Seconds())
		lim = rate.NewLimiter(refill, t.limit)
		t.buckets[key] = lim
	}
	return lim
}

func (t *TokenBucket) Allow(key string) bool {
	return t.bucket(key).Allow()
}

func (t *TokenBucket) Wait(ctx context.Context, key string) error {
	return t.bucket(key).Wait(ctx)
}
