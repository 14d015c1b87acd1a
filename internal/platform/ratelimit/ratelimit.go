package ratelimit

import (
	"context"
	"time"
)

// 可选限流算法
const (
	AlgorithmFixedWindow   = "fixed_window"
	AlgorithmSlidingWindow = "sliding_window"
	AlgorithmTokenBucket   = "token_bucket"
)

// Limiter 按 client-key 维度限制请求速率
// 不同 key 的配额彼此独立，一个 key 超额不影响其他 key
type Limiter interface {
	// Allow 配额内返回 true 并记账，超额返回 false，调用方自行决定等待或失败
	Allow(key string) bool

	// Wait 阻塞直到 Allow 会放行，批量回填场景使用
	Wait(ctx context.Context, key string) error
}

// New 按算法名构造限流器，未知算法回退到固定窗口
func New(algorithm string, limit int, window time.Duration) Limiter {
	switch algorithm {
	case AlgorithmSlidingWindow:
		return NewSlidingWindow(limit, window)
	case AlgorithmTokenBucket:
		return NewTokenBucket(limit, window)
	default:
		return NewFixedWindow(limit, window)
	}
}

// pollWait 通用阻塞等待实现，按配额间隔轮询 Allow
func pollWait(ctx context.Context, l Limiter, key string, limit int, window time.Duration) error {
	if l.Allow(key) {
		return nil
	}

	interval := window / time.Duration(limit)
	if interval < 10*time.Millisecond {
		interval = 10 * time.Millisecond
	}

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
			if l.Allow(key) {
				return nil
			}
		}
	}
}
