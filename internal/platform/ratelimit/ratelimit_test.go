package ratelimit

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testKey = "user-1"

// 配额内全部放行，第 limit+1 次拒绝
func assertQuota(t *testing.T, l Limiter, limit int) {
	t.Helper()
	for i := 0; i < limit; i++ {
		assert.True(t, l.Allow(testKey), "第 %d 次应放行", i+1)
	}
	assert.False(t, l.Allow(testKey), "超额后应拒绝")
}

func TestFixedWindowQuota(t *testing.T) {
	l := NewFixedWindow(5, time.Minute)
	assertQuota(t, l, 5)
}

func TestFixedWindowReset(t *testing.T) {
	l := NewFixedWindow(3, time.Minute)
	base := time.Now()
	l.now = func() time.Time { return base }

	assertQuota(t, l, 3)

	// 推进一个完整窗口后配额恢复
	l.now = func() time.Time { return base.Add(time.Minute) }
	assert.True(t, l.Allow(testKey))
}

func TestSlidingWindowQuota(t *testing.T) {
	l := NewSlidingWindow(5, time.Minute)
	assertQuota(t, l, 5)
}

func TestSlidingWindowEviction(t *testing.T) {
	l := NewSlidingWindow(3, time.Minute)
	base := time.Now()
	l.now = func() time.Time { return base }

	assertQuota(t, l, 3)

	// 窗口滑过旧记录后重新放行
	l.now = func() time.Time { return base.Add(time.Minute + time.Second) }
	assert.True(t, l.Allow(testKey))
}

func TestTokenBucketQuota(t *testing.T) {
	l := NewTokenBucket(5, time.Minute)
	assertQuota(t, l, 5)
}

func TestTokenBucketRefill(t *testing.T) {
	l := NewTokenBucket(10, 100*time.Millisecond)
	for i := 0; i < 10; i++ {
		require.True(t, l.Allow(testKey))
	}
	require.False(t, l.Allow(testKey))

	// 等待一个窗口让令牌回满
	time.Sleep(150 * time.Millisecond)
	assert.True(t, l.Allow(testKey))
}

// 不同 key 的配额彼此独立
func TestPerKeyIsolation(t *testing.T) {
	for _, algo := range []string{AlgorithmFixedWindow, AlgorithmSlidingWindow, AlgorithmTokenBucket} {
		t.Run(algo, func(t *testing.T) {
			l := New(algo, 2, time.Minute)
			assert.True(t, l.Allow("key-a"))
			assert.True(t, l.Allow("key-a"))
			assert.False(t, l.Allow("key-a"))

			// key-a 超额不消耗 key-b 的配额
			assert.True(t, l.Allow("key-b"))
			assert.True(t, l.Allow("key-b"))
		})
	}
}

func TestWaitBlocksUntilAllowed(t *testing.T) {
	l := NewTokenBucket(10, 100*time.Millisecond)
	for i := 0; i < 10; i++ {
		require.True(t, l.Allow(testKey))
	}

	start := time.Now()
	err := l.Wait(context.Background(), testKey)
	require.NoError(t, err)
	assert.Greater(t, time.Since(start), time.Duration(0))
}

func TestWaitRespectsContext(t *testing.T) {
	l := NewFixedWindow(1, time.Hour)
	require.True(t, l.Allow(testKey))

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	err := l.Wait(ctx, testKey)
	assert.ErrorIs(t, err, context.DeadlineExceeded)
}

func TestNewFallback(t *testing.T) {
	l := New("unknown", 1, time.Minute)
	_, ok := l.(*FixedWindow)
	assert.True(t, ok)
}
