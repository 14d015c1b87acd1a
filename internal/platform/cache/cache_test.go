package cache

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetOrComputeHit(t *testing.T) {
	c := New(time.Minute)
	defer c.Close()

	calls := 0
	compute := func(ctx context.Context) (interface{}, error) {
		calls++
		return "value", nil
	}

	v, err := c.GetOrCompute(context.Background(), "k", time.Minute, compute)
	require.NoError(t, err)
	assert.Equal(t, "value", v)

	v, err = c.GetOrCompute(context.Background(), "k", time.Minute, compute)
	require.NoError(t, err)
	assert.Equal(t, "value", v)
	assert.Equal(t, 1, calls, "命中期间不应回源")
}

// N 个并发调用同一 key，上游只被调用一次，所有人拿到同一结果
func TestSingleFlight(t *testing.T) {
	c := New(time.Minute)
	defer c.Close()

	var calls int64
	slow := func(ctx context.Context) (interface{}, error) {
		atomic.AddInt64(&calls, 1)
		time.Sleep(50 * time.Millisecond)
		return "shared", nil
	}

	const n = 20
	var wg sync.WaitGroup
	results := make([]interface{}, n)
	errs := make([]error, n)
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func(idx int) {
			defer wg.Done()
			results[idx], errs[idx] = c.GetOrCompute(context.Background(), "hot-key", time.Minute, slow)
		}(i)
	}
	wg.Wait()

	assert.Equal(t, int64(1), atomic.LoadInt64(&calls), "并发调用应合并为一次上游调用")
	for i := 0; i < n; i++ {
		require.NoError(t, errs[i])
		assert.Equal(t, "shared", results[i])
	}
}

func TestTTLBoundary(t *testing.T) {
	c := New(time.Minute)
	defer c.Close()

	base := time.Now()
	c.now = func() time.Time { return base }

	calls := 0
	compute := func(ctx context.Context) (interface{}, error) {
		calls++
		return calls, nil
	}

	const ttl = time.Minute
	_, err := c.GetOrCompute(context.Background(), "k", ttl, compute)
	require.NoError(t, err)

	// t0+T-ε 仍命中
	c.now = func() time.Time { return base.Add(ttl - time.Second) }
	v, err := c.GetOrCompute(context.Background(), "k", ttl, compute)
	require.NoError(t, err)
	assert.Equal(t, 1, v)

	// t0+T+ε 触发重新计算
	c.now = func() time.Time { return base.Add(ttl + time.Second) }
	v, err = c.GetOrCompute(context.Background(), "k", ttl, compute)
	require.NoError(t, err)
	assert.Equal(t, 2, v)
}

func TestInvalidate(t *testing.T) {
	c := New(time.Minute)
	defer c.Close()

	calls := 0
	compute := func(ctx context.Context) (interface{}, error) {
		calls++
		return calls, nil
	}

	_, _ = c.GetOrCompute(context.Background(), "k", time.Minute, compute)
	c.Invalidate("k")
	v, err := c.GetOrCompute(context.Background(), "k", time.Minute, compute)
	require.NoError(t, err)
	assert.Equal(t, 2, v)
}

func TestComputeErrorNotCached(t *testing.T) {
	c := New(time.Minute)
	defer c.Close()

	calls := 0
	failing := func(ctx context.Context) (interface{}, error) {
		calls++
		return nil, errors.New("upstream down")
	}

	_, err := c.GetOrCompute(context.Background(), "k", time.Minute, failing)
	require.Error(t, err)

	// 失败不缓存，下次仍回源
	_, err = c.GetOrCompute(context.Background(), "k", time.Minute, failing)
	require.Error(t, err)
	assert.Equal(t, 2, calls)
}

func TestJanitorSweep(t *testing.T) {
	c := New(20 * time.Millisecond)
	defer c.Close()

	_, _ = c.GetOrCompute(context.Background(), "k", 10*time.Millisecond, func(ctx context.Context) (interface{}, error) {
		return "v", nil
	})
	require.Equal(t, 1, c.Len())

	time.Sleep(60 * time.Millisecond)
	assert.Equal(t, 0, c.Len(), "过期条目应被清扫")
}

func TestKeyStable(t *testing.T) {
	k1 := Key("GET", "/users/alice", map[string]string{"a": "1", "b": "2"})
	k2 := Key("GET", "/users/alice", map[string]string{"b": "2", "a": "1"})
	assert.Equal(t, k1, k2, "参数顺序不应影响缓存键")

	k3 := Key("GET", "/users/alice", map[string]string{"a": "2"})
	assert.NotEqual(t, k1, k3)
}
