package cache

import (
	"context"
	"fmt"
	"hash/fnv"
	"sort"
	"sync"
	"time"

	"golang.org/x/sync/singleflight"
)

// Cache 进程内带 TTL 的响应缓存
// 同一 key 的并发计算通过 singleflight 合并为一次上游调用，
// TTL 按调用传入，淘汰基于过期时间（惰性删除 + 定期清扫）
type Cache struct {
	mu      sync.RWMutex
	entries map[string]entry
	group   singleflight.Group
	stop    chan struct{}

	now func() time.Time
}

type entry struct {
	value     interface{}
	expiresAt time.Time
}

// ComputeFunc 缓存未命中时的取数函数
type ComputeFunc func(ctx context.Context) (interface{}, error)

// New 创建缓存并启动后台清扫协程
func New(sweepInterval time.Duration) *Cache {
	if sweepInterval <= 0 {
		sweepInterval = time.Minute
	}
	c := &Cache{
		entries: make(map[string]entry),
		stop:    make(chan struct{}),
		now:     time.Now,
	}
	go c.janitor(sweepInterval)
	return c
}

// GetOrCompute 命中且未过期直接返回，否则执行 compute 并写回
// 同一 key 同时只有一个 compute 在途，其余调用方等待并共享结果
func (c *Cache) GetOrCompute(ctx context.Context, key string, ttl time.Duration, compute ComputeFunc) (interface{}, error) {
	if v, ok := c.lookup(key); ok {
		return v, nil
	}

	v, err, _ := c.group.Do(key, func() (interface{}, error) {
		// 双重检查：排队期间可能已有人写入
		if v, ok := c.lookup(key); ok {
			return v, nil
		}

		v, err := compute(ctx)
		if err != nil {
			return nil, err
		}

		c.mu.Lock()
		c.entries[key] = entry{value: v, expiresAt: c.now().Add(ttl)}
		c.mu.Unlock()
		return v, nil
	})
	return v, err
}

// Invalidate 显式删除，写操作后强制下次读取回源
func (c *Cache) Invalidate(key string) {
	c.mu.Lock()
	delete(c.entries, key)
	c.mu.Unlock()
}

// Close 停止后台清扫
func (c *Cache) Close() {
	close(c.stop)
}

// Len 当前条目数
func (c *Cache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.entries)
}

func (c *Cache) lookup(key string) (interface{}, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	e, ok := c.entries[key]
	if !ok || !c.now().Before(e.expiresAt) {
		return nil, false
	}
	return e.value, true
}

func (c *Cache) janitor(interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-c.stop:
			return
		case <-ticker.C:
			now := c.now()
			c.mu.Lock()
			for k, e := range c.entries {
				if !now.Before(e.expiresAt) {
					delete(c.entries, k)
				}
			}
			c.mu.Unlock()
		}
	}
}

// Key 由 method + endpoint + 参数生成缓存键，参数按键名排序保证稳定
func Key(method, endpoint string, params map[string]string) string {
	h := fnv.New64a()
	_, _ = fmt.Fprintf(h, "%s|%s", method, endpoint)

	keys := make([]string, 0, len(params))
	for k := range params {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		_, _ = fmt.Fprintf(h, "|%s=%s", k, params[k])
	}

	return fmt.Sprintf("%s:%s:%x", method, endpoint, h.Sum64())
}
