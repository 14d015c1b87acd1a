package ratelimit

import (
	"context"
	"sync"
	"time"
)

// FixedWindow 固定窗口计数器
// 已知限制：窗口边界处最坏允许 2 倍突发，按设计保留不修复
type FixedWindow struct {
	mu     sync.Mutex
	limit  int
	window time.Duration
	states map[string]*fixedWindowState

	// 测试注入用
	now func() time.Time
}

type fixedWindowState struct {
	bucket int64
	count  int
}

func NewFixedWindow(limit int, window time.Duration) *FixedWindow {
	return &FixedWindow{
		limit:  limit,
		window: window,
		states: make(map[string]*fixedWindowState),
		now:    time.Now,
	}
}

func (f *FixedWindow) Allow(key string) bool {
	f.mu.Lock()
	defer f.mu.Unlock()

	bucket := f.now().UnixNano() / int64(f.window)

	st, ok := f.states[key]
	if !ok || st.bucket != bucket {
		st = &fixedWindowState{bucket: bucket}
		f.states[key] = st
	}

	if st.count >= f.limit {
		return false
	}
	st.count++
	return true
}

func (f *FixedWindow) Wait(ctx context.Context, key string) error {
	return pollWait(ctx, f, key, f.limit, f.window)
}
