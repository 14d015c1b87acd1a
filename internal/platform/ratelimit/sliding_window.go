package ratelimit

import (
	"context"
	"sync"
	"time"
)

// SlidingWindow 滑动窗口限流
// 记录窗口内每次请求的时间戳，平滑边界突发，代价是每 key O(limit) 内存
type SlidingWindow struct {
	mu     sync.Mutex
	limit  int
	window time.Duration
	stamps map[string][]time.Time

	now func() time.Time
}

func NewSlidingWindow(limit int, window time.Duration) *SlidingWindow {
	return &SlidingWindow{
		limit:  limit,
		window: window,
		stamps: make(map[string][]time.Time),
		now:    time.Now,
	}
}

func (s *SlidingWindow) Allow(key string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	cutoff := now.Add(-s.window)

	stamps := s.stamps[key]
	// 淘汰窗口外的记录
	idx := 0
	for idx < len(stamps) && !stamps[idx].After(cutoff) {
		idx++
	}
	stamps = stamps[idx:]

	if len(stamps) >= s.limit {
		s.stamps[key] = stamps
		return false
	}

	s.stamps[key] = append(stamps, now)
	return true
}

func (s *SlidingWindow) Wait(ctx context.Context, key string) error {
	return pollWait(ctx, s, key, s.limit, s.window)
}
