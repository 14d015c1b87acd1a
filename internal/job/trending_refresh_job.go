package job

import (
	"Fanscope/internal/pkg/consts"
	"Fanscope/internal/pkg/logger"
	"Fanscope/internal/pkg/redis"
	"Fanscope/internal/platform"
	"Fanscope/internal/service"
	"context"
	log "log/slog"
	"time"

	"github.com/google/uuid"
)

// 预热的目标地区，global 必刷
var warmupRegions = []string{"global", "us", "uk"}

// TrendingRefreshJob 周期性预热趋势缓存，让交互请求大概率命中
type TrendingRefreshJob struct {
	trendingSvc service.TrendingService
}

func NewTrendingRefreshJob(trendingSvc service.TrendingService) *TrendingRefreshJob {
	return &TrendingRefreshJob{
		trendingSvc: trendingSvc,
	}
}

func (s *TrendingRefreshJob) Run() {
	traceID := "job-trending-" + uuid.NewString()
	ctx := context.WithValue(context.Background(), logger.TraceIDKey, traceID)
	// 预热属于后台批量工作，排队等限流配额
	ctx = platform.WithBlocking(ctx)

	for _, region := range warmupRegions {
		lockKey := consts.TrendingJobLock + region
		lockValue := uuid.NewString()
		lock, err := redis.TryLock(ctx, lockKey, lockValue, 10*time.Minute, 1)
		if err != nil || !lock {
			continue
		}

		log.InfoContext(ctx, "TrendingRefreshJob warming up", "region", region)
		s.trendingSvc.WarmUp(ctx, region)

		redis.UnLock(ctx, lockKey, lockValue)
	}

	log.InfoContext(ctx, "TrendingRefreshJob finished")
}
