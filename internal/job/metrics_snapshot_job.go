package job

import (
	"Fanscope/internal/pkg/consts"
	"Fanscope/internal/pkg/logger"
	"Fanscope/internal/pkg/redis"
	"Fanscope/internal/platform"
	"Fanscope/internal/repository"
	"Fanscope/internal/service"
	"context"
	log "log/slog"
	"time"

	"github.com/google/uuid"
)

// MetricsSnapshotJob 每日全量采集所有已绑定账号的指标快照
type MetricsSnapshotJob struct {
	accountRepo repository.PlatformAccountRepo
	metricsSvc  service.MetricsService
}

func NewMetricsSnapshotJob(accountRepo repository.PlatformAccountRepo, metricsSvc service.MetricsService) *MetricsSnapshotJob {
	return &MetricsSnapshotJob{
		accountRepo: accountRepo,
		metricsSvc:  metricsSvc,
	}
}

func (s *MetricsSnapshotJob) Run() {
	traceID := "job-snapshot-" + uuid.NewString()
	ctx := context.WithValue(context.Background(), logger.TraceIDKey, traceID)

	// 多实例部署时只允许一个实例跑全量快照
	lockValue := uuid.NewString()
	lock, err := redis.TryLock(ctx, consts.SnapshotJobLock, lockValue, time.Hour, 1)
	if err != nil || !lock {
		return
	}
	defer redis.UnLock(ctx, consts.SnapshotJobLock, lockValue)

	accounts, err := s.accountRepo.ListAllAccounts(ctx)
	if err != nil {
		log.ErrorContext(ctx, "list accounts for snapshot error", "err", err)
		return
	}

	log.InfoContext(ctx, "MetricsSnapshotJob processing", "account_count", len(accounts))

	// 全量回填走阻塞限流，慢慢排队而不是打爆上游
	fetchCtx := platform.WithBlocking(ctx)
	failed := 0
	for _, account := range accounts {
		if err := s.metricsSvc.FetchAndStore(fetchCtx, account.Platform, account.ExternalID); err != nil {
			log.ErrorContext(ctx, "snapshot fetch error",
				"platform", account.Platform,
				"external_id", account.ExternalID,
				"err", err,
			)
			failed++
			continue
		}
	}

	log.InfoContext(ctx, "MetricsSnapshotJob finished",
		"processed_count", len(accounts),
		"failed_count", failed,
	)
}
