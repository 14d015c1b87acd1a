package service

import (
	"Fanscope/internal/model"
	"Fanscope/internal/pkg/consts"
	"Fanscope/internal/pkg/es"
	"Fanscope/internal/pkg/mongo"
	"Fanscope/internal/pkg/redis"
	"Fanscope/internal/platform"
	"Fanscope/internal/repository"
	"context"
	"fmt"
	log "log/slog"
	"time"

	"github.com/goccy/go-json"
)

const historyCacheTTL = 10 * time.Minute

type MetricsService interface {
	FetchAndStore(ctx context.Context, platformName, identifier string) error
	GetLatest(ctx context.Context, platformName, identifier string) (*model.CreatorMetrics, error)
	GetHistory(ctx context.Context, platformName, externalID string, days int) ([]*model.CreatorMetrics, error)
	SearchSnapshots(ctx context.Context, keyword, platformName string, from, size int) ([]*es.SnapshotES, error)
}

type metricsServiceImpl struct {
	registry    *platform.Registry
	metricsRepo repository.CreatorMetricsRepo
	rawRepo     mongo.RawSnapshotRepo
	esRepo      es.SnapshotRepo
}

func NewMetricsService(
	registry *platform.Registry,
	metricsRepo repository.CreatorMetricsRepo,
	rawRepo mongo.RawSnapshotRepo,
	esRepo es.SnapshotRepo,
) MetricsService {
	return &metricsServiceImpl{
		registry:    registry,
		metricsRepo: metricsRepo,
		rawRepo:     rawRepo,
		esRepo:      esRepo,
	}
}

// FetchAndStore 抓取一次指标并落库
// MySQL 是事实来源，写失败直接报错；Mongo 归档和 ES 索引失败只记日志
func (s *metricsServiceImpl) FetchAndStore(ctx context.Context, platformName, identifier string) error {
	_, err := s.fetchAndStore(ctx, platformName, identifier)
	return err
}

// GetLatest 实时取一次指标，客户端内部有缓存，重复请求不会穿透到上游
func (s *metricsServiceImpl) GetLatest(ctx context.Context, platformName, identifier string) (*model.CreatorMetrics, error) {
	return s.fetchAndStore(ctx, platformName, identifier)
}

func (s *metricsServiceImpl) fetchAndStore(ctx context.Context, platformName, identifier string) (*model.CreatorMetrics, error) {
	client, ok := s.registry.Get(platformName)
	if !ok {
		return nil, ErrPlatformNotSupported
	}

	metric, err := client.GetCreatorMetrics(ctx, identifier)
	if err != nil {
		return nil, err
	}

	// 追加快照，缓存命中导致的同刻重复写会被唯一键静默吞掉
	if err := s.metricsRepo.AppendSnapshot(ctx, metric); err != nil {
		return nil, err
	}

	if err := s.rawRepo.SaveSnapshot(ctx, &mongo.RawSnapshot{
		Platform:   metric.Platform,
		ExternalID: metric.ExternalID,
		Username:   metric.Username,
		Followers:  metric.Followers,
		Likes:      metric.Likes,
		Comments:   metric.Comments,
		Earnings:   metric.Earnings,
		CapturedAt: metric.CapturedAt,
	}); err != nil {
		log.ErrorContext(ctx, "Archive raw snapshot failed",
			log.String("platform", metric.Platform),
			log.String("external_id", metric.ExternalID),
			log.Any("err", err),
		)
	}

	docID := fmt.Sprintf("%s:%s:%d", metric.Platform, metric.ExternalID, metric.CapturedAt.Unix())
	if err := s.esRepo.IndexSnapshot(ctx, &es.SnapshotES{
		ID:             docID,
		Platform:       metric.Platform,
		ExternalID:     metric.ExternalID,
		Username:       metric.Username,
		Followers:      metric.Followers,
		Likes:          metric.Likes,
		Comments:       metric.Comments,
		EngagementRate: metric.EngagementRate(),
		CapturedAt:     metric.CapturedAt,
	}, metric.CapturedAt.Unix()); err != nil {
		log.ErrorContext(ctx, "Index snapshot to ES failed",
			log.String("doc_id", docID),
			log.Any("err", err),
		)
	}

	// 新快照落库后历史缓存全部失效
	for _, days := range []int{7, 30, 90} {
		_ = redis.DeleteKey(ctx, historyCacheKey(metric.Platform, metric.ExternalID, days))
	}

	return metric, nil
}

// GetHistory 旁路缓存，新快照写入时失效
func (s *metricsServiceImpl) GetHistory(ctx context.Context, platformName, externalID string, days int) ([]*model.CreatorMetrics, error) {
	if days <= 0 {
		days = 30
	}
	key := historyCacheKey(platformName, externalID, days)

	cached, err := redis.GetValue(ctx, key)
	if err == nil && cached != "" {
		metrics := make([]*model.CreatorMetrics, 0)
		if err := json.Unmarshal([]byte(cached), &metrics); err == nil {
			return metrics, nil
		}
	}

	metrics, err := s.metricsRepo.GetHistory(ctx, platformName, externalID, days)
	if err != nil {
		return nil, err
	}

	if data, err := json.Marshal(metrics); err == nil {
		_ = redis.SetWithExpiration(ctx, key, string(data), historyCacheTTL)
	}

	return metrics, nil
}

func (s *metricsServiceImpl) SearchSnapshots(ctx context.Context, keyword, platformName string, from, size int) ([]*es.SnapshotES, error) {
	if size <= 0 || size > 50 {
		size = 20
	}
	if from < 0 {
		from = 0
	}
	return s.esRepo.SearchSnapshots(ctx, keyword, platformName, from, size)
}

func historyCacheKey(platformName, externalID string, days int) string {
	return fmt.Sprintf("%s%s:%s:%d", consts.MetricsHistoryKey, platformName, externalID, days)
}
