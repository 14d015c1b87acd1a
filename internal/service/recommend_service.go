package service

import (
	"Fanscope/internal/model"
	"Fanscope/internal/pkg/consts"
	"Fanscope/internal/pkg/llm"
	"Fanscope/internal/pkg/redis"
	"Fanscope/internal/platform"
	"context"
	"fmt"
	log "log/slog"
	"time"
)

const insightCacheTTL = 6 * time.Hour

// RecommendResult 规则建议加可选的大模型洞察
type RecommendResult struct {
	Metrics         *model.CreatorMetrics     `json:"metrics"`
	Recommendations []platform.Recommendation `json:"recommendations"`
	Insight         string                    `json:"insight,omitempty"`
}

type RecommendService interface {
	GetRecommendations(ctx context.Context, platformName, identifier string) (*RecommendResult, error)
}

type recommendServiceImpl struct {
	registry       *platform.Registry
	metricsService MetricsService
}

func NewRecommendService(registry *platform.Registry, metricsService MetricsService) RecommendService {
	return &recommendServiceImpl{
		registry:       registry,
		metricsService: metricsService,
	}
}

func (s *recommendServiceImpl) GetRecommendations(ctx context.Context, platformName, identifier string) (*RecommendResult, error) {
	client, ok := s.registry.Get(platformName)
	if !ok {
		return nil, ErrPlatformNotSupported
	}

	metric, err := s.metricsService.GetLatest(ctx, platformName, identifier)
	if err != nil {
		return nil, err
	}

	result := &RecommendResult{
		Metrics:         metric,
		Recommendations: client.GenerateRecommendations(metric),
	}

	// 洞察是锦上添花，任何失败都回退到纯规则建议
	result.Insight = s.getInsight(ctx, metric)

	return result, nil
}

func (s *recommendServiceImpl) getInsight(ctx context.Context, metric *model.CreatorMetrics) string {
	key := consts.InsightKey + metric.Platform + ":" + metric.ExternalID

	cached, err := redis.GetValue(ctx, key)
	if err == nil && cached != "" {
		return cached
	}

	summary := fmt.Sprintf("粉丝数: %d\n点赞数: %d\n评论数: %d\n互动率: %.2f%%",
		metric.Followers, metric.Likes, metric.Comments, metric.EngagementRate())

	insight, err := llm.GenerateInsight(ctx, metric.Platform, metric.Username, summary)
	if err != nil {
		log.WarnContext(ctx, "Generate insight failed",
			log.String("platform", metric.Platform),
			log.String("external_id", metric.ExternalID),
			log.Any("err", err),
		)
		return ""
	}

	if insight != "" {
		_ = redis.SetWithExpiration(ctx, key, insight, insightCacheTTL)
	}
	return insight
}
