package service

import (
	"Fanscope/internal/model"
	"Fanscope/internal/platform"
	"context"
	log "log/slog"
)

type TrendingService interface {
	GetTrending(ctx context.Context, platformName, region string, limit int) ([]*model.TrendingContentItem, error)
	WarmUp(ctx context.Context, region string)
}

type trendingServiceImpl struct {
	registry *platform.Registry
}

func NewTrendingService(registry *platform.Registry) TrendingService {
	return &trendingServiceImpl{registry: registry}
}

func (s *trendingServiceImpl) GetTrending(ctx context.Context, platformName, region string, limit int) ([]*model.TrendingContentItem, error) {
	client, ok := s.registry.Get(platformName)
	if !ok {
		return nil, ErrPlatformNotSupported
	}

	items, err := client.GetTrendingContent(ctx, region)
	if err != nil {
		return nil, err
	}

	if limit > 0 && len(items) > limit {
		items = items[:limit]
	}
	return items, nil
}

// WarmUp 定时预热各平台的趋势缓存，失败只记日志，不中断其他平台
func (s *trendingServiceImpl) WarmUp(ctx context.Context, region string) {
	for _, name := range s.registry.Platforms() {
		client, ok := s.registry.Get(name)
		if !ok {
			continue
		}
		if _, err := client.GetTrendingContent(ctx, region); err != nil {
			log.WarnContext(ctx, "Trending warmup failed",
				log.String("platform", name),
				log.String("region", region),
				log.Any("err", err),
			)
		}
	}
}
