package platform

import (
	"Fanscope/internal/model"
	"context"
)

// Client 平台客户端统一契约，每个外部平台一个适配器实现
// 每个实现组合且仅组合一份 Transport + RateLimiter + Cache，
// 实例之间不共享可变状态，保证平台级凭据与身份隔离
type Client interface {
	// Platform 返回平台标识，如 onlyfans / reddit / fansly
	Platform() string

	// GetCreatorMetrics 拉取创作者指标并归一化
	// 标识符不存在时返回 *NotFoundError；上游部分字段缺失时
	// 数值字段补 0 并记录告警，不整体失败
	GetCreatorMetrics(ctx context.Context, identifier string) (*model.CreatorMetrics, error)

	// GetTrendingContent 拉取趋势内容，可按地区过滤
	// 无结果返回空切片，永不返回 nil
	GetTrendingContent(ctx context.Context, region string) ([]*model.TrendingContentItem, error)

	// GenerateRecommendations 基于已拉取的指标生成运营建议
	// 纯函数，无网络 IO
	GenerateRecommendations(metrics *model.CreatorMetrics) []Recommendation
}

// Recommendation 一条运营建议
type Recommendation struct {
	Category string `json:"category"`
	Action   string `json:"action"`
	Priority int    `json:"priority"`
}

type blockingKey struct{}

// WithBlocking 标记调用方愿意在限流时阻塞等待而非快速失败
// 批量回填场景（Kafka 消费者）使用，交互请求不使用
func WithBlocking(ctx context.Context) context.Context {
	return context.WithValue(ctx, blockingKey{}, true)
}

// IsBlocking 判断当前调用是否允许限流阻塞
func IsBlocking(ctx context.Context) bool {
	v, _ := ctx.Value(blockingKey{}).(bool)
	return v
}
