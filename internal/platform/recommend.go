package platform

import "Fanscope/internal/model"

// 建议优先级，数值越小越靠前
const (
	PriorityHigh   = 1
	PriorityMedium = 2
	PriorityLow    = 3
)

// DefaultRecommendations 通用规则引擎，各平台适配器默认复用
// 纯函数，只读取已拉取的指标，不发起任何网络请求
func DefaultRecommendations(m *model.CreatorMetrics) []Recommendation {
	recs := make([]Recommendation, 0, 4)
	if m == nil {
		return recs
	}

	rate := m.EngagementRate()

	if m.Followers < 100 {
		recs = append(recs, Recommendation{
			Category: "growth",
			Action:   "粉丝基数过小，建议提高发布频率并使用平台话题标签提升曝光",
			Priority: PriorityHigh,
		})
	}

	switch {
	case rate == 0 && m.Followers > 0:
		recs = append(recs, Recommendation{
			Category: "engagement",
			Action:   "互动率为零，检查内容是否触达粉丝，尝试发起互动型内容",
			Priority: PriorityHigh,
		})
	case rate > 0 && rate < 1:
		recs = append(recs, Recommendation{
			Category: "engagement",
			Action:   "互动率低于 1%，建议在粉丝活跃时段发布并回复评论",
			Priority: PriorityMedium,
		})
	case rate >= 10:
		recs = append(recs, Recommendation{
			Category: "engagement",
			Action:   "互动率表现优秀，保持当前内容节奏",
			Priority: PriorityLow,
		})
	}

	if m.Earnings == nil && m.Followers >= 1000 && rate >= 2 {
		recs = append(recs, Recommendation{
			Category: "monetization",
			Action:   "粉丝量与互动率已达标，建议开通付费订阅或打赏功能",
			Priority: PriorityMedium,
		})
	}
	if m.Earnings != nil && *m.Earnings > 0 && m.Followers > 0 &&
		*m.Earnings/float64(m.Followers) < 0.05 {
		recs = append(recs, Recommendation{
			Category: "monetization",
			Action:   "单粉收益偏低，考虑调整订阅定价或增加独家内容",
			Priority: PriorityMedium,
		})
	}

	return recs
}
