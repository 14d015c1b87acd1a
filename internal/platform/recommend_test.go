package platform

import (
	"Fanscope/internal/model"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDefaultRecommendationsPure(t *testing.T) {
	m := &model.CreatorMetrics{Followers: 1000, Likes: 500, Comments: 120}

	first := DefaultRecommendations(m)
	second := DefaultRecommendations(m)

	// 纯函数：相同输入结果一致，且不修改入参
	assert.Equal(t, first, second)
	assert.Equal(t, 1000, m.Followers)
}

func TestDefaultRecommendationsLowFollowers(t *testing.T) {
	m := &model.CreatorMetrics{Followers: 10, Likes: 1}
	recs := DefaultRecommendations(m)

	found := false
	for _, r := range recs {
		if r.Category == "growth" {
			found = true
			assert.Equal(t, PriorityHigh, r.Priority)
		}
	}
	assert.True(t, found, "低粉丝量应产出 growth 建议")
}

func TestDefaultRecommendationsMonetization(t *testing.T) {
	// 高互动且未开通收益，应建议变现
	m := &model.CreatorMetrics{Followers: 5000, Likes: 400, Comments: 100}
	recs := DefaultRecommendations(m)

	found := false
	for _, r := range recs {
		if r.Category == "monetization" {
			found = true
		}
	}
	assert.True(t, found)
}

func TestDefaultRecommendationsNil(t *testing.T) {
	recs := DefaultRecommendations(nil)
	assert.NotNil(t, recs)
	assert.Empty(t, recs)
}
