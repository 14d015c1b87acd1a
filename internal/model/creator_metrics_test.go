package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestEngagementRate(t *testing.T) {
	m := &CreatorMetrics{Followers: 100, Likes: 50, Comments: 50}

	// 多次读取结果一致，始终由原始计数推导
	assert.Equal(t, 100.0, m.EngagementRate())
	assert.Equal(t, 100.0, m.EngagementRate())

	m.Likes = 500
	m.Comments = 120
	m.Followers = 1000
	assert.Equal(t, 62.0, m.EngagementRate())
}

func TestEngagementRateZeroFollowers(t *testing.T) {
	m := &CreatorMetrics{Followers: 0, Likes: 999, Comments: 999}
	assert.Equal(t, 0.0, m.EngagementRate())

	m.Followers = -1
	assert.Equal(t, 0.0, m.EngagementRate())
}

func TestTrendingEngagementScore(t *testing.T) {
	item := &TrendingContentItem{Likes: 100, Comments: 50}
	assert.Equal(t, 200.0, item.EngagementScore())
}
