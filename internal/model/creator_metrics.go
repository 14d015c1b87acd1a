package model

import "time"

// CreatorMetrics 某个平台上创作者账号的一次指标快照
// 每次成功抓取追加一条新记录，历史只增不改，用于趋势分析
type CreatorMetrics struct {
	ID         uint64    `gorm:"primaryKey" json:"id"`
	Platform   string    `gorm:"type:varchar(32);not null;uniqueIndex:idx_snapshot" json:"platform"`
	ExternalID string    `gorm:"type:varchar(128);not null;uniqueIndex:idx_snapshot" json:"external_id"`
	Username   string    `gorm:"type:varchar(128);not null" json:"username"`
	Followers  int       `gorm:"not null;default:0" json:"followers"`
	Likes      int       `gorm:"not null;default:0" json:"likes"`
	Comments   int       `gorm:"not null;default:0" json:"comments"`
	Earnings   *float64  `gorm:"type:decimal(12,2)" json:"earnings,omitempty"`
	CapturedAt time.Time `gorm:"not null;uniqueIndex:idx_snapshot" json:"captured_at"`
	CreatedAt  time.Time `json:"-"`
}

func (CreatorMetrics) TableName() string {
	return "creator_metrics"
}

// EngagementRate 互动率始终由原始计数现场推导，不落库，避免陈旧值
func (m *CreatorMetrics) EngagementRate() float64 {
	if m.Followers <= 0 {
		return 0
	}
	return float64(m.Likes+m.Comments) / float64(m.Followers) * 100
}

// TotalEngagement 互动总量
func (m *CreatorMetrics) TotalEngagement() int {
	return m.Likes + m.Comments
}
