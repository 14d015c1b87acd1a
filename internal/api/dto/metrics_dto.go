package dto

import "time"

type MetricsQuery struct {
	Platform   string `form:"platform" binding:"required"`
	Identifier string `form:"identifier" binding:"required"`
}

type HistoryQuery struct {
	Platform   string `form:"platform" binding:"required"`
	ExternalID string `form:"external_id" binding:"required"`
	Days       int    `form:"days" binding:"omitempty,min=1,max=365"`
}

type SearchQuery struct {
	Keyword  string `form:"keyword"`
	Platform string `form:"platform"`
	From     int    `form:"from" binding:"omitempty,min=0"`
	Size     int    `form:"size" binding:"omitempty,min=1,max=50"`
}

// MetricsItem 对外返回的指标快照，互动率在出参时推导
type MetricsItem struct {
	Platform       string    `json:"platform"`
	ExternalID     string    `json:"external_id"`
	Username       string    `json:"username"`
	Followers      int       `json:"followers"`
	Likes          int       `json:"likes"`
	Comments       int       `json:"comments"`
	EngagementRate float64   `json:"engagement_rate"`
	Earnings       *float64  `json:"earnings,omitempty"`
	CapturedAt     time.Time `json:"captured_at"`
}
