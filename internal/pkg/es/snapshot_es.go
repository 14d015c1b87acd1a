package es

import "time"

// SnapshotES 指标快照的检索文档
type SnapshotES struct {
	ID             string    `json:"id"`
	Platform       string    `json:"platform"`
	ExternalID     string    `json:"external_id"`
	Username       string    `json:"username"`
	Followers      int       `json:"followers"`
	Likes          int       `json:"likes"`
	Comments       int       `json:"comments"`
	EngagementRate float64   `json:"engagement_rate"`
	CapturedAt     time.Time `json:"captured_at"`
}
