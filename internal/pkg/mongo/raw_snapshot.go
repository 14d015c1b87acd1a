package mongo

import (
	"time"
)

// RawSnapshot 平台原始指标快照，归档未经归一化的抓取结果
type RawSnapshot struct {
	ID         string    `bson:"_id,omitempty" json:"id"`
	Platform   string    `bson:"platform" json:"platform"`
	ExternalID string    `bson:"external_id" json:"externalId"`
	Username   string    `bson:"username" json:"username"`
	Followers  int       `bson:"followers" json:"followers"`
	Likes      int       `bson:"likes" json:"likes"`
	Comments   int       `bson:"comments" json:"comments"`
	Earnings   *float64  `bson:"earnings,omitempty" json:"earnings,omitempty"`
	CapturedAt time.Time `bson:"captured_at" json:"capturedAt"`
	ArchivedAt time.Time `bson:"archived_at" json:"archivedAt"`
}
