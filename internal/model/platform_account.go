package model

import "time"

// PlatformAccount 用户绑定的外部平台账号
type PlatformAccount struct {
	ID         uint64    `gorm:"primaryKey" json:"id"`
	UserID     uint64    `gorm:"not null;index:idx_user_platform,unique" json:"user_id"`
	Platform   string    `gorm:"type:varchar(32);not null;index:idx_user_platform,unique" json:"platform"`
	ExternalID string    `gorm:"type:varchar(128);not null;index:idx_user_platform,unique" json:"external_id"`
	Username   string    `gorm:"type:varchar(128);not null" json:"username"`
	AvatarURL  string    `gorm:"type:varchar(512)" json:"avatar_url"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"-"`
}

func (PlatformAccount) TableName() string {
	return "platform_accounts"
}
