package model

import "time"

// User 系统用户
type User struct {
	ID        uint64    `gorm:"primaryKey" json:"id"`
	Username  string    `gorm:"type:varchar(64);not null;uniqueIndex:idx_username" json:"username"`
	Email     string    `gorm:"type:varchar(128);not null;uniqueIndex:idx_email" json:"email"`
	Password  string    `gorm:"type:varchar(128);not null" json:"-"`
	IsBan     bool      `gorm:"type:tinyint(1);default:0" json:"-"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"-"`
}

func (User) TableName() string {
	return "users"
}
