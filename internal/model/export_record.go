package model

import "time"

// 导出文件格式
const (
	ExportFormatCSV  = "csv"
	ExportFormatJSON = "json"
)

// ExportRecord 一次指标导出的存档记录，文件本体存放在 MinIO
type ExportRecord struct {
	ID         uint64    `gorm:"primaryKey" json:"id"`
	UserID     uint64    `gorm:"not null;index" json:"user_id"`
	Platform   string    `gorm:"type:varchar(32);not null" json:"platform"`
	ExternalID string    `gorm:"type:varchar(128);not null" json:"external_id"`
	Format     string    `gorm:"type:varchar(8);not null" json:"format"`
	ObjectKey  string    `gorm:"type:varchar(256);not null" json:"object_key"`
	FileURL    string    `gorm:"type:varchar(512);not null" json:"file_url"`
	RowCount   int       `gorm:"not null;default:0" json:"row_count"`
	CreatedAt  time.Time `json:"created_at"`
}

func (ExportRecord) TableName() string {
	return "export_records"
}
