package repository

import (
	"Fanscope/internal/model"
	"context"

	"gorm.io/gorm"
)

type ExportRecordRepo interface {
	CreateRecord(ctx context.Context, record *model.ExportRecord) error
	ListRecordsByUser(ctx context.Context, userID uint64, limit int) ([]*model.ExportRecord, error)
}

type exportRecordRepoImpl struct {
	db *gorm.DB
}

func NewExportRecordRepository(db *gorm.DB) ExportRecordRepo {
	return &exportRecordRepoImpl{db: db}
}

func (s *exportRecordRepoImpl) CreateRecord(ctx context.Context, record *model.ExportRecord) error {
	return s.db.WithContext(ctx).Create(record).Error
}

func (s *exportRecordRepoImpl) ListRecordsByUser(ctx context.Context, userID uint64, limit int) ([]*model.ExportRecord, error) {
	if limit <= 0 {
		limit = 20
	}
	records := make([]*model.ExportRecord, 0)
	result := s.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Limit(limit).
		Find(&records)
	if result.Error != nil {
		return nil, result.Error
	}
	return records, nil
}
