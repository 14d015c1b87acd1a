package repository

import (
	"Fanscope/internal/model"
	"context"
	"errors"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type CreatorMetricsRepo interface {
	AppendSnapshot(ctx context.Context, metric *model.CreatorMetrics) error
	GetLatestSnapshot(ctx context.Context, platform, externalID string) (*model.CreatorMetrics, error)
	GetHistory(ctx context.Context, platform, externalID string, days int) ([]*model.CreatorMetrics, error)
}

type creatorMetricsRepoImpl struct {
	db *gorm.DB
}

func NewCreatorMetricsRepository(db *gorm.DB) CreatorMetricsRepo {
	return &creatorMetricsRepoImpl{db: db}
}

// AppendSnapshot 只追加，同一采集时刻的重复写入静默忽略
func (s *creatorMetricsRepoImpl) AppendSnapshot(ctx context.Context, metric *model.CreatorMetrics) error {
	return s.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "platform"}, {Name: "external_id"}, {Name: "captured_at"}},
		DoNothing: true,
	}).Create(metric).Error
}

func (s *creatorMetricsRepoImpl) GetLatestSnapshot(ctx context.Context, platform, externalID string) (*model.CreatorMetrics, error) {
	var metric model.CreatorMetrics
	err := s.db.WithContext(ctx).
		Where("platform = ? AND external_id = ?", platform, externalID).
		Order("captured_at DESC").
		First(&metric).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &metric, nil
}

// GetHistory 按采集时间正序返回最近 N 天的快照
func (s *creatorMetricsRepoImpl) GetHistory(ctx context.Context, platform, externalID string, days int) ([]*model.CreatorMetrics, error) {
	if days <= 0 {
		days = 30
	}
	metrics := make([]*model.CreatorMetrics, 0)
	result := s.db.WithContext(ctx).
		Where("platform = ? AND external_id = ?", platform, externalID).
		Where("captured_at >= ?", time.Now().AddDate(0, 0, -days)).
		Order("captured_at ASC").
		Find(&metrics)
	if result.Error != nil {
		return nil, result.Error
	}
	return metrics, nil
}
