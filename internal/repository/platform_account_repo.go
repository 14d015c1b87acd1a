package repository

import (
	"Fanscope/internal/model"
	"context"
	"errors"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type PlatformAccountRepo interface {
	SaveOrUpdateAccount(ctx context.Context, account *model.PlatformAccount) error
	GetAccountByID(ctx context.Context, id uint64) (*model.PlatformAccount, error)
	GetAccount(ctx context.Context, userID uint64, platform, externalID string) (*model.PlatformAccount, error)
	ListAccountsByUser(ctx context.Context, userID uint64) ([]*model.PlatformAccount, error)
	ListAllAccounts(ctx context.Context) ([]*model.PlatformAccount, error)
	UpdateAvatar(ctx context.Context, accountID uint64, avatarURL string) error
	DeleteAccount(ctx context.Context, userID, accountID uint64) error
}

type platformAccountRepoImpl struct {
	db *gorm.DB
}

func NewPlatformAccountRepository(db *gorm.DB) PlatformAccountRepo {
	return &platformAccountRepoImpl{db: db}
}

// SaveOrUpdateAccount 重复绑定时刷新展示信息
func (s *platformAccountRepoImpl) SaveOrUpdateAccount(ctx context.Context, account *model.PlatformAccount) error {
	return s.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "user_id"}, {Name: "platform"}, {Name: "external_id"}},
		DoUpdates: clause.AssignmentColumns([]string{"username", "avatar_url", "updated_at"}),
	}).Create(account).Error
}

func (s *platformAccountRepoImpl) GetAccountByID(ctx context.Context, id uint64) (*model.PlatformAccount, error) {
	var account model.PlatformAccount
	err := s.db.WithContext(ctx).Where("id = ?", id).First(&account).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &account, nil
}

func (s *platformAccountRepoImpl) GetAccount(ctx context.Context, userID uint64, platform, externalID string) (*model.PlatformAccount, error) {
	var account model.PlatformAccount
	err := s.db.WithContext(ctx).
		Where("user_id = ? AND platform = ? AND external_id = ?", userID, platform, externalID).
		First(&account).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &account, nil
}

func (s *platformAccountRepoImpl) ListAccountsByUser(ctx context.Context, userID uint64) ([]*model.PlatformAccount, error) {
	accounts := make([]*model.PlatformAccount, 0)
	result := s.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&accounts)
	if result.Error != nil {
		return nil, result.Error
	}
	return accounts, nil
}

// ListAllAccounts 快照任务全量遍历用
func (s *platformAccountRepoImpl) ListAllAccounts(ctx context.Context) ([]*model.PlatformAccount, error) {
	accounts := make([]*model.PlatformAccount, 0)
	result := s.db.WithContext(ctx).Find(&accounts)
	if result.Error != nil {
		return nil, result.Error
	}
	return accounts, nil
}

func (s *platformAccountRepoImpl) UpdateAvatar(ctx context.Context, accountID uint64, avatarURL string) error {
	return s.db.WithContext(ctx).
		Model(&model.PlatformAccount{}).
		Where("id = ?", accountID).
		Update("avatar_url", avatarURL).Error
}

func (s *platformAccountRepoImpl) DeleteAccount(ctx context.Context, userID, accountID uint64) error {
	return s.db.WithContext(ctx).
		Where("id = ? AND user_id = ?", accountID, userID).
		Delete(&model.PlatformAccount{}).Error
}
