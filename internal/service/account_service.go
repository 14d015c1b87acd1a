package service

import (
	"Fanscope/internal/model"
	"Fanscope/internal/pkg/consts"
	"Fanscope/internal/pkg/minio"
	"Fanscope/internal/pkg/util"
	"Fanscope/internal/platform"
	"Fanscope/internal/repository"
	"context"
	"io"
	log "log/slog"
	"strings"
	"time"

	"github.com/google/uuid"
)

type AccountService interface {
	BindAccount(ctx context.Context, userID uint64, platformName, identifier string) (*model.PlatformAccount, error)
	ListAccounts(ctx context.Context, userID uint64) ([]*model.PlatformAccount, error)
	UnbindAccount(ctx context.Context, userID, accountID uint64) error
	UploadAvatar(ctx context.Context, userID, accountID uint64, reader io.ReadSeeker) (string, error)
}

type accountServiceImpl struct {
	registry       *platform.Registry
	accountRepo    repository.PlatformAccountRepo
	metricsService MetricsService
}

func NewAccountService(
	registry *platform.Registry,
	accountRepo repository.PlatformAccountRepo,
	metricsService MetricsService,
) AccountService {
	return &accountServiceImpl{
		registry:       registry,
		accountRepo:    accountRepo,
		metricsService: metricsService,
	}
}

// BindAccount 绑定前先抓一次指标，既校验账号存在，也顺手落了第一条快照
func (s *accountServiceImpl) BindAccount(ctx context.Context, userID uint64, platformName, identifier string) (*model.PlatformAccount, error) {
	if _, ok := s.registry.Get(platformName); !ok {
		return nil, ErrPlatformNotSupported
	}

	metric, err := s.metricsService.GetLatest(ctx, platformName, identifier)
	if err != nil {
		return nil, err
	}

	account := &model.PlatformAccount{
		UserID:     userID,
		Platform:   platformName,
		ExternalID: metric.ExternalID,
		Username:   metric.Username,
		AvatarURL:  consts.DefaultAvatarURL,
	}
	if err := s.accountRepo.SaveOrUpdateAccount(ctx, account); err != nil {
		return nil, err
	}

	log.InfoContext(ctx, "Platform account bound",
		log.Uint64("user_id", userID),
		log.String("platform", platformName),
		log.String("external_id", metric.ExternalID),
	)
	return account, nil
}

func (s *accountServiceImpl) ListAccounts(ctx context.Context, userID uint64) ([]*model.PlatformAccount, error) {
	return s.accountRepo.ListAccountsByUser(ctx, userID)
}

func (s *accountServiceImpl) UnbindAccount(ctx context.Context, userID, accountID uint64) error {
	account, err := s.accountRepo.GetAccountByID(ctx, accountID)
	if err != nil {
		return err
	}
	if account == nil || account.UserID != userID {
		return ErrAccountNotFound
	}
	return s.accountRepo.DeleteAccount(ctx, userID, accountID)
}

// UploadAvatar 生成统一尺寸的缩略图后入 MinIO，返回公开地址
func (s *accountServiceImpl) UploadAvatar(ctx context.Context, userID, accountID uint64, reader io.ReadSeeker) (string, error) {
	account, err := s.accountRepo.GetAccountByID(ctx, accountID)
	if err != nil {
		return "", err
	}
	if account == nil || account.UserID != userID {
		return "", ErrAccountNotFound
	}

	contentType, err := util.GetSafeContentType(reader)
	if err != nil || !strings.HasPrefix(contentType, consts.MimePrefixImage) {
		return "", ErrFileNotSupported
	}

	thumb, err := util.MakeAvatarThumbnail(reader)
	if err != nil {
		return "", ErrFileNotSupported
	}

	objectName := time.Now().Format("2006/01/02/") + uuid.NewString() + ".png"
	objectKey, err := minio.UploadFile(ctx, minio.MediaBucket, objectName, thumb, int64(thumb.Len()), "image/png")
	if err != nil {
		log.ErrorContext(ctx, "MinIO upload failed", "err", err)
		return "", UnExpectedError
	}

	avatarURL := minio.GetPublicURL(minio.MediaBucket, objectKey)
	if err := s.accountRepo.UpdateAvatar(ctx, accountID, avatarURL); err != nil {
		return "", err
	}
	return avatarURL, nil
}
