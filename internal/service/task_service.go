package service

import (
	"Fanscope/internal/pkg/consts"
	"Fanscope/internal/pkg/kafka"
	"Fanscope/internal/pkg/redis"
	"Fanscope/internal/platform"
	"Fanscope/internal/repository"
	"context"
	"time"

	"github.com/google/uuid"
)

const taskStatusTTL = 24 * time.Hour

type TaskService interface {
	SubmitFetchTask(ctx context.Context, userID uint64, platformName, identifier string) (string, error)
	SubmitBackfill(ctx context.Context, userID uint64) ([]string, error)
	GetTaskStatus(ctx context.Context, taskID string) (string, error)
}

type taskServiceImpl struct {
	registry    *platform.Registry
	accountRepo repository.PlatformAccountRepo
	producer    kafka.Producer
}

func NewTaskService(
	registry *platform.Registry,
	accountRepo repository.PlatformAccountRepo,
	producer kafka.Producer,
) TaskService {
	return &taskServiceImpl{
		registry:    registry,
		accountRepo: accountRepo,
		producer:    producer,
	}
}

// SubmitFetchTask 投递异步抓取任务，立即返回任务 ID
func (s *taskServiceImpl) SubmitFetchTask(ctx context.Context, userID uint64, platformName, identifier string) (string, error) {
	if _, ok := s.registry.Get(platformName); !ok {
		return "", ErrPlatformNotSupported
	}

	taskID := uuid.NewString()
	if err := redis.SetWithExpiration(ctx, consts.FetchTaskStatusKey+taskID, consts.TaskStatusPending, taskStatusTTL); err != nil {
		return "", err
	}

	if err := s.producer.SubmitFetchTask(ctx, &kafka.FetchTaskMessage{
		TaskID:     taskID,
		Platform:   platformName,
		Identifier: identifier,
		UserID:     userID,
	}); err != nil {
		return "", err
	}

	return taskID, nil
}

// SubmitBackfill 把用户绑定的全部账号排进抓取队列
func (s *taskServiceImpl) SubmitBackfill(ctx context.Context, userID uint64) ([]string, error) {
	accounts, err := s.accountRepo.ListAccountsByUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	if len(accounts) == 0 {
		return nil, ErrAccountNotFound
	}

	taskIDs := make([]string, 0, len(accounts))
	for _, account := range accounts {
		taskID, err := s.SubmitFetchTask(ctx, userID, account.Platform, account.ExternalID)
		if err != nil {
			return taskIDs, err
		}
		taskIDs = append(taskIDs, taskID)
	}
	return taskIDs, nil
}

func (s *taskServiceImpl) GetTaskStatus(ctx context.Context, taskID string) (string, error) {
	status, err := redis.GetValue(ctx, consts.FetchTaskStatusKey+taskID)
	if err != nil {
		return "", err
	}
	if status == "" {
		return "", ErrTaskNotFound
	}
	return status, nil
}
