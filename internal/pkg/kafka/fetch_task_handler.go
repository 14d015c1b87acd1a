package kafka

import (
	"Fanscope/internal/pkg/consts"
	"Fanscope/internal/pkg/redis"
	"Fanscope/internal/platform"
	"context"
	"errors"
	log "log/slog"
	"time"

	"github.com/IBM/sarama"
	"github.com/goccy/go-json"
)

// MetricsFetcher 抓取并落库的最小接口，由 service 层实现
type MetricsFetcher interface {
	FetchAndStore(ctx context.Context, platformName, identifier string) error
}

type FetchTaskHandler struct {
	fetcher MetricsFetcher
}

func NewFetchTaskHandler(fetcher MetricsFetcher) *FetchTaskHandler {
	return &FetchTaskHandler{
		fetcher: fetcher,
	}
}

func (s *FetchTaskHandler) Setup(sarama.ConsumerGroupSession) error {
	log.Info("fetch task consumer setup")
	return nil
}

func (s *FetchTaskHandler) Cleanup(sarama.ConsumerGroupSession) error {
	log.Info("fetch task consumer cleanup")
	return nil
}

func (s *FetchTaskHandler) ConsumeClaim(session sarama.ConsumerGroupSession, claim sarama.ConsumerGroupClaim) error {
	log.Info("topic-fetch-task consume claim")
	err := pullMessageBatch(session, claim, s.logic)
	if err != nil {
		log.Error("process batch error", "err", err)
		return err
	}
	log.Info("topic-fetch-task consume claim end")
	return nil
}

func (s *FetchTaskHandler) logic(ctx context.Context, msg *sarama.ConsumerMessage) error {
	var task FetchTaskMessage
	if err := json.Unmarshal(msg.Value, &task); err != nil {
		log.Error("unmarshal fetch task error", "err", err)
		// 消息坏了重试也没用，直接跳过
		return nil
	}

	statusKey := consts.FetchTaskStatusKey + task.TaskID
	_ = redis.SetWithExpiration(ctx, statusKey, consts.TaskStatusRunning, 24*time.Hour)

	// 批量回填走阻塞限流，排队等配额而不是失败
	err := s.fetcher.FetchAndStore(platform.WithBlocking(ctx), task.Platform, task.Identifier)
	if err != nil {
		log.ErrorContext(ctx, "Fetch task failed",
			log.String("task_id", task.TaskID),
			log.String("platform", task.Platform),
			log.String("identifier", task.Identifier),
			log.Any("err", err),
		)
		_ = redis.SetWithExpiration(ctx, statusKey, consts.TaskStatusFailed, 24*time.Hour)

		// 临时性故障交给批处理层重试，业务性失败标记后跳过
		if retryable(err) {
			return err
		}
		return nil
	}

	_ = redis.SetWithExpiration(ctx, statusKey, consts.TaskStatusDone, 24*time.Hour)
	return nil
}

// retryable 上游 5xx 和超时类错误可重试，404/解析失败重试无意义
func retryable(err error) bool {
	var nfe *platform.NotFoundError
	if errors.As(err, &nfe) {
		return false
	}
	var pe *platform.ParseError
	if errors.As(err, &pe) {
		return false
	}
	var te *platform.TransportError
	if errors.As(err, &te) && te.StatusCode >= 400 && te.StatusCode < 500 {
		return false
	}
	return true
}
