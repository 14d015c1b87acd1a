package kafka

import (
	"Fanscope/internal/pkg/redis"
	"context"
	"fmt"
	log "log/slog"

	"github.com/IBM/sarama"
	"github.com/goccy/go-json"
)

// 每个用户只保留最近 50 条通知
const notifyInboxLimit = 50

type NotifyHandler struct{}

func NewNotifyHandler() *NotifyHandler {
	return &NotifyHandler{}
}

func (s *NotifyHandler) Setup(sarama.ConsumerGroupSession) error {
	log.Info("notify consumer setup")
	return nil
}

func (s *NotifyHandler) Cleanup(sarama.ConsumerGroupSession) error {
	log.Info("notify consumer cleanup")
	return nil
}

func (s *NotifyHandler) ConsumeClaim(session sarama.ConsumerGroupSession, claim sarama.ConsumerGroupClaim) error {
	log.Info("topic-notify consume claim")
	err := pullMessageBatch(session, claim, s.logic)
	if err != nil {
		log.Error("process batch error", "err", err)
		return err
	}
	log.Info("topic-notify consume claim end")
	return nil
}

// logic 投递即忘，任何失败都不阻塞位点提交
func (s *NotifyHandler) logic(ctx context.Context, msg *sarama.ConsumerMessage) error {
	var notify NotifyMessage
	if err := json.Unmarshal(msg.Value, &notify); err != nil {
		log.Error("unmarshal notify message error", "err", err)
		return nil
	}

	inboxKey := fmt.Sprintf("notify:inbox:%d", notify.UserID)
	rdb := redis.GetRdbClient()

	pipe := rdb.TxPipeline()
	pipe.LPush(ctx, inboxKey, msg.Value)
	pipe.LTrim(ctx, inboxKey, 0, notifyInboxLimit-1)
	if _, err := pipe.Exec(ctx); err != nil {
		log.ErrorContext(ctx, "Deliver notify failed",
			log.Uint64("user_id", notify.UserID),
			log.Any("err", err),
		)
	}
	return nil
}
