package kafka

import (
	"Fanscope/internal/api/config"
	"context"
	log "log/slog"

	"github.com/IBM/sarama"
	"github.com/goccy/go-json"
)

type Producer interface {
	SubmitFetchTask(ctx context.Context, msg *FetchTaskMessage) error
	PublishNotify(ctx context.Context, msg *NotifyMessage) error
	Close() error
}

type producerImpl struct {
	producer    sarama.SyncProducer
	fetchTopic  string
	notifyTopic string
}

func NewProducer(cfg *config.Config) (Producer, error) {
	p, err := sarama.NewSyncProducer(cfg.Kafka.Brokers, newProducerConfig(cfg.Kafka))
	if err != nil {
		return nil, err
	}
	return &producerImpl{
		producer:    p,
		fetchTopic:  cfg.Kafka.FetchTopic,
		notifyTopic: cfg.Kafka.NotifyTopic,
	}, nil
}

// SubmitFetchTask 以平台名为 key，同一平台的任务落到同一分区保持顺序
func (s *producerImpl) SubmitFetchTask(ctx context.Context, msg *FetchTaskMessage) error {
	value, err := json.Marshal(msg)
	if err != nil {
		return err
	}

	partition, offset, err := s.producer.SendMessage(&sarama.ProducerMessage{
		Topic: s.fetchTopic,
		Key:   sarama.StringEncoder(msg.Platform),
		Value: sarama.ByteEncoder(value),
	})
	if err != nil {
		return err
	}

	log.InfoContext(ctx, "Fetch task submitted",
		log.String("task_id", msg.TaskID),
		log.String("platform", msg.Platform),
		log.Int("partition", int(partition)),
		log.Int64("offset", offset),
	)
	return nil
}

// PublishNotify 通知投递即忘，失败只记日志
func (s *producerImpl) PublishNotify(ctx context.Context, msg *NotifyMessage) error {
	value, err := json.Marshal(msg)
	if err != nil {
		return err
	}

	_, _, err = s.producer.SendMessage(&sarama.ProducerMessage{
		Topic: s.notifyTopic,
		Value: sarama.ByteEncoder(value),
	})
	if err != nil {
		log.ErrorContext(ctx, "Publish notify failed", log.Any("err", err))
	}
	return err
}

func (s *producerImpl) Close() error {
	return s.producer.Close()
}
