package kafka

import (
	"Fanscope/internal/api/config"
	"context"
	log "log/slog"

	"github.com/IBM/sarama"
)

// ConsumerManager 管理所有 Kafka 消费者
type ConsumerManager struct {
	fetchConsumer sarama.ConsumerGroup
	fetchHandler  sarama.ConsumerGroupHandler

	notifyConsumer sarama.ConsumerGroup
	notifyHandler  sarama.ConsumerGroupHandler
}

// NewConsumerManager 构造函数
func NewConsumerManager(
	cfg *config.Config,
	fetcher MetricsFetcher,
) (*ConsumerManager, error) {
	saramaCfg := newSaramaConfig(cfg.Kafka)

	fetchConsumer, err := sarama.NewConsumerGroup(cfg.Kafka.Brokers, cfg.KafkaFetchConsumer.GroupID, saramaCfg)
	if err != nil {
		return nil, err
	}
	fetchHandler := NewFetchTaskHandler(fetcher)

	notifyConsumer, err := sarama.NewConsumerGroup(cfg.Kafka.Brokers, cfg.KafkaNotifyConsumer.GroupID, saramaCfg)
	if err != nil {
		return nil, err
	}
	notifyHandler := NewNotifyHandler()

	return &ConsumerManager{
		fetchConsumer:  fetchConsumer,
		fetchHandler:   fetchHandler,
		notifyConsumer: notifyConsumer,
		notifyHandler:  notifyHandler,
	}, nil
}

// Start 启动所有消费者
func (m *ConsumerManager) Start(ctx context.Context, cfg *config.Config) error {
	// 启动 Fetch Task Consumer
	go func() {
		topic := cfg.Kafka.FetchTopic
		log.Info("Fetch task consumer started", "topic", topic)
		for {
			if err := m.fetchConsumer.Consume(ctx, []string{topic}, m.fetchHandler); err != nil {
				log.Error("Error from consumer", "err", err)
			}
			if ctx.Err() != nil {
				return
			}
		}
	}()

	// 启动 Notify Consumer
	go func() {
		topic := cfg.Kafka.NotifyTopic
		log.Info("Notify consumer started", "topic", topic)
		for {
			if err := m.notifyConsumer.Consume(ctx, []string{topic}, m.notifyHandler); err != nil {
				log.Error("Error from consumer", "err", err)
			}
			if ctx.Err() != nil {
				return
			}
		}
	}()

	<-ctx.Done()
	log.Info("Kafka Manager shutting down...")

	if err := m.fetchConsumer.Close(); err != nil {
		log.Error("Failed to close fetch consumer", "err", err)
	}
	if err := m.notifyConsumer.Close(); err != nil {
		log.Error("Failed to close notify consumer", "err", err)
	}

	return nil
}
