package kafka

import (
	"Pulse/internal/api/config"
	"context"
	"errors"
	log "log/slog"

	"github.com/IBM/sarama"
)

// ConsumerManager 管理 Kafka 消费者
type ConsumerManager struct {
	topic               string
	performanceConsumer sarama.ConsumerGroup
	performanceHandler  sarama.ConsumerGroupHandler
}

func NewConsumerManager(cfg *config.Config, saver PerformanceSaver) (*ConsumerManager, error) {
	saramaCfg, err := newSaramaConfig(cfg.Kafka)
	if err != nil {
		return nil, err
	}

	performanceConsumer, err := sarama.NewConsumerGroup(cfg.Kafka.Brokers, cfg.KafkaPerformanceConsumer.GroupID, saramaCfg)
	if err != nil {
		return nil, err
	}

	return &ConsumerManager{
		topic:               cfg.KafkaPerformanceConsumer.Topic,
		performanceConsumer: performanceConsumer,
		performanceHandler:  NewPerformanceHandler(saver),
	}, nil
}

// Run 阻塞消费直到 ctx 结束；每次 rebalance 后 Consume 返回，需要重新进入
func (m *ConsumerManager) Run(ctx context.Context) error {
	go func() {
		for err := range m.performanceConsumer.Errors() {
			log.Error("kafka consumer error", "err", err)
		}
	}()

	log.Info("content performance consumer started", "topic", m.topic)
	for {
		if err := m.performanceConsumer.Consume(ctx, []string{m.topic}, m.performanceHandler); err != nil {
			if errors.Is(err, sarama.ErrClosedConsumerGroup) {
				return nil
			}
			log.Error("Error from consumer", "err", err)
		}
		if ctx.Err() != nil {
			return nil
		}
	}
}

func (m *ConsumerManager) Close() error {
	return m.performanceConsumer.Close()
}
