package kafka

import (
	"Pulse/internal/api/config"
	"fmt"
	"strings"
	"time"

	"github.com/IBM/sarama"
)

func seconds(n int) time.Duration {
	return time.Duration(n) * time.Second
}

// initialOffset 新消费组从哪里开始消费：newest 只处理上线后的上报，oldest 回放历史快照
func initialOffset(name string) (int64, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", "newest":
		return sarama.OffsetNewest, nil
	case "oldest":
		return sarama.OffsetOldest, nil
	default:
		return 0, fmt.Errorf("unknown kafka initial offset %q", name)
	}
}

// newSaramaConfig 内容快照消费组的 sarama.Config。
// 位点在一批消息全部写入后才 Mark，随自动提交落到 broker。
func newSaramaConfig(kafkaCfg config.KafkaConfig) (*sarama.Config, error) {
	c := sarama.NewConfig()
	if kafkaCfg.ClientID != "" {
		c.ClientID = kafkaCfg.ClientID
	}
	if kafkaCfg.Version != "" {
		version, err := sarama.ParseKafkaVersion(kafkaCfg.Version)
		if err != nil {
			return nil, fmt.Errorf("parse kafka version: %w", err)
		}
		c.Version = version
	}

	if kafkaCfg.Sasl.Enable {
		c.Net.SASL.Enable = true
		c.Net.SASL.Mechanism = sarama.SASLTypePlaintext
		c.Net.SASL.User = kafkaCfg.Sasl.Username
		c.Net.SASL.Password = kafkaCfg.Sasl.Password
	}

	offset, err := initialOffset(kafkaCfg.Consumer.InitialOffset)
	if err != nil {
		return nil, err
	}
	c.Consumer.Offsets.Initial = offset
	c.Consumer.Return.Errors = true

	c.Consumer.Group.Session.Timeout = seconds(kafkaCfg.Consumer.SessionTimeout)
	c.Consumer.Group.Heartbeat.Interval = seconds(kafkaCfg.Consumer.HeartbeatInterval)
	c.Consumer.Group.Rebalance.Timeout = seconds(kafkaCfg.Consumer.RebalanceTimeout)
	// 重试时单条消息可能卡住较久，给足处理时间避免被踢出消费组
	c.Consumer.MaxProcessingTime = batchTimeout + maxRetryWait
	c.Consumer.Offsets.AutoCommit.Enable = true
	c.Consumer.Offsets.AutoCommit.Interval = time.Second

	if err = c.Validate(); err != nil {
		return nil, fmt.Errorf("invalid sarama config: %w", err)
	}
	return c, nil
}
