package kafka

import (
	"Pulse/internal/pkg/logger"
	"context"
	"errors"
	log "log/slog"
	"sync"
	"time"

	"github.com/IBM/sarama"
)

const (
	batchSize    = 32
	batchTimeout = 1 * time.Second
	maxRetryWait = 5 * time.Second
)

// ErrSkipMessage 消息本身有问题，重试没有意义，直接跳过
var ErrSkipMessage = errors.New("skip message")

type LogicFunc func(ctx context.Context, msg *sarama.ConsumerMessage) error

// ShardFunc 返回消息的顺序键，同一个键的消息按位点顺序串行处理
type ShardFunc func(msg *sarama.ConsumerMessage) string

// pullMessageBatch 拉取一批消息并执行业务逻辑
func pullMessageBatch(session sarama.ConsumerGroupSession, claim sarama.ConsumerGroupClaim, logic LogicFunc, shard ShardFunc) error {
	batch := make([]*sarama.ConsumerMessage, 0, batchSize)
	ticker := time.NewTicker(batchTimeout)
	defer ticker.Stop()
	for {
		select {
		case msg, ok := <-claim.Messages():
			if !ok {
				if len(batch) > 0 {
					processBatch(session, batch, logic, shard)
				}
				return nil
			}
			batch = append(batch, msg)
			if len(batch) >= batchSize {
				processBatch(session, batch, logic, shard)
				batch = make([]*sarama.ConsumerMessage, 0, batchSize)
				ticker.Reset(batchTimeout)
			}
		case <-ticker.C:
			if len(batch) > 0 {
				processBatch(session, batch, logic, shard)
				batch = make([]*sarama.ConsumerMessage, 0, batchSize)
			}
		case <-session.Context().Done():
			return nil
		}
	}
}

// processBatch 按顺序键分组，组间并发、组内按位点串行，全部完成后提交最后一条的位点。
// 可重试的错误指数退避重试，ErrSkipMessage 记录后跳过。
func processBatch(session sarama.ConsumerGroupSession, messages []*sarama.ConsumerMessage, logic LogicFunc, shard ShardFunc) {
	shards := make(map[string][]*sarama.ConsumerMessage)
	order := make([]string, 0)
	for _, msg := range messages {
		key := ""
		if shard != nil {
			key = shard(msg)
		}
		if _, ok := shards[key]; !ok {
			order = append(order, key)
		}
		shards[key] = append(shards[key], msg)
	}

	var wg sync.WaitGroup
	for _, key := range order {
		wg.Add(1)
		go func(list []*sarama.ConsumerMessage) {
			defer wg.Done()
			for _, m := range list {
				if !handleMessage(session, m, logic) {
					return
				}
			}
		}(shards[key])
	}
	wg.Wait()

	if session.Context().Err() != nil {
		return
	}
	if len(messages) > 0 {
		session.MarkMessage(messages[len(messages)-1], "")
	}
}

// handleMessage 处理单条消息直到成功或被跳过；会话结束时返回 false
func handleMessage(session sarama.ConsumerGroupSession, m *sarama.ConsumerMessage, logic LogicFunc) bool {
	ctx := logger.NewTraceContext(session.Context(), "kafka")
	retryInterval := 100 * time.Millisecond

	for {
		err := logic(ctx, m)
		if err == nil {
			return true
		}
		if errors.Is(err, ErrSkipMessage) {
			log.WarnContext(ctx, "skip kafka message",
				"topic", m.Topic, "partition", m.Partition, "offset", m.Offset, "err", err)
			return true
		}

		log.ErrorContext(ctx, "process message error", "offset", m.Offset, "err", err)
		select {
		case <-session.Context().Done():
			return false
		case <-time.After(retryInterval):
		}

		retryInterval *= 2
		if retryInterval > maxRetryWait {
			retryInterval = maxRetryWait
		}
	}
}
