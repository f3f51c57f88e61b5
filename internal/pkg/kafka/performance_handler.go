package kafka

import (
	"Pulse/internal/model"
	"Pulse/internal/pkg/metrics"
	"Pulse/internal/service"
	"context"
	"errors"
	"fmt"
	log "log/slog"

	"github.com/IBM/sarama"
)

// PerformanceSaver 内容快照的写入入口
type PerformanceSaver interface {
	SavePerformance(ctx context.Context, perf *model.ContentPerformance) error
}

type PerformanceHandler struct {
	saver PerformanceSaver
}

func NewPerformanceHandler(saver PerformanceSaver) *PerformanceHandler {
	return &PerformanceHandler{saver: saver}
}

func (s *PerformanceHandler) Setup(sarama.ConsumerGroupSession) error {
	log.Info("content performance consumer setup")
	return nil
}

func (s *PerformanceHandler) Cleanup(sarama.ConsumerGroupSession) error {
	log.Info("content performance consumer cleanup")
	return nil
}

func (s *PerformanceHandler) ConsumeClaim(session sarama.ConsumerGroupSession, claim sarama.ConsumerGroupClaim) error {
	log.Info("content performance consume claim", "topic", claim.Topic(), "partition", claim.Partition())
	return pullMessageBatch(session, claim, s.logic, performanceShard)
}

func (s *PerformanceHandler) logic(ctx context.Context, msg *sarama.ConsumerMessage) error {
	perf, err := DecodePerformanceEvent(msg.Value)
	if err != nil {
		metrics.IngestMessages.WithLabelValues("invalid").Inc()
		return err
	}

	if err = s.saver.SavePerformance(ctx, perf); err != nil {
		if errors.Is(err, service.ErrParamInvalid) {
			metrics.IngestMessages.WithLabelValues("invalid").Inc()
			return fmt.Errorf("%w: %v", ErrSkipMessage, err)
		}
		metrics.IngestMessages.WithLabelValues("failed").Inc()
		return err
	}
	metrics.IngestMessages.WithLabelValues("ok").Inc()
	return nil
}
