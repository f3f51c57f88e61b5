package kafka

import (
	"Pulse/internal/model"
	"Pulse/internal/pkg/util"
	"fmt"
	"time"

	"github.com/IBM/sarama"
	"github.com/goccy/go-json"
)

// PerformanceEvent 内容表现上报事件
type PerformanceEvent struct {
	PostID           string     `json:"postId"`
	CreatorID        uint64     `json:"creatorId"`
	Platform         string     `json:"platform"`
	Date             string     `json:"date"` // 2006-01-02
	Views            int64      `json:"views"`
	Likes            int64      `json:"likes"`
	Comments         int64      `json:"comments"`
	Shares           int64      `json:"shares"`
	EstimatedRevenue float64    `json:"estimatedRevenue"`
	PublishedAt      *time.Time `json:"publishedAt,omitempty"`
}

// performanceShard 同一内容的事件按位点顺序写入，避免旧快照覆盖新快照。
// 解析失败的消息归入空键，随后会被跳过。
func performanceShard(msg *sarama.ConsumerMessage) string {
	var key struct {
		PostID string `json:"postId"`
	}
	if err := json.Unmarshal(msg.Value, &key); err != nil {
		return ""
	}
	return key.PostID
}

// DecodePerformanceEvent 解析并校验事件，失败时返回包装了 ErrSkipMessage 的错误
func DecodePerformanceEvent(value []byte) (*model.ContentPerformance, error) {
	var evt PerformanceEvent
	if err := json.Unmarshal(value, &evt); err != nil {
		return nil, fmt.Errorf("%w: decode performance event: %v", ErrSkipMessage, err)
	}
	if evt.PostID == "" || evt.CreatorID == 0 || evt.Platform == "" {
		return nil, fmt.Errorf("%w: performance event missing identity fields", ErrSkipMessage)
	}
	if evt.Views < 0 {
		return nil, fmt.Errorf("%w: performance event with negative views", ErrSkipMessage)
	}
	day, err := util.ParseDate(evt.Date)
	if err != nil {
		return nil, fmt.Errorf("%w: performance event date %q", ErrSkipMessage, evt.Date)
	}

	return &model.ContentPerformance{
		PostID:           evt.PostID,
		CreatorID:        evt.CreatorID,
		Platform:         evt.Platform,
		Date:             day,
		Views:            evt.Views,
		Likes:            evt.Likes,
		Comments:         evt.Comments,
		Shares:           evt.Shares,
		EstimatedRevenue: evt.EstimatedRevenue,
		PublishedAt:      evt.PublishedAt,
	}, nil
}
