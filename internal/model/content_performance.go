package model

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// ContentPerformance 单条内容在某一天的计数快照，(post_id, date) 为自然键。
// 互动率不落库，始终由计数推导。
type ContentPerformance struct {
	ID               primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	PostID           string             `bson:"post_id" json:"postId"`
	CreatorID        uint64             `bson:"creator_id" json:"creatorId"`
	Platform         string             `bson:"platform" json:"platform"`
	Date             time.Time          `bson:"date" json:"date"`
	Views            int64              `bson:"views" json:"views"`
	Likes            int64              `bson:"likes" json:"likes"`
	Comments         int64              `bson:"comments" json:"comments"`
	Shares           int64              `bson:"shares" json:"shares"`
	EstimatedRevenue float64            `bson:"estimated_revenue" json:"estimatedRevenue"`
	PublishedAt      *time.Time         `bson:"published_at,omitempty" json:"publishedAt,omitempty"`
	CreatedAt        time.Time          `bson:"created_at" json:"createdAt"`
	UpdatedAt        time.Time          `bson:"updated_at" json:"updatedAt"`
}
