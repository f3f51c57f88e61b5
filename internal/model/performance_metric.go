package model

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// PerformanceMetric 创作者在某平台某一天的汇总指标，(creator_id, platform, date) 为自然键
type PerformanceMetric struct {
	ID                      primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	CreatorID               uint64             `bson:"creator_id" json:"creatorId"`
	Platform                string             `bson:"platform" json:"platform"`
	Date                    time.Time          `bson:"date" json:"date"` // 截断到天 (UTC)
	Followers               int64              `bson:"followers" json:"followers"`
	FollowersGrowth         int64              `bson:"followers_growth" json:"followersGrowth"` // 当日增量
	TotalViews              int64              `bson:"total_views" json:"totalViews"`
	TotalLikes              int64              `bson:"total_likes" json:"totalLikes"`
	TotalComments           int64              `bson:"total_comments" json:"totalComments"`
	TotalShares             int64              `bson:"total_shares" json:"totalShares"`
	EngagementRate          float64            `bson:"engagement_rate" json:"engagementRate"`
	EstimatedRevenue        float64            `bson:"estimated_revenue" json:"estimatedRevenue"`
	TopPerformingContentIDs []string           `bson:"top_performing_content_ids" json:"topPerformingContentIds"`
	CreatedAt               time.Time          `bson:"created_at" json:"createdAt"`
	UpdatedAt               time.Time          `bson:"updated_at" json:"updatedAt"`
}
