package model

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// DashboardInsights 创作者某一周期的洞察快照，(creator_id, period_start, period_end) 唯一
type DashboardInsights struct {
	ID                   primitive.ObjectID      `bson:"_id,omitempty" json:"id"`
	CreatorID            uint64                  `bson:"creator_id" json:"creatorId"`
	PeriodStart          time.Time               `bson:"period_start" json:"periodStart"`
	PeriodEnd            time.Time               `bson:"period_end" json:"periodEnd"`
	GrowthRate           float64                 `bson:"growth_rate" json:"growthRate"`
	TotalRevenueInPeriod float64                 `bson:"total_revenue_in_period" json:"totalRevenueInPeriod"`
	TopContentInsights   []ContentInsight        `bson:"top_content_insights" json:"topContentInsights"`
	Recommendations      []ContentRecommendation `bson:"recommendations" json:"recommendations"`
	BestTimeToPost       *BestTimeSlot           `bson:"best_time_to_post,omitempty" json:"bestTimeToPost,omitempty"`
	PeriodComparison     map[string]float64      `bson:"period_comparison" json:"periodComparison"`
	GeneratedAt          time.Time               `bson:"generated_at" json:"generatedAt"`
	CreatedAt            time.Time               `bson:"created_at" json:"createdAt"`
	UpdatedAt            time.Time               `bson:"updated_at" json:"updatedAt"`
}

// ContentInsight 单条高表现内容的洞察
type ContentInsight struct {
	PostID           string      `bson:"post_id" json:"postId"`
	Platform         string      `bson:"platform" json:"platform"`
	Views            int64       `bson:"views" json:"views"`
	EngagementRate   float64     `bson:"engagement_rate" json:"engagementRate"`
	EstimatedRevenue float64     `bson:"estimated_revenue" json:"estimatedRevenue"`
	Type             InsightType `bson:"type" json:"type"`
	Description      string      `bson:"description" json:"description"`
}

// BestTimeSlot 平均互动率最高的发布时间段
type BestTimeSlot struct {
	DayOfWeek             time.Weekday `bson:"day_of_week" json:"dayOfWeek"`
	Hour                  int          `bson:"hour" json:"hour"`
	AverageEngagementRate float64      `bson:"average_engagement_rate" json:"averageEngagementRate"`
	SampleSize            int          `bson:"sample_size" json:"sampleSize"`
}

// ContentRecommendation 建议，只作为快照的一部分存在
type ContentRecommendation struct {
	Type        RecommendationType `bson:"type" json:"type"`
	Platform    string             `bson:"platform,omitempty" json:"platform,omitempty"`
	Description string             `bson:"description" json:"description"`
	Priority    Priority           `bson:"priority" json:"priority"`
}
