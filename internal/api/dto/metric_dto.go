package dto

import (
	"Pulse/internal/model"
	"Pulse/internal/pkg/aggregate"
	"time"
)

// PeriodQuery 统计周期，日期格式 2006-01-02，闭区间
type PeriodQuery struct {
	Start    string `form:"start" json:"start" validate:"required,datetime=2006-01-02"`
	End      string `form:"end" json:"end" validate:"required,datetime=2006-01-02"`
	Platform string `form:"platform" json:"platform" validate:"omitempty,max=32"`
}

type DailyQuery struct {
	Date     string `form:"date" validate:"required,datetime=2006-01-02"`
	Platform string `form:"platform" validate:"required,max=32"`
}

type MetricDTO struct {
	CreatorID               uint64   `json:"creator_id"`
	Platform                string   `json:"platform"`
	Date                    string   `json:"date"`
	Followers               int64    `json:"followers"`
	FollowersGrowth         int64    `json:"followers_growth"`
	TotalViews              int64    `json:"total_views"`
	TotalLikes              int64    `json:"total_likes"`
	TotalComments           int64    `json:"total_comments"`
	TotalShares             int64    `json:"total_shares"`
	EngagementRate          float64  `json:"engagement_rate"`
	EstimatedRevenue        float64  `json:"estimated_revenue"`
	TopPerformingContentIDs []string `json:"top_performing_content_ids"`
}

// SaveMetricDTO 写入 (creator, platform, date) 当日汇总
type SaveMetricDTO struct {
	CreatorID               uint64   `json:"creator_id" validate:"required"`
	Platform                string   `json:"platform" validate:"required,max=32"`
	Date                    string   `json:"date" validate:"required,datetime=2006-01-02"`
	Followers               int64    `json:"followers" validate:"gte=0"`
	FollowersGrowth         int64    `json:"followers_growth"`
	TotalViews              int64    `json:"total_views" validate:"gte=0"`
	TotalLikes              int64    `json:"total_likes" validate:"gte=0"`
	TotalComments           int64    `json:"total_comments" validate:"gte=0"`
	TotalShares             int64    `json:"total_shares" validate:"gte=0"`
	EstimatedRevenue        float64  `json:"estimated_revenue"`
	TopPerformingContentIDs []string `json:"top_performing_content_ids" validate:"max=20"`
}

type PerformanceDTO struct {
	PostID           string     `json:"post_id"`
	CreatorID        uint64     `json:"creator_id"`
	Platform         string     `json:"platform"`
	Date             string     `json:"date"`
	Views            int64      `json:"views"`
	Likes            int64      `json:"likes"`
	Comments         int64      `json:"comments"`
	Shares           int64      `json:"shares"`
	EngagementRate   float64    `json:"engagement_rate"`
	EstimatedRevenue float64    `json:"estimated_revenue"`
	PublishedAt      *time.Time `json:"published_at,omitempty"`
}

type SavePerformanceDTO struct {
	PostID           string     `json:"post_id" validate:"required,max=64"`
	CreatorID        uint64     `json:"creator_id" validate:"required"`
	Platform         string     `json:"platform" validate:"required,max=32"`
	Date             string     `json:"date" validate:"required,datetime=2006-01-02"`
	Views            int64      `json:"views" validate:"gte=0"`
	Likes            int64      `json:"likes" validate:"gte=0"`
	Comments         int64      `json:"comments" validate:"gte=0"`
	Shares           int64      `json:"shares" validate:"gte=0"`
	EstimatedRevenue float64    `json:"estimated_revenue"`
	PublishedAt      *time.Time `json:"published_at"`
}

// GrowthDTO 周期增长概览
type GrowthDTO struct {
	FollowerGrowth        float64 `json:"follower_growth"`
	RevenueGrowth         float64 `json:"revenue_growth"`
	AverageEngagementRate float64 `json:"average_engagement_rate"`
}

func ToMetricDTOs(list []*model.PerformanceMetric) ([]*MetricDTO, error) {
	res := make([]*MetricDTO, 0, len(list))
	if err := Copy(&res, &list); err != nil {
		return nil, err
	}
	return res, nil
}

func ToMetricDTO(m *model.PerformanceMetric) (*MetricDTO, error) {
	res := &MetricDTO{}
	if err := Copy(res, m); err != nil {
		return nil, err
	}
	return res, nil
}

// ToPerformanceDTOs 互动率在边界处由计数推导
func ToPerformanceDTOs(list []*model.ContentPerformance) ([]*PerformanceDTO, error) {
	res := make([]*PerformanceDTO, 0, len(list))
	for _, p := range list {
		item := &PerformanceDTO{}
		if err := Copy(item, p); err != nil {
			return nil, err
		}
		item.EngagementRate = aggregate.PerformanceEngagementRate(p)
		res = append(res, item)
	}
	return res, nil
}

func (s *SaveMetricDTO) ToModel() (*model.PerformanceMetric, error) {
	m := &model.PerformanceMetric{}
	if err := Copy(m, s); err != nil {
		return nil, err
	}
	m.EngagementRate = aggregate.EngagementRate(m.TotalViews, m.TotalLikes, m.TotalComments, m.TotalShares)
	return m, nil
}

func (s *SavePerformanceDTO) ToModel() (*model.ContentPerformance, error) {
	p := &model.ContentPerformance{}
	if err := Copy(p, s); err != nil {
		return nil, err
	}
	return p, nil
}
