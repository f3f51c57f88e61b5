package dto

import (
	"Pulse/internal/model"
	"time"
)

type ContentInsightDTO struct {
	PostID           string            `json:"post_id" validate:"required"`
	Platform         string            `json:"platform"`
	Views            int64             `json:"views" validate:"gte=0"`
	EngagementRate   float64           `json:"engagement_rate"`
	EstimatedRevenue float64           `json:"estimated_revenue"`
	Type             model.InsightType `json:"type" validate:"required,oneof=high_engagement high_reach high_revenue normal"`
	Description      string            `json:"description"`
}

type RecommendationDTO struct {
	Type        model.RecommendationType `json:"type" validate:"required"`
	Platform    string                   `json:"platform,omitempty"`
	Description string                   `json:"description" validate:"required,max=500"`
	Priority    model.Priority           `json:"priority" validate:"min=1,max=3"`
}

type BestTimeSlotDTO struct {
	DayOfWeek             time.Weekday `json:"day_of_week"`
	DayName               string       `json:"day_name"`
	Hour                  int          `json:"hour"`
	AverageEngagementRate float64      `json:"average_engagement_rate"`
	SampleSize            int          `json:"sample_size"`
}

type InsightsDTO struct {
	ID                   string               `json:"id"`
	CreatorID            uint64               `json:"creator_id"`
	PeriodStart          string               `json:"period_start"`
	PeriodEnd            string               `json:"period_end"`
	GrowthRate           float64              `json:"growth_rate"`
	TotalRevenueInPeriod float64              `json:"total_revenue_in_period"`
	TopContentInsights   []*ContentInsightDTO `json:"top_content_insights"`
	Recommendations      []*RecommendationDTO `json:"recommendations"`
	BestTimeToPost       *BestTimeSlotDTO     `json:"best_time_to_post"`
	PeriodComparison     map[string]float64   `json:"period_comparison"`
	GeneratedAt          time.Time            `json:"generated_at"`
	CreatedAt            time.Time            `json:"created_at"`
	UpdatedAt            time.Time            `json:"updated_at"`
}

// UpdateInsightsDTO 为空的字段保持不变
type UpdateInsightsDTO struct {
	Start              string               `json:"start" validate:"required,datetime=2006-01-02"`
	End                string               `json:"end" validate:"required,datetime=2006-01-02"`
	TopContentInsights []*ContentInsightDTO `json:"top_content_insights" validate:"omitempty,max=5,dive"`
	Recommendations    []*RecommendationDTO `json:"recommendations" validate:"omitempty,dive"`
}

func ToInsightsDTO(s *model.DashboardInsights) (*InsightsDTO, error) {
	res := &InsightsDTO{}
	if err := Copy(res, s); err != nil {
		return nil, err
	}
	if res.BestTimeToPost != nil {
		res.BestTimeToPost.DayName = res.BestTimeToPost.DayOfWeek.String()
	}
	return res, nil
}

func ToInsightsDTOs(list []*model.DashboardInsights) ([]*InsightsDTO, error) {
	res := make([]*InsightsDTO, 0, len(list))
	for _, s := range list {
		item, err := ToInsightsDTO(s)
		if err != nil {
			return nil, err
		}
		res = append(res, item)
	}
	return res, nil
}

func ToRecommendationDTOs(list []model.ContentRecommendation) ([]*RecommendationDTO, error) {
	res := make([]*RecommendationDTO, 0, len(list))
	if err := Copy(&res, &list); err != nil {
		return nil, err
	}
	return res, nil
}

func ToRecommendations(list []*RecommendationDTO) ([]model.ContentRecommendation, error) {
	if list == nil {
		return nil, nil
	}
	res := make([]model.ContentRecommendation, 0, len(list))
	if err := Copy(&res, &list); err != nil {
		return nil, err
	}
	return res, nil
}

func ToContentInsights(list []*ContentInsightDTO) ([]model.ContentInsight, error) {
	if list == nil {
		return nil, nil
	}
	res := make([]model.ContentInsight, 0, len(list))
	if err := Copy(&res, &list); err != nil {
		return nil, err
	}
	return res, nil
}
