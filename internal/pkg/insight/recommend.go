package insight

import (
	"Pulse/internal/model"
	"fmt"
)

const (
	SlowGrowthThreshold     = 5.0
	SmallAudienceThreshold  = 1000
	LowEngagementThreshold  = 3.0
	MediumEngagementCeiling = 6.0
	MinDiversifiedPlatforms = 3
)

// PlatformSignal 单个平台的聚合信号
type PlatformSignal struct {
	Platform      string
	Followers     int64
	MonthlyGrowth float64 // %
}

// Signals 建议选择器的输入
type Signals struct {
	Platforms          []PlatformSignal
	AverageEngagement  float64
	ConnectedPlatforms int
	HasMonetization    bool
}

// Select 规则之间相互独立、可同时触发；没有任何规则触发时返回一条通用建议
func Select(s Signals) []model.ContentRecommendation {
	recs := make([]model.ContentRecommendation, 0, 8)

	for _, p := range s.Platforms {
		if p.MonthlyGrowth < SlowGrowthThreshold {
			recs = append(recs, model.ContentRecommendation{
				Type:        model.RecommendAccelerateGrowth,
				Platform:    p.Platform,
				Description: fmt.Sprintf("Follower growth on %s is %.1f%%. Post more consistently and collaborate with creators in your niche.", p.Platform, p.MonthlyGrowth),
				Priority:    model.PriorityHigh,
			})
		}
		if p.Followers < SmallAudienceThreshold {
			recs = append(recs, model.ContentRecommendation{
				Type:        model.RecommendBuildInitialBase,
				Platform:    p.Platform,
				Description: fmt.Sprintf("You have %d followers on %s. Focus on a clear niche and cross-promote from your other channels.", p.Followers, p.Platform),
				Priority:    model.PriorityHigh,
			})
		}
	}

	switch {
	case s.AverageEngagement < LowEngagementThreshold:
		recs = append(recs,
			model.ContentRecommendation{
				Type:        model.RecommendIncreaseInteractivity,
				Description: "End posts with a direct question or call to action to invite comments.",
				Priority:    model.PriorityHigh,
			},
			model.ContentRecommendation{
				Type:        model.RecommendIncreaseInteractivity,
				Description: "Use polls, Q&A sessions and live streams to turn viewers into participants.",
				Priority:    model.PriorityMedium,
			},
		)
	case s.AverageEngagement < MediumEngagementCeiling:
		recs = append(recs, model.ContentRecommendation{
			Type:        model.RecommendSerializedContent,
			Description: "Create a recurring series so followers come back for the next episode.",
			Priority:    model.PriorityMedium,
		})
	}

	if !s.HasMonetization {
		recs = append(recs, model.ContentRecommendation{
			Type:        model.RecommendMonetization,
			Description: "Connect a monetization integration such as memberships or sponsorships to start earning from your audience.",
			Priority:    model.PriorityMedium,
		})
	}
	if s.ConnectedPlatforms < MinDiversifiedPlatforms {
		recs = append(recs, model.ContentRecommendation{
			Type:        model.RecommendDiversify,
			Description: "Expand to additional platforms to reduce dependence on a single algorithm.",
			Priority:    model.PriorityLow,
		})
	}

	if len(recs) == 0 {
		recs = append(recs, model.ContentRecommendation{
			Type:        model.RecommendGeneral,
			Description: "Keep up the momentum: your channels are healthy. Experiment with new formats to keep growing.",
			Priority:    model.PriorityLow,
		})
	}
	return recs
}
