package model

// InsightType 内容洞察分类
type InsightType string

const (
	InsightHighEngagement InsightType = "high_engagement"
	InsightHighReach      InsightType = "high_reach"
	InsightHighRevenue    InsightType = "high_revenue"
	InsightNormal         InsightType = "normal"
)

// InsightTypes 全部分类，按判定优先级排列
var InsightTypes = []InsightType{
	InsightHighEngagement,
	InsightHighReach,
	InsightHighRevenue,
	InsightNormal,
}

// RecommendationType 建议类型
type RecommendationType string

const (
	RecommendAccelerateGrowth      RecommendationType = "accelerate_growth"
	RecommendBuildInitialBase      RecommendationType = "build_initial_base"
	RecommendIncreaseInteractivity RecommendationType = "increase_interactivity"
	RecommendSerializedContent     RecommendationType = "serialized_content"
	RecommendMonetization          RecommendationType = "monetization"
	RecommendDiversify             RecommendationType = "diversify"
	RecommendGeneral               RecommendationType = "general"
)

// Priority 建议优先级: 1-高, 2-中, 3-低
type Priority int8

const (
	PriorityHigh   Priority = 1
	PriorityMedium Priority = 2
	PriorityLow    Priority = 3
)
