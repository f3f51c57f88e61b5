package insight

import "Pulse/internal/pkg/aggregate"

// 周期对比的字段名
const (
	CompareFollowers      = "followers"
	CompareViews          = "views"
	CompareEngagementRate = "engagementRate"
	CompareRevenue        = "revenue"
)

// PeriodTotals 一个周期的汇总值
type PeriodTotals struct {
	Followers      int64
	Views          int64
	EngagementRate float64
	Revenue        float64
}

// ComparePeriods 当前周期相对上一周期的百分比变化
func ComparePeriods(current, previous PeriodTotals) map[string]float64 {
	return map[string]float64{
		CompareFollowers:      aggregate.PercentageChange(float64(current.Followers), float64(previous.Followers)),
		CompareViews:          aggregate.PercentageChange(float64(current.Views), float64(previous.Views)),
		CompareEngagementRate: aggregate.PercentageChange(current.EngagementRate, previous.EngagementRate),
		CompareRevenue:        aggregate.PercentageChange(current.Revenue, previous.Revenue),
	}
}
