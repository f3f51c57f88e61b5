package insight

import (
	"Pulse/internal/model"
	"Pulse/internal/pkg/aggregate"
	"time"
)

type slotKey struct {
	day  time.Weekday
	hour int
}

// BestTimeToPost 按发布时间 (UTC 星期 + 小时) 分组，返回平均互动率最高的时段。
// 平均值相同取更早的星期与小时；没有任何发布时间时返回 nil。
func BestTimeToPost(performances []*model.ContentPerformance) *model.BestTimeSlot {
	sums := make(map[slotKey]float64)
	counts := make(map[slotKey]int)
	for _, p := range performances {
		if p == nil || p.PublishedAt == nil {
			continue
		}
		t := p.PublishedAt.UTC()
		k := slotKey{day: t.Weekday(), hour: t.Hour()}
		sums[k] += aggregate.PerformanceEngagementRate(p)
		counts[k]++
	}
	if len(counts) == 0 {
		return nil
	}

	var best *model.BestTimeSlot
	for day := time.Sunday; day <= time.Saturday; day++ {
		for hour := 0; hour < 24; hour++ {
			k := slotKey{day: day, hour: hour}
			n := counts[k]
			if n == 0 {
				continue
			}
			avg := sums[k] / float64(n)
			if best == nil || avg > best.AverageEngagementRate {
				best = &model.BestTimeSlot{
					DayOfWeek:             day,
					Hour:                  hour,
					AverageEngagementRate: avg,
					SampleSize:            n,
				}
			}
		}
	}
	return best
}
