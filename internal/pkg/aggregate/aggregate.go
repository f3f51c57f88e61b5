// Package aggregate 将原始计数换算为互动率、增长率等派生指标。
//
// 所有函数都是纯函数且不会返回错误：除零和零基线按固定约定处理，
// 负数输入不做截断，按字面计算，让上游的数据问题暴露出来。
package aggregate

import (
	"Pulse/internal/model"
	"math"
	"sort"

	"github.com/shopspring/decimal"
)

var hundred = decimal.NewFromInt(100)

// divPrecision 除法保留的小数位，足以覆盖十亿级播放量下的互动率
const divPrecision = 32

func finite(f float64) bool {
	return !math.IsNaN(f) && !math.IsInf(f, 0)
}

// EngagementRate (likes+comments+shares)/views*100，views <= 0 时为 0
func EngagementRate(views, likes, comments, shares int64) float64 {
	if views <= 0 {
		return 0
	}
	interactions := decimal.NewFromInt(likes).
		Add(decimal.NewFromInt(comments)).
		Add(decimal.NewFromInt(shares))
	rate, _ := interactions.Mul(hundred).DivRound(decimal.NewFromInt(views), divPrecision).Float64()
	return rate
}

// PercentageChange 相对 previous 的变化百分比。
// previous 为 0 时：current > 0 记为 100，否则为 0；任一输入不是有限数时为 0。
func PercentageChange(current, previous float64) float64 {
	if !finite(current) || !finite(previous) {
		return 0
	}
	if previous == 0 {
		if current > 0 {
			return 100
		}
		return 0
	}
	cur := decimal.NewFromFloat(current)
	prev := decimal.NewFromFloat(previous)
	pct, _ := cur.Sub(prev).Mul(hundred).DivRound(prev, divPrecision).Float64()
	return pct
}

// FollowerGrowthRate 以区间内最早一条为基线、最晚一条为终点计算粉丝增长率
func FollowerGrowthRate(metrics []*model.PerformanceMetric) float64 {
	var first, last *model.PerformanceMetric
	for _, m := range metrics {
		if m == nil {
			continue
		}
		if first == nil || m.Date.Before(first.Date) {
			first = m
		}
		if last == nil || !m.Date.Before(last.Date) {
			last = m
		}
	}
	if first == nil {
		return 0
	}
	return PercentageChange(float64(last.Followers), float64(first.Followers))
}

// PerformanceEngagementRate 单条内容的互动率
func PerformanceEngagementRate(p *model.ContentPerformance) float64 {
	if p == nil {
		return 0
	}
	return EngagementRate(p.Views, p.Likes, p.Comments, p.Shares)
}

// AverageEngagementRate 各内容互动率的算术平均，空集合为 0
func AverageEngagementRate(performances []*model.ContentPerformance) float64 {
	sum := decimal.Zero
	n := int64(0)
	for _, p := range performances {
		if p == nil {
			continue
		}
		sum = sum.Add(decimal.NewFromFloat(PerformanceEngagementRate(p)))
		n++
	}
	if n == 0 {
		return 0
	}
	avg, _ := sum.Div(decimal.NewFromInt(n)).Float64()
	return avg
}

// TotalRevenue 指标预估收入之和
func TotalRevenue(metrics []*model.PerformanceMetric) float64 {
	sum := decimal.Zero
	for _, m := range metrics {
		if m == nil || !finite(m.EstimatedRevenue) {
			continue
		}
		sum = sum.Add(decimal.NewFromFloat(m.EstimatedRevenue))
	}
	total, _ := sum.Float64()
	return total
}

// TotalViews 指标播放量之和
func TotalViews(metrics []*model.PerformanceMetric) int64 {
	var total int64
	for _, m := range metrics {
		if m != nil {
			total += m.TotalViews
		}
	}
	return total
}

// DailyFollowers 将多平台指标按日期合并，粉丝数求和，结果按日期升序
func DailyFollowers(metrics []*model.PerformanceMetric) []*model.PerformanceMetric {
	byDate := make(map[int64]*model.PerformanceMetric)
	for _, m := range metrics {
		if m == nil {
			continue
		}
		key := m.Date.Unix()
		day, ok := byDate[key]
		if !ok {
			day = &model.PerformanceMetric{CreatorID: m.CreatorID, Date: m.Date}
			byDate[key] = day
		}
		day.Followers += m.Followers
		day.FollowersGrowth += m.FollowersGrowth
	}

	res := make([]*model.PerformanceMetric, 0, len(byDate))
	for _, m := range byDate {
		res = append(res, m)
	}
	sort.Slice(res, func(i, j int) bool { return res[i].Date.Before(res[j].Date) })
	return res
}

// LatestFollowers 区间内最后一天的粉丝数（多平台求和）
func LatestFollowers(metrics []*model.PerformanceMetric) int64 {
	daily := DailyFollowers(metrics)
	if len(daily) == 0 {
		return 0
	}
	return daily[len(daily)-1].Followers
}

// TopByViews 按播放量降序取前 limit 条；播放量相同按互动率、再按 postId 排序，保证结果稳定
func TopByViews(performances []*model.ContentPerformance, limit int) []*model.ContentPerformance {
	list := make([]*model.ContentPerformance, 0, len(performances))
	for _, p := range performances {
		if p != nil {
			list = append(list, p)
		}
	}
	sort.SliceStable(list, func(i, j int) bool {
		a, b := list[i], list[j]
		if a.Views != b.Views {
			return a.Views > b.Views
		}
		ra, rb := PerformanceEngagementRate(a), PerformanceEngagementRate(b)
		if ra != rb {
			return ra > rb
		}
		return a.PostID < b.PostID
	})
	if limit >= 0 && len(list) > limit {
		list = list[:limit]
	}
	return list
}

// LatestPerPost 每条内容只保留日期最新的一条快照
func LatestPerPost(performances []*model.ContentPerformance) []*model.ContentPerformance {
	latest := make(map[string]*model.ContentPerformance)
	order := make([]string, 0)
	for _, p := range performances {
		if p == nil {
			continue
		}
		cur, ok := latest[p.PostID]
		if !ok {
			order = append(order, p.PostID)
			latest[p.PostID] = p
			continue
		}
		if p.Date.After(cur.Date) {
			latest[p.PostID] = p
		}
	}
	res := make([]*model.ContentPerformance, 0, len(order))
	for _, id := range order {
		res = append(res, latest[id])
	}
	return res
}
