// Package insight 包含内容洞察分类规则表与建议选择器。
package insight

import (
	"Pulse/internal/model"
	"Pulse/internal/pkg/aggregate"
	"fmt"
)

const (
	HighEngagementThreshold = 10.0  // 互动率 %
	HighReachThreshold      = 10000 // 播放量
	HighRevenueThreshold    = 50.0  // 预估收入
)

// Signal 分类所需的单条内容信号
type Signal struct {
	Views            int64
	EngagementRate   float64
	EstimatedRevenue float64
}

// Rule 一条分类规则，Match 为 nil 表示兜底
type Rule struct {
	Type  model.InsightType
	Match func(s Signal) bool
	// Describe 生成文案
	Describe func(s Signal) string
}

// Rules 按优先级排列，命中第一条即返回
var Rules = []Rule{
	{
		Type:  model.InsightHighEngagement,
		Match: func(s Signal) bool { return s.EngagementRate > HighEngagementThreshold },
		Describe: func(s Signal) string {
			return fmt.Sprintf("Engagement rate of %.2f%% is well above average; the audience is actively interacting with this post.", s.EngagementRate)
		},
	},
	{
		Type:  model.InsightHighReach,
		Match: func(s Signal) bool { return s.Views > HighReachThreshold },
		Describe: func(s Signal) string {
			return fmt.Sprintf("Reached %d views; this topic travels beyond the existing audience.", s.Views)
		},
	},
	{
		Type:  model.InsightHighRevenue,
		Match: func(s Signal) bool { return s.EstimatedRevenue > HighRevenueThreshold },
		Describe: func(s Signal) string {
			return fmt.Sprintf("Generated an estimated %.2f in revenue; consider more content in this format.", s.EstimatedRevenue)
		},
	},
	{
		Type: model.InsightNormal,
		Describe: func(s Signal) string {
			return "Performing in line with your usual content."
		},
	},
}

// Classify 返回第一条命中规则的分类与文案
func Classify(s Signal) (model.InsightType, string) {
	for _, r := range Rules {
		if r.Match == nil || r.Match(s) {
			return r.Type, r.Describe(s)
		}
	}
	return model.InsightNormal, ""
}

// SignalOf 从内容快照提取分类信号
func SignalOf(p *model.ContentPerformance) Signal {
	return Signal{
		Views:            p.Views,
		EngagementRate:   aggregate.PerformanceEngagementRate(p),
		EstimatedRevenue: p.EstimatedRevenue,
	}
}

// BuildContentInsights 为每条内容生成洞察条目，保持传入顺序
func BuildContentInsights(performances []*model.ContentPerformance) []model.ContentInsight {
	res := make([]model.ContentInsight, 0, len(performances))
	for _, p := range performances {
		if p == nil {
			continue
		}
		s := SignalOf(p)
		typ, desc := Classify(s)
		res = append(res, model.ContentInsight{
			PostID:           p.PostID,
			Platform:         p.Platform,
			Views:            p.Views,
			EngagementRate:   s.EngagementRate,
			EstimatedRevenue: p.EstimatedRevenue,
			Type:             typ,
			Description:      desc,
		})
	}
	return res
}
