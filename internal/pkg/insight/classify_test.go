package insight

import (
	"Pulse/internal/model"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestClassifyPrecedence(t *testing.T) {
	tests := []struct {
		name string
		in   Signal
		want model.InsightType
	}{
		{"engagement wins over everything", Signal{EngagementRate: 10.01, Views: 50000, EstimatedRevenue: 500}, model.InsightHighEngagement},
		{"engagement at threshold is not high", Signal{EngagementRate: 10, Views: 10}, model.InsightNormal},
		{"reach wins over revenue", Signal{EngagementRate: 2, Views: 10001, EstimatedRevenue: 500}, model.InsightHighReach},
		{"reach at threshold is not high", Signal{Views: 10000}, model.InsightNormal},
		{"revenue", Signal{EngagementRate: 1, Views: 100, EstimatedRevenue: 50.5}, model.InsightHighRevenue},
		{"revenue at threshold is not high", Signal{EstimatedRevenue: 50}, model.InsightNormal},
		{"normal", Signal{EngagementRate: 4, Views: 900, EstimatedRevenue: 3}, model.InsightNormal},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, desc := Classify(tt.in)
			assert.Equal(t, tt.want, got)
			assert.NotEmpty(t, desc)
		})
	}
}

func TestRuleTableCoversAllTypes(t *testing.T) {
	assert.Len(t, Rules, len(model.InsightTypes))
	for i, r := range Rules {
		assert.Equal(t, model.InsightTypes[i], r.Type)
	}
	// 兜底规则必须在最后
	assert.Nil(t, Rules[len(Rules)-1].Match)
}

func TestBuildContentInsights(t *testing.T) {
	list := []*model.ContentPerformance{
		{PostID: "p1", Platform: "youtube", Views: 1000, Likes: 150, Comments: 20, Shares: 5},
		{PostID: "p2", Platform: "tiktok", Views: 20000, Likes: 100},
		nil,
		{PostID: "p3", Platform: "youtube", Views: 100, Likes: 1, EstimatedRevenue: 70},
	}
	got := BuildContentInsights(list)
	if assert.Len(t, got, 3) {
		assert.Equal(t, model.InsightHighEngagement, got[0].Type)
		assert.InDelta(t, 17.5, got[0].EngagementRate, 1e-9)
		assert.Equal(t, model.InsightHighReach, got[1].Type)
		assert.Equal(t, model.InsightHighRevenue, got[2].Type)
		assert.Equal(t, "p3", got[2].PostID)
	}
}
