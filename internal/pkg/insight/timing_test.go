package insight

import (
	"Pulse/internal/model"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func at(t time.Time) *time.Time {
	return &t
}

func TestBestTimeToPost(t *testing.T) {
	// 2026-03-02 是星期一
	mon18 := time.Date(2026, 3, 2, 18, 5, 0, 0, time.UTC)
	wed09 := time.Date(2026, 3, 4, 9, 30, 0, 0, time.UTC)

	list := []*model.ContentPerformance{
		{PostID: "a", Views: 100, Likes: 20, PublishedAt: at(mon18)},                  // 20
		{PostID: "b", Views: 100, Likes: 10, PublishedAt: at(mon18.Add(time.Minute))}, // 10
		{PostID: "c", Views: 100, Likes: 12, PublishedAt: at(wed09)},                  // 12
		{PostID: "d", Views: 100, Likes: 90},
	}

	slot := BestTimeToPost(list)
	require.NotNil(t, slot)
	assert.Equal(t, time.Monday, slot.DayOfWeek)
	assert.Equal(t, 18, slot.Hour)
	assert.InDelta(t, 15.0, slot.AverageEngagementRate, 1e-9)
	assert.Equal(t, 2, slot.SampleSize)
}

func TestBestTimeToPostTieTakesEarliestSlot(t *testing.T) {
	sat := time.Date(2026, 3, 7, 8, 0, 0, 0, time.UTC)
	tue := time.Date(2026, 3, 3, 22, 0, 0, 0, time.UTC)
	slot := BestTimeToPost([]*model.ContentPerformance{
		{Views: 10, Likes: 1, PublishedAt: at(sat)},
		{Views: 10, Likes: 1, PublishedAt: at(tue)},
	})
	require.NotNil(t, slot)
	assert.Equal(t, time.Tuesday, slot.DayOfWeek)
	assert.Equal(t, 22, slot.Hour)
}

func TestBestTimeToPostWithoutPublishTimes(t *testing.T) {
	assert.Nil(t, BestTimeToPost(nil))
	assert.Nil(t, BestTimeToPost([]*model.ContentPerformance{{Views: 10}}))
}

func TestComparePeriods(t *testing.T) {
	got := ComparePeriods(
		PeriodTotals{Followers: 1200, Views: 50, EngagementRate: 4, Revenue: 30},
		PeriodTotals{Followers: 1000, Views: 100, EngagementRate: 0, Revenue: 30},
	)
	assert.InDelta(t, 20.0, got[CompareFollowers], 1e-9)
	assert.InDelta(t, -50.0, got[CompareViews], 1e-9)
	assert.InDelta(t, 100.0, got[CompareEngagementRate], 1e-9)
	assert.InDelta(t, 0.0, got[CompareRevenue], 1e-9)
	assert.Len(t, got, 4)
}
