package repository

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"go.mongodb.org/mongo-driver/bson"
)

func TestMetricFilter(t *testing.T) {
	from := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)
	to := time.Date(2026, 3, 31, 0, 0, 0, 0, time.UTC)

	assert.Equal(t, bson.M{"creator_id": uint64(7)}, metricFilter(MetricQuery{CreatorID: 7}))

	assert.Equal(t, bson.M{
		"creator_id": uint64(7),
		"platform":   "youtube",
		"date":       bson.M{"$gte": from, "$lte": to},
	}, metricFilter(MetricQuery{CreatorID: 7, Platform: "youtube", From: from, To: to}))

	assert.Equal(t, bson.M{
		"creator_id": uint64(7),
		"date":       bson.M{"$gte": from},
	}, metricFilter(MetricQuery{CreatorID: 7, From: from}))
}

func TestPerformanceFilter(t *testing.T) {
	day := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)

	// PostID 优先于 CreatorID
	assert.Equal(t, bson.M{"post_id": "p1"}, performanceFilter(PerformanceQuery{CreatorID: 3, PostID: "p1"}))
	assert.Equal(t, bson.M{
		"creator_id": uint64(3),
		"date":       bson.M{"$lte": day},
	}, performanceFilter(PerformanceQuery{CreatorID: 3, To: day}))
}

func TestSnapshotFilter(t *testing.T) {
	start := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)
	end := time.Date(2026, 3, 7, 0, 0, 0, 0, time.UTC)
	assert.Equal(t, bson.M{
		"creator_id":   uint64(1),
		"period_start": start,
		"period_end":   end,
	}, snapshotFilter(1, start, end))
}

func TestNonNilStrings(t *testing.T) {
	assert.Equal(t, []string{}, nonNilStrings(nil))
	assert.Equal(t, []string{"a"}, nonNilStrings([]string{"a"}))
}
