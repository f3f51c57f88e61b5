package repository

import (
	"Pulse/internal/model"
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const MetricCollection = "performance_metrics"

// MetricQuery 查询条件，Platform 为空表示全部平台，From/To 为零值表示不限
type MetricQuery struct {
	CreatorID uint64
	Platform  string
	From      time.Time
	To        time.Time
}

type PerformanceMetricRepo interface {
	FindMetrics(ctx context.Context, q MetricQuery) ([]*model.PerformanceMetric, error)
	ReplaceMetric(ctx context.Context, metric *model.PerformanceMetric) error
}

type performanceMetricRepoImpl struct {
	col *mongo.Collection
}

func NewPerformanceMetricRepo(db *mongo.Database) PerformanceMetricRepo {
	return &performanceMetricRepoImpl{col: db.Collection(MetricCollection)}
}

// FindMetrics 按日期升序返回，同一天按平台名排序
func (s *performanceMetricRepoImpl) FindMetrics(ctx context.Context, q MetricQuery) ([]*model.PerformanceMetric, error) {
	opts := options.Find().SetSort(bson.D{
		{Key: "date", Value: 1},
		{Key: "platform", Value: 1},
	})
	cursor, err := s.col.Find(ctx, metricFilter(q), opts)
	if err != nil {
		return nil, fmt.Errorf("find metrics: %w", err)
	}
	defer func() {
		_ = cursor.Close(ctx)
	}()

	metrics := make([]*model.PerformanceMetric, 0)
	if err = cursor.All(ctx, &metrics); err != nil {
		return nil, fmt.Errorf("decode metrics: %w", err)
	}
	return metrics, nil
}

// ReplaceMetric 按 (creator_id, platform, date) 覆盖写入，首次写入保留 created_at
func (s *performanceMetricRepoImpl) ReplaceMetric(ctx context.Context, metric *model.PerformanceMetric) error {
	now := time.Now().UTC()
	metric.UpdatedAt = now
	filter := bson.M{
		"creator_id": metric.CreatorID,
		"platform":   metric.Platform,
		"date":       metric.Date,
	}
	update := bson.M{
		"$set": bson.M{
			"followers":                  metric.Followers,
			"followers_growth":           metric.FollowersGrowth,
			"total_views":                metric.TotalViews,
			"total_likes":                metric.TotalLikes,
			"total_comments":             metric.TotalComments,
			"total_shares":               metric.TotalShares,
			"engagement_rate":            metric.EngagementRate,
			"estimated_revenue":          metric.EstimatedRevenue,
			"top_performing_content_ids": nonNilStrings(metric.TopPerformingContentIDs),
			"updated_at":                 now,
		},
		"$setOnInsert": bson.M{"created_at": now},
	}
	if _, err := s.col.UpdateOne(ctx, filter, update, options.Update().SetUpsert(true)); err != nil {
		return fmt.Errorf("replace metric: %w", err)
	}
	return nil
}

func metricFilter(q MetricQuery) bson.M {
	filter := bson.M{"creator_id": q.CreatorID}
	if q.Platform != "" {
		filter["platform"] = q.Platform
	}
	if r := dateRange(q.From, q.To); r != nil {
		filter["date"] = r
	}
	return filter
}

// dateRange 闭区间，两端都为零值时返回 nil
func dateRange(from, to time.Time) bson.M {
	if from.IsZero() && to.IsZero() {
		return nil
	}
	r := bson.M{}
	if !from.IsZero() {
		r["$gte"] = from
	}
	if !to.IsZero() {
		r["$lte"] = to
	}
	return r
}

func nonNilStrings(in []string) []string {
	if in == nil {
		return []string{}
	}
	return in
}
