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

const PerformanceCollection = "content_performances"

// PerformanceQuery PostID 非空时按内容查询，否则按创作者查询
type PerformanceQuery struct {
	CreatorID uint64
	PostID    string
	From      time.Time
	To        time.Time
}

type ContentPerformanceRepo interface {
	FindPerformances(ctx context.Context, q PerformanceQuery) ([]*model.ContentPerformance, error)
	ReplacePerformance(ctx context.Context, perf *model.ContentPerformance) error
}

type contentPerformanceRepoImpl struct {
	col *mongo.Collection
}

func NewContentPerformanceRepo(db *mongo.Database) ContentPerformanceRepo {
	return &contentPerformanceRepoImpl{col: db.Collection(PerformanceCollection)}
}

func (s *contentPerformanceRepoImpl) FindPerformances(ctx context.Context, q PerformanceQuery) ([]*model.ContentPerformance, error) {
	opts := options.Find().SetSort(bson.D{
		{Key: "date", Value: 1},
		{Key: "post_id", Value: 1},
	})
	cursor, err := s.col.Find(ctx, performanceFilter(q), opts)
	if err != nil {
		return nil, fmt.Errorf("find performances: %w", err)
	}
	defer func() {
		_ = cursor.Close(ctx)
	}()

	list := make([]*model.ContentPerformance, 0)
	if err = cursor.All(ctx, &list); err != nil {
		return nil, fmt.Errorf("decode performances: %w", err)
	}
	return list, nil
}

// ReplacePerformance 按 (post_id, date) 覆盖写入
func (s *contentPerformanceRepoImpl) ReplacePerformance(ctx context.Context, perf *model.ContentPerformance) error {
	now := time.Now().UTC()
	perf.UpdatedAt = now
	set := bson.M{
		"creator_id":        perf.CreatorID,
		"platform":          perf.Platform,
		"views":             perf.Views,
		"likes":             perf.Likes,
		"comments":          perf.Comments,
		"shares":            perf.Shares,
		"estimated_revenue": perf.EstimatedRevenue,
		"updated_at":        now,
	}
	if perf.PublishedAt != nil {
		set["published_at"] = perf.PublishedAt.UTC()
	}
	filter := bson.M{"post_id": perf.PostID, "date": perf.Date}
	update := bson.M{
		"$set":         set,
		"$setOnInsert": bson.M{"created_at": now},
	}
	if _, err := s.col.UpdateOne(ctx, filter, update, options.Update().SetUpsert(true)); err != nil {
		return fmt.Errorf("replace performance: %w", err)
	}
	return nil
}

func performanceFilter(q PerformanceQuery) bson.M {
	var filter bson.M
	if q.PostID != "" {
		filter = bson.M{"post_id": q.PostID}
	} else {
		filter = bson.M{"creator_id": q.CreatorID}
	}
	if r := dateRange(q.From, q.To); r != nil {
		filter["date"] = r
	}
	return filter
}
