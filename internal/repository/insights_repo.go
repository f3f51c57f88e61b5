package repository

import (
	"Pulse/internal/model"
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const InsightsCollection = "dashboard_insights"

type DashboardInsightsRepo interface {
	FindSnapshot(ctx context.Context, creatorID uint64, start, end time.Time) (*model.DashboardInsights, error)
	InsertSnapshot(ctx context.Context, snapshot *model.DashboardInsights) (*model.DashboardInsights, bool, error)
	UpdateSnapshot(ctx context.Context, snapshot *model.DashboardInsights) (bool, error)
	ListByCreator(ctx context.Context, creatorID uint64, limit int64) ([]*model.DashboardInsights, error)
}

type dashboardInsightsRepoImpl struct {
	col *mongo.Collection
}

func NewDashboardInsightsRepo(db *mongo.Database) DashboardInsightsRepo {
	return &dashboardInsightsRepoImpl{col: db.Collection(InsightsCollection)}
}

// FindSnapshot 不存在时返回 nil, nil
func (s *dashboardInsightsRepoImpl) FindSnapshot(ctx context.Context, creatorID uint64, start, end time.Time) (*model.DashboardInsights, error) {
	var snapshot model.DashboardInsights
	err := s.col.FindOne(ctx, snapshotFilter(creatorID, start, end)).Decode(&snapshot)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, nil
		}
		return nil, fmt.Errorf("find snapshot: %w", err)
	}
	return &snapshot, nil
}

// InsertSnapshot 条件写入：周期已有快照时不覆盖，返回已存在的那份，第二个返回值表示是否由本次写入
func (s *dashboardInsightsRepoImpl) InsertSnapshot(ctx context.Context, snapshot *model.DashboardInsights) (*model.DashboardInsights, bool, error) {
	now := time.Now().UTC()
	snapshot.CreatedAt = now
	snapshot.UpdatedAt = now

	filter := snapshotFilter(snapshot.CreatorID, snapshot.PeriodStart, snapshot.PeriodEnd)
	update := bson.M{"$setOnInsert": snapshot}
	res, err := s.col.UpdateOne(ctx, filter, update, options.Update().SetUpsert(true))
	if err != nil && !mongo.IsDuplicateKeyError(err) {
		return nil, false, fmt.Errorf("insert snapshot: %w", err)
	}
	if err == nil && res.UpsertedID != nil {
		if id, ok := res.UpsertedID.(primitive.ObjectID); ok {
			snapshot.ID = id
		}
		return snapshot, true, nil
	}

	// 并发写入中落败，读取胜者
	existing, err := s.FindSnapshot(ctx, snapshot.CreatorID, snapshot.PeriodStart, snapshot.PeriodEnd)
	if err != nil {
		return nil, false, err
	}
	if existing == nil {
		return nil, false, fmt.Errorf("insert snapshot: %w", mongo.ErrNoDocuments)
	}
	return existing, false, nil
}

// UpdateSnapshot 显式更新洞察与建议，快照不存在时返回 false
func (s *dashboardInsightsRepoImpl) UpdateSnapshot(ctx context.Context, snapshot *model.DashboardInsights) (bool, error) {
	snapshot.UpdatedAt = time.Now().UTC()
	update := bson.M{"$set": bson.M{
		"top_content_insights": snapshot.TopContentInsights,
		"recommendations":      snapshot.Recommendations,
		"updated_at":           snapshot.UpdatedAt,
	}}
	res, err := s.col.UpdateOne(ctx, snapshotFilter(snapshot.CreatorID, snapshot.PeriodStart, snapshot.PeriodEnd), update)
	if err != nil {
		return false, fmt.Errorf("update snapshot: %w", err)
	}
	return res.MatchedCount > 0, nil
}

// ListByCreator 按周期起点倒序
func (s *dashboardInsightsRepoImpl) ListByCreator(ctx context.Context, creatorID uint64, limit int64) ([]*model.DashboardInsights, error) {
	opts := options.Find().
		SetSort(bson.D{
			{Key: "period_start", Value: -1},
			{Key: "period_end", Value: -1},
		}).
		SetLimit(limit)

	cursor, err := s.col.Find(ctx, bson.M{"creator_id": creatorID}, opts)
	if err != nil {
		return nil, fmt.Errorf("list snapshots: %w", err)
	}
	defer func() {
		_ = cursor.Close(ctx)
	}()

	list := make([]*model.DashboardInsights, 0)
	if err = cursor.All(ctx, &list); err != nil {
		return nil, fmt.Errorf("decode snapshots: %w", err)
	}
	return list, nil
}

func snapshotFilter(creatorID uint64, start, end time.Time) bson.M {
	return bson.M{
		"creator_id":   creatorID,
		"period_start": start,
		"period_end":   end,
	}
}
