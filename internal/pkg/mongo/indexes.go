package mongo

import (
	"Pulse/internal/repository"
	"context"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// IndexSpec 单个集合上需要的索引
type IndexSpec struct {
	Collection string
	Models     []mongo.IndexModel
}

// Indexes 自然键上的唯一索引保证覆盖写入与快照条件写入的幂等
func Indexes() []IndexSpec {
	return []IndexSpec{
		{
			Collection: repository.MetricCollection,
			Models: []mongo.IndexModel{
				{
					Keys:    bson.D{{Key: "creator_id", Value: 1}, {Key: "platform", Value: 1}, {Key: "date", Value: 1}},
					Options: options.Index().SetUnique(true).SetName("uniq_creator_platform_date"),
				},
				{
					Keys:    bson.D{{Key: "creator_id", Value: 1}, {Key: "date", Value: 1}},
					Options: options.Index().SetName("idx_creator_date"),
				},
			},
		},
		{
			Collection: repository.PerformanceCollection,
			Models: []mongo.IndexModel{
				{
					Keys:    bson.D{{Key: "post_id", Value: 1}, {Key: "date", Value: 1}},
					Options: options.Index().SetUnique(true).SetName("uniq_post_date"),
				},
				{
					Keys:    bson.D{{Key: "creator_id", Value: 1}, {Key: "date", Value: 1}},
					Options: options.Index().SetName("idx_creator_date"),
				},
			},
		},
		{
			Collection: repository.InsightsCollection,
			Models: []mongo.IndexModel{
				{
					Keys:    bson.D{{Key: "creator_id", Value: 1}, {Key: "period_start", Value: 1}, {Key: "period_end", Value: 1}},
					Options: options.Index().SetUnique(true).SetName("uniq_creator_period"),
				},
			},
		},
	}
}

func EnsureIndexes(ctx context.Context, db *mongo.Database) error {
	for _, spec := range Indexes() {
		if _, err := db.Collection(spec.Collection).Indexes().CreateMany(ctx, spec.Models); err != nil {
			return err
		}
	}
	return nil
}
