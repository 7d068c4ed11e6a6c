package dashboard

import (
	"context"

	"github.com/mx-space/blog-admin/internal/database"
	"github.com/mx-space/blog-admin/internal/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// Source answers the dashboard's article queries.
type Source interface {
	CountArticles(ctx context.Context, status string) (int64, error)
	TotalViews(ctx context.Context) (int64, error)
	TopTags(ctx context.Context, limit int64) ([]TagStat, error)
	// PublishedArticles returns published articles ordered by sortField desc.
	PublishedArticles(ctx context.Context, sortField string, limit int64) ([]ArticleCard, error)
}

type mongoSource struct {
	coll *mongo.Collection
}

func NewMongoSource(db *mongo.Database) Source {
	return &mongoSource{coll: db.Collection(database.CollectionArticles)}
}

// CountArticles counts every article when status is empty.
func (s *mongoSource) CountArticles(ctx context.Context, status string) (int64, error) {
	filter := bson.M{}
	if status != "" {
		filter["status"] = status
	}
	return s.coll.CountDocuments(ctx, filter)
}

func (s *mongoSource) TotalViews(ctx context.Context) (int64, error) {
	cur, err := s.coll.Aggregate(ctx, mongo.Pipeline{
		{{Key: "$group", Value: bson.D{
			{Key: "_id", Value: nil},
			{Key: "totalViews", Value: bson.D{{Key: "$sum", Value: "$viewCount"}}},
		}}},
	})
	if err != nil {
		return 0, err
	}
	var rows []struct {
		TotalViews int64 `bson:"totalViews"`
	}
	if err := cur.All(ctx, &rows); err != nil {
		return 0, err
	}
	if len(rows) == 0 {
		return 0, nil
	}
	return rows[0].TotalViews, nil
}

func (s *mongoSource) TopTags(ctx context.Context, limit int64) ([]TagStat, error) {
	cur, err := s.coll.Aggregate(ctx, mongo.Pipeline{
		{{Key: "$unwind", Value: "$tags"}},
		{{Key: "$group", Value: bson.D{
			{Key: "_id", Value: "$tags"},
			{Key: "count", Value: bson.D{{Key: "$sum", Value: 1}}},
		}}},
		{{Key: "$sort", Value: bson.D{{Key: "count", Value: -1}, {Key: "_id", Value: 1}}}},
		{{Key: "$limit", Value: limit}},
	})
	if err != nil {
		return nil, err
	}
	out := make([]TagStat, 0)
	if err := cur.All(ctx, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (s *mongoSource) PublishedArticles(ctx context.Context, sortField string, limit int64) ([]ArticleCard, error) {
	opts := options.Find().
		SetSort(bson.D{{Key: sortField, Value: -1}}).
		SetLimit(limit).
		SetProjection(bson.M{"title": 1, "summary": 1, "createdAt": 1, "viewCount": 1, "tags": 1})
	cur, err := s.coll.Find(ctx, bson.M{"status": models.ArticlePublished}, opts)
	if err != nil {
		return nil, err
	}
	out := make([]ArticleCard, 0)
	if err := cur.All(ctx, &out); err != nil {
		return nil, err
	}
	return out, nil
}
