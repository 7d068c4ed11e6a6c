package visitor

import (
	"context"
	"sort"
	"strings"

	"github.com/mx-space/blog-admin/internal/database"
	"github.com/mx-space/blog-admin/internal/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// LogRepository is the visitor_logs surface of the query engine.
type LogRepository interface {
	Count(ctx context.Context, filter bson.M) (int64, error)
	Find(ctx context.Context, filter bson.M, skip, limit int64) ([]models.VisitorLogModel, error)
	SetGeoInfo(ctx context.Context, id primitive.ObjectID, info models.GeoInfo) error
	DeleteMany(ctx context.Context, filter bson.M) (int64, error)
	GeoOptions(ctx context.Context) (*Options, error)
}

// Directory resolves users and articles referenced by log entries.
type Directory interface {
	MatchUserIDs(ctx context.Context, term string) ([]string, error)
	UsersByID(ctx context.Context, ids []string) (map[string]UserSummary, error)
	ArticleTitles(ctx context.Context, ids []string) (map[string]string, error)
}

type mongoLogRepository struct {
	coll *mongo.Collection
}

func NewLogRepository(db *mongo.Database) LogRepository {
	return &mongoLogRepository{coll: db.Collection(database.CollectionVisitorLogs)}
}

func (r *mongoLogRepository) Count(ctx context.Context, filter bson.M) (int64, error) {
	return r.coll.CountDocuments(ctx, filter)
}

func (r *mongoLogRepository) Find(ctx context.Context, filter bson.M, skip, limit int64) ([]models.VisitorLogModel, error) {
	opts := options.Find().
		SetSort(bson.D{{Key: "timestamp", Value: -1}}).
		SetSkip(skip).
		SetLimit(limit)
	cur, err := r.coll.Find(ctx, filter, opts)
	if err != nil {
		return nil, err
	}
	out := make([]models.VisitorLogModel, 0)
	if err := cur.All(ctx, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (r *mongoLogRepository) SetGeoInfo(ctx context.Context, id primitive.ObjectID, info models.GeoInfo) error {
	_, err := r.coll.UpdateOne(ctx, bson.M{"_id": id}, bson.M{"$set": bson.M{"geoInfo": info}})
	return err
}

func (r *mongoLogRepository) DeleteMany(ctx context.Context, filter bson.M) (int64, error) {
	res, err := r.coll.DeleteMany(ctx, filter)
	if err != nil {
		return 0, err
	}
	return res.DeletedCount, nil
}

func (r *mongoLogRepository) GeoOptions(ctx context.Context) (*Options, error) {
	pipeline := mongo.Pipeline{
		{{Key: "$match", Value: bson.M{"geoInfo.country": bson.M{"$exists": true, "$ne": nil}}}},
		{{Key: "$group", Value: bson.D{
			{Key: "_id", Value: nil},
			{Key: "countries", Value: bson.M{"$addToSet": "$geoInfo.country"}},
			{Key: "regions", Value: bson.M{"$addToSet": "$geoInfo.region"}},
		}}},
	}
	cur, err := r.coll.Aggregate(ctx, pipeline)
	if err != nil {
		return nil, err
	}
	var rows []struct {
		Countries []interface{} `bson:"countries"`
		Regions   []interface{} `bson:"regions"`
	}
	if err := cur.All(ctx, &rows); err != nil {
		return nil, err
	}
	opts := &Options{Countries: []string{}, Regions: []string{}}
	if len(rows) > 0 {
		opts.Countries = sortedNonEmpty(rows[0].Countries)
		opts.Regions = sortedNonEmpty(rows[0].Regions)
	}
	return opts, nil
}

func sortedNonEmpty(values []interface{}) []string {
	out := make([]string, 0, len(values))
	for _, v := range values {
		s, ok := v.(string)
		if !ok || strings.TrimSpace(s) == "" {
			continue
		}
		out = append(out, s)
	}
	sort.Strings(out)
	return out
}

type mongoDirectory struct {
	users    *mongo.Collection
	articles *mongo.Collection
}

func NewDirectory(db *mongo.Database) Directory {
	return &mongoDirectory{
		users:    db.Collection(database.CollectionUsers),
		articles: db.Collection(database.CollectionArticles),
	}
}

func (d *mongoDirectory) MatchUserIDs(ctx context.Context, term string) ([]string, error) {
	filter := bson.M{"$or": bson.A{
		bson.M{"name": containsText(term)},
		bson.M{"email": containsText(term)},
	}}
	cur, err := d.users.Find(ctx, filter, options.Find().SetProjection(bson.M{"_id": 1}))
	if err != nil {
		return nil, err
	}
	var rows []struct {
		ID models.RefID `bson:"_id"`
	}
	if err := cur.All(ctx, &rows); err != nil {
		return nil, err
	}
	ids := make([]string, 0, len(rows))
	for _, row := range rows {
		ids = append(ids, string(row.ID))
	}
	return ids, nil
}

func (d *mongoDirectory) UsersByID(ctx context.Context, ids []string) (map[string]UserSummary, error) {
	out := make(map[string]UserSummary)
	if len(ids) == 0 {
		return out, nil
	}
	opts := options.Find().SetProjection(bson.M{"_id": 1, "name": 1, "email": 1, "avatar": 1})
	cur, err := d.users.Find(ctx, bson.M{"_id": bson.M{"$in": models.RefMatchValues(ids...)}}, opts)
	if err != nil {
		return nil, err
	}
	var rows []struct {
		ID     models.RefID `bson:"_id"`
		Name   string       `bson:"name"`
		Email  string       `bson:"email"`
		Avatar *string      `bson:"avatar"`
	}
	if err := cur.All(ctx, &rows); err != nil {
		return nil, err
	}
	for _, row := range rows {
		out[string(row.ID)] = UserSummary{Name: row.Name, Email: row.Email, Avatar: row.Avatar}
	}
	return out, nil
}

func (d *mongoDirectory) ArticleTitles(ctx context.Context, ids []string) (map[string]string, error) {
	out := make(map[string]string)
	if len(ids) == 0 {
		return out, nil
	}
	opts := options.Find().SetProjection(bson.M{"_id": 1, "title": 1})
	cur, err := d.articles.Find(ctx, bson.M{"_id": bson.M{"$in": models.RefMatchValues(ids...)}}, opts)
	if err != nil {
		return nil, err
	}
	var rows []struct {
		ID    models.RefID `bson:"_id"`
		Title string       `bson:"title"`
	}
	if err := cur.All(ctx, &rows); err != nil {
		return nil, err
	}
	for _, row := range rows {
		out[string(row.ID)] = row.Title
	}
	return out, nil
}
