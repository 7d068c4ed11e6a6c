package settings

import (
	"context"
	"errors"

	"github.com/mx-space/blog-admin/internal/database"
	"github.com/mx-space/blog-admin/internal/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

var ErrNoDocument = errors.New("settings: no document")

// Repository stores the single settings document.
type Repository interface {
	Find(ctx context.Context) (*models.SettingsModel, error)
	Insert(ctx context.Context, s *models.SettingsModel) error
	UpsertArticles(ctx context.Context, a models.ArticleSettings) error
}

type mongoRepository struct {
	coll *mongo.Collection
}

func NewMongoRepository(db *mongo.Database) Repository {
	return &mongoRepository{coll: db.Collection(database.CollectionSettings)}
}

func (r *mongoRepository) Find(ctx context.Context) (*models.SettingsModel, error) {
	var s models.SettingsModel
	err := r.coll.FindOne(ctx, bson.M{}).Decode(&s)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, ErrNoDocument
	}
	if err != nil {
		return nil, err
	}
	return &s, nil
}

func (r *mongoRepository) Insert(ctx context.Context, s *models.SettingsModel) error {
	if s.ID.IsZero() {
		s.ID = primitive.NewObjectID()
	}
	_, err := r.coll.InsertOne(ctx, s)
	return err
}

func (r *mongoRepository) UpsertArticles(ctx context.Context, a models.ArticleSettings) error {
	_, err := r.coll.UpdateOne(ctx, bson.M{},
		bson.M{"$set": bson.M{"articles": a}},
		options.Update().SetUpsert(true),
	)
	return err
}
