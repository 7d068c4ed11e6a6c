package comment

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

// ErrNoDocument is returned by FindByID when nothing matches.
var ErrNoDocument = errors.New("comment: no document")

// Repository is the storage surface the comment service needs.
type Repository interface {
	ChildFinder
	FindByID(ctx context.Context, id primitive.ObjectID) (*models.CommentModel, error)
	List(ctx context.Context, postID string) ([]models.CommentModel, error)
	Insert(ctx context.Context, cm *models.CommentModel) error
	Update(ctx context.Context, id primitive.ObjectID, patch Patch) (*models.CommentModel, error)
	DeleteByIDs(ctx context.Context, ids []primitive.ObjectID) (int64, error)
	CountByPost(ctx context.Context) ([]PostCount, error)
}

type mongoRepository struct {
	coll *mongo.Collection
}

// NewMongoRepository returns a Repository backed by the comments collection.
func NewMongoRepository(db *mongo.Database) Repository {
	return &mongoRepository{coll: db.Collection(database.CollectionComments)}
}

func (r *mongoRepository) FindByID(ctx context.Context, id primitive.ObjectID) (*models.CommentModel, error) {
	var cm models.CommentModel
	err := r.coll.FindOne(ctx, bson.M{"_id": id}).Decode(&cm)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, ErrNoDocument
	}
	if err != nil {
		return nil, err
	}
	return &cm, nil
}

func (r *mongoRepository) List(ctx context.Context, postID string) ([]models.CommentModel, error) {
	filter := bson.M{}
	if postID != "" {
		filter["postId"] = postID
	}
	cur, err := r.coll.Find(ctx, filter, options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}}))
	if err != nil {
		return nil, err
	}
	out := make([]models.CommentModel, 0)
	if err := cur.All(ctx, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (r *mongoRepository) Insert(ctx context.Context, cm *models.CommentModel) error {
	if cm.ID.IsZero() {
		cm.ID = primitive.NewObjectID()
	}
	_, err := r.coll.InsertOne(ctx, cm)
	return err
}

func (r *mongoRepository) Update(ctx context.Context, id primitive.ObjectID, patch Patch) (*models.CommentModel, error) {
	set := bson.M{"updatedAt": patch.UpdatedAt}
	if patch.Content != nil {
		set["content"] = *patch.Content
	}
	if patch.Status != nil {
		set["status"] = *patch.Status
	}
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
	var cm models.CommentModel
	err := r.coll.FindOneAndUpdate(ctx, bson.M{"_id": id}, bson.M{"$set": set}, opts).Decode(&cm)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, ErrNoDocument
	}
	if err != nil {
		return nil, err
	}
	return &cm, nil
}

// ChildIDs returns ids of comments whose parentId references any of parents,
// matching both the hex string and the ObjectID storage forms.
func (r *mongoRepository) ChildIDs(ctx context.Context, parents []primitive.ObjectID) ([]primitive.ObjectID, error) {
	if len(parents) == 0 {
		return nil, nil
	}
	filter := bson.M{"parentId": bson.M{"$in": models.RefMatchValues(hexIDs(parents)...)}}
	cur, err := r.coll.Find(ctx, filter, options.Find().SetProjection(bson.M{"_id": 1}))
	if err != nil {
		return nil, err
	}
	var rows []struct {
		ID primitive.ObjectID `bson:"_id"`
	}
	if err := cur.All(ctx, &rows); err != nil {
		return nil, err
	}
	ids := make([]primitive.ObjectID, len(rows))
	for i, row := range rows {
		ids[i] = row.ID
	}
	return ids, nil
}

func (r *mongoRepository) DeleteByIDs(ctx context.Context, ids []primitive.ObjectID) (int64, error) {
	if len(ids) == 0 {
		return 0, nil
	}
	res, err := r.coll.DeleteMany(ctx, bson.M{"_id": bson.M{"$in": ids}})
	if err != nil {
		return 0, err
	}
	return res.DeletedCount, nil
}

func (r *mongoRepository) CountByPost(ctx context.Context) ([]PostCount, error) {
	pipeline := mongo.Pipeline{
		{{Key: "$group", Value: bson.D{{Key: "_id", Value: "$postId"}, {Key: "count", Value: bson.D{{Key: "$sum", Value: 1}}}}}},
		{{Key: "$project", Value: bson.D{{Key: "_id", Value: 0}, {Key: "articleId", Value: "$_id"}, {Key: "count", Value: 1}}}},
		{{Key: "$sort", Value: bson.D{{Key: "count", Value: -1}}}},
	}
	cur, err := r.coll.Aggregate(ctx, pipeline)
	if err != nil {
		return nil, err
	}
	out := make([]PostCount, 0)
	if err := cur.All(ctx, &out); err != nil {
		return nil, err
	}
	return out, nil
}
