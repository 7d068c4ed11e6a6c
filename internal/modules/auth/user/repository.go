package user

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

var (
	ErrNoDocument = errors.New("user: no document")
	// errDuplicate is returned when a unique index rejects a write.
	errDuplicate = errors.New("user: duplicate key")
)

type Repository interface {
	List(ctx context.Context) ([]models.UserModel, error)
	FindByID(ctx context.Context, id primitive.ObjectID) (*models.UserModel, error)
	// Taken reports whether another user already has name or email.
	// A zero except matches every user.
	Taken(ctx context.Context, name, email string, except primitive.ObjectID) (bool, error)
	Insert(ctx context.Context, u *models.UserModel) error
	Set(ctx context.Context, id primitive.ObjectID, fields bson.M) error
	Delete(ctx context.Context, id primitive.ObjectID) error
}

type mongoRepository struct {
	coll *mongo.Collection
}

func NewMongoRepository(db *mongo.Database) Repository {
	return &mongoRepository{coll: db.Collection(database.CollectionUsers)}
}

func (r *mongoRepository) List(ctx context.Context) ([]models.UserModel, error) {
	opts := options.Find().
		SetSort(bson.D{{Key: "createdAt", Value: -1}}).
		SetProjection(bson.M{"password": 0})
	cur, err := r.coll.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, err
	}
	out := make([]models.UserModel, 0)
	if err := cur.All(ctx, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (r *mongoRepository) FindByID(ctx context.Context, id primitive.ObjectID) (*models.UserModel, error) {
	var u models.UserModel
	err := r.coll.FindOne(ctx, bson.M{"_id": id}).Decode(&u)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, ErrNoDocument
	}
	if err != nil {
		return nil, err
	}
	return &u, nil
}

func (r *mongoRepository) Taken(ctx context.Context, name, email string, except primitive.ObjectID) (bool, error) {
	filter := bson.M{"$or": bson.A{bson.M{"name": name}, bson.M{"email": email}}}
	if !except.IsZero() {
		filter["_id"] = bson.M{"$ne": except}
	}
	err := r.coll.FindOne(ctx, filter, options.FindOne().SetProjection(bson.M{"_id": 1})).Err()
	if errors.Is(err, mongo.ErrNoDocuments) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}

func (r *mongoRepository) Insert(ctx context.Context, u *models.UserModel) error {
	if u.ID.IsZero() {
		u.ID = primitive.NewObjectID()
	}
	_, err := r.coll.InsertOne(ctx, u)
	if mongo.IsDuplicateKeyError(err) {
		return errDuplicate
	}
	return err
}

func (r *mongoRepository) Set(ctx context.Context, id primitive.ObjectID, fields bson.M) error {
	res, err := r.coll.UpdateOne(ctx, bson.M{"_id": id}, bson.M{"$set": fields})
	if mongo.IsDuplicateKeyError(err) {
		return errDuplicate
	}
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return ErrNoDocument
	}
	return nil
}

func (r *mongoRepository) Delete(ctx context.Context, id primitive.ObjectID) error {
	res, err := r.coll.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return ErrNoDocument
	}
	return nil
}
