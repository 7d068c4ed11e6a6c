package database

import (
	"context"
	"fmt"
	"sync"

	"github.com/mx-space/blog-admin/internal/config"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"
)

// Collection names.
const (
	CollectionComments    = "comments"
	CollectionVisitorLogs = "visitor_logs"
	CollectionUsers       = "users"
	CollectionArticles    = "articles"
	CollectionSettings    = "settings"
)

// Store owns the process-wide Mongo client.
type Store struct {
	client *mongo.Client
	db     *mongo.Database
}

var (
	mu     sync.Mutex
	shared *Store
)

// Connect returns the shared store, dialing Mongo on first use. Later calls
// reuse the same client for the lifetime of the process.
func Connect(ctx context.Context, cfg config.MongoConfig) (*Store, error) {
	mu.Lock()
	defer mu.Unlock()
	if shared != nil {
		return shared, nil
	}

	ctx, cancel := context.WithTimeout(ctx, cfg.ConnectTimeout())
	defer cancel()

	opts := options.Client().
		ApplyURI(cfg.URI).
		SetConnectTimeout(cfg.ConnectTimeout()).
		SetServerSelectionTimeout(cfg.ConnectTimeout())
	client, err := mongo.Connect(ctx, opts)
	if err != nil {
		return nil, fmt.Errorf("mongo connect failed: %w", err)
	}
	if err := client.Ping(ctx, readpref.Primary()); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, fmt.Errorf("mongo ping failed: %w", err)
	}

	shared = &Store{client: client, db: client.Database(cfg.Database)}
	return shared, nil
}

// DB returns the configured database handle.
func (s *Store) DB() *mongo.Database { return s.db }

// Ping checks that the primary is reachable.
func (s *Store) Ping(ctx context.Context) error {
	return s.client.Ping(ctx, readpref.Primary())
}

// Close disconnects the shared client and forgets it.
func (s *Store) Close(ctx context.Context) error {
	mu.Lock()
	if shared == s {
		shared = nil
	}
	mu.Unlock()
	return s.client.Disconnect(ctx)
}

// EnsureIndexes creates the indexes the query paths rely on.
func EnsureIndexes(ctx context.Context, db *mongo.Database) error {
	specs := map[string][]mongo.IndexModel{
		CollectionComments: {
			{Keys: bson.D{{Key: "parentId", Value: 1}}},
			{Keys: bson.D{{Key: "postId", Value: 1}, {Key: "createdAt", Value: -1}}},
		},
		CollectionVisitorLogs: {
			{Keys: bson.D{{Key: "timestamp", Value: -1}}},
			{Keys: bson.D{{Key: "userId", Value: 1}}},
			{Keys: bson.D{{Key: "geoInfo.country", Value: 1}}},
		},
		CollectionUsers: {
			{Keys: bson.D{{Key: "email", Value: 1}}},
			{Keys: bson.D{{Key: "name", Value: 1}}},
		},
		CollectionArticles: {
			{Keys: bson.D{{Key: "status", Value: 1}, {Key: "createdAt", Value: -1}}},
		},
	}
	for name, models := range specs {
		if _, err := db.Collection(name).Indexes().CreateMany(ctx, models); err != nil {
			return fmt.Errorf("create indexes on %s: %w", name, err)
		}
	}
	return nil
}
