package article

import (
	"context"
	"sort"
	"sync"

	"github.com/mx-space/blog-admin/internal/models"
	"github.com/mx-space/blog-admin/internal/modules/gateway/revalidate"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// MockRepository is a function-field Repository. Unset fields panic.
type MockRepository struct {
	ListFunc     func(ctx context.Context) ([]models.ArticleModel, error)
	FindByIDFunc func(ctx context.Context, id primitive.ObjectID) (*models.ArticleModel, error)
	InsertFunc   func(ctx context.Context, a *models.ArticleModel) error
	SetFunc      func(ctx context.Context, id primitive.ObjectID, fields bson.M) error
	DeleteFunc   func(ctx context.Context, id primitive.ObjectID) error
}

func (m *MockRepository) List(ctx context.Context) ([]models.ArticleModel, error) {
	return m.ListFunc(ctx)
}

func (m *MockRepository) FindByID(ctx context.Context, id primitive.ObjectID) (*models.ArticleModel, error) {
	return m.FindByIDFunc(ctx, id)
}

func (m *MockRepository) Insert(ctx context.Context, a *models.ArticleModel) error {
	return m.InsertFunc(ctx, a)
}

func (m *MockRepository) Set(ctx context.Context, id primitive.ObjectID, fields bson.M) error {
	return m.SetFunc(ctx, id, fields)
}

func (m *MockRepository) Delete(ctx context.Context, id primitive.ObjectID) error {
	return m.DeleteFunc(ctx, id)
}

// memRepository keeps articles in memory.
type memRepository struct {
	mu   sync.Mutex
	docs map[primitive.ObjectID]models.ArticleModel
}

func newMemRepository(docs ...models.ArticleModel) *memRepository {
	r := &memRepository{docs: make(map[primitive.ObjectID]models.ArticleModel)}
	for _, d := range docs {
		r.docs[d.ID] = d
	}
	return r
}

func (r *memRepository) List(context.Context) ([]models.ArticleModel, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]models.ArticleModel, 0, len(r.docs))
	for _, d := range r.docs {
		out = append(out, d)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}

func (r *memRepository) FindByID(_ context.Context, id primitive.ObjectID) (*models.ArticleModel, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	d, ok := r.docs[id]
	if !ok {
		return nil, ErrNoDocument
	}
	return &d, nil
}

func (r *memRepository) Insert(_ context.Context, a *models.ArticleModel) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if a.ID.IsZero() {
		a.ID = primitive.NewObjectID()
	}
	r.docs[a.ID] = *a
	return nil
}

func (r *memRepository) Set(_ context.Context, id primitive.ObjectID, fields bson.M) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	d, ok := r.docs[id]
	if !ok {
		return ErrNoDocument
	}
	raw, err := bson.Marshal(d)
	if err != nil {
		return err
	}
	var m bson.M
	if err := bson.Unmarshal(raw, &m); err != nil {
		return err
	}
	for k, v := range fields {
		m[k] = v
	}
	raw, err = bson.Marshal(m)
	if err != nil {
		return err
	}
	var updated models.ArticleModel
	if err := bson.Unmarshal(raw, &updated); err != nil {
		return err
	}
	r.docs[id] = updated
	return nil
}

func (r *memRepository) Delete(_ context.Context, id primitive.ObjectID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.docs[id]; !ok {
		return ErrNoDocument
	}
	delete(r.docs, id)
	return nil
}

// recordingRevalidator remembers every revalidated path.
type recordingRevalidator struct {
	mu    sync.Mutex
	paths []string
	err   error
}

func (r *recordingRevalidator) Revalidate(_ context.Context, targets ...revalidate.Target) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, t := range targets {
		r.paths = append(r.paths, t.Path)
	}
	return r.err
}
