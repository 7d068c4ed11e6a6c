package comment

import (
	"context"
	"sync"

	"github.com/mx-space/blog-admin/internal/models"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// MockRepository is a function-field Repository. Unset fields panic.
type MockRepository struct {
	FindByIDFunc    func(ctx context.Context, id primitive.ObjectID) (*models.CommentModel, error)
	ListFunc        func(ctx context.Context, postID string) ([]models.CommentModel, error)
	InsertFunc      func(ctx context.Context, cm *models.CommentModel) error
	UpdateFunc      func(ctx context.Context, id primitive.ObjectID, patch Patch) (*models.CommentModel, error)
	ChildIDsFunc    func(ctx context.Context, parents []primitive.ObjectID) ([]primitive.ObjectID, error)
	DeleteByIDsFunc func(ctx context.Context, ids []primitive.ObjectID) (int64, error)
	CountByPostFunc func(ctx context.Context) ([]PostCount, error)
}

func (m *MockRepository) FindByID(ctx context.Context, id primitive.ObjectID) (*models.CommentModel, error) {
	return m.FindByIDFunc(ctx, id)
}

func (m *MockRepository) List(ctx context.Context, postID string) ([]models.CommentModel, error) {
	return m.ListFunc(ctx, postID)
}

func (m *MockRepository) Insert(ctx context.Context, cm *models.CommentModel) error {
	return m.InsertFunc(ctx, cm)
}

func (m *MockRepository) Update(ctx context.Context, id primitive.ObjectID, patch Patch) (*models.CommentModel, error) {
	return m.UpdateFunc(ctx, id, patch)
}

func (m *MockRepository) ChildIDs(ctx context.Context, parents []primitive.ObjectID) ([]primitive.ObjectID, error) {
	return m.ChildIDsFunc(ctx, parents)
}

func (m *MockRepository) DeleteByIDs(ctx context.Context, ids []primitive.ObjectID) (int64, error) {
	return m.DeleteByIDsFunc(ctx, ids)
}

func (m *MockRepository) CountByPost(ctx context.Context) ([]PostCount, error) {
	return m.CountByPostFunc(ctx)
}

// memRepository keeps comments in memory and counts store calls.
type memRepository struct {
	mu          sync.Mutex
	docs        map[primitive.ObjectID]models.CommentModel
	childCalls  int
	deleteCalls int
}

func newMemRepository(docs ...models.CommentModel) *memRepository {
	r := &memRepository{docs: make(map[primitive.ObjectID]models.CommentModel)}
	for _, d := range docs {
		r.docs[d.ID] = d
	}
	return r
}

func (r *memRepository) FindByID(_ context.Context, id primitive.ObjectID) (*models.CommentModel, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	d, ok := r.docs[id]
	if !ok {
		return nil, ErrNoDocument
	}
	return &d, nil
}

func (r *memRepository) List(_ context.Context, postID string) ([]models.CommentModel, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]models.CommentModel, 0)
	for _, d := range r.docs {
		if postID == "" || d.PostID == postID {
			out = append(out, d)
		}
	}
	return out, nil
}

func (r *memRepository) Insert(_ context.Context, cm *models.CommentModel) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if cm.ID.IsZero() {
		cm.ID = primitive.NewObjectID()
	}
	r.docs[cm.ID] = *cm
	return nil
}

func (r *memRepository) Update(_ context.Context, id primitive.ObjectID, patch Patch) (*models.CommentModel, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	d, ok := r.docs[id]
	if !ok {
		return nil, ErrNoDocument
	}
	if patch.Content != nil {
		d.Content = *patch.Content
	}
	if patch.Status != nil {
		d.Status = *patch.Status
	}
	d.UpdatedAt = patch.UpdatedAt
	r.docs[id] = d
	return &d, nil
}

func (r *memRepository) ChildIDs(_ context.Context, parents []primitive.ObjectID) ([]primitive.ObjectID, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.childCalls++
	want := make(map[string]struct{}, len(parents))
	for _, p := range parents {
		want[p.Hex()] = struct{}{}
	}
	var out []primitive.ObjectID
	for id, d := range r.docs {
		if d.ParentID == nil {
			continue
		}
		if _, ok := want[string(*d.ParentID)]; ok {
			out = append(out, id)
		}
	}
	return out, nil
}

func (r *memRepository) DeleteByIDs(_ context.Context, ids []primitive.ObjectID) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.deleteCalls++
	var n int64
	for _, id := range ids {
		if _, ok := r.docs[id]; ok {
			delete(r.docs, id)
			n++
		}
	}
	return n, nil
}

func (r *memRepository) CountByPost(_ context.Context) ([]PostCount, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	counts := map[string]int64{}
	for _, d := range r.docs {
		counts[d.PostID]++
	}
	out := make([]PostCount, 0, len(counts))
	for k, v := range counts {
		out = append(out, PostCount{ArticleID: k, Count: v})
	}
	return out, nil
}

func (r *memRepository) size() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.docs)
}

func reply(postID string, parent *models.CommentModel) models.CommentModel {
	cm := models.CommentModel{ID: primitive.NewObjectID(), PostID: postID, Content: "x", Status: models.CommentApproved}
	if parent != nil {
		ref := models.RefID(parent.ID.Hex())
		cm.ParentID = &ref
	}
	return cm
}
