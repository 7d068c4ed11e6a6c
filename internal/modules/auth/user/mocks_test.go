package user

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/mx-space/blog-admin/internal/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// MockRepository is a function-field Repository. Unset fields panic.
type MockRepository struct {
	ListFunc     func(ctx context.Context) ([]models.UserModel, error)
	FindByIDFunc func(ctx context.Context, id primitive.ObjectID) (*models.UserModel, error)
	TakenFunc    func(ctx context.Context, name, email string, except primitive.ObjectID) (bool, error)
	InsertFunc   func(ctx context.Context, u *models.UserModel) error
	SetFunc      func(ctx context.Context, id primitive.ObjectID, fields bson.M) error
	DeleteFunc   func(ctx context.Context, id primitive.ObjectID) error
}

func (m *MockRepository) List(ctx context.Context) ([]models.UserModel, error) {
	return m.ListFunc(ctx)
}

func (m *MockRepository) FindByID(ctx context.Context, id primitive.ObjectID) (*models.UserModel, error) {
	return m.FindByIDFunc(ctx, id)
}

func (m *MockRepository) Taken(ctx context.Context, name, email string, except primitive.ObjectID) (bool, error) {
	return m.TakenFunc(ctx, name, email, except)
}

func (m *MockRepository) Insert(ctx context.Context, u *models.UserModel) error {
	return m.InsertFunc(ctx, u)
}

func (m *MockRepository) Set(ctx context.Context, id primitive.ObjectID, fields bson.M) error {
	return m.SetFunc(ctx, id, fields)
}

func (m *MockRepository) Delete(ctx context.Context, id primitive.ObjectID) error {
	return m.DeleteFunc(ctx, id)
}

type memRepository struct {
	mu   sync.Mutex
	docs map[primitive.ObjectID]models.UserModel
}

func newMemRepository(docs ...models.UserModel) *memRepository {
	r := &memRepository{docs: make(map[primitive.ObjectID]models.UserModel)}
	for _, d := range docs {
		r.docs[d.ID] = d
	}
	return r
}

func (r *memRepository) List(context.Context) ([]models.UserModel, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]models.UserModel, 0, len(r.docs))
	for _, d := range r.docs {
		out = append(out, d)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}

func (r *memRepository) FindByID(_ context.Context, id primitive.ObjectID) (*models.UserModel, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	d, ok := r.docs[id]
	if !ok {
		return nil, ErrNoDocument
	}
	return &d, nil
}

func (r *memRepository) Taken(_ context.Context, name, email string, except primitive.ObjectID) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for id, d := range r.docs {
		if id == except {
			continue
		}
		if d.Name == name || d.Email == email {
			return true, nil
		}
	}
	return false, nil
}

func (r *memRepository) Insert(_ context.Context, u *models.UserModel) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if u.ID.IsZero() {
		u.ID = primitive.NewObjectID()
	}
	r.docs[u.ID] = *u
	return nil
}

func (r *memRepository) Set(_ context.Context, id primitive.ObjectID, fields bson.M) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	d, ok := r.docs[id]
	if !ok {
		return ErrNoDocument
	}
	for k, v := range fields {
		switch k {
		case "name":
			d.Name = v.(string)
		case "username":
			d.Username = v.(string)
		case "email":
			d.Email = v.(string)
		case "password":
			d.Password = v.(string)
		case "role":
			d.Role = v.(string)
		case "status":
			d.Status = v.(string)
		case "permission":
			d.Permission = v.(string)
		case "avatar":
			avatar := v.(string)
			d.Avatar = &avatar
		case "updatedAt":
			at := v.(time.Time)
			d.UpdatedAt = &at
		}
	}
	r.docs[id] = d
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
