package settings

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/mx-space/blog-admin/internal/models"
	"github.com/mx-space/blog-admin/internal/pkg/apperr"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// MockRepository is a function-field Repository. Unset fields panic.
type MockRepository struct {
	FindFunc           func(ctx context.Context) (*models.SettingsModel, error)
	InsertFunc         func(ctx context.Context, s *models.SettingsModel) error
	UpsertArticlesFunc func(ctx context.Context, a models.ArticleSettings) error
}

func (m *MockRepository) Find(ctx context.Context) (*models.SettingsModel, error) {
	return m.FindFunc(ctx)
}

func (m *MockRepository) Insert(ctx context.Context, s *models.SettingsModel) error {
	return m.InsertFunc(ctx, s)
}

func (m *MockRepository) UpsertArticles(ctx context.Context, a models.ArticleSettings) error {
	return m.UpsertArticlesFunc(ctx, a)
}

type memRepository struct {
	mu      sync.Mutex
	doc     *models.SettingsModel
	finds   int
	inserts int
}

func (r *memRepository) Find(context.Context) (*models.SettingsModel, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.finds++
	if r.doc == nil {
		return nil, ErrNoDocument
	}
	out := *r.doc
	return &out, nil
}

func (r *memRepository) Insert(_ context.Context, s *models.SettingsModel) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.inserts++
	doc := *s
	r.doc = &doc
	return nil
}

func (r *memRepository) UpsertArticles(_ context.Context, a models.ArticleSettings) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.doc == nil {
		r.doc = &models.SettingsModel{}
	}
	r.doc.Articles = a
	return nil
}

func boolPtr(v bool) *bool { return &v }

func TestGet_InsertsDefaultsOnce(t *testing.T) {
	repo := &memRepository{}
	svc := NewService(repo)

	s, err := svc.Get(context.Background())
	require.NoError(t, err)
	assert.Equal(t, models.DefaultSettings().Articles, s.Articles)
	assert.Equal(t, 1, repo.inserts)

	_, err = svc.Get(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, repo.inserts)
	assert.Equal(t, 1, repo.finds)
}

func TestGet_ReturnsStored(t *testing.T) {
	repo := &memRepository{doc: &models.SettingsModel{Articles: models.ArticleSettings{DefaultAllowComments: true}}}

	s, err := NewService(repo).Get(context.Background())
	require.NoError(t, err)
	assert.False(t, s.Articles.DefaultShowViewCount)
	assert.True(t, s.Articles.DefaultAllowComments)
	assert.Equal(t, 0, repo.inserts)
}

func TestGet_StoreFailure(t *testing.T) {
	repo := &MockRepository{
		FindFunc: func(context.Context) (*models.SettingsModel, error) { return nil, errors.New("timeout") },
	}
	_, err := NewService(repo).Get(context.Background())
	assert.ErrorIs(t, err, apperr.ErrUpstream)
}

func TestUpdateArticles(t *testing.T) {
	repo := &memRepository{}
	svc := NewService(repo)
	_, err := svc.Get(context.Background())
	require.NoError(t, err)

	a, err := svc.UpdateArticles(context.Background(), &UpdateDTO{Articles: &ArticlesDTO{
		DefaultShowViewCount:    boolPtr(false),
		DefaultShowCommentCount: boolPtr(true),
		DefaultAllowComments:    boolPtr(false),
	}})
	require.NoError(t, err)
	assert.False(t, a.DefaultShowViewCount)

	s, err := svc.Get(context.Background())
	require.NoError(t, err)
	assert.Equal(t, a, s.Articles)
	assert.Equal(t, 2, repo.finds)
}

func TestUpdateArticles_RequiresEveryFlag(t *testing.T) {
	svc := NewService(&MockRepository{})

	_, err := svc.UpdateArticles(context.Background(), &UpdateDTO{})
	assert.ErrorIs(t, err, apperr.ErrValidation)

	_, err = svc.UpdateArticles(context.Background(), &UpdateDTO{Articles: &ArticlesDTO{
		DefaultShowViewCount:    boolPtr(true),
		DefaultShowCommentCount: boolPtr(true),
	}})
	require.ErrorIs(t, err, apperr.ErrValidation)
	assert.Contains(t, err.Error(), "defaultAllowComments")
}
