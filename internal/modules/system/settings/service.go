// Package settings keeps the admin panel's article defaults in a single
// document, created with defaults on first read.
package settings

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/mx-space/blog-admin/internal/models"
	"github.com/mx-space/blog-admin/internal/pkg/apperr"
	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"
)

const (
	msgArticlesRequired = "缺少文章设置字段"
	msgMalformed        = "系统设置格式不正确"
)

// ArticlesDTO carries the three article flags; nil means missing.
type ArticlesDTO struct {
	DefaultShowViewCount    *bool `json:"defaultShowViewCount"`
	DefaultShowCommentCount *bool `json:"defaultShowCommentCount"`
	DefaultAllowComments    *bool `json:"defaultAllowComments"`
}

type UpdateDTO struct {
	Articles *ArticlesDTO `json:"articles"`
}

// Service caches the settings document after the first load.
type Service struct {
	repo   Repository
	logger *zap.Logger

	mu     sync.RWMutex
	cached *models.SettingsModel
	group  singleflight.Group
}

type ServiceOption func(*Service)

func WithLogger(l *zap.Logger) ServiceOption {
	return func(s *Service) {
		if l != nil {
			s.logger = l.Named("SettingsService")
		}
	}
}

func NewService(repo Repository, opts ...ServiceOption) *Service {
	s := &Service{repo: repo, logger: zap.NewNop()}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Get returns the settings, inserting the defaults when none are stored.
// Concurrent cold reads share one load.
func (s *Service) Get(ctx context.Context) (*models.SettingsModel, error) {
	if cur := s.cachedCopy(); cur != nil {
		return cur, nil
	}

	val, err, _ := s.group.Do("settings", func() (any, error) {
		if cur := s.cachedCopy(); cur != nil {
			return cur, nil
		}
		current, err := s.load(ctx)
		if err != nil {
			return nil, err
		}
		s.mu.Lock()
		s.cached = current
		s.mu.Unlock()
		return current, nil
	})
	if err != nil {
		return nil, err
	}
	out := *val.(*models.SettingsModel)
	return &out, nil
}

func (s *Service) cachedCopy() *models.SettingsModel {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.cached == nil {
		return nil
	}
	out := *s.cached
	return &out
}

func (s *Service) load(ctx context.Context) (*models.SettingsModel, error) {
	current, err := s.repo.Find(ctx)
	if errors.Is(err, ErrNoDocument) {
		defaults := models.DefaultSettings()
		if err := s.repo.Insert(ctx, &defaults); err != nil {
			return nil, apperr.Upstream("insert default settings", err)
		}
		s.logger.Info("已写入默认系统设置")
		return &defaults, nil
	}
	if err != nil {
		return nil, apperr.Upstream("load settings", err)
	}
	return current, nil
}

// UpdateArticles validates and upserts the article flags.
func (s *Service) UpdateArticles(ctx context.Context, dto *UpdateDTO) (models.ArticleSettings, error) {
	a, err := dto.articleSettings()
	if err != nil {
		return models.ArticleSettings{}, err
	}
	if err := s.repo.UpsertArticles(ctx, a); err != nil {
		return models.ArticleSettings{}, apperr.Upstream("save settings", err)
	}

	s.mu.Lock()
	s.cached = nil
	s.mu.Unlock()
	return a, nil
}

func (d *UpdateDTO) articleSettings() (models.ArticleSettings, error) {
	if d == nil || d.Articles == nil {
		return models.ArticleSettings{}, apperr.Validation(msgArticlesRequired)
	}
	fields := []struct {
		name  string
		value *bool
	}{
		{"defaultShowViewCount", d.Articles.DefaultShowViewCount},
		{"defaultShowCommentCount", d.Articles.DefaultShowCommentCount},
		{"defaultAllowComments", d.Articles.DefaultAllowComments},
	}
	for _, f := range fields {
		if f.value == nil {
			return models.ArticleSettings{}, apperr.Validation(fmt.Sprintf("文章设置中缺少%s字段或类型不正确", f.name))
		}
	}
	return models.ArticleSettings{
		DefaultShowViewCount:    *d.Articles.DefaultShowViewCount,
		DefaultShowCommentCount: *d.Articles.DefaultShowCommentCount,
		DefaultAllowComments:    *d.Articles.DefaultAllowComments,
	}, nil
}
