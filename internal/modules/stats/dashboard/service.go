// Package dashboard aggregates article statistics for the admin home page.
package dashboard

import (
	"context"
	"time"

	"github.com/mx-space/blog-admin/internal/models"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

const (
	topTagLimit  = 10
	articleLimit = 5
)

type TagStat struct {
	Name  string `bson:"_id"   json:"name"`
	Count int64  `bson:"count" json:"count"`
}

// ArticleCard is the projection shown in the recent and popular lists.
type ArticleCard struct {
	ID        primitive.ObjectID `bson:"_id"       json:"_id"`
	Title     string             `bson:"title"     json:"title"`
	Summary   string             `bson:"summary"   json:"summary"`
	Tags      []string           `bson:"tags"      json:"tags"`
	ViewCount int64              `bson:"viewCount" json:"viewCount"`
	CreatedAt time.Time          `bson:"createdAt" json:"createdAt"`
}

type Stats struct {
	TotalArticles     int64 `json:"totalArticles"`
	PublishedArticles int64 `json:"publishedArticles"`
	DraftArticles     int64 `json:"draftArticles"`
	TotalViews        int64 `json:"totalViews"`
}

type Overview struct {
	Stats           Stats         `json:"stats"`
	TagStats        []TagStat     `json:"tagStats"`
	RecentArticles  []ArticleCard `json:"recentArticles"`
	PopularArticles []ArticleCard `json:"popularArticles"`
}

type Service struct {
	src    Source
	logger *zap.Logger
}

type ServiceOption func(*Service)

func WithLogger(l *zap.Logger) ServiceOption {
	return func(s *Service) {
		if l != nil {
			s.logger = l.Named("DashboardService")
		}
	}
}

func NewService(src Source, opts ...ServiceOption) *Service {
	s := &Service{src: src, logger: zap.NewNop()}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Overview runs every query concurrently. A failed query leaves its part at
// the zero value and is logged; it never fails the whole overview.
func (s *Service) Overview(ctx context.Context) *Overview {
	out := &Overview{
		TagStats:        []TagStat{},
		RecentArticles:  []ArticleCard{},
		PopularArticles: []ArticleCard{},
	}

	var g errgroup.Group
	settle := func(name string, fn func() error) {
		g.Go(func() error {
			if err := fn(); err != nil {
				s.logger.Warn("仪表盘查询失败", zap.String("query", name), zap.Error(err))
			}
			return nil
		})
	}

	settle("totalArticles", func() (err error) {
		out.Stats.TotalArticles, err = s.src.CountArticles(ctx, "")
		return err
	})
	settle("publishedArticles", func() (err error) {
		out.Stats.PublishedArticles, err = s.src.CountArticles(ctx, models.ArticlePublished)
		return err
	})
	settle("draftArticles", func() (err error) {
		out.Stats.DraftArticles, err = s.src.CountArticles(ctx, models.ArticleDraft)
		return err
	})
	settle("totalViews", func() (err error) {
		out.Stats.TotalViews, err = s.src.TotalViews(ctx)
		return err
	})
	settle("tagStats", func() error {
		tags, err := s.src.TopTags(ctx, topTagLimit)
		if err == nil && tags != nil {
			out.TagStats = tags
		}
		return err
	})
	settle("recentArticles", func() error {
		list, err := s.src.PublishedArticles(ctx, "createdAt", articleLimit)
		if err == nil && list != nil {
			out.RecentArticles = list
		}
		return err
	})
	settle("popularArticles", func() error {
		list, err := s.src.PublishedArticles(ctx, "viewCount", articleLimit)
		if err == nil && list != nil {
			out.PopularArticles = list
		}
		return err
	})

	_ = g.Wait()
	return out
}
