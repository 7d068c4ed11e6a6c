package article

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/mx-space/blog-admin/internal/models"
	"github.com/mx-space/blog-admin/internal/modules/gateway/revalidate"
	"github.com/mx-space/blog-admin/internal/modules/processing/markdown"
	"github.com/mx-space/blog-admin/internal/pkg/apperr"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
)

// Revalidator purges frontend caches after article changes.
type Revalidator interface {
	Revalidate(ctx context.Context, targets ...revalidate.Target) error
}

// timeNow is swapped in tests.
var timeNow = time.Now

type Service struct {
	repo       Repository
	revalidate Revalidator
	logger     *zap.Logger
}

type ServiceOption func(*Service)

func WithLogger(l *zap.Logger) ServiceOption {
	return func(s *Service) {
		if l != nil {
			s.logger = l.Named("ArticleService")
		}
	}
}

// WithRevalidator enables frontend revalidation. Failures are logged only.
func WithRevalidator(r Revalidator) ServiceOption {
	return func(s *Service) { s.revalidate = r }
}

func NewService(repo Repository, opts ...ServiceOption) *Service {
	s := &Service{repo: repo, logger: zap.NewNop()}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *Service) List(ctx context.Context) ([]models.ArticleModel, error) {
	list, err := s.repo.List(ctx)
	if err != nil {
		return nil, apperr.Upstream("list articles", err)
	}
	return list, nil
}

func (s *Service) Get(ctx context.Context, rawID string) (*models.ArticleModel, error) {
	id, err := parseID(rawID)
	if err != nil {
		return nil, err
	}
	a, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, mapStoreErr("find article", err)
	}
	return a, nil
}

func (s *Service) Create(ctx context.Context, dto *ArticleDTO) (*models.ArticleModel, error) {
	fields, err := validate(dto)
	if err != nil {
		return nil, err
	}
	a := &models.ArticleModel{
		Title:      fields.Title,
		Content:    fields.Content,
		Summary:    fields.Summary,
		Tags:       fields.Tags,
		CoverImage: fields.CoverImage,
		Status:     fields.Status,
		CreatedAt:  timeNow(),
	}
	if err := s.repo.Insert(ctx, a); err != nil {
		return nil, apperr.Upstream("insert article", err)
	}
	s.notify(ctx, a.ID.Hex())
	return a, nil
}

func (s *Service) Update(ctx context.Context, rawID string, dto *ArticleDTO) error {
	id, err := parseID(rawID)
	if err != nil {
		return err
	}
	fields, err := validate(dto)
	if err != nil {
		return err
	}
	set := bson.M{
		"title":      fields.Title,
		"content":    fields.Content,
		"summary":    fields.Summary,
		"tags":       fields.Tags,
		"coverImage": fields.CoverImage,
		"status":     fields.Status,
		"updatedAt":  timeNow(),
	}
	if err := s.repo.Set(ctx, id, set); err != nil {
		return mapStoreErr("update article", err)
	}
	s.notify(ctx, id.Hex())
	return nil
}

func (s *Service) Delete(ctx context.Context, rawID string) error {
	id, err := parseID(rawID)
	if err != nil {
		return err
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return mapStoreErr("delete article", err)
	}
	s.notify(ctx, id.Hex())
	return nil
}

// ResetCreatedTime moves an article's creation time to now, which puts it
// back at the top of date-sorted listings.
func (s *Service) ResetCreatedTime(ctx context.Context, rawID string) (time.Time, error) {
	id, err := parseID(rawID)
	if err != nil {
		return time.Time{}, err
	}
	now := timeNow()
	if err := s.repo.Set(ctx, id, bson.M{"createdAt": now}); err != nil {
		return time.Time{}, mapStoreErr("reset article time", err)
	}
	s.notify(ctx, id.Hex())
	return now, nil
}

func (s *Service) notify(ctx context.Context, id string) {
	if s.revalidate == nil {
		return
	}
	if err := s.revalidate.Revalidate(ctx, revalidate.ArticleTargets(id)...); err != nil {
		s.logger.Warn("文章缓存刷新失败", zap.String("id", id), zap.Error(err))
	}
}

func parseID(raw string) (primitive.ObjectID, error) {
	id, err := primitive.ObjectIDFromHex(strings.TrimSpace(raw))
	if err != nil {
		return primitive.NilObjectID, apperr.InvalidID(msgInvalidID)
	}
	return id, nil
}

func mapStoreErr(op string, err error) error {
	if errors.Is(err, ErrNoDocument) {
		return apperr.NotFound(msgNotFound)
	}
	return apperr.Upstream(op, err)
}

// validate trims dto and fills the summary, tags and status defaults.
func validate(dto *ArticleDTO) (ArticleDTO, error) {
	out := ArticleDTO{
		Title:      strings.TrimSpace(dto.Title),
		Content:    dto.Content,
		Summary:    strings.TrimSpace(dto.Summary),
		CoverImage: strings.TrimSpace(dto.CoverImage),
		Status:     strings.ToLower(strings.TrimSpace(dto.Status)),
		Tags:       make([]string, 0, len(dto.Tags)),
	}
	if out.Title == "" || strings.TrimSpace(out.Content) == "" {
		return out, apperr.Validation(msgRequiredFields)
	}
	switch out.Status {
	case "":
		out.Status = models.ArticlePublished
	case models.ArticlePublished, models.ArticleDraft:
	default:
		return out, apperr.Validation(msgInvalidStatus)
	}
	if out.Summary == "" {
		out.Summary = markdown.Excerpt(out.Content, markdown.DefaultExcerptRunes)
	}
	seen := make(map[string]struct{}, len(dto.Tags))
	for _, tag := range dto.Tags {
		tag = strings.TrimSpace(tag)
		if tag == "" {
			continue
		}
		if _, ok := seen[tag]; ok {
			continue
		}
		seen[tag] = struct{}{}
		out.Tags = append(out.Tags, tag)
	}
	return out, nil
}
