package comment

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/mx-space/blog-admin/internal/models"
	"github.com/mx-space/blog-admin/internal/pkg/apperr"
	"github.com/mx-space/blog-admin/internal/pkg/metrics"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
)

type Service struct {
	repo    Repository
	logger  *zap.Logger
	metrics *metrics.Metrics
	now     func() time.Time
}

type ServiceOption func(*Service)

// WithLogger sets the logger for the comment service.
func WithLogger(l *zap.Logger) ServiceOption {
	return func(s *Service) {
		if l != nil {
			s.logger = l.Named("CommentService")
		}
	}
}

// WithMetrics records cascading deletes into m.
func WithMetrics(m *metrics.Metrics) ServiceOption {
	return func(s *Service) { s.metrics = m }
}

func NewService(repo Repository, opts ...ServiceOption) *Service {
	s := &Service{repo: repo, logger: zap.NewNop(), now: time.Now}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// DeleteTree removes the comment identified by rawID together with every
// reply below it. Nothing is deleted when the traversal fails.
func (s *Service) DeleteTree(ctx context.Context, rawID string) (*DeleteResult, error) {
	root, err := parseCommentID(rawID)
	if err != nil {
		return nil, err
	}

	tree, err := CollectSubtree(ctx, s.repo, root)
	if err != nil {
		s.logger.Warn("评论树遍历失败", zap.String("id", root.Hex()), zap.Error(err))
		return nil, apperr.Upstream("collect comment subtree", err)
	}

	deleted, err := s.repo.DeleteByIDs(ctx, tree.IDs)
	if err != nil {
		return nil, apperr.Upstream("delete comments", err)
	}
	if deleted == 0 {
		return nil, apperr.NotFound(msgTreeNotFound)
	}

	s.metrics.RecordCommentTreeDelete(deleted, tree.RoundTrips)
	s.logger.Info(fmt.Sprintf("删除评论 %s 及其 %d 条回复", root.Hex(), deleted-1),
		zap.Int("roundTrips", tree.RoundTrips))
	return &DeleteResult{DeletedCount: deleted, RoundTrips: tree.RoundTrips}, nil
}

func (s *Service) List(ctx context.Context, postID string) ([]models.CommentModel, error) {
	list, err := s.repo.List(ctx, strings.TrimSpace(postID))
	if err != nil {
		return nil, apperr.Upstream("list comments", err)
	}
	return list, nil
}

func (s *Service) Get(ctx context.Context, rawID string) (*models.CommentModel, error) {
	id, err := parseCommentID(rawID)
	if err != nil {
		return nil, err
	}
	return s.find(ctx, id, msgNotFound)
}

func (s *Service) find(ctx context.Context, id primitive.ObjectID, notFoundMsg string) (*models.CommentModel, error) {
	cm, err := s.repo.FindByID(ctx, id)
	if errors.Is(err, ErrNoDocument) {
		return nil, apperr.NotFound(notFoundMsg)
	}
	if err != nil {
		return nil, apperr.Upstream("find comment", err)
	}
	return cm, nil
}

// Create stores a new comment. A reply must name an existing parent on the
// same post, which keeps the reply graph acyclic.
func (s *Service) Create(ctx context.Context, dto *CreateCommentDTO) (*models.CommentModel, error) {
	postID := strings.TrimSpace(dto.PostID)
	content := strings.TrimSpace(dto.Content)
	if postID == "" || content == "" {
		return nil, apperr.Validation(msgRequiredFields)
	}
	status, ok := normalizeStatus(dto.Status)
	if !ok {
		return nil, apperr.Validation(msgInvalidStatus)
	}

	now := s.now()
	cm := &models.CommentModel{
		PostID:    postID,
		Content:   content,
		Author:    normalizeAuthor(dto.Author),
		Status:    status,
		CreatedAt: now,
		UpdatedAt: now,
	}

	if raw := strings.TrimSpace(dto.ParentID); raw != "" {
		pid, err := primitive.ObjectIDFromHex(raw)
		if err != nil {
			return nil, apperr.Validation(msgInvalidParentID)
		}
		parent, err := s.find(ctx, pid, msgParentNotFound)
		if err != nil {
			if apperr.KindOf(err) == apperr.KindNotFound {
				return nil, apperr.Validation(msgParentNotFound)
			}
			return nil, err
		}
		if parent.PostID != postID {
			return nil, apperr.Validation(msgParentMismatch)
		}
		ref := models.RefID(pid.Hex())
		cm.ParentID = &ref
	}

	if err := s.repo.Insert(ctx, cm); err != nil {
		return nil, apperr.Upstream("insert comment", err)
	}
	return cm, nil
}

// UpdateContent always bumps updatedAt; content is only replaced when given.
func (s *Service) UpdateContent(ctx context.Context, rawID string, dto *UpdateCommentDTO) (*models.CommentModel, error) {
	id, err := parseCommentID(rawID)
	if err != nil {
		return nil, err
	}
	var patch Patch
	if content := strings.TrimSpace(dto.Content); content != "" {
		patch.Content = &content
	}
	return s.update(ctx, id, patch)
}

func (s *Service) UpdateStatus(ctx context.Context, rawID string, status models.CommentStatus) (*models.CommentModel, error) {
	id, err := parseCommentID(rawID)
	if err != nil {
		return nil, err
	}
	st, ok := normalizeStatus(status)
	if !ok || strings.TrimSpace(string(status)) == "" {
		return nil, apperr.Validation(msgInvalidStatus)
	}
	return s.update(ctx, id, Patch{Status: &st})
}

func (s *Service) update(ctx context.Context, id primitive.ObjectID, patch Patch) (*models.CommentModel, error) {
	patch.UpdatedAt = s.now()
	cm, err := s.repo.Update(ctx, id, patch)
	if errors.Is(err, ErrNoDocument) {
		return nil, apperr.NotFound(msgNotFound)
	}
	if err != nil {
		return nil, apperr.Upstream("update comment", err)
	}
	return cm, nil
}

// CountByPost returns per-article comment counts, largest first.
func (s *Service) CountByPost(ctx context.Context) ([]PostCount, error) {
	counts, err := s.repo.CountByPost(ctx)
	if err != nil {
		return nil, apperr.Upstream("count comments", err)
	}
	return counts, nil
}
