package comment

import (
	"time"

	"github.com/mx-space/blog-admin/internal/models"
)

const (
	msgInvalidID       = "无效的评论ID格式"
	msgInvalidParentID = "无效的父评论ID格式"
	msgNotFound        = "评论不存在"
	msgTreeNotFound    = "评论不存在或已被删除"
	msgParentNotFound  = "父评论不存在"
	msgParentMismatch  = "父评论不属于该文章"
	msgRequiredFields  = "文章ID和评论内容为必填项"
	msgInvalidStatus   = "无效的评论状态"
)

type CreateCommentDTO struct {
	PostID   string                `json:"postId"`
	ParentID string                `json:"parentId"`
	Content  string                `json:"content"`
	Author   *models.CommentAuthor `json:"author"`
	Status   models.CommentStatus  `json:"status"`
}

type UpdateCommentDTO struct {
	Content string `json:"content"`
}

type UpdateStatusDTO struct {
	Status models.CommentStatus `json:"status" binding:"required"`
}

// Patch is the set of fields an update writes. UpdatedAt is always set.
type Patch struct {
	Content   *string
	Status    *models.CommentStatus
	UpdatedAt time.Time
}

// PostCount is the number of comments attached to one article.
type PostCount struct {
	ArticleID string `bson:"articleId" json:"articleId"`
	Count     int64  `bson:"count"     json:"count"`
}

// DeleteResult reports a finished cascading delete.
type DeleteResult struct {
	DeletedCount int64 `json:"deletedCount"`
	RoundTrips   int   `json:"-"`
}
