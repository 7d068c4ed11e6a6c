package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// CommentStatus is the moderation state of a comment.
type CommentStatus string

const (
	CommentPending  CommentStatus = "pending"
	CommentApproved CommentStatus = "approved"
	CommentRejected CommentStatus = "rejected"
)

// AnonymousAuthorName is used when a comment is submitted without an author.
const AnonymousAuthorName = "匿名用户"

// Valid reports whether s is a known moderation state.
func (s CommentStatus) Valid() bool {
	switch s {
	case CommentPending, CommentApproved, CommentRejected:
		return true
	}
	return false
}

// CommentAuthor is the embedded author of a comment.
type CommentAuthor struct {
	Name    string `bson:"name"              json:"name"`
	Email   string `bson:"email,omitempty"   json:"email,omitempty"`
	Avatar  string `bson:"avatar,omitempty"  json:"avatar,omitempty"`
	Website string `bson:"website,omitempty" json:"website,omitempty"`
}

// CommentModel is a document of the comments collection. ParentID holds the
// id of the parent comment (string or ObjectID in storage); nil marks a root
// comment.
type CommentModel struct {
	ID        primitive.ObjectID `bson:"_id,omitempty"      json:"_id"`
	PostID    string             `bson:"postId"             json:"postId"`
	ParentID  *RefID             `bson:"parentId,omitempty" json:"parentId,omitempty"`
	Content   string             `bson:"content"            json:"content"`
	Author    CommentAuthor      `bson:"author"             json:"author"`
	Status    CommentStatus      `bson:"status"             json:"status"`
	CreatedAt time.Time          `bson:"createdAt"          json:"createdAt"`
	UpdatedAt time.Time          `bson:"updatedAt"          json:"updatedAt"`
}
