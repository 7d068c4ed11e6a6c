package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

const (
	ArticlePublished = "published"
	ArticleDraft     = "draft"
)

// ArticleModel is a document of the articles collection.
type ArticleModel struct {
	ID         primitive.ObjectID `bson:"_id,omitempty"        json:"_id"`
	Title      string             `bson:"title"                json:"title"`
	Summary    string             `bson:"summary"              json:"summary"`
	Content    string             `bson:"content"              json:"content"`
	Tags       []string           `bson:"tags"                 json:"tags"`
	CoverImage string             `bson:"coverImage,omitempty" json:"coverImage,omitempty"`
	Status     string             `bson:"status,omitempty"     json:"status,omitempty"`
	ViewCount  int64              `bson:"viewCount"            json:"viewCount"`
	CreatedAt  time.Time          `bson:"createdAt"            json:"createdAt"`
	UpdatedAt  *time.Time         `bson:"updatedAt,omitempty"  json:"updatedAt,omitempty"`
}
