package models

import "go.mongodb.org/mongo-driver/bson/primitive"

// ArticleSettings are the per-article defaults of the admin panel.
type ArticleSettings struct {
	DefaultShowViewCount    bool `bson:"defaultShowViewCount"    json:"defaultShowViewCount"`
	DefaultShowCommentCount bool `bson:"defaultShowCommentCount" json:"defaultShowCommentCount"`
	DefaultAllowComments    bool `bson:"defaultAllowComments"    json:"defaultAllowComments"`
}

// SettingsModel is the singleton document of the settings collection.
type SettingsModel struct {
	ID       primitive.ObjectID `bson:"_id,omitempty" json:"_id,omitempty"`
	Articles ArticleSettings    `bson:"articles"      json:"articles"`
}

// DefaultSettings returns the settings inserted on first read.
func DefaultSettings() SettingsModel {
	return SettingsModel{
		Articles: ArticleSettings{
			DefaultShowViewCount:    true,
			DefaultShowCommentCount: true,
			DefaultAllowComments:    true,
		},
	}
}
