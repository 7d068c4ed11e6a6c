package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

const (
	RoleAdmin = "admin"
	RoleUser  = "user"

	UserStatusActive = "active"
)

// UserModel is a document of the users collection.
type UserModel struct {
	ID         primitive.ObjectID `bson:"_id,omitempty"       json:"_id"`
	Name       string             `bson:"name"                json:"name"`
	Username   string             `bson:"username,omitempty"  json:"username,omitempty"`
	Email      string             `bson:"email"               json:"email"`
	Password   string             `bson:"password,omitempty"  json:"-"`
	Role       string             `bson:"role"                json:"role"`
	Status     string             `bson:"status"              json:"status"`
	Avatar     *string            `bson:"avatar"              json:"avatar"`
	Permission string             `bson:"permission"          json:"permission"`
	CreatedAt  time.Time          `bson:"createdAt"           json:"createdAt"`
	UpdatedAt  *time.Time         `bson:"updatedAt,omitempty" json:"updatedAt,omitempty"`
}
