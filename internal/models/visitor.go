package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// GeoInfo is the lazily filled location of a visitor entry.
type GeoInfo struct {
	Country     string `bson:"country"     json:"country"`
	CountryCode string `bson:"countryCode" json:"countryCode"`
	Region      string `bson:"region"      json:"region"`
	City        string `bson:"city"        json:"city"`
}

// VisitorLogModel is a document of the visitor_logs collection.
type VisitorLogModel struct {
	ID        primitive.ObjectID `bson:"_id,omitempty"     json:"_id"`
	Timestamp time.Time          `bson:"timestamp"         json:"timestamp"`
	IP        string             `bson:"ip"                json:"ip"`
	UserAgent string             `bson:"userAgent"         json:"userAgent"`
	Path      string             `bson:"path"              json:"path"`
	Referer   string             `bson:"referer,omitempty" json:"referer,omitempty"`
	UserID    RefID              `bson:"userId,omitempty"  json:"userId,omitempty"`
	GeoInfo   *GeoInfo           `bson:"geoInfo,omitempty" json:"geoInfo,omitempty"`
}
