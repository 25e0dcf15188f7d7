// internal/domain/models/location.go
package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Location is shared: any number of companies may reference the same
// document. Dedup on insert is exact-match over the submitted fields.
type Location struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"_id,omitempty"`
	Country   string             `bson:"country" json:"country"`
	State     string             `bson:"state" json:"state"`
	City      string             `bson:"city" json:"city"`
	Latitude  float64            `bson:"latitude" json:"latitude"`
	Longitude float64            `bson:"longitude" json:"longitude"`
	Upvotes   int64              `bson:"upvotes" json:"upvotes"`
	Downvotes int64              `bson:"downvotes" json:"downvotes"`
	Issues    []Issue            `bson:"issues" json:"issues"`
	CreatedAt time.Time          `bson:"created_at,omitempty" json:"created_at,omitempty"`
}
