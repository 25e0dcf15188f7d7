// internal/domain/models/industry.go
package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Industry is shared across companies and deduplicated by name.
type Industry struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"_id,omitempty"`
	Name      string             `bson:"name" json:"name"`
	Upvotes   int64              `bson:"upvotes" json:"upvotes"`
	Downvotes int64              `bson:"downvotes" json:"downvotes"`
	Issues    []Issue            `bson:"issues" json:"issues"`
	CreatedAt time.Time          `bson:"created_at,omitempty" json:"created_at,omitempty"`
}
