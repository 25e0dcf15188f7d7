// internal/domain/models/contact.go
package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Contact is referenced by companies and employees. Phone always stores a
// list; a scalar submitted by a client is normalized at the boundary.
type Contact struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"_id,omitempty"`
	Phone     []string           `bson:"phone" json:"phone"`
	Email     string             `bson:"email" json:"email"`
	Upvotes   int64              `bson:"upvotes" json:"upvotes"`
	Downvotes int64              `bson:"downvotes" json:"downvotes"`
	Issues    []Issue            `bson:"issues" json:"issues"`
	CreatedAt time.Time          `bson:"created_at,omitempty" json:"created_at,omitempty"`
}
