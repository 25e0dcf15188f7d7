// internal/domain/models/company.go
package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Company references its location, industry, and contact by ObjectID.
// Related documents are never embedded in storage; reads resolve them
// into the response instead.
//
// Extra carries submitter-supplied fields that have no dedicated column,
// so callers can attach arbitrary data without a schema change.
type Company struct {
	ID         primitive.ObjectID `bson:"_id,omitempty" json:"_id,omitempty"`
	Name       string             `bson:"name" json:"name"`
	IndustryID primitive.ObjectID `bson:"industry_id,omitempty" json:"industry_id,omitempty"`
	LocationID primitive.ObjectID `bson:"location_id,omitempty" json:"location_id,omitempty"`
	ContactID  primitive.ObjectID `bson:"contact_id,omitempty" json:"contact_id,omitempty"`
	Revenue    string             `bson:"revenue" json:"revenue"`
	Size       string             `bson:"size" json:"size"`
	Upvotes    int64              `bson:"upvotes" json:"upvotes"`
	Downvotes  int64              `bson:"downvotes" json:"downvotes"`
	Issues     []Issue            `bson:"issues" json:"issues"`
	CreatedAt  time.Time          `bson:"created_at,omitempty" json:"created_at,omitempty"`
	Extra      bson.M             `bson:",inline" json:"extra,omitempty"`
}
