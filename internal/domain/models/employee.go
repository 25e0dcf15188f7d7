// internal/domain/models/employee.go
package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Employee belongs to a company and references a shared contact document.
type Employee struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"_id,omitempty"`
	FirstName string             `bson:"first_name" json:"first_name"`
	LastName  string             `bson:"last_name" json:"last_name"`
	JobTitle  string             `bson:"job_title" json:"job_title"`
	ContactID primitive.ObjectID `bson:"contact_id,omitempty" json:"contact_id,omitempty"`
	CompanyID primitive.ObjectID `bson:"company_id,omitempty" json:"company_id,omitempty"`
	Upvotes   int64              `bson:"upvotes" json:"upvotes"`
	Downvotes int64              `bson:"downvotes" json:"downvotes"`
	Issues    []Issue            `bson:"issues" json:"issues"`
	CreatedAt time.Time          `bson:"created_at,omitempty" json:"created_at,omitempty"`
}
