// internal/domain/models/issue.go
package models

import "time"

// Issue is a structured complaint attached to a document by a downvote.
// Issues are append-only; nothing ever removes one.
type Issue struct {
	Field      string    `bson:"field" json:"field"`
	Reason     string    `bson:"reason" json:"reason"`
	Suggestion string    `bson:"suggestion" json:"suggestion"`
	CreatedAt  time.Time `bson:"created_at" json:"created_at"`
}
