// internal/app/system/docid/docid.go
package docid

import (
	"errors"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// ErrInvalidID reports an identifier string that is not a 24-character
// hex ObjectID. Handlers translate it to a 400.
var ErrInvalidID = errors.New("invalid document id")

// Parse converts the string form of an identifier to its ObjectID.
// API boundaries deal in strings; everything below them uses ObjectIDs.
func Parse(s string) (primitive.ObjectID, error) {
	id, err := primitive.ObjectIDFromHex(s)
	if err != nil {
		return primitive.NilObjectID, ErrInvalidID
	}
	return id, nil
}

// ParseAll parses a batch of identifier strings. The first malformed
// entry fails the whole batch with ErrInvalidID.
func ParseAll(ss []string) ([]primitive.ObjectID, error) {
	ids := make([]primitive.ObjectID, 0, len(ss))
	for _, s := range ss {
		id, err := Parse(s)
		if err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	return ids, nil
}

// Format returns the hex string form of an identifier.
func Format(id primitive.ObjectID) string {
	return id.Hex()
}
