// internal/app/store/documents/batch.go
package documents

import (
	"context"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

// BatchFailure records one id a batch operation could not process, paired
// with the offending input so the client can match it up.
type BatchFailure struct {
	Error string `json:"error"`
	Data  string `json:"data"`
}

// BatchDeleteResult reports a batch delete's partial outcome.
type BatchDeleteResult struct {
	Failed    []BatchFailure
	Succeeded int64
}

// DeleteBatchChecked verifies each id exists before deleting, collecting
// per-id failures instead of aborting the batch. missingMsg is the error
// text recorded for ids that matched nothing.
func (s *Store) DeleteBatchChecked(ctx context.Context, name string, ids []primitive.ObjectID, missingMsg string) (BatchDeleteResult, error) {
	result := BatchDeleteResult{Failed: []BatchFailure{}}
	ok := make([]primitive.ObjectID, 0, len(ids))

	for _, id := range ids {
		err := s.db.Collection(name).FindOne(ctx, bson.M{"_id": id}).Err()
		if err == mongo.ErrNoDocuments {
			result.Failed = append(result.Failed, BatchFailure{Error: missingMsg, Data: id.Hex()})
			continue
		}
		if err != nil {
			return result, err
		}
		ok = append(ok, id)
	}

	if len(ok) > 0 {
		deleted, err := s.DeleteByIDs(ctx, name, ok)
		if err != nil {
			return result, err
		}
		result.Succeeded = deleted
	}
	return result, nil
}
