// internal/app/store/industries/industrystore.go
package industrystore

import (
	"context"
	"errors"

	"github.com/Instanvi/ABM-api/internal/app/store/documents"
	"github.com/Instanvi/ABM-api/internal/domain/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

var ErrNotFound = errors.New("industry not found")

type Store struct {
	docs *documents.Store
	c    *mongo.Collection
}

func New(db *mongo.Database) *Store {
	return &Store{docs: documents.New(db), c: db.Collection(documents.Industries)}
}

// Candidate builds the dedup candidate document for a submitted industry.
func Candidate(name string) bson.M {
	return bson.M{
		"name":      name,
		"upvotes":   0,
		"downvotes": 0,
		"issues":    bson.A{},
	}
}

// GetOrCreate returns the id of an existing industry with this name or
// inserts a new one.
func (s *Store) GetOrCreate(ctx context.Context, name string) (primitive.ObjectID, error) {
	return s.docs.GetOrCreate(ctx, documents.Industries, Candidate(name))
}

// InsertBatch inserts pre-validated industries, stamping timestamps.
func (s *Store) InsertBatch(ctx context.Context, names []string) ([]primitive.ObjectID, error) {
	docs := make([]bson.M, 0, len(names))
	for _, n := range names {
		docs = append(docs, Candidate(n))
	}
	if err := s.docs.EnsureCollection(ctx, documents.Industries); err != nil {
		return nil, err
	}
	return s.docs.InsertMany(ctx, documents.Industries, docs)
}

func (s *Store) GetByID(ctx context.Context, id primitive.ObjectID) (models.Industry, error) {
	var ind models.Industry
	err := s.c.FindOne(ctx, bson.M{"_id": id}).Decode(&ind)
	if err == mongo.ErrNoDocuments {
		return models.Industry{}, ErrNotFound
	}
	if err != nil {
		return models.Industry{}, err
	}
	return ind, nil
}

// All returns every industry document.
func (s *Store) All(ctx context.Context) ([]models.Industry, error) {
	cur, err := s.c.Find(ctx, bson.M{})
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var inds []models.Industry
	if err := cur.All(ctx, &inds); err != nil {
		return nil, err
	}
	return inds, nil
}

// SearchByName returns industries whose name matches case-insensitively.
func (s *Store) SearchByName(ctx context.Context, name string) ([]models.Industry, error) {
	cur, err := s.c.Find(ctx, bson.M{"name": bson.M{"$regex": name, "$options": "i"}})
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var inds []models.Industry
	if err := cur.All(ctx, &inds); err != nil {
		return nil, err
	}
	return inds, nil
}

func (s *Store) SetFields(ctx context.Context, id primitive.ObjectID, fields bson.M) error {
	matched, err := s.docs.SetFields(ctx, documents.Industries, id, fields)
	if err != nil {
		return err
	}
	if matched == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *Store) Exists(ctx context.Context, id primitive.ObjectID) (bool, error) {
	err := s.c.FindOne(ctx, bson.M{"_id": id}).Err()
	if err == mongo.ErrNoDocuments {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}

func (s *Store) Delete(ctx context.Context, id primitive.ObjectID) (int64, error) {
	return s.docs.DeleteByID(ctx, documents.Industries, id)
}

func (s *Store) DeleteMany(ctx context.Context, ids []primitive.ObjectID) (int64, error) {
	return s.docs.DeleteByIDs(ctx, documents.Industries, ids)
}

// DeleteBatch removes many industries, reporting per-id failures for ids
// that match nothing.
func (s *Store) DeleteBatch(ctx context.Context, ids []primitive.ObjectID) (documents.BatchDeleteResult, error) {
	return s.docs.DeleteBatchChecked(ctx, documents.Industries, ids, "Industry not found")
}
