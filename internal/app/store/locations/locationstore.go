// internal/app/store/locations/locationstore.go
package locationstore

import (
	"context"
	"errors"

	"github.com/Instanvi/ABM-api/internal/app/store/documents"
	"github.com/Instanvi/ABM-api/internal/domain/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

var ErrNotFound = errors.New("location not found")

type Store struct {
	docs *documents.Store
	c    *mongo.Collection
}

func New(db *mongo.Database) *Store {
	return &Store{docs: documents.New(db), c: db.Collection(documents.Locations)}
}

// Candidate builds the dedup candidate document for a submitted location.
// Vote fields start at zero so that two submissions of the same place
// resolve to one document.
func Candidate(loc models.Location) bson.M {
	return bson.M{
		"country":   loc.Country,
		"state":     loc.State,
		"city":      loc.City,
		"latitude":  loc.Latitude,
		"longitude": loc.Longitude,
		"upvotes":   0,
		"downvotes": 0,
		"issues":    bson.A{},
	}
}

// GetOrCreate returns the id of an existing identical location or inserts
// a new one.
func (s *Store) GetOrCreate(ctx context.Context, loc models.Location) (primitive.ObjectID, error) {
	return s.docs.GetOrCreate(ctx, documents.Locations, Candidate(loc))
}

func (s *Store) GetByID(ctx context.Context, id primitive.ObjectID) (models.Location, error) {
	var loc models.Location
	err := s.c.FindOne(ctx, bson.M{"_id": id}).Decode(&loc)
	if err == mongo.ErrNoDocuments {
		return models.Location{}, ErrNotFound
	}
	if err != nil {
		return models.Location{}, err
	}
	return loc, nil
}

// SearchByField returns locations whose field matches value
// case-insensitively.
func (s *Store) SearchByField(ctx context.Context, field, value string) ([]models.Location, error) {
	cur, err := s.c.Find(ctx, bson.M{field: bson.M{"$regex": value, "$options": "i"}})
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var locs []models.Location
	if err := cur.All(ctx, &locs); err != nil {
		return nil, err
	}
	return locs, nil
}

// SetFields applies a partial update. The zero matched count is mapped to
// ErrNotFound here so handlers don't have to check it.
func (s *Store) SetFields(ctx context.Context, id primitive.ObjectID, fields bson.M) error {
	matched, err := s.docs.SetFields(ctx, documents.Locations, id, fields)
	if err != nil {
		return err
	}
	if matched == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *Store) Delete(ctx context.Context, id primitive.ObjectID) (int64, error) {
	return s.docs.DeleteByID(ctx, documents.Locations, id)
}

func (s *Store) DeleteMany(ctx context.Context, ids []primitive.ObjectID) (int64, error) {
	return s.docs.DeleteByIDs(ctx, documents.Locations, ids)
}

// DeleteBatch removes many locations, reporting per-id failures for ids
// that match nothing.
func (s *Store) DeleteBatch(ctx context.Context, ids []primitive.ObjectID) (documents.BatchDeleteResult, error) {
	return s.docs.DeleteBatchChecked(ctx, documents.Locations, ids, "Location not found")
}

// Insert writes one location, stamping its creation timestamp.
func (s *Store) Insert(ctx context.Context, loc models.Location) (primitive.ObjectID, error) {
	if err := s.docs.EnsureCollection(ctx, documents.Locations); err != nil {
		return primitive.NilObjectID, err
	}
	return s.docs.InsertOne(ctx, documents.Locations, Candidate(loc))
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
