// internal/app/store/documents/documents.go
package documents

import (
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// Collection names. The capitalized forms are the on-disk names the data
// set has always used.
const (
	Companies  = "Companies"
	Locations  = "Locations"
	Industries = "Industries"
	Contacts   = "Contacts"
	Employees  = "Employees"
)

// ErrNotFound reports a lookup that matched no document.
var ErrNotFound = errors.New("document not found")

// Store is the generic adapter over named collections. Entity stores use
// it for the operations that are the same everywhere: lazy collection
// creation, timestamped inserts, exact-match dedup, batch deletes.
type Store struct {
	db *mongo.Database
}

func New(db *mongo.Database) *Store {
	return &Store{db: db}
}

// Collection exposes the underlying collection handle for entity stores.
func (s *Store) Collection(name string) *mongo.Collection {
	return s.db.Collection(name)
}

// EnsureCollection creates the named collection if it does not exist yet.
// Idempotent; a concurrent create by another request is not an error.
func (s *Store) EnsureCollection(ctx context.Context, name string) error {
	names, err := s.db.ListCollectionNames(ctx, bson.M{"name": name})
	if err != nil {
		return err
	}
	if len(names) > 0 {
		return nil
	}
	err = s.db.CreateCollection(ctx, name)
	if err != nil {
		var ce mongo.CommandError
		if errors.As(err, &ce) && ce.Name == "NamespaceExists" {
			return nil
		}
		return err
	}
	return nil
}

// InsertOne stamps the document with a creation timestamp and writes it.
func (s *Store) InsertOne(ctx context.Context, name string, doc bson.M) (primitive.ObjectID, error) {
	doc["created_at"] = time.Now().UTC()
	res, err := s.db.Collection(name).InsertOne(ctx, doc)
	if err != nil {
		return primitive.NilObjectID, err
	}
	return res.InsertedID.(primitive.ObjectID), nil
}

// InsertMany stamps each document and writes the batch. Single-versus-batch
// is the caller's choice of method, not inferred from the input.
func (s *Store) InsertMany(ctx context.Context, name string, docs []bson.M) ([]primitive.ObjectID, error) {
	if len(docs) == 0 {
		return nil, nil
	}
	now := time.Now().UTC()
	raw := make([]interface{}, 0, len(docs))
	for _, d := range docs {
		d["created_at"] = now
		raw = append(raw, d)
	}
	res, err := s.db.Collection(name).InsertMany(ctx, raw)
	if err != nil {
		return nil, err
	}
	ids := make([]primitive.ObjectID, 0, len(res.InsertedIDs))
	for _, id := range res.InsertedIDs {
		ids = append(ids, id.(primitive.ObjectID))
	}
	return ids, nil
}

// FindOne returns the first document matching filter, or ErrNotFound.
func (s *Store) FindOne(ctx context.Context, name string, filter bson.M) (bson.M, error) {
	var doc bson.M
	err := s.db.Collection(name).FindOne(ctx, filter).Decode(&doc)
	if err == mongo.ErrNoDocuments {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return doc, nil
}

// FindPage returns up to limit documents matching filter, skipping skip.
// With no explicit sort the order is insertion order.
func (s *Store) FindPage(ctx context.Context, name string, filter bson.M, skip, limit int64) ([]bson.M, error) {
	opts := options.Find().SetSkip(skip).SetLimit(limit)
	cur, err := s.db.Collection(name).Find(ctx, filter, opts)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	docs := []bson.M{}
	if err := cur.All(ctx, &docs); err != nil {
		return nil, err
	}
	return docs, nil
}

// SetFields applies a partial $set update to one document and returns the
// matched count. A zero matched count is the only "not found" signal;
// callers must check it. created_at is immutable and silently dropped from
// the field set.
func (s *Store) SetFields(ctx context.Context, name string, id primitive.ObjectID, fields bson.M) (int64, error) {
	delete(fields, "created_at")
	delete(fields, "_id")
	if len(fields) == 0 {
		return 1, nil
	}
	res, err := s.db.Collection(name).UpdateByID(ctx, id, bson.M{"$set": fields})
	if err != nil {
		return 0, err
	}
	return res.MatchedCount, nil
}

// DeleteByID deletes one document, returning the deleted count (0 or 1).
func (s *Store) DeleteByID(ctx context.Context, name string, id primitive.ObjectID) (int64, error) {
	res, err := s.db.Collection(name).DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return 0, err
	}
	return res.DeletedCount, nil
}

// DeleteByIDs deletes every document whose id is in ids.
func (s *Store) DeleteByIDs(ctx context.Context, name string, ids []primitive.ObjectID) (int64, error) {
	if len(ids) == 0 {
		return 0, nil
	}
	res, err := s.db.Collection(name).DeleteMany(ctx, bson.M{"_id": bson.M{"$in": ids}})
	if err != nil {
		return 0, err
	}
	return res.DeletedCount, nil
}

// Count returns the number of documents matching filter.
func (s *Store) Count(ctx context.Context, name string, filter bson.M) (int64, error) {
	return s.db.Collection(name).CountDocuments(ctx, filter)
}

// GetOrCreate returns the id of an existing document whose fields exactly
// equal candidate, inserting it first when no such document exists.
// Equality is per-field over the candidate as submitted; there is no fuzzy
// matching. The check and the insert are two round trips with no lock, so
// concurrent identical candidates can both insert; callers accept the
// duplicate rather than pay for a unique index on free-form fields.
func (s *Store) GetOrCreate(ctx context.Context, name string, candidate bson.M) (primitive.ObjectID, error) {
	if err := s.EnsureCollection(ctx, name); err != nil {
		return primitive.NilObjectID, err
	}
	existing, err := s.FindOne(ctx, name, candidate)
	if err == nil {
		return existing["_id"].(primitive.ObjectID), nil
	}
	if err != ErrNotFound {
		return primitive.NilObjectID, err
	}
	return s.InsertOne(ctx, name, candidate)
}

// CollectionExists reports whether the named collection has been created.
func (s *Store) CollectionExists(ctx context.Context, name string) (bool, error) {
	names, err := s.db.ListCollectionNames(ctx, bson.M{"name": name})
	if err != nil {
		return false, err
	}
	return len(names) > 0, nil
}
