// internal/app/store/companies/companystore.go
package companystore

import (
	"context"
	"errors"
	"time"

	"github.com/Instanvi/ABM-api/internal/app/store/documents"
	"github.com/Instanvi/ABM-api/internal/domain/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

var ErrNotFound = errors.New("company not found")

// Store owns the Companies collection and orchestrates the operations
// that span related collections: reference resolution on reads and
// cascade deletes of referenced locations.
type Store struct {
	docs *documents.Store
	db   *mongo.Database
	c    *mongo.Collection
}

func New(db *mongo.Database) *Store {
	return &Store{
		docs: documents.New(db),
		db:   db,
		c:    db.Collection(documents.Companies),
	}
}

// Docs exposes the generic adapter for callers that mix typed and raw work.
func (s *Store) Docs() *documents.Store {
	return s.docs
}

// InsertBatch writes pre-validated companies as one batch, stamping
// creation timestamps. Returns the new ids in input order.
func (s *Store) InsertBatch(ctx context.Context, companies []models.Company) ([]primitive.ObjectID, error) {
	if len(companies) == 0 {
		return nil, nil
	}
	if err := s.docs.EnsureCollection(ctx, documents.Companies); err != nil {
		return nil, err
	}
	now := time.Now().UTC()
	raw := make([]interface{}, 0, len(companies))
	for i := range companies {
		if companies[i].Issues == nil {
			companies[i].Issues = []models.Issue{}
		}
		companies[i].CreatedAt = now
		raw = append(raw, companies[i])
	}
	res, err := s.c.InsertMany(ctx, raw)
	if err != nil {
		return nil, err
	}
	ids := make([]primitive.ObjectID, 0, len(res.InsertedIDs))
	for _, id := range res.InsertedIDs {
		ids = append(ids, id.(primitive.ObjectID))
	}
	return ids, nil
}

func (s *Store) GetByID(ctx context.Context, id primitive.ObjectID) (models.Company, error) {
	var co models.Company
	err := s.c.FindOne(ctx, bson.M{"_id": id}).Decode(&co)
	if err == mongo.ErrNoDocuments {
		return models.Company{}, ErrNotFound
	}
	if err != nil {
		return models.Company{}, err
	}
	return co, nil
}

// SearchByName returns a page of companies whose name matches
// case-insensitively.
func (s *Store) SearchByName(ctx context.Context, name string, skip, limit int64) ([]bson.M, error) {
	return s.docs.FindPage(ctx, documents.Companies,
		bson.M{"name": bson.M{"$regex": name, "$options": "i"}}, skip, limit)
}

// SearchByCity returns a page of companies whose referenced location's
// city matches case-insensitively. Companies hold only a location_id, so
// the match goes through the Locations collection first.
func (s *Store) SearchByCity(ctx context.Context, city string, skip, limit int64) ([]bson.M, error) {
	return s.searchByReference(ctx, documents.Locations,
		bson.M{"city": bson.M{"$regex": city, "$options": "i"}}, "location_id", skip, limit)
}

// SearchByIndustry returns a page of companies whose referenced industry
// name matches case-insensitively.
func (s *Store) SearchByIndustry(ctx context.Context, industry string, skip, limit int64) ([]bson.M, error) {
	return s.searchByReference(ctx, documents.Industries,
		bson.M{"name": bson.M{"$regex": industry, "$options": "i"}}, "industry_id", skip, limit)
}

func (s *Store) searchByReference(ctx context.Context, refCollection string, refFilter bson.M, refField string, skip, limit int64) ([]bson.M, error) {
	cur, err := s.db.Collection(refCollection).Find(ctx, refFilter)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var refs []struct {
		ID primitive.ObjectID `bson:"_id"`
	}
	if err := cur.All(ctx, &refs); err != nil {
		return nil, err
	}
	if len(refs) == 0 {
		return []bson.M{}, nil
	}
	ids := make([]primitive.ObjectID, 0, len(refs))
	for _, r := range refs {
		ids = append(ids, r.ID)
	}
	return s.docs.FindPage(ctx, documents.Companies,
		bson.M{refField: bson.M{"$in": ids}}, skip, limit)
}

// SetFields applies a partial update to a company document.
func (s *Store) SetFields(ctx context.Context, id primitive.ObjectID, fields bson.M) error {
	matched, err := s.docs.SetFields(ctx, documents.Companies, id, fields)
	if err != nil {
		return err
	}
	if matched == 0 {
		return ErrNotFound
	}
	return nil
}

// CascadeResult reports what a single cascade delete removed.
type CascadeResult struct {
	LocationID primitive.ObjectID // zero when the company had no location
}

// DeleteCascade removes a company and, best effort, its referenced
// location. A missing location is not an error; a missing company is.
// The two deletes are separate round trips with no transaction, so a
// failure in between can leave the location gone and the company intact.
func (s *Store) DeleteCascade(ctx context.Context, id primitive.ObjectID) (CascadeResult, error) {
	co, err := s.GetByID(ctx, id)
	if err != nil {
		return CascadeResult{}, err
	}

	res := CascadeResult{}
	if !co.LocationID.IsZero() {
		// Deleted count deliberately ignored for the child.
		if _, err := s.docs.DeleteByID(ctx, documents.Locations, co.LocationID); err != nil {
			return CascadeResult{}, err
		}
		res.LocationID = co.LocationID
	}

	deleted, err := s.docs.DeleteByID(ctx, documents.Companies, id)
	if err != nil {
		return CascadeResult{}, err
	}
	if deleted == 0 {
		return CascadeResult{}, ErrNotFound
	}
	return res, nil
}

// DeleteCascadeBatch attempts a cascade delete for each id, never aborting
// on a missing company: failures are collected per id and the rest of the
// batch proceeds. There is no rollback; a crash mid-batch leaves earlier
// deletes in place.
func (s *Store) DeleteCascadeBatch(ctx context.Context, ids []primitive.ObjectID) (documents.BatchDeleteResult, error) {
	result := documents.BatchDeleteResult{Failed: []documents.BatchFailure{}}
	ok := make([]primitive.ObjectID, 0, len(ids))

	for _, id := range ids {
		co, err := s.GetByID(ctx, id)
		if err == ErrNotFound {
			result.Failed = append(result.Failed, documents.BatchFailure{
				Error: "Company not found",
				Data:  id.Hex(),
			})
			continue
		}
		if err != nil {
			return result, err
		}
		if !co.LocationID.IsZero() {
			if _, err := s.docs.DeleteByID(ctx, documents.Locations, co.LocationID); err != nil {
				return result, err
			}
		}
		ok = append(ok, id)
	}

	if len(ok) > 0 {
		deleted, err := s.docs.DeleteByIDs(ctx, documents.Companies, ok)
		if err != nil {
			return result, err
		}
		result.Succeeded = deleted
	}
	return result, nil
}

// Count returns the number of company documents.
func (s *Store) Count(ctx context.Context) (int64, error) {
	return s.docs.Count(ctx, documents.Companies, bson.M{})
}
