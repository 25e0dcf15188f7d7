// internal/app/store/employees/employeestore.go
package employeestore

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

var ErrNotFound = errors.New("employee not found")

type Store struct {
	docs *documents.Store
	c    *mongo.Collection
}

func New(db *mongo.Database) *Store {
	return &Store{docs: documents.New(db), c: db.Collection(documents.Employees)}
}

// InsertBatch writes pre-validated employees as one batch, stamping
// creation timestamps.
func (s *Store) InsertBatch(ctx context.Context, employees []models.Employee) ([]primitive.ObjectID, error) {
	if len(employees) == 0 {
		return nil, nil
	}
	if err := s.docs.EnsureCollection(ctx, documents.Employees); err != nil {
		return nil, err
	}
	now := time.Now().UTC()
	raw := make([]interface{}, 0, len(employees))
	for i := range employees {
		if employees[i].Issues == nil {
			employees[i].Issues = []models.Issue{}
		}
		employees[i].CreatedAt = now
		raw = append(raw, employees[i])
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

func (s *Store) GetByID(ctx context.Context, id primitive.ObjectID) (models.Employee, error) {
	var e models.Employee
	err := s.c.FindOne(ctx, bson.M{"_id": id}).Decode(&e)
	if err == mongo.ErrNoDocuments {
		return models.Employee{}, ErrNotFound
	}
	if err != nil {
		return models.Employee{}, err
	}
	return e, nil
}

// ResolveOne reads an employee and embeds its contact document (minus the
// contact's timestamp). A dangling contact reference is reported through
// the partial flag, never as an error.
func (s *Store) ResolveOne(ctx context.Context, id primitive.ObjectID) (bson.M, bool, error) {
	doc, err := s.docs.FindOne(ctx, documents.Employees, bson.M{"_id": id})
	if err == documents.ErrNotFound {
		return nil, false, ErrNotFound
	}
	if err != nil {
		return nil, false, err
	}
	partial := s.embedContact(ctx, doc)
	return doc, partial, nil
}

// SearchByField returns employees whose field matches value
// case-insensitively, contact resolved into each result.
func (s *Store) SearchByField(ctx context.Context, field, value string, skip, limit int64) ([]bson.M, bool, error) {
	docs, err := s.docs.FindPage(ctx, documents.Employees,
		bson.M{field: bson.M{"$regex": value, "$options": "i"}}, skip, limit)
	if err != nil {
		return nil, false, err
	}
	partial := false
	for _, doc := range docs {
		if s.embedContact(ctx, doc) {
			partial = true
		}
	}
	return docs, partial, nil
}

// ByCompany returns employees belonging to the given company, contact
// resolved into each result.
func (s *Store) ByCompany(ctx context.Context, companyID primitive.ObjectID, skip, limit int64) ([]bson.M, bool, error) {
	docs, err := s.docs.FindPage(ctx, documents.Employees,
		bson.M{"company_id": companyID}, skip, limit)
	if err != nil {
		return nil, false, err
	}
	partial := false
	for _, doc := range docs {
		if s.embedContact(ctx, doc) {
			partial = true
		}
	}
	return docs, partial, nil
}

// embedContact replaces contact_id with the contact document in place and
// reports whether the reference failed to resolve.
func (s *Store) embedContact(ctx context.Context, doc bson.M) (partial bool) {
	for _, field := range []string{"_id", "contact_id", "company_id"} {
		if oid, ok := doc[field].(primitive.ObjectID); ok {
			doc[field] = oid.Hex()
		}
	}
	hexID, ok := doc["contact_id"].(string)
	if !ok {
		return false
	}
	oid, err := primitive.ObjectIDFromHex(hexID)
	if err != nil {
		delete(doc, "contact_id")
		return true
	}
	contact, err := s.docs.FindOne(ctx, documents.Contacts, bson.M{"_id": oid})
	if err != nil {
		delete(doc, "contact_id")
		return true
	}
	if id, ok := contact["_id"].(primitive.ObjectID); ok {
		contact["_id"] = id.Hex()
	}
	delete(contact, "created_at")
	doc["contact"] = contact
	delete(doc, "contact_id")
	return false
}

func (s *Store) SetFields(ctx context.Context, id primitive.ObjectID, fields bson.M) error {
	matched, err := s.docs.SetFields(ctx, documents.Employees, id, fields)
	if err != nil {
		return err
	}
	if matched == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *Store) Delete(ctx context.Context, id primitive.ObjectID) (int64, error) {
	return s.docs.DeleteByID(ctx, documents.Employees, id)
}

// DeleteBatch removes many employees, reporting per-id failures for ids
// that match nothing.
func (s *Store) DeleteBatch(ctx context.Context, ids []primitive.ObjectID) (documents.BatchDeleteResult, error) {
	return s.docs.DeleteBatchChecked(ctx, documents.Employees, ids, "Employee not found")
}
