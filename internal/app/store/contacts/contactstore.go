// internal/app/store/contacts/contactstore.go
package contactstore

import (
	"context"
	"errors"

	"github.com/Instanvi/ABM-api/internal/app/store/documents"
	"github.com/Instanvi/ABM-api/internal/domain/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

var ErrNotFound = errors.New("contact not found")

type Store struct {
	docs *documents.Store
	c    *mongo.Collection
}

func New(db *mongo.Database) *Store {
	return &Store{docs: documents.New(db), c: db.Collection(documents.Contacts)}
}

// Candidate builds the dedup candidate document for a submitted contact.
func Candidate(contact models.Contact) bson.M {
	phone := bson.A{}
	for _, p := range contact.Phone {
		phone = append(phone, p)
	}
	return bson.M{
		"phone":     phone,
		"email":     contact.Email,
		"upvotes":   0,
		"downvotes": 0,
		"issues":    bson.A{},
	}
}

// GetOrCreate returns the id of an existing identical contact or inserts
// a new one.
func (s *Store) GetOrCreate(ctx context.Context, contact models.Contact) (primitive.ObjectID, error) {
	return s.docs.GetOrCreate(ctx, documents.Contacts, Candidate(contact))
}

func (s *Store) GetByID(ctx context.Context, id primitive.ObjectID) (models.Contact, error) {
	var c models.Contact
	err := s.c.FindOne(ctx, bson.M{"_id": id}).Decode(&c)
	if err == mongo.ErrNoDocuments {
		return models.Contact{}, ErrNotFound
	}
	if err != nil {
		return models.Contact{}, err
	}
	return c, nil
}

func (s *Store) SetFields(ctx context.Context, id primitive.ObjectID, fields bson.M) error {
	matched, err := s.docs.SetFields(ctx, documents.Contacts, id, fields)
	if err != nil {
		return err
	}
	if matched == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *Store) Delete(ctx context.Context, id primitive.ObjectID) (int64, error) {
	return s.docs.DeleteByID(ctx, documents.Contacts, id)
}
