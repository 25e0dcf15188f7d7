// internal/app/store/votes/votestore.go
package votestore

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/Instanvi/ABM-api/internal/app/store/documents"
	"github.com/Instanvi/ABM-api/internal/domain/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

var (
	ErrInvalidVote       = errors.New("invalid vote type")
	ErrInvalidIssue      = errors.New("issue must contain field, reason, and suggestion")
	ErrInvalidCollection = errors.New("collection must be Companies or Employees")
	ErrNotFound          = errors.New("document not found")
)

// Vote kinds accepted by Perform.
const (
	Upvote   = "upvote"
	Downvote = "downvote"
)

// Field-to-collection routing. An issue naming a contact-ish or
// location-ish field is recorded on the referenced child document, not on
// the company or employee the client addressed. New flagged fields must be
// added here by hand; there is no schema to derive them from.
var (
	contactFields  = map[string]bool{"phone": true, "email": true}
	locationFields = map[string]bool{
		"country": true, "state": true, "city": true,
		"latitude": true, "longitude": true,
	}
)

// Store records votes and issues on documents, including the routing that
// decides which document actually owns the flagged field.
type Store struct {
	docs *documents.Store
	db   *mongo.Database
}

func New(db *mongo.Database) *Store {
	return &Store{docs: documents.New(db), db: db}
}

// Perform applies a vote to the document addressed by collection/id,
// redirected to the owning child document when the issue flags a field
// that lives on the referenced contact, location, or industry.
//
// An upvote increments upvotes. A downvote increments downvotes and
// appends the issue; the two always happen together. A downvote without a
// complete issue is rejected with ErrInvalidIssue; any vote kind other
// than upvote/downvote with ErrInvalidVote.
func (s *Store) Perform(ctx context.Context, collection string, id primitive.ObjectID, vote string, issue *models.Issue) error {
	vote = strings.ToLower(vote)
	if vote != Upvote && vote != Downvote {
		return ErrInvalidVote
	}
	if vote == Downvote {
		if issue == nil || issue.Field == "" || issue.Reason == "" || issue.Suggestion == "" {
			return ErrInvalidIssue
		}
	}

	targetCollection, targetID, err := s.route(ctx, collection, id, issue)
	if err != nil {
		return err
	}

	col := s.db.Collection(targetCollection)
	if vote == Upvote {
		res, err := col.UpdateByID(ctx, targetID, bson.M{"$inc": bson.M{"upvotes": 1}})
		if err != nil {
			return err
		}
		if res.MatchedCount == 0 {
			return ErrNotFound
		}
		return nil
	}

	stamped := *issue
	stamped.CreatedAt = time.Now().UTC()
	res, err := col.UpdateByID(ctx, targetID, bson.M{
		"$inc":  bson.M{"downvotes": 1},
		"$push": bson.M{"issues": stamped},
	})
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}

// route resolves the document that owns the flagged field. With no issue
// the vote lands on the addressed document itself.
func (s *Store) route(ctx context.Context, collection string, id primitive.ObjectID, issue *models.Issue) (string, primitive.ObjectID, error) {
	if issue == nil {
		return collection, id, nil
	}
	field := strings.ToLower(issue.Field)

	switch collection {
	case documents.Companies:
		switch {
		case contactFields[field]:
			return s.reference(ctx, collection, id, "contact_id", documents.Contacts)
		case locationFields[field]:
			return s.reference(ctx, collection, id, "location_id", documents.Locations)
		case field == "industry":
			return s.reference(ctx, collection, id, "industry_id", documents.Industries)
		}
	case documents.Employees:
		if contactFields[field] {
			return s.reference(ctx, collection, id, "contact_id", documents.Contacts)
		}
	}
	return collection, id, nil
}

// reference looks up the parent and follows refField into the child
// collection. A parent without the reference cannot receive the vote.
func (s *Store) reference(ctx context.Context, parentCollection string, parentID primitive.ObjectID, refField, childCollection string) (string, primitive.ObjectID, error) {
	doc, err := s.docs.FindOne(ctx, parentCollection, bson.M{"_id": parentID})
	if err == documents.ErrNotFound {
		return "", primitive.NilObjectID, ErrNotFound
	}
	if err != nil {
		return "", primitive.NilObjectID, err
	}
	refID, ok := doc[refField].(primitive.ObjectID)
	if !ok {
		return "", primitive.NilObjectID, ErrNotFound
	}
	return childCollection, refID, nil
}

// Tally is the vote state of one document.
type Tally struct {
	Upvotes   int64          `json:"upvotes"`
	Downvotes int64          `json:"downvotes"`
	Issues    []models.Issue `json:"issues"`
}

// Details aggregates the vote state of a company (own, contact, location,
// industry) or an employee (own, contact). Children with dangling
// references are omitted from the report rather than failing it.
func (s *Store) Details(ctx context.Context, collection string, id primitive.ObjectID) (map[string]Tally, error) {
	switch collection {
	case documents.Companies:
		var co models.Company
		err := s.db.Collection(documents.Companies).FindOne(ctx, bson.M{"_id": id}).Decode(&co)
		if err == mongo.ErrNoDocuments {
			return nil, ErrNotFound
		}
		if err != nil {
			return nil, err
		}
		report := map[string]Tally{
			"company_info_votes": {Upvotes: co.Upvotes, Downvotes: co.Downvotes, Issues: issuesOrEmpty(co.Issues)},
		}
		s.childTally(ctx, report, "contact_votes", documents.Contacts, co.ContactID)
		s.childTally(ctx, report, "location_votes", documents.Locations, co.LocationID)
		s.childTally(ctx, report, "industry_votes", documents.Industries, co.IndustryID)
		return report, nil

	case documents.Employees:
		var e models.Employee
		err := s.db.Collection(documents.Employees).FindOne(ctx, bson.M{"_id": id}).Decode(&e)
		if err == mongo.ErrNoDocuments {
			return nil, ErrNotFound
		}
		if err != nil {
			return nil, err
		}
		report := map[string]Tally{
			"employee_info_votes": {Upvotes: e.Upvotes, Downvotes: e.Downvotes, Issues: issuesOrEmpty(e.Issues)},
		}
		s.childTally(ctx, report, "contact_votes", documents.Contacts, e.ContactID)
		return report, nil
	}
	return nil, ErrInvalidCollection
}

func (s *Store) childTally(ctx context.Context, report map[string]Tally, key, collection string, id primitive.ObjectID) {
	if id.IsZero() {
		return
	}
	var child struct {
		Upvotes   int64          `bson:"upvotes"`
		Downvotes int64          `bson:"downvotes"`
		Issues    []models.Issue `bson:"issues"`
	}
	if err := s.db.Collection(collection).FindOne(ctx, bson.M{"_id": id}).Decode(&child); err != nil {
		return
	}
	report[key] = Tally{Upvotes: child.Upvotes, Downvotes: child.Downvotes, Issues: issuesOrEmpty(child.Issues)}
}

func issuesOrEmpty(issues []models.Issue) []models.Issue {
	if issues == nil {
		return []models.Issue{}
	}
	return issues
}
