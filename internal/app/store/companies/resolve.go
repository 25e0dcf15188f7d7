// internal/app/store/companies/resolve.go
package companystore

import (
	"context"

	"github.com/Instanvi/ABM-api/internal/app/store/documents"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// PageResult is a page of companies with references expanded for the API.
// Partial is set when at least one reference could not be resolved; the
// affected documents are still returned, minus the unresolved field.
type PageResult struct {
	Docs    []bson.M
	Total   int64
	Partial bool
}

// ResolvePage reads a page of companies and expands their references:
// location_id becomes an embedded location object (without _id and
// created_at), industry_id becomes the industry's name. Dangling
// references never fail the page; the document is returned without the
// field and the result is flagged partial.
func (s *Store) ResolvePage(ctx context.Context, skip, limit int64) (PageResult, error) {
	docs, err := s.docs.FindPage(ctx, documents.Companies, bson.M{}, skip, limit)
	if err != nil {
		return PageResult{}, err
	}
	total, err := s.docs.Count(ctx, documents.Companies, bson.M{})
	if err != nil {
		return PageResult{}, err
	}

	result := PageResult{Docs: docs, Total: total}
	for _, doc := range docs {
		stringifyIDs(doc)

		if locID, ok := doc["location_id"].(string); ok {
			if loc := s.lookup(ctx, documents.Locations, locID); loc != nil {
				delete(loc, "_id")
				delete(loc, "created_at")
				doc["location"] = loc
				delete(doc, "location_id")
			} else {
				result.Partial = true
				delete(doc, "location_id")
			}
		}

		if indID, ok := doc["industry_id"].(string); ok {
			if ind := s.lookup(ctx, documents.Industries, indID); ind != nil {
				doc["industry"] = ind["name"]
				delete(doc, "industry_id")
			} else {
				result.Partial = true
				delete(doc, "industry_id")
			}
		}
	}
	return result, nil
}

// ResolveOne reads a single company and expands location, industry, and
// contact into full embedded objects (minus their timestamps). Returns
// the resolved document and whether any reference failed to resolve.
func (s *Store) ResolveOne(ctx context.Context, id primitive.ObjectID) (bson.M, bool, error) {
	doc, err := s.docs.FindOne(ctx, documents.Companies, bson.M{"_id": id})
	if err == documents.ErrNotFound {
		return nil, false, ErrNotFound
	}
	if err != nil {
		return nil, false, err
	}
	stringifyIDs(doc)

	partial := false
	embed := func(refField, collection, as string) {
		refID, ok := doc[refField].(string)
		if !ok {
			return
		}
		child := s.lookup(ctx, collection, refID)
		if child == nil {
			partial = true
			delete(doc, refField)
			return
		}
		delete(child, "created_at")
		doc[as] = child
		delete(doc, refField)
	}

	embed("location_id", documents.Locations, "location")
	embed("industry_id", documents.Industries, "industry")
	embed("contact_id", documents.Contacts, "contact")

	return doc, partial, nil
}

// lookup fetches one document by hex id, returning nil on any failure.
// Resolution is best effort; the caller records the miss.
func (s *Store) lookup(ctx context.Context, collection, hexID string) bson.M {
	oid, err := primitive.ObjectIDFromHex(hexID)
	if err != nil {
		return nil
	}
	doc, err := s.docs.FindOne(ctx, collection, bson.M{"_id": oid})
	if err != nil {
		return nil
	}
	stringifyIDs(doc)
	return doc
}

// stringifyIDs converts _id and reference fields from ObjectIDs to their
// hex string form in place. API responses always carry the string form.
func stringifyIDs(doc bson.M) {
	for _, field := range []string{"_id", "location_id", "industry_id", "contact_id", "company_id"} {
		if oid, ok := doc[field].(primitive.ObjectID); ok {
			doc[field] = oid.Hex()
		}
	}
}
