package companystore_test

import (
	"testing"

	companystore "github.com/Instanvi/ABM-api/internal/app/store/companies"
	"github.com/Instanvi/ABM-api/internal/testutil"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func TestResolvePage_EmbedsReferences(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := companystore.New(db)
	fx := testutil.NewFixtures(t, db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	loc := fx.CreateLocation(ctx, "US", "CA", "SF", 37.7, -122.4)
	ind := fx.CreateIndustry(ctx, "Tech")
	fx.CreateCompany(ctx, "Acme", ind.ID, loc.ID, primitive.NilObjectID)

	page, err := store.ResolvePage(ctx, 0, 10)
	if err != nil {
		t.Fatalf("ResolvePage failed: %v", err)
	}
	if page.Partial {
		t.Error("no dangling references, but result flagged partial")
	}
	if page.Total != 1 || len(page.Docs) != 1 {
		t.Fatalf("expected one document, got total=%d len=%d", page.Total, len(page.Docs))
	}

	doc := page.Docs[0]
	if _, ok := doc["location_id"]; ok {
		t.Error("resolved document must not carry location_id")
	}
	if _, ok := doc["industry_id"]; ok {
		t.Error("resolved document must not carry industry_id")
	}
	if doc["industry"] != "Tech" {
		t.Errorf("industry: got %v, want Tech", doc["industry"])
	}

	embedded, ok := doc["location"].(bson.M)
	if !ok {
		t.Fatalf("location: got %T, want embedded object", doc["location"])
	}
	if embedded["city"] != "SF" {
		t.Errorf("location.city: got %v, want SF", embedded["city"])
	}
	if _, ok := embedded["_id"]; ok {
		t.Error("embedded location must not carry _id")
	}
	if _, ok := embedded["created_at"]; ok {
		t.Error("embedded location must not carry created_at")
	}

	if _, ok := doc["_id"].(string); !ok {
		t.Errorf("_id should be the string form, got %T", doc["_id"])
	}
}

func TestResolvePage_DanglingReferenceIsPartial(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := companystore.New(db)
	fx := testutil.NewFixtures(t, db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	fx.CreateCompany(ctx, "Orphaned", primitive.NewObjectID(), primitive.NewObjectID(), primitive.NilObjectID)

	page, err := store.ResolvePage(ctx, 0, 10)
	if err != nil {
		t.Fatalf("ResolvePage must not fail on dangling references: %v", err)
	}
	if !page.Partial {
		t.Error("expected partial flag for dangling references")
	}
	if len(page.Docs) != 1 {
		t.Fatalf("document should still be returned, got %d docs", len(page.Docs))
	}

	doc := page.Docs[0]
	if _, ok := doc["location_id"]; ok {
		t.Error("unresolved location_id should be stripped")
	}
	if _, ok := doc["location"]; ok {
		t.Error("unresolved location must not be embedded")
	}
}

func TestResolveOne_FullResolution(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := companystore.New(db)
	fx := testutil.NewFixtures(t, db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	loc := fx.CreateLocation(ctx, "US", "CA", "SF", 37.7, -122.4)
	ind := fx.CreateIndustry(ctx, "Tech")
	contact := fx.CreateContact(ctx, "info@acme.com", "555-0100")
	co := fx.CreateCompany(ctx, "Acme", ind.ID, loc.ID, contact.ID)

	doc, partial, err := store.ResolveOne(ctx, co.ID)
	if err != nil {
		t.Fatalf("ResolveOne failed: %v", err)
	}
	if partial {
		t.Error("all references resolvable, but flagged partial")
	}
	for _, ref := range []string{"location_id", "industry_id", "contact_id"} {
		if _, ok := doc[ref]; ok {
			t.Errorf("resolved document must not carry %s", ref)
		}
	}
	embedded, ok := doc["contact"].(bson.M)
	if !ok {
		t.Fatalf("contact: got %T, want embedded object", doc["contact"])
	}
	if embedded["email"] != "info@acme.com" {
		t.Errorf("contact.email: got %v", embedded["email"])
	}
	if _, ok := embedded["created_at"]; ok {
		t.Error("embedded contact must not carry created_at")
	}
}

func TestResolveOne_NotFound(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := companystore.New(db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	fx := testutil.NewFixtures(t, db)
	fx.CreateCompany(ctx, "seed", primitive.NilObjectID, primitive.NilObjectID, primitive.NilObjectID)

	if _, _, err := store.ResolveOne(ctx, primitive.NewObjectID()); err != companystore.ErrNotFound {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}

func TestSearchByCity_GoesThroughLocations(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := companystore.New(db)
	fx := testutil.NewFixtures(t, db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	sf := fx.CreateLocation(ctx, "US", "CA", "San Francisco", 37.7, -122.4)
	ny := fx.CreateLocation(ctx, "US", "NY", "New York", 40.7, -74.0)
	fx.CreateCompany(ctx, "Acme", primitive.NilObjectID, sf.ID, primitive.NilObjectID)
	fx.CreateCompany(ctx, "Globex", primitive.NilObjectID, ny.ID, primitive.NilObjectID)

	docs, err := store.SearchByCity(ctx, "san fran", 0, 10)
	if err != nil {
		t.Fatalf("SearchByCity failed: %v", err)
	}
	if len(docs) != 1 {
		t.Fatalf("expected 1 company, got %d", len(docs))
	}
	if docs[0]["name"] != "Acme" {
		t.Errorf("name: got %v, want Acme", docs[0]["name"])
	}

	none, err := store.SearchByCity(ctx, "berlin", 0, 10)
	if err != nil {
		t.Fatalf("SearchByCity failed: %v", err)
	}
	if len(none) != 0 {
		t.Errorf("expected no matches, got %d", len(none))
	}
}
