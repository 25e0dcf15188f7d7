package companystore_test

import (
	"testing"

	companystore "github.com/Instanvi/ABM-api/internal/app/store/companies"
	"github.com/Instanvi/ABM-api/internal/domain/models"
	"github.com/Instanvi/ABM-api/internal/testutil"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func TestInsertBatch_And_GetByID(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := companystore.New(db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	ids, err := store.InsertBatch(ctx, []models.Company{
		{Name: "Acme", Revenue: "1M", Size: "50"},
		{Name: "Globex", Revenue: "10M", Size: "500"},
	})
	if err != nil {
		t.Fatalf("InsertBatch failed: %v", err)
	}
	if len(ids) != 2 {
		t.Fatalf("expected 2 ids, got %d", len(ids))
	}

	co, err := store.GetByID(ctx, ids[0])
	if err != nil {
		t.Fatalf("GetByID failed: %v", err)
	}
	if co.Name != "Acme" {
		t.Errorf("name: got %q, want Acme", co.Name)
	}
	if co.CreatedAt.IsZero() {
		t.Error("expected CreatedAt to be stamped")
	}

	if _, err := store.GetByID(ctx, primitive.NewObjectID()); err != companystore.ErrNotFound {
		t.Errorf("expected ErrNotFound for unknown id, got %v", err)
	}
}

func TestDeleteCascade_WithLocation(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := companystore.New(db)
	fx := testutil.NewFixtures(t, db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	loc := fx.CreateLocation(ctx, "US", "CA", "SF", 37.7, -122.4)
	co := fx.CreateCompany(ctx, "Acme", primitive.NilObjectID, loc.ID, primitive.NilObjectID)

	res, err := store.DeleteCascade(ctx, co.ID)
	if err != nil {
		t.Fatalf("DeleteCascade failed: %v", err)
	}
	if res.LocationID != loc.ID {
		t.Errorf("cascade location: got %s, want %s", res.LocationID.Hex(), loc.ID.Hex())
	}

	if _, err := store.GetByID(ctx, co.ID); err != companystore.ErrNotFound {
		t.Errorf("company still present after cascade delete: %v", err)
	}
	n, _ := db.Collection("Locations").CountDocuments(ctx, bson.M{"_id": loc.ID})
	if n != 0 {
		t.Error("location still present after cascade delete")
	}
}

func TestDeleteCascade_NoLocation(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := companystore.New(db)
	fx := testutil.NewFixtures(t, db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	co := fx.CreateCompany(ctx, "Acme", primitive.NilObjectID, primitive.NilObjectID, primitive.NilObjectID)

	res, err := store.DeleteCascade(ctx, co.ID)
	if err != nil {
		t.Fatalf("DeleteCascade failed: %v", err)
	}
	if !res.LocationID.IsZero() {
		t.Errorf("expected no location in cascade result, got %s", res.LocationID.Hex())
	}
}

func TestDeleteCascade_MissingLocationTolerated(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := companystore.New(db)
	fx := testutil.NewFixtures(t, db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	// Reference a location that was already deleted out from under us.
	co := fx.CreateCompany(ctx, "Acme", primitive.NilObjectID, primitive.NewObjectID(), primitive.NilObjectID)

	if _, err := store.DeleteCascade(ctx, co.ID); err != nil {
		t.Fatalf("DeleteCascade should tolerate a missing child: %v", err)
	}
	if _, err := store.GetByID(ctx, co.ID); err != companystore.ErrNotFound {
		t.Error("company should be deleted despite missing location")
	}
}

func TestDeleteCascade_CompanyNotFound(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := companystore.New(db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	if _, err := store.InsertBatch(ctx, []models.Company{{Name: "seed"}}); err != nil {
		t.Fatalf("seed failed: %v", err)
	}
	if _, err := store.DeleteCascade(ctx, primitive.NewObjectID()); err != companystore.ErrNotFound {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}

func TestDeleteCascadeBatch_PartialSuccess(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := companystore.New(db)
	fx := testutil.NewFixtures(t, db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	locA := fx.CreateLocation(ctx, "US", "CA", "SF", 37.7, -122.4)
	a := fx.CreateCompany(ctx, "A", primitive.NilObjectID, locA.ID, primitive.NilObjectID)
	b := fx.CreateCompany(ctx, "B", primitive.NilObjectID, primitive.NilObjectID, primitive.NilObjectID)
	missing := primitive.NewObjectID()

	res, err := store.DeleteCascadeBatch(ctx, []primitive.ObjectID{a.ID, missing, b.ID})
	if err != nil {
		t.Fatalf("DeleteCascadeBatch failed: %v", err)
	}
	if res.Succeeded != 2 {
		t.Errorf("succeeded: got %d, want 2", res.Succeeded)
	}
	if len(res.Failed) != 1 {
		t.Fatalf("failed entries: got %d, want 1", len(res.Failed))
	}
	if res.Failed[0].Data != missing.Hex() {
		t.Errorf("failed id: got %s, want %s", res.Failed[0].Data, missing.Hex())
	}

	n, _ := db.Collection("Locations").CountDocuments(ctx, bson.M{"_id": locA.ID})
	if n != 0 {
		t.Error("location of deleted company should be gone")
	}
}
