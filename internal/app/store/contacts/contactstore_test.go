package contactstore_test

import (
	"errors"
	"testing"

	contactstore "github.com/Instanvi/ABM-api/internal/app/store/contacts"
	"github.com/Instanvi/ABM-api/internal/domain/models"
	"github.com/Instanvi/ABM-api/internal/testutil"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func TestGetOrCreate_Dedup(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := contactstore.New(db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	c := models.Contact{Phone: []string{"+237650000001"}, Email: "info@acme.test"}
	first, err := store.GetOrCreate(ctx, c)
	if err != nil {
		t.Fatalf("GetOrCreate: %v", err)
	}
	second, err := store.GetOrCreate(ctx, c)
	if err != nil {
		t.Fatalf("GetOrCreate (repeat): %v", err)
	}
	if first != second {
		t.Errorf("duplicate contact created a new document: %s vs %s", first.Hex(), second.Hex())
	}
}

func TestGetOrCreate_DifferentPhoneIsNewDoc(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := contactstore.New(db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	first, err := store.GetOrCreate(ctx, models.Contact{Phone: []string{"+237650000001"}, Email: "info@acme.test"})
	if err != nil {
		t.Fatalf("GetOrCreate: %v", err)
	}
	second, err := store.GetOrCreate(ctx, models.Contact{Phone: []string{"+237650000002"}, Email: "info@acme.test"})
	if err != nil {
		t.Fatalf("GetOrCreate (different phone): %v", err)
	}
	if first == second {
		t.Errorf("different phone deduped to the same document")
	}
}

func TestSetFields_And_GetByID(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := contactstore.New(db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	id, err := store.GetOrCreate(ctx, models.Contact{Phone: []string{}, Email: "old@acme.test"})
	if err != nil {
		t.Fatalf("GetOrCreate: %v", err)
	}
	if err := store.SetFields(ctx, id, bson.M{"email": "new@acme.test"}); err != nil {
		t.Fatalf("SetFields: %v", err)
	}
	got, err := store.GetByID(ctx, id)
	if err != nil {
		t.Fatalf("GetByID: %v", err)
	}
	if got.Email != "new@acme.test" {
		t.Errorf("email = %q", got.Email)
	}
}

func TestSetFields_NotFound(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := contactstore.New(db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	err := store.SetFields(ctx, primitive.NewObjectID(), bson.M{"email": "x@acme.test"})
	if !errors.Is(err, contactstore.ErrNotFound) {
		t.Errorf("err = %v, want ErrNotFound", err)
	}
}
