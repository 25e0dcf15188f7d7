package votestore_test

import (
	"testing"

	votestore "github.com/Instanvi/ABM-api/internal/app/store/votes"
	"github.com/Instanvi/ABM-api/internal/domain/models"
	"github.com/Instanvi/ABM-api/internal/testutil"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func issueFor(field string) *models.Issue {
	return &models.Issue{
		Field:      field,
		Reason:     "value looks wrong",
		Suggestion: "double-check the source",
	}
}

func tally(t *testing.T, fx *testutil.Fixtures, collection string, id primitive.ObjectID) (int64, int64, int) {
	t.Helper()
	ctx, cancel := testutil.TestContext()
	defer cancel()
	var doc struct {
		Upvotes   int64          `bson:"upvotes"`
		Downvotes int64          `bson:"downvotes"`
		Issues    []models.Issue `bson:"issues"`
	}
	err := fx.DB().Collection(collection).FindOne(ctx, bson.M{"_id": id}).Decode(&doc)
	if err != nil {
		t.Fatalf("tally lookup failed: %v", err)
	}
	return doc.Upvotes, doc.Downvotes, len(doc.Issues)
}

func TestPerform_UpvoteCompany(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := votestore.New(db)
	fx := testutil.NewFixtures(t, db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	co := fx.CreateCompany(ctx, "Acme", primitive.NilObjectID, primitive.NilObjectID, primitive.NilObjectID)

	if err := store.Perform(ctx, "Companies", co.ID, "upvote", nil); err != nil {
		t.Fatalf("Perform failed: %v", err)
	}

	up, down, issues := tally(t, fx, "Companies", co.ID)
	if up != 1 || down != 0 || issues != 0 {
		t.Errorf("tally: got up=%d down=%d issues=%d, want 1/0/0", up, down, issues)
	}
}

func TestPerform_DownvoteAppendsIssue(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := votestore.New(db)
	fx := testutil.NewFixtures(t, db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	co := fx.CreateCompany(ctx, "Acme", primitive.NilObjectID, primitive.NilObjectID, primitive.NilObjectID)

	if err := store.Perform(ctx, "Companies", co.ID, "downvote", issueFor("revenue")); err != nil {
		t.Fatalf("Perform failed: %v", err)
	}

	up, down, issues := tally(t, fx, "Companies", co.ID)
	if up != 0 || down != 1 || issues != 1 {
		t.Errorf("tally: got up=%d down=%d issues=%d, want 0/1/1", up, down, issues)
	}

	var co2 models.Company
	if err := fx.DB().Collection("Companies").FindOne(ctx, bson.M{"_id": co.ID}).Decode(&co2); err != nil {
		t.Fatalf("reload failed: %v", err)
	}
	if co2.Issues[0].CreatedAt.IsZero() {
		t.Error("issue should be stamped with a creation time")
	}
}

func TestPerform_DownvoteRequiresCompleteIssue(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := votestore.New(db)
	fx := testutil.NewFixtures(t, db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	co := fx.CreateCompany(ctx, "Acme", primitive.NilObjectID, primitive.NilObjectID, primitive.NilObjectID)

	cases := []*models.Issue{
		nil,
		{Field: "revenue", Reason: "wrong"},                     // no suggestion
		{Field: "revenue", Suggestion: "fix"},                   // no reason
		{Reason: "wrong", Suggestion: "fix"},                    // no field
	}
	for i, issue := range cases {
		if err := store.Perform(ctx, "Companies", co.ID, "downvote", issue); err != votestore.ErrInvalidIssue {
			t.Errorf("case %d: got %v, want ErrInvalidIssue", i, err)
		}
	}

	up, down, issues := tally(t, fx, "Companies", co.ID)
	if up != 0 || down != 0 || issues != 0 {
		t.Errorf("rejected downvotes must not change the document: up=%d down=%d issues=%d", up, down, issues)
	}
}

func TestPerform_InvalidVoteKind(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := votestore.New(db)
	fx := testutil.NewFixtures(t, db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	co := fx.CreateCompany(ctx, "Acme", primitive.NilObjectID, primitive.NilObjectID, primitive.NilObjectID)

	if err := store.Perform(ctx, "Companies", co.ID, "sideways", nil); err != votestore.ErrInvalidVote {
		t.Errorf("got %v, want ErrInvalidVote", err)
	}
}

func TestPerform_RoutesToContact(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := votestore.New(db)
	fx := testutil.NewFixtures(t, db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	contact := fx.CreateContact(ctx, "info@acme.com", "555-0100")
	co := fx.CreateCompany(ctx, "Acme", primitive.NilObjectID, primitive.NilObjectID, contact.ID)

	if err := store.Perform(ctx, "Companies", co.ID, "downvote", issueFor("email")); err != nil {
		t.Fatalf("Perform failed: %v", err)
	}

	// The company the client addressed is untouched; the contact took the vote.
	_, coDown, _ := tally(t, fx, "Companies", co.ID)
	if coDown != 0 {
		t.Errorf("company downvotes: got %d, want 0", coDown)
	}
	_, ctDown, ctIssues := tally(t, fx, "Contacts", contact.ID)
	if ctDown != 1 || ctIssues != 1 {
		t.Errorf("contact tally: got down=%d issues=%d, want 1/1", ctDown, ctIssues)
	}
}

func TestPerform_RoutesToLocationAndIndustry(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := votestore.New(db)
	fx := testutil.NewFixtures(t, db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	loc := fx.CreateLocation(ctx, "US", "CA", "SF", 37.7, -122.4)
	ind := fx.CreateIndustry(ctx, "Tech")
	co := fx.CreateCompany(ctx, "Acme", ind.ID, loc.ID, primitive.NilObjectID)

	if err := store.Perform(ctx, "Companies", co.ID, "downvote", issueFor("city")); err != nil {
		t.Fatalf("Perform (city) failed: %v", err)
	}
	if err := store.Perform(ctx, "Companies", co.ID, "downvote", issueFor("industry")); err != nil {
		t.Fatalf("Perform (industry) failed: %v", err)
	}

	_, locDown, _ := tally(t, fx, "Locations", loc.ID)
	if locDown != 1 {
		t.Errorf("location downvotes: got %d, want 1", locDown)
	}
	_, indDown, _ := tally(t, fx, "Industries", ind.ID)
	if indDown != 1 {
		t.Errorf("industry downvotes: got %d, want 1", indDown)
	}
}

func TestPerform_EmployeeContactRouting(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := votestore.New(db)
	fx := testutil.NewFixtures(t, db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	contact := fx.CreateContact(ctx, "jane@acme.com")
	emp := fx.CreateEmployee(ctx, "Jane", "Doe", "CTO", contact.ID, primitive.NilObjectID)

	if err := store.Perform(ctx, "Employees", emp.ID, "downvote", issueFor("phone")); err != nil {
		t.Fatalf("Perform failed: %v", err)
	}
	_, ctDown, _ := tally(t, fx, "Contacts", contact.ID)
	if ctDown != 1 {
		t.Errorf("contact downvotes: got %d, want 1", ctDown)
	}

	// A non-contact field stays on the employee itself.
	if err := store.Perform(ctx, "Employees", emp.ID, "downvote", issueFor("job_title")); err != nil {
		t.Fatalf("Perform failed: %v", err)
	}
	_, empDown, _ := tally(t, fx, "Employees", emp.ID)
	if empDown != 1 {
		t.Errorf("employee downvotes: got %d, want 1", empDown)
	}
}

func TestPerform_TargetNotFound(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := votestore.New(db)
	fx := testutil.NewFixtures(t, db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	fx.CreateCompany(ctx, "seed", primitive.NilObjectID, primitive.NilObjectID, primitive.NilObjectID)

	if err := store.Perform(ctx, "Companies", primitive.NewObjectID(), "upvote", nil); err != votestore.ErrNotFound {
		t.Errorf("got %v, want ErrNotFound", err)
	}
}

func TestDetails_Company(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := votestore.New(db)
	fx := testutil.NewFixtures(t, db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	loc := fx.CreateLocation(ctx, "US", "CA", "SF", 37.7, -122.4)
	ind := fx.CreateIndustry(ctx, "Tech")
	contact := fx.CreateContact(ctx, "info@acme.com")
	co := fx.CreateCompany(ctx, "Acme", ind.ID, loc.ID, contact.ID)

	if err := store.Perform(ctx, "Companies", co.ID, "upvote", nil); err != nil {
		t.Fatalf("Perform failed: %v", err)
	}

	report, err := store.Details(ctx, "Companies", co.ID)
	if err != nil {
		t.Fatalf("Details failed: %v", err)
	}
	for _, key := range []string{"company_info_votes", "contact_votes", "location_votes", "industry_votes"} {
		if _, ok := report[key]; !ok {
			t.Errorf("report missing %s", key)
		}
	}
	if report["company_info_votes"].Upvotes != 1 {
		t.Errorf("company upvotes: got %d, want 1", report["company_info_votes"].Upvotes)
	}
	if report["company_info_votes"].Issues == nil {
		t.Error("issues should encode as an empty list, not null")
	}
}

func TestDetails_InvalidCollection(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := votestore.New(db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	if _, err := store.Details(ctx, "Widgets", primitive.NewObjectID()); err != votestore.ErrInvalidCollection {
		t.Errorf("got %v, want ErrInvalidCollection", err)
	}
}
