// internal/testutil/fixtures.go
package testutil

import (
	"context"
	"testing"
	"time"

	"github.com/Instanvi/ABM-api/internal/domain/models"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

// Fixtures provides helper methods for seeding test documents.
type Fixtures struct {
	db *mongo.Database
	t  *testing.T
}

// NewFixtures creates a Fixtures instance bound to the given test database.
func NewFixtures(t *testing.T, db *mongo.Database) *Fixtures {
	t.Helper()
	return &Fixtures{db: db, t: t}
}

// DB returns the underlying database for direct access in tests.
func (f *Fixtures) DB() *mongo.Database {
	return f.db
}

// CreateLocation seeds a location document and returns it with its ID.
func (f *Fixtures) CreateLocation(ctx context.Context, country, state, city string, lat, lng float64) models.Location {
	f.t.Helper()

	loc := models.Location{
		ID:        primitive.NewObjectID(),
		Country:   country,
		State:     state,
		City:      city,
		Latitude:  lat,
		Longitude: lng,
		Issues:    []models.Issue{},
		CreatedAt: time.Now().UTC(),
	}
	if _, err := f.db.Collection("Locations").InsertOne(ctx, loc); err != nil {
		f.t.Fatalf("failed to create test location: %v", err)
	}
	return loc
}

// CreateIndustry seeds an industry document and returns it with its ID.
func (f *Fixtures) CreateIndustry(ctx context.Context, name string) models.Industry {
	f.t.Helper()

	ind := models.Industry{
		ID:        primitive.NewObjectID(),
		Name:      name,
		Issues:    []models.Issue{},
		CreatedAt: time.Now().UTC(),
	}
	if _, err := f.db.Collection("Industries").InsertOne(ctx, ind); err != nil {
		f.t.Fatalf("failed to create test industry: %v", err)
	}
	return ind
}

// CreateContact seeds a contact document and returns it with its ID.
func (f *Fixtures) CreateContact(ctx context.Context, email string, phone ...string) models.Contact {
	f.t.Helper()

	if phone == nil {
		phone = []string{}
	}
	c := models.Contact{
		ID:        primitive.NewObjectID(),
		Phone:     phone,
		Email:     email,
		Issues:    []models.Issue{},
		CreatedAt: time.Now().UTC(),
	}
	if _, err := f.db.Collection("Contacts").InsertOne(ctx, c); err != nil {
		f.t.Fatalf("failed to create test contact: %v", err)
	}
	return c
}

// CreateCompany seeds a company referencing the given related documents.
// Zero ObjectIDs leave the corresponding reference unset.
func (f *Fixtures) CreateCompany(ctx context.Context, name string, industryID, locationID, contactID primitive.ObjectID) models.Company {
	f.t.Helper()

	co := models.Company{
		ID:         primitive.NewObjectID(),
		Name:       name,
		IndustryID: industryID,
		LocationID: locationID,
		ContactID:  contactID,
		Revenue:    "1M",
		Size:       "50",
		Issues:     []models.Issue{},
		CreatedAt:  time.Now().UTC(),
	}
	if _, err := f.db.Collection("Companies").InsertOne(ctx, co); err != nil {
		f.t.Fatalf("failed to create test company: %v", err)
	}
	return co
}

// CreateEmployee seeds an employee referencing the given contact/company.
func (f *Fixtures) CreateEmployee(ctx context.Context, first, last, title string, contactID, companyID primitive.ObjectID) models.Employee {
	f.t.Helper()

	e := models.Employee{
		ID:        primitive.NewObjectID(),
		FirstName: first,
		LastName:  last,
		JobTitle:  title,
		ContactID: contactID,
		CompanyID: companyID,
		Issues:    []models.Issue{},
		CreatedAt: time.Now().UTC(),
	}
	if _, err := f.db.Collection("Employees").InsertOne(ctx, e); err != nil {
		f.t.Fatalf("failed to create test employee: %v", err)
	}
	return e
}
