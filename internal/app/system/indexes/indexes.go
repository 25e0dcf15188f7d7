// internal/app/system/indexes/indexes.go
package indexes

import (
	"context"
	"errors"
	"strings"

	"github.com/Instanvi/ABM-api/internal/app/store/documents"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.uber.org/zap"
)

/*
EnsureAll is called at startup. Each ensure* function is idempotent.
We aggregate errors so any problem is visible and startup can fail fast.
*/
func EnsureAll(ctx context.Context, db *mongo.Database, logger *zap.Logger) error {
	var problems []string

	if err := ensureCompanies(ctx, db, logger); err != nil {
		problems = append(problems, documents.Companies+": "+err.Error())
	}
	if err := ensureLocations(ctx, db, logger); err != nil {
		problems = append(problems, documents.Locations+": "+err.Error())
	}
	if err := ensureIndustries(ctx, db, logger); err != nil {
		problems = append(problems, documents.Industries+": "+err.Error())
	}
	if err := ensureContacts(ctx, db, logger); err != nil {
		problems = append(problems, documents.Contacts+": "+err.Error())
	}
	if err := ensureEmployees(ctx, db, logger); err != nil {
		problems = append(problems, documents.Employees+": "+err.Error())
	}

	if len(problems) > 0 {
		return errors.New(strings.Join(problems, "; "))
	}
	return nil
}

// ensureIndexSet creates the desired indexes for one collection. An index
// that already exists with the same keys is left alone; a conflict on
// options is reported so startup can fail fast.
func ensureIndexSet(ctx context.Context, coll *mongo.Collection, models []mongo.IndexModel, logger *zap.Logger) error {
	var errs []string
	for _, m := range models {
		name := ""
		if m.Options != nil && m.Options.Name != nil {
			name = *m.Options.Name
		}
		if _, err := coll.Indexes().CreateOne(ctx, m); err != nil {
			if isOptionsConflictErr(err) {
				logger.Warn("index exists with different options",
					zap.String("collection", coll.Name()),
					zap.String("name", name),
					zap.Error(err))
			}
			errs = append(errs, coll.Name()+"("+name+"): "+err.Error())
			continue
		}
		logger.Info("ensured index",
			zap.String("collection", coll.Name()),
			zap.String("name", name))
	}
	if len(errs) > 0 {
		return errors.New(strings.Join(errs, "; "))
	}
	return nil
}

// Mongo/DocDB sometimes returns IndexOptionsConflict when an index with the
// same keys already exists under a different name (or options differ).
func isOptionsConflictErr(err error) bool {
	if err == nil {
		return false
	}
	return strings.Contains(err.Error(), "IndexOptionsConflict")
}

func ensureCompanies(ctx context.Context, db *mongo.Database, logger *zap.Logger) error {
	return ensureIndexSet(ctx, db.Collection(documents.Companies), []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "name", Value: 1}},
			Options: options.Index().SetName("companies_name"),
		},
		{
			Keys:    bson.D{{Key: "industry_id", Value: 1}},
			Options: options.Index().SetName("companies_industry_id"),
		},
		{
			Keys:    bson.D{{Key: "location_id", Value: 1}},
			Options: options.Index().SetName("companies_location_id"),
		},
	}, logger)
}

func ensureLocations(ctx context.Context, db *mongo.Database, logger *zap.Logger) error {
	return ensureIndexSet(ctx, db.Collection(documents.Locations), []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "country", Value: 1}, {Key: "state", Value: 1}, {Key: "city", Value: 1}},
			Options: options.Index().SetName("locations_country_state_city"),
		},
	}, logger)
}

func ensureIndustries(ctx context.Context, db *mongo.Database, logger *zap.Logger) error {
	return ensureIndexSet(ctx, db.Collection(documents.Industries), []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "name", Value: 1}},
			Options: options.Index().SetName("industries_name"),
		},
	}, logger)
}

func ensureContacts(ctx context.Context, db *mongo.Database, logger *zap.Logger) error {
	return ensureIndexSet(ctx, db.Collection(documents.Contacts), []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "email", Value: 1}},
			Options: options.Index().SetName("contacts_email"),
		},
	}, logger)
}

func ensureEmployees(ctx context.Context, db *mongo.Database, logger *zap.Logger) error {
	return ensureIndexSet(ctx, db.Collection(documents.Employees), []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "last_name", Value: 1}, {Key: "first_name", Value: 1}},
			Options: options.Index().SetName("employees_name"),
		},
		{
			Keys:    bson.D{{Key: "job_title", Value: 1}},
			Options: options.Index().SetName("employees_job_title"),
		},
		{
			Keys:    bson.D{{Key: "company_id", Value: 1}},
			Options: options.Index().SetName("employees_company_id"),
		},
	}, logger)
}
