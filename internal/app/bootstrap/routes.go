// internal/app/bootstrap/routes.go
package bootstrap

import (
	"net/http"

	catalogfeature "github.com/Instanvi/ABM-api/internal/app/features/catalog"
	companyfeature "github.com/Instanvi/ABM-api/internal/app/features/company"
	employeefeature "github.com/Instanvi/ABM-api/internal/app/features/employee"
	healthfeature "github.com/Instanvi/ABM-api/internal/app/features/health"
	industryfeature "github.com/Instanvi/ABM-api/internal/app/features/industry"
	locationfeature "github.com/Instanvi/ABM-api/internal/app/features/location"
	votefeature "github.com/Instanvi/ABM-api/internal/app/features/vote"
	"github.com/Instanvi/ABM-api/internal/app/system/requestid"
	"github.com/dalemusser/waffle/config"
	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

// BuildHandler constructs the root HTTP handler (router) for this WAFFLE app.
//
// WAFFLE calls this after configuration, DB connections, schema setup, and
// any Startup hooks have completed. Each area of the API gets its own
// feature router mounted under its path prefix.
func BuildHandler(coreCfg *config.CoreConfig, appCfg AppConfig, deps DBDeps, logger *zap.Logger) (http.Handler, error) {
	r := chi.NewRouter()

	// Tag every request with an id so log lines can be correlated.
	r.Use(requestid.Middleware)

	// Health check endpoint for load balancers and orchestrators
	healthHandler := healthfeature.NewHandler(deps.MongoClient, logger)
	r.Mount("/health", healthfeature.Routes(healthHandler))

	// Collection browsing
	catalogHandler := catalogfeature.NewHandler(deps.MongoDatabase, logger)
	r.Mount("/catalog", catalogfeature.Routes(catalogHandler))

	// Companies and their referenced documents
	companyHandler := companyfeature.NewHandler(deps.MongoDatabase, logger)
	r.Mount("/company", companyfeature.Routes(companyHandler))

	locationHandler := locationfeature.NewHandler(deps.MongoDatabase, logger)
	r.Mount("/location", locationfeature.Routes(locationHandler))

	industryHandler := industryfeature.NewHandler(deps.MongoDatabase, logger)
	r.Mount("/industry", industryfeature.Routes(industryHandler))

	employeeHandler := employeefeature.NewHandler(deps.MongoDatabase, logger)
	r.Mount("/employee", employeefeature.Routes(employeeHandler))

	// Data quality voting
	voteHandler := votefeature.NewHandler(deps.MongoDatabase, logger)
	r.Mount("/vote", votefeature.Routes(voteHandler))

	return r, nil
}
