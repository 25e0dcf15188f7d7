// internal/app/features/catalog/handler.go
package catalog

import (
	"net/http"
	"strings"

	companystore "github.com/Instanvi/ABM-api/internal/app/store/companies"
	"github.com/Instanvi/ABM-api/internal/app/store/documents"
	"github.com/Instanvi/ABM-api/internal/app/system/apierr"
	"github.com/Instanvi/ABM-api/internal/app/system/paging"
	"github.com/dalemusser/waffle/pantry/query"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

// Handler serves the /catalog endpoint.
type Handler struct {
	docs      *documents.Store
	companies *companystore.Store
	log       *zap.Logger
}

func NewHandler(db *mongo.Database, logger *zap.Logger) *Handler {
	return &Handler{
		docs:      documents.New(db),
		companies: companystore.New(db),
		log:       logger,
	}
}

var catalogCollections = map[string]string{
	"companies":  documents.Companies,
	"locations":  documents.Locations,
	"industries": documents.Industries,
	"contacts":   documents.Contacts,
	"employees":  documents.Employees,
}

type listResponse struct {
	Message        string   `json:"message"`
	Data           []bson.M `json:"data"`
	Page           int      `json:"page"`
	Limit          int      `json:"limit"`
	TotalDocuments int64    `json:"total_documents"`
	TotalPages     int64    `json:"total_pages"`
	Partial        bool     `json:"partial,omitempty"`
}

// List pages through a collection. Company pages resolve their location and
// industry references; other collections return stored documents as-is.
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	name, ok := catalogCollections[strings.ToLower(query.Get(r, "collection"))]
	if !ok {
		apierr.NotFound(w, "Collection not found")
		return
	}

	ctx := r.Context()
	page := paging.Parse(r)

	if name == documents.Companies {
		result, err := h.companies.ResolvePage(ctx, page.Skip(), int64(page.Limit))
		if err != nil {
			h.log.Error("catalog page failed", zap.Error(err))
			apierr.Internal(w)
			return
		}
		if result.Docs == nil {
			result.Docs = []bson.M{}
		}
		apierr.JSON(w, http.StatusOK, listResponse{
			Message:        "Documents found",
			Data:           result.Docs,
			Page:           page.Number,
			Limit:          page.Limit,
			TotalDocuments: result.Total,
			TotalPages:     paging.TotalPages(result.Total, page.Limit),
			Partial:        result.Partial,
		})
		return
	}

	docs, err := h.docs.FindPage(ctx, name, bson.M{}, page.Skip(), int64(page.Limit))
	if err != nil {
		h.log.Error("catalog page failed", zap.Error(err))
		apierr.Internal(w)
		return
	}
	total, err := h.docs.Count(ctx, name, bson.M{})
	if err != nil {
		h.log.Error("catalog count failed", zap.Error(err))
		apierr.Internal(w)
		return
	}
	if docs == nil {
		docs = []bson.M{}
	}
	apierr.JSON(w, http.StatusOK, listResponse{
		Message:        "Documents found",
		Data:           docs,
		Page:           page.Number,
		Limit:          page.Limit,
		TotalDocuments: total,
		TotalPages:     paging.TotalPages(total, page.Limit),
	})
}
