// internal/app/features/company/search.go
package company

import (
	"errors"
	"net/http"

	companystore "github.com/Instanvi/ABM-api/internal/app/store/companies"
	"github.com/Instanvi/ABM-api/internal/app/system/apierr"
	"github.com/Instanvi/ABM-api/internal/app/system/docid"
	"github.com/Instanvi/ABM-api/internal/app/system/paging"
	"github.com/dalemusser/waffle/pantry/query"
	"go.mongodb.org/mongo-driver/bson"
	"go.uber.org/zap"
)

type searchResponse struct {
	Message string   `json:"message"`
	Data    []bson.M `json:"data"`
	Partial bool     `json:"partial,omitempty"`
}

// Search looks companies up by id, name, city, or industry. Exactly one
// criterion is honored, checked in that order. The id lookup resolves the
// referenced location, industry, and contact; list lookups are paged and
// return the stored documents as-is.
func (h *Handler) Search(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	page := paging.Parse(r)

	if idParam := query.Get(r, "id"); idParam != "" {
		id, err := docid.Parse(idParam)
		if err != nil {
			apierr.InvalidID(w)
			return
		}
		doc, partial, err := h.companies.ResolveOne(ctx, id)
		switch {
		case errors.Is(err, companystore.ErrNotFound):
			apierr.NotFound(w, "Company not found")
			return
		case err != nil:
			h.log.Error("company lookup failed", zap.Error(err))
			apierr.Internal(w)
			return
		}
		apierr.JSON(w, http.StatusOK, searchResponse{
			Message: "Company found",
			Data:    []bson.M{doc},
			Partial: partial,
		})
		return
	}

	var (
		docs []bson.M
		err  error
	)
	switch {
	case query.Get(r, "name") != "":
		docs, err = h.companies.SearchByName(ctx, query.Get(r, "name"), page.Skip(), int64(page.Limit))
	case query.Get(r, "city") != "":
		docs, err = h.companies.SearchByCity(ctx, query.Get(r, "city"), page.Skip(), int64(page.Limit))
	case query.Get(r, "industry") != "":
		docs, err = h.companies.SearchByIndustry(ctx, query.Get(r, "industry"), page.Skip(), int64(page.Limit))
	default:
		apierr.BadRequest(w, "Provide one of: id, name, city, industry.")
		return
	}
	if err != nil {
		h.log.Error("company search failed", zap.Error(err))
		apierr.Internal(w)
		return
	}
	if len(docs) == 0 {
		apierr.NotFound(w, "No companies found matching the search")
		return
	}
	apierr.JSON(w, http.StatusOK, searchResponse{Message: "Companies found", Data: docs})
}
