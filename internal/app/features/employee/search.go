// internal/app/features/employee/search.go
package employee

import (
	"errors"
	"net/http"

	employeestore "github.com/Instanvi/ABM-api/internal/app/store/employees"
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

var searchableFields = []string{"first_name", "last_name", "job_title"}

// Search finds employees by id, by name fields, by job title, or by the
// company they belong to. Results embed the employee's contact document.
func (h *Handler) Search(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	page := paging.Parse(r)

	if idParam := query.Get(r, "id"); idParam != "" {
		id, err := docid.Parse(idParam)
		if err != nil {
			apierr.InvalidID(w)
			return
		}
		doc, partial, err := h.employees.ResolveOne(ctx, id)
		switch {
		case errors.Is(err, employeestore.ErrNotFound):
			apierr.NotFound(w, "Employee not found")
			return
		case err != nil:
			h.log.Error("employee lookup failed", zap.Error(err))
			apierr.Internal(w)
			return
		}
		apierr.JSON(w, http.StatusOK, searchResponse{
			Message: "Employee found",
			Data:    []bson.M{doc},
			Partial: partial,
		})
		return
	}

	if companyParam := query.Get(r, "company_id"); companyParam != "" {
		companyID, err := docid.Parse(companyParam)
		if err != nil {
			apierr.InvalidID(w)
			return
		}
		docs, partial, err := h.employees.ByCompany(ctx, companyID, page.Skip(), int64(page.Limit))
		if err != nil {
			h.log.Error("employee search failed", zap.Error(err))
			apierr.Internal(w)
			return
		}
		writeResults(w, docs, partial)
		return
	}

	for _, field := range searchableFields {
		value := query.Get(r, field)
		if value == "" {
			continue
		}
		docs, partial, err := h.employees.SearchByField(ctx, field, value, page.Skip(), int64(page.Limit))
		if err != nil {
			h.log.Error("employee search failed", zap.Error(err))
			apierr.Internal(w)
			return
		}
		writeResults(w, docs, partial)
		return
	}
	apierr.BadRequest(w, "Provide one of: id, first_name, last_name, job_title, company_id.")
}

func writeResults(w http.ResponseWriter, docs []bson.M, partial bool) {
	if len(docs) == 0 {
		apierr.NotFound(w, "No employees found matching the search")
		return
	}
	apierr.JSON(w, http.StatusOK, searchResponse{
		Message: "Employees found",
		Data:    docs,
		Partial: partial,
	})
}
