// internal/app/features/employee/add.go
package employee

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"

	companystore "github.com/Instanvi/ABM-api/internal/app/store/companies"
	"github.com/Instanvi/ABM-api/internal/app/system/apierr"
	"github.com/Instanvi/ABM-api/internal/app/system/docid"
	"github.com/Instanvi/ABM-api/internal/app/system/timeouts"
	"github.com/Instanvi/ABM-api/internal/domain/models"
	"go.uber.org/zap"
)

type employeeInput struct {
	FirstName *string       `json:"first_name"`
	LastName  *string       `json:"last_name"`
	JobTitle  *string       `json:"job_title"`
	CompanyID *string       `json:"company_id"`
	Contact   *contactInput `json:"contact"`
}

type addFailure struct {
	Error string          `json:"error"`
	Data  json.RawMessage `json:"data"`
}

type addResponse struct {
	Message           string       `json:"message"`
	SuccessfulResults []string     `json:"successful_results"`
	FailedResults     []addFailure `json:"failed_results"`
	SuccessfulCount   int          `json:"successful_count"`
	FailedCount       int          `json:"failed_count"`
}

// Add inserts a batch of employees. Every entry must carry a contact, which
// is deduplicated the same way company contacts are; a company_id, when
// given, must name an existing company.
func (h *Handler) Add(w http.ResponseWriter, r *http.Request) {
	var raw []json.RawMessage
	if err := json.NewDecoder(r.Body).Decode(&raw); err != nil {
		apierr.BadRequest(w, "Request body must be a JSON array of employees.")
		return
	}
	if len(raw) == 0 {
		apierr.BadRequest(w, "At least one employee is required.")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Batch())
	defer cancel()

	var failed []addFailure
	var pending []models.Employee

	for _, element := range raw {
		var in employeeInput
		if err := json.Unmarshal(element, &in); err != nil {
			failed = append(failed, addFailure{Error: "malformed employee entry", Data: element})
			continue
		}
		var missing []string
		if in.FirstName == nil {
			missing = append(missing, "first_name")
		}
		if in.LastName == nil {
			missing = append(missing, "last_name")
		}
		if in.JobTitle == nil {
			missing = append(missing, "job_title")
		}
		if in.Contact == nil {
			missing = append(missing, "contact")
		}
		if len(missing) > 0 {
			failed = append(failed, addFailure{
				Error: fmt.Sprintf("missing required fields: %s", strings.Join(missing, ", ")),
				Data:  element,
			})
			continue
		}

		doc := models.Employee{
			FirstName: *in.FirstName,
			LastName:  *in.LastName,
			JobTitle:  *in.JobTitle,
		}

		if in.CompanyID != nil {
			companyID, err := docid.Parse(*in.CompanyID)
			if err != nil {
				failed = append(failed, addFailure{Error: "Invalid company_id format", Data: element})
				continue
			}
			_, err = h.companies.GetByID(ctx, companyID)
			switch {
			case errors.Is(err, companystore.ErrNotFound):
				failed = append(failed, addFailure{Error: "Company not found", Data: element})
				continue
			case err != nil:
				h.log.Error("company lookup failed", zap.Error(err))
				apierr.Internal(w)
				return
			}
			doc.CompanyID = companyID
		}

		contact, err := in.Contact.model()
		if err != nil {
			failed = append(failed, addFailure{Error: err.Error(), Data: element})
			continue
		}
		contactID, err := h.contacts.GetOrCreate(ctx, contact)
		if err != nil {
			h.log.Error("contact get-or-create failed", zap.Error(err))
			apierr.Internal(w)
			return
		}
		doc.ContactID = contactID

		pending = append(pending, doc)
	}

	var inserted []string
	if len(pending) > 0 {
		ids, err := h.employees.InsertBatch(ctx, pending)
		if err != nil {
			h.log.Error("employee batch insert failed", zap.Error(err))
			apierr.Internal(w)
			return
		}
		inserted = make([]string, len(ids))
		for i, id := range ids {
			inserted[i] = id.Hex()
		}
	}

	resp := addResponse{
		SuccessfulResults: inserted,
		FailedResults:     failed,
		SuccessfulCount:   len(inserted),
		FailedCount:       len(failed),
	}
	if resp.SuccessfulResults == nil {
		resp.SuccessfulResults = []string{}
	}
	if resp.FailedResults == nil {
		resp.FailedResults = []addFailure{}
	}
	switch {
	case len(failed) == 0:
		resp.Message = "All Employees added successfully"
	case len(inserted) == 0:
		resp.Message = "No employees were added"
	default:
		resp.Message = "Some Employees were added successfully but others failed"
	}
	apierr.JSON(w, http.StatusOK, resp)
}
