// internal/app/features/employee/update.go
package employee

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	companystore "github.com/Instanvi/ABM-api/internal/app/store/companies"
	contactstore "github.com/Instanvi/ABM-api/internal/app/store/contacts"
	employeestore "github.com/Instanvi/ABM-api/internal/app/store/employees"
	"github.com/Instanvi/ABM-api/internal/app/system/apierr"
	"github.com/Instanvi/ABM-api/internal/app/system/docid"
	"github.com/dalemusser/waffle/pantry/query"
	"go.mongodb.org/mongo-driver/bson"
	"go.uber.org/zap"
)

type employeeUpdate struct {
	FirstName   *string        `json:"first_name"`
	LastName    *string        `json:"last_name"`
	JobTitle    *string        `json:"job_title"`
	CompanyID   *string        `json:"company_id"`
	Contact     *contactInput  `json:"contact"`
	OtherFields map[string]any `json:"other_fields"`
}

// Update edits an employee and, when the payload carries a nested contact
// section, the referenced contact as well.
func (h *Handler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := docid.Parse(query.Get(r, "id"))
	if err != nil {
		apierr.InvalidID(w)
		return
	}

	var upd employeeUpdate
	if err := json.NewDecoder(r.Body).Decode(&upd); err != nil {
		apierr.BadRequest(w, "Request body must be a JSON object.")
		return
	}

	ctx := r.Context()
	existing, err := h.employees.GetByID(ctx, id)
	switch {
	case errors.Is(err, employeestore.ErrNotFound):
		apierr.NotFound(w, "Employee not found")
		return
	case err != nil:
		h.log.Error("employee lookup failed", zap.Error(err))
		apierr.Internal(w)
		return
	}

	fields := bson.M{}
	updated := bson.M{}
	if upd.FirstName != nil {
		fields["first_name"] = *upd.FirstName
	}
	if upd.LastName != nil {
		fields["last_name"] = *upd.LastName
	}
	if upd.JobTitle != nil {
		fields["job_title"] = *upd.JobTitle
	}
	for k, v := range upd.OtherFields {
		fields[k] = v
	}

	if upd.CompanyID != nil {
		companyID, err := docid.Parse(*upd.CompanyID)
		if err != nil {
			apierr.InvalidID(w)
			return
		}
		_, err = h.companies.GetByID(ctx, companyID)
		switch {
		case errors.Is(err, companystore.ErrNotFound):
			apierr.NotFound(w, "Company not found")
			return
		case err != nil:
			h.log.Error("company lookup failed", zap.Error(err))
			apierr.Internal(w)
			return
		}
		fields["company_id"] = companyID
	}

	if upd.Contact != nil {
		if upd.Contact.Email == nil || len(upd.Contact.Phone) == 0 {
			apierr.Write(w, http.StatusUnprocessableEntity, apierr.CodeInvalidInput,
				"Contact updates require both phone and email.")
			return
		}
		contact, err := upd.Contact.model()
		if err != nil {
			apierr.BadRequest(w, err.Error())
			return
		}
		if existing.ContactID.IsZero() {
			contactID, err := h.contacts.GetOrCreate(ctx, contact)
			if err != nil {
				h.log.Error("contact insert failed", zap.Error(err))
				apierr.Internal(w)
				return
			}
			fields["contact_id"] = contactID
			updated["contact_id"] = contactID.Hex()
		} else {
			err := h.contacts.SetFields(ctx, existing.ContactID, bson.M{
				"phone": contact.Phone,
				"email": contact.Email,
			})
			switch {
			case errors.Is(err, contactstore.ErrNotFound):
				apierr.NotFound(w, "Associated contact not found")
				return
			case err != nil:
				h.log.Error("contact update failed", zap.Error(err))
				apierr.Internal(w)
				return
			}
			updated["contact"] = contact
		}
	}

	if len(fields) == 0 && len(updated) == 0 {
		apierr.BadRequest(w, "No fields to update.")
		return
	}

	if len(fields) > 0 {
		if err := h.employees.SetFields(ctx, id, fields); err != nil {
			h.log.Error("employee update failed", zap.Error(err))
			apierr.Internal(w)
			return
		}
		for k, v := range fields {
			if _, ok := updated[k]; !ok {
				updated[k] = v
			}
		}
	}

	apierr.JSON(w, http.StatusOK, map[string]any{
		"message":        fmt.Sprintf("Employee with ID %s has been updated", id.Hex()),
		"updated_fields": updated,
	})
}
