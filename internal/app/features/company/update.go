// internal/app/features/company/update.go
package company

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"

	companystore "github.com/Instanvi/ABM-api/internal/app/store/companies"
	contactstore "github.com/Instanvi/ABM-api/internal/app/store/contacts"
	industrystore "github.com/Instanvi/ABM-api/internal/app/store/industries"
	locationstore "github.com/Instanvi/ABM-api/internal/app/store/locations"
	"github.com/Instanvi/ABM-api/internal/app/system/apierr"
	"github.com/Instanvi/ABM-api/internal/app/system/docid"
	"github.com/dalemusser/waffle/pantry/query"
	"go.mongodb.org/mongo-driver/bson"
	"go.uber.org/zap"
)

type companyUpdate struct {
	Name        *string         `json:"name"`
	Revenue     *string         `json:"revenue"`
	Size        *string         `json:"size"`
	Industry    json.RawMessage `json:"industry"`
	Location    *locationInput  `json:"location"`
	Contact     *contactInput   `json:"contact"`
	OtherFields map[string]any  `json:"other_fields"`
}

// Update edits a company and, when the payload carries nested location,
// contact, or industry sections, the referenced documents as well. A nested
// section on a company without that reference creates the child and links it.
func (h *Handler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := docid.Parse(query.Get(r, "id"))
	if err != nil {
		apierr.InvalidID(w)
		return
	}

	var upd companyUpdate
	if err := json.NewDecoder(r.Body).Decode(&upd); err != nil {
		apierr.BadRequest(w, "Request body must be a JSON object.")
		return
	}

	ctx := r.Context()
	existing, err := h.companies.GetByID(ctx, id)
	switch {
	case errors.Is(err, companystore.ErrNotFound):
		apierr.NotFound(w, "Company not found")
		return
	case err != nil:
		h.log.Error("company lookup failed", zap.Error(err))
		apierr.Internal(w)
		return
	}

	fields := bson.M{}
	updated := bson.M{}
	if upd.Name != nil {
		fields["name"] = *upd.Name
	}
	if upd.Revenue != nil {
		fields["revenue"] = *upd.Revenue
	}
	if upd.Size != nil {
		fields["size"] = *upd.Size
	}
	for k, v := range upd.OtherFields {
		fields[k] = v
	}

	if upd.Location != nil {
		if missing := upd.Location.missingFields(); len(missing) > 0 {
			apierr.Write(w, http.StatusUnprocessableEntity, apierr.CodeInvalidInput,
				fmt.Sprintf("Missing required fields in location: %s", strings.Join(missing, ", ")))
			return
		}
		loc := upd.Location.model()
		if existing.LocationID.IsZero() {
			locID, err := h.locations.Insert(ctx, loc)
			if err != nil {
				h.log.Error("location insert failed", zap.Error(err))
				apierr.Internal(w)
				return
			}
			fields["location_id"] = locID
			updated["location_id"] = locID.Hex()
		} else {
			err := h.locations.SetFields(ctx, existing.LocationID, bson.M{
				"country":   loc.Country,
				"state":     loc.State,
				"city":      loc.City,
				"latitude":  loc.Latitude,
				"longitude": loc.Longitude,
			})
			switch {
			case errors.Is(err, locationstore.ErrNotFound):
				apierr.NotFound(w, "Associated location not found")
				return
			case err != nil:
				h.log.Error("location update failed", zap.Error(err))
				apierr.Internal(w)
				return
			}
			updated["location"] = loc
		}
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

	if len(upd.Industry) > 0 {
		name, err := parseIndustry(upd.Industry)
		if err != nil {
			apierr.BadRequest(w, err.Error())
			return
		}
		if existing.IndustryID.IsZero() {
			industryID, err := h.industries.GetOrCreate(ctx, name)
			if err != nil {
				h.log.Error("industry insert failed", zap.Error(err))
				apierr.Internal(w)
				return
			}
			fields["industry_id"] = industryID
			updated["industry_id"] = industryID.Hex()
		} else {
			err := h.industries.SetFields(ctx, existing.IndustryID, bson.M{"name": name})
			switch {
			case errors.Is(err, industrystore.ErrNotFound):
				apierr.NotFound(w, "Associated industry not found")
				return
			case err != nil:
				h.log.Error("industry update failed", zap.Error(err))
				apierr.Internal(w)
				return
			}
			updated["industry"] = name
		}
	}

	if len(fields) == 0 && len(updated) == 0 {
		apierr.BadRequest(w, "No fields to update.")
		return
	}

	if len(fields) > 0 {
		if err := h.companies.SetFields(ctx, id, fields); err != nil {
			h.log.Error("company update failed", zap.Error(err))
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
		"message":        fmt.Sprintf("Company with ID %s has been updated", id.Hex()),
		"updated_fields": updated,
	})
}
