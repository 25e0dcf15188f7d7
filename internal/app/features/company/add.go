// internal/app/features/company/add.go
package company

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"

	"github.com/Instanvi/ABM-api/internal/app/system/apierr"
	"github.com/Instanvi/ABM-api/internal/app/system/timeouts"
	"github.com/Instanvi/ABM-api/internal/domain/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.uber.org/zap"
)

type companyInput struct {
	Name     *string         `json:"name"`
	Industry json.RawMessage `json:"industry"`
	Location *locationInput  `json:"location"`
	Contact  *contactInput   `json:"contact"`
	Revenue  *string         `json:"revenue"`
	Size     *string         `json:"size"`
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

// Add inserts a batch of companies. Each element is validated on its own, so
// one malformed entry does not sink the rest of the batch. Referenced
// industries, locations, and contacts are deduplicated against existing
// documents before the company itself is stored.
func (h *Handler) Add(w http.ResponseWriter, r *http.Request) {
	var raw []json.RawMessage
	if err := json.NewDecoder(r.Body).Decode(&raw); err != nil {
		apierr.BadRequest(w, "Request body must be a JSON array of companies.")
		return
	}
	if len(raw) == 0 {
		apierr.BadRequest(w, "At least one company is required.")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Batch())
	defer cancel()

	var failed []addFailure
	var pending []models.Company

	for _, element := range raw {
		var in companyInput
		if err := json.Unmarshal(element, &in); err != nil {
			failed = append(failed, addFailure{Error: "malformed company entry", Data: element})
			continue
		}
		if msg := validateCompany(&in); msg != "" {
			failed = append(failed, addFailure{Error: msg, Data: element})
			continue
		}

		industryName, err := parseIndustry(in.Industry)
		if err != nil {
			failed = append(failed, addFailure{Error: err.Error(), Data: element})
			continue
		}

		doc := models.Company{
			Name:    *in.Name,
			Revenue: *in.Revenue,
			Size:    *in.Size,
			Issues:  []models.Issue{},
			Extra:   extraFields(element),
		}

		industryID, err := h.industries.GetOrCreate(ctx, industryName)
		if err != nil {
			h.log.Error("industry get-or-create failed", zap.Error(err))
			apierr.Internal(w)
			return
		}
		doc.IndustryID = industryID

		locationID, err := h.locations.GetOrCreate(ctx, in.Location.model())
		if err != nil {
			h.log.Error("location get-or-create failed", zap.Error(err))
			apierr.Internal(w)
			return
		}
		doc.LocationID = locationID

		if in.Contact != nil {
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
		}

		pending = append(pending, doc)
	}

	var inserted []string
	if len(pending) > 0 {
		ids, err := h.companies.InsertBatch(ctx, pending)
		if err != nil {
			h.log.Error("company batch insert failed", zap.Error(err))
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
		resp.Message = "All Companies added successfully"
	case len(inserted) == 0:
		resp.Message = "No companies were added"
	default:
		resp.Message = "Some Companies were added successfully but others failed"
	}
	apierr.JSON(w, http.StatusOK, resp)
}

func validateCompany(in *companyInput) string {
	var missing []string
	if in.Name == nil {
		missing = append(missing, "name")
	}
	if len(in.Industry) == 0 {
		missing = append(missing, "industry")
	}
	if in.Location == nil {
		missing = append(missing, "location")
	}
	if in.Revenue == nil {
		missing = append(missing, "revenue")
	}
	if in.Size == nil {
		missing = append(missing, "size")
	}
	if len(missing) > 0 {
		return fmt.Sprintf("missing required fields: %s", strings.Join(missing, ", "))
	}
	if locMissing := in.Location.missingFields(); len(locMissing) > 0 {
		return fmt.Sprintf("location is missing required fields: %s", strings.Join(locMissing, ", "))
	}
	if in.Contact != nil && in.Contact.Email == nil && len(in.Contact.Phone) == 0 {
		return "contact has to have either phone or email"
	}
	return ""
}

var knownCompanyFields = map[string]struct{}{
	"name": {}, "industry": {}, "location": {}, "contact": {},
	"revenue": {}, "size": {},
}

// extraFields keeps any caller-supplied fields beyond the modeled ones so a
// richer payload survives a round trip through storage.
func extraFields(element json.RawMessage) bson.M {
	var all map[string]any
	if err := json.Unmarshal(element, &all); err != nil {
		return nil
	}
	extra := bson.M{}
	for k, v := range all {
		if _, ok := knownCompanyFields[k]; !ok {
			extra[k] = v
		}
	}
	if len(extra) == 0 {
		return nil
	}
	return extra
}
