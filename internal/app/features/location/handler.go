// internal/app/features/location/handler.go
package location

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/Instanvi/ABM-api/internal/app/store/documents"
	locationstore "github.com/Instanvi/ABM-api/internal/app/store/locations"
	"github.com/Instanvi/ABM-api/internal/app/system/apierr"
	"github.com/Instanvi/ABM-api/internal/app/system/docid"
	"github.com/Instanvi/ABM-api/internal/domain/models"
	"github.com/dalemusser/waffle/pantry/query"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

// Handler serves the /location endpoints.
type Handler struct {
	locations *locationstore.Store
	log       *zap.Logger
}

func NewHandler(db *mongo.Database, logger *zap.Logger) *Handler {
	return &Handler{locations: locationstore.New(db), log: logger}
}

type locationInput struct {
	Country   *string  `json:"country"`
	State     *string  `json:"state"`
	City      *string  `json:"city"`
	Latitude  *float64 `json:"latitude"`
	Longitude *float64 `json:"longitude"`
}

func (l *locationInput) missingFields() []string {
	var missing []string
	if l.Country == nil {
		missing = append(missing, "country")
	}
	if l.State == nil {
		missing = append(missing, "state")
	}
	if l.City == nil {
		missing = append(missing, "city")
	}
	if l.Latitude == nil {
		missing = append(missing, "latitude")
	}
	if l.Longitude == nil {
		missing = append(missing, "longitude")
	}
	return missing
}

func (l *locationInput) model() models.Location {
	return models.Location{
		Country:   *l.Country,
		State:     *l.State,
		City:      *l.City,
		Latitude:  *l.Latitude,
		Longitude: *l.Longitude,
	}
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

// Add stores a batch of locations, deduplicating against existing documents.
func (h *Handler) Add(w http.ResponseWriter, r *http.Request) {
	var raw []json.RawMessage
	if err := json.NewDecoder(r.Body).Decode(&raw); err != nil {
		apierr.BadRequest(w, "Request body must be a JSON array of locations.")
		return
	}
	if len(raw) == 0 {
		apierr.BadRequest(w, "At least one location is required.")
		return
	}

	ctx := r.Context()
	resp := addResponse{SuccessfulResults: []string{}, FailedResults: []addFailure{}}
	for _, element := range raw {
		var in locationInput
		if err := json.Unmarshal(element, &in); err != nil {
			resp.FailedResults = append(resp.FailedResults, addFailure{Error: "malformed location entry", Data: element})
			continue
		}
		if missing := in.missingFields(); len(missing) > 0 {
			resp.FailedResults = append(resp.FailedResults, addFailure{
				Error: fmt.Sprintf("missing required fields: %s", strings.Join(missing, ", ")),
				Data:  element,
			})
			continue
		}
		id, err := h.locations.GetOrCreate(ctx, in.model())
		if err != nil {
			h.log.Error("location get-or-create failed", zap.Error(err))
			apierr.Internal(w)
			return
		}
		resp.SuccessfulResults = append(resp.SuccessfulResults, id.Hex())
	}

	resp.SuccessfulCount = len(resp.SuccessfulResults)
	resp.FailedCount = len(resp.FailedResults)
	switch {
	case resp.FailedCount == 0:
		resp.Message = "All Locations added successfully"
	case resp.SuccessfulCount == 0:
		resp.Message = "No locations were added"
	default:
		resp.Message = "Some Locations were added successfully but others failed"
	}
	apierr.JSON(w, http.StatusOK, resp)
}

var searchableFields = []string{"country", "state", "city"}

// Search finds locations by id or by one of country, state, city.
func (h *Handler) Search(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	if idParam := query.Get(r, "id"); idParam != "" {
		id, err := docid.Parse(idParam)
		if err != nil {
			apierr.InvalidID(w)
			return
		}
		loc, err := h.locations.GetByID(ctx, id)
		switch {
		case errors.Is(err, locationstore.ErrNotFound):
			apierr.NotFound(w, "Location not found")
			return
		case err != nil:
			h.log.Error("location lookup failed", zap.Error(err))
			apierr.Internal(w)
			return
		}
		apierr.JSON(w, http.StatusOK, map[string]any{
			"message": "Location found",
			"data":    []models.Location{loc},
		})
		return
	}

	for _, field := range searchableFields {
		value := query.Get(r, field)
		if value == "" {
			continue
		}
		docs, err := h.locations.SearchByField(ctx, field, value)
		if err != nil {
			h.log.Error("location search failed", zap.Error(err))
			apierr.Internal(w)
			return
		}
		if len(docs) == 0 {
			apierr.NotFound(w, "No locations found matching the search")
			return
		}
		apierr.JSON(w, http.StatusOK, map[string]any{
			"message": "Locations found",
			"data":    docs,
		})
		return
	}
	apierr.BadRequest(w, "Provide one of: id, country, state, city.")
}

type deleteResponse struct {
	Message         string                   `json:"message"`
	FailedResults   []documents.BatchFailure `json:"failed_results"`
	FailedCount     int                      `json:"failed_count"`
	SuccessfulCount int64                    `json:"successful_count"`
}

// Delete removes locations by id; a batch reports per-id failures while
// still deleting the rest.
func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	var hexIDs []string
	if err := json.NewDecoder(r.Body).Decode(&hexIDs); err != nil {
		apierr.BadRequest(w, "Request body must be a JSON array of ids.")
		return
	}
	if len(hexIDs) == 0 {
		apierr.BadRequest(w, "No ids were passed.")
		return
	}
	ids, err := docid.ParseAll(hexIDs)
	if err != nil {
		apierr.InvalidID(w)
		return
	}
	ctx := r.Context()

	if len(ids) == 1 {
		deleted, err := h.locations.Delete(ctx, ids[0])
		if err != nil {
			h.log.Error("location delete failed", zap.Error(err))
			apierr.Internal(w)
			return
		}
		if deleted == 0 {
			apierr.NotFound(w, "Location not found")
			return
		}
		apierr.JSON(w, http.StatusOK, map[string]string{
			"message": fmt.Sprintf("Location with ID %s has been deleted", hexIDs[0]),
		})
		return
	}

	result, err := h.locations.DeleteBatch(ctx, ids)
	if err != nil {
		h.log.Error("location batch delete failed", zap.Error(err))
		apierr.Internal(w)
		return
	}
	resp := deleteResponse{
		FailedResults:   result.Failed,
		FailedCount:     len(result.Failed),
		SuccessfulCount: result.Succeeded,
	}
	if resp.FailedResults == nil {
		resp.FailedResults = []documents.BatchFailure{}
	}
	if result.Succeeded == 0 {
		resp.Message = "No documents were deleted."
	} else {
		resp.Message = "Documents were deleted."
	}
	apierr.JSON(w, http.StatusOK, resp)
}

// Update sets fields on a location. Unknown fields pass through so callers
// can enrich their own documents.
func (h *Handler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := docid.Parse(query.Get(r, "id"))
	if err != nil {
		apierr.InvalidID(w)
		return
	}
	var fields bson.M
	if err := json.NewDecoder(r.Body).Decode(&fields); err != nil {
		apierr.BadRequest(w, "Request body must be a JSON object.")
		return
	}
	if len(fields) == 0 {
		apierr.BadRequest(w, "No fields to update.")
		return
	}
	err = h.locations.SetFields(r.Context(), id, fields)
	switch {
	case errors.Is(err, locationstore.ErrNotFound):
		apierr.NotFound(w, "Location not found")
		return
	case err != nil:
		h.log.Error("location update failed", zap.Error(err))
		apierr.Internal(w)
		return
	}
	apierr.JSON(w, http.StatusOK, map[string]any{
		"message":        fmt.Sprintf("Location with ID %s has been updated", id.Hex()),
		"updated_fields": fields,
	})
}
