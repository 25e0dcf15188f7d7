// internal/app/features/industry/handler.go
package industry

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/Instanvi/ABM-api/internal/app/store/documents"
	industrystore "github.com/Instanvi/ABM-api/internal/app/store/industries"
	"github.com/Instanvi/ABM-api/internal/app/system/apierr"
	"github.com/Instanvi/ABM-api/internal/app/system/docid"
	"github.com/Instanvi/ABM-api/internal/domain/models"
	"github.com/dalemusser/waffle/pantry/query"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

// Handler serves the /industry endpoints.
type Handler struct {
	industries *industrystore.Store
	log        *zap.Logger
}

func NewHandler(db *mongo.Database, logger *zap.Logger) *Handler {
	return &Handler{industries: industrystore.New(db), log: logger}
}

// List returns every stored industry.
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	docs, err := h.industries.All(r.Context())
	if err != nil {
		h.log.Error("industry list failed", zap.Error(err))
		apierr.Internal(w)
		return
	}
	if docs == nil {
		docs = []models.Industry{}
	}
	apierr.JSON(w, http.StatusOK, map[string]any{
		"message": "Industries found",
		"data":    docs,
	})
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

// Add stores a batch of industries. Each entry is either a bare name or an
// object with a name field; duplicates resolve to the existing document.
func (h *Handler) Add(w http.ResponseWriter, r *http.Request) {
	var raw []json.RawMessage
	if err := json.NewDecoder(r.Body).Decode(&raw); err != nil {
		apierr.BadRequest(w, "Request body must be a JSON array of industries.")
		return
	}
	if len(raw) == 0 {
		apierr.BadRequest(w, "At least one industry is required.")
		return
	}

	ctx := r.Context()
	resp := addResponse{SuccessfulResults: []string{}, FailedResults: []addFailure{}}
	for _, element := range raw {
		name, err := parseName(element)
		if err != nil {
			resp.FailedResults = append(resp.FailedResults, addFailure{Error: err.Error(), Data: element})
			continue
		}
		id, err := h.industries.GetOrCreate(ctx, name)
		if err != nil {
			h.log.Error("industry get-or-create failed", zap.Error(err))
			apierr.Internal(w)
			return
		}
		resp.SuccessfulResults = append(resp.SuccessfulResults, id.Hex())
	}

	resp.SuccessfulCount = len(resp.SuccessfulResults)
	resp.FailedCount = len(resp.FailedResults)
	switch {
	case resp.FailedCount == 0:
		resp.Message = "All Industries added successfully"
	case resp.SuccessfulCount == 0:
		resp.Message = "No industries were added"
	default:
		resp.Message = "Some Industries were added successfully but others failed"
	}
	apierr.JSON(w, http.StatusOK, resp)
}

func parseName(raw json.RawMessage) (string, error) {
	var s string
	if err := json.Unmarshal(raw, &s); err == nil && s != "" {
		return s, nil
	}
	var obj struct {
		Name string `json:"name"`
	}
	if err := json.Unmarshal(raw, &obj); err == nil && obj.Name != "" {
		return obj.Name, nil
	}
	return "", errors.New("industry must be a name or an object with a `name` field")
}

// Search finds industries by id or name.
func (h *Handler) Search(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	if idParam := query.Get(r, "id"); idParam != "" {
		id, err := docid.Parse(idParam)
		if err != nil {
			apierr.InvalidID(w)
			return
		}
		doc, err := h.industries.GetByID(ctx, id)
		switch {
		case errors.Is(err, industrystore.ErrNotFound):
			apierr.NotFound(w, "Industry not found")
			return
		case err != nil:
			h.log.Error("industry lookup failed", zap.Error(err))
			apierr.Internal(w)
			return
		}
		apierr.JSON(w, http.StatusOK, map[string]any{
			"message": "Industry found",
			"data":    []models.Industry{doc},
		})
		return
	}

	name := query.Get(r, "name")
	if name == "" {
		apierr.BadRequest(w, "Provide one of: id, name.")
		return
	}
	docs, err := h.industries.SearchByName(ctx, name)
	if err != nil {
		h.log.Error("industry search failed", zap.Error(err))
		apierr.Internal(w)
		return
	}
	if len(docs) == 0 {
		apierr.NotFound(w, "No industries found matching the search")
		return
	}
	apierr.JSON(w, http.StatusOK, map[string]any{
		"message": "Industries found",
		"data":    docs,
	})
}

type deleteResponse struct {
	Message         string                   `json:"message"`
	FailedResults   []documents.BatchFailure `json:"failed_results"`
	FailedCount     int                      `json:"failed_count"`
	SuccessfulCount int64                    `json:"successful_count"`
}

// Delete removes industries by id.
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
		deleted, err := h.industries.Delete(ctx, ids[0])
		if err != nil {
			h.log.Error("industry delete failed", zap.Error(err))
			apierr.Internal(w)
			return
		}
		if deleted == 0 {
			apierr.NotFound(w, "Industry not found")
			return
		}
		apierr.JSON(w, http.StatusOK, map[string]string{
			"message": fmt.Sprintf("Industry with ID %s has been deleted", hexIDs[0]),
		})
		return
	}

	result, err := h.industries.DeleteBatch(ctx, ids)
	if err != nil {
		h.log.Error("industry batch delete failed", zap.Error(err))
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

// Update renames an industry.
func (h *Handler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := docid.Parse(query.Get(r, "id"))
	if err != nil {
		apierr.InvalidID(w)
		return
	}
	var body struct {
		Name string `json:"name"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil || body.Name == "" {
		apierr.BadRequest(w, "Request body must carry a non-empty name.")
		return
	}
	err = h.industries.SetFields(r.Context(), id, bson.M{"name": body.Name})
	switch {
	case errors.Is(err, industrystore.ErrNotFound):
		apierr.NotFound(w, "Industry not found")
		return
	case err != nil:
		h.log.Error("industry update failed", zap.Error(err))
		apierr.Internal(w)
		return
	}
	apierr.JSON(w, http.StatusOK, map[string]any{
		"message":        fmt.Sprintf("Industry with ID %s has been updated", id.Hex()),
		"updated_fields": map[string]string{"name": body.Name},
	})
}
