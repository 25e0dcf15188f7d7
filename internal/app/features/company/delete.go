// internal/app/features/company/delete.go
package company

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	companystore "github.com/Instanvi/ABM-api/internal/app/store/companies"
	"github.com/Instanvi/ABM-api/internal/app/store/documents"
	"github.com/Instanvi/ABM-api/internal/app/system/apierr"
	"github.com/Instanvi/ABM-api/internal/app/system/docid"
	"go.uber.org/zap"
)

type deleteResponse struct {
	Message         string                   `json:"message"`
	FailedResults   []documents.BatchFailure `json:"failed_results"`
	FailedCount     int                      `json:"failed_count"`
	SuccessfulCount int64                    `json:"successful_count"`
}

// Delete removes companies by id. The body is a JSON array of hex ids; a
// single id cascades to the company's location, a batch reports per-id
// failures while still deleting the rest.
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
		res, err := h.companies.DeleteCascade(ctx, ids[0])
		switch {
		case errors.Is(err, companystore.ErrNotFound):
			apierr.NotFound(w, "Company not found")
			return
		case err != nil:
			h.log.Error("company delete failed", zap.Error(err))
			apierr.Internal(w)
			return
		}
		msg := fmt.Sprintf("Company with ID %s has been deleted", hexIDs[0])
		if !res.LocationID.IsZero() {
			msg = fmt.Sprintf("Company with ID %s and associated location with ID %s have been deleted",
				hexIDs[0], res.LocationID.Hex())
		}
		apierr.JSON(w, http.StatusOK, map[string]string{"message": msg})
		return
	}

	result, err := h.companies.DeleteCascadeBatch(ctx, ids)
	if err != nil {
		h.log.Error("company batch delete failed", zap.Error(err))
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
