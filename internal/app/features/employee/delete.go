// internal/app/features/employee/delete.go
package employee

import (
	"encoding/json"
	"fmt"
	"net/http"

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

// Delete removes employees by id.
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
		deleted, err := h.employees.Delete(ctx, ids[0])
		if err != nil {
			h.log.Error("employee delete failed", zap.Error(err))
			apierr.Internal(w)
			return
		}
		if deleted == 0 {
			apierr.NotFound(w, "Employee not found")
			return
		}
		apierr.JSON(w, http.StatusOK, map[string]string{
			"message": fmt.Sprintf("Employee with ID %s has been deleted", hexIDs[0]),
		})
		return
	}

	result, err := h.employees.DeleteBatch(ctx, ids)
	if err != nil {
		h.log.Error("employee batch delete failed", zap.Error(err))
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
