// internal/app/features/vote/handler.go
package vote

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strings"

	"github.com/Instanvi/ABM-api/internal/app/store/documents"
	votestore "github.com/Instanvi/ABM-api/internal/app/store/votes"
	"github.com/Instanvi/ABM-api/internal/app/system/apierr"
	"github.com/Instanvi/ABM-api/internal/app/system/cleantext"
	"github.com/Instanvi/ABM-api/internal/app/system/docid"
	"github.com/Instanvi/ABM-api/internal/domain/models"
	"github.com/dalemusser/waffle/pantry/query"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

// Handler serves the /vote endpoints.
type Handler struct {
	votes *votestore.Store
	log   *zap.Logger
}

func NewHandler(db *mongo.Database, logger *zap.Logger) *Handler {
	return &Handler{votes: votestore.New(db), log: logger}
}

// collectionFor maps the caller-facing collection parameter onto a stored
// collection name. Only votable collections are accepted.
func collectionFor(param string) (string, bool) {
	switch strings.ToLower(param) {
	case "company", "companies":
		return documents.Companies, true
	case "employee", "employees":
		return documents.Employees, true
	}
	return "", false
}

type issueInput struct {
	Field      string `json:"field"`
	Reason     string `json:"reason"`
	Suggestion string `json:"suggestion"`
}

// Add records an up or down vote against a document. Downvotes carry an
// issue describing the contested field; the vote lands on whichever document
// actually owns that field, following references where needed. Issue text is
// sanitized before storage.
func (h *Handler) Add(w http.ResponseWriter, r *http.Request) {
	id, err := docid.Parse(query.Get(r, "id"))
	if err != nil {
		apierr.InvalidID(w)
		return
	}
	collection, ok := collectionFor(query.Get(r, "collection"))
	if !ok {
		apierr.BadRequest(w, "Collection must be one of: companies, employees.")
		return
	}
	voteParam := query.Get(r, "vote")

	var issue *models.Issue
	body, err := io.ReadAll(r.Body)
	if err == nil && len(body) > 0 {
		var in issueInput
		if err := json.Unmarshal(body, &in); err != nil {
			apierr.BadRequest(w, "Issue body must be a JSON object.")
			return
		}
		issue = &models.Issue{
			Field:      cleantext.Strip(in.Field),
			Reason:     cleantext.Strip(in.Reason),
			Suggestion: cleantext.Strip(in.Suggestion),
		}
	}

	err = h.votes.Perform(r.Context(), collection, id, voteParam, issue)
	switch {
	case errors.Is(err, votestore.ErrInvalidVote):
		apierr.Write(w, http.StatusBadRequest, apierr.CodeInvalidVote,
			"Vote must be either `upvote` or `downvote`.")
		return
	case errors.Is(err, votestore.ErrInvalidIssue):
		apierr.Write(w, http.StatusBadRequest, apierr.CodeInvalidIssue,
			"Downvotes require an issue with field, reason, and suggestion.")
		return
	case errors.Is(err, votestore.ErrNotFound):
		apierr.NotFound(w, "Document not found")
		return
	case err != nil:
		h.log.Error("vote failed", zap.Error(err))
		apierr.Internal(w)
		return
	}
	apierr.JSON(w, http.StatusOK, map[string]string{"message": "Vote recorded"})
}

// Details reports vote tallies for a document, including the tallies of the
// referenced documents a caller would see alongside it.
func (h *Handler) Details(w http.ResponseWriter, r *http.Request) {
	id, err := docid.Parse(query.Get(r, "id"))
	if err != nil {
		apierr.InvalidID(w)
		return
	}
	collection, ok := collectionFor(query.Get(r, "collection"))
	if !ok {
		apierr.BadRequest(w, "Collection must be one of: companies, employees.")
		return
	}

	tallies, err := h.votes.Details(r.Context(), collection, id)
	switch {
	case errors.Is(err, votestore.ErrNotFound):
		apierr.NotFound(w, "Document not found")
		return
	case err != nil:
		h.log.Error("vote details failed", zap.Error(err))
		apierr.Internal(w)
		return
	}
	apierr.JSON(w, http.StatusOK, map[string]any{
		"message": "Vote details found",
		"data":    tallies,
	})
}
