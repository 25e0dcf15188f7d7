// internal/app/system/apierr/apierr.go
package apierr

import (
	"encoding/json"
	"net/http"
)

// Code is a stable machine-readable error kind. Clients should switch on
// Code, not on message text, which is free to change.
type Code string

const (
	CodeNotFound     Code = "not_found"
	CodeInvalidInput Code = "invalid_input"
	CodeInvalidID    Code = "invalid_id"
	CodeInvalidVote  Code = "invalid_vote"
	CodeInvalidIssue Code = "invalid_issue"
	CodeInternal     Code = "internal"
)

// errorBody is the JSON envelope for error responses.
type errorBody struct {
	Code    Code   `json:"code"`
	Message string `json:"message"`
}

// JSON writes v as a JSON response with the given status.
func JSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// Write renders an error envelope with the given status, code, and message.
func Write(w http.ResponseWriter, status int, code Code, message string) {
	JSON(w, status, errorBody{Code: code, Message: message})
}

// NotFound renders a 404 with CodeNotFound.
func NotFound(w http.ResponseWriter, message string) {
	Write(w, http.StatusNotFound, CodeNotFound, message)
}

// BadRequest renders a 400 with CodeInvalidInput.
func BadRequest(w http.ResponseWriter, message string) {
	Write(w, http.StatusBadRequest, CodeInvalidInput, message)
}

// InvalidID renders a 400 with CodeInvalidID.
func InvalidID(w http.ResponseWriter) {
	Write(w, http.StatusBadRequest, CodeInvalidID, "Invalid ID format.")
}

// Internal renders a 500 with CodeInternal. The message is fixed; the
// real error goes to the log, never to the client.
func Internal(w http.ResponseWriter) {
	Write(w, http.StatusInternalServerError, CodeInternal, "Internal server error.")
}
