package handler

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/vbote/auth-server/internal/model"
)

type errorResponse struct {
	Error string `json:"error"`
}

// handleError maps the domain error taxonomy to HTTP status codes.
// Anything outside the taxonomy is an infrastructure failure and is
// reported as an opaque 500.
func handleError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, model.ErrAuthenticationFailed):
		writeJSON(w, http.StatusUnauthorized, errorResponse{Error: model.ErrAuthenticationFailed.Error()})
	case errors.Is(err, model.ErrSessionInvalid):
		writeJSON(w, http.StatusUnauthorized, errorResponse{Error: model.ErrSessionInvalid.Error()})
	case errors.Is(err, model.ErrUserBlocked):
		writeJSON(w, http.StatusForbidden, errorResponse{Error: model.ErrUserBlocked.Error()})
	case errors.Is(err, model.ErrUserNotFound):
		writeJSON(w, http.StatusNotFound, errorResponse{Error: model.ErrUserNotFound.Error()})
	case errors.Is(err, model.ErrUserAlreadyExists):
		writeJSON(w, http.StatusConflict, errorResponse{Error: model.ErrUserAlreadyExists.Error()})
	default:
		writeJSON(w, http.StatusInternalServerError, errorResponse{Error: "internal server error"})
	}
}

func writeValidationError(w http.ResponseWriter, err error) {
	writeJSON(w, http.StatusBadRequest, errorResponse{Error: err.Error()})
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}
