package http

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/atinyakov/TaskTracker/internal/common"
	"go.uber.org/zap"
)

// Fixed client-facing messages. The not-found message never depends on why
// the task was not visible.
const (
	msgTaskNotFound       = "Task not found"
	msgUsernameTaken      = "Username already exists"
	msgInvalidCredentials = "Please check your login credentials"
	msgUnauthorized       = "Unauthorized"
	msgInternal           = "Internal server error"
)

// errorResponse is the JSON body of every error reply.
type errorResponse struct {
	StatusCode int    `json:"statusCode"`
	Message    string `json:"message"`
}

// writeJSON encodes v as the response body with the given status code.
func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// writeError maps err onto its status code and body. Unknown errors are
// logged and answered with a generic 500.
func writeError(w http.ResponseWriter, log *zap.Logger, err error) {
	status, msg := http.StatusInternalServerError, msgInternal

	switch {
	case errors.Is(err, common.ErrValidation), errors.Is(err, common.ErrBadStatus):
		status, msg = http.StatusBadRequest, err.Error()
	case errors.Is(err, common.ErrInvalidCredentials):
		status, msg = http.StatusUnauthorized, msgInvalidCredentials
	case errors.Is(err, common.ErrUnauthenticated):
		status, msg = http.StatusUnauthorized, msgUnauthorized
	case errors.Is(err, common.ErrNotFound):
		status, msg = http.StatusNotFound, msgTaskNotFound
	case errors.Is(err, common.ErrConflict):
		status, msg = http.StatusConflict, msgUsernameTaken
	default:
		if log != nil {
			log.Error("request failed", zap.Error(err))
		}
	}

	writeJSON(w, status, errorResponse{StatusCode: status, Message: msg})
}
