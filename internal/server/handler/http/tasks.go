package http

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"

	"github.com/atinyakov/TaskTracker/internal/common"
	"github.com/atinyakov/TaskTracker/internal/middleware"
	"github.com/atinyakov/TaskTracker/internal/models"
	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

// TaskService defines the task operations required by the TaskHandler.
// Every call is scoped to ownerID.
type TaskService interface {
	Create(ctx context.Context, ownerID, title, description string) (*models.Task, error)
	List(ctx context.Context, ownerID string, filter models.TaskFilter) ([]models.Task, error)
	Get(ctx context.Context, ownerID, id string) (*models.Task, error)
	UpdateStatus(ctx context.Context, ownerID, id, status string) (*models.Task, error)
	Delete(ctx context.Context, ownerID, id string) error
}

// TaskHandler handles HTTP requests for the /tasks resource. It must be
// mounted behind middleware.BearerAuth.
type TaskHandler struct {
	TaskService TaskService
	Log         *zap.Logger
}

// CreateTaskRequest is the payload of POST /tasks. Any status supplied by
// the client is ignored.
type CreateTaskRequest struct {
	Title       string `json:"title"`
	Description string `json:"description"`
}

// UpdateStatusRequest is the payload of PATCH /tasks/{id}/status.
type UpdateStatusRequest struct {
	Status *string `json:"status"`
}

// Create handles POST /tasks.
func (h *TaskHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req CreateTaskRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, h.Log, fmt.Errorf("%w: invalid request body", common.ErrValidation))
		return
	}
	if strings.TrimSpace(req.Title) == "" {
		writeError(w, h.Log, fmt.Errorf("%w: title should not be empty", common.ErrValidation))
		return
	}
	if strings.TrimSpace(req.Description) == "" {
		writeError(w, h.Log, fmt.Errorf("%w: description should not be empty", common.ErrValidation))
		return
	}

	task, err := h.TaskService.Create(r.Context(), middleware.GetUserIDFromContext(r.Context()), req.Title, req.Description)
	if err != nil {
		writeError(w, h.Log, err)
		return
	}
	writeJSON(w, http.StatusCreated, task)
}

// List handles GET /tasks?status=&search=.
// A status parameter, when present, must name a valid status. An empty
// search parameter is ignored.
func (h *TaskHandler) List(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	var filter models.TaskFilter
	if q.Has("status") {
		status, err := models.ParseTaskStatus(q.Get("status"))
		if err != nil {
			writeError(w, h.Log, err)
			return
		}
		filter.Status = &status
	}
	filter.Search = q.Get("search")

	tasks, err := h.TaskService.List(r.Context(), middleware.GetUserIDFromContext(r.Context()), filter)
	if err != nil {
		writeError(w, h.Log, err)
		return
	}
	writeJSON(w, http.StatusOK, tasks)
}

// Get handles GET /tasks/{id}.
func (h *TaskHandler) Get(w http.ResponseWriter, r *http.Request) {
	task, err := h.TaskService.Get(r.Context(), middleware.GetUserIDFromContext(r.Context()), chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, h.Log, err)
		return
	}
	writeJSON(w, http.StatusOK, task)
}

// UpdateStatus handles PATCH /tasks/{id}/status.
func (h *TaskHandler) UpdateStatus(w http.ResponseWriter, r *http.Request) {
	var req UpdateStatusRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Status == nil {
		writeError(w, h.Log, fmt.Errorf("%w: status must be one of OPEN, IN_PROGRESS, DONE", common.ErrBadStatus))
		return
	}

	task, err := h.TaskService.UpdateStatus(r.Context(), middleware.GetUserIDFromContext(r.Context()), chi.URLParam(r, "id"), *req.Status)
	if err != nil {
		writeError(w, h.Log, err)
		return
	}
	writeJSON(w, http.StatusOK, task)
}

// Delete handles DELETE /tasks/{id}. Deleting is permanent; a second delete
// of the same id answers 404.
func (h *TaskHandler) Delete(w http.ResponseWriter, r *http.Request) {
	if err := h.TaskService.Delete(r.Context(), middleware.GetUserIDFromContext(r.Context()), chi.URLParam(r, "id")); err != nil {
		writeError(w, h.Log, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
