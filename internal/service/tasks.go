package service

import (
	"context"
	"fmt"

	"github.com/atinyakov/TaskTracker/internal/common"
	"github.com/atinyakov/TaskTracker/internal/models"
	"github.com/google/uuid"
)

// TaskRepository defines the persistence operations needed by the TaskService.
// All per-task operations are scoped by owner and report common.ErrNotFound
// for tasks that are missing or owned by somebody else.
type TaskRepository interface {
	// CreateTask stores a new task owned by ownerID.
	CreateTask(ctx context.Context, ownerID, title, description string, status models.TaskStatus) (*models.Task, error)
	// GetTask fetches the owner's task by id.
	GetTask(ctx context.Context, ownerID, id string) (*models.Task, error)
	// ListTasks returns every task of the owner.
	ListTasks(ctx context.Context, ownerID string) ([]models.Task, error)
	// UpdateTaskStatus conditionally updates the owner's task.
	UpdateTaskStatus(ctx context.Context, ownerID, id string, status models.TaskStatus) (*models.Task, error)
	// DeleteTask permanently removes the owner's task.
	DeleteTask(ctx context.Context, ownerID, id string) error
}

// TaskService implements the task lifecycle and query rules for a single owner.
type TaskService struct {
	// repo is the underlying persistence repository.
	repo TaskRepository
}

// NewTaskService constructs a TaskService with the provided TaskRepository.
func NewTaskService(repo TaskRepository) *TaskService {
	return &TaskService{repo: repo}
}

// Create stores a new task for ownerID. New tasks always start OPEN.
func (s *TaskService) Create(ctx context.Context, ownerID, title, description string) (*models.Task, error) {
	return s.repo.CreateTask(ctx, ownerID, title, description, models.StatusOpen)
}

// List returns the owner's tasks that pass filter.
func (s *TaskService) List(ctx context.Context, ownerID string, filter models.TaskFilter) ([]models.Task, error) {
	all, err := s.repo.ListTasks(ctx, ownerID)
	if err != nil {
		return nil, err
	}

	tasks := make([]models.Task, 0, len(all))
	for _, t := range all {
		if filter.Match(t) {
			tasks = append(tasks, t)
		}
	}
	return tasks, nil
}

// Get returns the owner's task by id.
func (s *TaskService) Get(ctx context.Context, ownerID, id string) (*models.Task, error) {
	if !validID(id) {
		return nil, common.ErrNotFound
	}
	return s.repo.GetTask(ctx, ownerID, id)
}

// UpdateStatus moves the owner's task to the status named by rawStatus.
// Returns common.ErrBadStatus when rawStatus is not a known status or the
// move is not allowed from the current status, and common.ErrNotFound when
// the task is not visible to ownerID.
func (s *TaskService) UpdateStatus(ctx context.Context, ownerID, id, rawStatus string) (*models.Task, error) {
	status, err := models.ParseTaskStatus(rawStatus)
	if err != nil {
		return nil, err
	}
	if !validID(id) {
		return nil, common.ErrNotFound
	}

	current, err := s.repo.GetTask(ctx, ownerID, id)
	if err != nil {
		return nil, err
	}
	if !current.Status.CanTransitionTo(status) {
		return nil, fmt.Errorf("%w: %s -> %s", common.ErrBadStatus, current.Status, status)
	}

	// The write is still scoped by owner; a concurrent delete surfaces as not found.
	return s.repo.UpdateTaskStatus(ctx, ownerID, id, status)
}

// Delete permanently removes the owner's task.
func (s *TaskService) Delete(ctx context.Context, ownerID, id string) error {
	if !validID(id) {
		return common.ErrNotFound
	}
	return s.repo.DeleteTask(ctx, ownerID, id)
}

// validID reports whether id can name a stored task. Anything else is
// answered as not found without touching the store.
func validID(id string) bool {
	_, err := uuid.Parse(id)
	return err == nil
}
