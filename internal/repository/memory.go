package repository

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/atinyakov/TaskTracker/internal/common"
	"github.com/atinyakov/TaskTracker/internal/models"
	"github.com/google/uuid"
)

// MemoryAuthRepository keeps users in process memory. It is used when no
// database is configured and in tests.
type MemoryAuthRepository struct {
	mu         sync.Mutex
	byUsername map[string]models.User
}

// NewMemoryAuthRepository returns an empty MemoryAuthRepository.
func NewMemoryAuthRepository() *MemoryAuthRepository {
	return &MemoryAuthRepository{byUsername: make(map[string]models.User)}
}

// CreateUser stores a user unless the username is already taken.
func (r *MemoryAuthRepository) CreateUser(_ context.Context, username string, passwordHash []byte) (string, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.byUsername[username]; ok {
		return "", common.ErrConflict
	}
	u := models.User{
		ID:           uuid.NewString(),
		Username:     username,
		PasswordHash: append([]byte(nil), passwordHash...),
	}
	r.byUsername[username] = u
	return u.ID, nil
}

// FindUserByUsername returns the user with the exact username.
func (r *MemoryAuthRepository) FindUserByUsername(_ context.Context, username string) (*models.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	u, ok := r.byUsername[username]
	if !ok {
		return nil, common.ErrNotFound
	}
	return &u, nil
}

// MemoryTaskRepository keeps tasks in process memory.
type MemoryTaskRepository struct {
	mu    sync.Mutex
	tasks map[string]models.Task
	now   func() time.Time
}

// NewMemoryTaskRepository returns an empty MemoryTaskRepository.
func NewMemoryTaskRepository() *MemoryTaskRepository {
	return &MemoryTaskRepository{tasks: make(map[string]models.Task), now: time.Now}
}

// CreateTask stores a new task for ownerID.
func (r *MemoryTaskRepository) CreateTask(_ context.Context, ownerID, title, description string, status models.TaskStatus) (*models.Task, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	t := models.Task{
		ID:          uuid.NewString(),
		Title:       title,
		Description: description,
		Status:      status,
		OwnerID:     ownerID,
		CreatedAt:   r.now(),
	}
	r.tasks[t.ID] = t
	return &t, nil
}

// GetTask returns the task only if it exists and belongs to ownerID.
func (r *MemoryTaskRepository) GetTask(_ context.Context, ownerID, id string) (*models.Task, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	t, ok := r.owned(ownerID, id)
	if !ok {
		return nil, common.ErrNotFound
	}
	return &t, nil
}

// ListTasks returns the tasks of ownerID, oldest first.
func (r *MemoryTaskRepository) ListTasks(_ context.Context, ownerID string) ([]models.Task, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	tasks := []models.Task{}
	for _, t := range r.tasks {
		if t.OwnerID == ownerID {
			tasks = append(tasks, t)
		}
	}
	sort.Slice(tasks, func(i, j int) bool {
		if tasks[i].CreatedAt.Equal(tasks[j].CreatedAt) {
			return tasks[i].ID < tasks[j].ID
		}
		return tasks[i].CreatedAt.Before(tasks[j].CreatedAt)
	})
	return tasks, nil
}

// UpdateTaskStatus checks ownership and writes the status under one lock.
func (r *MemoryTaskRepository) UpdateTaskStatus(_ context.Context, ownerID, id string, status models.TaskStatus) (*models.Task, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	t, ok := r.owned(ownerID, id)
	if !ok {
		return nil, common.ErrNotFound
	}
	t.Status = status
	r.tasks[id] = t
	return &t, nil
}

// DeleteTask checks ownership and removes the task under one lock.
func (r *MemoryTaskRepository) DeleteTask(_ context.Context, ownerID, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.owned(ownerID, id); !ok {
		return common.ErrNotFound
	}
	delete(r.tasks, id)
	return nil
}

// owned must be called with r.mu held.
func (r *MemoryTaskRepository) owned(ownerID, id string) (models.Task, bool) {
	t, ok := r.tasks[id]
	if !ok || t.OwnerID != ownerID {
		return models.Task{}, false
	}
	return t, true
}
