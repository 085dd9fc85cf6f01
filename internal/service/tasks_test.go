package service_test

import (
	"context"
	"errors"
	"testing"

	"github.com/atinyakov/TaskTracker/internal/common"
	"github.com/atinyakov/TaskTracker/internal/models"
	"github.com/atinyakov/TaskTracker/internal/repository"
	"github.com/atinyakov/TaskTracker/internal/service"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type mockTaskRepo struct {
	CreateTaskFunc       func(ctx context.Context, ownerID, title, description string, status models.TaskStatus) (*models.Task, error)
	GetTaskFunc          func(ctx context.Context, ownerID, id string) (*models.Task, error)
	ListTasksFunc        func(ctx context.Context, ownerID string) ([]models.Task, error)
	UpdateTaskStatusFunc func(ctx context.Context, ownerID, id string, status models.TaskStatus) (*models.Task, error)
	DeleteTaskFunc       func(ctx context.Context, ownerID, id string) error
}

func (m *mockTaskRepo) CreateTask(ctx context.Context, ownerID, title, description string, status models.TaskStatus) (*models.Task, error) {
	return m.CreateTaskFunc(ctx, ownerID, title, description, status)
}

func (m *mockTaskRepo) GetTask(ctx context.Context, ownerID, id string) (*models.Task, error) {
	return m.GetTaskFunc(ctx, ownerID, id)
}

func (m *mockTaskRepo) ListTasks(ctx context.Context, ownerID string) ([]models.Task, error) {
	return m.ListTasksFunc(ctx, ownerID)
}

func (m *mockTaskRepo) UpdateTaskStatus(ctx context.Context, ownerID, id string, status models.TaskStatus) (*models.Task, error) {
	return m.UpdateTaskStatusFunc(ctx, ownerID, id, status)
}

func (m *mockTaskRepo) DeleteTask(ctx context.Context, ownerID, id string) error {
	return m.DeleteTaskFunc(ctx, ownerID, id)
}

func TestCreate_AlwaysOpen(t *testing.T) {
	repo := &mockTaskRepo{
		CreateTaskFunc: func(ctx context.Context, ownerID, title, description string, status models.TaskStatus) (*models.Task, error) {
			if status != models.StatusOpen {
				t.Errorf("CreateTask status = %s; want OPEN", status)
			}
			return &models.Task{ID: "x", OwnerID: ownerID, Title: title, Description: description, Status: status}, nil
		},
	}
	svc := service.NewTaskService(repo)

	task, err := svc.Create(context.Background(), "alice", "T", "D")
	require.NoError(t, err)
	assert.Equal(t, models.StatusOpen, task.Status)
	assert.Equal(t, "alice", task.OwnerID)
}

func TestList_Filters(t *testing.T) {
	all := []models.Task{
		{ID: "1", Title: "Write report", Description: "quarterly numbers", Status: models.StatusOpen},
		{ID: "2", Title: "Groceries", Description: "buy REPORT paper", Status: models.StatusDone},
		{ID: "3", Title: "Gym", Description: "legs", Status: models.StatusInProgress},
	}
	repo := &mockTaskRepo{
		ListTasksFunc: func(ctx context.Context, ownerID string) ([]models.Task, error) {
			return all, nil
		},
	}
	svc := service.NewTaskService(repo)
	done := models.StatusDone
	open := models.StatusOpen

	tests := []struct {
		name    string
		filter  models.TaskFilter
		wantIDs []string
	}{
		{"no filter", models.TaskFilter{}, []string{"1", "2", "3"}},
		{"status only", models.TaskFilter{Status: &done}, []string{"2"}},
		{"search title or description", models.TaskFilter{Search: "report"}, []string{"1", "2"}},
		{"search and status", models.TaskFilter{Search: "report", Status: &open}, []string{"1"}},
		{"no match", models.TaskFilter{Search: "zzz"}, []string{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := svc.List(context.Background(), "alice", tt.filter)
			require.NoError(t, err)
			ids := []string{}
			for _, task := range got {
				ids = append(ids, task.ID)
			}
			assert.Equal(t, tt.wantIDs, ids)
		})
	}
}

func TestList_RepoError(t *testing.T) {
	wantErr := errors.New("db fail")
	svc := service.NewTaskService(&mockTaskRepo{
		ListTasksFunc: func(ctx context.Context, ownerID string) ([]models.Task, error) {
			return nil, wantErr
		},
	})
	_, err := svc.List(context.Background(), "alice", models.TaskFilter{})
	assert.ErrorIs(t, err, wantErr)
}

func TestUpdateStatus_BadStatus(t *testing.T) {
	svc := service.NewTaskService(&mockTaskRepo{
		UpdateTaskStatusFunc: func(ctx context.Context, ownerID, id string, status models.TaskStatus) (*models.Task, error) {
			t.Fatal("repository must not be reached with an invalid status")
			return nil, nil
		},
	})

	for _, raw := range []string{"", "INVALID_STATUS", "done", "2"} {
		_, err := svc.UpdateStatus(context.Background(), "alice", uuid.NewString(), raw)
		assert.ErrorIs(t, err, common.ErrBadStatus, raw)
	}
}

func TestUpdateStatus_ChecksTransitionFromStoredStatus(t *testing.T) {
	id := uuid.NewString()
	svc := service.NewTaskService(&mockTaskRepo{
		GetTaskFunc: func(ctx context.Context, ownerID, taskID string) (*models.Task, error) {
			return &models.Task{ID: taskID, OwnerID: ownerID, Status: models.TaskStatus("ARCHIVED")}, nil
		},
		UpdateTaskStatusFunc: func(ctx context.Context, ownerID, taskID string, status models.TaskStatus) (*models.Task, error) {
			t.Fatal("update must not run when the transition is rejected")
			return nil, nil
		},
	})

	_, err := svc.UpdateStatus(context.Background(), "alice", id, "DONE")
	assert.ErrorIs(t, err, common.ErrBadStatus)
}

func TestUpdateStatus_LooksUpOwnerTaskFirst(t *testing.T) {
	var updated bool
	svc := service.NewTaskService(&mockTaskRepo{
		GetTaskFunc: func(ctx context.Context, ownerID, taskID string) (*models.Task, error) {
			return nil, common.ErrNotFound
		},
		UpdateTaskStatusFunc: func(ctx context.Context, ownerID, taskID string, status models.TaskStatus) (*models.Task, error) {
			updated = true
			return nil, nil
		},
	})

	_, err := svc.UpdateStatus(context.Background(), "bob", uuid.NewString(), "DONE")
	assert.ErrorIs(t, err, common.ErrNotFound)
	assert.False(t, updated)
}

func TestUpdateStatus_WritesAllowedTransition(t *testing.T) {
	id := uuid.NewString()
	svc := service.NewTaskService(&mockTaskRepo{
		GetTaskFunc: func(ctx context.Context, ownerID, taskID string) (*models.Task, error) {
			return &models.Task{ID: taskID, OwnerID: ownerID, Status: models.StatusDone}, nil
		},
		UpdateTaskStatusFunc: func(ctx context.Context, ownerID, taskID string, status models.TaskStatus) (*models.Task, error) {
			return &models.Task{ID: taskID, OwnerID: ownerID, Status: status}, nil
		},
	})

	task, err := svc.UpdateStatus(context.Background(), "alice", id, "OPEN")
	require.NoError(t, err)
	assert.Equal(t, models.StatusOpen, task.Status)
}

func TestMalformedIDIsNotFound(t *testing.T) {
	svc := service.NewTaskService(&mockTaskRepo{})

	_, err := svc.Get(context.Background(), "alice", "not-a-uuid")
	assert.ErrorIs(t, err, common.ErrNotFound)

	_, err = svc.UpdateStatus(context.Background(), "alice", "not-a-uuid", "DONE")
	assert.ErrorIs(t, err, common.ErrNotFound)

	assert.ErrorIs(t, svc.Delete(context.Background(), "alice", "not-a-uuid"), common.ErrNotFound)
}

// The following run against the in-memory store to check the lifecycle end to end.

func TestUpdateStatus_AllTransitions(t *testing.T) {
	svc := service.NewTaskService(repository.NewMemoryTaskRepository())
	ctx := context.Background()

	for _, from := range models.TaskStatuses {
		for _, to := range models.TaskStatuses {
			task, err := svc.Create(ctx, "alice", "T", "D")
			require.NoError(t, err)
			_, err = svc.UpdateStatus(ctx, "alice", task.ID, string(from))
			require.NoError(t, err)

			updated, err := svc.UpdateStatus(ctx, "alice", task.ID, string(to))
			require.NoError(t, err, "%s -> %s", from, to)
			assert.Equal(t, to, updated.Status)

			stored, err := svc.Get(ctx, "alice", task.ID)
			require.NoError(t, err)
			assert.Equal(t, to, stored.Status)
		}
	}
}

func TestOwnershipCollapsing(t *testing.T) {
	svc := service.NewTaskService(repository.NewMemoryTaskRepository())
	ctx := context.Background()

	task, err := svc.Create(ctx, "alice", "T", "D")
	require.NoError(t, err)
	missing := uuid.NewString()

	_, errForeign := svc.Get(ctx, "bob", task.ID)
	_, errMissing := svc.Get(ctx, "bob", missing)
	assert.ErrorIs(t, errForeign, common.ErrNotFound)
	assert.Equal(t, errMissing, errForeign)

	_, errForeign = svc.UpdateStatus(ctx, "bob", task.ID, "DONE")
	_, errMissing = svc.UpdateStatus(ctx, "bob", missing, "DONE")
	assert.ErrorIs(t, errForeign, common.ErrNotFound)
	assert.Equal(t, errMissing, errForeign)

	assert.Equal(t, svc.Delete(ctx, "bob", missing), svc.Delete(ctx, "bob", task.ID))

	bobs, err := svc.List(ctx, "bob", models.TaskFilter{})
	require.NoError(t, err)
	assert.Empty(t, bobs)
}

func TestDeleteTwice(t *testing.T) {
	svc := service.NewTaskService(repository.NewMemoryTaskRepository())
	ctx := context.Background()

	task, err := svc.Create(ctx, "alice", "T", "D")
	require.NoError(t, err)

	require.NoError(t, svc.Delete(ctx, "alice", task.ID))
	assert.ErrorIs(t, svc.Delete(ctx, "alice", task.ID), common.ErrNotFound)
}
