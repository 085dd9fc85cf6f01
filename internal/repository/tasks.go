package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/atinyakov/TaskTracker/internal/common"
	"github.com/atinyakov/TaskTracker/internal/models"
	"github.com/google/uuid"
)

// PostgresTaskRepository implements task storage against a PostgreSQL database.
// Every read and write is keyed by both task id and owner id, so a task owned
// by somebody else is indistinguishable from one that does not exist.
type PostgresTaskRepository struct {
	// DB is the database handle for executing queries.
	DB *sql.DB
}

// NewPostgresTaskRepository creates a new PostgresTaskRepository using the provided *sql.DB.
func NewPostgresTaskRepository(db *sql.DB) *PostgresTaskRepository {
	return &PostgresTaskRepository{DB: db}
}

// CreateTask stores a new task for ownerID in the given status.
func (r *PostgresTaskRepository) CreateTask(ctx context.Context, ownerID, title, description string, status models.TaskStatus) (*models.Task, error) {
	task := models.Task{
		ID:          uuid.NewString(),
		Title:       title,
		Description: description,
		Status:      status,
		OwnerID:     ownerID,
	}
	err := r.DB.QueryRowContext(ctx, `
		INSERT INTO tasks (id, user_id, title, description, status)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING created_at
	`, task.ID, ownerID, title, description, status).Scan(&task.CreatedAt)
	if err != nil {
		return nil, fmt.Errorf("CreateTask: %w", err)
	}
	return &task, nil
}

// GetTask fetches a single task by id for the given owner.
//
//	ctx:     context for cancellation and deadlines
//	ownerID: identifier of the owning user
//	id:      ID of the task to fetch
//
// Returns common.ErrNotFound if the task does not exist or belongs to another owner.
func (r *PostgresTaskRepository) GetTask(ctx context.Context, ownerID, id string) (*models.Task, error) {
	task, err := scanTask(r.DB.QueryRowContext(ctx, `
		SELECT id, user_id, title, description, status, created_at FROM tasks
		WHERE id = $1 AND user_id = $2
	`, id, ownerID))
	if err != nil {
		return nil, notFoundOr("GetTask", err)
	}
	return task, nil
}

// ListTasks returns all and only the tasks of ownerID, oldest first.
func (r *PostgresTaskRepository) ListTasks(ctx context.Context, ownerID string) ([]models.Task, error) {
	rows, err := r.DB.QueryContext(ctx, `
		SELECT id, user_id, title, description, status, created_at FROM tasks
		WHERE user_id = $1 ORDER BY created_at, id
	`, ownerID)
	if err != nil {
		return nil, fmt.Errorf("ListTasks: %w", err)
	}
	defer rows.Close()

	tasks := []models.Task{}
	for rows.Next() {
		task, err := scanTask(rows)
		if err != nil {
			return nil, fmt.Errorf("scan: %w", err)
		}
		tasks = append(tasks, *task)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("ListTasks: %w", err)
	}
	return tasks, nil
}

// UpdateTaskStatus sets the status of the owner's task in one conditional
// statement and returns the updated task.
func (r *PostgresTaskRepository) UpdateTaskStatus(ctx context.Context, ownerID, id string, status models.TaskStatus) (*models.Task, error) {
	task, err := scanTask(r.DB.QueryRowContext(ctx, `
		UPDATE tasks SET status = $3
		WHERE id = $1 AND user_id = $2
		RETURNING id, user_id, title, description, status, created_at
	`, id, ownerID, status))
	if err != nil {
		return nil, notFoundOr("UpdateTaskStatus", err)
	}
	return task, nil
}

// DeleteTask permanently removes the owner's task.
// Returns common.ErrNotFound when nothing was deleted.
func (r *PostgresTaskRepository) DeleteTask(ctx context.Context, ownerID, id string) error {
	res, err := r.DB.ExecContext(ctx, `DELETE FROM tasks WHERE id = $1 AND user_id = $2`, id, ownerID)
	if err != nil {
		return fmt.Errorf("DeleteTask: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("DeleteTask: %w", err)
	}
	if n == 0 {
		return common.ErrNotFound
	}
	return nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanTask(row rowScanner) (*models.Task, error) {
	var t models.Task
	if err := row.Scan(&t.ID, &t.OwnerID, &t.Title, &t.Description, &t.Status, &t.CreatedAt); err != nil {
		return nil, err
	}
	return &t, nil
}

func notFoundOr(op string, err error) error {
	if errors.Is(err, sql.ErrNoRows) {
		return common.ErrNotFound
	}
	return fmt.Errorf("%s: %w", op, err)
}
