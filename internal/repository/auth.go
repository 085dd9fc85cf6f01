// Package repository provides persistence implementations for users and tasks.
package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/atinyakov/TaskTracker/internal/common"
	"github.com/atinyakov/TaskTracker/internal/models"
	"github.com/google/uuid"
	"github.com/lib/pq"
)

// uniqueViolation is the PostgreSQL SQLSTATE for unique constraint failures.
const uniqueViolation = "23505"

// PostgresAuthRepository implements credential storage using a PostgreSQL database.
type PostgresAuthRepository struct {
	// DB is the database handle for executing queries.
	DB *sql.DB
}

// NewPostgresAuthRepository creates a new PostgresAuthRepository with the given database connection.
// db must be a valid *sql.DB connected to a PostgreSQL instance.
func NewPostgresAuthRepository(db *sql.DB) *PostgresAuthRepository {
	return &PostgresAuthRepository{DB: db}
}

// CreateUser inserts a user and returns its new id.
// The uniqueness check and the insert are one statement: when the username
// is taken no row comes back and common.ErrConflict is returned.
func (r *PostgresAuthRepository) CreateUser(ctx context.Context, username string, passwordHash []byte) (string, error) {
	var id string
	err := r.DB.QueryRowContext(ctx, `
		INSERT INTO users (id, username, password_hash) VALUES ($1, $2, $3)
		ON CONFLICT (username) DO NOTHING
		RETURNING id
	`, uuid.NewString(), username, passwordHash).Scan(&id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) || isUniqueViolation(err) {
			return "", common.ErrConflict
		}
		return "", fmt.Errorf("CreateUser: %w", err)
	}
	return id, nil
}

// FindUserByUsername returns the user with the exact (case-sensitive) username.
// Returns common.ErrNotFound if there is none.
func (r *PostgresAuthRepository) FindUserByUsername(ctx context.Context, username string) (*models.User, error) {
	var u models.User
	err := r.DB.QueryRowContext(ctx, `
		SELECT id, username, password_hash FROM users WHERE username = $1
	`, username).Scan(&u.ID, &u.Username, &u.PasswordHash)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrNotFound
		}
		return nil, fmt.Errorf("FindUserByUsername: %w", err)
	}
	return &u, nil
}

func isUniqueViolation(err error) bool {
	var pqErr *pq.Error
	return errors.As(err, &pqErr) && pqErr.Code == uniqueViolation
}
