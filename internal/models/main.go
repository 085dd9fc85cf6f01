// Package models defines the core data structures for users and tasks.
package models

import (
	"strings"
	"time"
)

// User represents an application user with credentials.
type User struct {
	// ID is the unique identifier for the user.
	ID string
	// Username is the login name chosen by the user.
	Username string
	// PasswordHash is the hashed password of the user. It is never sent to clients.
	PasswordHash []byte
}

// Task is a unit of work owned by exactly one user.
type Task struct {
	// ID is the unique identifier for the task.
	ID string `json:"id"`
	// Title is a short, non-empty summary.
	Title string `json:"title"`
	// Description holds the task details.
	Description string `json:"description"`
	// Status is the current lifecycle state.
	Status TaskStatus `json:"status"`
	// OwnerID references the user that created the task. Fixed at creation.
	OwnerID string `json:"-"`
	// CreatedAt is the creation timestamp, used for stable listing order.
	CreatedAt time.Time `json:"-"`
}

// TaskFilter narrows a listing of tasks. Zero value matches everything.
type TaskFilter struct {
	// Status, when set, must equal the task status exactly.
	Status *TaskStatus
	// Search, when non-empty, must appear in the title or the description,
	// compared case-insensitively.
	Search string
}

// Match reports whether t passes every filter that is set.
func (f TaskFilter) Match(t Task) bool {
	if f.Status != nil && t.Status != *f.Status {
		return false
	}
	if f.Search == "" {
		return true
	}
	term := strings.ToLower(f.Search)
	return strings.Contains(strings.ToLower(t.Title), term) ||
		strings.Contains(strings.ToLower(t.Description), term)
}
