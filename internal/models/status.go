package models

import (
	"fmt"

	"github.com/atinyakov/TaskTracker/internal/common"
)

// TaskStatus is the lifecycle state of a task.
type TaskStatus string

const (
	// StatusOpen is the initial state of every new task.
	StatusOpen TaskStatus = "OPEN"
	// StatusInProgress marks a task that is being worked on.
	StatusInProgress TaskStatus = "IN_PROGRESS"
	// StatusDone marks a finished task. It is not terminal.
	StatusDone TaskStatus = "DONE"
)

// TaskStatuses lists every valid status in declaration order.
var TaskStatuses = []TaskStatus{StatusOpen, StatusInProgress, StatusDone}

// Valid reports whether s is one of the known statuses.
func (s TaskStatus) Valid() bool {
	switch s {
	case StatusOpen, StatusInProgress, StatusDone:
		return true
	}
	return false
}

// CanTransitionTo reports whether a task in state s may be moved to next.
// There are no forbidden transitions: any valid state may follow any valid
// state, itself included, and DONE is not terminal.
func (s TaskStatus) CanTransitionTo(next TaskStatus) bool {
	return s.Valid() && next.Valid()
}

// ParseTaskStatus converts raw input into a TaskStatus. Matching is exact;
// anything outside the enum, the empty string included, yields common.ErrBadStatus.
func ParseTaskStatus(raw string) (TaskStatus, error) {
	s := TaskStatus(raw)
	if !s.Valid() {
		return "", fmt.Errorf("%w: %q", common.ErrBadStatus, raw)
	}
	return s, nil
}
