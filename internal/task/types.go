package task

import (
	"errors"
	"time"
)

// Status represents a task's progress state.
type Status string

// Status constants.
const (
	StatusCreated    Status = "created"
	StatusInProgress Status = "in_progress"
	StatusDone       Status = "done"
)

// ValidStatuses is the set of accepted task statuses.
var ValidStatuses = []Status{StatusCreated, StatusInProgress, StatusDone}

// IsValidStatus returns true if the status is one of the accepted values.
func IsValidStatus(s Status) bool {
	for _, v := range ValidStatuses {
		if s == v {
			return true
		}
	}
	return false
}

// Task represents a single to-do item.
type Task struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Status      Status    `json:"status"`
	OwnerID     string    `json:"owner"`
	CreatedAt   time.Time `json:"created"`
	UpdatedAt   time.Time `json:"updated"`
}

// Sentinel errors for task operations.
var (
	ErrTaskNotFound  = errors.New("task not found")
	ErrInvalidStatus = errors.New("invalid task status")
)
