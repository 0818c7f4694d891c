package task

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
)

// TaskStatus represents the current state of a task
type TaskStatus string

// Possible task status values
const (
	TaskStatusPending    TaskStatus = "pending"
	TaskStatusProcessing TaskStatus = "processing"
	TaskStatusCompleted  TaskStatus = "completed"
	TaskStatusFailed     TaskStatus = "failed"
	TaskStatusDiscarded  TaskStatus = "discarded"
)

// Valid reports whether s is one of the known statuses.
func (s TaskStatus) Valid() bool {
	switch s {
	case TaskStatusPending, TaskStatusProcessing, TaskStatusCompleted,
		TaskStatusFailed, TaskStatusDiscarded:
		return true
	}
	return false
}

// Terminal reports whether a task in status s will not change again.
func (s TaskStatus) Terminal() bool {
	return s == TaskStatusCompleted || s == TaskStatusFailed || s == TaskStatusDiscarded
}

// ErrTaskNotFound is returned when a task ID is unknown to the store.
var ErrTaskNotFound = errors.New("task not found")

// ErrTaskExists is returned when saving a task whose ID is already stored.
var ErrTaskExists = errors.New("task already exists")

// Task is one probe of a target URL.
type Task struct {
	ID         uuid.UUID  `json:"id"`
	Target     string     `json:"target"`
	Status     TaskStatus `json:"status"`
	StatusCode int        `json:"status_code,omitempty"`
	LatencyMS  int64      `json:"latency_ms,omitempty"`
	Error      string     `json:"error,omitempty"`
	CreatedAt  time.Time  `json:"created_at"`
	StartedAt  *time.Time `json:"started_at,omitempty"`
	FinishedAt *time.Time `json:"finished_at,omitempty"`
}

// NewTask creates a pending task for target.
func NewTask(target string) Task {
	return Task{
		ID:        uuid.New(),
		Target:    target,
		Status:    TaskStatusPending,
		CreatedAt: time.Now().UTC(),
	}
}

// TaskStore defines the interface for recording tasks
type TaskStore interface {
	// SaveTask records a new task. Returns ErrTaskExists if the ID is taken.
	SaveTask(ctx context.Context, task Task) error

	// GetTask returns the task with the given ID or ErrTaskNotFound.
	GetTask(ctx context.Context, id uuid.UUID) (Task, error)

	// UpdateTask applies fn to the stored task and returns the result.
	// Returns ErrTaskNotFound if the ID is unknown.
	UpdateTask(ctx context.Context, id uuid.UUID, fn func(*Task)) (Task, error)

	// ListTasks returns tasks in submission order. An empty status returns
	// every task.
	ListTasks(ctx context.Context, status TaskStatus) ([]Task, error)
}
