package api

import (
	"github.com/phrazzld/boundq/internal/events"
	"github.com/phrazzld/boundq/internal/queue"
	"github.com/phrazzld/boundq/internal/task"
)

// MaxTargetsPerRequest bounds a single submission.
const MaxTargetsPerRequest = 1000

// SubmitTasksRequest defines the payload for POST /api/tasks.
type SubmitTasksRequest struct {
	Targets []string `json:"targets" validate:"required,min=1,max=1000,dive,required,http_url"`
}

// TaskListResponse wraps a list of tasks.
type TaskListResponse struct {
	Tasks []task.Task `json:"tasks"`
	Count int         `json:"count"`
}

// QueueResponse reports queue state.
type QueueResponse struct {
	queue.Stats
}

// ClearResponse reports a clear operation.
type ClearResponse struct {
	Discarded int `json:"discarded"`
	queue.Stats
}

// EventsResponse wraps recent queue events, oldest first.
type EventsResponse struct {
	Events []*events.QueueEvent `json:"events"`
}
