package api

import (
	"context"
	"net/http"

	"github.com/google/uuid"

	"github.com/phrazzld/boundq/internal/api/shared"
	"github.com/phrazzld/boundq/internal/platform/logger"
	"github.com/phrazzld/boundq/internal/task"
)

// TaskService is the task-tracking surface used by TaskHandler.
type TaskService interface {
	SubmitBatch(ctx context.Context, targets []string) ([]task.Task, error)
	GetTask(ctx context.Context, id uuid.UUID) (task.Task, error)
	ListTasks(ctx context.Context, status task.TaskStatus) ([]task.Task, error)
}

// TaskHandler handles task-related HTTP requests
type TaskHandler struct {
	tasks TaskService
}

// NewTaskHandler creates a new TaskHandler
func NewTaskHandler(tasks TaskService) *TaskHandler {
	return &TaskHandler{tasks: tasks}
}

// SubmitTasks handles POST /api/tasks. All targets are enqueued together and
// the created tasks are returned with 202 Accepted, since probing happens
// asynchronously.
func (h *TaskHandler) SubmitTasks(w http.ResponseWriter, r *http.Request) {
	var req SubmitTasksRequest
	if err := shared.DecodeJSON(w, r, &req); err != nil {
		shared.RespondWithErrorAndLog(w, r, http.StatusBadRequest, "Invalid request format", err)
		return
	}

	if err := shared.ValidateRequest(&req); err != nil {
		shared.RespondWithErrorAndLog(w, r, http.StatusBadRequest, SanitizeValidationError(err), err)
		return
	}

	tasks, err := h.tasks.SubmitBatch(r.Context(), req.Targets)
	if err != nil {
		HandleAPIError(w, r, err, "Failed to submit tasks")
		return
	}

	operator, _ := shared.GetOperator(r.Context())
	logger.FromContext(r.Context()).Info("tasks submitted",
		"count", len(tasks),
		"operator", operator)

	shared.RespondWithJSON(w, r, http.StatusAccepted, TaskListResponse{
		Tasks: tasks,
		Count: len(tasks),
	})
}

// ListTasks handles GET /api/tasks with an optional ?status= filter.
func (h *TaskHandler) ListTasks(w http.ResponseWriter, r *http.Request) {
	status, err := getStatusFilter(r)
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	tasks, err := h.tasks.ListTasks(r.Context(), status)
	if err != nil {
		HandleAPIError(w, r, err, "Failed to list tasks")
		return
	}
	if tasks == nil {
		tasks = []task.Task{}
	}

	shared.RespondWithJSON(w, r, http.StatusOK, TaskListResponse{
		Tasks: tasks,
		Count: len(tasks),
	})
}

// GetTask handles GET /api/tasks/{id}.
func (h *TaskHandler) GetTask(w http.ResponseWriter, r *http.Request) {
	id, err := getPathUUID(r, "id")
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	t, err := h.tasks.GetTask(r.Context(), id)
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, t)
}
