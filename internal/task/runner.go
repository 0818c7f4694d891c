package task

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/samber/lo"

	"github.com/phrazzld/boundq/internal/queue"
	"github.com/phrazzld/boundq/internal/redact"
)

// Worker is the queue worker type run for each task.
type Worker = queue.Worker[Task, ProbeResult]

// TaskRunner manages probe tasks: it records them in a TaskStore and runs
// them through a bounded queue, keeping the store in step with the queue.
type TaskRunner struct {
	ctx    context.Context
	store  TaskStore
	queue  *queue.BoundedQueue[Task, ProbeResult]
	logger *slog.Logger

	mu         sync.RWMutex
	errHandler func(task Task, err error)
}

// NewTaskRunner creates a TaskRunner whose queue calls worker for each task.
// ctx is passed to every worker invocation and store call made on behalf of
// the queue. The extra observers receive queue notifications after the store
// has been updated.
func NewTaskRunner(
	ctx context.Context,
	store TaskStore,
	worker Worker,
	config queue.Config,
	logger *slog.Logger,
	observers ...queue.Observer[Task, ProbeResult],
) *TaskRunner {
	if logger == nil {
		logger = slog.Default()
	}
	logger = logger.With("component", "task_runner")

	r := &TaskRunner{
		ctx:    ctx,
		store:  store,
		logger: logger,
		errHandler: func(task Task, err error) {
			// Default error handler just logs the error
			logger.Error("task execution failed",
				"task_id", task.ID,
				"target", redact.URL(task.Target),
				"error", redact.Error(err))
		},
	}

	chain := make(queue.Observers[Task, ProbeResult], 0, len(observers)+1)
	chain = append(chain, &statusObserver{runner: r})
	chain = append(chain, observers...)

	r.queue = queue.New[Task, ProbeResult](ctx, worker, config, chain, logger)
	return r
}

// SetErrorHandler allows setting a custom error handler function. It is
// called with the updated task after each failed probe.
func (r *TaskRunner) SetErrorHandler(handler func(task Task, err error)) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.errHandler = handler
}

func (r *TaskRunner) handleError(task Task, err error) {
	r.mu.RLock()
	handler := r.errHandler
	r.mu.RUnlock()
	if handler != nil {
		handler(task, err)
	}
}

// Submit records a new task for target and enqueues it.
func (r *TaskRunner) Submit(ctx context.Context, target string) (Task, error) {
	t := NewTask(target)
	if err := r.store.SaveTask(ctx, t); err != nil {
		return Task{}, fmt.Errorf("failed to save task: %w", err)
	}

	r.queue.Enqueue(t)
	r.logger.Debug("task submitted", "task_id", t.ID, "target", redact.URL(target))
	return t, nil
}

// SubmitBatch records one task per target and enqueues them together, in
// order. If any task cannot be saved, the tasks already saved are marked
// discarded and nothing is enqueued.
func (r *TaskRunner) SubmitBatch(ctx context.Context, targets []string) ([]Task, error) {
	tasks := lo.Map(targets, func(target string, _ int) Task {
		return NewTask(target)
	})

	for i, t := range tasks {
		if err := r.store.SaveTask(ctx, t); err != nil {
			r.discard(ctx, tasks[:i], "batch submission failed")
			return nil, fmt.Errorf("failed to save task %d of %d: %w", i+1, len(tasks), err)
		}
	}

	r.queue.EnqueueMany(tasks...)
	r.logger.Info("task batch submitted", "count", len(tasks))
	return tasks, nil
}

// GetTask returns a task by ID.
func (r *TaskRunner) GetTask(ctx context.Context, id uuid.UUID) (Task, error) {
	return r.store.GetTask(ctx, id)
}

// ListTasks returns tasks in submission order, optionally filtered by status.
func (r *TaskRunner) ListTasks(ctx context.Context, status TaskStatus) ([]Task, error) {
	return r.store.ListTasks(ctx, status)
}

// Pause stops new tasks from starting. Running probes finish normally.
func (r *TaskRunner) Pause() {
	r.queue.Pause()
	r.logger.Info("task queue paused")
}

// Resume lifts a pause.
func (r *TaskRunner) Resume() {
	r.queue.Resume()
	r.logger.Info("task queue resumed")
}

// Start runs a scheduling pass, beginning work on a queue configured without
// auto-start.
func (r *TaskRunner) Start() {
	r.queue.Start()
}

// Clear discards every pending task and marks it discarded in the store.
// Running probes are not affected. Returns the number of tasks discarded.
func (r *TaskRunner) Clear(ctx context.Context) int {
	dropped := r.queue.Clear()
	r.discard(ctx, dropped, "")
	if len(dropped) > 0 {
		r.logger.Info("pending tasks discarded", "count", len(dropped))
	}
	return len(dropped)
}

// Stats returns a snapshot of the queue.
func (r *TaskRunner) Stats() queue.Stats {
	return r.queue.Stats()
}

// Wait blocks until the queue drains or ctx is done.
func (r *TaskRunner) Wait(ctx context.Context) error {
	return r.queue.Wait(ctx)
}

// Stop gracefully shuts down the runner: it pauses the queue, discards
// pending tasks and waits for running probes until ctx is done.
func (r *TaskRunner) Stop(ctx context.Context) error {
	r.queue.Pause()
	discarded := r.Clear(ctx)

	// The queue only reports drain from a scheduling pass.
	r.queue.Start()

	if err := r.queue.Wait(ctx); err != nil {
		r.logger.Warn("task runner stopped with probes still running",
			"active", r.queue.Active(),
			"error", err)
		return fmt.Errorf("waiting for running tasks: %w", err)
	}

	r.logger.Info("task runner stopped", "discarded", discarded)
	return nil
}

func (r *TaskRunner) discard(ctx context.Context, tasks []Task, reason string) {
	now := time.Now().UTC()
	for _, t := range tasks {
		_, err := r.store.UpdateTask(ctx, t.ID, func(stored *Task) {
			if stored.Status.Terminal() {
				return
			}
			stored.Status = TaskStatusDiscarded
			stored.Error = reason
			stored.FinishedAt = &now
		})
		if err != nil {
			r.logger.Error("failed to mark task discarded", "task_id", t.ID, "error", err)
		}
	}
}
