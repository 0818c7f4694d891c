package task

import (
	"errors"
	"time"

	"github.com/phrazzld/boundq/internal/queue"
)

// statusObserver moves tasks through their statuses as the queue reports
// progress.
type statusObserver struct {
	runner *TaskRunner
}

var _ queue.Observer[Task, ProbeResult] = (*statusObserver)(nil)

func (o *statusObserver) update(t Task, fn func(*Task)) (Task, bool) {
	updated, err := o.runner.store.UpdateTask(o.runner.ctx, t.ID, fn)
	if err != nil {
		o.runner.logger.Error("failed to update task status",
			"task_id", t.ID,
			"error", err)
		return Task{}, false
	}
	return updated, true
}

func (o *statusObserver) ItemStarted(t Task) {
	now := time.Now().UTC()
	o.update(t, func(stored *Task) {
		stored.Status = TaskStatusProcessing
		stored.StartedAt = &now
	})
}

func (o *statusObserver) ItemSucceeded(t Task, result ProbeResult) {
	now := time.Now().UTC()
	o.update(t, func(stored *Task) {
		stored.Status = TaskStatusCompleted
		stored.StatusCode = result.StatusCode
		stored.LatencyMS = result.LatencyMS
		stored.FinishedAt = &now
	})
}

func (o *statusObserver) ItemFailed(t Task, werr *queue.WorkerError[Task]) {
	now := time.Now().UTC()
	cause := werr.Err

	updated, ok := o.update(t, func(stored *Task) {
		stored.Status = TaskStatusFailed
		stored.Error = FailureMessage(cause)
		stored.FinishedAt = &now

		var statusErr *StatusError
		if errors.As(cause, &statusErr) {
			stored.StatusCode = statusErr.StatusCode
		}
	})
	if !ok {
		updated = t
	}

	o.runner.handleError(updated, cause)
}

func (o *statusObserver) ItemSettled(Task, queue.Result[ProbeResult]) {}

func (o *statusObserver) Drained() {
	stats := o.runner.queue.Stats()
	o.runner.logger.Info("task queue drained",
		"succeeded", stats.Succeeded,
		"failed", stats.Failed,
		"paused", stats.Paused)
}
