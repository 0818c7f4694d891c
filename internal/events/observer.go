package events

import (
	"context"
	"errors"
	"log/slog"

	"github.com/phrazzld/boundq/internal/queue"
	"github.com/phrazzld/boundq/internal/redact"
)

// ItemIDFunc derives the identifier an event carries for a queue item.
type ItemIDFunc[T any] func(item T) string

// SettledPayload is the payload of an item_settled event.
type SettledPayload struct {
	OK        bool  `json:"ok"`
	ElapsedMS int64 `json:"elapsed_ms"`
}

// DrainedPayload is the payload of a queue_drained event.
type DrainedPayload struct {
	Started   uint64 `json:"started"`
	Succeeded uint64 `json:"succeeded"`
	Failed    uint64 `json:"failed"`
}

// QueueObserver publishes the lifecycle of a queue.BoundedQueue as
// QueueEvents. Emission errors are logged and otherwise ignored so that a
// failing handler never disturbs the queue.
type QueueObserver[T, R any] struct {
	ctx     context.Context
	emitter EventEmitter
	name    string
	itemID  ItemIDFunc[T]
	stats   func() queue.Stats
	errText func(error) string
	logger  *slog.Logger
}

var _ queue.Observer[string, string] = (*QueueObserver[string, string])(nil)

// NewQueueObserver creates an observer publishing to emitter under the queue
// name. itemID must not be nil.
func NewQueueObserver[T, R any](
	ctx context.Context,
	emitter EventEmitter,
	name string,
	itemID ItemIDFunc[T],
	logger *slog.Logger,
) *QueueObserver[T, R] {
	if logger == nil {
		logger = slog.Default()
	}
	return &QueueObserver[T, R]{
		ctx:     ctx,
		emitter: emitter,
		name:    name,
		itemID:  itemID,
		errText: redact.Error,
		logger:  logger.With("component", "queue_observer", "queue", name),
	}
}

// WithStats sets the source of the counters attached to queue_drained
// events, normally the observed queue's Stats method.
func (o *QueueObserver[T, R]) WithStats(stats func() queue.Stats) *QueueObserver[T, R] {
	o.stats = stats
	return o
}

// WithErrorFormatter sets how worker errors are rendered into the Error field
// of item_failed and item_settled events. Events are served to API clients, so
// format must not return credentials; the default is redact.Error.
func (o *QueueObserver[T, R]) WithErrorFormatter(format func(error) string) *QueueObserver[T, R] {
	if format != nil {
		o.errText = format
	}
	return o
}

func (o *QueueObserver[T, R]) ItemStarted(item T) {
	o.emit(KindItemStarted, o.itemID(item), "", nil)
}

func (o *QueueObserver[T, R]) ItemSucceeded(item T, value R) {
	o.emit(KindItemSucceeded, o.itemID(item), "", value)
}

func (o *QueueObserver[T, R]) ItemFailed(item T, err *queue.WorkerError[T]) {
	o.emit(KindItemFailed, o.itemID(item), o.errText(err.Err), nil)
}

func (o *QueueObserver[T, R]) ItemSettled(item T, result queue.Result[R]) {
	var msg string
	if result.Err != nil {
		cause := result.Err
		var werr *queue.WorkerError[T]
		if errors.As(cause, &werr) {
			cause = werr.Err
		}
		msg = o.errText(cause)
	}
	o.emit(KindItemSettled, o.itemID(item), msg, SettledPayload{
		OK:        result.OK(),
		ElapsedMS: result.Elapsed.Milliseconds(),
	})
}

func (o *QueueObserver[T, R]) Drained() {
	var payload any
	if o.stats != nil {
		s := o.stats()
		payload = DrainedPayload{
			Started:   s.Started,
			Succeeded: s.Succeeded,
			Failed:    s.Failed,
		}
	}
	o.emit(KindQueueDrained, "", "", payload)
}

func (o *QueueObserver[T, R]) emit(kind Kind, itemID, errMsg string, payload any) {
	event, err := NewQueueEvent(kind, o.name, itemID, payload)
	if err != nil {
		o.logger.Error("failed to build queue event",
			"error", err,
			"event_kind", kind,
			"item_id", itemID)
		return
	}
	event.Error = errMsg

	if err := o.emitter.EmitEvent(o.ctx, event); err != nil {
		o.logger.Warn("failed to emit queue event",
			"error", err,
			"event_id", event.ID,
			"event_kind", kind)
	}
}
