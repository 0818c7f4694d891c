package api

import (
	"context"
	"net/http"

	"github.com/phrazzld/boundq/internal/api/shared"
	"github.com/phrazzld/boundq/internal/events"
	"github.com/phrazzld/boundq/internal/platform/logger"
	"github.com/phrazzld/boundq/internal/queue"
)

// QueueController is the queue control surface used by QueueHandler.
type QueueController interface {
	Pause()
	Resume()
	Start()
	Clear(ctx context.Context) int
	Stats() queue.Stats
}

// EventSource supplies recent queue events, oldest first.
type EventSource interface {
	Recent(limit int) []*events.QueueEvent
}

// QueueHandler handles queue inspection and control requests
type QueueHandler struct {
	queue  QueueController
	events EventSource
}

// NewQueueHandler creates a new QueueHandler. A nil event source serves an
// empty event list.
func NewQueueHandler(q QueueController, src EventSource) *QueueHandler {
	return &QueueHandler{queue: q, events: src}
}

// Stats handles GET /api/queue.
func (h *QueueHandler) Stats(w http.ResponseWriter, r *http.Request) {
	shared.RespondWithJSON(w, r, http.StatusOK, QueueResponse{Stats: h.queue.Stats()})
}

// Pause handles POST /api/queue/pause.
func (h *QueueHandler) Pause(w http.ResponseWriter, r *http.Request) {
	h.queue.Pause()
	h.logControl(r, "pause")
	h.Stats(w, r)
}

// Resume handles POST /api/queue/resume.
func (h *QueueHandler) Resume(w http.ResponseWriter, r *http.Request) {
	h.queue.Resume()
	h.logControl(r, "resume")
	h.Stats(w, r)
}

// Start handles POST /api/queue/start.
func (h *QueueHandler) Start(w http.ResponseWriter, r *http.Request) {
	h.queue.Start()
	h.logControl(r, "start")
	h.Stats(w, r)
}

// Clear handles POST /api/queue/clear.
func (h *QueueHandler) Clear(w http.ResponseWriter, r *http.Request) {
	discarded := h.queue.Clear(r.Context())
	h.logControl(r, "clear", "discarded", discarded)
	shared.RespondWithJSON(w, r, http.StatusOK, ClearResponse{
		Discarded: discarded,
		Stats:     h.queue.Stats(),
	})
}

// Events handles GET /api/events with an optional ?limit=.
func (h *QueueHandler) Events(w http.ResponseWriter, r *http.Request) {
	limit, err := getLimit(r)
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	recent := []*events.QueueEvent{}
	if h.events != nil {
		recent = append(recent, h.events.Recent(limit)...)
	}
	shared.RespondWithJSON(w, r, http.StatusOK, EventsResponse{Events: recent})
}

func (h *QueueHandler) logControl(r *http.Request, action string, args ...any) {
	operator, _ := shared.GetOperator(r.Context())
	args = append([]any{"action", action, "operator", operator}, args...)
	logger.FromContext(r.Context()).Info("queue control", args...)
}
