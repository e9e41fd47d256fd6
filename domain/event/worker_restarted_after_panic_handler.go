package event

import (
	"fmt"
	"log/slog"
	"sng-lab/errors"
)

// WorkerRestartedAfterPanicHandler counts supervisor restarts. A worker that keeps
// panicking shows up as a growing total in the logs.
type WorkerRestartedAfterPanicHandler struct {
	log     *slog.Logger
	counter *Counter
}

func NewWorkerRestartedAfterPanicHandler(log *slog.Logger, counter *Counter) *WorkerRestartedAfterPanicHandler {
	return &WorkerRestartedAfterPanicHandler{log: log, counter: counter}
}

func (h *WorkerRestartedAfterPanicHandler) Handle(evt Event) {
	if evt.Type != RestartedAfterPanicType {
		return
	}
	payload, ok := evt.Payload.(WorkerRestartedAfterPanic)
	if !ok {
		h.log.Error(errors.ErrInvalidPayload.Error(), "type", evt.Type)
		return
	}
	h.counter.Increment(RestartedAfterPanicType)
	h.log.Warn(fmt.Sprintf("Worker %s restarted after panic", payload.WorkerName),
		"restarts", h.counter.Get(RestartedAfterPanicType))
}
