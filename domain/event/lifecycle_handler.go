package event

import (
	"log/slog"
	"sng-lab/errors"
)

// LifecycleHandler counts session lifecycle events.
// Useful for the debug endpoints and for spotting sessions that never start.
type LifecycleHandler struct {
	log     *slog.Logger
	counter *Counter
}

func NewLifecycleHandler(log *slog.Logger, counter *Counter) *LifecycleHandler {
	return &LifecycleHandler{log: log, counter: counter}
}

func (h *LifecycleHandler) Handle(event Event) {
	switch event.Type {
	case SessionCreatedType, SlotClaimedType, SessionStartedType, SubscriptionToggledType:
		h.counter.Increment(event.Type)
	case SessionEndedType:
		payload, ok := event.Payload.(SessionEnded)
		if !ok {
			h.log.Error(errors.ErrInvalidPayload.Error())
			return
		}
		h.counter.Increment(event.Type)
		h.log.Debug("Session lifecycle closed",
			"session", payload.Report.Session.ID,
			"trigger", payload.Report.Trigger.String(),
			"artifacts", len(payload.Report.Results),
			"failed", len(payload.Report.Failed()))
	}
}
