package event

import (
	"log/slog"
	"sng-lab/errors"
)

type CleanupFailureHandler struct {
	log     *slog.Logger
	counter *Counter
}

func NewCleanupFailureHandler(log *slog.Logger, counter *Counter) *CleanupFailureHandler {
	return &CleanupFailureHandler{log: log, counter: counter}
}

func (h *CleanupFailureHandler) Handle(event Event) {
	switch event.Type {
	case ArtifactCleanupFailedType:
		payload, ok := event.Payload.(ArtifactCleanupFailed)
		if !ok {
			h.log.Error(errors.ErrInvalidPayload.Error())
			return
		}
		h.counter.Increment(ArtifactCleanupFailedType)
		h.log.Warn("Artifact left behind after termination",
			"session", payload.Session,
			"artifact", payload.Result.Handle.ID,
			"kind", payload.Result.Handle.Kind,
			"outcome", payload.Result.Outcome.String(),
			"attempts", payload.Result.Attempts,
			"error", payload.Result.Err)
	}
}
