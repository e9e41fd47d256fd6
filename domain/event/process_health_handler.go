package event

import (
	"fmt"
	"log/slog"
	"sng-lab/errors"
)

type ProcessHealthHandler struct {
	log *slog.Logger
}

func NewProcessHealthHandler(log *slog.Logger) *ProcessHealthHandler {
	return &ProcessHealthHandler{log: log}
}

func (h ProcessHealthHandler) Handle(event Event) {
	switch event.Type {
	case ProcessHealthType:
		payload, ok := event.Payload.(ProcessHealth)
		if !ok {
			h.log.Error(errors.ErrInvalidPayload.Error())
			return
		}
		h.log.Debug(fmt.Sprintf("[HEALTH] PID %d | CPU %.2f%% | RAM %d bytes | %d active session(s)",
			payload.PID, payload.Cpu, payload.Ram, payload.ActiveSessions))
	}
}
