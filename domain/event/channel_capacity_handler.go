package event

import (
	"fmt"
	"log/slog"
	"sng-lab/errors"
)

// ChannelCapacityHandler warns when an internal queue is nearly full,
// which means sinks or the channel guard are falling behind.
type ChannelCapacityHandler struct {
	log *slog.Logger
	// percentage of free room below which a warning is logged
	lowCapacityPercent int
}

func NewChannelCapacityHandler(log *slog.Logger, lowCapacityPercent int) *ChannelCapacityHandler {
	return &ChannelCapacityHandler{log: log, lowCapacityPercent: lowCapacityPercent}
}

func (h ChannelCapacityHandler) Handle(evt Event) {
	if evt.Type != ChannelCapacityType {
		return
	}
	payload, ok := evt.Payload.(ChannelCapacity)
	if !ok {
		h.log.Error(errors.ErrInvalidPayload.Error(), "type", evt.Type)
		return
	}
	if h.Low(payload) {
		h.log.Warn(fmt.Sprintf("Queue %s is almost full: %d/%d", payload.ChannelName, payload.Length, payload.Capacity))
		return
	}
	h.log.Debug("Queue usage", "queue", payload.ChannelName, "length", payload.Length, "capacity", payload.Capacity)
}

// Low reports whether a sample crosses the warning threshold.
func (h ChannelCapacityHandler) Low(c ChannelCapacity) bool {
	return c.Capacity > 0 && (c.Capacity-c.Length)*100 <= c.Capacity*h.lowCapacityPercent
}
