package workers

import (
	"context"
	"log/slog"
	"sng-lab/domain/event"
	"testing"
	"time"

	"github.com/mama165/sdk-go/logs"
	"github.com/stretchr/testify/require"
)

func TestChannelCapacityWorker_Samples(t *testing.T) {
	req := require.New(t)
	lifecycle := make(chan event.Event, 4)
	lifecycle <- event.New(event.SessionCreatedType, event.SessionCreated{})
	telemetry := make(chan event.Event, 10)
	worker := NewChannelCapacityWorker(logs.GetLoggerFromLevel(slog.LevelDebug),
		[]Gauge{Measure("lifecycle", lifecycle)},
		telemetry, 10*time.Millisecond)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go func() { _ = worker.Run(ctx) }()

	select {
	case evt := <-telemetry:
		payload := evt.Payload.(event.ChannelCapacity)
		req.Equal("lifecycle", payload.ChannelName)
		req.Equal(4, payload.Capacity)
		req.Equal(1, payload.Length)
	case <-time.After(time.Second):
		req.Fail("No capacity sample received")
	}
}

type recordingHandler struct {
	seen chan event.Event
}

func (h recordingHandler) Handle(e event.Event) { h.seen <- e }

func TestTelemetryWorker_DispatchesToHandlers(t *testing.T) {
	req := require.New(t)
	telemetry := make(chan event.Event, 1)
	handler := recordingHandler{seen: make(chan event.Event, 1)}
	worker := NewTelemetryWorker(logs.GetLoggerFromLevel(slog.LevelDebug), telemetry, []event.Handler{handler})

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error)
	go func() { done <- worker.Run(ctx) }()

	telemetry <- event.New(event.ChannelCapacityType, event.ChannelCapacity{ChannelName: "lifecycle"})
	select {
	case evt := <-handler.seen:
		req.Equal(event.ChannelCapacityType, evt.Type)
	case <-time.After(time.Second):
		req.Fail("Handler was not called")
	}
	cancel()
	req.NoError(<-done)
}
