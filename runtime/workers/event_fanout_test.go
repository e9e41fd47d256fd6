package workers

import (
	"context"
	"log/slog"
	"sng-lab/domain/event"
	"sng-lab/mocks"
	"testing"
	"time"

	"github.com/mama165/sdk-go/logs"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

func TestEventFanout_Fanout(t *testing.T) {
	req := require.New(t)
	log := logs.GetLoggerFromLevel(slog.LevelDebug)
	ctrl := gomock.NewController(t)
	mockSink := mocks.NewMockEventSink(ctrl)

	fanout := NewEventFanout(log, nil, nil, 10*time.Second, mockSink, mockSink)

	done := make(chan struct{}, 2)
	// Given two sinks registered
	mockSink.EXPECT().Consume(gomock.Any(), gomock.Any()).Do(
		func(ctx context.Context, evt event.Event) {
			done <- struct{}{}
		}).Return(nil).
		Times(2)

	// When an event is fanned out
	fanout.Fanout(context.Background(), event.New(event.SessionCreatedType, event.SessionCreated{Session: "s1"}))

	// Then both sinks consumed it
	for i := 0; i < 2; i++ {
		select {
		case <-done:
		case <-time.After(time.Second):
			req.Fail("Sink was not consumed in time")
		}
	}
}

func TestEventFanout_SinkTimeout(t *testing.T) {
	req := require.New(t)
	log := logs.GetLoggerFromLevel(slog.LevelDebug)
	ctrl := gomock.NewController(t)
	mockSink := mocks.NewMockEventSink(ctrl)

	fanout := NewEventFanout(log, nil, nil, 20*time.Millisecond, mockSink)

	errs := make(chan error, 1)
	mockSink.EXPECT().Consume(gomock.Any(), gomock.Any()).
		DoAndReturn(func(ctx context.Context, evt event.Event) error {
			<-ctx.Done()
			errs <- ctx.Err()
			return ctx.Err()
		}).
		Times(1)

	fanout.Fanout(context.Background(), event.New(event.SessionCreatedType, event.SessionCreated{Session: "s1"}))

	// Then the slow sink saw its deadline
	select {
	case err := <-errs:
		req.ErrorIs(err, context.DeadlineExceeded)
	case <-time.After(time.Second):
		req.Fail("Sink timeout was not applied")
	}
}

func TestEventFanout_ForwardsToTelemetry(t *testing.T) {
	req := require.New(t)
	log := logs.GetLoggerFromLevel(slog.LevelDebug)
	lifecycle := make(chan event.Event, 1)
	telemetry := make(chan event.Event, 1)
	fanout := NewEventFanout(log, lifecycle, telemetry, time.Second)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go func() { _ = fanout.Run(ctx) }()

	lifecycle <- event.New(event.SessionEndedType, event.SessionEnded{})

	select {
	case evt := <-telemetry:
		req.Equal(event.SessionEndedType, evt.Type)
	case <-time.After(time.Second):
		req.Fail("Event was not forwarded to telemetry")
	}
}

func TestEventFanout_DrainsBufferedEventsOnStop(t *testing.T) {
	req := require.New(t)
	ctrl := gomock.NewController(t)
	mockSink := mocks.NewMockEventSink(ctrl)
	lifecycle := make(chan event.Event, 4)
	fanout := NewEventFanout(logs.GetLoggerFromLevel(slog.LevelDebug), lifecycle, nil, time.Second, mockSink)

	// Given events still buffered when the worker is canceled
	lifecycle <- event.New(event.SessionEndedType, event.SessionEnded{})
	lifecycle <- event.New(event.SessionEndedType, event.SessionEnded{})
	mockSink.EXPECT().Consume(gomock.Any(), gomock.Any()).Return(nil).Times(2)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	// Then Run delivers them before returning
	req.NoError(fanout.Run(ctx))
	req.Empty(lifecycle)
}
