package workers

import (
	"context"
	"log/slog"
	"sng-lab/contract"
	"sng-lab/domain/event"
	"sync"
	"time"
)

// EventFanout broadcasts lifecycle events to every registered sink, then
// forwards them to telemetry.
//
// Delivery is best effort: no ordering across sinks, no retries, and each
// sink gets its own timeout so a slow sink cannot stall session work.
type EventFanout struct {
	log           *slog.Logger
	lifecycleChan <-chan event.Event
	telemetryChan chan<- event.Event
	sinks         []contract.EventSink
	sinkTimeout   time.Duration
}

func NewEventFanout(log *slog.Logger, lifecycleChan <-chan event.Event, telemetryChan chan<- event.Event,
	sinkTimeout time.Duration, sinks ...contract.EventSink) *EventFanout {
	return &EventFanout{
		log:           log,
		lifecycleChan: lifecycleChan,
		telemetryChan: telemetryChan,
		sinks:         sinks,
		sinkTimeout:   sinkTimeout,
	}
}

func (w *EventFanout) Run(ctx context.Context) error {
	for {
		if ctx.Err() != nil {
			w.log.Debug("Context done, stopping lifecycle fan-out")
			w.drain()
			return nil
		}
		select {
		case <-ctx.Done():
			continue
		case evt, ok := <-w.lifecycleChan:
			if !ok {
				w.log.Debug("Lifecycle channel is closed")
				return nil
			}
			w.Fanout(ctx, evt)
			if w.telemetryChan == nil {
				continue
			}
			select {
			case w.telemetryChan <- evt:
			default:
				w.log.Debug("Observability telemetry event lost")
			}
		}
	}
}

// drain delivers what is still buffered, typically the SessionEnded events of a shutdown,
// and waits for the sinks before returning.
func (w *EventFanout) drain() {
	var wg sync.WaitGroup
	defer wg.Wait()
	for {
		select {
		case evt, ok := <-w.lifecycleChan:
			if !ok {
				return
			}
			w.fanout(context.Background(), evt, &wg)
		default:
			return
		}
	}
}

// Fanout hands the event to each sink in its own goroutine.
func (w *EventFanout) Fanout(ctx context.Context, evt event.Event) {
	w.fanout(ctx, evt, nil)
}

func (w *EventFanout) fanout(ctx context.Context, evt event.Event, wg *sync.WaitGroup) {
	for _, sink := range w.sinks {
		if wg != nil {
			wg.Add(1)
		}
		go func(s contract.EventSink) {
			if wg != nil {
				defer wg.Done()
			}
			sinkCtx, cancel := context.WithTimeout(ctx, w.sinkTimeout)
			defer cancel()
			if err := s.Consume(sinkCtx, evt); err != nil {
				w.log.Warn("Sink failed to consume event", "type", evt.Type, "error", err)
			}
		}(sink)
	}
}
