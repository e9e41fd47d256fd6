// Package runtime runs sit-and-go sessions: the session state machine, its timers,
// artifact cleanup, and the supervised background workers around it.
package runtime

import (
	"context"
	"fmt"
	"log/slog"
	"sng-lab/contract"
	"sng-lab/domain"
	"sng-lab/domain/event"
	"sng-lab/runtime/workers"
	"sync"
	"time"
)

// Options wires an Orchestrator.
type Options struct {
	Settings             Settings
	Retry                RetryPolicy
	Policy               domain.ChannelPolicy
	NotifyConcurrency    int
	DeliveryTimeout      time.Duration
	BufferSize           int
	SinkTimeout          time.Duration
	RestartInterval      time.Duration
	MetricInterval       time.Duration
	LowCapacityThreshold int
	ReaperInterval       time.Duration
	ReaperGrace          time.Duration
}

type Orchestrator struct {
	mu              sync.Mutex
	log             *slog.Logger
	opts            Options
	connector       contract.Connector
	controller      *Controller
	supervisor      contract.ISupervisor
	sinks           []contract.EventSink
	counter         *event.Counter
	lifecycleEvents chan event.Event
	telemetryEvents chan event.Event
	chatMessages    chan domain.ChatMessage
}

func NewOrchestrator(log *slog.Logger, connector contract.Connector, opts Options) *Orchestrator {
	lifecycleEvents := make(chan event.Event, opts.BufferSize)
	telemetryEvents := make(chan event.Event, opts.BufferSize)
	controller := NewController(log, opts.Settings, connector, NewRegistry(),
		NewCleaner(log, connector, opts.Retry),
		NewNotifier(log, connector, opts.NotifyConcurrency, opts.DeliveryTimeout),
		lifecycleEvents)
	return &Orchestrator{
		log:             log,
		opts:            opts,
		connector:       connector,
		controller:      controller,
		supervisor:      workers.NewSupervisor(log, telemetryEvents, opts.RestartInterval),
		counter:         event.NewCounter(),
		lifecycleEvents: lifecycleEvents,
		telemetryEvents: telemetryEvents,
		chatMessages:    make(chan domain.ChatMessage, opts.BufferSize),
	}
}

func (o *Orchestrator) Controller() *Controller {
	return o.controller
}

// Counter exposes the per-type event totals gathered by telemetry.
func (o *Orchestrator) Counter() *event.Counter {
	return o.counter
}

// Add registers sinks; it must be called before Start.
func (o *Orchestrator) Add(sinks ...contract.EventSink) {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.sinks = append(o.sinks, sinks...)
}

// Observe hands a free text message to the channel guard without blocking.
func (o *Orchestrator) Observe(msg domain.ChatMessage) {
	select {
	case o.chatMessages <- msg:
	default:
		o.log.Warn(fmt.Sprintf("Chat message channel full for %s, dropping message", msg.Channel))
	}
}

// Start registers every worker on the supervisor and blocks until it stops.
func (o *Orchestrator) Start(ctx context.Context) error {
	o.mu.Lock()
	sinks := append([]contract.EventSink(nil), o.sinks...)
	o.supervisor.Add(
		workers.NewEventFanout(o.log, o.lifecycleEvents, o.telemetryEvents, o.opts.SinkTimeout, sinks...),
		workers.NewTelemetryWorker(o.log, o.telemetryEvents, o.handlers()),
		workers.NewChannelCapacityWorker(o.log, []workers.Gauge{
			workers.Measure("lifecycle", o.lifecycleEvents),
			workers.Measure("chat", o.chatMessages),
		}, o.telemetryEvents, o.opts.MetricInterval),
		workers.NewHealthWorker(o.log, o.controller, o.telemetryEvents, o.opts.MetricInterval),
		workers.NewReaperWorker(o.log, o.controller, o.opts.ReaperInterval, o.opts.ReaperGrace),
		workers.NewChannelGuardWorker(o.log, o.opts.Policy, o.connector, o.chatMessages, o.opts.DeliveryTimeout),
	)
	o.mu.Unlock()

	o.log.Info(fmt.Sprintf("Starting orchestrator with %d sink(s) and all supervised workers", len(sinks)))
	o.supervisor.Run(ctx)
	return nil
}

func (o *Orchestrator) handlers() []event.Handler {
	return []event.Handler{
		event.NewLifecycleHandler(o.log, o.counter),
		event.NewCleanupFailureHandler(o.log, o.counter),
		event.NewWorkerRestartedAfterPanicHandler(o.log, o.counter),
		event.NewChannelCapacityHandler(o.log, o.opts.LowCapacityThreshold),
		event.NewProcessHealthHandler(o.log),
	}
}

// Stop ends every live session first, so their final events still reach the sinks,
// then cancels the supervised workers.
func (o *Orchestrator) Stop(ctx context.Context) error {
	o.log.Info("Requesting orchestrator shutdown")
	err := o.controller.Shutdown(ctx)
	o.supervisor.Stop()
	return err
}
