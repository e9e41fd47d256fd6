package workers

import (
	"context"
	"log/slog"
	"sng-lab/domain/event"
	"time"
)

// Gauge reports how full one internal queue is.
type Gauge struct {
	Name     string
	Capacity int
	Length   func() int
}

func Measure[T any](name string, ch chan T) Gauge {
	return Gauge{Name: name, Capacity: cap(ch), Length: func() int { return len(ch) }}
}

// ChannelCapacityWorker periodically samples the lifecycle and chat queues.
// A sample that cannot be queued is dropped, the next tick replaces it.
type ChannelCapacityWorker struct {
	log           *slog.Logger
	gauges        []Gauge
	telemetryChan chan<- event.Event
	interval      time.Duration
}

func NewChannelCapacityWorker(log *slog.Logger, gauges []Gauge,
	telemetryChan chan<- event.Event, interval time.Duration) *ChannelCapacityWorker {
	return &ChannelCapacityWorker{log: log, gauges: gauges, telemetryChan: telemetryChan, interval: interval}
}

func (w ChannelCapacityWorker) Run(ctx context.Context) error {
	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			w.log.Debug("Context done, stopping capacity sampling")
			return nil
		case <-ticker.C:
			w.sample()
		}
	}
}

func (w ChannelCapacityWorker) sample() {
	for _, g := range w.gauges {
		evt := event.New(event.ChannelCapacityType, event.ChannelCapacity{
			ChannelName: g.Name,
			Capacity:    g.Capacity,
			Length:      g.Length(),
		})
		select {
		case w.telemetryChan <- evt:
		default:
			w.log.Debug("Capacity sample dropped", "queue", g.Name)
		}
	}
}
