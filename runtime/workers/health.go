package workers

import (
	"context"
	"log/slog"
	"os"
	"sng-lab/domain"
	"sng-lab/domain/event"
	"time"

	"github.com/shirou/gopsutil/process"
)

// ActiveSessions reports the sessions currently live.
type ActiveSessions interface {
	Active() []domain.Snapshot
}

// HealthWorker samples the coordinator process and its live session count.
type HealthWorker struct {
	log            *slog.Logger
	sessions       ActiveSessions
	telemetryChan  chan<- event.Event
	metricInterval time.Duration
}

func NewHealthWorker(log *slog.Logger, sessions ActiveSessions, telemetryChan chan<- event.Event,
	metricInterval time.Duration) *HealthWorker {
	return &HealthWorker{
		log:            log,
		sessions:       sessions,
		telemetryChan:  telemetryChan,
		metricInterval: metricInterval,
	}
}

func (w *HealthWorker) Run(ctx context.Context) error {
	p, err := process.NewProcess(int32(os.Getpid()))
	if err != nil {
		return err
	}
	ticker := time.NewTicker(w.metricInterval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			w.log.Debug("Context done, stopping health sampling")
			return nil
		case <-ticker.C:
			health, err := w.sample(p)
			if err != nil {
				w.log.Error("Failed to collect self stats", "err", err)
				continue
			}
			select {
			case w.telemetryChan <- event.New(event.ProcessHealthType, health):
			default:
				w.log.Debug("Observability telemetry event lost")
			}
		}
	}
}

func (w *HealthWorker) sample(p *process.Process) (event.ProcessHealth, error) {
	memInfo, err := p.MemoryInfo()
	if err != nil {
		return event.ProcessHealth{}, err
	}
	cpuPercent, err := p.CPUPercent()
	if err != nil {
		return event.ProcessHealth{}, err
	}
	return event.ProcessHealth{
		PID:            p.Pid,
		Cpu:            cpuPercent,
		Ram:            memInfo.RSS,
		ActiveSessions: len(w.sessions.Active()),
	}, nil
}
