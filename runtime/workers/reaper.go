package workers

import (
	"context"
	"log/slog"
	"sng-lab/domain"
	"time"
)

// OverdueTerminator is the part of the session controller the reaper drives.
type OverdueTerminator interface {
	Overdue(now time.Time, grace time.Duration) []domain.SessionID
	Terminate(ctx context.Context, id domain.SessionID, trigger domain.Trigger) (domain.TerminationReport, error)
}

// ReaperWorker ends sessions whose own timer should have fired long ago,
// which only happens if a timer callback was lost.
type ReaperWorker struct {
	log        *slog.Logger
	controller OverdueTerminator
	interval   time.Duration
	grace      time.Duration
}

func NewReaperWorker(log *slog.Logger, controller OverdueTerminator, interval, grace time.Duration) *ReaperWorker {
	return &ReaperWorker{log: log, controller: controller, interval: interval, grace: grace}
}

func (w ReaperWorker) Run(ctx context.Context) error {
	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			w.log.Debug("Context done, stopping reaper")
			return nil
		case now := <-ticker.C:
			w.Reap(ctx, now)
		}
	}
}

// Reap returns how many overdue sessions it ended.
func (w ReaperWorker) Reap(ctx context.Context, now time.Time) int {
	reaped := 0
	for _, id := range w.controller.Overdue(now, w.grace) {
		if _, err := w.controller.Terminate(ctx, id, domain.TriggerRecovery); err != nil {
			w.log.Debug("Overdue session skipped", "session", id, "error", err)
			continue
		}
		w.log.Warn("Overdue session reaped", "session", id)
		reaped++
	}
	return reaped
}
