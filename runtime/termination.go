package runtime

import (
	"context"
	"fmt"
	"sng-lab/domain"
	"sng-lab/domain/event"
	sngerrors "sng-lab/errors"
	"time"

	"github.com/samber/lo"
)

const endedText = "SNG %s has been ended."

// Terminate ends a session for a non-interactive trigger.
func (c *Controller) Terminate(ctx context.Context, id domain.SessionID, trigger domain.Trigger) (domain.TerminationReport, error) {
	return c.terminate(ctx, id, trigger, nil)
}

// terminate runs the termination protocol. Exactly one caller wins per session:
//  1. acquire the latch, losers get ErrAlreadyEnding or ErrAlreadyEnded
//  2. stop every timer
//  3. drain the tracker and delete each artifact with the retry policy
//  4. remove the session from the registry
//  5. confirm to the actor, or to the channel for automatic triggers
func (c *Controller) terminate(ctx context.Context, id domain.SessionID, trigger domain.Trigger, actor *domain.Participant) (domain.TerminationReport, error) {
	e, ok := c.registry.lookup(id)
	if !ok {
		return domain.TerminationReport{}, fmt.Errorf("%w: %s", sngerrors.ErrSessionNotFound, id)
	}
	if e.ending.Load() {
		return domain.TerminationReport{}, sngerrors.ErrAlreadyEnding
	}

	e.mu.Lock()
	if err := c.precondition(e.session, trigger, actor); err != nil {
		e.mu.Unlock()
		return domain.TerminationReport{}, err
	}
	if !e.ending.CompareAndSwap(false, true) {
		e.mu.Unlock()
		return domain.TerminationReport{}, sngerrors.ErrAlreadyEnding
	}
	// The report keeps the phase the session ended from.
	snapshot := e.session.Snapshot()
	_ = e.session.End()
	e.timers.StopAll()
	pending := e.session.Artifacts.Drain()
	e.mu.Unlock()

	c.log.Info(fmt.Sprintf("Ending SNG %s", snapshot.DisplayID), "session", id, "trigger", trigger.String(),
		"artifacts", len(pending))

	results := c.cleaner.DeleteAll(ctx, pending)
	swept := 0
	if c.settings.SweepHistory {
		swept = c.sweepHistory(ctx, snapshot, pending)
	}
	c.registry.remove(id, e)
	c.confirm(ctx, snapshot, trigger, actor)

	report := domain.TerminationReport{
		Session: snapshot,
		Trigger: trigger,
		Results: results,
		Swept:   swept,
		EndedAt: time.Now().UTC(),
	}
	for _, failed := range report.Failed() {
		c.emit(event.New(event.ArtifactCleanupFailedType, event.ArtifactCleanupFailed{Session: id, Result: failed}))
	}
	c.emit(event.New(event.SessionEndedType, event.SessionEnded{Report: report}))

	if actor != nil {
		c.log.Info(fmt.Sprintf("SNG %s ended by %s", snapshot.DisplayID, actor.Name), "session", id)
	} else {
		c.log.Info(fmt.Sprintf("SNG %s was automatically ended.", snapshot.DisplayID), "session", id, "trigger", trigger.String())
	}
	return report, nil
}

// precondition re-checks, under the session lock, that the trigger still applies.
// A timer that lost a race against a phase change must not end the session.
func (c *Controller) precondition(s *domain.Session, trigger domain.Trigger, actor *domain.Participant) error {
	if s.Phase == domain.PhaseEnded {
		return sngerrors.ErrAlreadyEnded
	}
	switch trigger {
	case domain.TriggerInactivity:
		if s.Phase != domain.PhaseForming {
			return fmt.Errorf("%w: inactivity timeout on a started session", sngerrors.ErrInvalidPhase)
		}
	case domain.TriggerAutoEnd:
		if s.Phase != domain.PhaseStarted {
			return fmt.Errorf("%w: auto-end on a forming session", sngerrors.ErrInvalidPhase)
		}
	case domain.TriggerManual:
		if actor != nil && actor.Channel != s.Channel {
			return sngerrors.ErrWrongChannel
		}
	}
	return nil
}

// sweepHistory deletes messages left in the channel that mention the session
// but were never tracked, such as replies to lost interactions.
func (c *Controller) sweepHistory(ctx context.Context, snapshot domain.Snapshot, handled []domain.ArtifactHandle) int {
	found, err := c.connector.FindArtifacts(ctx, snapshot.Channel, snapshot.DisplayID, c.settings.HistoryLimit)
	if err != nil {
		c.log.Warn("History sweep failed", "session", snapshot.ID, "error", err)
		return 0
	}
	seen := lo.SliceToMap(handled, func(h domain.ArtifactHandle) (domain.ArtifactID, struct{}) {
		return h.ID, struct{}{}
	})
	swept := 0
	for _, h := range found {
		if _, ok := seen[h.ID]; ok {
			continue
		}
		h.Kind = domain.ArtifactHistory
		if c.cleaner.Delete(ctx, h).Outcome.Succeeded() {
			swept++
		}
	}
	if swept > 0 {
		c.log.Info(fmt.Sprintf("Deleted %d related message(s) for SNG %s", swept, snapshot.DisplayID), "session", snapshot.ID)
	}
	return swept
}

func (c *Controller) confirm(ctx context.Context, snapshot domain.Snapshot, trigger domain.Trigger, actor *domain.Participant) {
	text := fmt.Sprintf(endedText, snapshot.DisplayID)
	if actor != nil {
		if err := c.connector.SendEphemeral(ctx, actor.ID, text); err != nil {
			c.log.Warn("Failed to send confirmation message", "session", snapshot.ID, "error", err)
		}
		return
	}
	if !c.settings.AnnounceAutoEnd || trigger == domain.TriggerShutdown {
		return
	}
	handle, err := c.connector.SendAnnouncement(ctx, snapshot.Channel, text)
	if err != nil {
		c.log.Warn("Failed to send confirmation message", "session", snapshot.ID, "error", err)
		return
	}
	handle.Kind = domain.ArtifactConfirmation
	deleteLater := func() {
		select {
		case <-time.After(c.settings.ConfirmationTTL):
		case <-c.tasks.Closing():
		}
		deleteCtx, cancel := context.WithTimeout(context.Background(), c.settings.OperationTimeout)
		defer cancel()
		c.cleaner.Delete(deleteCtx, handle)
	}
	if !c.tasks.Go(deleteLater) {
		c.cleaner.Delete(ctx, handle)
	}
}

// Shutdown ends every live session and waits, bounded by ctx, for in-flight timer callbacks.
func (c *Controller) Shutdown(ctx context.Context) error {
	ids := c.registry.IDs()
	c.log.Info(fmt.Sprintf("Shutting down, ending %d live session(s)", len(ids)))
	for _, id := range ids {
		if _, err := c.Terminate(ctx, id, domain.TriggerShutdown); err != nil {
			c.log.Debug("Shutdown termination skipped", "session", id, "error", err)
		}
	}
	return c.tasks.CloseAndWait(ctx)
}
