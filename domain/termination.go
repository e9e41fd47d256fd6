package domain

import (
	"time"

	"github.com/samber/lo"
)

// Trigger names what asked for a session to end.
type Trigger int

const (
	TriggerManual Trigger = iota
	TriggerInactivity
	TriggerAutoEnd
	TriggerRecovery
	TriggerShutdown
)

func (t Trigger) String() string {
	switch t {
	case TriggerManual:
		return "manual"
	case TriggerInactivity:
		return "inactivity"
	case TriggerAutoEnd:
		return "auto_end"
	case TriggerRecovery:
		return "recovery"
	case TriggerShutdown:
		return "shutdown"
	default:
		return "unknown"
	}
}

// Interactive is true when a participant is waiting for a private confirmation.
func (t Trigger) Interactive() bool {
	return t == TriggerManual
}

type CleanupOutcome int

const (
	OutcomeDeleted CleanupOutcome = iota
	OutcomeNotFound
	OutcomeForbidden
	OutcomeFailed
)

func (o CleanupOutcome) String() string {
	switch o {
	case OutcomeDeleted:
		return "deleted"
	case OutcomeNotFound:
		return "not_found"
	case OutcomeForbidden:
		return "forbidden"
	default:
		return "failed"
	}
}

// Succeeded treats an artifact that is already gone as cleaned up.
func (o CleanupOutcome) Succeeded() bool {
	return o == OutcomeDeleted || o == OutcomeNotFound
}

type ArtifactResult struct {
	Handle   ArtifactHandle
	Outcome  CleanupOutcome
	Attempts int
	Err      error
}

type TerminationReport struct {
	Session Snapshot
	Trigger Trigger
	Results []ArtifactResult
	Swept   int
	EndedAt time.Time
}

func (r TerminationReport) Failed() []ArtifactResult {
	return lo.Filter(r.Results, func(item ArtifactResult, _ int) bool {
		return !item.Outcome.Succeeded()
	})
}

type ClaimResult struct {
	Snapshot    Snapshot
	AutoStarted bool
}
