package event

import (
	"sng-lab/domain"
	"time"
)

type Type string

const (
	SessionCreatedType        Type = "SESSION_CREATED"
	SlotClaimedType           Type = "SLOT_CLAIMED"
	SessionStartedType        Type = "SESSION_STARTED"
	SubscriptionToggledType   Type = "SUBSCRIPTION_TOGGLED"
	SessionEndedType          Type = "SESSION_ENDED"
	ArtifactCleanupFailedType Type = "ARTIFACT_CLEANUP_FAILED"
)

// Event is the envelope flowing through the fan-out to sinks and telemetry handlers.
type Event struct {
	Type      Type
	CreatedAt time.Time
	Payload   any
}

func New(t Type, payload any) Event {
	return Event{Type: t, CreatedAt: time.Now().UTC(), Payload: payload}
}

type SessionCreated struct {
	Session   domain.SessionID
	DisplayID string
	Starter   domain.Identity
	Channel   domain.ChannelID
	Capacity  int
}

type SlotClaimed struct {
	Session     domain.SessionID
	Participant domain.Identity
	Slot        int
	AutoStarted bool
}

type SessionStarted struct {
	Session     domain.SessionID
	DisplayID   string
	Players     int
	Automatic   bool
	Subscribers int
}

type SubscriptionToggled struct {
	Session     domain.SessionID
	Participant domain.Identity
	Subscribed  bool
}

type SessionEnded struct {
	Report domain.TerminationReport
}

type ArtifactCleanupFailed struct {
	Session domain.SessionID
	Result  domain.ArtifactResult
}

// SessionOf extracts the session a lifecycle payload belongs to.
func SessionOf(e Event) (domain.SessionID, bool) {
	switch p := e.Payload.(type) {
	case SessionCreated:
		return p.Session, true
	case SlotClaimed:
		return p.Session, true
	case SessionStarted:
		return p.Session, true
	case SubscriptionToggled:
		return p.Session, true
	case SessionEnded:
		return p.Report.Session.ID, true
	case ArtifactCleanupFailed:
		return p.Session, true
	default:
		return "", false
	}
}
