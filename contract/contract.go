//go:generate go run go.uber.org/mock/mockgen -source=contract.go -destination=../mocks/mock_contract.go -package=mocks
package contract

import (
	"context"
	"reflect"
	"sng-lab/domain"
	"sng-lab/domain/event"
)

type ISupervisor interface {
	Add(worker ...Worker) ISupervisor
	Run(ctx context.Context)
	Start(ctx context.Context, worker Worker)
	Stop()
}

type WorkerName string

// Worker doesn't protect itself
// Can be silly, focused
type Worker interface {
	Run(ctx context.Context) error
}

// GetWorkerName uses reflection to retrieve the type name of the worker.
// This is used for logging and supervision purposes during worker initialization
// or lifecycle events, avoiding the need for manual naming in the Worker interface.
func GetWorkerName(w Worker) string {
	if w == nil {
		return "NilWorker"
	}
	t := reflect.TypeOf(w)
	for t.Kind() == reflect.Ptr {
		t = t.Elem()
	}
	return t.Name()
}

type EventSink interface {
	Consume(ctx context.Context, e event.Event) error
}

// Connector is the chat surface a session talks to.
// Every call may block on network I/O and must never be made while holding a session lock.
type Connector interface {
	RenderStatus(ctx context.Context, snapshot domain.Snapshot) (domain.ArtifactHandle, error)
	// UpdateStatus may fail with errors.ErrStaleHandle once an interaction handle expired.
	UpdateStatus(ctx context.Context, handle domain.ArtifactHandle, snapshot domain.Snapshot) error
	SendAnnouncement(ctx context.Context, channel domain.ChannelID, text string) (domain.ArtifactHandle, error)
	SendEphemeral(ctx context.Context, recipient domain.Identity, text string) error
	// DeleteArtifact reports errors.ErrArtifactNotFound, errors.ErrPermissionDenied,
	// errors.ErrStaleHandle or any other error as transient.
	DeleteArtifact(ctx context.Context, handle domain.ArtifactHandle) error
	// ResolveArtifact re-fetches a handle through its owning channel.
	ResolveArtifact(ctx context.Context, handle domain.ArtifactHandle) (domain.ArtifactHandle, error)
	// FindArtifacts lists messages authored by the coordinator in a channel whose text contains marker.
	FindArtifacts(ctx context.Context, channel domain.ChannelID, marker string, limit int) ([]domain.ArtifactHandle, error)
	NotifySubscriber(ctx context.Context, recipient domain.Identity, text string) error
	MentionGroup(ctx context.Context, channel domain.ChannelID, group string) (domain.ArtifactHandle, error)
}

// SessionController is the command surface exposed to participants and timers.
type SessionController interface {
	CreateSession(ctx context.Context, starter domain.Participant) (domain.Snapshot, error)
	ClaimSlot(ctx context.Context, id domain.SessionID, p domain.Participant, slot int) (domain.ClaimResult, error)
	ManualStart(ctx context.Context, id domain.SessionID, p domain.Participant) (domain.Snapshot, error)
	ManualEnd(ctx context.Context, id domain.SessionID, p domain.Participant) (domain.TerminationReport, error)
	ToggleSubscription(ctx context.Context, id domain.SessionID, p domain.Participant) (bool, error)
	Terminate(ctx context.Context, id domain.SessionID, trigger domain.Trigger) (domain.TerminationReport, error)
	Active() []domain.Snapshot
}

// InteractionHandler receives what participants do on the chat surface.
type InteractionHandler interface {
	HandleCommand(ctx context.Context, p domain.Participant, command string)
	HandleControl(ctx context.Context, p domain.Participant, controlID string)
	HandleMessage(ctx context.Context, msg domain.ChatMessage)
}
