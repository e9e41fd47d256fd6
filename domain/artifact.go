package domain

import (
	"time"

	"github.com/samber/lo"
)

type ArtifactID string

type ArtifactKind string

const (
	ArtifactStatus       ArtifactKind = "status"
	ArtifactAnnouncement ArtifactKind = "announcement"
	ArtifactMention      ArtifactKind = "mention"
	ArtifactPing         ArtifactKind = "ping"
	ArtifactReplacement  ArtifactKind = "replacement"
	ArtifactConfirmation ArtifactKind = "confirmation"
	ArtifactHistory      ArtifactKind = "history"
)

// HandleScope tells how long a handle stays usable on the surface.
// Interaction handles expire, channel handles do not.
type HandleScope int

const (
	ScopeInteraction HandleScope = iota
	ScopeChannel
)

// ArtifactHandle is an opaque reference to a message posted on the chat surface.
type ArtifactHandle struct {
	ID       ArtifactID
	Channel  ChannelID
	Kind     ArtifactKind
	Scope    HandleScope
	IssuedAt time.Time
}

func (h ArtifactHandle) IsZero() bool {
	return h.ID == ""
}

type trackedArtifact struct {
	handle  ArtifactHandle
	deleted bool
}

// ArtifactTracker records every visible message produced by one session, in creation order.
// It is owned by the session and mutated under the session lock only.
type ArtifactTracker struct {
	entries []trackedArtifact
}

func NewArtifactTracker() *ArtifactTracker {
	return &ArtifactTracker{}
}

func (t *ArtifactTracker) Track(handle ArtifactHandle) {
	if handle.IsZero() {
		return
	}
	t.entries = append(t.entries, trackedArtifact{handle: handle})
}

// MarkDeleted flags an artifact that already had its deletion attempt so Drain skips it.
func (t *ArtifactTracker) MarkDeleted(id ArtifactID) {
	for i := range t.entries {
		if t.entries[i].handle.ID == id {
			t.entries[i].deleted = true
		}
	}
}

// Drain returns the artifacts still pending deletion and empties the tracker.
func (t *ArtifactTracker) Drain() []ArtifactHandle {
	pending := lo.FilterMap(t.entries, func(item trackedArtifact, _ int) (ArtifactHandle, bool) {
		return item.handle, !item.deleted
	})
	t.entries = nil
	return pending
}

// Pending lists the artifacts still awaiting deletion without draining them.
func (t *ArtifactTracker) Pending() []ArtifactHandle {
	return lo.FilterMap(t.entries, func(item trackedArtifact, _ int) (ArtifactHandle, bool) {
		return item.handle, !item.deleted
	})
}

func (t *ArtifactTracker) Contains(id ArtifactID) bool {
	return lo.ContainsBy(t.entries, func(item trackedArtifact) bool {
		return item.handle.ID == id
	})
}

func (t *ArtifactTracker) Len() int {
	return len(t.entries)
}
