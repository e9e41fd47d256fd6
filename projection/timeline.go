// Package projection builds read models from observed lifecycle events.
// It does not emit events or talk to the chat surface.
package projection

import (
	"context"
	"fmt"
	"sng-lab/domain"
	"sng-lab/domain/event"
	"sync"
	"time"

	"github.com/samber/lo"
)

type Entry struct {
	At      time.Time        `json:"at"`
	Type    event.Type       `json:"type"`
	Session domain.SessionID `json:"session,omitempty"`
	Summary string           `json:"summary"`
}

// Timeline keeps the most recent lifecycle events, oldest first.
type Timeline struct {
	mu       sync.RWMutex
	capacity int
	entries  []Entry
}

func NewTimeline(capacity int) *Timeline {
	if capacity < 1 {
		capacity = 1
	}
	return &Timeline{capacity: capacity}
}

func (t *Timeline) Consume(_ context.Context, e event.Event) error {
	session, _ := event.SessionOf(e)
	entry := Entry{At: e.CreatedAt, Type: e.Type, Session: session, Summary: summarize(e)}

	t.mu.Lock()
	defer t.mu.Unlock()
	t.entries = append(t.entries, entry)
	if overflow := len(t.entries) - t.capacity; overflow > 0 {
		t.entries = t.entries[overflow:]
	}
	return nil
}

func (t *Timeline) Entries() []Entry {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return append([]Entry(nil), t.entries...)
}

// Session lists the recorded entries of one session.
func (t *Timeline) Session(id domain.SessionID) []Entry {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return lo.Filter(t.entries, func(e Entry, _ int) bool { return e.Session == id })
}

func summarize(e event.Event) string {
	switch p := e.Payload.(type) {
	case event.SessionCreated:
		return fmt.Sprintf("SNG %s opened by %s", p.DisplayID, p.Starter)
	case event.SlotClaimed:
		return fmt.Sprintf("%s claimed slot %d", p.Participant, p.Slot)
	case event.SessionStarted:
		if p.Automatic {
			return fmt.Sprintf("SNG %s started automatically with %d players", p.DisplayID, p.Players)
		}
		return fmt.Sprintf("SNG %s started manually with %d players", p.DisplayID, p.Players)
	case event.SubscriptionToggled:
		if p.Subscribed {
			return fmt.Sprintf("%s subscribed", p.Participant)
		}
		return fmt.Sprintf("%s unsubscribed", p.Participant)
	case event.SessionEnded:
		return fmt.Sprintf("SNG %s ended (%s), %d artifact(s), %d failed",
			p.Report.Session.DisplayID, p.Report.Trigger, len(p.Report.Results), len(p.Report.Failed()))
	case event.ArtifactCleanupFailed:
		return fmt.Sprintf("artifact %s left behind: %s", p.Result.Handle.ID, p.Result.Outcome)
	default:
		return string(e.Type)
	}
}
