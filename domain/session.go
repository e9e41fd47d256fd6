package domain

import (
	"slices"
	"sng-lab/errors"
	"time"

	"github.com/google/uuid"
	"github.com/samber/lo"
)

const displayIDLength = 8

type SessionID string

// NewSessionID returns a fresh random identifier and its short human form.
func NewSessionID() (SessionID, string) {
	id := uuid.NewString()
	return SessionID(id), id[:displayIDLength]
}

type Phase int

const (
	PhaseForming Phase = iota
	PhaseStarted
	PhaseEnded
)

func (p Phase) String() string {
	switch p {
	case PhaseForming:
		return "Not Started"
	case PhaseStarted:
		return "In Progress"
	case PhaseEnded:
		return "Ended"
	default:
		return "Unknown"
	}
}

// Session is a single sit-and-go signup.
// Phases only move forward: Forming, Started, Ended.
type Session struct {
	ID           SessionID
	DisplayID    string
	Starter      Participant
	Channel      ChannelID
	Capacity     int
	MinPlayers   int
	ClaimedSlots int
	Phase        Phase
	AutoStarted  bool
	Status       ArtifactHandle
	Artifacts    *ArtifactTracker
	CreatedAt    time.Time
	StartedAt    time.Time
	LastActivity time.Time
	subscribers  map[Identity]struct{}
}

func NewSession(id SessionID, displayID string, starter Participant, capacity, minPlayers int, now time.Time) *Session {
	return &Session{
		ID:           id,
		DisplayID:    displayID,
		Starter:      starter,
		Channel:      starter.Channel,
		Capacity:     capacity,
		MinPlayers:   minPlayers,
		ClaimedSlots: 1,
		Phase:        PhaseForming,
		Artifacts:    NewArtifactTracker(),
		CreatedAt:    now,
		LastActivity: now,
		subscribers:  make(map[Identity]struct{}),
	}
}

// ClaimSlot sets the roster to the claimed slot, last writer wins.
// Claiming the last slot starts the session and reports it through the returned flag.
func (s *Session) ClaimSlot(slot int, now time.Time) (bool, error) {
	switch s.Phase {
	case PhaseEnded:
		return false, errors.ErrSessionNotFound
	case PhaseStarted:
		return false, errors.ErrAlreadyStarted
	}
	if slot < 1 || slot > s.Capacity {
		return false, errors.ErrInvalidSlot
	}
	s.ClaimedSlots = slot
	s.LastActivity = now
	if slot == s.Capacity {
		s.start(now, true)
		return true, nil
	}
	return false, nil
}

// Start moves a forming session with enough players into Started.
func (s *Session) Start(now time.Time) error {
	switch s.Phase {
	case PhaseEnded:
		return errors.ErrSessionNotFound
	case PhaseStarted:
		return errors.ErrAlreadyStarted
	}
	if s.ClaimedSlots < s.MinPlayers {
		return errors.ErrInsufficientPlayers
	}
	s.start(now, false)
	return nil
}

func (s *Session) start(now time.Time, auto bool) {
	s.Phase = PhaseStarted
	s.AutoStarted = auto
	s.StartedAt = now
	s.LastActivity = now
}

func (s *Session) End() error {
	if s.Phase == PhaseEnded {
		return errors.ErrAlreadyEnded
	}
	s.Phase = PhaseEnded
	return nil
}

// ToggleSubscriber flips the start-notification membership of an identity.
// It returns true when the identity is now subscribed.
func (s *Session) ToggleSubscriber(id Identity, now time.Time) (bool, error) {
	if s.Phase == PhaseEnded {
		return false, errors.ErrSessionNotFound
	}
	s.LastActivity = now
	if _, ok := s.subscribers[id]; ok {
		delete(s.subscribers, id)
		return false, nil
	}
	s.subscribers[id] = struct{}{}
	return true, nil
}

func (s *Session) Subscribers() []Identity {
	ids := lo.Keys(s.subscribers)
	slices.Sort(ids)
	return ids
}

// Snapshot is an immutable copy of a session, safe to use outside the session lock.
type Snapshot struct {
	ID           SessionID
	DisplayID    string
	Starter      string
	StarterID    Identity
	Channel      ChannelID
	Capacity     int
	ClaimedSlots int
	Phase        Phase
	AutoStarted  bool
	Subscribers  []Identity
	Artifacts    int
	CreatedAt    time.Time
	StartedAt    time.Time
	LastActivity time.Time
}

func (s *Session) Snapshot() Snapshot {
	return Snapshot{
		ID:           s.ID,
		DisplayID:    s.DisplayID,
		Starter:      s.Starter.Name,
		StarterID:    s.Starter.ID,
		Channel:      s.Channel,
		Capacity:     s.Capacity,
		ClaimedSlots: s.ClaimedSlots,
		Phase:        s.Phase,
		AutoStarted:  s.AutoStarted,
		Subscribers:  s.Subscribers(),
		Artifacts:    len(s.Artifacts.Pending()),
		CreatedAt:    s.CreatedAt,
		StartedAt:    s.StartedAt,
		LastActivity: s.LastActivity,
	}
}
