package domain

import (
	"errors"
	sngerrors "sng-lab/errors"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func newTestSession(capacity int) *Session {
	starter := Participant{ID: "u1", Name: "alice", Channel: "c1"}
	id, display := NewSessionID()
	return NewSession(id, display, starter, capacity, 2, time.Now())
}

func TestNewSession_StartsFormingWithOneSlot(t *testing.T) {
	req := require.New(t)

	s := newTestSession(8)

	req.Equal(PhaseForming, s.Phase)
	req.Equal(1, s.ClaimedSlots)
	req.Equal(ChannelID("c1"), s.Channel)
	req.Len(s.DisplayID, 8)
	req.Equal(string(s.ID)[:8], s.DisplayID)
}

func TestSession_ClaimSlot_LastWriterWins(t *testing.T) {
	req := require.New(t)
	s := newTestSession(8)

	// Given a claim of slot 5
	auto, err := s.ClaimSlot(5, time.Now())
	req.NoError(err)
	req.False(auto)

	// When a lower slot is claimed afterwards
	auto, err = s.ClaimSlot(3, time.Now())

	// Then the roster shrinks
	req.NoError(err)
	req.False(auto)
	req.Equal(3, s.ClaimedSlots)
	req.Equal(PhaseForming, s.Phase)
}

func TestSession_ClaimSlot_AtCapacityAutoStarts(t *testing.T) {
	req := require.New(t)
	s := newTestSession(8)

	auto, err := s.ClaimSlot(8, time.Now())

	req.NoError(err)
	req.True(auto)
	req.Equal(PhaseStarted, s.Phase)
	req.True(s.AutoStarted)
	req.False(s.StartedAt.IsZero())
}

func TestSession_ClaimSlot_AfterStart(t *testing.T) {
	req := require.New(t)
	s := newTestSession(8)
	_, err := s.ClaimSlot(8, time.Now())
	req.NoError(err)

	_, err = s.ClaimSlot(4, time.Now())

	req.ErrorIs(err, sngerrors.ErrAlreadyStarted)
	req.True(errors.Is(err, sngerrors.ErrInvalidPhase))
	req.Equal(8, s.ClaimedSlots)
}

func TestSession_ClaimSlot_OutOfRange(t *testing.T) {
	req := require.New(t)
	s := newTestSession(8)

	_, err := s.ClaimSlot(0, time.Now())
	req.ErrorIs(err, sngerrors.ErrInvalidSlot)

	_, err = s.ClaimSlot(9, time.Now())
	req.ErrorIs(err, sngerrors.ErrInvalidSlot)
	req.Equal(1, s.ClaimedSlots)
}

func TestSession_Start_RequiresTwoPlayers(t *testing.T) {
	req := require.New(t)
	s := newTestSession(8)

	// Given only the starter
	err := s.Start(time.Now())

	// Then the phase does not move
	req.ErrorIs(err, sngerrors.ErrInsufficientPlayers)
	req.Equal(PhaseForming, s.Phase)

	// When a second slot is claimed
	_, err = s.ClaimSlot(2, time.Now())
	req.NoError(err)

	// Then the manual start succeeds
	req.NoError(s.Start(time.Now()))
	req.Equal(PhaseStarted, s.Phase)
	req.False(s.AutoStarted)
}

func TestSession_Start_Twice(t *testing.T) {
	req := require.New(t)
	s := newTestSession(8)
	_, _ = s.ClaimSlot(3, time.Now())
	req.NoError(s.Start(time.Now()))

	err := s.Start(time.Now())

	req.ErrorIs(err, sngerrors.ErrAlreadyStarted)
}

func TestSession_Ended_IsTerminal(t *testing.T) {
	req := require.New(t)
	s := newTestSession(8)

	req.NoError(s.End())
	req.ErrorIs(s.End(), sngerrors.ErrAlreadyEnded)

	_, err := s.ClaimSlot(2, time.Now())
	req.ErrorIs(err, sngerrors.ErrSessionNotFound)
	req.ErrorIs(s.Start(time.Now()), sngerrors.ErrSessionNotFound)
	_, err = s.ToggleSubscriber("u2", time.Now())
	req.ErrorIs(err, sngerrors.ErrSessionNotFound)
	req.Equal(PhaseEnded, s.Phase)
}

func TestSession_ToggleSubscriber(t *testing.T) {
	req := require.New(t)
	s := newTestSession(8)

	on, err := s.ToggleSubscriber("u3", time.Now())
	req.NoError(err)
	req.True(on)
	_, _ = s.ToggleSubscriber("u2", time.Now())
	req.Equal([]Identity{"u2", "u3"}, s.Subscribers())

	on, err = s.ToggleSubscriber("u3", time.Now())
	req.NoError(err)
	req.False(on)
	req.Equal([]Identity{"u2"}, s.Subscribers())
}

func TestSession_ToggleSubscriber_AllowedAfterStart(t *testing.T) {
	req := require.New(t)
	s := newTestSession(2)
	_, _ = s.ClaimSlot(2, time.Now())

	on, err := s.ToggleSubscriber("u9", time.Now())

	req.NoError(err)
	req.True(on)
}

func TestSession_Snapshot(t *testing.T) {
	req := require.New(t)
	s := newTestSession(8)
	s.Artifacts.Track(ArtifactHandle{ID: "m1", Kind: ArtifactStatus})
	_, _ = s.ToggleSubscriber("u2", time.Now())

	snap := s.Snapshot()

	req.Equal(s.ID, snap.ID)
	req.Equal("alice", snap.Starter)
	req.Equal(1, snap.Artifacts)
	req.Equal([]Identity{"u2"}, snap.Subscribers)

	// Then mutating the session does not change the snapshot
	_, _ = s.ClaimSlot(5, time.Now())
	req.Equal(1, snap.ClaimedSlots)
}
