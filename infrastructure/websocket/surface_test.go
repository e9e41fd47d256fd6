package websocket

import (
	"context"
	"log/slog"
	"sng-lab/domain"
	sngerrors "sng-lab/errors"
	"testing"
	"time"

	"github.com/mama165/sdk-go/logs"
	"github.com/stretchr/testify/require"
)

func newTestSurface(opts SurfaceOptions) (*Surface, *time.Time) {
	log := logs.GetLoggerFromLevel(slog.LevelDebug)
	s := NewSurface(log, NewHub(log), opts)
	clock := time.Now().UTC()
	s.now = func() time.Time { return clock }
	return s, &clock
}

var snapshot = domain.Snapshot{ID: "s1", DisplayID: "abcd1234", Starter: "alice", Channel: "sng", Capacity: 8, ClaimedSlots: 1}

func TestSurface_InteractionHandleGoesStale(t *testing.T) {
	req := require.New(t)
	s, clock := newTestSurface(SurfaceOptions{Self: "bot", InteractionTTL: time.Minute})
	ctx := context.Background()

	status, err := s.RenderStatus(ctx, snapshot)
	req.NoError(err)
	req.Equal(domain.ScopeInteraction, status.Scope)
	req.NoError(s.UpdateStatus(ctx, status, snapshot))

	// When the interaction token expired
	*clock = clock.Add(2 * time.Minute)

	// Then the interaction handle is refused
	req.ErrorIs(s.UpdateStatus(ctx, status, snapshot), sngerrors.ErrStaleHandle)
	req.ErrorIs(s.DeleteArtifact(ctx, status), sngerrors.ErrStaleHandle)

	// And the message can still be removed through its channel
	resolved, err := s.ResolveArtifact(ctx, status)
	req.NoError(err)
	req.Equal(domain.ScopeChannel, resolved.Scope)
	req.NoError(s.DeleteArtifact(ctx, resolved))
	req.ErrorIs(s.DeleteArtifact(ctx, resolved), sngerrors.ErrArtifactNotFound)
	_, err = s.ResolveArtifact(ctx, status)
	req.ErrorIs(err, sngerrors.ErrArtifactNotFound)
}

func TestSurface_FindArtifacts(t *testing.T) {
	req := require.New(t)
	s, _ := newTestSurface(SurfaceOptions{Self: "bot"})
	ctx := context.Background()

	// Given an own status, someone else's message, and an own unrelated message
	status, err := s.RenderStatus(ctx, snapshot)
	req.NoError(err)
	s.PostUserMessage(domain.Participant{ID: "u1", Channel: "sng"}, "is abcd1234 full?")
	_, err = s.SendAnnouncement(ctx, "sng", "Updating SNG status...")
	req.NoError(err)
	reply, err := s.SendAnnouncement(ctx, "sng", "SNG abcd1234 has been ended.")
	req.NoError(err)

	found, err := s.FindArtifacts(ctx, "sng", "abcd1234", 100)

	// Then only own messages carrying the marker are found, newest first
	req.NoError(err)
	req.Len(found, 2)
	req.Equal(reply.ID, found[0].ID)
	req.Equal(status.ID, found[1].ID)

	// And the scan window is bounded
	found, err = s.FindArtifacts(ctx, "sng", "abcd1234", 2)
	req.NoError(err)
	req.Len(found, 1)
	req.Equal(reply.ID, found[0].ID)
}

func TestSurface_DeleteOthersMessages(t *testing.T) {
	req := require.New(t)
	s, _ := newTestSurface(SurfaceOptions{Self: "bot", ManagedChannels: []domain.ChannelID{"sng"}})
	ctx := context.Background()

	inManaged := s.PostUserMessage(domain.Participant{ID: "u1", Channel: "sng"}, "hello")
	elsewhere := s.PostUserMessage(domain.Participant{ID: "u1", Channel: "general"}, "hello")

	req.NoError(s.DeleteArtifact(ctx, inManaged.Handle()))
	req.ErrorIs(s.DeleteArtifact(ctx, elsewhere.Handle()), sngerrors.ErrPermissionDenied)
}

func TestSurface_DirectDeliveryNeedsConnection(t *testing.T) {
	req := require.New(t)
	s, _ := newTestSurface(SurfaceOptions{Self: "bot"})

	req.ErrorIs(s.NotifySubscriber(context.Background(), "u1", "The SNG game abcd1234 has started!"), sngerrors.ErrUndeliverable)
	req.ErrorIs(s.SendEphemeral(context.Background(), "u1", "SNG abcd1234 has been ended."), sngerrors.ErrUndeliverable)
}

func TestSurface_MentionGroup(t *testing.T) {
	req := require.New(t)
	s, _ := newTestSurface(SurfaceOptions{Self: "bot"})

	h, err := s.MentionGroup(context.Background(), "sng", "sng-players")
	req.NoError(err)
	req.Equal(domain.ScopeChannel, h.Scope)

	_, err = s.MentionGroup(context.Background(), "sng", "")
	req.ErrorIs(err, sngerrors.ErrPermissionDenied)
}
